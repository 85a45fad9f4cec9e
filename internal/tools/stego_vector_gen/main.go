// Command stego_vector_gen prints the conformance vectors stored under
// testdata/conformance/stego/v1.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"xdao.co/stegtext/stego"
)

type rangeJSON struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

type vector struct {
	Name         string    `json:"name"`
	Host         string    `json:"host"`
	Message      string    `json:"message"`
	CompositeHex string    `json:"composite_hex"`
	Range        rangeJSON `json:"range"`
	RangeUTF16   rangeJSON `json:"range_utf16"`
}

type vectorFile struct {
	BitWidth int      `json:"bit_width"`
	Alphabet []string `json:"alphabet"`
	Vectors  []vector `json:"vectors"`
}

var inputs = []struct{ name, host, message string }{
	{"hello", "Hello", "v=3"},
	{"empty_host", "", "id=1"},
	{"unicode_host", "Größe 😀", "k=size"},
	{"latin1_message", "Save", "café=ÿ"},
}

func main() {
	out := vectorFile{BitWidth: stego.BitWidth}
	for _, r := range stego.Alphabet() {
		out.Alphabet = append(out.Alphabet, fmt.Sprintf("U+%04X", r))
	}
	for _, in := range inputs {
		composite, err := stego.AppendSecretMessage(in.host, in.message)
		if err != nil {
			panic(err)
		}
		found, err := stego.FindAll(composite)
		if err != nil {
			panic(err)
		}
		if len(found) != 1 {
			panic(fmt.Sprintf("%s: expected one message, found %d", in.name, len(found)))
		}
		u := stego.UTF16Range(composite, found[0].Range)
		out.Vectors = append(out.Vectors, vector{
			Name:         in.name,
			Host:         in.host,
			Message:      in.message,
			CompositeHex: hex.EncodeToString([]byte(composite)),
			Range:        rangeJSON{Offset: found[0].Range.Offset, Length: found[0].Range.Length},
			RangeUTF16:   rangeJSON{Offset: u.Offset, Length: u.Length},
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}

	truncated, err := stego.Encode("ab")
	if err != nil {
		panic(err)
	}
	truncated = truncated[:len(truncated)-len(string(stego.Alphabet()[0]))]
	fmt.Fprintf(os.Stderr, "truncated_run.hex: %x\n", "Hello"+truncated+" end")
}
