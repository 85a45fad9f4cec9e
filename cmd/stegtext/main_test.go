package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"xdao.co/stegtext/model"
	"xdao.co/stegtext/stego"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestEncodeThenScan(t *testing.T) {
	code, enc, stderr := runCLI(t, "", "encode", "v=3")
	if code != 0 {
		t.Fatalf("encode exit=%d stderr=%s", code, stderr)
	}
	enc = strings.TrimSuffix(enc, "\n")
	for _, r := range enc {
		if !stego.IsCarrier(r) {
			t.Fatalf("encode output contains non-carrier %U", r)
		}
	}

	code, out, stderr := runCLI(t, "Hello"+enc+"\n", "scan")
	if code != 0 {
		t.Fatalf("scan exit=%d stderr=%s", code, stderr)
	}
	var rep model.ScanReport
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("scan output is not JSON: %v\n%s", err, out)
	}
	if len(rep.Lines) != 1 {
		t.Fatalf("lines=%d, want 1", len(rep.Lines))
	}
	want := []model.MessageReport{{Message: "v=3", Range: model.Range{Offset: 5, Length: len(enc)}}}
	if diff := cmp.Diff(want, rep.Lines[0].Messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if rep.Lines[0].Visible != "Hello" {
		t.Fatalf("visible=%q", rep.Lines[0].Visible)
	}
}

func TestAppendAndStrip(t *testing.T) {
	code, composite, stderr := runCLI(t, "", "append", "--host", "Caption", "id=42")
	if code != 0 {
		t.Fatalf("append exit=%d stderr=%s", code, stderr)
	}
	code, out, _ := runCLI(t, composite, "strip", "-")
	if code != 0 {
		t.Fatalf("strip exit=%d", code)
	}
	if out != "Caption\n" {
		t.Fatalf("strip output=%q", out)
	}
}

func TestScan_TextFormatUTF16(t *testing.T) {
	composite, err := stego.AppendSecretMessage("h\U0001F600", "k")
	if err != nil {
		t.Fatalf("AppendSecretMessage: %v", err)
	}
	code, out, stderr := runCLI(t, composite+"\n", "scan", "--format", "text", "--units", "utf16")
	if code != 0 {
		t.Fatalf("scan exit=%d stderr=%s", code, stderr)
	}
	// "h" is one unit and the emoji is a surrogate pair; each carrier is one unit.
	if want := "1\t3\t4\tk\n"; out != want {
		t.Fatalf("scan output=%q, want %q", out, want)
	}
}

func TestScan_MalformedRunReported(t *testing.T) {
	code, out, stderr := runCLI(t, "x\u2061\u2062\n", "scan", "--format", "text")
	if code != 0 {
		t.Fatalf("scan exit=%d stderr=%s", code, stderr)
	}
	if !strings.HasPrefix(out, "1\t1\t6\t!"+string(model.ErrMalformedPayload)) {
		t.Fatalf("scan output=%q", out)
	}
	if !strings.Contains(stderr, "scan problem") {
		t.Fatalf("expected a warning log on stderr, got %q", stderr)
	}
}

func TestAnnotateThenExtract(t *testing.T) {
	code, annotated, stderr := runCLI(t, "", "annotate", "--key", "welcome.title", "Welcome")
	if code != 0 {
		t.Fatalf("annotate exit=%d stderr=%s", code, stderr)
	}
	code, out, stderr := runCLI(t, annotated, "extract", "--format", "text")
	if code != 0 {
		t.Fatalf("extract exit=%d stderr=%s", code, stderr)
	}
	if want := "1\twelcome.title\tLocalizable\tWelcome\n"; out != want {
		t.Fatalf("extract output=%q, want %q", out, want)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stegtext.yaml")
	body := "annotation:\n  default_table: Main\noutput:\n  format: text\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	code, annotated, _ := runCLI(t, "", "--config", path, "annotate", "--key", "k", "UI")
	if code != 0 {
		t.Fatalf("annotate exit=%d", code)
	}
	code, out, _ := runCLI(t, annotated, "--config", path, "extract")
	if code != 0 {
		t.Fatalf("extract exit=%d", code)
	}
	if want := "1\tk\tMain\tUI\n"; out != want {
		t.Fatalf("extract output=%q, want %q", out, want)
	}

	code, out, _ = runCLI(t, "", "--config", path, "config")
	if code != 0 {
		t.Fatalf("config exit=%d", code)
	}
	if !strings.Contains(out, "default_table: Main") || !strings.Contains(out, "format: text") {
		t.Fatalf("config output=%q", out)
	}
}

func TestExitCodes(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want int
	}{
		{name: "unknown command", args: []string{"nope"}, want: 2},
		{name: "missing arg", args: []string{"encode"}, want: 2},
		{name: "bad format flag", args: []string{"--format", "xml", "strip"}, want: 2},
		{name: "message too large", args: []string{"encode", "中"}, want: 1},
		{name: "missing file", args: []string{"strip", filepath.Join(t.TempDir(), "absent.txt")}, want: 1},
		{name: "missing config", args: []string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "strip"}, want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, "", tc.args...)
			if code != tc.want {
				t.Fatalf("exit=%d, want %d (stderr=%s)", code, tc.want, stderr)
			}
			if !strings.Contains(stderr, "stegtext: ") {
				t.Fatalf("stderr missing error line: %q", stderr)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	code, out, _ := runCLI(t, "a\u2061\n", "describe")
	if code != 0 {
		t.Fatalf("describe exit=%d", code)
	}
	if !strings.Contains(out, "U+0061 LATIN SMALL LETTER A") || !strings.Contains(out, "U+2061 FUNCTION APPLICATION *") {
		t.Fatalf("describe output=%q", out)
	}
}
