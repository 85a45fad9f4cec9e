package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xdao.co/stegtext/annotation"
	"xdao.co/stegtext/model"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate: %v", err)
	}
	if diff := cmp.Diff(annotation.DefaultMarkers(), cfg.Markers()); diff != "" {
		t.Fatalf("default markers mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stegtext.yaml")
	body := "output:\n  range_units: utf16\nannotation:\n  default_table: Main\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	want := Default()
	want.Output.RangeUnits = model.UnitsUTF16
	want.Annotation.DefaultTable = "Main"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyDocumentKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "unknown key", body: "output:\n  colour: red\n", want: "colour"},
		{name: "bad format", body: "output:\n  format: xml\n", want: "output.format"},
		{name: "bad units", body: "output:\n  range_units: runes\n", want: "range_units"},
		{name: "bad template", body: "annotation:\n  open: \"<nokey>\"\n", want: "annotation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = FormatText
	b, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stegtext.toml")
	body := "[output]\nformat = \"text\"\n\n[annotation]\nclose = \"</tr>\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	want := Default()
	want.Output.Format = FormatText
	want.Annotation.Close = "</tr>"
	assert.Equal(t, want, cfg)
}

func TestParseTOML_Rejects(t *testing.T) {
	_, err := ParseTOML([]byte("[output]\ncolour = \"red\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")

	_, err = ParseTOML([]byte("[output]\nrange_units = \"runes\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "range_units")

	_, err = ParseTOML([]byte("not toml ["))
	require.Error(t, err)
}
