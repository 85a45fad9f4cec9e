package cidutil

import (
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"xdao.co/stegtext/stego"
)

func TestVisibleCID_IgnoresHiddenMessages(t *testing.T) {
	a, err := stego.AppendSecretMessage("Settings", "v=1")
	if err != nil {
		t.Fatalf("AppendSecretMessage: %v", err)
	}
	b, err := stego.AppendSecretMessage("Settings", "v=2")
	if err != nil {
		t.Fatalf("AppendSecretMessage: %v", err)
	}

	va, err := VisibleCID(a)
	if err != nil {
		t.Fatalf("VisibleCID: %v", err)
	}
	vb, err := VisibleCID(b)
	if err != nil {
		t.Fatalf("VisibleCID: %v", err)
	}
	plain, err := VisibleCID("Settings")
	if err != nil {
		t.Fatalf("VisibleCID: %v", err)
	}
	if !va.Equals(vb) || !va.Equals(plain) {
		t.Fatalf("visible CIDs differ: %s %s %s", va, vb, plain)
	}

	ca, err := CompositeCID(a)
	if err != nil {
		t.Fatalf("CompositeCID: %v", err)
	}
	cb, err := CompositeCID(b)
	if err != nil {
		t.Fatalf("CompositeCID: %v", err)
	}
	if ca.Equals(cb) {
		t.Fatalf("composite CIDs should differ")
	}
}

func TestVisibleCID_Format(t *testing.T) {
	c, err := VisibleCID("hello")
	if err != nil {
		t.Fatalf("VisibleCID: %v", err)
	}
	if c.Version() != 1 {
		t.Fatalf("version = %d, want 1", c.Version())
	}
	if c.Type() != cid.Raw {
		t.Fatalf("codec = %#x, want raw", c.Type())
	}
	dec, err := multihash.Decode(c.Hash())
	if err != nil {
		t.Fatalf("multihash.Decode: %v", err)
	}
	if dec.Code != multihash.SHA2_256 {
		t.Fatalf("hash code = %#x, want sha2-256", dec.Code)
	}
	if s := VisibleCIDString("hello"); s != c.String() || s == "" {
		t.Fatalf("VisibleCIDString = %q, want %q", s, c.String())
	}
	parsed, err := cid.Decode(c.String())
	if err != nil || !parsed.Equals(c) {
		t.Fatalf("cid.Decode round trip failed: %v", err)
	}
}
