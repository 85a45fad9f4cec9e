// Package cidutil derives content identifiers for composite text.
//
// Two strings that render identically (same visible text, different hidden
// messages) share a VisibleCID, while their CompositeCIDs differ. Build tools
// use the pair to key extracted metadata by what a reader actually sees.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"xdao.co/stegtext/stego"
)

// VisibleCID returns a CIDv1 (raw codec, sha2-256) of s with every carrier
// run removed.
func VisibleCID(s string) (cid.Cid, error) {
	return rawSHA256([]byte(stego.Strip(s)))
}

// CompositeCID returns a CIDv1 (raw codec, sha2-256) of s as stored,
// hidden messages included.
func CompositeCID(s string) (cid.Cid, error) {
	return rawSHA256([]byte(s))
}

// VisibleCIDString is VisibleCID rendered in its default base32 string form,
// or "" if hashing fails.
func VisibleCIDString(s string) string {
	return cidString(VisibleCID(s))
}

// CompositeCIDString is CompositeCID rendered as a string, or "" if hashing fails.
func CompositeCIDString(s string) string {
	return cidString(CompositeCID(s))
}

func cidString(c cid.Cid, err error) string {
	if err != nil {
		// multihash.Sum only errors for unknown codes; SHA2_256 is always registered.
		return ""
	}
	return c.String()
}

func rawSHA256(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}
