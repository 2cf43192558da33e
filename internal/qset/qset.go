// Package qset fingerprints a multiset of quads for test assertions
// (round-trip and incremental-equivalence checks need to compare two
// quad sequences for equality regardless of emission order, without
// pulling a full equality/sorting machinery into the test helpers).
package qset

import (
	"encoding/binary"
	"sort"

	"github.com/zeebo/xxh3"

	"github.com/oxtrig/trig/pkg/rdfterm"
)

// Fingerprint is a 128-bit digest of a quad multiset. Two multisets with
// the same Fingerprint are, short of a hash collision, the same multiset
// (same quads, same multiplicities, order-independent).
type Fingerprint [16]byte

// Hash128 mirrors the teacher's TermEncoder.Hash128: an xxh3 128-bit hash
// packed big-endian, Hi then Lo.
func Hash128(s string) [16]byte {
	h := xxh3.Hash128([]byte(s))
	var out [16]byte
	binary.BigEndian.PutUint64(out[0:8], h.Hi)
	binary.BigEndian.PutUint64(out[8:16], h.Lo)
	return out
}

// quadKey renders a quad into a string whose byte-for-byte content
// uniquely determines the quad's four components; String() on each term
// already distinguishes NamedNode/BlankNode/Literal/DefaultGraph shapes.
func quadKey(q *rdfterm.Quad) string {
	return q.Subject.String() + "\x00" + q.Predicate.String() + "\x00" + q.Object.String() + "\x00" + q.Graph.String()
}

// Of hashes each quad's key independently, sorts the digests, and hashes
// the sorted concatenation — order-independent, multiplicity-sensitive.
func Of(quads []*rdfterm.Quad) Fingerprint {
	perQuad := make([][16]byte, len(quads))
	for i, q := range quads {
		perQuad[i] = Hash128(quadKey(q))
	}
	sort.Slice(perQuad, func(i, j int) bool {
		for k := 0; k < 16; k++ {
			if perQuad[i][k] != perQuad[j][k] {
				return perQuad[i][k] < perQuad[j][k]
			}
		}
		return false
	})
	buf := make([]byte, 0, 16*len(perQuad))
	for _, h := range perQuad {
		buf = append(buf, h[:]...)
	}
	return Fingerprint(Hash128(string(buf)))
}

// Equal reports whether two quad sequences represent the same multiset.
func Equal(a, b []*rdfterm.Quad) bool {
	return Of(a) == Of(b)
}
