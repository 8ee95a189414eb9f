package hash

import (
	"github.com/cespare/xxhash/v2"

	"github.com/hdlio/hif/format"
)

// ID computes the xxHash64 of an identifier key. The category byte is mixed
// into the digest so identical payloads under different categories hash to
// different keys.
func ID(cat format.IDCat, data []byte) uint64 {
	d := xxhash.New()
	_, _ = d.Write([]byte{byte(cat)})
	_, _ = d.Write(data)

	return d.Sum64()
}
