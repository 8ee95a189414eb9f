package section

import (
	"fmt"

	"github.com/hdlio/hif/errs"
	"github.com/hdlio/hif/format"
)

// StatementHeader is the two-byte class/type header that opens every
// statement on the wire.
//
// Byte 0 packs the low nibble of the type with the statement class in the
// high nibble; byte 1 carries the remaining high bits of the 12-bit type.
type StatementHeader struct {
	Class format.StatementClass
	Type  uint16
}

// Bytes serializes the header into its two-byte wire form.
// The type must fit in 12 bits; callers enforce that precondition.
func (h StatementHeader) Bytes() [StatementHeaderSize]byte {
	return [StatementHeaderSize]byte{
		byte(h.Type&0xF) | byte(h.Class)<<4,
		byte(h.Type >> 4),
	}
}

// ParseStatementHeader decodes the class/type header from the start of data.
// It rejects class tags outside the closed set; higher values are reserved.
func ParseStatementHeader(data []byte) (StatementHeader, error) {
	if len(data) < StatementHeaderSize {
		return StatementHeader{}, fmt.Errorf("%w: need %d header bytes, have %d",
			errs.ErrTruncatedStatement, StatementHeaderSize, len(data))
	}

	h := StatementHeader{
		Class: format.StatementClass(data[0] >> 4),
		Type:  uint16(data[0]&0xF) | uint16(data[1])<<4,
	}
	if !h.Class.Valid() {
		return StatementHeader{}, fmt.Errorf("%w: class tag %d", errs.ErrInvalidClass, h.Class)
	}

	return h, nil
}
