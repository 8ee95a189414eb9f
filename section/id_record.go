package section

import (
	"fmt"

	"github.com/hdlio/hif/errs"
	"github.com/hdlio/hif/format"
)

// AppendIDRecord appends the encoded identifier record for the given
// category and payload to dst.
//
// Byte 0 packs the category tag in its low 3 bits and bit 3 as the
// short-form flag. The short form carries the whole payload length in the
// high nibble and must be used whenever the length fits in it; the long form
// extends the nibble with a little-endian 16-bit word shifted left 4.
//
// Payloads longer than MaxIdentifierLen are a caller bug and panic.
func AppendIDRecord(dst []byte, cat format.IDCat, payload []byte) []byte {
	length := len(payload)
	if length > MaxIdentifierLen {
		panic(fmt.Sprintf("hif: identifier payload %d bytes exceeds %d", length, MaxIdentifierLen))
	}

	if length <= idShortMax {
		dst = append(dst, byte(cat)|idShortFlag|byte(length)<<idLenShift)
	} else {
		dst = append(dst, byte(cat)|byte(length&0xF)<<idLenShift)
		dst = engine.AppendUint16(dst, uint16(length>>idLenShift))
	}

	return append(dst, payload...)
}

// DecodeIDRecord decodes one identifier record from the start of data,
// returning the category, the payload (a sub-slice of data, not a copy), and
// the number of bytes consumed. Either header form is accepted.
func DecodeIDRecord(data []byte) (cat format.IDCat, payload []byte, n int, err error) {
	if len(data) == 0 {
		return 0, nil, 0, fmt.Errorf("%w: empty record", errs.ErrTruncatedIdentifier)
	}

	b0 := data[0]
	cat = format.IDCat(b0 & idCatMask)
	if !cat.Valid() {
		return 0, nil, 0, fmt.Errorf("%w: category tag %d", errs.ErrInvalidCategory, cat)
	}

	length := int(b0 >> idLenShift)
	header := 1
	if b0&idShortFlag == 0 {
		if len(data) < idLongHeader {
			return 0, nil, 0, fmt.Errorf("%w: need %d header bytes, have %d",
				errs.ErrTruncatedIdentifier, idLongHeader, len(data))
		}
		length |= int(engine.Uint16(data[1:3])) << idLenShift
		header = idLongHeader
	}

	if len(data) < header+length {
		return 0, nil, 0, fmt.Errorf("%w: need %d payload bytes, have %d",
			errs.ErrTruncatedIdentifier, length, len(data)-header)
	}

	return cat, data[header : header+length], header + length, nil
}
