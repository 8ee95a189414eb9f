package section

import (
	"fmt"

	"github.com/hdlio/hif/endian"
	"github.com/hdlio/hif/errs"
)

var engine = endian.GetLittleEndianEngine()

// AppendRef appends the encoded reference word for identifier index and the
// given role bits to dst.
//
// The short form (1 byte) is used whenever index < 31; index 31 itself is
// reserved because its short form collides with the list terminator byte.
// The long form (3 bytes) stores the remaining index bits as a little-endian
// 16-bit word shifted left 5.
//
// Callers guarantee index <= MaxRefIndex; the identifier table never assigns
// indices past the rotation threshold, which is far below it.
func AppendRef(dst []byte, index uint32, role uint8) []byte {
	low := byte(index&refIndexMask) << refIndexShift
	head := role << refRoleShift

	if index < ReservedRefIndex {
		return append(dst, head|low|refSmallFlag)
	}

	dst = append(dst, head|low)

	return engine.AppendUint16(dst, uint16(index>>refIndexBits))
}

// DecodeRef decodes one reference word from the start of data, returning the
// identifier index, the role bits, and the number of bytes consumed.
//
// The terminator byte 0xFF is not a valid reference; list decoders check for
// it before calling DecodeRef. A 0xFF reaching this function decodes to the
// reserved index 31 and is rejected, which is what keeps identifier payloads
// containing 0xFF from desyncing the stream.
func DecodeRef(data []byte) (index uint32, role uint8, n int, err error) {
	if len(data) == 0 {
		return 0, 0, 0, fmt.Errorf("%w: empty reference", errs.ErrTruncatedStatement)
	}

	b0 := data[0]
	role = (b0 >> refRoleShift) & RoleMask
	index = uint32(b0 >> refIndexShift)

	if b0&refSmallFlag != 0 {
		if index == ReservedRefIndex {
			return 0, 0, 0, fmt.Errorf("%w: short reference index 31", errs.ErrReservedIndex)
		}

		return index, role, 1, nil
	}

	if len(data) < 3 {
		return 0, 0, 0, fmt.Errorf("%w: need 3 reference bytes, have %d",
			errs.ErrTruncatedStatement, len(data))
	}
	index |= uint32(engine.Uint16(data[1:3])) << refIndexBits

	return index, role, 3, nil
}
