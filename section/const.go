package section

const (
	// Terminator ends the io and attr reference lists of a statement. The
	// byte value corresponds to a short-form reference with all role bits set
	// and index 31, which is why index 31 is reserved and never assigned.
	Terminator = 0xFF

	// ReservedRefIndex is the identifier index that must never be assigned.
	ReservedRefIndex = 31

	// MaxType is the largest statement type value; the header encodes the
	// type in 12 bits.
	MaxType = 0xFFF

	// MaxRefIndex is the largest index the long-form reference can address:
	// 5 low bits in byte 0 plus a 16-bit high word shifted left 5.
	MaxRefIndex = 1<<21 - 1

	// MaxIdentifierLen is the largest identifier payload the long-form
	// record can describe: a 4-bit low nibble plus a 16-bit high word.
	MaxIdentifierLen = 1<<20 - 1

	// StatementHeaderSize is the fixed size of the class/type header.
	StatementHeaderSize = 2
)

// Role bits of a reference word. Bit 0 of the role marks an input (or
// attribute) side, bit 1 marks the last reference of a tuple entry.
const (
	RoleInput uint8 = 0x1
	RoleLast  uint8 = 0x2

	// RoleInstance is the role pattern of the statement instance reference.
	RoleInstance = RoleLast | RoleInput

	// RoleMask covers the valid role bits.
	RoleMask uint8 = 0x3
)

const (
	refSmallFlag  = 0x01
	refRoleShift  = 1
	refIndexShift = 3
	refIndexBits  = 5 // low index bits carried in byte 0
	refIndexMask  = 1<<refIndexBits - 1

	idShortFlag  = 0x08
	idCatMask    = 0x07
	idLenShift   = 4
	idShortMax   = 15 // largest payload length the short form encodes
	idLongHeader = 3
)
