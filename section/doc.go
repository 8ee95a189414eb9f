// Package section implements the bit-packed wire primitives of the hif
// container: the two-byte statement header, the one- or three-byte reference
// word into the identifier table, and the length-prefixed identifier record.
//
// All multi-byte fields are little-endian on disk irrespective of host byte
// order. The byte 0xFF is the list terminator and never a valid reference,
// because its bits decode to the reserved identifier index 31 with all role
// bits set.
package section
