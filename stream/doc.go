// Package stream implements hif writer and reader sessions over a chunk
// directory: statement encoding with writer-side identifier interning, and
// memory-mapped decoding with a positional identifier resolver.
//
// A session directory holds paired chunk files <N>.st and <N>.id. The writer
// assigns dense identifier indices in first-write order and emits each
// identifier record before the first statement reference that needs it; the
// reader rebuilds the table with one forward scan and resolves references in
// constant time. Statements emerge in the exact order they were added.
package stream
