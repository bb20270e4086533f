// Package bitbuf provides bit-granular containers.
//
// BitBuffer is a fixed-capacity buffer with independent read and write
// positions, suitable for packing fields that are not byte aligned. BitArrayList
// is a growable list of bits with random access, insertion and removal, and
// conversions to bits-and-blooms bitsets and roaring bitmaps.
//
// Both containers use MSB-first bit order: bit 0 is the most significant bit of
// the first byte, and multi-bit values are stored most significant bit first.
// Multi-bit operations accept between 0 and 64 bits.
package bitbuf
