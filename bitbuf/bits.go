package bitbuf

// lowMask returns a byte with the k lowest bits set, 0 <= k <= 8.
func lowMask(k int) byte {
	return byte(uint16(1)<<k - 1)
}

// bytesFor returns the number of bytes needed to hold n bits.
func bytesFor(n int) int {
	return (n + 7) >> 3
}

func getBit(buf []byte, i int) bool {
	return buf[i>>3]>>(7-(i&7))&1 == 1
}

func setBit(buf []byte, i int, v bool) {
	m := byte(0x80) >> (i & 7)
	if v {
		buf[i>>3] |= m
	} else {
		buf[i>>3] &^= m
	}
}

// readBits extracts n bits starting at bit offset off, MSB first.
// Each step consumes the rest of the current byte or what is left of n,
// whichever is smaller.
func readBits(buf []byte, off, n int) uint64 {
	var v uint64
	for n > 0 {
		avail := 8 - off&7
		take := min(avail, n)
		shift := avail - take
		chunk := buf[off>>3] >> shift & lowMask(take)
		v = v<<take | uint64(chunk)
		off += take
		n -= take
	}
	return v
}

// writeBits stores the low n bits of v starting at bit offset off, MSB first.
// Bits outside [off, off+n) are left untouched.
func writeBits(buf []byte, off int, v uint64, n int) {
	for n > 0 {
		avail := 8 - off&7
		take := min(avail, n)
		shift := avail - take
		chunk := byte(v>>(n-take)) & lowMask(take)
		m := lowMask(take) << shift
		i := off >> 3
		buf[i] = buf[i]&^m | chunk<<shift
		off += take
		n -= take
	}
}

func checkCount(n int) error {
	if n < 0 || n > 64 {
		return ErrBitCount
	}
	return nil
}
