package bitbuf

import (
	"fmt"
	"io"
)

// BitBuffer is a fixed-capacity bit buffer. Writes append at the write position
// and reads consume from the read position; both advance independently.
// Random access methods address absolute bit indices.
//
// BitBuffer is not safe for concurrent use.
type BitBuffer struct {
	data    []byte
	capBits int
	wpos    int
	rpos    int
}

// NewBitBuffer creates an empty buffer that can hold capacityBits bits.
func NewBitBuffer(capacityBits int) (*BitBuffer, error) {
	if capacityBits < 0 {
		return nil, fmt.Errorf("bitbuf: new buffer of %d bits: %w", capacityBits, ErrInvalidCapacity)
	}
	return &BitBuffer{
		data:    make([]byte, bytesFor(capacityBits)),
		capBits: capacityBits,
	}, nil
}

// WrapBytes creates a buffer over b. The whole of b counts as written and
// reading starts at bit 0. The buffer shares b's memory.
func WrapBytes(b []byte) *BitBuffer {
	return &BitBuffer{
		data:    b,
		capBits: len(b) * 8,
		wpos:    len(b) * 8,
	}
}

// Len returns the number of bits written.
func (b *BitBuffer) Len() int { return b.wpos }

// Cap returns the capacity in bits.
func (b *BitBuffer) Cap() int { return b.capBits }

// Remaining returns how many more bits can be written.
func (b *BitBuffer) Remaining() int { return b.capBits - b.wpos }

// ReadPosition returns the index of the next bit to be read.
func (b *BitBuffer) ReadPosition() int { return b.rpos }

// Unread returns the number of written bits not yet read.
func (b *BitBuffer) Unread() int { return b.wpos - b.rpos }

// SeekRead moves the read position to pos, 0 <= pos <= Len().
func (b *BitBuffer) SeekRead(pos int) error {
	if pos < 0 || pos > b.wpos {
		return fmt.Errorf("bitbuf: seek to %d of %d: %w", pos, b.wpos, ErrIndexOutOfRange)
	}
	b.rpos = pos
	return nil
}

// WriteBit appends a single bit.
func (b *BitBuffer) WriteBit(v bool) error {
	if b.wpos >= b.capBits {
		return fmt.Errorf("bitbuf: write bit at %d: %w", b.wpos, ErrOverflow)
	}
	setBit(b.data, b.wpos, v)
	b.wpos++
	return nil
}

// WriteBits appends the low n bits of v. Nothing is written on error.
func (b *BitBuffer) WriteBits(v uint64, n int) error {
	if err := checkCount(n); err != nil {
		return fmt.Errorf("bitbuf: write %d bits: %w", n, err)
	}
	if n > b.Remaining() {
		return fmt.Errorf("bitbuf: write %d bits at %d: %w", n, b.wpos, ErrOverflow)
	}
	writeBits(b.data, b.wpos, v, n)
	b.wpos += n
	return nil
}

// WriteByte appends 8 bits. It implements io.ByteWriter.
func (b *BitBuffer) WriteByte(c byte) error {
	return b.WriteBits(uint64(c), 8)
}

// Write appends whole bytes, implementing io.Writer. When p does not fit, the
// bytes that fit are written and ErrOverflow is returned.
func (b *BitBuffer) Write(p []byte) (int, error) {
	fit := min(len(p), b.Remaining()/8)
	if b.wpos&7 == 0 {
		copy(b.data[b.wpos>>3:], p[:fit])
		b.wpos += fit * 8
	} else {
		for _, c := range p[:fit] {
			writeBits(b.data, b.wpos, uint64(c), 8)
			b.wpos += 8
		}
	}
	if fit < len(p) {
		return fit, fmt.Errorf("bitbuf: write %d bytes: %w", len(p), ErrOverflow)
	}
	return fit, nil
}

// ReadBit consumes one bit.
func (b *BitBuffer) ReadBit() (bool, error) {
	if b.rpos >= b.wpos {
		return false, fmt.Errorf("bitbuf: read bit at %d: %w", b.rpos, ErrUnderflow)
	}
	v := getBit(b.data, b.rpos)
	b.rpos++
	return v, nil
}

// ReadBits consumes n bits and returns them right-aligned.
func (b *BitBuffer) ReadBits(n int) (uint64, error) {
	if err := checkCount(n); err != nil {
		return 0, fmt.Errorf("bitbuf: read %d bits: %w", n, err)
	}
	if n > b.Unread() {
		return 0, fmt.Errorf("bitbuf: read %d bits at %d: %w", n, b.rpos, ErrUnderflow)
	}
	v := readBits(b.data, b.rpos, n)
	b.rpos += n
	return v, nil
}

// ReadByte consumes 8 bits. It returns io.EOF when nothing is left and
// ErrUnderflow when fewer than 8 bits are left. It implements io.ByteReader.
func (b *BitBuffer) ReadByte() (byte, error) {
	if b.Unread() == 0 {
		return 0, io.EOF
	}
	v, err := b.ReadBits(8)
	return byte(v), err
}

// Read consumes whole bytes, implementing io.Reader.
func (b *BitBuffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.Unread() == 0 {
		return 0, io.EOF
	}
	n := min(len(p), b.Unread()/8)
	if n == 0 {
		return 0, fmt.Errorf("bitbuf: read with %d bits left: %w", b.Unread(), ErrUnderflow)
	}
	if b.rpos&7 == 0 {
		copy(p, b.data[b.rpos>>3:b.rpos>>3+n])
		b.rpos += n * 8
		return n, nil
	}
	for i := range n {
		p[i] = byte(readBits(b.data, b.rpos, 8))
		b.rpos += 8
	}
	return n, nil
}

// AlignRead advances the read position to the next byte boundary.
func (b *BitBuffer) AlignRead() error {
	next := (b.rpos + 7) &^ 7
	if next > b.wpos {
		return fmt.Errorf("bitbuf: align read to %d: %w", next, ErrUnderflow)
	}
	b.rpos = next
	return nil
}

// AlignWrite pads with zero bits up to the next byte boundary.
func (b *BitBuffer) AlignWrite() error {
	pad := (8 - b.wpos&7) & 7
	return b.WriteBits(0, pad)
}

// Bit returns the bit at index i, 0 <= i < Len().
func (b *BitBuffer) Bit(i int) (bool, error) {
	if i < 0 || i >= b.wpos {
		return false, fmt.Errorf("bitbuf: bit %d of %d: %w", i, b.wpos, ErrIndexOutOfRange)
	}
	return getBit(b.data, i), nil
}

// SetBit sets the bit at index i, 0 <= i < Cap(). The write position does
// not move.
func (b *BitBuffer) SetBit(i int, v bool) error {
	if i < 0 || i >= b.capBits {
		return fmt.Errorf("bitbuf: set bit %d of %d: %w", i, b.capBits, ErrIndexOutOfRange)
	}
	setBit(b.data, i, v)
	return nil
}

// Bits returns n bits starting at off; the range must lie within [0, Len()).
func (b *BitBuffer) Bits(off, n int) (uint64, error) {
	if err := checkCount(n); err != nil {
		return 0, fmt.Errorf("bitbuf: get %d bits: %w", n, err)
	}
	if off < 0 || off > b.wpos-n {
		return 0, fmt.Errorf("bitbuf: get %d bits at %d of %d: %w", n, off, b.wpos, ErrIndexOutOfRange)
	}
	return readBits(b.data, off, n), nil
}

// SetBits stores the low n bits of v at off; the range must lie within
// [0, Cap()). The write position does not move.
func (b *BitBuffer) SetBits(off int, v uint64, n int) error {
	if err := checkCount(n); err != nil {
		return fmt.Errorf("bitbuf: set %d bits: %w", n, err)
	}
	if off < 0 || off > b.capBits-n {
		return fmt.Errorf("bitbuf: set %d bits at %d of %d: %w", n, off, b.capBits, ErrIndexOutOfRange)
	}
	writeBits(b.data, off, v, n)
	return nil
}

// Bytes returns a copy of the written bits. Bits after Len() in the last
// byte are zero.
func (b *BitBuffer) Bytes() []byte {
	out := make([]byte, bytesFor(b.wpos))
	copy(out, b.data)
	if r := b.wpos & 7; r != 0 {
		out[len(out)-1] &^= lowMask(8 - r)
	}
	return out
}

// Reset clears the data and both positions.
func (b *BitBuffer) Reset() {
	clear(b.data)
	b.wpos, b.rpos = 0, 0
}

// ToList copies the written bits into a new BitArrayList.
func (b *BitBuffer) ToList() *BitArrayList {
	return &BitArrayList{data: b.Bytes(), n: b.wpos}
}
