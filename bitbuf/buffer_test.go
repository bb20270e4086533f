package bitbuf

import (
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBitBuffer(t *testing.T) {
	_, err := NewBitBuffer(-1)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	b, err := NewBitBuffer(13)
	require.NoError(t, err)
	assert.Equal(t, 13, b.Cap())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 13, b.Remaining())
}

func TestWriteReadBitsRoundTrip(t *testing.T) {
	fields := []struct {
		v uint64
		n int
	}{
		{0b101, 3},
		{0x1abc, 13},
		{0xdeadbeefcafef00d, 64},
		{1, 1},
		{0, 0},
		{0x7f, 7},
		{0x3, 2},
	}
	total := 0
	for _, f := range fields {
		total += f.n
	}
	b, err := NewBitBuffer(total)
	require.NoError(t, err)
	for _, f := range fields {
		require.NoError(t, b.WriteBits(f.v, f.n))
	}
	assert.Equal(t, total, b.Len())
	assert.Equal(t, 0, b.Remaining())

	for _, f := range fields {
		got, err := b.ReadBits(f.n)
		require.NoError(t, err)
		assert.Equal(t, f.v, got, "field of %d bits", f.n)
	}
	assert.Equal(t, 0, b.Unread())
}

func TestWriteBitsKeepsOnlyLowBits(t *testing.T) {
	b, err := NewBitBuffer(8)
	require.NoError(t, err)
	require.NoError(t, b.WriteBits(0xff, 4))
	require.NoError(t, b.WriteBits(0, 4))
	assert.Equal(t, []byte{0xf0}, b.Bytes())
}

func TestMSBFirst(t *testing.T) {
	b, err := NewBitBuffer(16)
	require.NoError(t, err)
	require.NoError(t, b.WriteBit(true))
	require.NoError(t, b.WriteBits(0b01, 2))
	assert.Equal(t, []byte{0b1010_0000}, b.Bytes())

	require.NoError(t, b.WriteBits(0x1ff, 9))
	assert.Equal(t, []byte{0b1011_1111, 0b1111_0000}, b.Bytes())
}

func TestOverflowWritesNothing(t *testing.T) {
	b, err := NewBitBuffer(10)
	require.NoError(t, err)
	require.NoError(t, b.WriteBits(0x3f, 6))

	err = b.WriteBits(0x1f, 5)
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, 6, b.Len())
	assert.Equal(t, []byte{0xfc}, b.Bytes())

	require.NoError(t, b.WriteBits(0, 4))
	assert.ErrorIs(t, b.WriteBit(true), ErrOverflow)
}

func TestBitCountLimits(t *testing.T) {
	b, err := NewBitBuffer(128)
	require.NoError(t, err)
	assert.ErrorIs(t, b.WriteBits(0, 65), ErrBitCount)
	assert.ErrorIs(t, b.WriteBits(0, -1), ErrBitCount)
	_, err = b.ReadBits(65)
	assert.ErrorIs(t, err, ErrBitCount)
}

func TestUnderflow(t *testing.T) {
	b, err := NewBitBuffer(16)
	require.NoError(t, err)
	require.NoError(t, b.WriteBits(0b101, 3))

	_, err = b.ReadBits(4)
	assert.ErrorIs(t, err, ErrUnderflow)
	assert.Equal(t, 0, b.ReadPosition())

	_, err = b.ReadByte()
	assert.ErrorIs(t, err, ErrUnderflow)

	v, err := b.ReadBits(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b101), v)

	_, err = b.ReadBit()
	assert.ErrorIs(t, err, ErrUnderflow)
	_, err = b.ReadByte()
	assert.ErrorIs(t, err, io.EOF)
}

func TestWrapBytesReader(t *testing.T) {
	src := []byte("hello")
	b := WrapBytes(src)
	assert.Equal(t, 40, b.Len())
	assert.Equal(t, 0, b.Remaining())

	c, err := b.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('h'), c)

	got, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, "ello", string(got))

	n, err := b.Read(make([]byte, 4))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestUnalignedReadWrite(t *testing.T) {
	b, err := NewBitBuffer(3 + 8*4)
	require.NoError(t, err)
	require.NoError(t, b.WriteBits(0b110, 3))

	n, err := b.Write([]byte{0xde, 0xad, 0xbe, 0xef})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	hdr, err := b.ReadBits(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b110), hdr)

	p := make([]byte, 8)
	n, err = b.Read(p)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, p[:n])
}

func TestWritePartialBytes(t *testing.T) {
	b, err := NewBitBuffer(20)
	require.NoError(t, err)
	n, err := b.Write([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, 2, n)
	assert.Equal(t, 16, b.Len())
}

func TestAlign(t *testing.T) {
	b, err := NewBitBuffer(24)
	require.NoError(t, err)
	require.NoError(t, b.WriteBits(0b1, 1))
	require.NoError(t, b.AlignWrite())
	assert.Equal(t, 8, b.Len())
	require.NoError(t, b.AlignWrite())
	assert.Equal(t, 8, b.Len())
	require.NoError(t, b.WriteByte(0x5a))

	_, err = b.ReadBit()
	require.NoError(t, err)
	require.NoError(t, b.AlignRead())
	assert.Equal(t, 8, b.ReadPosition())
	c, err := b.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x5a), c)
}

func TestRandomAccess(t *testing.T) {
	b, err := NewBitBuffer(16)
	require.NoError(t, err)
	require.NoError(t, b.WriteBits(0xa, 4))

	v, err := b.Bit(0)
	require.NoError(t, err)
	assert.True(t, v)
	_, err = b.Bit(4)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	require.NoError(t, b.SetBit(10, true))
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, []byte{0xa0}, b.Bytes(), "bits past Len are masked")

	require.NoError(t, b.SetBits(2, 0b11, 2))
	bits, err := b.Bits(0, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xb), bits)

	assert.ErrorIs(t, b.SetBits(12, 0, 5), ErrIndexOutOfRange)
	_, err = b.Bits(2, 3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRandomAccessHugeOffset(t *testing.T) {
	b := WrapBytes([]byte{0xff})
	_, err := b.Bits(math.MaxInt, 8)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = b.Bits(math.MaxInt-2, 8)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.ErrorIs(t, b.SetBits(math.MaxInt, 1, 8), ErrIndexOutOfRange)
	assert.ErrorIs(t, b.SetBits(math.MaxInt-2, 1, 8), ErrIndexOutOfRange)
}

func TestSeekAndReset(t *testing.T) {
	b := WrapBytes([]byte{0xf0})
	assert.ErrorIs(t, b.SeekRead(9), ErrIndexOutOfRange)
	require.NoError(t, b.SeekRead(4))
	v, err := b.ReadBits(4)
	require.NoError(t, err)
	assert.Zero(t, v)

	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.ReadPosition())
	assert.Equal(t, 8, b.Cap())
}

func TestToList(t *testing.T) {
	b, err := NewBitBuffer(16)
	require.NoError(t, err)
	require.NoError(t, b.WriteBits(0b10110, 5))

	l := b.ToList()
	assert.Equal(t, 5, l.Len())
	assert.Equal(t, "10110", l.String())
}
