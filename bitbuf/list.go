package bitbuf

import (
	"bytes"
	"fmt"
	"math"
	"math/bits"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
)

// BitArrayList is a growable list of bits. The backing storage doubles when
// full. Bits past Len() are kept zero.
//
// BitArrayList is not safe for concurrent use.
type BitArrayList struct {
	data []byte
	n    int
}

// NewBitArrayList creates an empty list with room for capacityHint bits.
func NewBitArrayList(capacityHint int) *BitArrayList {
	return &BitArrayList{data: make([]byte, bytesFor(max(capacityHint, 0)))}
}

// Len returns the number of bits in the list.
func (l *BitArrayList) Len() int { return l.n }

func (l *BitArrayList) grow(bitsNeeded int) {
	need := bytesFor(bitsNeeded)
	if need <= len(l.data) {
		return
	}
	size := max(2*len(l.data), need, 8)
	data := make([]byte, size)
	copy(data, l.data)
	l.data = data
}

// Add appends one bit.
func (l *BitArrayList) Add(v bool) {
	l.grow(l.n + 1)
	setBit(l.data, l.n, v)
	l.n++
}

// AddBits appends the low n bits of v.
func (l *BitArrayList) AddBits(v uint64, n int) error {
	if err := checkCount(n); err != nil {
		return fmt.Errorf("bitbuf: add %d bits: %w", n, err)
	}
	l.grow(l.n + n)
	writeBits(l.data, l.n, v, n)
	l.n += n
	return nil
}

// AddBytes appends 8 bits per byte of p.
func (l *BitArrayList) AddBytes(p []byte) {
	l.grow(l.n + len(p)*8)
	if l.n&7 == 0 {
		copy(l.data[l.n>>3:], p)
		l.n += len(p) * 8
		return
	}
	for _, c := range p {
		writeBits(l.data, l.n, uint64(c), 8)
		l.n += 8
	}
}

func (l *BitArrayList) checkIndex(i int) error {
	if i < 0 || i >= l.n {
		return fmt.Errorf("bitbuf: index %d of %d: %w", i, l.n, ErrIndexOutOfRange)
	}
	return nil
}

func (l *BitArrayList) checkSpan(off, n int) error {
	if err := checkCount(n); err != nil {
		return fmt.Errorf("bitbuf: %d bits: %w", n, err)
	}
	if off < 0 || off > l.n-n {
		return fmt.Errorf("bitbuf: %d bits at %d of %d: %w", n, off, l.n, ErrIndexOutOfRange)
	}
	return nil
}

// Get returns bit i.
func (l *BitArrayList) Get(i int) (bool, error) {
	if err := l.checkIndex(i); err != nil {
		return false, err
	}
	return getBit(l.data, i), nil
}

// Set overwrites bit i.
func (l *BitArrayList) Set(i int, v bool) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	setBit(l.data, i, v)
	return nil
}

// GetBits returns n bits starting at off, right-aligned.
func (l *BitArrayList) GetBits(off, n int) (uint64, error) {
	if err := l.checkSpan(off, n); err != nil {
		return 0, err
	}
	return readBits(l.data, off, n), nil
}

// SetBits overwrites n bits starting at off with the low n bits of v.
func (l *BitArrayList) SetBits(off int, v uint64, n int) error {
	if err := l.checkSpan(off, n); err != nil {
		return err
	}
	writeBits(l.data, off, v, n)
	return nil
}

// Insert places v at index i, 0 <= i <= Len(), shifting later bits up by one.
func (l *BitArrayList) Insert(i int, v bool) error {
	if i < 0 || i > l.n {
		return fmt.Errorf("bitbuf: insert at %d of %d: %w", i, l.n, ErrIndexOutOfRange)
	}
	l.grow(l.n + 1)
	l.shift(i, l.n, 1)
	setBit(l.data, i, v)
	l.n++
	return nil
}

// RemoveAt deletes bit i, shifting later bits down by one, and returns it.
func (l *BitArrayList) RemoveAt(i int) (bool, error) {
	if err := l.checkIndex(i); err != nil {
		return false, err
	}
	v := getBit(l.data, i)
	l.shift(i+1, l.n, -1)
	l.n--
	setBit(l.data, l.n, false)
	return v, nil
}

// RemoveLast deletes and returns the last bit.
func (l *BitArrayList) RemoveLast() (bool, error) {
	return l.RemoveAt(l.n - 1)
}

// shift moves bits [from, to) by delta (+1 or -1) positions, 64 bits at a
// time, walking in the direction that never overwrites unread source bits.
func (l *BitArrayList) shift(from, to, delta int) {
	if delta > 0 {
		for end := to; end > from; {
			n := min(64, end-from)
			start := end - n
			writeBits(l.data, start+delta, readBits(l.data, start, n), n)
			end = start
		}
		return
	}
	for start := from; start < to; {
		n := min(64, to-start)
		writeBits(l.data, start+delta, readBits(l.data, start, n), n)
		start += n
	}
}

// Truncate shortens the list to n bits.
func (l *BitArrayList) Truncate(n int) error {
	if n < 0 || n > l.n {
		return fmt.Errorf("bitbuf: truncate to %d of %d: %w", n, l.n, ErrIndexOutOfRange)
	}
	end := bytesFor(l.n)
	if r := n & 7; r != 0 {
		l.data[n>>3] &^= lowMask(8 - r)
	}
	clear(l.data[bytesFor(n):end])
	l.n = n
	return nil
}

// Clear removes all bits but keeps the storage.
func (l *BitArrayList) Clear() {
	clear(l.data)
	l.n = 0
}

// Cardinality returns the number of set bits.
func (l *BitArrayList) Cardinality() int {
	c := 0
	for _, b := range l.data[:bytesFor(l.n)] {
		c += bits.OnesCount8(b)
	}
	return c
}

// Bytes returns a copy of the bits packed MSB first; trailing bits are zero.
func (l *BitArrayList) Bytes() []byte {
	return bytes.Clone(l.data[:bytesFor(l.n)])
}

// Clone returns an independent copy.
func (l *BitArrayList) Clone() *BitArrayList {
	return &BitArrayList{data: bytes.Clone(l.data), n: l.n}
}

// Equal reports whether both lists hold the same bits.
func (l *BitArrayList) Equal(o *BitArrayList) bool {
	if l.n != o.n {
		return false
	}
	return bytes.Equal(l.data[:bytesFor(l.n)], o.data[:bytesFor(o.n)])
}

// String renders the bits as '0' and '1' characters.
func (l *BitArrayList) String() string {
	var sb strings.Builder
	sb.Grow(l.n)
	for i := range l.n {
		if getBit(l.data, i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// eachSet calls fn with the index of every set bit below limit, ascending.
func (l *BitArrayList) eachSet(limit int, fn func(i int)) {
	limit = min(limit, l.n)
	for bi, b := range l.data[:bytesFor(limit)] {
		for b != 0 {
			lead := bits.LeadingZeros8(b)
			i := bi*8 + lead
			if i >= limit {
				return
			}
			fn(i)
			b &^= 0x80 >> lead
		}
	}
}

// BitSet converts the list to a bitset where bit i is set when list bit i is 1.
func (l *BitArrayList) BitSet() *bitset.BitSet {
	bs := bitset.New(uint(l.n))
	l.eachSet(l.n, func(i int) { bs.Set(uint(i)) })
	return bs
}

// FromBitSet builds a list of length bits from bs.
func FromBitSet(bs *bitset.BitSet, length int) *BitArrayList {
	l := NewBitArrayList(length)
	l.n = max(length, 0)
	for i, ok := bs.NextSet(0); ok && i < uint(l.n); i, ok = bs.NextSet(i + 1) {
		setBit(l.data, int(i), true)
	}
	return l
}

// Roaring converts the indices of set bits to a roaring bitmap. Only the
// first 2^32 bits can be represented.
func (l *BitArrayList) Roaring() *roaring.Bitmap {
	rb := roaring.New()
	l.eachSet(l.n, func(i int) {
		if uint64(i) <= math.MaxUint32 {
			rb.Add(uint32(i))
		}
	})
	return rb
}

// FromRoaring builds a list of length bits with the bitmap's members set.
// Members at or beyond length are ignored.
func FromRoaring(rb *roaring.Bitmap, length int) *BitArrayList {
	l := NewBitArrayList(length)
	l.n = max(length, 0)
	it := rb.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if i >= l.n {
			break
		}
		setBit(l.data, i, true)
	}
	return l
}
