package mmio

import (
	"golang.org/x/exp/constraints"
)

// Width is the size in bits of a mapped register or of a value stored
// in one.
type Width int

const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
)

// Validate fails unless the width is one the hardware can access in a
// single load or store.
func (w Width) Validate() error {
	switch w {
	case Width8, Width16, Width32:
		return nil
	}
	return makeError(ErrInvalidWidth, "width must be 32, 16 or 8, got %v", int(w))
}

// Bytes returns the width in bytes.
func (w Width) Bytes() int {
	return int(w) / 8
}

// Max returns the largest unsigned value representable in w bits.
func (w Width) Max() uint32 {
	return allOnes[uint32](int(w))
}

// Returns an all ones bitmask of n bits of the given unsigned integer type
func allOnes[T constraints.Unsigned](bits int) T {
	return (T(1) << bits) - T(1)
}

// CheckBitIndex fails unless n addresses a bit of a w bits register.
func CheckBitIndex(n int, w Width) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if n < 0 || n > int(w)-1 {
		return makeError(ErrIndexOutOfRange, "bit numbers must be 0-%v, got %v", int(w)-1, n)
	}
	return nil
}

// CheckValue fails unless v is representable in w bits.
func CheckValue(v uint32, w Width) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if v > w.Max() {
		return makeError(ErrValueOutOfRange, "value must be 0-0x%X, got 0x%X", w.Max(), v)
	}
	return nil
}

func checkValueFits(v uint32, bits int) error {
	if max := allOnes[uint32](bits); v > max {
		return makeError(ErrValueOutOfRange, "field value must be 0-0x%X, got 0x%X", max, v)
	}
	return nil
}

// FieldSpec describes a contiguous run of bits within a register: how
// many bits it spans and the position of its lowest bit.
type FieldSpec struct {
	NumBits int
	Low     int
}

// Validate fails unless the field fits entirely inside a w bits
// register.
func (f FieldSpec) Validate(w Width) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if f.NumBits < 1 || f.NumBits > int(w) {
		return makeError(ErrInvalidFieldSpec, "num_bits must be 1-%v, got %v", int(w), f.NumBits)
	}
	if f.Low < 0 || f.Low > int(w)-1 {
		return makeError(ErrInvalidFieldSpec, "low position must be 0-%v, got %v", int(w)-1, f.Low)
	}
	if f.NumBits+f.Low > int(w) {
		return makeError(ErrInvalidFieldSpec, "num_bits + low position must be <= %v, got %v", int(w), f.NumBits+f.Low)
	}
	return nil
}

// Mask returns the in-place bitmask covering the field.
func (f FieldSpec) Mask() uint32 {
	return allOnes[uint32](f.NumBits) << f.Low
}

// ExtractField returns the value of the field within a full register
// value.
func ExtractField(val uint32, field FieldSpec, w Width) (uint32, error) {
	if err := field.Validate(w); err != nil {
		return 0, err
	}
	if err := CheckValue(val, w); err != nil {
		return 0, err
	}
	return (val >> field.Low) & allOnes[uint32](field.NumBits), nil
}

// WriteMasks returns the field value shifted into place and the mask
// selecting the field's bits, ready for a masked register update.
func WriteMasks(val uint32, field FieldSpec, w Width) (shifted, mask uint32, err error) {
	if err = field.Validate(w); err != nil {
		return 0, 0, err
	}
	if err = checkValueFits(val, field.NumBits); err != nil {
		return 0, 0, err
	}
	return val << field.Low, field.Mask(), nil
}
