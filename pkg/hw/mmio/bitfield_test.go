package mmio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidthValidate(t *testing.T) {
	for _, w := range []Width{Width8, Width16, Width32} {
		assert.NoError(t, w.Validate())
	}

	for _, w := range []Width{0, 1, 7, 9, 24, 64, -8} {
		assert.ErrorIs(t, Width(w).Validate(), ErrInvalidWidth)
	}
}

func TestWidthMax(t *testing.T) {
	assert.Equal(t, uint32(0xFF), Width8.Max())
	assert.Equal(t, uint32(0xFFFF), Width16.Max())
	assert.Equal(t, uint32(0xFFFFFFFF), Width32.Max())
}

func TestCheckBitIndex(t *testing.T) {
	for _, w := range []Width{Width8, Width16, Width32} {
		assert.NoError(t, CheckBitIndex(0, w))
		assert.NoError(t, CheckBitIndex(int(w)-1, w))
		assert.ErrorIs(t, CheckBitIndex(-1, w), ErrIndexOutOfRange)
		assert.ErrorIs(t, CheckBitIndex(int(w), w), ErrIndexOutOfRange)
	}

	assert.ErrorIs(t, CheckBitIndex(0, 12), ErrInvalidWidth)
}

func TestCheckValue(t *testing.T) {
	assert.NoError(t, CheckValue(0xFF, Width8))
	assert.ErrorIs(t, CheckValue(0x100, Width8), ErrValueOutOfRange)
	assert.NoError(t, CheckValue(0xFFFF, Width16))
	assert.ErrorIs(t, CheckValue(0x10000, Width16), ErrValueOutOfRange)
	assert.NoError(t, CheckValue(0xFFFFFFFF, Width32))
}

func TestFieldSpecValidate(t *testing.T) {
	cases := []struct {
		name    string
		field   FieldSpec
		width   Width
		wantErr error
	}{
		{"single bit", FieldSpec{1, 0}, Width32, nil},
		{"full width", FieldSpec{32, 0}, Width32, nil},
		{"top bit", FieldSpec{1, 31}, Width32, nil},
		{"zero bits", FieldSpec{0, 0}, Width32, ErrInvalidFieldSpec},
		{"too many bits", FieldSpec{33, 0}, Width32, ErrInvalidFieldSpec},
		{"negative low", FieldSpec{1, -1}, Width32, ErrInvalidFieldSpec},
		{"low past top", FieldSpec{1, 32}, Width32, ErrInvalidFieldSpec},
		{"overflows width", FieldSpec{4, 30}, Width32, ErrInvalidFieldSpec},
		{"overflows narrow width", FieldSpec{8, 1}, Width8, ErrInvalidFieldSpec},
		{"bad width", FieldSpec{1, 0}, 24, ErrInvalidWidth},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.field.Validate(c.width)
			if c.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, c.wantErr)
			}
		})
	}
}

func TestExtractField(t *testing.T) {
	value, err := ExtractField(0xABCD1234, FieldSpec{NumBits: 8, Low: 8}, Width32)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12), value)

	value, err = ExtractField(0xABCD1234, FieldSpec{NumBits: 4, Low: 0}, Width32)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x4), value)

	value, err = ExtractField(0xABCD1234, FieldSpec{NumBits: 32, Low: 0}, Width32)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xABCD1234), value)

	_, err = ExtractField(0x100, FieldSpec{NumBits: 1, Low: 0}, Width8)
	assert.ErrorIs(t, err, ErrValueOutOfRange)

	_, err = ExtractField(0, FieldSpec{NumBits: 9, Low: 0}, Width8)
	assert.ErrorIs(t, err, ErrInvalidFieldSpec)
}

func TestWriteMasks(t *testing.T) {
	shifted, mask, err := WriteMasks(0xA, FieldSpec{NumBits: 4, Low: 8}, Width32)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xA00), shifted)
	assert.Equal(t, uint32(0xF00), mask)

	// The field value must fit the field, not the register
	_, _, err = WriteMasks(0x10, FieldSpec{NumBits: 4, Low: 8}, Width32)
	assert.ErrorIs(t, err, ErrValueOutOfRange)

	_, _, err = WriteMasks(0, FieldSpec{NumBits: 4, Low: 30}, Width32)
	assert.ErrorIs(t, err, ErrInvalidFieldSpec)
}

// Extracting a field out of its own write masks must give the field
// value back, for every width and every field geometry.
func TestMaskRoundTrip(t *testing.T) {
	for _, w := range []Width{Width8, Width16, Width32} {
		for numBits := 1; numBits <= int(w); numBits++ {
			for low := 0; low+numBits <= int(w); low++ {
				field := FieldSpec{NumBits: numBits, Low: low}
				value := uint32(0xA5A5A5A5) & allOnes[uint32](numBits)

				shifted, mask, err := WriteMasks(value, field, w)
				require.NoError(t, err)
				assert.Equal(t, shifted, shifted&mask)

				back, err := ExtractField(shifted, field, w)
				require.NoError(t, err)
				assert.Equal(t, value, back, "width %v num_bits %v low %v", w, numBits, low)
			}
		}
	}
}
