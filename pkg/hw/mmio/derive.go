package mmio

// ValueType tags a view over an aligned 32 bits word: the view's width
// and which half-word or byte lane it covers.
type ValueType string

const (
	Word32  ValueType = "32"  // full word
	Half16L ValueType = "16L" // low half-word
	Half16H ValueType = "16H" // high half-word
	Byte8Ll ValueType = "8Ll" // low half-word, low byte
	Byte8Lh ValueType = "8Lh" // low half-word, high byte
	Byte8Hl ValueType = "8Hl" // high half-word, low byte
	Byte8Hh ValueType = "8Hh" // high half-word, high byte
)

// Width plus little- and big-endian byte offsets within the aligned word
var valueTypes = map[ValueType]struct {
	width    Width
	leOffset uint32
	beOffset uint32
}{
	Word32:  {Width32, 0, 0},
	Half16L: {Width16, 0, 2},
	Half16H: {Width16, 2, 0},
	Byte8Ll: {Width8, 0, 3},
	Byte8Lh: {Width8, 1, 2},
	Byte8Hl: {Width8, 2, 1},
	Byte8Hh: {Width8, 3, 0},
}

// ParseValueType fails unless tag names one of the known value types.
func ParseValueType(tag string) (ValueType, error) {
	if _, ok := valueTypes[ValueType(tag)]; !ok {
		return "", makeError(ErrUnknownValueType, "'%v'", tag)
	}
	return ValueType(tag), nil
}

// Derive maps a new register over the same aligned 32 bits word as r,
// reinterpreted at the width and byte lane named by tag. The new view
// is always anchored to the containing aligned word, regardless of
// r's own offset within it. The byte lane is selected by the
// platform's byte order.
func (r *Register) Derive(tag ValueType) (*Register, error) {
	info, ok := valueTypes[tag]
	if !ok {
		return nil, makeError(ErrUnknownValueType, "'%v'", tag)
	}

	offset := info.leOffset
	if r.platform.ByteOrder() == BigEndian {
		offset = info.beOffset
	}

	return NewRegister(r.platform, uint64(r.addr&^3)+uint64(offset), info.width)
}
