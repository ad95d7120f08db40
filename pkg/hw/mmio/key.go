package mmio

import (
	"fmt"
	"strconv"
	"strings"
)

// Key selects the bits of a register an indexed access operates on:
// a single bit, a span of bits, or the whole register.
type Key struct {
	kind keyKind
	high int
	low  int
}

type keyKind int

const (
	keyBit keyKind = iota
	keySpan
	keyWhole
)

// Bit addresses a single bit.
func Bit(n int) Key {
	return Key{kind: keyBit, high: n, low: n}
}

// Span addresses the contiguous bits from high down to low, both
// inclusive. Reversed bounds are accepted and swapped.
func Span(high, low int) Key {
	return Key{kind: keySpan, high: high, low: low}
}

// Whole addresses every bit of the register.
func Whole() Key {
	return Key{kind: keyWhole}
}

// Spec resolves the key against a register width.
func (k Key) Spec(w Width) (FieldSpec, error) {
	if err := w.Validate(); err != nil {
		return FieldSpec{}, err
	}

	if k.kind == keyWhole {
		return FieldSpec{NumBits: int(w), Low: 0}, nil
	}

	hi, lo := k.high, k.low
	if lo > hi {
		hi, lo = lo, hi
	}

	for _, n := range [2]int{hi, lo} {
		if err := CheckBitIndex(n, w); err != nil {
			return FieldSpec{}, err
		}
	}

	return FieldSpec{NumBits: hi - lo + 1, Low: lo}, nil
}

func (k Key) String() string {
	switch k.kind {
	case keyWhole:
		return ":"
	case keyBit:
		return strconv.Itoa(k.low)
	default:
		return fmt.Sprintf("%v:%v", k.high, k.low)
	}
}

// ParseKey parses the textual forms of a key: "n" for a single bit,
// "hi:lo" for a bit span and ":" for the whole register. A stride
// ("a:b:c") or a span with only one endpoint given is rejected.
func ParseKey(s string) (Key, error) {
	const usage = "index must be 'bit', 'bit_h:bit_l' or ':'"

	parts := strings.Split(strings.TrimSpace(s), ":")

	switch len(parts) {
	case 1:
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			return Key{}, makeError(ErrInvalidIndexKey, "%v, got '%v'", usage, s)
		}
		return Bit(n), nil

	case 2:
		if parts[0] == "" && parts[1] == "" {
			return Whole(), nil
		}
		if parts[0] == "" || parts[1] == "" {
			return Key{}, makeError(ErrInvalidIndexKey, "%v, got '%v'", usage, s)
		}
		hi, err := strconv.Atoi(parts[0])
		if err != nil {
			return Key{}, makeError(ErrInvalidIndexKey, "%v, got '%v'", usage, s)
		}
		lo, err := strconv.Atoi(parts[1])
		if err != nil {
			return Key{}, makeError(ErrInvalidIndexKey, "%v, got '%v'", usage, s)
		}
		return Span(hi, lo), nil

	default:
		return Key{}, makeError(ErrInvalidIndexKey, "%v, got '%v'", usage, s)
	}
}
