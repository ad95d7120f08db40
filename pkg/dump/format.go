package dump

import (
	"fmt"
	"strconv"
)

// Formats an uint value into a fixed width binary string of n bits
func FormatUintBinary(value uint64, bits int) string {
	leadingZerosFormat := "%0" + fmt.Sprint(bits) + "s"
	return fmt.Sprintf(leadingZerosFormat, strconv.FormatUint(value, 2))
}

// Formats an uint value into a fixed width hex string of n characters
func FormatUintHex(value uint64, nibbles int) string {
	leadingZerosFormat := "%0" + fmt.Sprint(nibbles) + "s"
	return fmt.Sprintf(leadingZerosFormat, strconv.FormatUint(value, 16))
}

// Formats a count with its description, adding the plural 's' if the
// count is not one
func FormatPlural(count int, desc string) string {
	if count == 1 {
		return fmt.Sprintf("%v %v", count, desc)
	}
	return fmt.Sprintf("%v %vs", count, desc)
}
