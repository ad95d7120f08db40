package dump

import (
	"fmt"
	"strings"

	"github.com/mculib/regbits/pkg/hw/mmio"
)

// FrameField is one named bit field inside a register layout diagram.
type FrameField struct {
	Name string
	Low  int
	Bits int
}

func writeCentered(text string, filler string, length int, builder *strings.Builder) {
	if len(text) > length {
		panic(fmt.Errorf("text '%v' is %v chars long but target length is only %v chars", text, len(text), length))
	}

	leftpad := (length - len(text)) / 2
	rightpad := length - len(text) - leftpad

	builder.WriteString(strings.Repeat(filler, leftpad))
	builder.WriteString(text)
	builder.WriteString(strings.Repeat(filler, rightpad))
}

func fillFrameGaps(fields []FrameField, width int) []FrameField {
	result := make([]FrameField, 0, len(fields))
	currentBit := 0

	for _, field := range fields {
		if field.Low > currentBit {
			result = append(result, FrameField{
				Name: "(unused)",
				Low:  currentBit,
				Bits: field.Low - currentBit,
			})
		} else if field.Low < currentBit {
			panic("make sure fields are sorted by position and are not overlapping")
		}

		result = append(result, field)
		currentBit = field.Low + field.Bits
	}

	if currentBit < width {
		result = append(result, FrameField{
			Name: "(unused)",
			Low:  currentBit,
			Bits: width - currentBit,
		})
	}

	return result
}

// Frame draws an ascii diagram of a register's bit layout with the
// most significant bit on the left. Fields must be sorted by position,
// lowest first; gaps are drawn as unused fields.
func Frame(fields []FrameField, width int) string {
	all := fillFrameGaps(fields, width)

	type entry struct {
		index     string
		name      string
		span      string
		minLength int
	}

	entries := make([]entry, len(all))
	for i := range entries {
		field := all[len(all)-1-i]
		e := &entries[i]

		e.index = fmt.Sprint(field.Low + field.Bits - 1)
		e.name = fmt.Sprintf(" %v ", field.Name)
		e.span = fmt.Sprintf(" %v ", FormatPlural(field.Bits, "bit"))
		e.minLength = max(len(e.index), len(e.name), len("<-")+len(e.span)+len("->"))
	}

	var indices, border, body, spans strings.Builder

	for _, e := range entries {
		indices.WriteString(e.index)
		indices.WriteString(strings.Repeat(" ", e.minLength-len(e.index)+1))

		border.WriteString("+")
		border.WriteString(strings.Repeat("-", e.minLength))

		body.WriteString("|")
		writeCentered(e.name, " ", e.minLength, &body)

		spans.WriteString(" <-")
		writeCentered(e.span, "-", e.minLength-len("<-")-len("->"), &spans)
		spans.WriteString("->")
	}

	indices.WriteString("0")
	border.WriteString("+")
	body.WriteString("|")

	borderRow := border.String()

	return strings.Join([]string{
		indices.String(),
		borderRow,
		body.String(),
		borderRow,
		spans.String(),
		"",
	}, "\n")
}

// ArrayLayout draws the field layout of one register of an array,
// fields named by their flat index within the first register.
func ArrayLayout(a *mmio.RegisterArray) string {
	fields := make([]FrameField, a.FieldsPerRegister())
	for i := range fields {
		fields[i] = FrameField{
			Name: fmt.Sprintf("[%v]", i),
			Low:  i * a.BitsPerField(),
			Bits: a.BitsPerField(),
		}
	}

	return Frame(fields, 32)
}
