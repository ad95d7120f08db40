// Package dump renders registers and register arrays for humans. It
// is a pure consumer of the register read operations and never writes
// hardware.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mculib/regbits/pkg/catalog"
	"github.com/mculib/regbits/pkg/hw/mmio"
)

var (
	colorHeader = color.New(color.FgHiBlack)
	colorLabel  = color.New(color.FgCyan)
	colorHex    = color.New(color.FgMagenta)
)

// Value prints a labelled value as hex plus per-byte binary, under a
// ruler of bit positions.
func Value(w io.Writer, label string, val uint32, width mmio.Width) error {
	if err := mmio.CheckValue(val, width); err != nil {
		return err
	}

	nibbles := int(width) / 4

	// Pad before colorizing, the escape codes would break the columns
	header := fmt.Sprintf("%-16s %*s ", "", nibbles, "0x")
	content := colorLabel.Sprintf("%-16s", label) + " " + colorHex.Sprint(FormatUintHex(uint64(val), nibbles)) + " "

	for x := int(width); x > 0; x -= 8 {
		header += fmt.Sprintf("  %2d------%-2d", x-1, x-8)
		content += fmt.Sprintf("   %s ", FormatUintBinary(uint64(val>>(x-8))&0xFF, 8))
	}

	fmt.Fprintln(w, colorHeader.Sprint(header))
	fmt.Fprintln(w, content)

	return nil
}

// Register prints a register's current value.
func Register(w io.Writer, label string, r *mmio.Register) error {
	return Value(w, label, r.Read(), r.Width())
}

// Base prints every cataloged register of a peripheral, 32 bits
// registers first, then 16 bits ones.
func Base(w io.Writer, c *catalog.Catalog, p mmio.Platform, base string) error {
	if alias, ok := c.Aliases[base]; ok {
		return aliasBase(w, c, p, base, alias)
	}

	name, err := c.MatchBase(base)
	if err != nil {
		return err
	}

	for _, width := range []mmio.Width{mmio.Width32, mmio.Width16} {
		for _, regName := range c.RegisterNames(name, width) {
			entry := catalog.Entry{Base: name, Register: regName}
			reg, err := mmio.NewRegister(p, c.Bases[name]+c.Registers[regName], width)
			if err != nil {
				return err
			}
			if err := Register(w, entry.Label(), reg); err != nil {
				return err
			}
		}
		fmt.Fprintln(w)
	}

	return nil
}

func aliasBase(w io.Writer, c *catalog.Catalog, p mmio.Platform, name string, alias catalog.Alias) error {
	for short := range alias.Registers {
		reg, err := c.Reg(p, name+"."+short)
		if err != nil {
			return err
		}
		if err := Register(w, name+"."+short, reg); err != nil {
			return err
		}
	}

	return nil
}

// Array prints a register array as a grid of field values in binary,
// one row per register, highest field first. Labels name the member
// registers in array order; missing labels fall back to the index.
func Array(w io.Writer, a *mmio.RegisterArray, labels []string) error {
	regs := a.Registers()
	idx := a.Len() - 1

	for ri := len(regs) - 1; ri >= 0; ri-- {
		label := fmt.Sprintf("[%v]", ri)
		if ri < len(labels) {
			label = labels[ri]
		}

		header := fmt.Sprintf("%-16s %8s   ", "", "0x")
		row := colorLabel.Sprintf("%-16s", label) + fmt.Sprintf(" %08X   ", regs[ri].Read())

		for n := 0; n < a.FieldsPerRegister(); n++ {
			header += fmt.Sprintf("%*v ", a.BitsPerField()+1, idx-n)

			field, err := a.ReadField(idx - n)
			if err != nil {
				return err
			}
			row += fmt.Sprintf("%s  ", FormatUintBinary(uint64(field), a.BitsPerField()))
		}

		fmt.Fprintln(w, colorHeader.Sprint(header))
		fmt.Fprintln(w, row)

		idx -= a.FieldsPerRegister()
	}

	return nil
}

// Describe returns a one line description of an array's geometry.
func Describe(a *mmio.RegisterArray) string {
	var b strings.Builder

	b.WriteString("Array of " + FormatPlural(len(a.Registers()), "register"))
	b.WriteString(" with " + FormatPlural(a.FieldsPerRegister(), "field") + "/register")
	b.WriteString(", " + FormatPlural(a.BitsPerField(), "bit") + "/field")

	return b.String()
}
