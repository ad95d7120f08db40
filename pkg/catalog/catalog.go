// Package catalog resolves symbolic register labels like "GPIOA.ODR"
// into addresses and widths. It is layered strictly above the register
// core: mapped registers never depend on names, only on the resolved
// addresses this package hands out.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mculib/regbits/pkg/hw/mmio"
)

var (
	ErrUnknownName = errors.New("unknown name")
	ErrBadLabel    = errors.New("bad label")
)

func makeError(err error, message string, args ...interface{}) error {
	return fmt.Errorf("%w: "+message, append([]any{err}, args...)...)
}

// Alias groups registers that the platform symbol table does not cover
// directly, addressed through a substitute base and register mapping.
type Alias struct {
	Base      string            `yaml:"base"`
	Registers map[string]string `yaml:"registers"`
}

// Catalog is a platform's register symbol table: peripheral base
// addresses, register offsets relative to their base, and aliases for
// the corners the flat table cannot express.
type Catalog struct {
	Bases     map[string]uint64 `yaml:"bases"`
	Registers map[string]uint64 `yaml:"registers"`
	Aliases   map[string]Alias  `yaml:"aliases"`
}

// Parse reads a catalog from its YAML form.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	return c, nil
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	return Parse(data)
}

// Entry is a fully resolved register label.
type Entry struct {
	Base     string
	Register string
	Addr     uint64
	Width    mmio.Width
}

// Label returns the canonical "BASE.REG" form of the entry.
func (e Entry) Label() string {
	reg := e.Register
	if i := strings.IndexByte(reg, '_'); i >= 0 {
		reg = reg[i+1:]
	}

	return e.Base + "." + reg
}

// Resolve turns a "base.register" label into an address and width.
// Both fields accept unambiguous prefixes of the catalog names.
func (c *Catalog) Resolve(label string) (Entry, error) {
	fields := strings.Split(label, ".")
	if len(fields) != 2 {
		return Entry{}, makeError(ErrBadLabel, "label must be 'base.reg', got '%v'", label)
	}

	base, reg, err := c.identify(fields[0], fields[1])
	if err != nil {
		return Entry{}, err
	}

	baseAddr, ok := c.Bases[base]
	if !ok {
		return Entry{}, makeError(ErrUnknownName, "base '%v'", base)
	}

	offset, ok := c.Registers[reg]
	if !ok {
		return Entry{}, makeError(ErrUnknownName, "register '%v'", reg)
	}

	return Entry{
		Base:     base,
		Register: reg,
		Addr:     baseAddr + offset,
		Width:    RegisterWidth(reg),
	}, nil
}

func (c *Catalog) identify(baseField, regField string) (base, reg string, err error) {
	if alias, ok := c.Aliases[baseField]; ok {
		reg, ok := alias.Registers[regField]
		if !ok {
			return "", "", makeError(ErrUnknownName, "'%v' is not a valid %v register", regField, baseField)
		}
		return alias.Base, reg, nil
	}

	base, err = c.MatchBase(baseField)
	if err != nil {
		return "", "", err
	}

	reg, err = c.MatchRegister(RegisterPrefix(base) + regField)
	if err != nil {
		return "", "", err
	}

	return base, reg, nil
}

// Reg maps the register named by label on the given platform, with the
// width the catalog reports for it.
func (c *Catalog) Reg(p mmio.Platform, label string) (*mmio.Register, error) {
	entry, err := c.Resolve(label)
	if err != nil {
		return nil, err
	}

	return mmio.NewRegister(p, entry.Addr, entry.Width)
}

// RegWithWidth maps the register named by label at an explicit width
// instead of the cataloged one.
func (c *Catalog) RegWithWidth(p mmio.Platform, label string, w mmio.Width) (*mmio.Register, error) {
	entry, err := c.Resolve(label)
	if err != nil {
		return nil, err
	}

	return mmio.NewRegister(p, entry.Addr, w)
}

// RegArray maps a register array from a label list of the form
// "BASE.REG_L, ... ,REG_H", lowest register first.
func (c *Catalog) RegArray(p mmio.Platform, labels string, fieldsPerReg, bitsPerField int) (*mmio.RegisterArray, error) {
	fields := strings.Split(labels, ".")
	if len(fields) != 2 {
		return nil, makeError(ErrBadLabel, "labels must be 'base.reg_L, ... ,reg_H', got '%v'", labels)
	}

	var regs []*mmio.Register
	for _, name := range strings.Split(fields[1], ",") {
		reg, err := c.Reg(p, fields[0]+"."+strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}

	return mmio.NewRegisterArray(regs, fieldsPerReg, bitsPerField)
}

// RegisterPrefix derives the register name prefix a peripheral's
// registers carry from the peripheral base name. Instance suffixes are
// stripped and the platform's historical irregularities applied.
func RegisterPrefix(base string) string {
	prefix := base

	for len(prefix) > 0 && prefix[len(prefix)-1] >= '0' && prefix[len(prefix)-1] <= '9' {
		prefix = prefix[:len(prefix)-1]
	}

	switch {
	case strings.HasPrefix(prefix, "GPIO"):
		// GPIO ports are lettered instead of numbered
		prefix = prefix[:len(prefix)-1]
	case prefix == "UART":
		prefix = "USART"
	case strings.HasPrefix(prefix, "I2S"):
		// I2SxEXT instances reuse the SPI register block
		prefix = "SPI"
	}

	return prefix + "_"
}

// RegisterWidth returns the access width of a cataloged register. The
// BSRR half-word pair is the only 16 bits exception.
func RegisterWidth(name string) mmio.Width {
	if len(name) > 0 && strings.HasSuffix(name[:len(name)-1], "_BSRR") {
		return mmio.Width16
	}

	return mmio.Width32
}
