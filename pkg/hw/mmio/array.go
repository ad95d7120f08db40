package mmio

// RegisterArray treats an ordered list of 32 bits registers as one
// concatenated bit vector, sliced into equal size fields addressed by
// a flat index. Register 0 holds the least significant fields.
type RegisterArray struct {
	regs         []*Register
	fieldsPerReg int
	bitsPerField int
}

// NewRegisterArray builds an array over already mapped registers.
// Every register must be 32 bits wide and the field geometry must fit
// a single register.
func NewRegisterArray(regs []*Register, fieldsPerReg, bitsPerField int) (*RegisterArray, error) {
	for i, r := range regs {
		if r.Width() != Width32 {
			return nil, makeError(ErrInvalidRegisterWidth, "register %v is %v bits, registers in an array must be 32 bits", i, int(r.Width()))
		}
	}

	if fieldsPerReg < 1 || bitsPerField < 1 || fieldsPerReg*bitsPerField > 32 {
		return nil, makeError(ErrInvalidFieldSpec, "%v fields x %v bits must be 1-32", fieldsPerReg, bitsPerField)
	}

	return &RegisterArray{
		regs:         regs,
		fieldsPerReg: fieldsPerReg,
		bitsPerField: bitsPerField,
	}, nil
}

// Len returns the number of addressable fields.
func (a *RegisterArray) Len() int {
	return len(a.regs) * a.fieldsPerReg
}

// FieldsPerRegister returns how many fields each register holds.
func (a *RegisterArray) FieldsPerRegister() int {
	return a.fieldsPerReg
}

// BitsPerField returns the size of each field in bits.
func (a *RegisterArray) BitsPerField() int {
	return a.bitsPerField
}

// Registers returns the member registers in order.
func (a *RegisterArray) Registers() []*Register {
	return a.regs
}

// Locate decomposes a flat field index into the member register
// holding the field and the field's bit bounds within it.
func (a *RegisterArray) Locate(index int) (reg, hiBit, loBit int, err error) {
	if index < 0 || index > a.Len()-1 {
		return 0, 0, 0, makeError(ErrIndexOutOfRange, "index must be 0-%v, got %v", a.Len()-1, index)
	}

	reg, pos := index/a.fieldsPerReg, index%a.fieldsPerReg
	loBit = pos * a.bitsPerField
	hiBit = loBit + a.bitsPerField - 1

	return reg, hiBit, loBit, nil
}

// ReadField returns the value of the field at the flat index.
func (a *RegisterArray) ReadField(index int) (uint32, error) {
	reg, hiBit, loBit, err := a.Locate(index)
	if err != nil {
		return 0, err
	}

	return a.regs[reg].ReadField(Span(hiBit, loBit))
}

// WriteField updates the field at the flat index, leaving every other
// field of the array untouched.
func (a *RegisterArray) WriteField(index int, value uint32) error {
	reg, hiBit, loBit, err := a.Locate(index)
	if err != nil {
		return err
	}

	return a.regs[reg].WriteField(Span(hiBit, loBit), value)
}
