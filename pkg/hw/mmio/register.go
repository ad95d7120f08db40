package mmio

// ByteOrder is the endian-ness of the host, used to locate half-word
// and byte lanes within an aligned 32 bits word.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big"
	}
	return "little"
}

// InterruptState is the opaque interrupt mask state returned by
// Platform.DisableInterrupts and handed back on restore.
type InterruptState uint32

// Platform is the narrow hardware surface the register abstraction
// runs on: raw memory access, interrupt masking and host byte order.
// Full-width reads and writes are assumed atomic by the hardware, so
// the accessors are infallible; every error this package reports is a
// validation failure raised before any platform access.
type Platform interface {
	Read(addr uint32, w Width) uint32
	Write(addr uint32, w Width, value uint32)
	DisableInterrupts() InterruptState
	RestoreInterrupts(state InterruptState)
	ByteOrder() ByteOrder
}

// Register is a single memory mapped hardware register of a fixed
// width. Two registers may deliberately alias the same underlying
// word, e.g. after Derive.
type Register struct {
	platform Platform
	addr     uint32
	width    Width
}

// NewRegister maps the register of the given width at addr. The
// address is truncated to 32 bits.
func NewRegister(p Platform, addr uint64, w Width) (*Register, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	return &Register{
		platform: p,
		addr:     uint32(addr & 0xFFFFFFFF),
		width:    w,
	}, nil
}

// Addr returns the mapped address.
func (r *Register) Addr() uint32 {
	return r.addr
}

// Width returns the register width in bits.
func (r *Register) Width() Width {
	return r.width
}

// Read returns the full register value, masked to the register width.
func (r *Register) Read() uint32 {
	return r.platform.Read(r.addr, r.width) & r.width.Max()
}

// Write stores a full-width value. A full-width store is hardware
// atomic and needs no interrupt protection.
func (r *Register) Write(value uint32) error {
	if err := CheckValue(value, r.width); err != nil {
		return err
	}

	r.platform.Write(r.addr, r.width, value)

	return nil
}

// ReadField returns the value of the bits selected by key.
func (r *Register) ReadField(key Key) (uint32, error) {
	field, err := key.Spec(r.width)
	if err != nil {
		return 0, err
	}

	return ExtractField(r.Read(), field, r.width)
}

// WriteField updates the bits selected by key and leaves every other
// bit of the register untouched. The read-modify-write runs with
// interrupts masked so a handler touching the same register never
// observes a half applied update.
func (r *Register) WriteField(key Key, value uint32) error {
	field, err := key.Spec(r.width)
	if err != nil {
		return err
	}

	shifted, mask, err := WriteMasks(value, field, r.width)
	if err != nil {
		return err
	}

	r.update(shifted, mask)

	return nil
}

// update merges the already validated and shifted field value into the
// register inside an interrupt critical section. The prior interrupt
// state is restored on every exit path.
func (r *Register) update(shifted, mask uint32) {
	state := r.platform.DisableInterrupts()
	defer r.platform.RestoreInterrupts(state)

	old := r.platform.Read(r.addr, r.width)
	r.platform.Write(r.addr, r.width, old^((old^shifted)&mask))
}

// Bits reads the register once and extracts each requested bit number
// from that single snapshot, so all returned bits are consistent with
// each other as of one instant.
func (r *Register) Bits(bits ...int) ([]int, error) {
	for _, n := range bits {
		if err := CheckBitIndex(n, r.width); err != nil {
			return nil, err
		}
	}

	value := r.Read()

	out := make([]int, len(bits))
	for i, n := range bits {
		out[i] = int((value >> n) & 1)
	}

	return out, nil
}
