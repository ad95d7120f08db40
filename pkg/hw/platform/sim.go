package platform

import (
	"github.com/mculib/regbits/pkg/hw/mmio"
)

const simPageSize = 0x1000

// Sim is an in-memory 32 bits address space for exercising register
// code off target. Backing pages are allocated on first write and
// reads of untouched memory return zero. The simulated interrupt
// controller delivers a pending handler at memory access boundaries
// while interrupts are enabled, which is the preemption model the
// masked field update has to survive.
type Sim struct {
	order mmio.ByteOrder
	pages map[uint32][]byte

	irqEnabled bool
	pending    func()

	reads    int
	writes   int
	disables int
	restores int
}

// NewSim creates a little endian simulated address space with
// interrupts enabled.
func NewSim() *Sim {
	return NewSimWithOrder(mmio.LittleEndian)
}

// NewSimWithOrder creates a simulated address space with the given
// byte order.
func NewSimWithOrder(order mmio.ByteOrder) *Sim {
	return &Sim{
		order:      order,
		pages:      map[uint32][]byte{},
		irqEnabled: true,
	}
}

func (s *Sim) page(addr uint32, alloc bool) []byte {
	base := addr &^ (simPageSize - 1)

	page, ok := s.pages[base]
	if !ok && alloc {
		page = make([]byte, simPageSize)
		s.pages[base] = page
	}

	return page
}

func (s *Sim) peek(addr uint32) byte {
	page := s.page(addr, false)
	if page == nil {
		return 0
	}

	return page[addr%simPageSize]
}

func (s *Sim) poke(addr uint32, value byte) {
	s.page(addr, true)[addr%simPageSize] = value
}

func (s *Sim) Read(addr uint32, w mmio.Width) uint32 {
	s.deliverInterrupt()
	s.reads++

	var value uint32
	for i := 0; i < w.Bytes(); i++ {
		b := uint32(s.peek(addr + uint32(i)))
		if s.order == mmio.LittleEndian {
			value |= b << (8 * i)
		} else {
			value = value<<8 | b
		}
	}

	return value
}

func (s *Sim) Write(addr uint32, w mmio.Width, value uint32) {
	s.deliverInterrupt()
	s.writes++

	for i := 0; i < w.Bytes(); i++ {
		shift := 8 * i
		if s.order == mmio.BigEndian {
			shift = 8 * (w.Bytes() - 1 - i)
		}
		s.poke(addr+uint32(i), byte(value>>shift))
	}
}

func (s *Sim) DisableInterrupts() mmio.InterruptState {
	s.disables++

	var state mmio.InterruptState
	if s.irqEnabled {
		state = 1
	}
	s.irqEnabled = false

	return state
}

func (s *Sim) RestoreInterrupts(state mmio.InterruptState) {
	s.restores++
	s.irqEnabled = state != 0
	s.deliverInterrupt()
}

func (s *Sim) ByteOrder() mmio.ByteOrder {
	return s.order
}

// RaiseInterrupt queues a handler that fires at the next memory access
// or interrupt restore where interrupts are enabled. The handler runs
// with interrupts masked, like a real handler would.
func (s *Sim) RaiseInterrupt(handler func()) {
	s.pending = handler
}

func (s *Sim) deliverInterrupt() {
	if !s.irqEnabled || s.pending == nil {
		return
	}

	handler := s.pending
	s.pending = nil

	s.irqEnabled = false
	handler()
	s.irqEnabled = true
}

// InterruptsEnabled reports the current interrupt mask state.
func (s *Sim) InterruptsEnabled() bool {
	return s.irqEnabled
}

// Reads returns the number of reads since the last counter reset.
func (s *Sim) Reads() int {
	return s.reads
}

// Writes returns the number of writes since the last counter reset.
func (s *Sim) Writes() int {
	return s.writes
}

// Disables returns how many times interrupts were disabled.
func (s *Sim) Disables() int {
	return s.disables
}

// Restores returns how many times interrupt state was restored.
func (s *Sim) Restores() int {
	return s.restores
}

// ResetCounters zeroes the access and interrupt counters.
func (s *Sim) ResetCounters() {
	s.reads = 0
	s.writes = 0
	s.disables = 0
	s.restores = 0
}
