//go:build linux

package platform

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/mculib/regbits/pkg/hw/mmio"
)

// DevMem accesses physical memory through /dev/mem mappings. Pages are
// mapped on first touch and kept for the life of the bus; accesses use
// width-sized loads and stores so device registers see the access size
// they expect. Interrupts cannot be masked from user space, so the
// interrupt operations are no-ops; the masked field update is then
// only atomic against other accesses through this process.
type DevMem struct {
	file  *os.File
	pages map[uint32][]byte
}

// OpenDevMem opens /dev/mem for register access. Requires the
// appropriate capabilities and usually a kernel without
// CONFIG_STRICT_DEVMEM for RAM ranges.
func OpenDevMem() (*DevMem, error) {
	file, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening /dev/mem: %w", err)
	}

	return &DevMem{
		file:  file,
		pages: map[uint32][]byte{},
	}, nil
}

// Close unmaps every window and closes /dev/mem.
func (d *DevMem) Close() error {
	for base, page := range d.pages {
		_ = unix.Munmap(page)
		delete(d.pages, base)
	}

	return d.file.Close()
}

func (d *DevMem) window(addr uint32, width mmio.Width) unsafe.Pointer {
	pageSize := uint32(unix.Getpagesize())
	base := addr &^ (pageSize - 1)

	page, ok := d.pages[base]
	if !ok {
		var err error
		page, err = unix.Mmap(int(d.file.Fd()), int64(base), int(pageSize),
			unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			// A failed mapping is a permissions or configuration
			// problem, not something a register access can recover
			// from mid-operation.
			panic(fmt.Errorf("mmap of physical page 0x%08X failed: %w", base, err))
		}
		d.pages[base] = page
	}

	return unsafe.Pointer(&page[addr-base])
}

func (d *DevMem) Read(addr uint32, w mmio.Width) uint32 {
	p := d.window(addr, w)

	switch w {
	case mmio.Width8:
		return uint32(*(*uint8)(p))
	case mmio.Width16:
		return uint32(*(*uint16)(p))
	default:
		return *(*uint32)(p)
	}
}

func (d *DevMem) Write(addr uint32, w mmio.Width, value uint32) {
	p := d.window(addr, w)

	switch w {
	case mmio.Width8:
		*(*uint8)(p) = uint8(value)
	case mmio.Width16:
		*(*uint16)(p) = uint16(value)
	default:
		*(*uint32)(p) = value
	}
}

func (d *DevMem) DisableInterrupts() mmio.InterruptState {
	return 0
}

func (d *DevMem) RestoreInterrupts(state mmio.InterruptState) {
}

func (d *DevMem) ByteOrder() mmio.ByteOrder {
	return HostByteOrder()
}
