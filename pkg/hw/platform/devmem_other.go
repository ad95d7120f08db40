//go:build !linux

package platform

import (
	"errors"

	"github.com/mculib/regbits/pkg/hw/mmio"
)

// DevMem is only available on linux.
type DevMem struct{}

func OpenDevMem() (*DevMem, error) {
	return nil, errors.New("/dev/mem access is only supported on linux")
}

func (d *DevMem) Close() error { return nil }

func (d *DevMem) Read(addr uint32, w mmio.Width) uint32 { return 0 }

func (d *DevMem) Write(addr uint32, w mmio.Width, value uint32) {}

func (d *DevMem) DisableInterrupts() mmio.InterruptState { return 0 }

func (d *DevMem) RestoreInterrupts(state mmio.InterruptState) {}

func (d *DevMem) ByteOrder() mmio.ByteOrder { return HostByteOrder() }
