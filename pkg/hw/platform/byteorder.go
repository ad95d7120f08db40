package platform

import (
	"sync"
	"unsafe"

	"github.com/mculib/regbits/pkg/hw/mmio"
)

// Determined once for the whole process.
var hostOrder = sync.OnceValue(func() mmio.ByteOrder {
	probe := uint16(0x0102)
	if *(*byte)(unsafe.Pointer(&probe)) == 0x02 {
		return mmio.LittleEndian
	}
	return mmio.BigEndian
})

// HostByteOrder returns the byte order of the machine running the
// process.
func HostByteOrder() mmio.ByteOrder {
	return hostOrder()
}
