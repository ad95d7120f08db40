package platform

import (
	"fmt"
	"log/slog"

	"github.com/mculib/regbits/pkg/hw/mmio"
)

type tracedPlatform struct {
	impl   mmio.Platform
	name   string
	logger *slog.Logger
}

// Traced wraps a platform so every raw access and interrupt mask
// transition is logged. Useful to see exactly which loads and stores a
// field operation turns into.
func Traced(impl mmio.Platform, name string, logger *slog.Logger) mmio.Platform {
	return &tracedPlatform{
		impl:   impl,
		name:   name,
		logger: logger,
	}
}

func (t *tracedPlatform) Read(addr uint32, w mmio.Width) uint32 {
	value := t.impl.Read(addr, w)

	t.logger.Debug("read",
		"platform", t.name,
		"addr", addrString(addr),
		"width", int(w),
		"value", value)

	return value
}

func (t *tracedPlatform) Write(addr uint32, w mmio.Width, value uint32) {
	t.impl.Write(addr, w, value)

	t.logger.Debug("write",
		"platform", t.name,
		"addr", addrString(addr),
		"width", int(w),
		"value", value)
}

func (t *tracedPlatform) DisableInterrupts() mmio.InterruptState {
	state := t.impl.DisableInterrupts()

	t.logger.Debug("interrupts disabled", "platform", t.name, "state", uint32(state))

	return state
}

func (t *tracedPlatform) RestoreInterrupts(state mmio.InterruptState) {
	t.impl.RestoreInterrupts(state)

	t.logger.Debug("interrupts restored", "platform", t.name, "state", uint32(state))
}

func (t *tracedPlatform) ByteOrder() mmio.ByteOrder {
	return t.impl.ByteOrder()
}

func addrString(addr uint32) string {
	return fmt.Sprintf("0x%08X", addr)
}
