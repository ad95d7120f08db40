package reg

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mculib/regbits/pkg/catalog"
	"github.com/mculib/regbits/pkg/hw/mmio"
	"github.com/mculib/regbits/pkg/hw/platform"
)

var (
	widthFlag int
	useDevMem bool
	traceBus  bool
)

var RegCmd = &cobra.Command{
	Use:   "reg",
	Short: "Read, write and inspect memory mapped registers",
	Long: `Register access commands.

Targets are either symbolic labels resolved through the register
catalog ("GPIOA.ODR", unambiguous prefixes accepted) or raw addresses
("0x40020014", combined with --width).

Bit field keys select which bits an access covers:
  5       single bit 5
  15:8    bits 15 down to 8 (reversed bounds are swapped)
  :       the whole register`,
}

func init() {
	RegCmd.PersistentFlags().IntVarP(&widthFlag, "width", "w", 0, "Register width in bits for raw address targets (8, 16 or 32; default 32)")
	RegCmd.PersistentFlags().BoolVar(&useDevMem, "devmem", false, "Access physical memory through /dev/mem instead of the simulated bus")
	RegCmd.PersistentFlags().BoolVarP(&traceBus, "trace", "t", false, "Log every raw platform access")
}

// openPlatform selects the register access backend for this
// invocation. The returned cleanup must run before exit.
func openPlatform() (mmio.Platform, func(), error) {
	var p mmio.Platform
	cleanup := func() {}

	if useDevMem || viper.GetBool("devmem") {
		devmem, err := platform.OpenDevMem()
		if err != nil {
			return nil, nil, err
		}
		p = devmem
		cleanup = func() { _ = devmem.Close() }
	} else {
		sim := platform.NewSim()
		seedSim(sim)
		p = sim
	}

	if traceBus {
		p = platform.Traced(p, "bus", slog.Default())
	}

	return p, cleanup, nil
}

// seedSim preloads the simulated bus from the "sim.seed" config map of
// address: value pairs, so dumps have something to show.
func seedSim(sim *platform.Sim) {
	for addr, value := range viper.GetStringMapString("sim.seed") {
		a, err := strconv.ParseUint(addr, 0, 32)
		if err != nil {
			slog.Warn("ignoring bad seed address", "addr", addr)
			continue
		}
		v, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			slog.Warn("ignoring bad seed value", "addr", addr, "value", value)
			continue
		}
		sim.Write(uint32(a), mmio.Width32, uint32(v))
	}
	sim.ResetCounters()
}

func loadCatalog() (*catalog.Catalog, error) {
	if path := viper.GetString("catalog"); path != "" {
		return catalog.Load(path)
	}

	return catalog.Default(), nil
}

// resolveTarget maps a target argument to a register: a catalog label
// if it contains a dot, a raw address otherwise. The derive tag, if
// not empty, re-anchors the register to a different lane of its
// aligned word.
func resolveTarget(c *catalog.Catalog, p mmio.Platform, target, deriveTag string) (*mmio.Register, string, error) {
	var r *mmio.Register
	var label string
	var err error

	if strings.Contains(target, ".") {
		label = target
		if widthFlag != 0 {
			r, err = c.RegWithWidth(p, target, mmio.Width(widthFlag))
		} else {
			r, err = c.Reg(p, target)
		}
	} else {
		var addr uint64
		addr, err = strconv.ParseUint(target, 0, 64)
		if err != nil {
			return nil, "", fmt.Errorf("target must be a 'base.reg' label or an address: %w", err)
		}

		width := mmio.Width32
		if widthFlag != 0 {
			width = mmio.Width(widthFlag)
		}

		r, err = mmio.NewRegister(p, addr, width)
		if r != nil {
			label = fmt.Sprintf("Mem_0x%08X", r.Addr())
		}
	}
	if err != nil {
		return nil, "", err
	}

	if deriveTag != "" {
		tag, err := mmio.ParseValueType(deriveTag)
		if err != nil {
			return nil, "", err
		}
		r, err = r.Derive(tag)
		if err != nil {
			return nil, "", err
		}
		label = fmt.Sprintf("%v(%v)", label, tag)
	}

	return r, label, nil
}
