package dump_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mculib/regbits/pkg/catalog"
	"github.com/mculib/regbits/pkg/dump"
	"github.com/mculib/regbits/pkg/hw/mmio"
	"github.com/mculib/regbits/pkg/hw/platform"
)

func init() {
	color.NoColor = true
}

func TestValue(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dump.Value(&buf, "GPIOA.ODR", 0xAABBCCDD, mmio.Width32))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "0x")
	assert.Contains(t, lines[0], "31------24")
	assert.Contains(t, lines[0], "7------0")

	expected := "GPIOA.ODR        aabbccdd " +
		"   10101010    10111011    11001100    11011101 "
	assert.Equal(t, expected, lines[1])
}

func TestValueNarrowWidth(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dump.Value(&buf, "IRQ", 0xA5, mmio.Width8))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "7------0")
	assert.NotContains(t, lines[0], "15------8")
	assert.Contains(t, lines[1], "a5")
	assert.Contains(t, lines[1], "10100101")
}

func TestValueRejectsOversizedValue(t *testing.T) {
	var buf bytes.Buffer
	err := dump.Value(&buf, "IRQ", 0x100, mmio.Width8)
	assert.ErrorIs(t, err, mmio.ErrValueOutOfRange)
	assert.Empty(t, buf.String())
}

func TestRegister(t *testing.T) {
	sim := platform.NewSim()
	reg, err := mmio.NewRegister(sim, 0x40020014, mmio.Width32)
	require.NoError(t, err)
	require.NoError(t, reg.Write(0x12345678))

	var buf bytes.Buffer
	require.NoError(t, dump.Register(&buf, "GPIOA.ODR", reg))
	assert.Contains(t, buf.String(), "12345678")
}

func TestBase(t *testing.T) {
	c := catalog.Default()
	sim := platform.NewSim()

	odr, err := c.Reg(sim, "GPIOA.ODR")
	require.NoError(t, err)
	require.NoError(t, odr.Write(0xCAFE))

	var buf bytes.Buffer
	require.NoError(t, dump.Base(&buf, c, sim, "GPIOA"))

	out := buf.String()
	assert.Contains(t, out, "GPIOA.ODR")
	assert.Contains(t, out, "0000cafe")
	assert.Contains(t, out, "GPIOA.MODER")
	assert.Contains(t, out, "GPIOA.BSRRL")
	assert.Contains(t, out, "GPIOA.BSRRH")
}

func TestBaseAlias(t *testing.T) {
	c := catalog.Default()
	sim := platform.NewSim()

	var buf bytes.Buffer
	require.NoError(t, dump.Base(&buf, c, sim, "ADC"))

	out := buf.String()
	assert.Contains(t, out, "ADC.CSR")
	assert.Contains(t, out, "ADC.CCR")
	assert.Contains(t, out, "ADC.CDR")
}

func TestBaseRejectsUnknownName(t *testing.T) {
	var buf bytes.Buffer
	err := dump.Base(&buf, catalog.Default(), platform.NewSim(), "NOPE")
	assert.ErrorIs(t, err, catalog.ErrUnknownName)
}

func TestArray(t *testing.T) {
	sim := platform.NewSim()

	var regs []*mmio.Register
	for i := 0; i < 2; i++ {
		reg, err := mmio.NewRegister(sim, uint64(0x40013808+4*i), mmio.Width32)
		require.NoError(t, err)
		regs = append(regs, reg)
	}

	array, err := mmio.NewRegisterArray(regs, 4, 8)
	require.NoError(t, err)
	require.NoError(t, array.WriteField(0, 0xA5))
	require.NoError(t, array.WriteField(5, 0x3C))

	var buf bytes.Buffer
	require.NoError(t, dump.Array(&buf, array, []string{"EXTICR0", "EXTICR1"}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	// Highest register first, highest field per row first
	assert.Contains(t, lines[0], "7")
	assert.Contains(t, lines[0], "4")
	assert.Contains(t, lines[1], "EXTICR1")
	assert.Contains(t, lines[1], "00003C00")
	assert.Contains(t, lines[1], "00111100")
	assert.Contains(t, lines[3], "EXTICR0")
	assert.Contains(t, lines[3], "000000A5")
	assert.Contains(t, lines[3], "10100101")
}

func TestDescribe(t *testing.T) {
	sim := platform.NewSim()

	reg, err := mmio.NewRegister(sim, 0x40020014, mmio.Width32)
	require.NoError(t, err)

	single, err := mmio.NewRegisterArray([]*mmio.Register{reg}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t,
		"Array of 1 register with 1 field/register, 1 bit/field",
		dump.Describe(single))

	other, err := mmio.NewRegister(sim, 0x40020018, mmio.Width32)
	require.NoError(t, err)

	pair, err := mmio.NewRegisterArray([]*mmio.Register{reg, other}, 4, 8)
	require.NoError(t, err)
	assert.Equal(t,
		"Array of 2 registers with 4 fields/register, 8 bits/field",
		dump.Describe(pair))
}
