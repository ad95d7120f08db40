package dump_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mculib/regbits/pkg/dump"
	"github.com/mculib/regbits/pkg/hw/mmio"
	"github.com/mculib/regbits/pkg/hw/platform"
)

func TestFrameSingleField(t *testing.T) {
	frame := dump.Frame([]dump.FrameField{
		{Name: "F", Low: 0, Bits: 4},
	}, 4)

	expected := strings.Join([]string{
		"3            0",
		"+------------+",
		"|     F      |",
		"+------------+",
		" <- 4 bits ->",
		"",
	}, "\n")

	assert.Equal(t, expected, frame)
}

func TestFrameFillsGaps(t *testing.T) {
	frame := dump.Frame([]dump.FrameField{
		{Name: "EN", Low: 0, Bits: 1},
		{Name: "MODE", Low: 4, Bits: 2},
	}, 8)

	lines := strings.Split(frame, "\n")
	require.Len(t, lines, 6)

	// Most significant field on the left
	body := lines[2]
	assert.Less(t, strings.Index(body, "MODE"), strings.Index(body, "EN"))
	assert.Equal(t, 2, strings.Count(body, "(unused)"))

	// Border rows match and every row body is framed
	assert.Equal(t, lines[1], lines[3])
	assert.True(t, strings.HasPrefix(body, "|"))
	assert.True(t, strings.HasSuffix(body, "|"))

	assert.Contains(t, lines[4], "2 bits")
	assert.Contains(t, lines[4], "1 bit ")
}

func TestFramePanicsOnOverlappingFields(t *testing.T) {
	assert.Panics(t, func() {
		dump.Frame([]dump.FrameField{
			{Name: "A", Low: 0, Bits: 4},
			{Name: "B", Low: 2, Bits: 4},
		}, 8)
	})
}

func TestArrayLayout(t *testing.T) {
	sim := platform.NewSim()

	var regs []*mmio.Register
	reg, err := mmio.NewRegister(sim, 0x40013808, mmio.Width32)
	require.NoError(t, err)
	regs = append(regs, reg)

	array, err := mmio.NewRegisterArray(regs, 4, 8)
	require.NoError(t, err)

	layout := dump.ArrayLayout(array)
	lines := strings.Split(layout, "\n")
	require.Len(t, lines, 6)

	body := lines[2]
	for _, name := range []string{"[0]", "[1]", "[2]", "[3]"} {
		assert.Contains(t, body, name)
	}

	// Field [3] holds the most significant bits
	assert.Less(t, strings.Index(body, "[3]"), strings.Index(body, "[0]"))
	assert.True(t, strings.HasPrefix(lines[0], "31"))
	assert.True(t, strings.HasSuffix(lines[0], "0"))
}
