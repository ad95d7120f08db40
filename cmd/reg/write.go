package reg

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mculib/regbits/pkg/hw/mmio"
)

var writeAs string

var writeCmd = &cobra.Command{
	Use:   "write <target> <key> <value>",
	Short: "Write a register or one of its bit fields",
	Long: `Writes a value into the bit field selected by the key, leaving every
other bit of the register untouched. Use the key ':' to write the whole
register.

Examples:
  regbits reg write GPIOA.ODR 5 1
  regbits reg write GPIOA.MODER 11:10 0b01
  regbits reg write 0x40020014 : 0xA5A5`,
	Args: cobra.ExactArgs(3),
	Run:  runWrite,
}

func init() {
	RegCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringVar(&writeAs, "as", "", "Re-derive the register as a value type before writing")
}

func runWrite(cmd *cobra.Command, args []string) {
	p, cleanup, err := openPlatform()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	c, err := loadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	r, _, err := resolveTarget(c, p, args[0], writeAs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	key, err := mmio.ParseKey(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	value, err := strconv.ParseUint(args[2], 0, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: value '%v' is not an unsigned integer\n", args[2])
		os.Exit(1)
	}

	if err := r.WriteField(key, uint32(value)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
