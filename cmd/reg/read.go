package reg

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mculib/regbits/pkg/dump"
	"github.com/mculib/regbits/pkg/hw/mmio"
)

var readAs string

var readCmd = &cobra.Command{
	Use:   "read <target> [key]",
	Short: "Read a register or one of its bit fields",
	Long: `Reads a register, or the bit field of it selected by the key.

Examples:
  regbits reg read GPIOA.ODR
  regbits reg read GPIOA.ODR 5
  regbits reg read 0x40020014 15:8
  regbits reg read GPIOA.ODR --as 16L`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runRead,
}

func init() {
	RegCmd.AddCommand(readCmd)
	readCmd.Flags().StringVar(&readAs, "as", "", "Re-derive the register as a value type (32, 16L, 16H, 8Ll, 8Lh, 8Hl, 8Hh) before reading")
}

func runRead(cmd *cobra.Command, args []string) {
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

	r, label, err := resolveTarget(c, p, args[0], readAs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	key := mmio.Whole()
	if len(args) == 2 {
		key, err = mmio.ParseKey(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	value, err := r.ReadField(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(args) < 2 {
		if err := dump.Value(os.Stdout, label, value, r.Width()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("0x%X (%v)\n", value, value)
}
