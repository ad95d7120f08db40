package reg

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var bitsCmd = &cobra.Command{
	Use:   "bits <target> <bit>...",
	Short: "Snapshot several bits of a register at once",
	Long: `Reads the register once and reports the requested bits from that
single snapshot, so the values are consistent with each other even if
the register is changing.

Example:
  regbits reg bits USART1.SR 7 6 5`,
	Args: cobra.MinimumNArgs(2),
	Run:  runBits,
}

func init() {
	RegCmd.AddCommand(bitsCmd)
}

func runBits(cmd *cobra.Command, args []string) {
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

	r, _, err := resolveTarget(c, p, args[0], "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	numbers := make([]int, len(args)-1)
	for i, arg := range args[1:] {
		numbers[i], err = strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: bit number '%v' is not an integer\n", arg)
			os.Exit(1)
		}
	}

	values, err := r.Bits(numbers...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("bit %v: %v", numbers[i], v)
	}
	fmt.Println(strings.Join(out, ", "))
}
