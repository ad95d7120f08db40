package reg

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mculib/regbits/pkg/dump"
)

var (
	dumpFields       int
	dumpBitsPerField int
	dumpLayout       bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump <target>",
	Short: "Print registers in hex and binary",
	Long: `Dumps registers with a bit position ruler.

The target is a peripheral base ("GPIOA", dumps every register of the
peripheral), a single register label ("GPIOA.ODR"), or a register array
("GPIOA.AFR0, AFR1" together with --fields and --bits-per-field).

Examples:
  regbits reg dump GPIOA
  regbits reg dump GPIOA.ODR
  regbits reg dump "SYSCFG.EXTICR0, EXTICR1, EXTICR2, EXTICR3" --fields 4 --bits-per-field 4`,
	Args: cobra.ExactArgs(1),
	Run:  runDump,
}

func init() {
	RegCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().IntVar(&dumpFields, "fields", 0, "Fields per register, makes the target a register array")
	dumpCmd.Flags().IntVar(&dumpBitsPerField, "bits-per-field", 0, "Bits per array field")
	dumpCmd.Flags().BoolVar(&dumpLayout, "layout", false, "Also draw the array's field layout diagram")
}

func runDump(cmd *cobra.Command, args []string) {
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

	target := args[0]

	switch {
	case dumpFields != 0 || dumpBitsPerField != 0:
		arr, err := c.RegArray(p, target, dumpFields, dumpBitsPerField)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(dump.Describe(arr))
		if dumpLayout {
			fmt.Println(dump.ArrayLayout(arr))
		}
		err = dump.Array(os.Stdout, arr, arrayLabels(target))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case strings.Contains(target, "."):
		r, label, err := resolveTarget(c, p, target, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := dump.Register(os.Stdout, label, r); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		if err := dump.Base(os.Stdout, c, p, target); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// arrayLabels rebuilds the member register labels of an array label
// list like "BASE.R0, R1".
func arrayLabels(target string) []string {
	fields := strings.Split(target, ".")
	if len(fields) != 2 {
		return nil
	}

	names := strings.Split(fields[1], ",")
	labels := make([]string, len(names))
	for i, name := range names {
		labels[i] = fields[0] + "." + strings.TrimSpace(name)
	}

	return labels
}
