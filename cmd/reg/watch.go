package reg

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"github.com/mculib/regbits/pkg/dump"
	"github.com/mculib/regbits/pkg/hw/mmio"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <target>...",
	Short: "Watch registers refresh live in a table",
	Long: `Shows the given registers in a full screen table and re-reads them
periodically. Press q or Escape to quit.

Example:
  regbits reg watch GPIOA.IDR GPIOA.ODR USART1.SR`,
	Args: cobra.MinimumNArgs(1),
	Run:  runWatch,
}

func init() {
	RegCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 500*time.Millisecond, "Refresh interval")
}

func runWatch(cmd *cobra.Command, args []string) {
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

	regs := make([]*mmio.Register, len(args))
	labels := make([]string, len(args))
	for i, target := range args {
		regs[i], labels[i], err = resolveTarget(c, p, target, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	app := tview.NewApplication()
	table := tview.NewTable()

	for col, title := range []string{"Register", "Address", "Width", "Hex", "Binary"} {
		table.SetCell(0, col, tview.NewTableCell(title).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}

	refresh := func() {
		for i, r := range regs {
			value := r.Read()
			nibbles := int(r.Width()) / 4

			table.SetCell(i+1, 0, tview.NewTableCell(labels[i]).SetTextColor(tcell.ColorAqua))
			table.SetCell(i+1, 1, tview.NewTableCell(fmt.Sprintf("0x%08X", r.Addr())))
			table.SetCell(i+1, 2, tview.NewTableCell(fmt.Sprint(int(r.Width()))))
			table.SetCell(i+1, 3, tview.NewTableCell("0x"+dump.FormatUintHex(uint64(value), nibbles)))
			table.SetCell(i+1, 4, tview.NewTableCell(dump.FormatUintBinary(uint64(value), int(r.Width()))))
		}
	}

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	go func() {
		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		for range ticker.C {
			app.QueueUpdateDraw(refresh)
		}
	}()

	refresh()

	if err := app.SetRoot(table, true).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
