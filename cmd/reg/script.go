package reg

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/mculib/regbits/pkg/catalog"
	"github.com/mculib/regbits/pkg/dump"
	"github.com/mculib/regbits/pkg/hw/mmio"
)

var scriptCmd = &cobra.Command{
	Use:   "script <file.star>",
	Short: "Run a Starlark register access script",
	Long: `Executes a Starlark script with register access builtins:

  read(target, key=":", view="")         -> int
  write(target, value, key=":", view="") -> None
  bits(target, *bit_numbers)             -> tuple of 0/1
  dump(target)                           -> None

Targets and keys use the same forms as the read and write commands.

Example script:
  odr = read("GPIOA.ODR")
  write("GPIOA.ODR", 1, key="5")
  print(bits("USART1.SR", 7, 6, 5))`,
	Args: cobra.ExactArgs(1),
	Run:  runScript,
}

func init() {
	RegCmd.AddCommand(scriptCmd)
}

func runScript(cmd *cobra.Command, args []string) {
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

	thread := &starlark.Thread{
		Name:  "regbits",
		Print: func(_ *starlark.Thread, msg string) { fmt.Println(msg) },
	}

	opts := syntax.FileOptions{}
	_, err = starlark.ExecFileOptions(&opts, thread, args[0], nil, scriptBuiltins(c, p))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func scriptBuiltins(c *catalog.Catalog, p mmio.Platform) starlark.StringDict {
	register := func(target, deriveTag string) (*mmio.Register, string, error) {
		return resolveTarget(c, p, target, deriveTag)
	}

	read := func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var target string
		key := ":"
		view := ""
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "target", &target, "key?", &key, "view?", &view); err != nil {
			return nil, err
		}

		r, _, err := register(target, view)
		if err != nil {
			return nil, err
		}

		k, err := mmio.ParseKey(key)
		if err != nil {
			return nil, err
		}

		value, err := r.ReadField(k)
		if err != nil {
			return nil, err
		}

		return starlark.MakeUint64(uint64(value)), nil
	}

	write := func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var target string
		var value uint32
		key := ":"
		view := ""
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "target", &target, "value", &value, "key?", &key, "view?", &view); err != nil {
			return nil, err
		}

		r, _, err := register(target, view)
		if err != nil {
			return nil, err
		}

		k, err := mmio.ParseKey(key)
		if err != nil {
			return nil, err
		}

		if err := r.WriteField(k, value); err != nil {
			return nil, err
		}

		return starlark.None, nil
	}

	bits := func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%v: does not accept keyword arguments", fn.Name())
		}
		if len(args) < 2 {
			return nil, fmt.Errorf("%v: expects a target and at least one bit number", fn.Name())
		}

		target, ok := starlark.AsString(args[0])
		if !ok {
			return nil, fmt.Errorf("%v: target must be a string", fn.Name())
		}

		numbers := make([]int, len(args)-1)
		for i, arg := range args[1:] {
			n, err := starlark.AsInt32(arg)
			if err != nil {
				return nil, fmt.Errorf("%v: bit numbers must be integers: %w", fn.Name(), err)
			}
			numbers[i] = int(n)
		}

		r, _, err := register(target, "")
		if err != nil {
			return nil, err
		}

		values, err := r.Bits(numbers...)
		if err != nil {
			return nil, err
		}

		tuple := make(starlark.Tuple, len(values))
		for i, v := range values {
			tuple[i] = starlark.MakeInt(v)
		}

		return tuple, nil
	}

	dumpReg := func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var target string
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "target", &target); err != nil {
			return nil, err
		}

		r, label, err := register(target, "")
		if err != nil {
			return nil, err
		}

		if err := dump.Register(os.Stdout, label, r); err != nil {
			return nil, err
		}

		return starlark.None, nil
	}

	return starlark.StringDict{
		"read":  starlark.NewBuiltin("read", read),
		"write": starlark.NewBuiltin("write", write),
		"bits":  starlark.NewBuiltin("bits", bits),
		"dump":  starlark.NewBuiltin("dump", dumpReg),
	}
}
