package main

import (
	"github.com/mculib/regbits/cmd"
)

func main() {
	cmd.Execute()
}
