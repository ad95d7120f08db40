package catalog

import (
	_ "embed"
)

//go:embed stm32f405.yaml
var stm32f405 []byte

// Default returns the built-in STM32F405 catalog.
func Default() *Catalog {
	c, err := Parse(stm32f405)
	if err != nil {
		panic(err)
	}

	return c
}
