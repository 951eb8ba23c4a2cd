// Command groupbytax agrupa por impuesto las líneas de un asiento de cierre POS
// leyendo impuestos y compañías desde un catálogo YAML, sin base de datos.
//
//	groupbytax --catalog catalog.yaml --company 1 --lang es --in vals.json --out -
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
