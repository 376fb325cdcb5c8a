// Command magdb manages the magazine publishing database from the shell.
package main

import (
	"os"

	"magazine-db/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
