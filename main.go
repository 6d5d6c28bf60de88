// keystr counts keystrokes in the background and reports daily totals.
package main

import (
	"os"

	"github.com/keystr/keystr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
