package main

import (
	"os"

	"github.com/pb003jbl/ticketrca/cmd/ticketrca/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
