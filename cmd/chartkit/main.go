// Command chartkit renders animated charts offscreen and exports them.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/chartkit/cmd/chartkit/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
