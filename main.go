package main

import (
	"fmt"
	"os"

	"github.com/swcurran/toggl-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "toggl:", err)
		os.Exit(1)
	}
}
