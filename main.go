package main

import (
	"fmt"
	"os"

	"github.com/ochre-sh/ochre/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
