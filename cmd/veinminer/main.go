package main

import (
	"fmt"
	"os"

	"go.minekube.com/veinminer/pkg/cmd/veinminer"
)

func main() {
	if err := veinminer.App().Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
