package main

import (
	"os"

	"github.com/dmitrijs2005/todoauth/internal/client/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
