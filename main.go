package main

import (
	"os"

	"github.com/gensql-labs/gensql/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
