package main

import (
	"os"

	"github.com/lyngdoh/curiouskids/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
