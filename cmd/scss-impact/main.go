package main

import (
	"os"

	"bennypowers.dev/scssimpact/internal/cli"
	"bennypowers.dev/scssimpact/internal/log"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}
