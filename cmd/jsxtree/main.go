package main

import (
	"os"

	"bennypowers.dev/jsxtree/internal/cmd"
	"bennypowers.dev/jsxtree/internal/log"
)

func main() {
	defer log.Flush()

	if err := cmd.Root().Execute(); err != nil {
		log.Error("%v", err)
		log.Flush()
		os.Exit(1)
	}
}
