// Command hashlogd is a small demo/bench CLI for hashlog: it appends
// payloads to a chain, joins chains together, and renders a log, all
// backed by a configurable block store. It plays the role
// mosaicnetworks/babble's cmd/babble and cmd/dummy play as thin
// Cobra-driven front ends over the library packages.
package main

import (
	"fmt"
	"os"

	"github.com/mosaicnetworks/hashlog/cmd/hashlogd/commands"
)

func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
