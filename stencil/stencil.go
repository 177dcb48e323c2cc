package main

import (
	"os"

	"github.com/sahib/stencil/cmd"
)

func main() {
	os.Exit(cmd.RunCmdline(os.Args))
}
