package main

import (
	"github.com/rzbill/opsweep/pkg/cli/cmd"
)

func main() {
	cmd.Execute()
}
