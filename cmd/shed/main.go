// shed is the runtime binary. The command tree it executes is the same
// one the build generator introspects for completion scripts.
package main

import (
	"os"

	"github.com/demonsh/shed/internal/cli"
	"github.com/demonsh/shed/internal/logger"
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	defer logger.CloseFileWriter()

	if err := cli.New().Execute(); err != nil {
		return 1
	}
	return 0
}
