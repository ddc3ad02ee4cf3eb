package main

import (
	"os"

	"worktimer/cmd/worktimerctl/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
