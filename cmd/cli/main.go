package main

import (
	"github.com/flowdom/perf-analysis/cmd/cli/cmd"
)

func main() {
	cmd.Execute()
}
