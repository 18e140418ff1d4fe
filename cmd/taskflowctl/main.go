package main

import (
	"fmt"
	"os"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
