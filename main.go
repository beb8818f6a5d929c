package main

import (
	"fmt"
	"os"

	"github.com/SAP-F-2025/assessment-console/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
