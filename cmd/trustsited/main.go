package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{Use: "trustsited"}

	root.AddCommand(serveCMD(), migrateCMD(), useraddCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
