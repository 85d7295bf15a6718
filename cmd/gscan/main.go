package main

import (
	"fmt"
	"os"

	"github.com/bryanCE/gscan/internal/cli"

	"github.com/spf13/cobra"
)

var version = "dev" // Will be set by ldflags during build

func main() {
	rootCmd := &cobra.Command{
		Use:   "gscan",
		Short: "A fast TCP connect-scan port scanner",
		Long: `gscan finds open TCP ports across hosts and CIDR blocks, resolving
hostnames and reconciling the file descriptor budget before scanning.`,
		Version: version,
	}

	rootCmd.AddCommand(cli.NewPortScanCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
