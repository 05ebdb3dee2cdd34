package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "cipherlab %s (%s)\n", version, runtime.Version())

	info, ok := debug.ReadBuildInfo()
	if !ok || len(info.Deps) == 0 {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nDependencies:\n\n")
	for _, dep := range info.Deps {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", dep.Path, dep.Version)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of cipherlab",
		Long: `Print the version number of cipherlab. This also prints the versions
of all of its dependencies.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd)
		},
	}
}
