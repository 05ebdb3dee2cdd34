// Command cipherlab exposes the RSA and classical cipher routines on the
// command line.
package main

import (
	"fmt"
	"io"
	"os"
)

// Config holds the streams a run reads from and writes to.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config bound to the process streams.
func DefaultConfig() *Config {
	return &Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

var exitFunc = os.Exit

func run(args []string, cfg *Config) error {
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stderr == nil {
		cfg.Stderr = io.Discard
	}

	// A nil slice would make cobra fall back to os.Args.
	cmdArgs := []string{}
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	root := newRootCmd(cfg)
	root.SetArgs(cmdArgs)
	return root.Execute()
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exitFunc(1)
}
