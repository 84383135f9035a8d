// Command tmux-prayer-times prints the next prayer on one line for a tmux
// status bar. It is a shortcut for `prayer-times next`.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/smokyabdulrahman/prayer-times/internal/cli"
	"github.com/smokyabdulrahman/prayer-times/internal/prayer"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

func main() {
	rootCmd := cli.NewRootCmd(version)
	rootCmd.Use = "tmux-prayer-times"
	rootCmd.SetVersionTemplate("tmux-prayer-times {{.Version}}\n")
	rootCmd.SetArgs(translateArgs(os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// translateArgs maps the status-bar command line onto the CLI: --version
// and --list-methods pass through, everything else runs `next` with the
// compact name-and-time format unless --format is given.
func translateArgs(args []string) []string {
	hasFormat := false
	for _, a := range args {
		switch {
		case a == "--version" || a == "-v":
			return []string{"--version"}
		case a == "--list-methods" || a == "-list-methods":
			return []string{"methods"}
		case a == "--format" || strings.HasPrefix(a, "--format="):
			hasFormat = true
		}
	}

	out := append([]string{"next"}, args...)
	if !hasFormat {
		out = append(out, "--format", prayer.FormatNameAndTime)
	}
	return out
}
