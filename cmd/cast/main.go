// Command cast is the CLI entry point: rec/play/cat/info/export/serve/version subcommands plus
// cobra's own help rendering.
//
// Grounded on ehrlich-b-wingthing/cmd/wt/main.go's shape: a root command built directly in
// main(), one constructor function per subcommand, RunE returning a wrapped error that main
// turns into a one-line stderr message and exit code 1.
package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:           "cast",
		Short:         "record, play back, and export terminal sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		recCmd(),
		playCmd(),
		catCmd(),
		infoCmd(),
		exportCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cast: %s\n", err)
		if strings.HasPrefix(err.Error(), "unknown command") {
			root.SetOut(os.Stdout)
			root.Usage()
		}
		if debugEnabled() {
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
		os.Exit(1)
	}
}

// debugEnabled reports whether DEBUG is set to any non-empty value: it gates the stack trace
// appended to an error's one-line stderr message.
func debugEnabled() bool {
	return os.Getenv("DEBUG") != ""
}
