package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "meld",
	Short: "Meld - a concurrent card-matching game for the terminal",
	Long: `Meld is a terminal game engine for the pattern-matching card game:
players race to claim valid sets from a shared table of dealt cards while
a dealer times rounds, validates claims and reshuffles the deck.

Humans play on mapped keyboard rows; everyone else is a bot. The whole
game is a small exercise in disciplined shared-memory concurrency.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
