package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dyluth/meld/internal/config"
	"github.com/dyluth/meld/internal/game"
	"github.com/dyluth/meld/internal/input"
	"github.com/dyluth/meld/internal/ui"
)

var (
	playConfigPath string
	playHints      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game",
	Long: `Start a game with the configured players.

Without --config the classic defaults are used: one human against one bot,
a 12-slot table, sets of 3 from an 81-card deck, one-minute rounds.

The process exits 0 both on a natural game end and on Ctrl-C.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&playConfigPath, "config", "c", "", "path to meld.yml (defaults to the classic game)")
	playCmd.Flags().BoolVar(&playHints, "hints", false, "print currently available sets after every deal")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if playConfigPath != "" {
		loaded, err := config.Load(playConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if playHints {
		cfg.Hints = true
	}

	table := game.NewTable(cfg.TableSize)
	display := ui.NewTerminal()
	dealer := game.NewDealer(cfg, table, display)

	// Forced termination on Ctrl-C; the dealer still joins every player
	// before Run returns.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		dealer.Terminate()
	}()

	// Wire keyboard rows to the human players.
	router := input.NewRouter()
	quit := make(chan struct{})
	humans := 0
	for i, p := range dealer.Players() {
		if p.Human() {
			router.Register(p.ID(), cfg.Players[i].Keys, p)
			humans++
		}
	}
	if humans > 0 {
		go router.Run(os.Stdin, quit)
	}

	dealer.Run()
	close(quit)
	return nil
}
