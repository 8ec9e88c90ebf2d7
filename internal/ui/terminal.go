package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

func init() {
	// Force color output even when not connected to TTY
	// Users can disable with NO_COLOR environment variable
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Terminal renders game state as colored lines on stdout. Countdown updates
// are de-duplicated to whole seconds so the dealer's fast warning-phase
// refresh does not flood the terminal.
type Terminal struct {
	mu          sync.Mutex
	lastSeconds int64
	lastWarn    bool
}

// NewTerminal returns a terminal display.
func NewTerminal() *Terminal {
	return &Terminal{lastSeconds: -1}
}

func (t *Terminal) SetCountdown(remaining time.Duration, warn bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seconds := int64(remaining / time.Second)
	if seconds == t.lastSeconds && warn == t.lastWarn {
		return
	}
	t.lastSeconds = seconds
	t.lastWarn = warn

	if warn {
		red.Printf("⏱  %02d:%02d\n", seconds/60, seconds%60)
	} else {
		fmt.Printf("⏱  %02d:%02d\n", seconds/60, seconds%60)
	}
}

func (t *Terminal) SetScore(playerID, score int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	green.Printf("✓ player %d score: %d\n", playerID, score)
}

func (t *Terminal) SetFreeze(playerID int, remaining time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if remaining <= 0 {
		fmt.Printf("player %d ready\n", playerID)
		return
	}
	yellow.Printf("player %d frozen for %s\n", playerID, remaining)
}

func (t *Terminal) AnnounceWinners(playerIDs []int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(playerIDs) == 1 {
		green.Printf("🏆 winner: player %d\n", playerIDs[0])
		return
	}
	green.Printf("🏆 winners (tied): players %v\n", playerIDs)
}

func (t *Terminal) Hints(sets [][]int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Println("-------------------------------")
	for _, set := range sets {
		cyan.Printf("hint: %v\n", set)
	}
}
