package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/meld/internal/config"
	"github.com/dyluth/meld/internal/ui"
)

// testConfig returns a small, fast game: two human players (no bot
// goroutines), a 3-slot table, no freeze delays.
func testConfig() *config.GameConfig {
	return &config.GameConfig{
		Players: []config.PlayerConfig{
			{Name: "p0", Human: true},
			{Name: "p1", Human: true},
		},
		TableSize:        3,
		FeatureSize:      3,
		DeckSize:         81,
		TurnTimeout:      config.Duration(time.Minute),
		WarningThreshold: config.Duration(5 * time.Second),
	}
}

func newTestGame(cfg *config.GameConfig) (*Dealer, *Table, *ui.Recorder) {
	table := NewTable(cfg.TableSize)
	recorder := ui.NewRecorder()
	dealer := NewDealer(cfg, table, recorder)
	return dealer, table, recorder
}

func TestPlayer_KeyPressedGuards(t *testing.T) {
	cfg := testConfig()
	cfg.TableSize = 4 // leave one slot empty
	dealer, table, _ := newTestGame(cfg)
	dealer.deck = []int{0, 1, 3}
	dealer.placeCardsOnTable()
	p := dealer.players[0]

	p.KeyPressed(-1)
	p.KeyPressed(9)
	assert.Empty(t, p.actions, "out-of-range slots must be ignored")

	p.KeyPressed(3)
	assert.Empty(t, p.actions, "empty slot must be ignored")

	p.frozen.Store(true)
	p.KeyPressed(0)
	assert.Empty(t, p.actions, "frozen player must ignore input")
	p.frozen.Store(false)

	table.SetLocked(true)
	p.KeyPressed(0)
	assert.Empty(t, p.actions, "locked table must reject input")
	table.SetLocked(false)

	p.KeyPressed(0)
	assert.Len(t, p.actions, 1, "valid press must be queued")
}

func TestPlayer_ToggleIsIdempotent(t *testing.T) {
	cfg := testConfig()
	dealer, table, _ := newTestGame(cfg)
	dealer.deck = []int{0, 1, 3}
	dealer.placeCardsOnTable()
	p := dealer.players[0]

	p.processAction(0)
	assert.Equal(t, []int{0}, p.TokenSlots())
	assert.True(t, table.HasToken(p.id, 0))

	p.processAction(0)
	assert.Empty(t, p.TokenSlots())
	assert.False(t, table.HasToken(p.id, 0))
}

func TestPlayer_TokenListNeverExceedsFeatureSize(t *testing.T) {
	cfg := testConfig()
	cfg.FeatureSize = 4 // larger than the table, so no submission can fire
	dealer, _, _ := newTestGame(cfg)
	dealer.deck = []int{0, 1, 3}
	dealer.placeCardsOnTable()
	p := dealer.players[0]

	for i := 0; i < 10; i++ {
		p.processAction(i % 3)
	}
	assert.LessOrEqual(t, len(p.TokenSlots()), cfg.FeatureSize)
}

func TestPlayer_FreezeHonorsTermination(t *testing.T) {
	cfg := testConfig()
	cfg.PenaltyFreeze = config.Duration(10 * time.Second)
	cfg.PointFreeze = config.Duration(10 * time.Second)
	dealer, _, _ := newTestGame(cfg)
	p := dealer.players[0]

	p.Terminate()

	start := time.Now()
	p.penalty()
	p.point()
	assert.Less(t, time.Since(start), time.Second,
		"terminated player must not sleep out its freeze")
	assert.Equal(t, 0, p.Score(), "an interrupted reward must not score")
}

func TestPlayer_MatchesTable(t *testing.T) {
	cfg := testConfig()
	dealer, table, _ := newTestGame(cfg)
	dealer.deck = []int{0, 1, 2}
	dealer.placeCardsOnTable()
	p := dealer.players[0]
	p.tokenSlots = []int{0, 1, 2}

	require.True(t, p.MatchesTable([]int{0, 1, 2}))
	assert.False(t, p.MatchesTable([]int{2, 1, 0}), "order matters: the snapshot is per-slot")
	assert.False(t, p.MatchesTable([]int{0, 1}))

	table.RemoveCard(1)
	assert.False(t, p.MatchesTable([]int{0, 1, 2}), "a removed card must invalidate the match")
}

func TestPlayer_VerdictResetAfterCycle(t *testing.T) {
	cfg := testConfig()
	dealer, _, _ := newTestGame(cfg)
	p := dealer.players[0]

	p.publishVerdict(VerdictIllegal)
	assert.Equal(t, VerdictIllegal, p.Verdict())

	p.penalty()
	assert.Equal(t, VerdictPending, p.Verdict())
	assert.False(t, p.frozen.Load())
}
