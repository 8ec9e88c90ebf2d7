package game

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dyluth/meld/internal/config"
	"github.com/dyluth/meld/internal/ui"
	"github.com/dyluth/meld/pkg/cards"
)

// timerPad rounds the countdown deadline up so the display shows the full
// first second of every round.
const timerPad = 999 * time.Millisecond

// dealerTick is the idle wait interval of the dealer; warnTick is the
// shortened interval once the countdown enters the warning window, keeping
// the display responsive without busy-polling.
const (
	dealerTick = time.Second
	warnTick   = 10 * time.Millisecond
)

// Dealer owns the deck, the submission queue and the round countdown. It
// starts and stops every player goroutine, deals and reclaims cards, and is
// the single validation authority: candidates are drained one per wake so
// at most one validation is ever in flight.
type Dealer struct {
	gameID  string
	cfg     *config.GameConfig
	rules   cards.Rules
	table   *Table
	display ui.Display
	players []*Player
	rng     *rand.Rand

	deck    []int
	missing int // table capacity not currently filled

	subs chan Candidate // submitted candidates, drained one per wake
	gate chan struct{}  // admission permits, sized to the player count
	wake chan struct{}

	quit     chan struct{}
	termOnce sync.Once

	reshuffleAt time.Time
}

// NewDealer builds the dealer and its players from the configuration. The
// player goroutines are not started until Run.
func NewDealer(cfg *config.GameConfig, table *Table, display ui.Display) *Dealer {
	d := &Dealer{
		gameID:  uuid.New().String()[:8],
		cfg:     cfg,
		rules:   cards.NewRules(cfg.FeatureSize, cfg.DeckSize),
		table:   table,
		display: display,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		deck:    cards.NewDeck(cfg.DeckSize),
		missing: cfg.TableSize,
		subs:    make(chan Candidate, len(cfg.Players)),
		gate:    make(chan struct{}, len(cfg.Players)),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		// effectively infinite until the first deal
		reshuffleAt: time.Now().Add(365 * 24 * time.Hour),
	}
	for i, pc := range cfg.Players {
		d.players = append(d.players, newPlayer(i, pc, cfg, table, d, display))
	}
	return d
}

// Players returns the dealer's players, in ascending id order. Used to wire
// up the input source.
func (d *Dealer) Players() []*Player {
	return d.players
}

// Run is the dealer's main loop: start the players, then deal, wait out the
// countdown while draining submissions, reclaim the table and reshuffle,
// until no valid set remains in the deck or the game is terminated. Always
// stops and joins every player before returning.
func (d *Dealer) Run() {
	log.Printf("[Dealer %s] starting with %d players", d.gameID, len(d.players))
	for _, p := range d.players {
		go p.Run()
	}

	for !d.shouldFinish() {
		cards.Shuffle(d.deck, d.rng)
		d.placeCardsOnTable()
		d.timerLoop()
		d.updateTimerDisplay(false)
		d.removeAllCardsFromTable()
	}

	natural := !d.terminated()
	d.stopPlayers()

	if natural {
		d.announceWinners()
		select {
		case <-time.After(d.cfg.EndPause.Std()):
		case <-d.quit:
		}
	}
	log.Printf("[Dealer %s] terminated", d.gameID)
}

// Terminate forces the game to end. Idempotent; safe to call from any
// goroutine (typically the signal handler).
func (d *Dealer) Terminate() {
	d.termOnce.Do(func() {
		// discard queued candidates so shutdown is not stuck behind them
		for {
			select {
			case <-d.subs:
			default:
				close(d.quit)
				return
			}
		}
	})
}

// shouldFinish reports whether the game is over: forced termination, or no
// valid set left anywhere in the remaining deck.
func (d *Dealer) shouldFinish() bool {
	return d.terminated() || len(d.rules.FindSets(d.deck, 1)) == 0
}

// timerLoop runs one round: sleep until woken or a tick, refresh the
// countdown, drain at most one candidate and re-deal freed capacity,
// until the countdown expires or the game terminates.
func (d *Dealer) timerLoop() {
	d.updateTimerDisplay(true)
	for !d.terminated() && time.Now().Before(d.reshuffleAt) {
		d.sleepUntilWokenOrTimeout()
		d.updateTimerDisplay(false)
		d.drainCandidate()
		d.placeCardsOnTable()
	}
}

// sleepUntilWokenOrTimeout parks the dealer until a candidate arrives, a
// display tick is due, or the game terminates. Skips the wait entirely if a
// candidate is already queued.
func (d *Dealer) sleepUntilWokenOrTimeout() {
	if len(d.subs) > 0 {
		return
	}
	interval := dealerTick
	if time.Until(d.reshuffleAt) <= d.cfg.WarningThreshold.Std()+timerPad {
		interval = warnTick
	}
	select {
	case <-d.wake:
	case <-time.After(interval):
	case <-d.quit:
	}
}

// drainCandidate takes at most one queued candidate and rules on it. The
// owner is frozen for the whole validation and unfrozen last, so it cannot
// submit again mid-verdict and its token list is quiescent while read.
func (d *Dealer) drainCandidate() {
	var cand Candidate
	select {
	case cand = <-d.subs:
	default:
		return
	}

	owner := d.players[cand.PlayerID]
	owner.frozen.Store(true)

	// Re-validate against the live table: a concurrent removal may have
	// invalidated the snapshot between submission and draining.
	if d.rules.IsValidSet(cand.Cards) && owner.MatchesTable(cand.Cards) {
		d.table.SetLocked(true)
		owner.publishVerdict(VerdictLegal)
		for _, card := range cand.Cards {
			slot, ok := d.table.SlotOf(card)
			if !ok {
				continue
			}
			d.table.RemoveCard(slot)
			d.missing++
			for _, p := range d.players {
				p.removeTokenSlot(slot)
			}
		}
		d.table.SetLocked(false)
		// a successful match restarts the round's timer
		d.updateTimerDisplay(true)
		d.logEvent("set_accepted", map[string]interface{}{
			"player": cand.PlayerID,
			"cards":  cand.Cards,
		})
	} else {
		owner.publishVerdict(VerdictIllegal)
		d.logEvent("set_rejected", map[string]interface{}{
			"player": cand.PlayerID,
			"cards":  cand.Cards,
		})
	}

	owner.frozen.Store(false)
	d.updateTimerDisplay(false)
}

// placeCardsOnTable deals from the deck into empty slots while capacity
// remains, under the table lock.
func (d *Dealer) placeCardsOnTable() {
	if len(d.deck) == 0 || d.missing == 0 {
		return
	}
	d.table.SetLocked(true)
	for slot := 0; slot < d.table.Size() && len(d.deck) > 0 && d.missing > 0; slot++ {
		if d.table.CardAt(slot) == NoCard {
			d.table.PlaceCard(d.deck[0], slot)
			d.deck = d.deck[1:]
			d.missing--
		}
	}
	if d.cfg.Hints {
		d.display.Hints(d.rules.FindSets(d.table.Cards(), 0))
	}
	d.table.SetLocked(false)
	d.updateTimerDisplay(false)
}

// removeAllCardsFromTable reclaims every card back into the deck at round
// end, clearing all tokens with them.
func (d *Dealer) removeAllCardsFromTable() {
	d.table.SetLocked(true)
	for _, p := range d.players {
		p.clearTokenSlots()
	}
	for slot := 0; slot < d.table.Size(); slot++ {
		card := d.table.CardAt(slot)
		if card == NoCard {
			continue
		}
		d.table.RemoveCard(slot)
		d.missing++
		d.deck = append(d.deck, card)
	}
	d.table.SetLocked(false)
}

// updateTimerDisplay refreshes (and optionally resets) the countdown.
// Remaining time is clamped at zero; the warn flag trips once it falls
// under the configured threshold.
func (d *Dealer) updateTimerDisplay(reset bool) {
	if reset {
		d.reshuffleAt = time.Now().Add(d.cfg.TurnTimeout.Std() + timerPad)
	}
	left := time.Until(d.reshuffleAt)
	if left < 0 {
		left = 0
	}
	warn := left <= d.cfg.WarningThreshold.Std()
	d.display.SetCountdown(left, warn)
}

// submit is the players' admission path: acquire a permit, enqueue the
// candidate, nudge the dealer awake, release the permit. Returns false if
// the game terminated instead.
func (d *Dealer) submit(cand Candidate) bool {
	select {
	case d.gate <- struct{}{}:
	case <-d.quit:
		return false
	}
	select {
	case d.subs <- cand:
	case <-d.quit:
		<-d.gate
		return false
	}
	select {
	case d.wake <- struct{}{}:
	default:
	}
	<-d.gate
	return true
}

// stopPlayers signals termination to every player in descending id order,
// then joins them in that same order.
func (d *Dealer) stopPlayers() {
	for i := len(d.players) - 1; i >= 0; i-- {
		d.players[i].Terminate()
	}
	for i := len(d.players) - 1; i >= 0; i-- {
		d.players[i].Join()
		log.Printf("[Dealer %s] player %d joined", d.gameID, i)
	}
}

// announceWinners displays every player tied at the maximum score.
func (d *Dealer) announceWinners() {
	highest := 0
	for _, p := range d.players {
		if s := p.Score(); s > highest {
			highest = s
		}
	}
	var winners []int
	for _, p := range d.players {
		if p.Score() == highest {
			winners = append(winners, p.ID())
		}
	}
	d.display.AnnounceWinners(winners)
	d.logEvent("winners_announced", map[string]interface{}{
		"winners": winners,
		"score":   highest,
	})
}

func (d *Dealer) terminated() bool {
	select {
	case <-d.quit:
		return true
	default:
		return false
	}
}

// logEvent logs structured dealer events.
func (d *Dealer) logEvent(event string, data map[string]interface{}) {
	log.Printf("[Dealer %s] event=%s %v", d.gameID, event, data)
}
