package game

import (
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dyluth/meld/internal/config"
	"github.com/dyluth/meld/internal/ui"
)

// Player is one participant: a goroutine draining an action queue of slot
// indices, toggling tokens on the shared table, and submitting a candidate
// to the dealer whenever its token set becomes complete. Bots run a second
// goroutine that synthesizes random slot presses into the same queue.
//
// The player owns its score and token-slot list; the dealer reads them only
// while the player is frozen.
type Player struct {
	id      int
	name    string
	human   bool
	table   *Table
	dealer  *Dealer
	display ui.Display

	featureSize   int
	pointFreeze   time.Duration
	penaltyFreeze time.Duration
	botDelay      time.Duration

	actions  chan int
	verdicts chan Verdict
	quit     chan struct{}
	done     chan struct{}
	termOnce sync.Once

	// frozen is true while the player serves a freeze or has a submitted
	// candidate in flight. The dealer sets it when draining a candidate
	// and clears it last, after publishing the verdict.
	frozen atomic.Bool

	mu         sync.Mutex
	tokenSlots []int
	score      int
	verdict    Verdict
}

func newPlayer(id int, pc config.PlayerConfig, cfg *config.GameConfig, table *Table, dealer *Dealer, display ui.Display) *Player {
	return &Player{
		id:            id,
		name:          pc.Name,
		human:         pc.Human,
		table:         table,
		dealer:        dealer,
		display:       display,
		featureSize:   cfg.FeatureSize,
		pointFreeze:   cfg.PointFreeze.Std(),
		penaltyFreeze: cfg.PenaltyFreeze.Std(),
		botDelay:      cfg.BotDelay.Std(),
		// queue capacity = feature size, the natural backpressure bound
		actions:  make(chan int, cfg.FeatureSize),
		verdicts: make(chan Verdict, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		verdict:  VerdictPending,
	}
}

// ID returns the player's id.
func (p *Player) ID() int {
	return p.id
}

// Human reports whether this player takes external input.
func (p *Player) Human() bool {
	return p.human
}

// Score returns the player's current score.
func (p *Player) Score() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.score
}

// TokenSlots returns a copy of the player's current token slots.
func (p *Player) TokenSlots() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]int, len(p.tokenSlots))
	copy(out, p.tokenSlots)
	return out
}

// Verdict returns the player's current submission verdict.
func (p *Player) Verdict() Verdict {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.verdict
}

// Run is the player's main loop. It blocks on the action queue, processes
// one slot press at a time, and exits when Terminate is called. Bots also
// get their generator goroutine started (and joined) here.
func (p *Player) Run() {
	defer close(p.done)
	log.Printf("[Player %d] starting (name=%q human=%v)", p.id, p.name, p.human)

	var botWG sync.WaitGroup
	if !p.human {
		botWG.Add(1)
		go p.runBot(&botWG)
	}

	for {
		select {
		case <-p.quit:
			botWG.Wait()
			log.Printf("[Player %d] terminated", p.id)
			return
		case slot := <-p.actions:
			p.processAction(slot)
		}
	}
}

// Terminate signals the player (and its bot goroutine) to stop. Idempotent.
func (p *Player) Terminate() {
	p.termOnce.Do(func() {
		close(p.quit)
	})
}

// Join blocks until the player's goroutines have exited.
func (p *Player) Join() {
	<-p.done
}

// KeyPressed is the input-source entry point: one slot index per discrete
// input event. The press is silently dropped if the game is over, the slot
// is empty, the player is frozen, or the table is locked.
func (p *Player) KeyPressed(slot int) {
	if p.terminated() || slot < 0 || slot >= p.table.Size() {
		return
	}
	if p.table.CardAt(slot) == NoCard || p.frozen.Load() || p.table.Locked() {
		return
	}
	select {
	case p.actions <- slot:
	case <-p.quit:
	}
}

// runBot synthesizes random slot presses at full speed, bounded only by the
// action queue filling up (KeyPressed blocks on a full queue). An optional
// configured delay throttles it.
func (p *Player) runBot(wg *sync.WaitGroup) {
	defer wg.Done()
	log.Printf("[Player %d] bot generator starting", p.id)

	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(p.id)))
	for {
		select {
		case <-p.quit:
			log.Printf("[Player %d] bot generator terminated", p.id)
			return
		default:
		}

		p.KeyPressed(rng.Intn(p.table.Size()))

		if p.botDelay > 0 {
			select {
			case <-p.quit:
				log.Printf("[Player %d] bot generator terminated", p.id)
				return
			case <-time.After(p.botDelay):
			}
		}
	}
}

// processAction toggles a token on the slot and, when the token set reaches
// the feature size, submits a candidate and blocks until the dealer's
// verdict arrives.
func (p *Player) processAction(slot int) {
	p.mu.Lock()
	if p.table.RemoveToken(p.id, slot) {
		p.dropTokenSlotLocked(slot)
	} else if len(p.tokenSlots) < p.featureSize && p.table.PlaceToken(p.id, slot) {
		p.tokenSlots = append(p.tokenSlots, slot)
	}
	complete := len(p.tokenSlots) == p.featureSize
	p.mu.Unlock()

	if !complete {
		return
	}

	cand, ok := p.snapshotCandidate()
	if !ok {
		return
	}

	p.setVerdict(VerdictPending)
	select {
	case <-p.verdicts: // discard any stale ruling from a prior cycle
	default:
	}

	if !p.dealer.submit(cand) {
		return
	}

	select {
	case v := <-p.verdicts:
		if v == VerdictLegal {
			p.point()
		} else {
			p.penalty()
		}
	case <-p.quit:
		return
	}

	p.drainActions()
}

// snapshotCandidate reads the cards under the player's tokens. It fails if
// the table changed underneath before the snapshot completed.
func (p *Player) snapshotCandidate() (Candidate, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.tokenSlots) != p.featureSize {
		return Candidate{}, false
	}
	cand := Candidate{PlayerID: p.id, Cards: make([]int, 0, p.featureSize)}
	for _, slot := range p.tokenSlots {
		card := p.table.CardAt(slot)
		if card == NoCard {
			return Candidate{}, false
		}
		cand.Cards = append(cand.Cards, card)
	}
	return cand, true
}

// point runs the reward sequence: freeze with a per-second countdown,
// increment and display the score, clear the token set, unfreeze.
func (p *Player) point() {
	if !p.acquireFreeze() {
		return
	}
	if !p.freezeCountdown(p.pointFreeze) {
		return
	}
	p.display.SetFreeze(p.id, 0)
	p.setVerdict(VerdictPending)

	p.mu.Lock()
	p.score++
	score := p.score
	p.tokenSlots = p.tokenSlots[:0]
	p.mu.Unlock()

	p.display.SetScore(p.id, score)
	p.frozen.Store(false)
}

// penalty runs the penalty sequence: same freeze choreography, no score
// change, and the tokens stay on the table for a later toggle-off.
func (p *Player) penalty() {
	if !p.acquireFreeze() {
		return
	}
	if !p.freezeCountdown(p.penaltyFreeze) {
		return
	}
	p.display.SetFreeze(p.id, 0)
	p.setVerdict(VerdictPending)
	p.frozen.Store(false)
}

// acquireFreeze waits for the dealer to release the in-flight freeze, then
// takes it for the reward/penalty countdown. Returns false on termination.
func (p *Player) acquireFreeze() bool {
	for {
		if p.frozen.CompareAndSwap(false, true) {
			return true
		}
		select {
		case <-p.quit:
			return false
		case <-time.After(time.Millisecond):
		}
	}
}

// freezeCountdown displays the remaining freeze once per whole second. A
// terminating player exits the wait loop rather than sleeping it out;
// returns false in that case and the rest of the sequence is abandoned.
func (p *Player) freezeCountdown(total time.Duration) bool {
	for remaining := total; remaining >= time.Second; remaining -= time.Second {
		p.display.SetFreeze(p.id, remaining)
		select {
		case <-p.quit:
			return false
		case <-time.After(time.Second):
		}
	}
	return true
}

// publishVerdict records the ruling and wakes the owning player. Called
// only by the dealer. The buffered send is the joint publish+wake scope:
// the player cannot observe the wake without the verdict value.
func (p *Player) publishVerdict(v Verdict) {
	p.mu.Lock()
	p.verdict = v
	p.mu.Unlock()
	select {
	case p.verdicts <- v:
	default:
	}
}

// MatchesTable reports whether the player's tokens still map exactly to the
// given cards on the live table. Called by the dealer, after freezing the
// player, to guard against stale submissions.
func (p *Player) MatchesTable(set []int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.tokenSlots) != p.featureSize || len(set) != p.featureSize {
		return false
	}
	for i, slot := range p.tokenSlots {
		if p.table.CardAt(slot) != set[i] {
			return false
		}
		actual, ok := p.table.SlotOf(set[i])
		if !ok || actual != slot {
			return false
		}
	}
	return true
}

// removeTokenSlot drops a slot from the player's token list, if present.
// Called by the dealer while it holds the table lock.
func (p *Player) removeTokenSlot(slot int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dropTokenSlotLocked(slot)
}

// clearTokenSlots empties the player's token list. Called by the dealer at
// round end; the table side of the tokens goes with the cards themselves.
func (p *Player) clearTokenSlots() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokenSlots = p.tokenSlots[:0]
}

func (p *Player) dropTokenSlotLocked(slot int) {
	for i, s := range p.tokenSlots {
		if s == slot {
			p.tokenSlots = append(p.tokenSlots[:i], p.tokenSlots[i+1:]...)
			return
		}
	}
}

func (p *Player) setVerdict(v Verdict) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.verdict = v
}

func (p *Player) drainActions() {
	for {
		select {
		case <-p.actions:
		default:
			return
		}
	}
}

func (p *Player) terminated() bool {
	select {
	case <-p.quit:
		return true
	default:
		return false
	}
}
