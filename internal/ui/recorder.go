package ui

import (
	"sync"
	"time"
)

// CountdownEvent is one recorded SetCountdown call.
type CountdownEvent struct {
	Remaining time.Duration
	Warn      bool
}

// FreezeEvent is one recorded SetFreeze call.
type FreezeEvent struct {
	PlayerID  int
	Remaining time.Duration
}

// Recorder is a Display that captures every call for test assertions.
type Recorder struct {
	mu         sync.Mutex
	countdowns []CountdownEvent
	scores     map[int]int
	freezes    []FreezeEvent
	winners    [][]int
	hints      [][][]int
}

// NewRecorder returns an empty recording display.
func NewRecorder() *Recorder {
	return &Recorder{scores: make(map[int]int)}
}

func (r *Recorder) SetCountdown(remaining time.Duration, warn bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countdowns = append(r.countdowns, CountdownEvent{Remaining: remaining, Warn: warn})
}

func (r *Recorder) SetScore(playerID, score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores[playerID] = score
}

func (r *Recorder) SetFreeze(playerID int, remaining time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.freezes = append(r.freezes, FreezeEvent{PlayerID: playerID, Remaining: remaining})
}

func (r *Recorder) AnnounceWinners(playerIDs []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int, len(playerIDs))
	copy(ids, playerIDs)
	r.winners = append(r.winners, ids)
}

func (r *Recorder) Hints(sets [][]int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hints = append(r.hints, sets)
}

// Countdowns returns a copy of the recorded countdown events.
func (r *Recorder) Countdowns() []CountdownEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CountdownEvent, len(r.countdowns))
	copy(out, r.countdowns)
	return out
}

// Score returns the last score displayed for a player (0 if never set).
func (r *Recorder) Score(playerID int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scores[playerID]
}

// Freezes returns a copy of the recorded freeze events.
func (r *Recorder) Freezes() []FreezeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]FreezeEvent, len(r.freezes))
	copy(out, r.freezes)
	return out
}

// Winners returns the recorded winner announcements.
func (r *Recorder) Winners() [][]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]int, len(r.winners))
	copy(out, r.winners)
	return out
}

// HintCount returns how many hint dumps were displayed.
func (r *Recorder) HintCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hints)
}
