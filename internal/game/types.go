// Package game implements the concurrent core of Meld: the shared table,
// one goroutine per player (plus one per bot), and the dealer goroutine
// that deals, times rounds, validates submitted sets and sequences
// shutdown.
package game

import "fmt"

// Verdict is the dealer's ruling on a submitted candidate set. A player's
// verdict is reset to VerdictPending at the start of every submission cycle,
// written only by the dealer and read only by the owning player.
type Verdict string

const (
	// VerdictPending indicates no ruling has been published yet.
	VerdictPending Verdict = "Pending"

	// VerdictLegal indicates the candidate was accepted: the cards are
	// removed and the player is rewarded.
	VerdictLegal Verdict = "Legal"

	// VerdictIllegal indicates the candidate was rejected or went stale:
	// the table is untouched and the player is penalized.
	VerdictIllegal Verdict = "Illegal"
)

// Candidate is a player's submission: a snapshot of the cards under its
// tokens at the moment the token set became complete.
type Candidate struct {
	PlayerID int
	Cards    []int
}

// Validate checks structural validity of a candidate.
func (c *Candidate) Validate() error {
	if c.PlayerID < 0 {
		return fmt.Errorf("negative player id: %d", c.PlayerID)
	}
	if len(c.Cards) == 0 {
		return fmt.Errorf("candidate has no cards")
	}
	for _, card := range c.Cards {
		if card < 0 {
			return fmt.Errorf("negative card id: %d", card)
		}
	}
	return nil
}
