// Package ui provides the write-only display sink the game core renders
// through. Implementations never call back into the core.
package ui

import "time"

// Display receives rendering calls from the dealer and the players.
type Display interface {
	// SetCountdown updates the round countdown. warn is set once the
	// remaining time falls under the configured warning threshold.
	SetCountdown(remaining time.Duration, warn bool)

	// SetScore updates a player's displayed score.
	SetScore(playerID, score int)

	// SetFreeze updates a player's displayed freeze countdown; zero
	// remaining clears it.
	SetFreeze(playerID int, remaining time.Duration)

	// AnnounceWinners displays the final winner list.
	AnnounceWinners(playerIDs []int)

	// Hints dumps the currently available sets, as a debug aid.
	Hints(sets [][]int)
}
