// Package cards provides the pure combinatorial core of the Meld game:
// card/feature encoding, the set-validity judge, and the set finder.
//
// A card is an integer in [0, DeckSize). Its features are its digits in
// base SetSize: with the classic rules (set size 3, four features) the deck
// holds 81 cards and a triple is valid when, for every feature, the three
// cards are either all equal or all distinct.
//
// Everything in this package is stateless; the game core consumes it as a
// pure judge/finder and never feeds results back in.
package cards

import "math/rand"

// Rules fixes the combinatorial parameters of a game: how many cards form a
// set and how many feature digits a card carries.
type Rules struct {
	SetSize  int // cards per set, and values per feature
	Features int // feature digits per card
}

// StandardRules returns the classic game: sets of 3, four features, deck 81.
func StandardRules() Rules {
	return Rules{SetSize: 3, Features: 4}
}

// NewRules derives rules for a given set size and deck size: the feature
// count is the smallest number of base-SetSize digits that can encode every
// card in the deck.
func NewRules(setSize, deckSize int) Rules {
	features := 1
	for capacity := setSize; capacity < deckSize; capacity *= setSize {
		features++
	}
	return Rules{SetSize: setSize, Features: features}
}

// DeckSize returns the number of distinct cards the rules can encode.
func (r Rules) DeckSize() int {
	size := 1
	for i := 0; i < r.Features; i++ {
		size *= r.SetSize
	}
	return size
}

// FeatureValues returns the feature digits of a card, least significant
// first. Used for hint rendering and debugging.
func (r Rules) FeatureValues(card int) []int {
	values := make([]int, r.Features)
	for i := 0; i < r.Features; i++ {
		values[i] = card % r.SetSize
		card /= r.SetSize
	}
	return values
}

// IsValidSet reports whether the given cards form a valid set: exactly
// SetSize cards, and for every feature the values are all equal or all
// distinct.
func (r Rules) IsValidSet(set []int) bool {
	if len(set) != r.SetSize {
		return false
	}
	for feature := 0; feature < r.Features; feature++ {
		seen := make(map[int]int, r.SetSize)
		divisor := 1
		for i := 0; i < feature; i++ {
			divisor *= r.SetSize
		}
		for _, card := range set {
			seen[(card/divisor)%r.SetSize]++
		}
		allEqual := len(seen) == 1
		allDistinct := len(seen) == len(set)
		if !allEqual && !allDistinct {
			return false
		}
	}
	return true
}

// FindSets enumerates valid sets among the given cards, in lexicographic
// combination order, stopping after limit results. A limit <= 0 means no
// limit. The input is not modified.
func (r Rules) FindSets(cardPool []int, limit int) [][]int {
	var found [][]int
	combo := make([]int, r.SetSize)

	var walk func(start, depth int) bool
	walk = func(start, depth int) bool {
		if depth == r.SetSize {
			if r.IsValidSet(combo) {
				set := make([]int, r.SetSize)
				copy(set, combo)
				found = append(found, set)
				if limit > 0 && len(found) >= limit {
					return true
				}
			}
			return false
		}
		for i := start; i < len(cardPool); i++ {
			combo[depth] = cardPool[i]
			if walk(i+1, depth+1) {
				return true
			}
		}
		return false
	}
	walk(0, 0)
	return found
}

// NewDeck returns the cards 0..size-1 in order.
func NewDeck(size int) []int {
	deck := make([]int, size)
	for i := range deck {
		deck[i] = i
	}
	return deck
}

// Shuffle permutes the deck in place using the provided source.
func Shuffle(deck []int, rng *rand.Rand) {
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}
