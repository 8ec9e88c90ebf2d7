package cards

import (
	"math/rand"
	"sort"
	"testing"
)

// TestStandardRules_DeckSize tests the classic deck dimensions
func TestStandardRules_DeckSize(t *testing.T) {
	r := StandardRules()
	if r.DeckSize() != 81 {
		t.Errorf("expected deck size 81, got %d", r.DeckSize())
	}
}

// TestNewRules_FeatureCount tests feature derivation from deck size
func TestNewRules_FeatureCount(t *testing.T) {
	cases := []struct {
		setSize, deckSize, features int
	}{
		{3, 81, 4},
		{3, 9, 2},
		{3, 12, 3},
		{3, 3, 1},
		{4, 16, 2},
	}
	for _, c := range cases {
		r := NewRules(c.setSize, c.deckSize)
		if r.Features != c.features {
			t.Errorf("NewRules(%d, %d): expected %d features, got %d",
				c.setSize, c.deckSize, c.features, r.Features)
		}
		if r.DeckSize() < c.deckSize {
			t.Errorf("NewRules(%d, %d): deck capacity %d cannot hold the deck",
				c.setSize, c.deckSize, r.DeckSize())
		}
	}
}

// TestIsValidSet_AllDistinctFeature tests a set varying in one feature
func TestIsValidSet_AllDistinctFeature(t *testing.T) {
	r := StandardRules()
	// 0,1,2 differ in the first feature and agree in all others
	if !r.IsValidSet([]int{0, 1, 2}) {
		t.Error("expected {0,1,2} to be a valid set")
	}
	// 0,3,6 agree in the first feature and differ in the second
	if !r.IsValidSet([]int{0, 3, 6}) {
		t.Error("expected {0,3,6} to be a valid set")
	}
}

// TestIsValidSet_TwoEqualOneDifferent tests the invalid two-and-one shape
func TestIsValidSet_TwoEqualOneDifferent(t *testing.T) {
	r := StandardRules()
	// first feature values are 0,1,0: neither all equal nor all distinct
	if r.IsValidSet([]int{0, 1, 3}) {
		t.Error("expected {0,1,3} to be invalid")
	}
}

// TestIsValidSet_WrongSize tests size mismatch rejection
func TestIsValidSet_WrongSize(t *testing.T) {
	r := StandardRules()
	if r.IsValidSet([]int{0, 1}) {
		t.Error("expected a pair to be invalid")
	}
	if r.IsValidSet([]int{0, 1, 2, 3}) {
		t.Error("expected a quad to be invalid")
	}
	if r.IsValidSet(nil) {
		t.Error("expected nil to be invalid")
	}
}

// TestFindSets_Limit tests that the finder stops at the limit
func TestFindSets_Limit(t *testing.T) {
	r := StandardRules()
	pool := []int{0, 1, 2, 3, 4, 5, 6, 7, 8}

	one := r.FindSets(pool, 1)
	if len(one) != 1 {
		t.Fatalf("expected exactly 1 set with limit 1, got %d", len(one))
	}
	if !r.IsValidSet(one[0]) {
		t.Errorf("finder returned invalid set %v", one[0])
	}

	all := r.FindSets(pool, 0)
	if len(all) <= 1 {
		t.Errorf("expected several sets in the first nine cards, got %d", len(all))
	}
	for _, set := range all {
		if !r.IsValidSet(set) {
			t.Errorf("finder returned invalid set %v", set)
		}
	}
}

// TestFindSets_NoSets tests pools without any valid set
func TestFindSets_NoSets(t *testing.T) {
	r := StandardRules()
	if sets := r.FindSets([]int{0, 1, 3}, 0); len(sets) != 0 {
		t.Errorf("expected no sets in {0,1,3}, got %v", sets)
	}
	if sets := r.FindSets([]int{0, 1}, 0); len(sets) != 0 {
		t.Errorf("expected no sets in a pool smaller than the set size, got %v", sets)
	}
}

// TestFeatureValues tests the digit decomposition
func TestFeatureValues(t *testing.T) {
	r := StandardRules()
	values := r.FeatureValues(5) // 5 = 2 + 1*3
	expected := []int{2, 1, 0, 0}
	for i := range expected {
		if values[i] != expected[i] {
			t.Fatalf("FeatureValues(5): expected %v, got %v", expected, values)
		}
	}
}

// TestShuffle_PreservesCards tests that shuffling loses nothing
func TestShuffle_PreservesCards(t *testing.T) {
	deck := NewDeck(81)
	shuffled := make([]int, len(deck))
	copy(shuffled, deck)

	Shuffle(shuffled, rand.New(rand.NewSource(42)))

	sorted := make([]int, len(shuffled))
	copy(sorted, shuffled)
	sort.Ints(sorted)
	for i, card := range sorted {
		if card != i {
			t.Fatalf("shuffle lost or duplicated cards: position %d holds %d", i, card)
		}
	}
}
