package game

import "sync"

// NoCard marks an empty slot in the slot-to-card mapping.
const NoCard = -1

// Table is the shared grid of card slots. It keeps the slot↔card mapping
// consistent in both directions and tracks per-player tokens per slot.
//
// Each operation is individually atomic (guarded by an internal mutex), but
// real exclusion across a mutation burst is the dealer's coarse lock flag:
// the dealer sets the flag around dealing, clearing and set removal, and
// player token toggles are rejected outright while it is set. Players check
// the flag before attempting a toggle, so no stale toggle is applied after
// the lock releases.
type Table struct {
	mu         sync.Mutex
	slotToCard []int
	cardToSlot map[int]int
	tokens     []map[int]bool // slot -> set of player ids
	locked     bool
}

// NewTable creates an empty table with the given number of slots.
func NewTable(size int) *Table {
	t := &Table{
		slotToCard: make([]int, size),
		cardToSlot: make(map[int]int),
		tokens:     make([]map[int]bool, size),
	}
	for i := range t.slotToCard {
		t.slotToCard[i] = NoCard
		t.tokens[i] = make(map[int]bool)
	}
	return t
}

// Size returns the number of slots.
func (t *Table) Size() int {
	return len(t.slotToCard)
}

// SetLocked toggles the coarse mutation gate. Only the dealer calls this.
func (t *Table) SetLocked(locked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.locked = locked
}

// Locked reports whether the dealer currently holds the mutation gate.
func (t *Table) Locked() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.locked
}

// PlaceCard writes both directions of the slot↔card mapping. The caller
// must hold the lock flag.
func (t *Table) PlaceCard(card, slot int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slotToCard[slot] = card
	t.cardToSlot[card] = slot
}

// RemoveCard clears a slot, its inverse mapping and every token on it. The
// caller must hold the lock flag.
func (t *Table) RemoveCard(slot int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	card := t.slotToCard[slot]
	if card == NoCard {
		return
	}
	t.slotToCard[slot] = NoCard
	delete(t.cardToSlot, card)
	t.tokens[slot] = make(map[int]bool)
}

// PlaceToken puts a player token on a slot. It fails if the table is
// locked, the slot is empty, or the token is already present.
func (t *Table) PlaceToken(playerID, slot int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.locked || t.slotToCard[slot] == NoCard || t.tokens[slot][playerID] {
		return false
	}
	t.tokens[slot][playerID] = true
	return true
}

// RemoveToken removes a player token from a slot. It fails if the table is
// locked or the token is not present.
func (t *Table) RemoveToken(playerID, slot int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.locked || !t.tokens[slot][playerID] {
		return false
	}
	delete(t.tokens[slot], playerID)
	return true
}

// HasToken reports whether a player has a token on a slot.
func (t *Table) HasToken(playerID, slot int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tokens[slot][playerID]
}

// CardAt returns the card in a slot, or NoCard if the slot is empty.
func (t *Table) CardAt(slot int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if slot < 0 || slot >= len(t.slotToCard) {
		return NoCard
	}
	return t.slotToCard[slot]
}

// SlotOf returns the slot holding a card and whether the card is on the
// table at all.
func (t *Table) SlotOf(card int) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	slot, ok := t.cardToSlot[card]
	return slot, ok
}

// CountCards returns the number of occupied slots.
func (t *Table) CountCards() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	count := 0
	for _, card := range t.slotToCard {
		if card != NoCard {
			count++
		}
	}
	return count
}

// Cards returns the cards currently on the table, in slot order.
func (t *Table) Cards() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]int, 0, len(t.slotToCard))
	for _, card := range t.slotToCard {
		if card != NoCard {
			out = append(out, card)
		}
	}
	return out
}
