// Package input turns keyboard bytes into per-player slot actions. It is a
// pure event source: it dispatches into the game core and never reads
// anything back out of it.
package input

import (
	"bufio"
	"io"
	"log"
)

// Binding maps one key to one player's slot.
type Binding struct {
	PlayerID int
	Slot     int
}

// Sink receives decoded slot actions for a player. Satisfied by
// (*game.Player).KeyPressed via the Router.
type Sink interface {
	KeyPressed(slot int)
}

// Router reads bytes from a reader and dispatches mapped keys to player
// sinks. Unmapped keys are ignored.
type Router struct {
	bindings map[byte]Binding
	sinks    map[int]Sink
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		bindings: make(map[byte]Binding),
		sinks:    make(map[int]Sink),
	}
}

// Register wires a player's key row: the i-th byte of keys maps to slot i.
// Later registrations win on key collisions.
func (r *Router) Register(playerID int, keys string, sink Sink) {
	r.sinks[playerID] = sink
	for slot := 0; slot < len(keys); slot++ {
		r.bindings[keys[slot]] = Binding{PlayerID: playerID, Slot: slot}
	}
}

// Dispatch routes a single key to its bound player, if any.
func (r *Router) Dispatch(key byte) {
	binding, ok := r.bindings[key]
	if !ok {
		return
	}
	if sink, ok := r.sinks[binding.PlayerID]; ok {
		sink.KeyPressed(binding.Slot)
	}
}

// Run consumes the reader byte by byte until EOF, a read error, or quit.
// It is meant to run in its own goroutine wrapping os.Stdin.
func (r *Router) Run(reader io.Reader, quit <-chan struct{}) {
	br := bufio.NewReader(reader)
	for {
		select {
		case <-quit:
			return
		default:
		}
		key, err := br.ReadByte()
		if err != nil {
			if err != io.EOF {
				log.Printf("[Input] read error: %v", err)
			}
			return
		}
		r.Dispatch(key)
	}
}
