package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	slots []int
}

func (s *recordingSink) KeyPressed(slot int) {
	s.slots = append(s.slots, slot)
}

func TestRouter_DispatchMappedKeys(t *testing.T) {
	router := NewRouter()
	alice := &recordingSink{}
	bob := &recordingSink{}
	router.Register(0, "qwe", alice)
	router.Register(1, "uio", bob)

	router.Dispatch('q')
	router.Dispatch('e')
	router.Dispatch('i')
	router.Dispatch('z') // unmapped: ignored

	assert.Equal(t, []int{0, 2}, alice.slots)
	assert.Equal(t, []int{1}, bob.slots)
}

func TestRouter_LaterRegistrationWinsCollision(t *testing.T) {
	router := NewRouter()
	first := &recordingSink{}
	second := &recordingSink{}
	router.Register(0, "q", first)
	router.Register(1, "q", second)

	router.Dispatch('q')

	assert.Empty(t, first.slots)
	assert.Equal(t, []int{0}, second.slots)
}

func TestRouter_RunStopsAtEOF(t *testing.T) {
	router := NewRouter()
	sink := &recordingSink{}
	router.Register(0, "qw", sink)

	quit := make(chan struct{})
	router.Run(strings.NewReader("qxwq"), quit) // returns at EOF

	assert.Equal(t, []int{0, 1, 0}, sink.slots)
}

func TestRouter_RunHonorsQuit(t *testing.T) {
	router := NewRouter()
	sink := &recordingSink{}
	router.Register(0, "q", sink)

	quit := make(chan struct{})
	close(quit)
	router.Run(strings.NewReader("qqq"), quit)

	assert.Empty(t, sink.slots, "a closed quit channel must stop the router before reading")
}
