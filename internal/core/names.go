package core

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

var (
	nameAdjectives = []string{"Happy", "Brave", "Clever", "Gentle", "Kind", "Wise", "Calm", "Bright", "Swift", "Noble"}
	nameAnimals    = []string{"Turtle", "Dolphin", "Eagle", "Lion", "Panda", "Tiger", "Wolf", "Bear", "Fox", "Hawk"}
)

const (
	roomIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomIDLength   = 6
)

// NameGenerator produces display names and room ids from a single random
// source. Safe for concurrent use; inject a seeded source for deterministic
// output.
type NameGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewNameGenerator wraps the given random source.
func NewNameGenerator(rng *rand.Rand) *NameGenerator {
	return &NameGenerator{rng: rng}
}

// DisplayName returns a name like "Brave Fox #417". Names are not unique;
// the participant id is, and the name is display-only.
func (g *NameGenerator) DisplayName() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	adjective := nameAdjectives[g.rng.Intn(len(nameAdjectives))]
	animal := nameAnimals[g.rng.Intn(len(nameAnimals))]
	return fmt.Sprintf("%s %s #%d", adjective, animal, g.rng.Intn(999)+1)
}

// RoomID returns a 6-character uppercase alphanumeric token. Uniqueness is
// the registry's job.
func (g *NameGenerator) RoomID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var b strings.Builder
	b.Grow(roomIDLength)
	for i := 0; i < roomIDLength; i++ {
		b.WriteByte(roomIDAlphabet[g.rng.Intn(len(roomIDAlphabet))])
	}
	return b.String()
}
