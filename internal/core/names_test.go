package core

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

var displayNameRe = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+ #(\d{1,3})$`)

func TestDisplayNameFormat(t *testing.T) {
	gen := NewNameGenerator(rand.New(rand.NewSource(42)))

	for i := 0; i < 200; i++ {
		name := gen.DisplayName()
		m := displayNameRe.FindStringSubmatch(name)
		if m == nil {
			t.Fatalf("malformed display name %q", name)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > 999 {
			t.Fatalf("number out of range in %q", name)
		}
	}
}

func TestRoomIDFormat(t *testing.T) {
	gen := NewNameGenerator(rand.New(rand.NewSource(42)))

	for i := 0; i < 200; i++ {
		id := gen.RoomID()
		if len(id) != roomIDLength {
			t.Fatalf("unexpected length for %q", id)
		}
		for _, ch := range id {
			if !strings.ContainsRune(roomIDAlphabet, ch) {
				t.Fatalf("unexpected character %q in %q", ch, id)
			}
		}
	}
}

func TestGeneratorDeterministicWithSeed(t *testing.T) {
	a := NewNameGenerator(rand.New(rand.NewSource(7)))
	b := NewNameGenerator(rand.New(rand.NewSource(7)))

	for i := 0; i < 20; i++ {
		if an, bn := a.DisplayName(), b.DisplayName(); an != bn {
			t.Fatalf("same seed diverged: %q vs %q", an, bn)
		}
		if ai, bi := a.RoomID(), b.RoomID(); ai != bi {
			t.Fatalf("same seed diverged: %q vs %q", ai, bi)
		}
	}
}
