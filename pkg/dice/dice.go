// Package dice provides the randomness source for dice games.
package dice

import (
	"math/rand"
	"sync"
	"time"
)

// Faces is the number of faces on a standard die
const Faces = 6

// Roller is a source of uniformly distributed integers
type Roller interface {
	// Intn returns a random int in [0, n). n must be positive.
	Intn(n int) int
}

// RandRoller is a Roller backed by a seeded math/rand source, safe for concurrent use
type RandRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller creates a deterministic roller from seed
func NewRoller(seed int64) *RandRoller {
	return &RandRoller{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomRoller creates a roller with a time-based seed
func NewRandomRoller() *RandRoller {
	return NewRoller(time.Now().UnixNano())
}

// Intn implements Roller
func (r *RandRoller) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// RollDie returns a face in [1, 6]
func RollDie(r Roller) int {
	return r.Intn(Faces) + 1
}

// Sequence replays fixed die faces in order and wraps around.
// Faces are 1-based, as they appear on the die.
type Sequence struct {
	mu    sync.Mutex
	faces []int
	next  int
}

// NewSequence creates a scripted roller
func NewSequence(faces ...int) *Sequence {
	return &Sequence{faces: faces}
}

// Intn implements Roller by returning the next scripted face minus one
func (s *Sequence) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	face := s.faces[s.next%len(s.faces)]
	s.next++
	return (face - 1) % n
}
