package domain

import (
	"math/rand/v2"
	"slices"
)

const (
	MemoryPairs      = 6
	MemoryMatchScore = 10
)

type Memory struct {
	cards    []int
	faceUp   []int
	matched  []bool
	score    int
	complete bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Kind() Kind { return KindMemory }

func (m *Memory) Start(rng *rand.Rand) {
	m.cards = make([]int, 0, MemoryPairs*2)
	for v := 1; v <= MemoryPairs; v++ {
		m.cards = append(m.cards, v, v)
	}
	if rng != nil {
		rng.Shuffle(len(m.cards), func(i, j int) { m.cards[i], m.cards[j] = m.cards[j], m.cards[i] })
	}
	m.faceUp = nil
	m.matched = make([]bool, len(m.cards))
	m.score = 0
	m.complete = false
}

// HandleInput flips the card at in.Index. Flips are rejected while two cards
// are face up or when the card is already face up or matched.
func (m *Memory) HandleInput(in Input) Outcome {
	i := in.Index
	if m.complete || i < 0 || i >= len(m.cards) || len(m.faceUp) == 2 || m.matched[i] || slices.Contains(m.faceUp, i) {
		return Outcome{}
	}

	m.faceUp = append(m.faceUp, i)
	if len(m.faceUp) < 2 {
		return Outcome{Accepted: true}
	}

	first, second := m.faceUp[0], m.faceUp[1]
	if m.cards[first] != m.cards[second] {
		return Outcome{Accepted: true, FlipBack: true}
	}

	m.matched[first], m.matched[second] = true, true
	m.faceUp = nil
	m.score += MemoryMatchScore
	if !slices.Contains(m.matched, false) {
		m.complete = true
		return Outcome{Accepted: true, Completed: true}
	}
	return Outcome{Accepted: true}
}

// ResolveMismatch turns a mismatched pair face down again.
func (m *Memory) ResolveMismatch() {
	if len(m.faceUp) == 2 {
		m.faceUp = nil
	}
}

func (m *Memory) IsComplete() bool { return m.complete }

// Cards exposes the layout, mostly for tests.
func (m *Memory) Cards() []int {
	return slices.Clone(m.cards)
}

type MemoryView struct {
	// Cards holds the symbol of face-up and matched cards and 0 otherwise.
	Cards   []int  `json:"cards"`
	Matched []bool `json:"matched"`
	FaceUp  []int  `json:"face_up"`
}

func (m *Memory) View() View {
	shown := make([]int, len(m.cards))
	for i, v := range m.cards {
		if m.matched[i] || slices.Contains(m.faceUp, i) {
			shown[i] = v
		}
	}
	return View{
		Kind:     KindMemory,
		Complete: m.complete,
		Score:    m.score,
		Memory: &MemoryView{
			Cards:   shown,
			Matched: slices.Clone(m.matched),
			FaceUp:  slices.Clone(m.faceUp),
		},
	}
}
