package domain

import "math/rand/v2"

const DefaultQuickTapSeconds = 10

// Target bounds, as percentages of the play area.
const (
	targetMinX, targetSpanX = 10, 80
	targetMinY, targetSpanY = 20, 60
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// QuickTap counts taps on a moving target during a countdown. The session
// completes when the countdown runs out, whatever the tap count.
type QuickTap struct {
	seconds  int
	timeLeft int
	score    int
	active   bool
	complete bool
	target   Position
	rng      *rand.Rand
}

func NewQuickTap(seconds int) *QuickTap {
	if seconds <= 0 {
		seconds = DefaultQuickTapSeconds
	}
	return &QuickTap{seconds: seconds, timeLeft: seconds, target: Position{X: 50, Y: 50}}
}

func (q *QuickTap) Kind() Kind { return KindQuickTap }

func (q *QuickTap) Start(rng *rand.Rand) {
	q.rng = rng
	q.timeLeft = q.seconds
	q.score = 0
	q.active = true
	q.complete = false
	q.moveTarget()
}

// HandleInput registers a tap. Taps while inactive are ignored.
func (q *QuickTap) HandleInput(Input) Outcome {
	if !q.active {
		return Outcome{}
	}
	q.score++
	q.moveTarget()
	return Outcome{Accepted: true}
}

// Tick counts down one second.
func (q *QuickTap) Tick() Outcome {
	if !q.active {
		return Outcome{}
	}
	if q.timeLeft <= 1 {
		q.timeLeft = 0
		q.active = false
		q.complete = true
		return Outcome{Accepted: true, Completed: true}
	}
	q.timeLeft--
	return Outcome{Accepted: true}
}

func (q *QuickTap) IsActive() bool   { return q.active }
func (q *QuickTap) IsComplete() bool { return q.complete }

func (q *QuickTap) moveTarget() {
	if q.rng == nil {
		return
	}
	q.target = Position{
		X: q.rng.Float64()*targetSpanX + targetMinX,
		Y: q.rng.Float64()*targetSpanY + targetMinY,
	}
}

type QuickTapView struct {
	TimeLeft int      `json:"time_left"`
	Active   bool     `json:"active"`
	Target   Position `json:"target"`
}

func (q *QuickTap) View() View {
	return View{
		Kind:     KindQuickTap,
		Complete: q.complete,
		Score:    q.score,
		QuickTap: &QuickTapView{TimeLeft: q.timeLeft, Active: q.active, Target: q.target},
	}
}
