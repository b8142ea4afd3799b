package app

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dwikikusuma/coffee-order/internal/game/domain"
	loyalty "github.com/dwikikusuma/coffee-order/internal/loyalty/domain"
	"github.com/dwikikusuma/coffee-order/pkg/clock"
)

var (
	ErrUnknownGame  = errors.New("unknown game")
	ErrNoActiveGame = errors.New("no active game")
)

const (
	DefaultFlipDelay    = time.Second
	DefaultTickInterval = time.Second
)

type Options struct {
	FlipDelay       time.Duration
	TickInterval    time.Duration
	QuickTapSeconds int
	Questions       []domain.Question
	Rand            *rand.Rand
	Logger          *slog.Logger
}

// Engine runs at most one mini-game at a time and owns its timers. Leaving or
// restarting a game stops every timer that belonged to the previous session.
type Engine struct {
	mu      sync.Mutex
	clock   clock.Clock
	awarder PointsAwarder
	opts    Options
	rng     *rand.Rand
	log     *slog.Logger

	active  domain.Game
	ticker  clock.Timer
	flip    clock.Timer
	gen     uint64
	awarded bool
}

func NewEngine(clk clock.Clock, awarder PointsAwarder, opts Options) *Engine {
	if opts.FlipDelay <= 0 {
		opts.FlipDelay = DefaultFlipDelay
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.QuickTapSeconds <= 0 {
		opts.QuickTapSeconds = domain.DefaultQuickTapSeconds
	}
	if len(opts.Questions) == 0 {
		opts.Questions = domain.DefaultQuestions()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(clk.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Engine{clock: clk, awarder: awarder, opts: opts, rng: rng, log: log}
}

func (e *Engine) newGame(kind domain.Kind) (domain.Game, error) {
	switch kind {
	case domain.KindMemory:
		return domain.NewMemory(), nil
	case domain.KindTrivia:
		return domain.NewTrivia(e.opts.Questions), nil
	case domain.KindQuickTap:
		return domain.NewQuickTap(e.opts.QuickTapSeconds), nil
	}
	return nil, fmt.Errorf("%q: %w", kind, ErrUnknownGame)
}

// Start opens a fresh session of kind, discarding any running game.
func (e *Engine) Start(kind domain.Kind) (domain.View, error) {
	g, err := e.newGame(kind)
	if err != nil {
		return domain.View{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.teardownLocked()
	g.Start(e.rng)
	e.active = g
	e.awarded = false

	if timed, ok := g.(domain.Timed); ok {
		gen := e.gen
		e.ticker = e.clock.Every(e.opts.TickInterval, func() { e.tick(gen, timed) })
	}

	e.log.Info("game started", slog.String("game", string(kind)))
	return g.View(), nil
}

func (e *Engine) Input(in domain.Input) (domain.View, error) {
	e.mu.Lock()
	if e.active == nil {
		e.mu.Unlock()
		return domain.View{}, ErrNoActiveGame
	}
	g := e.active
	out := g.HandleInput(in)
	if out.FlipBack {
		if mem, ok := g.(*domain.Memory); ok {
			gen := e.gen
			e.flip = e.clock.AfterFunc(e.opts.FlipDelay, func() { e.flipBack(gen, mem) })
		}
	}
	award := e.completeLocked(out)
	view := g.View()
	e.mu.Unlock()

	e.award(award, g.Kind())
	return view, nil
}

func (e *Engine) tick(gen uint64, g domain.Timed) {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}
	out := g.Tick()
	award := e.completeLocked(out)
	if g.IsComplete() && e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
	e.mu.Unlock()

	e.award(award, g.Kind())
}

func (e *Engine) flipBack(gen uint64, m *domain.Memory) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return
	}
	e.flip = nil
	m.ResolveMismatch()
}

// completeLocked reports whether the bonus is due for this outcome. The bonus
// is paid at most once per session.
func (e *Engine) completeLocked(out domain.Outcome) bool {
	if !out.Completed || e.awarded {
		return false
	}
	e.awarded = true
	return true
}

func (e *Engine) award(due bool, kind domain.Kind) {
	if !due {
		return
	}
	e.log.Info("game completed", slog.String("game", string(kind)), slog.Int("bonus", loyalty.GameBonus))
	if e.awarder != nil {
		e.awarder.AwardPoints(loyalty.GameBonus)
	}
}

// Exit leaves the current game and stops its timers.
func (e *Engine) Exit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return
	}
	e.log.Info("game exited", slog.String("game", string(e.active.Kind())))
	e.teardownLocked()
}

func (e *Engine) View() (domain.View, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return domain.View{}, false
	}
	return e.active.View(), true
}

// PendingTimers is the number of timers still owned by the engine.
func (e *Engine) PendingTimers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	if e.ticker != nil {
		n++
	}
	if e.flip != nil {
		n++
	}
	return n
}

func (e *Engine) teardownLocked() {
	e.stopTimersLocked()
	e.active = nil
	e.gen++
}

func (e *Engine) stopTimersLocked() {
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
	if e.flip != nil {
		e.flip.Stop()
		e.flip = nil
	}
}
