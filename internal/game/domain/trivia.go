package domain

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"gopkg.in/yaml.v3"
)

//go:embed data/questions.yaml
var defaultQuestions []byte

var ErrInvalidQuestion = errors.New("invalid trivia question")

type Question struct {
	Prompt  string   `yaml:"prompt" json:"prompt"`
	Options []string `yaml:"options" json:"options"`
	Correct int      `yaml:"correct" json:"-"`
}

func DecodeQuestions(r io.Reader) ([]Question, error) {
	var doc struct {
		Questions []Question `yaml:"questions"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if len(doc.Questions) == 0 {
		return nil, fmt.Errorf("no questions: %w", ErrInvalidQuestion)
	}
	for i, q := range doc.Questions {
		if q.Prompt == "" || len(q.Options) < 2 || q.Correct < 0 || q.Correct >= len(q.Options) {
			return nil, fmt.Errorf("question %d: %w", i, ErrInvalidQuestion)
		}
	}
	return doc.Questions, nil
}

// DefaultQuestions returns the bundled coffee trivia set.
func DefaultQuestions() []Question {
	qs, err := DecodeQuestions(bytes.NewReader(defaultQuestions))
	if err != nil {
		panic(err)
	}
	return qs
}

// Trivia walks a fixed question list. Every answer moves on; the number of
// correct answers is shown but does not change the completion bonus.
type Trivia struct {
	questions []Question
	current   int
	correct   int
	complete  bool
}

func NewTrivia(questions []Question) *Trivia {
	return &Trivia{questions: questions}
}

func (t *Trivia) Kind() Kind { return KindTrivia }

func (t *Trivia) Start(*rand.Rand) {
	t.current = 0
	t.correct = 0
	t.complete = len(t.questions) == 0
}

func (t *Trivia) HandleInput(in Input) Outcome {
	if t.complete || t.current >= len(t.questions) {
		return Outcome{}
	}
	q := t.questions[t.current]
	if in.Index < 0 || in.Index >= len(q.Options) {
		return Outcome{}
	}
	if in.Index == q.Correct {
		t.correct++
	}
	if t.current == len(t.questions)-1 {
		t.complete = true
		return Outcome{Accepted: true, Completed: true}
	}
	t.current++
	return Outcome{Accepted: true}
}

func (t *Trivia) IsComplete() bool { return t.complete }

type TriviaView struct {
	Index    int       `json:"index"`
	Total    int       `json:"total"`
	Question *Question `json:"question,omitempty"`
	Correct  int       `json:"correct"`
}

func (t *Trivia) View() View {
	tv := &TriviaView{Index: t.current, Total: len(t.questions), Correct: t.correct}
	if !t.complete && t.current < len(t.questions) {
		q := t.questions[t.current]
		tv.Question = &q
	}
	return View{Kind: KindTrivia, Complete: t.complete, Score: t.correct, Trivia: tv}
}
