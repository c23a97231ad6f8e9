package wizard

import (
	"fmt"
	"strings"

	"mechanicbook/models"
)

const (
	ClarifierNoDetails   = "No extra details were provided."
	ClarifierStoppedNote = "Customer stopped: \"I've told you all I know\"."
)

// ClarifierState is the observable state of the clarifying-question flow.
type ClarifierState struct {
	Active       bool
	Complete     bool
	Stopped      bool
	CurrentIndex int
	Answers      []string // "" marks an unanswered question
}

// Clarifier walks the customer through a fixed list of questions:
// inactive -> asking(0) -> ... -> asking(n-1) -> complete, or asking(i) -> complete when stopped early.
type Clarifier struct {
	questions []string
	state     ClarifierState
}

// NewClarifier copies the question list; an empty list falls back to the default questions.
func NewClarifier(questions []string) *Clarifier {
	if len(questions) == 0 {
		questions = models.DefaultClarifierQuestions
	}
	return &Clarifier{questions: append([]string(nil), questions...)}
}

// Start begins (or restarts) the flow from the first question with no answers.
func (c *Clarifier) Start() {
	c.state = ClarifierState{Active: true}
}

// Restart is an alias for Start.
func (c *Clarifier) Restart() { c.Start() }

// Answer records text for the current question and moves on. Blank text, or an inactive
// or complete flow, leaves the state untouched and returns false.
func (c *Clarifier) Answer(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || !c.asking() {
		return false
	}
	for len(c.state.Answers) <= c.state.CurrentIndex {
		c.state.Answers = append(c.state.Answers, "")
	}
	c.state.Answers[c.state.CurrentIndex] = text
	c.state.CurrentIndex++
	if c.state.CurrentIndex >= len(c.questions) {
		c.state.Complete = true
	}
	return true
}

// Stop ends the flow early, keeping the answers given so far.
func (c *Clarifier) Stop() bool {
	if !c.asking() {
		return false
	}
	c.state.Stopped = true
	c.state.Complete = true
	return true
}

func (c *Clarifier) asking() bool {
	return c.state.Active && !c.state.Complete
}

// State returns a copy of the current state.
func (c *Clarifier) State() ClarifierState {
	s := c.state
	s.Answers = append([]string(nil), c.state.Answers...)
	return s
}

func (c *Clarifier) Questions() []string {
	return append([]string(nil), c.questions...)
}

// SetQuestions replaces the question list and resets the flow.
func (c *Clarifier) SetQuestions(questions []string) {
	if len(questions) == 0 {
		return
	}
	c.questions = append([]string(nil), questions...)
	c.state = ClarifierState{}
}

// CurrentQuestion returns the question being asked, if any.
func (c *Clarifier) CurrentQuestion() (string, bool) {
	if !c.asking() || c.state.CurrentIndex >= len(c.questions) {
		return "", false
	}
	return c.questions[c.state.CurrentIndex], true
}

// IsLastQuestion reports whether answering now finishes the flow.
func (c *Clarifier) IsLastQuestion() bool {
	return c.asking() && c.state.CurrentIndex == len(c.questions)-1
}

// Progress renders "Question 2 of 3" while asking, "" otherwise.
func (c *Clarifier) Progress() string {
	if _, ok := c.CurrentQuestion(); !ok {
		return ""
	}
	return fmt.Sprintf("Question %d of %d", c.state.CurrentIndex+1, len(c.questions))
}

// Summary lists the answered questions in order. Only meaningful once complete; before that
// it reflects whatever has been answered so far.
func (c *Clarifier) Summary() models.ClarifierSummary {
	s := models.ClarifierSummary{
		Pairs:     []models.ClarifierPair{},
		Stopped:   c.state.Stopped,
		Completed: c.state.Complete,
	}
	for i, ans := range c.state.Answers {
		if ans == "" || i >= len(c.questions) {
			continue
		}
		s.Pairs = append(s.Pairs, models.ClarifierPair{Question: c.questions[i], Answer: ans})
	}
	if len(s.Pairs) == 0 {
		s.Note = ClarifierNoDetails
	}
	return s
}

// SummaryLines renders the summary for display, one line per answer.
func (c *Clarifier) SummaryLines() []string {
	sum := c.Summary()
	var lines []string
	for i, p := range sum.Pairs {
		lines = append(lines, fmt.Sprintf("Q%d: %s - %s", c.indexOf(p.Question, i)+1, p.Question, p.Answer))
	}
	if len(lines) == 0 {
		lines = append(lines, ClarifierNoDetails)
	}
	if sum.Stopped {
		lines = append(lines, ClarifierStoppedNote)
	}
	return lines
}

func (c *Clarifier) indexOf(question string, fallback int) int {
	for i, q := range c.questions {
		if q == question {
			return i
		}
	}
	return fallback
}
