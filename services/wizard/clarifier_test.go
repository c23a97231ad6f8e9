package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mechanicbook/models"
)

func TestClarifierAnswersEveryQuestion(t *testing.T) {
	c := NewClarifier(nil)
	c.Start()
	assert.Equal(t, "Question 1 of 3", c.Progress())

	require.True(t, c.Answer("Last week"))
	require.True(t, c.Answer("Only when cold"))
	assert.True(t, c.IsLastQuestion())
	require.True(t, c.Answer("  Engine light  "))

	st := c.State()
	assert.True(t, st.Complete)
	assert.False(t, st.Stopped)
	assert.Equal(t, 3, st.CurrentIndex)

	sum := c.Summary()
	require.Len(t, sum.Pairs, 3)
	assert.Equal(t, models.DefaultClarifierQuestions[0], sum.Pairs[0].Question)
	assert.Equal(t, "Engine light", sum.Pairs[2].Answer)
	assert.Empty(t, sum.Note)
	assert.False(t, sum.Stopped)
}

func TestClarifierStopAfterOneAnswer(t *testing.T) {
	c := NewClarifier(nil)
	c.Start()
	c.Answer("Yesterday")
	require.True(t, c.Stop())

	st := c.State()
	assert.True(t, st.Complete)
	assert.True(t, st.Stopped)

	sum := c.Summary()
	require.Len(t, sum.Pairs, 1)
	assert.Equal(t, "Yesterday", sum.Pairs[0].Answer)

	lines := c.SummaryLines()
	assert.Equal(t, ClarifierStoppedNote, lines[len(lines)-1])
}

func TestClarifierIgnoresBlankAnswers(t *testing.T) {
	c := NewClarifier(nil)
	c.Start()
	assert.False(t, c.Answer("   "))
	assert.Equal(t, 0, c.State().CurrentIndex)
	assert.Empty(t, c.State().Answers)
}

func TestClarifierStopWithNoAnswers(t *testing.T) {
	c := NewClarifier(nil)
	c.Start()
	c.Stop()

	sum := c.Summary()
	assert.Empty(t, sum.Pairs)
	assert.Equal(t, ClarifierNoDetails, sum.Note)
	assert.Equal(t, []string{ClarifierNoDetails, ClarifierStoppedNote}, c.SummaryLines())
}

func TestClarifierIsFrozenOnceComplete(t *testing.T) {
	c := NewClarifier([]string{"Only question?"})
	c.Start()
	c.Answer("yes")
	assert.True(t, c.State().Complete)

	assert.False(t, c.Answer("again"))
	assert.False(t, c.Stop())
	assert.Equal(t, []string{"yes"}, c.State().Answers)
	assert.False(t, c.State().Stopped)
}

func TestClarifierInactive(t *testing.T) {
	c := NewClarifier(nil)
	assert.False(t, c.Answer("something"))
	assert.False(t, c.Stop())
	_, ok := c.CurrentQuestion()
	assert.False(t, ok)
	assert.Empty(t, c.Progress())
}

func TestClarifierRestartClearsAnswers(t *testing.T) {
	c := NewClarifier(nil)
	c.Start()
	c.Answer("first")
	c.Stop()

	c.Restart()
	st := c.State()
	assert.True(t, st.Active)
	assert.False(t, st.Complete)
	assert.False(t, st.Stopped)
	assert.Empty(t, st.Answers)
	q, ok := c.CurrentQuestion()
	assert.True(t, ok)
	assert.Equal(t, models.DefaultClarifierQuestions[0], q)
}
