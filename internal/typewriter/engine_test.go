package typewriter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robco-termlink/wastelandhub/internal/model"
)

// advance delivers n ticks for the current session, the way the Bubble Tea
// runtime would after each delay elapses, and returns the rendered texts.
func advance(t *testing.T, e *Engine, n int) []string {
	t.Helper()
	var texts []string
	for i := 0; i < n; i++ {
		res := e.Tick(TickMsg{Session: e.Current().ID()})
		for _, d := range res.Directives {
			require.Equal(t, model.DirectiveReplaceText, d.Kind)
			texts = append(texts, d.Text)
		}
	}
	return texts
}

func TestStartRevealsFullText(t *testing.T) {
	for _, text := range []string{"a", "Stock is red.", "Ünïcödé ✓ logs", "line one\nline two"} {
		e := New()
		res, err := e.Start(text, 20)
		require.NoError(t, err)
		require.Equal(t, []model.Directive{model.ReplaceText("")}, res.Directives)
		require.NotNil(t, res.Cmd)

		n := len([]rune(text))
		texts := advance(t, e, n)
		require.Len(t, texts, n)
		for i, got := range texts {
			require.Equal(t, string([]rune(text)[:i+1]), got)
		}
		require.Equal(t, text, e.Visible())
		require.Equal(t, StatusCompleted, e.Status())

		require.Empty(t, advance(t, e, 3), "no ticks after completion")
	}
}

func TestScenarioCommLog(t *testing.T) {
	e := New()
	_, err := e.Start("Stock is red.", 20)
	require.NoError(t, err)
	require.Equal(t, 50*time.Millisecond, e.Current().Delay())

	advance(t, e, 10)
	require.Equal(t, "Stock is r", e.Visible())
	require.Equal(t, StatusRunning, e.Status())

	advance(t, e, 3)
	require.Equal(t, "Stock is red.", e.Visible())
	require.Equal(t, StatusCompleted, e.Status())
}

func TestLastTickEndsSession(t *testing.T) {
	e := New()
	_, err := e.Start("ab", 10)
	require.NoError(t, err)

	res := e.Tick(TickMsg{Session: e.Current().ID()})
	require.NotNil(t, res.Cmd)
	require.Empty(t, res.Ended)

	res = e.Tick(TickMsg{Session: e.Current().ID()})
	require.Nil(t, res.Cmd)
	require.Len(t, res.Ended, 1)
	require.Equal(t, model.OutcomeCompleted, res.Ended[0].Outcome)
	require.Equal(t, 2, res.Ended[0].Revealed)
}

func TestTickCmdCarriesSession(t *testing.T) {
	e := New()
	res, err := e.Start("xyz", 1000)
	require.NoError(t, err)
	msg := res.Cmd()
	require.Equal(t, TickMsg{Session: e.Current().ID()}, msg)
}

func TestEmptyTextCompletesImmediately(t *testing.T) {
	e := New()
	res, err := e.Start("", 20)
	require.NoError(t, err)
	require.Equal(t, []model.Directive{model.ReplaceText("")}, res.Directives)
	require.Nil(t, res.Cmd)
	require.Equal(t, StatusCompleted, e.Status())
	require.Equal(t, 0, e.Current().Revealed())
	require.Len(t, res.Ended, 1)
}

func TestStartRejectsNonPositiveRate(t *testing.T) {
	e := New()
	_, err := e.Start("text", 0)
	require.ErrorIs(t, err, ErrInvalidRate)
	_, err = e.Start("text", -5)
	require.ErrorIs(t, err, ErrInvalidRate)
	require.Nil(t, e.Current())
	require.Equal(t, StatusIdle, e.Status())
}

func TestSkipToEnd(t *testing.T) {
	e := New()
	_, err := e.Start("Reactor 2 showing instability.", 20)
	require.NoError(t, err)
	advance(t, e, 4)
	id := e.Current().ID()

	res := e.SkipToEnd()
	require.Equal(t, []model.Directive{model.ReplaceText("Reactor 2 showing instability.")}, res.Directives)
	require.Nil(t, res.Cmd)
	require.Equal(t, model.OutcomeSkipped, res.Ended[0].Outcome)
	require.Equal(t, StatusCompleted, e.Status())

	stale := e.Tick(TickMsg{Session: id})
	require.Empty(t, stale.Directives)
	require.Nil(t, stale.Cmd)

	again := e.SkipToEnd()
	require.Empty(t, again.Directives)
}

func TestStopIsIdempotent(t *testing.T) {
	e := New()
	_, err := e.Start("Lockdown protocols", 20)
	require.NoError(t, err)
	advance(t, e, 2)
	id := e.Current().ID()

	first := e.Stop()
	require.Len(t, first.Ended, 1)
	require.Equal(t, model.OutcomeCanceled, first.Ended[0].Outcome)
	require.Equal(t, StatusCanceled, e.Status())

	second := e.Stop()
	require.Empty(t, second.Directives)
	require.Empty(t, second.Ended)
	require.Equal(t, StatusCanceled, e.Status())
	require.Equal(t, "Lo", e.Visible())

	require.Empty(t, e.Tick(TickMsg{Session: id}).Directives)
	require.Empty(t, e.SkipToEnd().Directives)
}

func TestStopWithoutSession(t *testing.T) {
	e := New()
	require.Empty(t, e.Stop().Ended)
	require.Equal(t, StatusIdle, e.Status())
	require.Equal(t, "", e.Visible())
}

func TestRestartOverridesPreviousSession(t *testing.T) {
	e := New()
	_, err := e.Start("AAAAAAAA", 20)
	require.NoError(t, err)
	advance(t, e, 3)
	oldID := e.Current().ID()

	res, err := e.Start("BBBB", 40)
	require.NoError(t, err)
	require.Equal(t, []model.Directive{model.ReplaceText("")}, res.Directives)
	require.Len(t, res.Ended, 1)
	require.Equal(t, oldID, res.Ended[0].ID)
	require.Equal(t, model.OutcomeSuperseded, res.Ended[0].Outcome)
	require.Equal(t, 3, res.Ended[0].Revealed)
	require.NotEqual(t, oldID, e.Current().ID())
	require.Equal(t, 25*time.Millisecond, e.Current().Delay())

	for i := 0; i < 5; i++ {
		stale := e.Tick(TickMsg{Session: oldID})
		require.Empty(t, stale.Directives)
		require.Nil(t, stale.Cmd)
	}
	require.Equal(t, "", e.Visible())

	texts := advance(t, e, 4)
	require.Equal(t, []string{"B", "BB", "BBB", "BBBB"}, texts)
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "running", StatusRunning.String())
	require.Equal(t, "canceled", StatusCanceled.String())
}
