package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/timing"
)

const interval = 0.05

func newTestEngine() (*Engine, *timing.Scheduler) {
	sched := timing.NewScheduler()
	return NewEngine(sched), sched
}

func TestEngine_RobotSkipThenContinue(t *testing.T) {
	e, _ := newTestEngine()
	fired := 0

	e.ShowLine("Robot", "Hi", interval)
	e.Arm(func() { fired++ })
	require.Equal(t, StateRevealing, e.State())
	assert.Equal(t, "", e.VisibleText())

	e.HandleAcknowledge()
	assert.Equal(t, "Hi", e.VisibleText(), "first tap shows the full line")
	assert.Equal(t, StateAwaitingAcknowledge, e.State())
	assert.True(t, e.IsContinueShown())
	assert.Equal(t, 0, fired, "skipping must not fire the continuation")

	e.HandleAcknowledge()
	assert.Equal(t, 1, fired)

	e.HandleAcknowledge()
	assert.Equal(t, 1, fired, "continuation fires at most once")
}

func TestEngine_TypewriterReveal(t *testing.T) {
	e, sched := newTestEngine()
	e.ShowLine("Tori", "abc", interval)

	sched.Update(interval)
	assert.Equal(t, "a", e.VisibleText())
	sched.Update(interval)
	assert.Equal(t, "ab", e.VisibleText())
	sched.Update(interval)
	assert.Equal(t, "abc", e.VisibleText())
	assert.Equal(t, StateAwaitingAcknowledge, e.State())
	assert.Equal(t, 0, sched.PendingFor(e), "reveal timer stops after the last rune")
}

func TestEngine_CursorMonotonic(t *testing.T) {
	e, sched := newTestEngine()
	e.ShowLine("Tori", "héllo wörld", interval)

	last := 0
	for i := 0; i < 20; i++ {
		sched.Update(interval * 0.7)
		revealed, total := e.Progress()
		assert.GreaterOrEqual(t, revealed, last)
		assert.LessOrEqual(t, revealed, total)
		last = revealed
	}
	assert.Equal(t, "héllo wörld", e.VisibleText())
}

// 任意时刻的第一次“显示中点击”之后都显示完整文本
func TestEngine_AcknowledgeCountBounds(t *testing.T) {
	const text = "Objects!"
	total := len([]rune(text))

	for ticks := 0; ticks <= total+1; ticks++ {
		e, sched := newTestEngine()
		e.ShowLine("Byte", text, interval)
		for i := 0; i < ticks; i++ {
			sched.Update(interval)
		}

		taps := 0
		for e.State() != StateAwaitingAcknowledge || taps == 0 {
			wasRevealing := e.State() == StateRevealing
			e.HandleAcknowledge()
			taps++
			if wasRevealing {
				assert.Equal(t, text, e.VisibleText())
			}
			if taps > total+1 {
				break
			}
		}
		assert.GreaterOrEqual(t, taps, 1)
		assert.LessOrEqual(t, taps, total+1)
		assert.Equal(t, text, e.VisibleText())
	}
}

func TestEngine_DoubleArmOnlySecondFires(t *testing.T) {
	e, _ := newTestEngine()
	first, second := 0, 0

	e.ShowLine("Robot", "Hi", 0)
	e.Arm(func() { first++ })
	e.Arm(func() { second++ })

	e.HandleAcknowledge()
	e.HandleAcknowledge()

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestEngine_EmptyTextCompletesImmediately(t *testing.T) {
	e, sched := newTestEngine()
	e.ShowLine("Narrator", "", interval)

	assert.Equal(t, StateAwaitingAcknowledge, e.State())
	assert.Equal(t, "", e.VisibleText())
	assert.Equal(t, 0, sched.Pending())
}

func TestEngine_HideCancelsReveal(t *testing.T) {
	e, sched := newTestEngine()
	e.ShowLine("Tori", "long line", interval)
	require.Equal(t, 1, sched.PendingFor(e))

	e.Hide()
	assert.Equal(t, StateHidden, e.State())
	sched.Update(1)
	assert.Equal(t, 0, sched.Pending())
	assert.Equal(t, "", e.VisibleText(), "hidden engine does not keep revealing")

	fired := false
	e.Arm(func() { fired = true })
	e.HandleAcknowledge()
	assert.False(t, fired, "acknowledge while hidden is a no-op")
}

func TestEngine_ShowLineRestartsTimer(t *testing.T) {
	e, sched := newTestEngine()
	e.ShowLine("A", "first line", interval)
	sched.Update(interval)
	e.ShowLine("B", "second", interval)

	assert.Equal(t, 1, sched.PendingFor(e), "only one reveal timer at a time")
	assert.Equal(t, "", e.VisibleText())
	assert.Equal(t, "B", e.Line().Speaker)
}

func TestEngine_Fade(t *testing.T) {
	e, _ := newTestEngine()
	e.SetFadeDuration(0.2)

	e.ShowLine("A", "x", 0)
	assert.False(t, e.IsVisible())
	e.Update(0.1)
	assert.InDelta(t, 0.5, e.Alpha(), 1e-9)
	e.Update(0.5)
	assert.Equal(t, 1.0, e.Alpha())

	e.Hide()
	e.Update(0.2)
	assert.Equal(t, 0.0, e.Alpha())
	assert.False(t, e.IsVisible())
}

func TestEngine_Disarm(t *testing.T) {
	e, _ := newTestEngine()
	assert.False(t, e.Disarm())
	e.Arm(func() {})
	assert.True(t, e.IsArmed())
	assert.True(t, e.Disarm())
	assert.False(t, e.IsArmed())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Hidden", StateHidden.String())
	assert.Equal(t, "Revealing", StateRevealing.String())
	assert.Equal(t, "AwaitingAcknowledge", StateAwaitingAcknowledge.String())
	assert.Equal(t, "Unknown", State(42).String())
}

func TestRevealLines(t *testing.T) {
	lines := []string{"hello", "world"}
	assert.Empty(t, revealLines(lines, 0))
	assert.Equal(t, []string{"hel"}, revealLines(lines, 3))
	assert.Equal(t, []string{"hello"}, revealLines(lines, 5))
	assert.Equal(t, []string{"hello", "wo"}, revealLines(lines, 7))
	assert.Equal(t, lines, revealLines(lines, 100))
}
