package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene contracts for testing.
type MockScene struct {
	updateCalls    int
	drawCalls      int
	presentedCalls int
	teardownCalls  int
	inputs         [][2]int
	deltaTime      float64
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalls++
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalls++
}

func (m *MockScene) OnPresented() {
	m.presentedCalls++
}

func (m *MockScene) Teardown() {
	m.teardownCalls++
}

func (m *MockScene) HandlePrimaryInputAt(x, y int) {
	m.inputs = append(m.inputs, [2]int{x, y})
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager(960, 540)
	if sm.Current() != nil {
		t.Error("Expected no current scene initially")
	}
	if w, h := sm.ScreenSize(); w != 960 || h != 540 {
		t.Errorf("ScreenSize: got %dx%d, want 960x540", w, h)
	}
	if sm.IsTransitioning() {
		t.Error("Expected no transition initially")
	}
}

// TestSceneManagerPresentWithoutFade 无淡化时立即替换并销毁旧场景
func TestSceneManagerPresentWithoutFade(t *testing.T) {
	sm := NewSceneManager(960, 540)
	first := &MockScene{}
	second := &MockScene{}

	sm.Present(first, 0)
	if sm.Current() != first || first.presentedCalls != 1 {
		t.Fatalf("first scene not presented: current=%v presented=%d", sm.Current(), first.presentedCalls)
	}

	sm.Present(second, 0)
	if sm.Current() != second {
		t.Error("second scene should be current")
	}
	if first.teardownCalls != 1 {
		t.Errorf("outgoing scene teardown: got %d, want 1", first.teardownCalls)
	}
	if sm.IsTransitioning() {
		t.Error("no fade requested, expected no transition")
	}
}

// TestSceneManagerCrossFade 淡化期间旧场景保留，结束后销毁
func TestSceneManagerCrossFade(t *testing.T) {
	sm := NewSceneManager(960, 540)
	first := &MockScene{}
	second := &MockScene{}

	sm.Present(first, 0.5)
	if sm.IsTransitioning() {
		t.Error("first presentation has nothing to fade from")
	}

	sm.Present(second, 0.5)
	if !sm.IsTransitioning() {
		t.Fatal("expected cross-fade to start")
	}
	if first.teardownCalls != 0 {
		t.Error("outgoing scene must stay alive during the fade")
	}

	sm.Update(0.25)
	if first.updateCalls != 0 {
		t.Error("outgoing scene must not be updated during the fade")
	}
	if second.updateCalls != 1 {
		t.Errorf("incoming scene updates: got %d, want 1", second.updateCalls)
	}
	p := sm.TransitionProgress()
	if p <= 0 || p >= 1 {
		t.Errorf("TransitionProgress mid-fade: got %v", p)
	}

	screen := ebiten.NewImage(960, 540)
	sm.Draw(screen)
	if first.drawCalls != 1 || second.drawCalls != 1 {
		t.Errorf("both scenes should be drawn during the fade: %d %d", first.drawCalls, second.drawCalls)
	}

	sm.Update(0.25)
	if sm.IsTransitioning() {
		t.Error("fade should be finished")
	}
	if first.teardownCalls != 1 {
		t.Errorf("outgoing teardown: got %d, want 1", first.teardownCalls)
	}
	if sm.TransitionProgress() != 1 {
		t.Error("TransitionProgress should be 1 when idle")
	}
}

// TestSceneManagerPresentDuringFade 淡化中再次切换时立即销毁正在淡出的场景
func TestSceneManagerPresentDuringFade(t *testing.T) {
	sm := NewSceneManager(960, 540)
	a, b, c := &MockScene{}, &MockScene{}, &MockScene{}

	sm.Present(a, 0)
	sm.Present(b, 0.5)
	sm.Present(c, 0.5)

	if a.teardownCalls != 1 {
		t.Errorf("scene a teardown: got %d, want 1", a.teardownCalls)
	}
	if b.teardownCalls != 0 {
		t.Error("scene b is now fading out and must stay alive")
	}
	if sm.Current() != c {
		t.Error("scene c should be current")
	}
}

// TestSceneManagerPresentSameScene 重复呈现同一个场景只转发 OnPresented
func TestSceneManagerPresentSameScene(t *testing.T) {
	sm := NewSceneManager(960, 540)
	a := &MockScene{}
	sm.Present(a, 0)
	sm.Present(a, 0.5)

	if a.presentedCalls != 2 {
		t.Errorf("OnPresented calls: got %d, want 2", a.presentedCalls)
	}
	if a.teardownCalls != 0 || sm.IsTransitioning() {
		t.Error("re-presenting the current scene must not tear it down")
	}
}

// TestSceneManagerInput 输入转发到当前场景，淡化期间忽略
func TestSceneManagerInput(t *testing.T) {
	sm := NewSceneManager(960, 540)
	if sm.HandlePrimaryInput(1, 1) {
		t.Error("no scene: input should not be handled")
	}

	a, b := &MockScene{}, &MockScene{}
	sm.Present(a, 0)
	if !sm.HandlePrimaryInput(10, 20) {
		t.Error("expected input to be forwarded")
	}
	if len(a.inputs) != 1 || a.inputs[0] != [2]int{10, 20} {
		t.Errorf("unexpected inputs %v", a.inputs)
	}

	sm.Present(b, 0.5)
	if sm.HandlePrimaryInput(5, 5) {
		t.Error("input during a cross-fade should be ignored")
	}
	if len(b.inputs) != 0 {
		t.Error("incoming scene should not receive input during the fade")
	}
}

// TestSceneManagerNilScene verifies nil scenes are rejected and empty managers are safe.
func TestSceneManagerNilScene(t *testing.T) {
	sm := NewSceneManager(960, 540)
	sm.Present(nil, 0.5)
	if sm.Current() != nil {
		t.Error("nil scene should be ignored")
	}
	sm.Update(0.016)
	sm.Draw(ebiten.NewImage(10, 10))
}

// chainScene 在 OnPresented 中立即呈现下一个场景（剧本在 setup 中直接结束）
type chainScene struct {
	MockScene
	sm   *SceneManager
	next Scene
	fade float64
}

func (c *chainScene) OnPresented() {
	c.MockScene.OnPresented()
	if c.next != nil {
		c.sm.Present(c.next, c.fade)
	}
}

// TestSceneManagerPresentFromOnPresented 新场景在 OnPresented 中切换时，最后呈现的场景为当前场景
func TestSceneManagerPresentFromOnPresented(t *testing.T) {
	for _, fade := range []float64{0, 0.5} {
		sm := NewSceneManager(960, 540)
		first := &MockScene{}
		last := &MockScene{}
		middle := &chainScene{sm: sm, next: last, fade: fade}

		sm.Present(first, 0)
		sm.Present(middle, fade)

		if sm.Current() != last {
			t.Fatalf("fade=%v: expected the chained scene to be current", fade)
		}
		if last.presentedCalls != 1 || last.teardownCalls != 0 {
			t.Errorf("fade=%v: chained scene presented=%d teardown=%d, want 1 and 0",
				fade, last.presentedCalls, last.teardownCalls)
		}
		if first.teardownCalls != 1 {
			t.Errorf("fade=%v: first scene teardown: got %d, want 1", fade, first.teardownCalls)
		}

		sm.Update(fade + 0.1)
		if middle.teardownCalls != 1 {
			t.Errorf("fade=%v: pass-through scene teardown: got %d, want 1", fade, middle.teardownCalls)
		}
		if last.teardownCalls != 0 {
			t.Errorf("fade=%v: current scene must not be torn down", fade)
		}
	}
}
