package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/utils"
)

// SceneManager 宿主呈现层
//
// 只负责“哪个场景可见”以及两个场景之间的交叉淡化，
// 不决定切换到哪个场景（由导航器决定）。
//
// 切换流程：
//  1. Present 对新场景调用 OnPresented
//  2. 旧场景保留到淡化结束（只绘制，不再 Update）
//  3. 淡化结束后对旧场景调用 Teardown
type SceneManager struct {
	width, height int

	currentScene  Scene
	outgoingScene Scene

	fadeDuration float64
	fadeElapsed  float64

	// 交叉淡化用的离屏图像，首次需要时创建
	fromImage *ebiten.Image
	toImage   *ebiten.Image
}

// NewSceneManager 创建宿主，width/height 为逻辑画面尺寸
// 初始没有场景，用 Present 设置第一个场景
func NewSceneManager(width, height int) *SceneManager {
	return &SceneManager{
		width:  width,
		height: height,
	}
}

// Present 呈现场景
// fade > 0 时与当前场景交叉淡化 fade 秒，否则立即替换
//
// 先完成替换再调用新场景的 OnPresented：场景在 setup 中直接结束时，
// 导航器会重入 Present 呈现下一个场景，此时宿主状态必须已经指向本场景。
func (sm *SceneManager) Present(scene Scene, fade float64) {
	if scene == nil {
		log.Printf("[SceneManager] Error: Present called with a nil scene")
		return
	}
	if scene == sm.currentScene {
		presented(scene)
		return
	}

	// 上一次淡化还没结束：直接结束它
	sm.finishTransition()

	previous := sm.currentScene
	sm.currentScene = scene

	if previous == nil || fade <= 0 {
		teardown(previous)
	} else {
		sm.outgoingScene = previous
		sm.fadeDuration = fade
		sm.fadeElapsed = 0
	}

	presented(scene)
}

// finishTransition 结束进行中的淡化并销毁旧场景
func (sm *SceneManager) finishTransition() {
	if sm.outgoingScene == nil {
		return
	}
	teardown(sm.outgoingScene)
	sm.outgoingScene = nil
	sm.fadeElapsed = 0
	sm.fadeDuration = 0
}

func presented(scene Scene) {
	if p, ok := scene.(Presentable); ok {
		p.OnPresented()
	}
}

func teardown(scene Scene) {
	if t, ok := scene.(Teardowner); ok {
		t.Teardown()
	}
}

// Current 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) Current() Scene {
	return sm.currentScene
}

// IsTransitioning 是否正在交叉淡化
func (sm *SceneManager) IsTransitioning() bool {
	return sm.outgoingScene != nil
}

// TransitionProgress 返回淡化进度（0~1，已缓动），没有淡化时为 1
func (sm *SceneManager) TransitionProgress() float64 {
	if sm.outgoingScene == nil {
		return 1
	}
	return utils.EaseInOutCubic(utils.Progress(sm.fadeElapsed, sm.fadeDuration))
}

// ScreenSize 返回逻辑画面尺寸
func (sm *SceneManager) ScreenSize() (int, int) {
	return sm.width, sm.height
}

// HandlePrimaryInput 将点击转发给当前场景
// 淡化过程中忽略输入，返回是否已转发
func (sm *SceneManager) HandlePrimaryInput(x, y int) bool {
	if sm.currentScene == nil || sm.IsTransitioning() {
		return false
	}
	r, ok := sm.currentScene.(InputReceiver)
	if !ok {
		return false
	}
	r.HandlePrimaryInputAt(x, y)
	return true
}

// Update updates the currently active scene and advances the cross-fade.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
	if sm.outgoingScene != nil {
		sm.fadeElapsed += deltaTime
		if sm.fadeElapsed >= sm.fadeDuration {
			sm.finishTransition()
		}
	}
}

// Draw renders the active scene, blending in the outgoing one during a cross-fade.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene == nil {
		return
	}
	if sm.outgoingScene == nil {
		sm.currentScene.Draw(screen)
		return
	}

	sm.ensureOffscreen(screen.Bounds().Dx(), screen.Bounds().Dy())
	sm.fromImage.Clear()
	sm.toImage.Clear()
	sm.outgoingScene.Draw(sm.fromImage)
	sm.currentScene.Draw(sm.toImage)

	t := float32(sm.TransitionProgress())

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(1 - t)
	screen.DrawImage(sm.fromImage, op)

	op = &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(t)
	screen.DrawImage(sm.toImage, op)
}

func (sm *SceneManager) ensureOffscreen(w, h int) {
	if sm.fromImage != nil {
		b := sm.fromImage.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		sm.fromImage.Deallocate()
		sm.toImage.Deallocate()
	}
	sm.fromImage = ebiten.NewImage(w, h)
	sm.toImage = ebiten.NewImage(w, h)
}
