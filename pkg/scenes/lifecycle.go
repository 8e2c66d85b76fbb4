package scenes

import (
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/config"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/dialogue"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/timing"
)

var pauseDim = color.RGBA{A: uint8(math.Round(config.PauseDimAlpha * 255))}

// Content 场景内容的能力集合
// 生命周期的簿记（只初始化一次、暂停状态、模态弹窗、销毁）由 Lifecycle 负责
type Content interface {
	// OnSetup 场景第一次被呈现时调用，只调用一次
	OnSetup(l *Lifecycle)
	// OnInputAt 主输入（没有模态弹窗、没有暂停时才会收到）
	OnInputAt(x, y int)
	// Update 场景时钟运行时每帧调用
	Update(dt float64)
	// Draw 绘制场景内容（对话框和弹窗由 Lifecycle 绘制在上层）
	Draw(screen *ebiten.Image)
}

// PauseHooks 可选：暂停/恢复时的额外处理
type PauseHooks interface {
	OnPauseExtra()
	OnResumeExtra()
}

// TeardownHook 可选：场景销毁时的额外处理
type TeardownHook interface {
	OnTeardown()
}

// Restarter 重建当前场景（导航器）
type Restarter interface {
	Restart() error
}

// RestartFunc 函数形式的 Restarter
type RestartFunc func() error

// Restart 调用函数本身
func (f RestartFunc) Restart() error {
	return f()
}

// Lifecycle 场景生命周期驱动
//
// 实现 game.Scene / Presentable / Teardowner / InputReceiver / Pausable / Restartable。
//
// 不变量：
//   - OnSetup 每个实例最多执行一次
//   - Pause/Resume 幂等
//   - 模态弹窗最多一层，显示时抢占主输入
//   - Teardown 之后不再触发任何延时任务，Update 不再生效
type Lifecycle struct {
	name      string
	content   Content
	restarter Restarter

	scheduler *timing.Scheduler
	dialogue  *dialogue.Engine
	box       *dialogue.Box
	modal     *Modal

	initialized bool
	paused      bool
	disposed    bool

	resumeDelay float64 // 恢复后时钟重新开始前剩余的秒数
	clock       float64 // 场景时钟（暂停时冻结）

	// 暂停模糊用的离屏图像
	canvas *ebiten.Image
	small  *ebiten.Image
}

// NewLifecycle 创建场景
//
// 参数：
//   - name: 场景名（日志用）
//   - content: 场景内容
//   - restarter: Restart 时调用，可为 nil
func NewLifecycle(name string, content Content, restarter Restarter) *Lifecycle {
	scheduler := timing.NewScheduler()
	engine := dialogue.NewEngine(scheduler)
	engine.SetFadeDuration(config.DialogueFadeDuration)

	return &Lifecycle{
		name:      name,
		content:   content,
		restarter: restarter,
		scheduler: scheduler,
		dialogue:  engine,
		box:       dialogue.NewBox(config.DialogueBoxRect()),
	}
}

// Name 返回场景名
func (l *Lifecycle) Name() string {
	return l.name
}

// Content 返回场景内容
func (l *Lifecycle) Content() Content {
	return l.content
}

// Dialogue 返回场景的对话引擎
func (l *Lifecycle) Dialogue() *dialogue.Engine {
	return l.dialogue
}

// Scheduler 返回场景的调度器（场景时钟）
func (l *Lifecycle) Scheduler() *timing.Scheduler {
	return l.scheduler
}

// IsPaused 是否暂停
func (l *Lifecycle) IsPaused() bool {
	return l.paused
}

// IsInitialized OnSetup 是否已执行
func (l *Lifecycle) IsInitialized() bool {
	return l.initialized
}

// IsDisposed 是否已销毁
func (l *Lifecycle) IsDisposed() bool {
	return l.disposed
}

// ModalShown 是否正在显示模态弹窗
func (l *Lifecycle) ModalShown() bool {
	return l.modal != nil
}

// Modal 返回当前弹窗，没有时为 nil
func (l *Lifecycle) Modal() *Modal {
	return l.modal
}

// Clock 返回场景时钟（秒）
func (l *Lifecycle) Clock() float64 {
	return l.clock
}

// OnPresented 宿主呈现场景时调用，第一次调用执行 OnSetup
func (l *Lifecycle) OnPresented() {
	if l.initialized || l.disposed {
		return
	}
	l.initialized = true
	log.Printf("[Scene] %s setup", l.name)
	if l.content != nil {
		l.content.OnSetup(l)
	}
}

// Pause 冻结场景时钟并模糊画面，重复调用无效
func (l *Lifecycle) Pause() {
	if l.paused || l.disposed {
		return
	}
	l.paused = true
	l.resumeDelay = 0
	log.Printf("[Scene] %s paused", l.name)
	if hooks, ok := l.content.(PauseHooks); ok {
		hooks.OnPauseExtra()
	}
}

// Resume 取消模糊，ResumeDelay 秒后场景时钟和输入重新开始，重复调用无效
func (l *Lifecycle) Resume() {
	if !l.paused || l.disposed {
		return
	}
	l.paused = false
	l.resumeDelay = config.ResumeDelay
	log.Printf("[Scene] %s resumed", l.name)
	if hooks, ok := l.content.(PauseHooks); ok {
		hooks.OnResumeExtra()
	}
}

// Restart 用同样的配置重建场景并替换当前实例
func (l *Lifecycle) Restart() {
	if l.restarter == nil {
		log.Printf("[Scene] %s has no restarter, Restart ignored", l.name)
		return
	}
	if err := l.restarter.Restart(); err != nil {
		log.Printf("[Scene] Error: restart %s: %v", l.name, err)
	}
}

// HandlePrimaryInputAt 唯一的主输入入口
//
// 暂停时以及恢复后的 ResumeDelay 内忽略（此时场景时钟还没走）；
// 有模态弹窗时第一次输入关闭弹窗并触发它的关闭回调，不会传给场景内容。
func (l *Lifecycle) HandlePrimaryInputAt(x, y int) {
	if l.disposed || l.paused || l.resumeDelay > 0 {
		return
	}
	if l.modal != nil {
		l.dismissModal()
		return
	}
	if l.content != nil {
		l.content.OnInputAt(x, y)
	}
}

// ShowModal 显示模态弹窗，关闭时调用 onDismiss（最多一次）
// 已有弹窗时拒绝并返回 false
func (l *Lifecycle) ShowModal(title, body string, onDismiss func()) bool {
	if l.disposed {
		return false
	}
	if l.modal != nil {
		log.Printf("[Scene] Warning: %s modal %q rejected, %q is still open", l.name, title, l.modal.Title)
		return false
	}
	l.modal = NewModal(title, body, onDismiss)
	return true
}

func (l *Lifecycle) dismissModal() {
	m := l.modal
	l.modal = nil
	m.fire()
}

// Teardown 取消场景上所有延时任务并标记为已销毁
func (l *Lifecycle) Teardown() {
	if l.disposed {
		return
	}
	l.disposed = true
	l.dialogue.Hide()
	l.scheduler.Close()
	l.modal = nil
	if hook, ok := l.content.(TeardownHook); ok {
		hook.OnTeardown()
	}
	if l.canvas != nil {
		l.canvas.Deallocate()
		l.small.Deallocate()
		l.canvas, l.small = nil, nil
	}
	log.Printf("[Scene] %s torn down", l.name)
}

// Update 推进场景时钟
func (l *Lifecycle) Update(dt float64) {
	if l.disposed || l.paused {
		return
	}
	if l.resumeDelay > 0 {
		l.resumeDelay -= dt
		return
	}

	l.clock += dt
	l.scheduler.Update(dt)
	if l.disposed {
		// 延时任务里触发了场景切换并立即销毁
		return
	}
	l.dialogue.Update(dt)
	l.box.Update(dt)
	if l.content != nil {
		l.content.Update(dt)
	}
}

// Draw 绘制场景；暂停时先画到离屏图像再模糊、变暗
func (l *Lifecycle) Draw(screen *ebiten.Image) {
	if !l.paused {
		l.drawLayers(screen)
		return
	}

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	l.ensureBlurTargets(w, h)

	l.canvas.Clear()
	l.drawLayers(l.canvas)

	// 缩小再用线性过滤放大，得到模糊效果
	f := float64(config.PauseBlurFactor)
	l.small.Clear()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(1/f, 1/f)
	l.small.DrawImage(l.canvas, op)

	op = &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(f, f)
	screen.DrawImage(l.small, op)

	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), pauseDim, false)
}

func (l *Lifecycle) drawLayers(screen *ebiten.Image) {
	if l.content != nil {
		l.content.Draw(screen)
	}
	l.box.Draw(screen, l.dialogue)
	if l.modal != nil {
		l.modal.Draw(screen)
	}
}

func (l *Lifecycle) ensureBlurTargets(w, h int) {
	if l.canvas != nil {
		b := l.canvas.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		l.canvas.Deallocate()
		l.small.Deallocate()
	}
	sw := (w + config.PauseBlurFactor - 1) / config.PauseBlurFactor
	sh := (h + config.PauseBlurFactor - 1) / config.PauseBlurFactor
	l.canvas = ebiten.NewImage(w, h)
	l.small = ebiten.NewImage(sw, sh)
}
