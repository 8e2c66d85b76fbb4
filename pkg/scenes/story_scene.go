package scenes

import (
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/config"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/dialogue"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/game"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/utils"
)

// Navigation 剧情场景结束时需要的导航操作（navigation.Navigator）
type Navigation interface {
	GoToNext() bool
	FinishStory()
	Restart() error
}

const (
	flashDuration = 0.35
	shakeDuration = 0.4
	shakeAmount   = 8.0
)

var (
	floorColor = color.RGBA{A: 60}
	titleColor = color.RGBA{R: 255, G: 255, B: 255, A: 220}
)

// StoryContent 由剧本驱动的场景内容
//
// 剧本步骤在 OnSetup 时转换为 dialogue.Runner 的步骤队列：
//   - text → ShowLine
//   - effect / definition / milestone → RunEffect
//   - transition → Transition（next → GoToNext，exam → FinishStory）
//
// 存档中已有的进度标签对应的 part 步骤会被跳过。
type StoryContent struct {
	script *config.SceneScript
	state  *game.GameState
	nav    Navigation

	life   *Lifecycle
	runner *dialogue.Runner

	skipped int // 因存档跳过的步骤数

	flash float64 // 剩余闪白时间
	shake float64 // 剩余抖动时间
}

// NewStoryScene 创建剧情场景
func NewStoryScene(script *config.SceneScript, state *game.GameState, nav Navigation) *Lifecycle {
	c := &StoryContent{
		script: script,
		state:  state,
		nav:    nav,
	}
	return NewLifecycle(script.ID, c, nav)
}

// Script 返回场景剧本
func (c *StoryContent) Script() *config.SceneScript {
	return c.script
}

// Runner 返回剧情驱动器（OnSetup 之前为 nil）
func (c *StoryContent) Runner() *dialogue.Runner {
	return c.runner
}

// Skipped 返回因存档跳过的步骤数
func (c *StoryContent) Skipped() int {
	return c.skipped
}

// OnSetup 构建步骤队列并开始播放
func (c *StoryContent) OnSetup(l *Lifecycle) {
	c.life = l

	interval := config.DefaultTypewriterInterval
	if c.state != nil {
		interval = c.state.Settings().TypewriterInterval()
	}
	c.runner = dialogue.NewRunner(l.Dialogue(), interval, c.onTransition)

	for _, st := range c.script.Steps {
		if st.Part != "" && c.state != nil && c.state.Checkpoints().HasMinigameTag(st.Part) {
			c.skipped++
			continue
		}
		c.runner.Enqueue(c.buildStep(st))
	}
	if c.skipped > 0 {
		log.Printf("[StoryScene] %s: skipped %d completed steps", c.script.ID, c.skipped)
	}

	c.runner.Start()
}

// buildStep 将一个剧本步骤转换为 Runner 步骤
func (c *StoryContent) buildStep(st config.StepConfig) dialogue.Step {
	switch st.Kind() {
	case "transition":
		return dialogue.Transition{Target: st.Transition}
	case "definition":
		return dialogue.RunEffect{Name: "definition:" + st.Definition, Run: c.definitionEffect(st.Definition)}
	case "milestone":
		return dialogue.RunEffect{Name: "milestone:" + st.Milestone, Run: c.milestoneEffect(st.Milestone)}
	case "effect":
		return dialogue.RunEffect{Name: st.Effect, Run: c.visualEffect(st.Effect)}
	default:
		return dialogue.ShowLine{Speaker: st.Speaker, Text: st.Text}
	}
}

func (c *StoryContent) definitionEffect(key string) func(done func()) {
	return func(done func()) {
		title, body := key, ""
		if c.state != nil {
			g := c.state.Glossary()
			title = g.Title(key)
			if def, ok := g.Definition(key); ok {
				body = def
			} else {
				log.Printf("[StoryScene] Warning: glossary has no entry for %s", key)
			}
		}
		c.life.Dialogue().Hide()
		if !c.life.ShowModal(title, body, done) {
			done()
		}
	}
}

func (c *StoryContent) milestoneEffect(tag string) func(done func()) {
	return func(done func()) {
		if c.state != nil {
			if err := c.state.Checkpoints().AddMinigameTag(tag); err != nil {
				log.Printf("[StoryScene] Warning: failed to save milestone %s: %v", tag, err)
			}
		}
		log.Printf("[StoryScene] %s: milestone %s reached", c.script.ID, tag)
		done()
	}
}

func (c *StoryContent) visualEffect(name string) func(done func()) {
	return func(done func()) {
		switch name {
		case config.EffectWait:
			c.life.Dialogue().Hide()
			c.life.Scheduler().After(c, config.StepDelay, done)
		case config.EffectFlash:
			c.flash = flashDuration
			done()
		case config.EffectShake:
			c.shake = shakeDuration
			c.life.Scheduler().After(c, shakeDuration, done)
		default:
			log.Printf("[StoryScene] Warning: unknown effect %q", name)
			done()
		}
	}
}

// onTransition 剧情结束
func (c *StoryContent) onTransition(target string) {
	switch target {
	case config.TransitionExam:
		c.nav.FinishStory()
	default:
		c.nav.GoToNext()
	}
}

// OnInputAt 点击推进对话
func (c *StoryContent) OnInputAt(x, y int) {
	if c.runner == nil || c.runner.Done() {
		return
	}
	c.life.Dialogue().HandleAcknowledge()
}

// Update 衰减闪白和抖动
func (c *StoryContent) Update(dt float64) {
	if c.flash > 0 {
		c.flash = math.Max(0, c.flash-dt)
	}
	if c.shake > 0 {
		c.shake = math.Max(0, c.shake-dt)
	}
}

// Draw 绘制背景、地板和标题
func (c *StoryContent) Draw(screen *ebiten.Image) {
	screen.Fill(c.script.Color)

	b := screen.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())

	var dx float32
	if c.shake > 0 {
		dx = float32(math.Sin(c.shake*60) * shakeAmount)
	}

	vector.DrawFilledRect(screen, dx, h*0.62, w, h*0.38, floorColor, false)

	if c.script.Title != "" {
		drawTitle(screen, c.script.Title, float64(dx)+24, 20, titleColor)
	}

	if c.flash > 0 {
		a := uint8(255 * c.flash / flashDuration)
		vector.DrawFilledRect(screen, 0, 0, w, h, color.RGBA{R: a, G: a, B: a, A: a}, false)
	}
}

// drawTitle 绘制场景标题
func drawTitle(screen *ebiten.Image, title string, x, y float64, clr color.Color) {
	if face := utils.BoldFace(28); face != nil {
		drawString(screen, title, face, x, y, clr)
	}
}
