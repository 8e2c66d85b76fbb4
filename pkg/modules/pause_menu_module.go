package modules

import (
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/config"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/game"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/utils"
)

var (
	menuOverlayColor  = color.RGBA{A: 110}
	menuButtonFill    = color.RGBA{R: 250, G: 244, B: 230, A: 255}
	menuButtonBorder  = color.RGBA{R: 92, G: 64, B: 140, A: 255}
	menuButtonShadow  = color.RGBA{A: 90}
	menuButtonText    = color.RGBA{R: 48, G: 36, B: 64, A: 255}
	menuTitleColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	pauseButtonFill   = color.RGBA{R: 0, G: 0, B: 0, A: 120}
	pauseButtonSymbol = color.RGBA{R: 255, G: 255, B: 255, A: 230}
)

// PauseMenuModule 暂停菜单模块
// 封装暂停菜单相关的功能：
//   - 右上角暂停按钮的绘制和点击
//   - 菜单按钮（继续、重新开始本场景、重新开始故事）的点击
//   - 暂停状态的控制（GameState.IsPaused）
//
// 菜单本身不暂停场景，场景的 Pause/Resume 通过回调交给协调者。
type PauseMenuModule struct {
	// 外部依赖
	gameState *game.GameState

	// 回调函数（由协调者提供）
	onPause        func() // 菜单打开：暂停当前场景
	onResume       func() // 菜单关闭：恢复当前场景
	onRestartScene func() // "Restart Scene"按钮回调
	onRestartStory func() // "Restart Story"按钮回调

	buttons []menuButton

	// 内部状态（用于检测状态变化）
	wasActive bool

	// 渲染缓存
	buttonPanel *ebiten.Image
	titleFace   *text.GoTextFace
	buttonFace  *text.GoTextFace
}

// menuButton 一个菜单按钮
type menuButton struct {
	label  string
	action func()
}

// PauseMenuCallbacks 暂停菜单回调函数集合
type PauseMenuCallbacks struct {
	OnPause        func() // 菜单打开时调用
	OnResume       func() // 菜单关闭时调用（包括点击重新开始）
	OnRestartScene func() // "Restart Scene"按钮回调
	OnRestartStory func() // "Restart Story"按钮回调
}

// NewPauseMenuModule 创建暂停菜单模块
//
// 参数:
//   - gs: GameState 实例（暂停状态的唯一来源）
//   - callbacks: 暂停菜单回调函数集合，未设置的回调被忽略
func NewPauseMenuModule(gs *game.GameState, callbacks PauseMenuCallbacks) *PauseMenuModule {
	m := &PauseMenuModule{
		gameState:      gs,
		onPause:        callbacks.OnPause,
		onResume:       callbacks.OnResume,
		onRestartScene: callbacks.OnRestartScene,
		onRestartStory: callbacks.OnRestartStory,
	}

	m.buttons = []menuButton{
		{label: "Continue", action: func() {
			log.Printf("[PauseMenuModule] Continue button clicked!")
			m.Hide()
		}},
		{label: "Restart Scene", action: func() {
			log.Printf("[PauseMenuModule] Restart scene button clicked!")
			m.Hide()
			if m.onRestartScene != nil {
				m.onRestartScene()
			}
		}},
		{label: "Restart Story", action: func() {
			log.Printf("[PauseMenuModule] Restart story button clicked!")
			m.Hide()
			if m.onRestartStory != nil {
				m.onRestartStory()
			}
		}},
	}

	log.Printf("[PauseMenuModule] Initialized with %d buttons", len(m.buttons))
	return m
}

// ButtonCount 返回菜单按钮数量
func (m *PauseMenuModule) ButtonCount() int {
	return len(m.buttons)
}

// ButtonLabel 返回第 i 个按钮的文字
func (m *PauseMenuModule) ButtonLabel(i int) string {
	if i < 0 || i >= len(m.buttons) {
		return ""
	}
	return m.buttons[i].label
}

// ButtonRect 返回第 i 个按钮的区域
func (m *PauseMenuModule) ButtonRect(i int) image.Rectangle {
	return config.MenuButtonRect(i, len(m.buttons))
}

// Update 同步外部对 GameState.IsPaused 的修改
// 状态变化时触发 onPause/onResume，保证场景暂停状态与菜单一致
func (m *PauseMenuModule) Update(deltaTime float64) {
	isPaused := m.gameState.IsPaused
	if isPaused == m.wasActive {
		return
	}
	m.wasActive = isPaused
	if isPaused {
		if m.onPause != nil {
			m.onPause()
		}
		log.Printf("[PauseMenuModule] Paused (triggered by external state change)")
	} else {
		if m.onResume != nil {
			m.onResume()
		}
		log.Printf("[PauseMenuModule] Resumed (triggered by external state change)")
	}
}

// Show 显示暂停菜单，已显示时无操作
func (m *PauseMenuModule) Show() {
	if m.gameState.IsPaused && m.wasActive {
		return
	}
	m.gameState.SetPaused(true)
	m.wasActive = true
	if m.onPause != nil {
		m.onPause()
	}
	log.Printf("[PauseMenuModule] Pause menu shown")
}

// Hide 隐藏暂停菜单，未显示时无操作
func (m *PauseMenuModule) Hide() {
	if !m.gameState.IsPaused && !m.wasActive {
		return
	}
	m.gameState.SetPaused(false)
	m.wasActive = false
	if m.onResume != nil {
		m.onResume()
	}
	log.Printf("[PauseMenuModule] Pause menu hidden")
}

// Toggle 切换暂停菜单（Esc / P 键）
func (m *PauseMenuModule) Toggle() {
	if m.gameState.IsPaused {
		m.Hide()
	} else {
		m.Show()
	}
}

// IsActive 暂停菜单是否打开
func (m *PauseMenuModule) IsActive() bool {
	return m.gameState.IsPaused
}

// HandleClick 处理一次点击，返回点击是否被菜单消费
//
// 菜单未打开时只响应右上角的暂停按钮；
// 菜单打开时消费所有点击，点在按钮上则执行按钮动作。
func (m *PauseMenuModule) HandleClick(x, y int) bool {
	if !m.IsActive() {
		if utils.PointIn(config.PauseButtonRect(), x, y) {
			m.Show()
			return true
		}
		return false
	}

	for i, b := range m.buttons {
		if utils.PointIn(m.ButtonRect(i), x, y) {
			b.action()
			break
		}
	}
	return true
}

// Draw 渲染暂停按钮或暂停菜单
// 场景自己负责暂停时的模糊，这里只画遮罩、标题和按钮
func (m *PauseMenuModule) Draw(screen *ebiten.Image) {
	if !m.IsActive() {
		m.drawPauseButton(screen)
		return
	}

	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), menuOverlayColor, false)

	m.ensureResources()

	if m.titleFace != nil {
		first := m.ButtonRect(0)
		w, h := text.Measure("Paused", m.titleFace, 0)
		drawLabel(screen, "Paused", m.titleFace, (float64(b.Dx())-w)/2, float64(first.Min.Y)-h-24, menuTitleColor)
	}

	for i, btn := range m.buttons {
		r := m.ButtonRect(i)
		if m.buttonPanel != nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
			screen.DrawImage(m.buttonPanel, op)
		}
		if m.buttonFace != nil {
			w, h := text.Measure(btn.label, m.buttonFace, 0)
			x := float64(r.Min.X) + (float64(r.Dx())-w)/2
			y := float64(r.Min.Y) + (float64(r.Dy())-h)/2
			drawLabel(screen, btn.label, m.buttonFace, x, y, menuButtonText)
		}
	}
}

// drawPauseButton 右上角的暂停按钮：圆角底 + 两条竖线
func (m *PauseMenuModule) drawPauseButton(screen *ebiten.Image) {
	r := config.PauseButtonRect().Inset(config.PauseButtonClickPadding)
	x, y := float32(r.Min.X), float32(r.Min.Y)
	size := float32(r.Dx())

	vector.DrawFilledRect(screen, x, y, size, size, pauseButtonFill, false)

	barW := size / 6
	barH := size / 2
	top := y + (size-barH)/2
	vector.DrawFilledRect(screen, x+size/2-barW*1.5, top, barW, barH, pauseButtonSymbol, false)
	vector.DrawFilledRect(screen, x+size/2+barW*0.5, top, barW, barH, pauseButtonSymbol, false)
}

func (m *PauseMenuModule) ensureResources() {
	if m.buttonPanel == nil {
		m.buttonPanel = utils.RasterizePanel(config.MenuButtonWidth, config.MenuButtonHeight, utils.PanelStyle{
			Radius:       config.MenuButtonRadius,
			Fill:         menuButtonFill,
			Border:       menuButtonBorder,
			BorderWidth:  3,
			Shadow:       menuButtonShadow,
			ShadowOffset: 4,
		})
	}
	if m.titleFace == nil {
		m.titleFace = utils.BoldFace(config.MenuTitleSize)
	}
	if m.buttonFace == nil {
		m.buttonFace = utils.DefaultFace(config.MenuButtonText)
	}
}

func drawLabel(screen *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}
