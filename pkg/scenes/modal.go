package scenes

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/config"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/utils"
)

var (
	modalBackdrop = color.RGBA{A: 110}
	modalFill     = color.RGBA{R: 255, G: 251, B: 240, A: 255}
	modalBorder   = color.RGBA{R: 120, G: 70, B: 160, A: 255}
	modalTitle    = color.RGBA{R: 120, G: 70, B: 160, A: 255}
	modalText     = color.RGBA{R: 40, G: 36, B: 48, A: 255}
	modalHint     = color.RGBA{R: 130, G: 124, B: 140, A: 255}
)

// Modal 阻塞式弹窗（术语定义）
// 关闭回调最多触发一次
type Modal struct {
	Title string
	Body  string

	onDismiss func()
	fired     bool

	rect  image.Rectangle
	panel *ebiten.Image
	lines []string
}

// NewModal 创建弹窗
func NewModal(title, body string, onDismiss func()) *Modal {
	return &Modal{
		Title:     title,
		Body:      body,
		onDismiss: onDismiss,
		rect:      config.ModalRect(),
	}
}

// fire 触发关闭回调（只触发一次）
func (m *Modal) fire() {
	if m.fired {
		return
	}
	m.fired = true
	if m.onDismiss != nil {
		m.onDismiss()
	}
}

// Draw 绘制半透明背景和居中的弹窗
func (m *Modal) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), modalBackdrop, false)

	if m.panel == nil {
		m.panel = utils.RasterizePanel(m.rect.Dx(), m.rect.Dy(), utils.PanelStyle{
			Radius:      config.ModalRadius,
			Fill:        modalFill,
			Border:      modalBorder,
			BorderWidth: 4,
		})
	}
	if m.panel != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(m.rect.Min.X), float64(m.rect.Min.Y))
		screen.DrawImage(m.panel, op)
	}

	x := float64(m.rect.Min.X) + config.ModalPadding
	y := float64(m.rect.Min.Y) + config.ModalPadding

	if face := utils.BoldFace(config.ModalTitleSize); face != nil {
		drawString(screen, m.Title, face, x, y, modalTitle)
	}
	y += config.ModalTitleSize * 1.6

	if face := utils.DefaultFace(config.ModalBodySize); face != nil {
		if m.lines == nil {
			m.lines = utils.WrapText(m.Body, face, float64(m.rect.Dx())-2*config.ModalPadding)
		}
		for _, l := range m.lines {
			drawString(screen, l, face, x, y, modalText)
			y += config.ModalBodySize * 1.4
		}
	}

	if face := utils.DefaultFace(config.DialogueContinueSize); face != nil {
		hy := float64(m.rect.Max.Y) - config.ModalPadding - config.DialogueContinueSize
		drawString(screen, config.ModalHintString, face, x, hy, modalHint)
	}
}

// drawString 在 (x, y) 绘制单行文本（y 为行顶部）
func drawString(screen *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}
