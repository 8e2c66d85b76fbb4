package dialogue

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/config"
	"github.com/Kartikayy007/TorisExam-sub000/pkg/utils"
)

var (
	boxFill      = color.RGBA{R: 250, G: 246, B: 238, A: 240}
	boxBorder    = color.RGBA{R: 60, G: 52, B: 80, A: 255}
	boxShadow    = color.RGBA{A: 90}
	speakerColor = color.RGBA{R: 120, G: 70, B: 160, A: 255}
	textColor    = color.RGBA{R: 40, G: 36, B: 48, A: 255}
)

// Box 对话框渲染
// 只读取 Engine 的状态，不修改它
type Box struct {
	rect  image.Rectangle
	panel *ebiten.Image

	speakerFace *text.GoTextFace
	textFace    *text.GoTextFace

	blink float64

	// 缓存换行结果，文本不变时不重复测量
	wrappedFor string
	wrapped    []string
}

// NewBox 创建对话框，rect 为屏幕上的位置
func NewBox(rect image.Rectangle) *Box {
	return &Box{
		rect:        rect,
		speakerFace: utils.BoldFace(config.DialogueSpeakerSize),
		textFace:    utils.DefaultFace(config.DialogueTextSize),
	}
}

// Rect 返回对话框区域
func (b *Box) Rect() image.Rectangle {
	return b.rect
}

// Update 推进“点击继续”提示的闪烁
func (b *Box) Update(dt float64) {
	b.blink += dt
	if b.blink >= config.ContinueBlinkPeriod {
		b.blink -= config.ContinueBlinkPeriod
	}
}

// Draw 绘制对话框
func (b *Box) Draw(screen *ebiten.Image, e *Engine) {
	if e == nil || !e.IsVisible() {
		return
	}
	alpha := float32(e.Alpha())

	if b.panel == nil {
		b.panel = utils.RasterizePanel(b.rect.Dx(), b.rect.Dy(), utils.PanelStyle{
			Radius:       config.DialogueBoxRadius,
			Fill:         boxFill,
			Border:       boxBorder,
			BorderWidth:  3,
			Shadow:       boxShadow,
			ShadowOffset: 4,
		})
	}
	if b.panel != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(b.rect.Min.X), float64(b.rect.Min.Y))
		op.ColorScale.ScaleAlpha(alpha)
		screen.DrawImage(b.panel, op)
	}

	x := float64(b.rect.Min.X) + config.DialogueBoxPadding
	y := float64(b.rect.Min.Y) + config.DialogueBoxPadding/2

	line := e.Line()
	if line.Speaker != "" && b.speakerFace != nil {
		b.drawText(screen, line.Speaker, b.speakerFace, x, y, speakerColor, alpha)
	}
	y += config.DialogueSpeakerSize * config.DialogueLineSpacing

	if b.textFace != nil {
		if b.wrappedFor != line.Text {
			maxWidth := float64(b.rect.Dx()) - 2*config.DialogueBoxPadding
			b.wrapped = utils.WrapText(line.Text, b.textFace, maxWidth)
			b.wrappedFor = line.Text
		}
		revealed, total := e.Progress()
		lines := b.wrapped
		if revealed < total {
			lines = revealLines(b.wrapped, revealed)
		}
		for _, l := range lines {
			b.drawText(screen, l, b.textFace, x, y, textColor, alpha)
			y += config.DialogueTextSize * config.DialogueLineSpacing
		}
	}

	if e.IsContinueShown() && b.blink < config.ContinueBlinkPeriod/2 {
		const size = 10
		mx := float32(b.rect.Max.X) - float32(config.DialogueBoxPadding) - size
		my := float32(b.rect.Max.Y) - float32(config.DialogueBoxPadding) - size
		c := color.RGBA{R: speakerColor.R, G: speakerColor.G, B: speakerColor.B, A: uint8(math.Round(float64(alpha) * 255))}
		vector.DrawFilledRect(screen, mx, my, size, size, c, true)
	}
}

func (b *Box) drawText(screen *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color, alpha float32) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(alpha)
	text.Draw(screen, s, face, op)
}

// revealLines 按已显示字符数截取换行后的文本
// 换行时去掉的空格不计入，显示进度只会略快于实际光标
func revealLines(lines []string, revealed int) []string {
	out := make([]string, 0, len(lines))
	remaining := revealed
	for _, l := range lines {
		if remaining <= 0 {
			break
		}
		runes := []rune(l)
		if len(runes) <= remaining {
			out = append(out, l)
			remaining -= len(runes)
			continue
		}
		out = append(out, string(runes[:remaining]))
		break
	}
	return out
}
