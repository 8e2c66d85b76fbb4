package utils

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
)

// PanelStyle 圆角面板样式
type PanelStyle struct {
	Radius       float64
	Fill         color.Color
	Border       color.Color // nil 表示无描边
	BorderWidth  float64
	Shadow       color.Color // nil 表示无阴影，阴影向下偏移 ShadowOffset
	ShadowOffset float64
}

// RasterizePanel 用 gg 光栅化一个圆角面板（对话框、弹窗、暂停菜单共用）
// 结果只需生成一次，之后作为普通图片绘制
func RasterizePanel(width, height int, style PanelStyle) *ebiten.Image {
	if width <= 0 || height <= 0 {
		return nil
	}

	dc := gg.NewContext(width, height)
	bodyHeight := float64(height)

	if style.Shadow != nil && style.ShadowOffset > 0 {
		bodyHeight -= style.ShadowOffset
		dc.SetColor(style.Shadow)
		dc.DrawRoundedRectangle(0, style.ShadowOffset, float64(width), bodyHeight, style.Radius)
		dc.Fill()
	}

	dc.SetColor(style.Fill)
	dc.DrawRoundedRectangle(0, 0, float64(width), bodyHeight, style.Radius)
	dc.Fill()

	if style.Border != nil && style.BorderWidth > 0 {
		inset := style.BorderWidth / 2
		dc.SetColor(style.Border)
		dc.SetLineWidth(style.BorderWidth)
		dc.DrawRoundedRectangle(inset, inset, float64(width)-style.BorderWidth, bodyHeight-style.BorderWidth, style.Radius)
		dc.Stroke()
	}

	return ebiten.NewImageFromImage(dc.Image())
}
