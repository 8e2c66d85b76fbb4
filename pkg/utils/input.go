// Package utils 提供通用工具函数
package utils

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 当前帧的主输入（触摸优先，其次鼠标左键）
type InputState struct {
	// JustPressed 本帧是否有新的点击/触摸
	JustPressed bool
	// X, Y 点击/触摸位置（逻辑屏幕坐标）
	X, Y int
	// IsTouching 是否有活动的触摸
	IsTouching bool
}

// GetInputState 获取当前帧的输入状态
func GetInputState() InputState {
	state := InputState{}

	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.JustPressed = true
		state.IsTouching = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		return state
	}

	if allTouchIDs := ebiten.AppendTouchIDs(nil); len(allTouchIDs) > 0 {
		state.IsTouching = true
		state.X, state.Y = ebiten.TouchPosition(allTouchIDs[0])
		return state
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		state.JustPressed = true
	}
	state.X, state.Y = ebiten.CursorPosition()
	return state
}

// IsPauseKeyJustPressed 桌面端暂停快捷键（Esc 或 P）
func IsPauseKeyJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP)
}

// IsAdvanceKeyJustPressed 键盘推进对话（空格或回车）
func IsAdvanceKeyJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
}

// PointIn 判断点是否在矩形内（含左上边，不含右下边）
func PointIn(r image.Rectangle, x, y int) bool {
	return image.Pt(x, y).In(r)
}
