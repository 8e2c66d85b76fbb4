package config

import "image"

// UI 布局和时序相关的常量配置
// 所有坐标基于逻辑分辨率 GameWindowWidth x GameWindowHeight

const (
	// GameWindowWidth 逻辑画面宽度
	GameWindowWidth = 960
	// GameWindowHeight 逻辑画面高度
	GameWindowHeight = 540
)

// 时序参数（秒）
const (
	// TransitionFadeDuration 场景切换交叉淡化时长
	TransitionFadeDuration = 0.5

	// DefaultTypewriterInterval 打字机默认字符间隔
	DefaultTypewriterInterval = 0.03

	// MinTypewriterInterval / MaxTypewriterInterval 设置中允许的字符间隔范围
	MinTypewriterInterval = 0.0
	MaxTypewriterInterval = 0.2

	// ResumeDelay 关闭暂停菜单后场景时钟重新开始前的延迟，避免画面突变
	ResumeDelay = 0.15

	// DialogueFadeDuration 对话框淡入淡出时长
	DialogueFadeDuration = 0.2

	// ContinueBlinkPeriod “点击继续”提示闪烁周期
	ContinueBlinkPeriod = 0.8

	// StepDelay 场景中 "wait" 效果的默认停顿
	StepDelay = 0.6
)

// 暂停效果
const (
	// PauseBlurFactor 暂停时缩小倍数（先缩小再线性放大得到模糊效果）
	PauseBlurFactor = 6

	// PauseDimAlpha 暂停遮罩的不透明度（0~1）
	PauseDimAlpha = 0.45
)

// 对话框布局
const (
	DialogueBoxMarginX   = 40.0
	DialogueBoxHeight    = 150.0
	DialogueBoxBottom    = 24.0 // 距离屏幕底部
	DialogueBoxPadding   = 20.0
	DialogueBoxRadius    = 16.0
	DialogueSpeakerSize  = 22.0
	DialogueTextSize     = 20.0
	DialogueLineSpacing  = 1.35
	DialogueContinueSize = 16.0
)

// DialogueBoxRect 返回对话框所在矩形
func DialogueBoxRect() image.Rectangle {
	x0 := int(DialogueBoxMarginX)
	y1 := GameWindowHeight - int(DialogueBoxBottom)
	return image.Rect(x0, y1-int(DialogueBoxHeight), GameWindowWidth-x0, y1)
}

// 定义弹窗布局
const (
	ModalWidth      = 560
	ModalHeight     = 280
	ModalRadius     = 18.0
	ModalPadding    = 28.0
	ModalTitleSize  = 26.0
	ModalBodySize   = 19.0
	ModalHintString = "Tap anywhere to continue"
)

// ModalRect 返回居中的定义弹窗矩形
func ModalRect() image.Rectangle {
	x0 := (GameWindowWidth - ModalWidth) / 2
	y0 := (GameWindowHeight - ModalHeight) / 2
	return image.Rect(x0, y0, x0+ModalWidth, y0+ModalHeight)
}

// 暂停按钮（右上角）
const (
	PauseButtonSize   = 48
	PauseButtonMargin = 16
	// PauseButtonClickPadding 点击区域四周扩展（像素）
	PauseButtonClickPadding = 8
)

// PauseButtonRect 返回暂停按钮的点击区域（已包含扩展）
func PauseButtonRect() image.Rectangle {
	x1 := GameWindowWidth - PauseButtonMargin
	y0 := PauseButtonMargin
	r := image.Rect(x1-PauseButtonSize, y0, x1, y0+PauseButtonSize)
	return r.Inset(-PauseButtonClickPadding)
}

// 暂停菜单按钮
const (
	MenuButtonWidth   = 300
	MenuButtonHeight  = 56
	MenuButtonSpacing = 18
	MenuButtonRadius  = 14.0
	MenuButtonText    = 22.0
	MenuTitleSize     = 34.0
)

// MenuButtonRect 计算暂停菜单第 index 个按钮的矩形
// 按钮在屏幕中央纵向排列，count 为按钮总数
func MenuButtonRect(index, count int) image.Rectangle {
	if index < 0 || index >= count {
		return image.Rectangle{}
	}
	total := count*MenuButtonHeight + (count-1)*MenuButtonSpacing
	x0 := (GameWindowWidth - MenuButtonWidth) / 2
	y0 := (GameWindowHeight-total)/2 + 30 + index*(MenuButtonHeight+MenuButtonSpacing)
	return image.Rect(x0, y0, x0+MenuButtonWidth, y0+MenuButtonHeight)
}
