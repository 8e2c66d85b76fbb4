// Package dialogue 实现对话框的打字机显示和剧情步骤队列
package dialogue

import (
	"log"

	"github.com/Kartikayy007/TorisExam-sub000/pkg/timing"
)

// State 对话引擎状态
type State int

const (
	// StateHidden 对话框不可见
	StateHidden State = iota
	// StateRevealing 正在逐字显示
	StateRevealing
	// StateAwaitingAcknowledge 整行已显示，等待玩家点击继续
	StateAwaitingAcknowledge
)

// String 返回状态名
func (s State) String() string {
	switch s {
	case StateHidden:
		return "Hidden"
	case StateRevealing:
		return "Revealing"
	case StateAwaitingAcknowledge:
		return "AwaitingAcknowledge"
	default:
		return "Unknown"
	}
}

// Line 一行对话（说话人 + 完整文本），不可变
type Line struct {
	Speaker string
	Text    string
}

// DefaultFadeDuration 对话框淡入淡出时长（秒）
const DefaultFadeDuration = 0.2

// Engine 对话引擎
//
// 状态机：
//
//	ShowLine            → Revealing（任意状态）
//	逐字显示完成          → AwaitingAcknowledge
//	HandleAcknowledge   Revealing → AwaitingAcknowledge（跳过）
//	HandleAcknowledge   AwaitingAcknowledge → 触发并清空待续回调
//	Hide                → Hidden（任意状态）
//
// 逐字显示由所属场景的 timing.Scheduler 驱动，同一时间最多一个重复任务。
type Engine struct {
	scheduler *timing.Scheduler

	line   Line
	runes  []rune
	cursor int // 已显示的字符数，显示过程中单调不减
	state  State

	revealTimer *timing.Handle
	pending     func()

	alpha        float64 // 当前不透明度 0~1
	fadeTarget   float64
	fadeDuration float64
}

// NewEngine 创建对话引擎
// scheduler: 所属场景的调度器，场景暂停时时钟冻结，逐字显示随之停止
func NewEngine(scheduler *timing.Scheduler) *Engine {
	return &Engine{
		scheduler:    scheduler,
		state:        StateHidden,
		fadeDuration: DefaultFadeDuration,
	}
}

// SetFadeDuration 设置淡入淡出时长，<= 0 表示立即切换
func (e *Engine) SetFadeDuration(seconds float64) {
	e.fadeDuration = seconds
}

// ShowLine 开始显示一行对话
//
// 先取消正在进行的逐字任务，保证重复任务不会并存。
// 空文本立即完成；charInterval <= 0 时整行立即显示。
func (e *Engine) ShowLine(speaker, text string, charInterval float64) {
	e.stopReveal()

	e.line = Line{Speaker: speaker, Text: text}
	e.runes = []rune(text)
	e.cursor = 0
	e.state = StateRevealing
	e.fadeTarget = 1

	if len(e.runes) == 0 || charInterval <= 0 {
		e.finishReveal()
		return
	}

	e.revealTimer = e.scheduler.Every(e, charInterval, e.revealNext)
}

// revealNext 显示下一个字符（调度器回调）
func (e *Engine) revealNext() {
	if e.state != StateRevealing {
		e.stopReveal()
		return
	}
	if e.cursor < len(e.runes) {
		e.cursor++
	}
	if e.cursor >= len(e.runes) {
		e.finishReveal()
	}
}

// finishReveal 整行显示完成，进入等待确认状态
func (e *Engine) finishReveal() {
	e.stopReveal()
	e.cursor = len(e.runes)
	e.state = StateAwaitingAcknowledge
}

func (e *Engine) stopReveal() {
	if e.revealTimer != nil {
		e.revealTimer.Cancel()
		e.revealTimer = nil
	}
}

// HandleAcknowledge 处理玩家点击
//
// 显示中：立即显示整行（只取消动画，不结束这一行）
// 已显示：触发并清空待续回调（最多触发一次，未设置时无操作）
func (e *Engine) HandleAcknowledge() {
	switch e.state {
	case StateRevealing:
		e.finishReveal()
	case StateAwaitingAcknowledge:
		next := e.pending
		e.pending = nil
		if next != nil {
			next()
		}
	}
}

// Hide 取消逐字任务并淡出
func (e *Engine) Hide() {
	e.stopReveal()
	e.state = StateHidden
	e.fadeTarget = 0
}

// Arm 设置下一次“已显示状态下点击”时要执行的回调
// 会覆盖尚未触发的旧回调
func (e *Engine) Arm(continuation func()) {
	if e.pending != nil {
		log.Printf("[Dialogue] Warning: overwriting an unfired continuation (speaker=%q)", e.line.Speaker)
	}
	e.pending = continuation
}

// Disarm 清除待续回调，返回之前是否已设置
func (e *Engine) Disarm() bool {
	had := e.pending != nil
	e.pending = nil
	return had
}

// Update 推进淡入淡出
func (e *Engine) Update(dt float64) {
	if e.alpha == e.fadeTarget {
		return
	}
	if e.fadeDuration <= 0 {
		e.alpha = e.fadeTarget
		return
	}
	step := dt / e.fadeDuration
	if e.alpha < e.fadeTarget {
		e.alpha += step
		if e.alpha > e.fadeTarget {
			e.alpha = e.fadeTarget
		}
	} else {
		e.alpha -= step
		if e.alpha < e.fadeTarget {
			e.alpha = e.fadeTarget
		}
	}
}

// State 返回当前状态
func (e *Engine) State() State {
	return e.state
}

// Line 返回当前对话行
func (e *Engine) Line() Line {
	return e.line
}

// VisibleText 返回已显示的文本
func (e *Engine) VisibleText() string {
	return string(e.runes[:e.cursor])
}

// Progress 返回已显示字符数和总字符数
func (e *Engine) Progress() (revealed, total int) {
	return e.cursor, len(e.runes)
}

// IsContinueShown 是否显示“点击继续”提示
func (e *Engine) IsContinueShown() bool {
	return e.state == StateAwaitingAcknowledge
}

// IsArmed 是否有待续回调
func (e *Engine) IsArmed() bool {
	return e.pending != nil
}

// Alpha 返回当前不透明度（0~1）
func (e *Engine) Alpha() float64 {
	return e.alpha
}

// IsVisible 对话框是否需要绘制
func (e *Engine) IsVisible() bool {
	return e.alpha > 0
}
