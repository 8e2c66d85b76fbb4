package dialogue

import "log"

// Step 剧情步骤（带标签的变体）：ShowLine / RunEffect / Transition
type Step interface {
	stepKind() string
}

// ShowLine 显示一行对话，玩家确认后继续
type ShowLine struct {
	Speaker string
	Text    string
}

// RunEffect 执行一个效果，效果调用 done 后继续
// 阻塞型效果（如定义弹窗）在关闭时才调用 done
type RunEffect struct {
	Name string
	Run  func(done func())
}

// Transition 结束当前剧情并交给转场处理函数
type Transition struct {
	Target string // "next" 或 "exam"
}

func (ShowLine) stepKind() string   { return "line" }
func (RunEffect) stepKind() string  { return "effect" }
func (Transition) stepKind() string { return "transition" }

// Runner 剧情步骤队列的驱动器
//
// 取代“在回调里反复重新设置回调”的写法：步骤是数据，按顺序逐个消费，
// 每次只向对话引擎 Arm 一个续接，因此不会出现覆盖未触发回调的情况。
type Runner struct {
	engine       *Engine
	steps        []Step
	pos          int
	charInterval float64
	onTransition func(target string)

	started   bool
	finished  bool
	waiting   bool // 正在等待对话确认或效果完成
	inAdvance bool
	again     bool
}

// NewRunner 创建剧情驱动器
//
// 参数：
//   - engine: 场景的对话引擎
//   - charInterval: 打字机每个字符的间隔（秒）
//   - onTransition: 遇到 Transition 步骤时调用
func NewRunner(engine *Engine, charInterval float64, onTransition func(target string)) *Runner {
	return &Runner{
		engine:       engine,
		steps:        make([]Step, 0, 8),
		charInterval: charInterval,
		onTransition: onTransition,
	}
}

// Enqueue 追加步骤到队尾
// 剧情已结束（执行过 Transition）后追加的步骤不会再执行
func (r *Runner) Enqueue(steps ...Step) {
	r.steps = append(r.steps, steps...)
	if r.started && !r.finished && !r.waiting {
		r.advance()
	}
}

// Start 开始消费队列，重复调用无效
func (r *Runner) Start() {
	if r.started {
		return
	}
	r.started = true
	r.advance()
}

// advance 执行步骤直到遇到需要等待的步骤
// 同步完成的效果在回调里再次进入 advance 时只做标记，由外层循环继续，避免递归过深
func (r *Runner) advance() {
	if r.inAdvance {
		r.again = true
		return
	}
	r.inAdvance = true
	defer func() { r.inAdvance = false }()

	for {
		r.again = false
		r.waiting = false

		if r.finished {
			return
		}
		if r.pos >= len(r.steps) {
			return
		}

		step := r.steps[r.pos]
		r.pos++

		switch s := step.(type) {
		case ShowLine:
			r.waiting = true
			r.engine.ShowLine(s.Speaker, s.Text, r.charInterval)
			r.engine.Arm(r.resume)
			return

		case RunEffect:
			r.waiting = true
			if s.Run == nil {
				r.waiting = false
				continue
			}
			completed := false
			s.Run(func() {
				if completed {
					return
				}
				completed = true
				r.resume()
			})
			if !r.again {
				// 效果尚未完成（阻塞型），等待 done
				return
			}

		case Transition:
			r.finished = true
			r.engine.Hide()
			if r.onTransition != nil {
				r.onTransition(s.Target)
			}
			return

		default:
			log.Printf("[Dialogue] Unknown step kind %T, skipped", step)
		}
	}
}

// resume 当前步骤完成后继续
func (r *Runner) resume() {
	r.waiting = false
	r.advance()
}

// Done 剧情是否已经执行到 Transition
func (r *Runner) Done() bool {
	return r.finished
}

// Started 是否已经开始
func (r *Runner) Started() bool {
	return r.started
}

// Remaining 返回尚未执行的步骤数
func (r *Runner) Remaining() int {
	return len(r.steps) - r.pos
}

// Idle 队列已消费完但没有遇到 Transition
func (r *Runner) Idle() bool {
	return r.started && !r.finished && !r.waiting && r.pos >= len(r.steps)
}
