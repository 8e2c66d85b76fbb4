// Package timing 提供协作式的延时回调调度器
//
// 所有“等待”（打字机逐字显示、淡入淡出、恢复延迟）都表示为
// 挂在调度器上的可取消回调，由场景的帧更新驱动，不使用 goroutine。
// 调度器只在 UI 主循环中使用，因此不加锁。
package timing

// Handle 已调度任务的句柄
type Handle struct {
	entry *entry
}

// Cancel 取消任务，重复调用安全
func (h *Handle) Cancel() {
	if h == nil || h.entry == nil {
		return
	}
	h.entry.cancelled = true
}

// Active 任务是否仍会触发
func (h *Handle) Active() bool {
	return h != nil && h.entry != nil && !h.entry.cancelled
}

type entry struct {
	owner     any
	delay     float64 // 一次性任务的延迟，或重复任务的间隔（秒）
	elapsed   float64
	repeat    bool
	fn        func()
	cancelled bool
}

// Scheduler 协作式调度器
//
// 生命周期：
//  1. 场景创建时创建调度器
//  2. 每帧由场景调用 Update(dt) 推进（暂停时不推进 = 时钟冻结）
//  3. 场景销毁时调用 Close()，取消全部任务，之后的调度请求被忽略
type Scheduler struct {
	entries []*entry
	closed  bool
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{
		entries: make([]*entry, 0, 4),
	}
}

// After 在 delay 秒后执行一次 fn
// owner 用于按所有者批量取消（CancelOwner）
func (s *Scheduler) After(owner any, delay float64, fn func()) *Handle {
	return s.add(&entry{owner: owner, delay: delay, fn: fn})
}

// Every 每隔 interval 秒执行一次 fn，直到被取消
// interval <= 0 时每次 Update 执行一次
func (s *Scheduler) Every(owner any, interval float64, fn func()) *Handle {
	return s.add(&entry{owner: owner, delay: interval, repeat: true, fn: fn})
}

func (s *Scheduler) add(e *entry) *Handle {
	if s.closed || e.fn == nil {
		e.cancelled = true
		return &Handle{entry: e}
	}
	s.entries = append(s.entries, e)
	return &Handle{entry: e}
}

// Update 推进时钟 dt 秒并触发到期的任务
//
// 同一帧内按注册顺序触发；本帧回调中新注册的任务从下一帧开始计时。
// 一个重复任务在 dt 很大时可能在同一帧触发多次（追帧）。
func (s *Scheduler) Update(dt float64) {
	if s.closed || len(s.entries) == 0 {
		return
	}

	snapshot := make([]*entry, len(s.entries))
	copy(snapshot, s.entries)

	for _, e := range snapshot {
		if e.cancelled {
			continue
		}
		e.elapsed += dt

		if !e.repeat {
			if e.elapsed >= e.delay {
				e.cancelled = true
				e.fn()
			}
			continue
		}

		if e.delay <= 0 {
			e.fn()
			continue
		}
		for !e.cancelled && e.elapsed >= e.delay {
			e.elapsed -= e.delay
			e.fn()
		}
	}

	s.compact()
}

// compact 移除已取消的任务
func (s *Scheduler) compact() {
	alive := s.entries[:0]
	for _, e := range s.entries {
		if !e.cancelled {
			alive = append(alive, e)
		}
	}
	for i := len(alive); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = alive
}

// CancelOwner 取消属于 owner 的全部任务，返回取消数量
func (s *Scheduler) CancelOwner(owner any) int {
	n := 0
	for _, e := range s.entries {
		if !e.cancelled && e.owner == owner {
			e.cancelled = true
			n++
		}
	}
	s.compact()
	return n
}

// CancelAll 取消全部任务
func (s *Scheduler) CancelAll() {
	for _, e := range s.entries {
		e.cancelled = true
	}
	s.entries = s.entries[:0]
}

// Close 取消全部任务并拒绝后续调度
// 场景销毁时调用，防止回调在场景释放后触发
func (s *Scheduler) Close() {
	s.CancelAll()
	s.closed = true
}

// Closed 调度器是否已关闭
func (s *Scheduler) Closed() bool {
	return s.closed
}

// Pending 返回仍会触发的任务数量
func (s *Scheduler) Pending() int {
	n := 0
	for _, e := range s.entries {
		if !e.cancelled {
			n++
		}
	}
	return n
}

// PendingFor 返回属于 owner 的待触发任务数量
func (s *Scheduler) PendingFor(owner any) int {
	n := 0
	for _, e := range s.entries {
		if !e.cancelled && e.owner == owner {
			n++
		}
	}
	return n
}
