package components

// Timer 帧驱动计时器
// 用于处理需要时间延迟的行为（如开局随机等待、虫子定时移动、胜利音效等待）
//
// 计时器不持有 goroutine，只在主循环调用 Advance 时累积时间，
// 因此所有回调都发生在主循环上。每种用途只持有一个 Timer，
// 重新 Start 会覆盖之前的计划，Stop 会取消所有未触发的计划。
type Timer struct {
	Name        string  // 计时器名称，如 "start_delay"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 单次计时器是否已完成
	Repeating   bool    // 是否为重复计时器
	Active      bool    // 是否正在计时
}

// NewTimer 创建一个未启动的计时器
func NewTimer(name string) *Timer {
	return &Timer{Name: name}
}

// Start 启动单次计时器，覆盖之前的计划
func (t *Timer) Start(target float64) {
	t.arm(target, false)
}

// StartRepeating 启动重复计时器，每隔 interval 秒触发一次
func (t *Timer) StartRepeating(interval float64) {
	t.arm(interval, true)
}

func (t *Timer) arm(target float64, repeating bool) {
	if target < 0 {
		target = 0
	}
	t.TargetTime = target
	t.CurrentTime = 0
	t.IsReady = false
	t.Repeating = repeating
	t.Active = true
}

// Stop 取消计时器（幂等，未启动时调用也安全）
func (t *Timer) Stop() {
	t.Active = false
	t.IsReady = false
	t.CurrentTime = 0
}

// Advance 推进计时器
//
// 参数：
//   - dt: 本帧经过的时间（秒）
//
// 返回：
//   - int: 本次推进中触发的次数（单次计时器最多为 1）
func (t *Timer) Advance(dt float64) int {
	if !t.Active {
		return 0
	}

	t.CurrentTime += dt

	if !t.Repeating {
		if t.CurrentTime >= t.TargetTime {
			t.Active = false
			t.IsReady = true
			return 1
		}
		return 0
	}

	// 间隔为 0 的重复计时器每帧触发一次，避免死循环
	if t.TargetTime <= 0 {
		return 1
	}

	fired := 0
	for t.CurrentTime >= t.TargetTime {
		t.CurrentTime -= t.TargetTime
		fired++
	}
	return fired
}

// Remaining 返回距离下次触发的剩余时间（秒），未启动时返回 0
func (t *Timer) Remaining() float64 {
	if !t.Active {
		return 0
	}
	remaining := t.TargetTime - t.CurrentTime
	if remaining < 0 {
		return 0
	}
	return remaining
}
