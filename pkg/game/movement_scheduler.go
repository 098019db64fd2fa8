package game

import (
	"math/rand"

	"github.com/decker502/bugcatch/pkg/components"
)

// MovementScheduler 虫子定时移动调度器
//
// 每隔固定间隔把回合内每只虫子重新放到活动区域内的随机位置。
// 调度器由主循环通过 Update 推进，重新定位只发生在主循环上。
// 同一时刻只有一次运行：Start 会先停止之前的运行。
type MovementScheduler struct {
	timer      *components.Timer
	roster     *Roster
	bounds     Rect
	rng        *rand.Rand
	generation int
	sinceTick  float64
	ticks      int
}

// NewMovementScheduler 创建移动调度器
func NewMovementScheduler(rng *rand.Rand) *MovementScheduler {
	return &MovementScheduler{
		timer: components.NewTimer("bug_movement"),
		rng:   rng,
	}
}

// Start 开始定时移动
//
// 参数：
//   - roster: 要移动的虫子（调度器持有指针，停止前每次触发都会移动全部虫子）
//   - bounds: 活动区域
//   - interval: 移动间隔（秒），默认 1.0
func (s *MovementScheduler) Start(roster *Roster, bounds Rect, interval float64) {
	s.Stop()

	s.roster = roster
	s.bounds = bounds
	s.generation++
	s.sinceTick = 0
	s.ticks = 0
	s.timer.StartRepeating(interval)
}

// Stop 停止定时移动（幂等，未启动时调用也安全）
func (s *MovementScheduler) Stop() {
	s.timer.Stop()
	s.roster = nil
}

// SetBounds 更新活动区域，下一次触发开始生效
func (s *MovementScheduler) SetBounds(bounds Rect) {
	s.bounds = bounds
}

// Update 推进调度器
//
// 参数：
//   - dt: 本帧经过的时间（秒）
//
// 返回：
//   - int: 本帧触发的移动次数
func (s *MovementScheduler) Update(dt float64) int {
	if !s.timer.Active {
		return 0
	}

	fired := s.timer.Advance(dt)
	if fired == 0 {
		s.sinceTick += dt
		return 0
	}

	// 一帧内多次触发时只有最后一次位置可见，但每次都要重新随机
	for i := 0; i < fired; i++ {
		s.roster.Reposition(s.bounds, s.rng)
	}
	s.ticks += fired
	s.sinceTick = s.timer.CurrentTime
	return fired
}

// Active 是否正在运行
func (s *MovementScheduler) Active() bool {
	return s.timer.Active
}

// Generation 返回 Start 被调用的次数，用于区分不同回合的运行
func (s *MovementScheduler) Generation() int {
	return s.generation
}

// Ticks 返回当前运行已触发的移动次数
func (s *MovementScheduler) Ticks() int {
	return s.ticks
}

// SinceTick 返回距离上一次移动的时间（秒），用于计算动画进度
func (s *MovementScheduler) SinceTick() float64 {
	return s.sinceTick
}
