package game

import (
	"math/rand"
	"sync/atomic"

	"github.com/decker502/bugcatch/pkg/config"
	"github.com/decker502/bugcatch/pkg/types"
	"github.com/decker502/bugcatch/pkg/utils"
)

// BugID 虫子的唯一标识符
// 进程内单调递增，不同回合之间不会复用，0 保留为无效ID
type BugID uint64

var lastBugID atomic.Uint64

func nextBugID() BugID {
	return BugID(lastBugID.Add(1))
}

// Point 逻辑坐标点
type Point struct {
	X, Y float64
}

// Lerp 在 p 与 q 之间按 t ∈ [0, 1] 线性插值
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: utils.Lerp(p.X, q.X, t),
		Y: utils.Lerp(p.Y, q.Y, t),
	}
}

// Rect 轴对齐矩形，包含边界
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Empty 矩形没有面积（或被反转）时返回 true
func (r Rect) Empty() bool {
	return r.MaxX < r.MinX || r.MaxY < r.MinY
}

// Contains 判断点是否在矩形内（含边界）
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// PlayAreaFor 根据屏幕尺寸和内缩量计算虫子的活动区域
//
// 屏幕过小导致区域反转时，坍缩为屏幕中心的一条线，保证随机点仍落在屏幕内。
func PlayAreaFor(width, height float64, insets config.PlayAreaInsets) Rect {
	r := Rect{
		MinX: insets.Left,
		MinY: insets.Top,
		MaxX: width - insets.Right,
		MaxY: height - insets.Bottom,
	}
	if r.MaxX < r.MinX {
		r.MinX, r.MaxX = width/2, width/2
	}
	if r.MaxY < r.MinY {
		r.MinY, r.MaxY = height/2, height/2
	}
	return r
}

// RandomPoint 在矩形内均匀随机取点
func RandomPoint(bounds Rect, rng *rand.Rand) Point {
	return Point{
		X: bounds.MinX + rng.Float64()*(bounds.MaxX-bounds.MinX),
		Y: bounds.MinY + rng.Float64()*(bounds.MaxY-bounds.MinY),
	}
}

// Bug 一只虫子的值快照
//
// ID、Kind、IsTarget 在回合内不可变；Position 每次移动都会被替换，
// From 是上一次的位置，用于渲染时做移动插值。
type Bug struct {
	ID       BugID
	Kind     types.BugKind
	IsTarget bool
	Position Point
	From     Point
}

// Roster 一回合的全部虫子（有序）
type Roster []Bug

// NewRoster 按配置组成创建新一回合的虫子
//
// 每只虫子的位置在 bounds 内独立均匀随机，允许重叠。
// 目标固定为蚂蚁（config.TargetKind）。
//
// 参数：
//   - bounds: 活动区域
//   - composition: 虫子组成（如 2 瓢虫、2 甲虫、2 毛毛虫、1 蚂蚁）
//   - rng: 随机数源
func NewRoster(bounds Rect, composition []config.RosterEntry, rng *rand.Rand) Roster {
	size := 0
	for _, entry := range composition {
		size += entry.Count
	}

	roster := make(Roster, 0, size)
	for _, entry := range composition {
		for i := 0; i < entry.Count; i++ {
			pos := RandomPoint(bounds, rng)
			roster = append(roster, Bug{
				ID:       nextBugID(),
				Kind:     entry.Kind,
				IsTarget: entry.Kind == config.TargetKind,
				Position: pos,
				From:     pos,
			})
		}
	}
	return roster
}

// Find 按ID查找虫子
func (r Roster) Find(id BugID) (Bug, bool) {
	for _, bug := range r {
		if bug.ID == id {
			return bug, true
		}
	}
	return Bug{}, false
}

// Target 返回目标虫子
func (r Roster) Target() (Bug, bool) {
	for _, bug := range r {
		if bug.IsTarget {
			return bug, true
		}
	}
	return Bug{}, false
}

// TargetCount 返回目标虫子的数量（有效回合中恒为 1）
func (r Roster) TargetCount() int {
	count := 0
	for _, bug := range r {
		if bug.IsTarget {
			count++
		}
	}
	return count
}

// Clone 返回独立副本，修改副本不影响原数据
func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	clone := make(Roster, len(r))
	copy(clone, r)
	return clone
}

// Reposition 为每只虫子重新随机一个位置，旧位置记入 From
func (r Roster) Reposition(bounds Rect, rng *rand.Rand) {
	for i := range r {
		r[i].From = r[i].Position
		r[i].Position = RandomPoint(bounds, rng)
	}
}

// Settle 把所有虫子的动画起点对齐到当前位置（停止移动后使用）
func (r Roster) Settle() {
	for i := range r {
		r[i].From = r[i].Position
	}
}
