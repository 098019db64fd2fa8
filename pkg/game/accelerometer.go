package game

import (
	"math"
	"sync"
)

// Acceleration 三轴加速度采样（单位 g）
type Acceleration struct {
	X, Y, Z float64
}

// Magnitude 返回加速度模长 sqrt(x²+y²+z²)
func (a Acceleration) Magnitude() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// AccelerometerSource 加速度计数据源
//
// ShakeDetector 按固定间隔调用 Read 采样；
// Available 返回 false 表示设备没有加速度计，检测器进入降级模式。
type AccelerometerSource interface {
	Available() bool
	Read() (Acceleration, bool)
}

// PushSource 由宿主推送采样的数据源
//
// 移动端原生代码在传感器回调中调用 Push（任意线程），
// 采样协程读取最近一次的值。每个采样只会被读取一次。
type PushSource struct {
	mu     sync.Mutex
	latest Acceleration
	fresh  bool
}

// NewPushSource 创建推送式数据源
func NewPushSource() *PushSource {
	return &PushSource{}
}

// Push 写入一次新的采样
func (s *PushSource) Push(x, y, z float64) {
	s.mu.Lock()
	s.latest = Acceleration{X: x, Y: y, Z: z}
	s.fresh = true
	s.mu.Unlock()
}

// Available 推送式数据源总是可用
func (s *PushSource) Available() bool {
	return true
}

// Read 取出最近一次未读的采样
func (s *PushSource) Read() (Acceleration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fresh {
		return Acceleration{}, false
	}
	s.fresh = false
	return s.latest, true
}

// UnavailableSource 表示没有加速度计（桌面端默认）
type UnavailableSource struct{}

// Available 总是返回 false
func (UnavailableSource) Available() bool {
	return false
}

// Read 总是没有数据
func (UnavailableSource) Read() (Acceleration, bool) {
	return Acceleration{}, false
}
