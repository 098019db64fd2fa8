package game

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"
)

// ErrSensorUnavailable 设备没有可用的加速度计
//
// 这不是致命错误：检测器进入降级模式，摇动信号永远为 false。
var ErrSensorUnavailable = errors.New("accelerometer unavailable")

// ShakeDetector 摇一摇检测器
//
// 职责：
//   - 对加速度采样求模长，首次超过阈值时置位摇动信号
//   - 置位后通过 Events() 通知主循环（非阻塞，最多积压一条）
//
// 摇动信号是电平信号而不是边沿事件：置位后保持为 true，
// 直到使用方调用 Reset() 重新布防。Feed 可以在任意 goroutine 调用，
// 检测器本身从不修改游戏状态。
type ShakeDetector struct {
	threshold float64
	detected  atomic.Bool
	events    chan struct{}
}

// NewShakeDetector 创建摇一摇检测器
//
// 参数：
//   - threshold: 加速度模长阈值（g），默认 2.5
func NewShakeDetector(threshold float64) *ShakeDetector {
	return &ShakeDetector{
		threshold: threshold,
		events:    make(chan struct{}, 1),
	}
}

// Threshold 返回检测阈值
func (d *ShakeDetector) Threshold() float64 {
	return d.threshold
}

// Feed 输入一次加速度采样
//
// 返回：
//   - bool: 本次采样是否触发了摇动信号（从 false 变为 true）
func (d *ShakeDetector) Feed(a Acceleration) bool {
	if a.Magnitude() <= d.threshold {
		return false
	}
	if !d.detected.CompareAndSwap(false, true) {
		// 已置位，等待使用方 Reset
		return false
	}

	select {
	case d.events <- struct{}{}:
	default:
	}
	return true
}

// Detected 返回当前摇动信号
func (d *ShakeDetector) Detected() bool {
	return d.detected.Load()
}

// Events 返回摇动通知通道，主循环在 Update 中非阻塞读取
func (d *ShakeDetector) Events() <-chan struct{} {
	return d.events
}

// Reset 清除摇动信号并丢弃未读的通知，重新布防
func (d *ShakeDetector) Reset() {
	d.detected.Store(false)
	select {
	case <-d.events:
	default:
	}
}

// Run 按固定间隔从数据源采样，直到 ctx 结束
//
// 数据源不可用时立即返回 ErrSensorUnavailable（降级模式，调用方只需记录日志）。
//
// 参数：
//   - ctx: 取消采样
//   - src: 加速度计数据源
//   - interval: 采样间隔，默认 200ms（5Hz）
func (d *ShakeDetector) Run(ctx context.Context, src AccelerometerSource, interval time.Duration) error {
	if src == nil || !src.Available() {
		log.Printf("[ShakeDetector] Accelerometer not available, shake detection disabled")
		return ErrSensorUnavailable
	}
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			sample, ok := src.Read()
			if !ok {
				continue
			}
			if d.Feed(sample) {
				log.Printf("[ShakeDetector] Shake detected (magnitude %.2f g)", sample.Magnitude())
			}
		}
	}
}
