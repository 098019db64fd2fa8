// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsJustTouchedOrClicked 检查本帧是否刚刚发生点击或触摸
// 同时支持鼠标和多点触摸，优先检测触摸（移动设备）
//
// 返回：是否点击以及点击位置（逻辑坐标）
func IsJustTouchedOrClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// AppendJustTappedPoints 追加本帧所有新的触摸点和鼠标点击
//
// 同一帧内的多个触摸会按顺序返回，由调用方决定哪一个先生效。
func AppendJustTappedPoints(points [][2]int) [][2]int {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		points = append(points, [2]int{x, y})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		points = append(points, [2]int{x, y})
	}
	return points
}

// InCircle 点是否在圆内（含边界）
func InCircle(px, py, cx, cy, radius float64) bool {
	dx, dy := px-cx, py-cy
	return dx*dx+dy*dy <= radius*radius
}

// InRect 点是否在矩形内（含边界）
func InRect(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}
