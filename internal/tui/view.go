// Package tui 终端版前端
//
// 与 GUI 共用同一个 game.Machine：每帧读取 Snapshot 绘制到 tcell 屏幕，
// 鼠标点击或数字键转换为 TapBug。
package tui

import (
	"fmt"
	"strings"

	"github.com/decker502/bugcatch/pkg/game"
	"github.com/decker502/bugcatch/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// 一个终端字符格对应的逻辑像素
// 状态机的活动区域按像素计算，终端按字符格显示
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleHint    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleLabel   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleCaught  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleWin     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleLoss    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// View 把快照绘制到终端屏幕
type View struct {
	screen tcell.Screen
}

// NewView 创建视图
func NewView(screen tcell.Screen) *View {
	return &View{screen: screen}
}

// LogicalSize 返回终端尺寸对应的逻辑像素尺寸
func (v *View) LogicalSize() (float64, float64) {
	w, h := v.screen.Size()
	return float64(w) * cellWidth, float64(h) * cellHeight
}

// cellOf 逻辑坐标 -> 字符格
func cellOf(p game.Point) (int, int) {
	return int(p.X / cellWidth), int(p.Y / cellHeight)
}

// bugCell 虫子在当前动画进度下所在的字符格
func bugCell(bug game.Bug, progress float64) (int, int) {
	return cellOf(bug.From.Lerp(bug.Position, utils.EaseInOutCubic(progress)))
}

// BugAt 查找字符格上的虫子
//
// 每只虫子占 emoji（两格）加编号一格；重叠时后绘制的在上层，从后往前查找。
func BugAt(snap game.Snapshot, col, row int) (game.BugID, bool) {
	for i := len(snap.Bugs) - 1; i >= 0; i-- {
		x, y := bugCell(snap.Bugs[i], snap.MoveProgress)
		if row == y && col >= x && col <= x+2 {
			return snap.Bugs[i].ID, true
		}
	}
	return 0, false
}

// BugByLabel 按屏幕上的编号（1 起）查找虫子
func BugByLabel(snap game.Snapshot, label int) (game.BugID, bool) {
	if label < 1 || label > len(snap.Bugs) {
		return 0, false
	}
	return snap.Bugs[label-1].ID, true
}

// Draw 绘制一帧
//
// 参数：
//   - snap: 状态机快照
//   - hint: 等待摇动时的提示（为空时显示默认提示）
//   - status: 底部状态行（如 "Shared!"）
func (v *View) Draw(snap game.Snapshot, hint, status string) {
	v.screen.Clear()
	w, h := v.screen.Size()

	v.centered(0, "Bug Catch", styleTitle)

	switch snap.Screen {
	case game.ScreenStart:
		v.centered(h/2-1, "Catch the ant as fast as you can!", styleDefault)
		v.footer(h, "[Enter] Play   [m] Sound   [q] Quit")
	case game.ScreenRules:
		y := 2
		for _, rule := range game.RulesLines {
			v.text(2, y, rule, styleDefault)
			y += strings.Count(rule, "\n") + 2
		}
		v.footer(h, "[Enter] Start   [Esc] Back")
	case game.ScreenWaitingForShake:
		if hint == "" {
			hint = "Shake your phone to start!"
		}
		v.centered(h/2, hint, styleDefault)
		v.footer(h, "[Esc] Back")
	case game.ScreenWaitingBeforeStart:
		v.centered(h/2, "Wait for the bugs to come...", styleHint)
		v.footer(h, "[Esc] Back")
	case game.ScreenActive:
		v.drawPlayArea(snap)
		if snap.Resolved {
			v.centered(1, "Got it!", styleCaught)
		}
		v.footer(h, "Click the ant or press its number   [Esc] Back")
	case game.ScreenResult:
		style := styleLoss
		if snap.Result.Outcome == game.OutcomeWin {
			style = styleWin
		}
		v.centered(h/2-2, snap.Message, style)
		if snap.BestLine != "" {
			v.centered(h/2, snap.BestLine, styleDefault)
		}
		v.footer(h, "[Enter] Play Again   [s] Share   [m] Menu")
	}

	if status != "" {
		v.text(w-runewidth.StringWidth(status)-1, h-1, status, styleLabel)
	}
	v.screen.Show()
}

// drawPlayArea 绘制活动区域边框和虫子
func (v *View) drawPlayArea(snap game.Snapshot) {
	x0, y0 := cellOf(game.Point{X: snap.PlayArea.MinX, Y: snap.PlayArea.MinY})
	x1, y1 := cellOf(game.Point{X: snap.PlayArea.MaxX, Y: snap.PlayArea.MaxY})
	// 边框画在区域外一格，emoji 占两格
	x0, y0, x1, y1 = x0-1, y0-1, x1+3, y1+1

	for x := x0; x <= x1; x++ {
		v.screen.SetContent(x, y0, tcell.RuneHLine, nil, styleBorder)
		v.screen.SetContent(x, y1, tcell.RuneHLine, nil, styleBorder)
	}
	for y := y0; y <= y1; y++ {
		v.screen.SetContent(x0, y, tcell.RuneVLine, nil, styleBorder)
		v.screen.SetContent(x1, y, tcell.RuneVLine, nil, styleBorder)
	}
	v.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, styleBorder)
	v.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, styleBorder)
	v.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, styleBorder)
	v.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, styleBorder)

	for i, bug := range snap.Bugs {
		x, y := bugCell(bug, snap.MoveProgress)
		style := styleDefault
		if snap.Resolved {
			style = styleCaught
		}
		v.text(x, y, bug.Kind.Emoji(), style)
		if !snap.Resolved {
			v.text(x+2, y, fmt.Sprintf("%d", i+1), styleLabel)
		}
	}
}

// footer 底部按键提示
func (v *View) footer(h int, s string) {
	v.text(1, h-1, s, styleHint)
}

// centered 水平居中绘制一行
func (v *View) centered(y int, s string, style tcell.Style) {
	w, _ := v.screen.Size()
	x := (w - runewidth.StringWidth(s)) / 2
	if x < 0 {
		x = 0
	}
	v.text(x, y, s, style)
}

// text 从 (x, y) 开始绘制，宽字符占两格，换行符另起一行并回到 x
func (v *View) text(x, y int, s string, style tcell.Style) {
	cx := x
	for _, r := range s {
		if r == '\n' {
			y++
			cx = x
			continue
		}
		v.screen.SetContent(cx, y, r, nil, style)
		cx += runewidth.RuneWidth(r)
	}
}
