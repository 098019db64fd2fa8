package scenes

import (
	"image/color"
	"math"

	"github.com/decker502/bugcatch/pkg/config"
	"github.com/decker502/bugcatch/pkg/game"
	"github.com/decker502/bugcatch/pkg/types"
	"github.com/decker502/bugcatch/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colorLadybug     = color.RGBA{R: 0xD9, G: 0x2B, B: 0x2B, A: 0xFF}
	colorBeetle      = color.RGBA{R: 0x2E, G: 0x5E, B: 0x4E, A: 0xFF}
	colorCaterpillar = color.RGBA{R: 0x7C, G: 0xC2, B: 0x3F, A: 0xFF}
	colorAnt         = color.RGBA{R: 0x3A, G: 0x22, B: 0x16, A: 0xFF}
	colorBugDark     = color.RGBA{R: 0x1A, G: 0x1A, B: 0x1A, A: 0xFF}
	colorBugEye      = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// bugScreenPosition 返回虫子在当前动画进度下的位置
//
// 参数：
//   - bug: 虫子快照（From -> Position）
//   - progress: 线性动画进度 [0, 1]，内部做缓入缓出
func bugScreenPosition(bug game.Bug, progress float64) game.Point {
	return bug.From.Lerp(bug.Position, utils.EaseInOutCubic(progress))
}

// hitTestBugs 查找点击位置下的虫子
//
// 虫子按顺序绘制，后绘制的在上层，因此从后往前查找，返回最上层的那只。
func hitTestBugs(bugs game.Roster, progress, x, y, radius float64) (game.BugID, bool) {
	for i := len(bugs) - 1; i >= 0; i-- {
		p := bugScreenPosition(bugs[i], progress)
		if utils.InCircle(x, y, p.X, p.Y, radius) {
			return bugs[i].ID, true
		}
	}
	return 0, false
}

// drawBug 以 (cx, cy) 为中心绘制一只虫子
func drawBug(screen *ebiten.Image, kind types.BugKind, cx, cy float64) {
	r := float32(config.BugSize / 2)
	x, y := float32(cx), float32(cy)

	switch kind {
	case types.BugLadybug:
		vector.DrawFilledCircle(screen, x, y-r*0.55, r*0.35, colorBugDark, true)
		vector.DrawFilledCircle(screen, x, y+r*0.1, r*0.75, colorLadybug, true)
		vector.StrokeLine(screen, x, y-r*0.6, x, y+r*0.85, 2, colorBugDark, true)
		for _, d := range [][2]float32{{-0.35, -0.1}, {0.35, -0.1}, {-0.4, 0.4}, {0.4, 0.4}} {
			vector.DrawFilledCircle(screen, x+d[0]*r, y+d[1]*r, r*0.13, colorBugDark, true)
		}
	case types.BugBeetle:
		drawLegs(screen, x, y, r*0.9, colorBugDark)
		vector.DrawFilledCircle(screen, x, y-r*0.6, r*0.3, colorBugDark, true)
		vector.DrawFilledRect(screen, x-r*0.55, y-r*0.35, r*1.1, r*1.15, colorBeetle, true)
		vector.DrawFilledCircle(screen, x, y+r*0.8, r*0.55, colorBeetle, true)
		vector.StrokeLine(screen, x, y-r*0.35, x, y+r*1.2, 2, colorBugDark, true)
	case types.BugCaterpillar:
		for i := 0; i < 5; i++ {
			sx := x - r*0.8 + float32(i)*r*0.4
			sy := y + float32(math.Sin(float64(i)))*r*0.15
			vector.DrawFilledCircle(screen, sx, sy, r*0.28, colorCaterpillar, true)
		}
		vector.DrawFilledCircle(screen, x+r*0.95, y, r*0.3, colorCaterpillar, true)
		vector.DrawFilledCircle(screen, x+r*1.05, y-r*0.08, r*0.08, colorBugDark, true)
	case types.BugAnt:
		drawLegs(screen, x, y, r*0.8, colorAnt)
		vector.DrawFilledCircle(screen, x, y-r*0.6, r*0.25, colorAnt, true)
		vector.DrawFilledCircle(screen, x, y, r*0.2, colorAnt, true)
		vector.DrawFilledCircle(screen, x, y+r*0.55, r*0.35, colorAnt, true)
		vector.StrokeLine(screen, x-r*0.1, y-r*0.8, x-r*0.35, y-r*1.05, 1.5, colorAnt, true)
		vector.StrokeLine(screen, x+r*0.1, y-r*0.8, x+r*0.35, y-r*1.05, 1.5, colorAnt, true)
		vector.DrawFilledCircle(screen, x-r*0.1, y-r*0.65, r*0.06, colorBugEye, true)
		vector.DrawFilledCircle(screen, x+r*0.1, y-r*0.65, r*0.06, colorBugEye, true)
	default:
		vector.StrokeCircle(screen, x, y, r*0.8, 2, colorBugDark, true)
	}
}

// drawLegs 绘制左右各三条腿
func drawLegs(screen *ebiten.Image, x, y, span float32, clr color.Color) {
	for i := -1; i <= 1; i++ {
		dy := float32(i) * span * 0.4
		vector.StrokeLine(screen, x-span, y+dy-span*0.15, x+span, y+dy+span*0.15, 2, clr, true)
	}
}
