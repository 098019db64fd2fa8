package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/bugcatch/pkg/config"
	"github.com/decker502/bugcatch/pkg/game"
	"github.com/decker502/bugcatch/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PlayScene 回合进行中：绘制虫子并把点击转换为 TapBug
type PlayScene struct {
	deps *Deps
	taps [][2]int
}

// NewPlayScene 创建回合场景
func NewPlayScene(deps *Deps) *PlayScene {
	return &PlayScene{deps: deps}
}

// Update 处理本帧的所有点击
func (s *PlayScene) Update(deltaTime float64) {
	s.taps = utils.AppendJustTappedPoints(s.taps[:0])
	for _, p := range s.taps {
		s.handleTap(float64(p[0]), float64(p[1]))
	}
}

// handleTap 命中测试并交给状态机
// 同一帧内的后续点击由状态机的结算保护忽略
func (s *PlayScene) handleTap(x, y float64) bool {
	m := s.deps.Machine
	id, ok := hitTestBugs(m.Bugs(), m.MoveProgress(), x, y, config.BugSize/2)
	if !ok {
		return false
	}
	if !m.TapBug(id) {
		return false
	}
	log.Printf("[PlayScene] Tap resolved: %s", m.Result().Outcome)
	return true
}

// Draw 绘制虫子
func (s *PlayScene) Draw(screen *ebiten.Image) {
	drawBackground(screen, false)

	snap := s.deps.Machine.Snapshot()
	for _, bug := range snap.Bugs {
		p := bugScreenPosition(bug, snap.MoveProgress)
		if snap.Resolved && bug.IsTarget {
			// 被抓住的蚂蚁加一圈高亮
			vector.StrokeCircle(screen, float32(p.X), float32(p.Y), float32(config.BugSize/2+6), 4,
				hexColor(config.ColorButtonHex), true)
		}
		drawBug(screen, bug.Kind, p.X, p.Y)
	}

	if snap.Resolved {
		drawCenteredText(screen, "Got it!", s.deps.Fonts.Title, float64(config.GameWindowWidth)/2, 90, color.White)
	}
}

// compile-time interface check
var _ game.Scene = (*PlayScene)(nil)
