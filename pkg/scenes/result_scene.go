package scenes

import (
	"image/color"

	"github.com/decker502/bugcatch/pkg/config"
	"github.com/decker502/bugcatch/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	resultPanelTop    = 250.0
	resultPanelHeight = 360.0
)

// ResultScene 结果页：结果标题、最佳成绩、再来一局和分享
type ResultScene struct {
	deps            *Deps
	playAgainButton *Button
	shareButton     *Button
	menuButton      *Button
	shared          float64 // 分享提示剩余显示时间
}

// NewResultScene 创建结果页
func NewResultScene(deps *Deps) *ResultScene {
	cx := float64(config.GameWindowWidth) / 2
	top := resultPanelTop
	return &ResultScene{
		deps: deps,
		playAgainButton: newButton("Play Again", cx, top+170, config.ButtonWidth, 54,
			hexColor(config.ColorPlayAgainHex), color.White),
		shareButton: newButton("Share Score", cx, top+240, 180, 44,
			hexColor(config.ColorShareHex), color.White),
		menuButton: newButton("Menu", cx, top+resultPanelHeight+20, 120, 40,
			hexColor(config.ColorPanelHex), color.Black),
	}
}

// OnEnter 实现 game.Enterable
func (s *ResultScene) OnEnter() {
	s.shared = 0
	s.playAgainButton.Reset()
	s.shareButton.Reset()
	s.menuButton.Reset()
}

// Update 处理点击
func (s *ResultScene) Update(deltaTime float64) {
	s.playAgainButton.Update(deltaTime)
	s.shareButton.Update(deltaTime)
	s.menuButton.Update(deltaTime)
	if s.shared > 0 {
		s.shared -= deltaTime
	}

	if ok, x, y := utils.IsJustTouchedOrClicked(); ok {
		s.handleTap(float64(x), float64(y))
	}
}

func (s *ResultScene) handleTap(x, y float64) {
	switch {
	case s.playAgainButton.Contains(x, y):
		s.playAgainButton.Press()
		s.deps.playTap()
		s.deps.Machine.SelectPlayAgain()
	case s.shareButton.Contains(x, y):
		s.shareButton.Press()
		s.deps.playTap()
		s.deps.Machine.Share()
		s.shared = 2
	case s.menuButton.Contains(x, y):
		s.menuButton.Press()
		s.deps.playTap()
		s.deps.Machine.ReturnToStart()
	}
}

// Draw 绘制结果面板
func (s *ResultScene) Draw(screen *ebiten.Image) {
	drawBackground(screen, false)
	dimScreen(screen, 0x40)

	snap := s.deps.Machine.Snapshot()
	x := config.PanelMargin
	w := float64(config.GameWindowWidth) - 2*config.PanelMargin
	drawPanel(screen, x, resultPanelTop, w, resultPanelHeight, color.White, color.RGBA{A: 0x30})

	cx := float64(config.GameWindowWidth) / 2
	y := resultPanelTop + 40
	y = drawTextLines(screen, utils.PlainText(snap.Message), s.deps.Fonts.Body, x+20, y, w-40, 6, color.Black)
	if snap.BestLine != "" {
		drawCenteredText(screen, utils.PlainText(snap.BestLine), s.deps.Fonts.Small, cx, y+25, color.Gray{Y: 0x70})
	}

	s.playAgainButton.Draw(screen, s.deps.Fonts.Body)
	s.shareButton.Draw(screen, s.deps.Fonts.Small)
	s.menuButton.Draw(screen, s.deps.Fonts.Small)

	if s.shared > 0 {
		drawCenteredText(screen, "Shared!", s.deps.Fonts.Small, cx, resultPanelTop+resultPanelHeight-25, color.Gray{Y: 0x50})
	}
}
