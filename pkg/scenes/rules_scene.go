package scenes

import (
	"image/color"

	"github.com/decker502/bugcatch/pkg/config"
	"github.com/decker502/bugcatch/pkg/game"
	"github.com/decker502/bugcatch/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	rulesPanelTop    = 170.0
	rulesPanelHeight = 480.0
	rulesPadding     = 20.0
)

// RulesScene 规则页
type RulesScene struct {
	deps        *Deps
	startButton *Button
	backButton  *Button
}

// NewRulesScene 创建规则页
func NewRulesScene(deps *Deps) *RulesScene {
	cx := float64(config.GameWindowWidth) / 2
	return &RulesScene{
		deps: deps,
		startButton: newButton("Start", cx, rulesPanelTop+rulesPanelHeight-rulesPadding-50,
			150, 50, hexColor(config.ColorButtonHex), color.Black),
		backButton: newButton("Back", 60, 40, 90, 36, hexColor(config.ColorPanelHex), color.Black),
	}
}

// OnEnter 实现 game.Enterable
func (s *RulesScene) OnEnter() {
	s.startButton.Reset()
	s.backButton.Reset()
}

// Update 处理点击
func (s *RulesScene) Update(deltaTime float64) {
	s.startButton.Update(deltaTime)
	s.backButton.Update(deltaTime)

	if ok, x, y := utils.IsJustTouchedOrClicked(); ok {
		s.handleTap(float64(x), float64(y))
	}
}

func (s *RulesScene) handleTap(x, y float64) {
	switch {
	case s.startButton.Contains(x, y):
		s.startButton.Press()
		s.deps.playTap()
		s.deps.Machine.SelectStart()
	case s.backButton.Contains(x, y):
		s.backButton.Press()
		s.deps.playTap()
		s.deps.Machine.ReturnToStart()
	}
}

// Draw 绘制规则面板
func (s *RulesScene) Draw(screen *ebiten.Image) {
	drawBackground(screen, false)
	dimScreen(screen, 0x66)

	x := config.PanelMargin
	w := float64(config.GameWindowWidth) - 2*config.PanelMargin
	drawPanel(screen, x, rulesPanelTop, w, rulesPanelHeight,
		hexColor(config.ColorPanelHex), hexColor(config.ColorButtonHex))

	cx := float64(config.GameWindowWidth) / 2
	drawCenteredText(screen, "How to Play", s.deps.Fonts.Title, cx, rulesPanelTop+45, color.Black)

	y := rulesPanelTop + 90
	for _, rule := range game.RulesLines {
		y = drawTextLines(screen, rule, s.deps.Fonts.Body, x+rulesPadding, y, w-2*rulesPadding, 6, color.Black)
		y += 10
	}

	s.startButton.Draw(screen, s.deps.Fonts.Body)
	drawBug(screen, config.TargetKind, s.startButton.X+s.startButton.W+40, s.startButton.Y+s.startButton.H/2)
	s.backButton.Draw(screen, s.deps.Fonts.Small)
}
