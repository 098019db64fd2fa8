package scenes

import (
	"image/color"
	"math"

	"github.com/decker502/bugcatch/pkg/config"
	"github.com/decker502/bugcatch/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// waitMode 等待页的两种用途
type waitMode int

const (
	waitForShake waitMode = iota // 等待摇动
	waitForBugs                  // 摇动后的随机等待
)

// WaitingScene 等待页
type WaitingScene struct {
	deps       *Deps
	mode       waitMode
	elapsed    float64
	backButton *Button
}

// NewWaitingScene 创建等待页
func NewWaitingScene(deps *Deps, mode waitMode) *WaitingScene {
	return &WaitingScene{
		deps:       deps,
		mode:       mode,
		backButton: newButton("Back", 60, 40, 90, 36, hexColor(config.ColorPanelHex), color.Black),
	}
}

// OnEnter 实现 game.Enterable
func (s *WaitingScene) OnEnter() {
	s.elapsed = 0
	s.backButton.Reset()
}

// Update 推进动画并处理返回按钮
func (s *WaitingScene) Update(deltaTime float64) {
	s.elapsed += deltaTime
	s.backButton.Update(deltaTime)

	if ok, x, y := utils.IsJustTouchedOrClicked(); ok {
		s.handleTap(float64(x), float64(y))
	}
}

func (s *WaitingScene) handleTap(x, y float64) {
	if s.backButton.Contains(x, y) {
		s.backButton.Press()
		s.deps.playTap()
		s.deps.Machine.ReturnToStart()
	}
}

// Draw 绘制等待页
func (s *WaitingScene) Draw(screen *ebiten.Image) {
	drawBackground(screen, false)

	cx := float64(config.GameWindowWidth) / 2
	cy := float64(config.GameWindowHeight) / 2

	label := "Shake your phone to start!"
	face := s.deps.Fonts.Title
	if s.mode == waitForBugs {
		label = "Wait for it..."
	}

	w := 340.0
	drawPanel(screen, cx-w/2, cy-40, w, 80, hexColor(config.ColorButtonHex), hexColor(config.ColorButtonHex))
	if s.mode == waitForShake {
		drawCenteredText(screen, label, s.deps.Fonts.Body, cx, cy, color.Black)
		s.drawSpinner(screen, cx, cy+90)
		if s.deps.ShakeHint != "" {
			drawCenteredText(screen, s.deps.ShakeHint, s.deps.Fonts.Small, cx, cy+150, color.Black)
		}
	} else {
		drawCenteredText(screen, label, face, cx, cy, color.Black)
	}

	s.backButton.Draw(screen, s.deps.Fonts.Small)
}

// drawSpinner 绘制转圈的进度指示
func (s *WaitingScene) drawSpinner(screen *ebiten.Image, cx, cy float64) {
	const dots = 8
	const radius = 20.0
	head := int(s.elapsed*10) % dots
	for i := 0; i < dots; i++ {
		angle := 2 * math.Pi * float64(i) / dots
		x := cx + radius*math.Cos(angle)
		y := cy + radius*math.Sin(angle)
		alpha := uint8(60 + 195*((i-head+dots)%dots)/(dots-1))
		vector.DrawFilledCircle(screen, float32(x), float32(y), 4, color.RGBA{A: alpha}, true)
	}
}
