package scenes

import (
	"image/color"

	"github.com/decker502/bugcatch/pkg/config"
	"github.com/decker502/bugcatch/pkg/game"
	"github.com/decker502/bugcatch/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// StartScene 开始页：标题、Play 按钮和音效开关
type StartScene struct {
	deps        *Deps
	playButton  *Button
	soundButton *Button
	elapsed     float64
}

// NewStartScene 创建开始页
func NewStartScene(deps *Deps) *StartScene {
	cx := float64(config.GameWindowWidth) / 2
	return &StartScene{
		deps: deps,
		playButton: newButton("Play", cx, float64(config.GameWindowHeight)-100-config.ButtonHeight,
			config.ButtonWidth, config.ButtonHeight, hexColor(config.ColorButtonHex), color.Black),
		soundButton: newButton(soundLabel(deps.Settings), float64(config.GameWindowWidth)-70, 20,
			110, 36, hexColor(config.ColorPanelHex), color.Black),
	}
}

// soundLabel 返回音效开关按钮的文字
func soundLabel(sm *game.SettingsManager) string {
	if sm == nil || sm.GetSettings().SoundEnabled {
		return "Sound: On"
	}
	return "Sound: Off"
}

// OnEnter 实现 game.Enterable
func (s *StartScene) OnEnter() {
	s.elapsed = 0
	s.playButton.Reset()
	s.soundButton.Label = soundLabel(s.deps.Settings)
}

// Update 处理点击
func (s *StartScene) Update(deltaTime float64) {
	s.elapsed += deltaTime
	s.playButton.Update(deltaTime)
	s.soundButton.Update(deltaTime)

	if ok, x, y := utils.IsJustTouchedOrClicked(); ok {
		s.handleTap(float64(x), float64(y))
	}
}

// handleTap 根据点击位置触发按钮
func (s *StartScene) handleTap(x, y float64) {
	switch {
	case s.playButton.Contains(x, y):
		s.playButton.Press()
		s.deps.playTap()
		s.deps.Machine.SelectPlay()
	case s.soundButton.Contains(x, y) && s.deps.Settings != nil:
		s.soundButton.Press()
		s.deps.Settings.ToggleSound()
		s.soundButton.Label = soundLabel(s.deps.Settings)
		s.deps.playTap()
	}
}

// Draw 绘制开始页
func (s *StartScene) Draw(screen *ebiten.Image) {
	drawBackground(screen, true)

	cx := float64(config.GameWindowWidth) / 2
	drawCenteredText(screen, "Bug Catch", s.deps.Fonts.Title, cx, 220, hexColor(config.ColorButtonHex))
	drawCenteredText(screen, "Catch the ant. Fast.", s.deps.Fonts.Body, cx, 270, color.White)

	// 标题下方的蚂蚁轻轻摆动
	bob := 6 * utils.EaseInOutCubic(triangle(s.elapsed/1.2))
	drawBug(screen, config.TargetKind, cx, 380+bob)

	s.playButton.Draw(screen, s.deps.Fonts.Title)
	s.soundButton.Draw(screen, s.deps.Fonts.Small)
}

// triangle 把时间映射为 0 -> 1 -> 0 的三角波
func triangle(t float64) float64 {
	f := t - float64(int(t))
	if f < 0.5 {
		return f * 2
	}
	return 2 - f*2
}
