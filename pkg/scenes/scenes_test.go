package scenes

import (
	"math/rand"
	"testing"

	"github.com/decker502/bugcatch/pkg/config"
	"github.com/decker502/bugcatch/pkg/game"
)

const frame = 1.0 / 60.0

type fakeSharer struct {
	messages []string
}

func (s *fakeSharer) Share(msg string) {
	s.messages = append(s.messages, msg)
}

func newTestDeps(t *testing.T) (*Deps, *game.ShakeDetector, *fakeSharer) {
	t.Helper()
	detector := game.NewShakeDetector(2.5)
	sharer := &fakeSharer{}
	m := game.NewMachine(config.DefaultGameConfig(), game.MachineDeps{
		Detector: detector,
		Scores:   game.NewScoreStore(nil),
		Sharer:   sharer,
		Rand:     rand.New(rand.NewSource(11)),
	})
	return &Deps{Machine: m, Settings: game.NewSettingsManager(nil)}, detector, sharer
}

// runToActive 摇动并等待回合开始
func runToActive(t *testing.T, deps *Deps, detector *game.ShakeDetector) {
	t.Helper()
	detector.Feed(game.Acceleration{X: 3})
	for i := 0; i < 6*60 && deps.Machine.Screen() != game.ScreenActive; i++ {
		deps.Machine.Update(frame)
	}
	if deps.Machine.Screen() != game.ScreenActive {
		t.Fatalf("screen = %s, want Active", deps.Machine.Screen())
	}
}

func center(b *Button) (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

func TestNewFactory(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	factory := NewFactory(deps)

	tests := []struct {
		screen game.Screen
		check  func(game.Scene) bool
	}{
		{game.ScreenStart, func(s game.Scene) bool { _, ok := s.(*StartScene); return ok }},
		{game.ScreenRules, func(s game.Scene) bool { _, ok := s.(*RulesScene); return ok }},
		{game.ScreenWaitingForShake, func(s game.Scene) bool { w, ok := s.(*WaitingScene); return ok && w.mode == waitForShake }},
		{game.ScreenWaitingBeforeStart, func(s game.Scene) bool { w, ok := s.(*WaitingScene); return ok && w.mode == waitForBugs }},
		{game.ScreenActive, func(s game.Scene) bool { _, ok := s.(*PlayScene); return ok }},
		{game.ScreenResult, func(s game.Scene) bool { _, ok := s.(*ResultScene); return ok }},
	}

	for _, tt := range tests {
		if scene := factory(tt.screen); !tt.check(scene) {
			t.Errorf("factory(%s) = %T", tt.screen, scene)
		}
	}
	if factory(game.Screen(99)) != nil {
		t.Error("unknown screen should have no scene")
	}
}

func TestSceneFlow(t *testing.T) {
	deps, detector, sharer := newTestDeps(t)
	m := deps.Machine

	start := NewStartScene(deps)
	start.handleTap(0, 0)
	if m.Screen() != game.ScreenStart {
		t.Fatal("tap outside buttons should do nothing")
	}
	start.handleTap(center(start.playButton))
	if m.Screen() != game.ScreenRules {
		t.Fatalf("screen = %s, want Rules after Play", m.Screen())
	}

	rules := NewRulesScene(deps)
	rules.handleTap(center(rules.startButton))
	if m.Screen() != game.ScreenWaitingForShake {
		t.Fatalf("screen = %s, want WaitingForShake after Start", m.Screen())
	}

	runToActive(t, deps, detector)

	play := NewPlayScene(deps)
	if play.handleTap(-100, -100) {
		t.Error("tap on empty grass should not resolve")
	}
	target, ok := m.Bugs().Target()
	if !ok {
		t.Fatal("no target bug")
	}
	p := bugScreenPosition(target, m.MoveProgress())
	// 蚂蚁可能被其他虫子盖住，直接点中心不一定命中它；结果只要求已结算
	if !play.handleTap(p.X, p.Y) {
		t.Fatal("tap on a bug should resolve the round")
	}
	if m.Screen() != game.ScreenResult {
		t.Fatalf("screen = %s, want Result", m.Screen())
	}

	result := NewResultScene(deps)
	result.handleTap(center(result.shareButton))
	if len(sharer.messages) != 1 {
		t.Errorf("share sent %d messages, want 1", len(sharer.messages))
	}
	result.handleTap(center(result.playAgainButton))
	if m.Screen() != game.ScreenWaitingForShake {
		t.Fatalf("screen = %s, want WaitingForShake after Play Again", m.Screen())
	}

	waiting := NewWaitingScene(deps, waitForShake)
	waiting.handleTap(center(waiting.backButton))
	if m.Screen() != game.ScreenStart {
		t.Errorf("screen = %s, want Start after Back", m.Screen())
	}
}

func TestStartSceneSoundToggle(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	s := NewStartScene(deps)

	if s.soundButton.Label != "Sound: On" {
		t.Fatalf("label = %q, want Sound: On", s.soundButton.Label)
	}
	s.handleTap(center(s.soundButton))
	if deps.Settings.GetSettings().SoundEnabled {
		t.Error("sound should be disabled after toggling")
	}
	if s.soundButton.Label != "Sound: Off" {
		t.Errorf("label = %q, want Sound: Off", s.soundButton.Label)
	}
	if deps.Machine.Screen() != game.ScreenStart {
		t.Error("toggling sound must not navigate")
	}
}

func TestButtonPressFeedback(t *testing.T) {
	b := newButton("Play", 195, 100, 200, 60, hexColor(config.ColorButtonHex), nil)

	if b.X != 95 || !b.Contains(100, 130) || b.Contains(300, 130) {
		t.Errorf("button geometry wrong: %+v", b)
	}
	if b.scale() != 1 {
		t.Errorf("idle scale = %v, want 1", b.scale())
	}

	b.Press()
	if b.scale() >= 1 {
		t.Errorf("pressed scale = %v, want < 1", b.scale())
	}
	for elapsed := 0.0; elapsed < pressFeedbackDuration+frame; elapsed += frame {
		b.Update(frame)
	}
	if b.scale() != 1 {
		t.Errorf("scale after feedback = %v, want 1", b.scale())
	}
}

func TestHexColor(t *testing.T) {
	c := hexColor(0xF3A932)
	if c.R != 0xF3 || c.G != 0xA9 || c.B != 0x32 || c.A != 0xFF {
		t.Errorf("hexColor(0xF3A932) = %+v", c)
	}
}

func TestTriangle(t *testing.T) {
	tests := map[float64]float64{0: 0, 0.25: 0.5, 0.5: 1, 0.75: 0.5, 1.25: 0.5}
	for in, want := range tests {
		if got := triangle(in); got != want {
			t.Errorf("triangle(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestNewFonts(t *testing.T) {
	fonts, err := NewFonts()
	if err != nil {
		t.Fatalf("NewFonts failed: %v", err)
	}
	if fonts.Title.Size != config.TitleFontSize || fonts.Body.Size != config.BodyFontSize {
		t.Errorf("font sizes = %v/%v", fonts.Title.Size, fonts.Body.Size)
	}
}

func TestRulesText(t *testing.T) {
	if len(game.RulesLines) != 4 {
		t.Errorf("len(game.RulesLines) = %d, want 4", len(game.RulesLines))
	}
}
