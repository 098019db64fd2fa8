package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/decker502/bugcatch/pkg/config"
	"github.com/decker502/bugcatch/pkg/game"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
)

const frame = 1.0 / 60.0

// gridScreen 记录写入的字符，便于断言绘制结果
type gridScreen struct {
	tcell.Screen
	cells map[[2]int]rune
}

func (g *gridScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	g.cells[[2]int{x, y}] = mainc
	g.Screen.SetContent(x, y, mainc, combc, style)
}

func (g *gridScreen) Clear() {
	g.cells = make(map[[2]int]rune)
	g.Screen.Clear()
}

// text 返回整屏文本，每行以换行分隔
func (g *gridScreen) text() string {
	w, h := g.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r, ok := g.cells[[2]int{x, y}]; ok {
				b.WriteRune(r)
			} else {
				b.WriteRune(' ')
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func newTestScreen(t *testing.T, w, h int) *gridScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("simulation screen init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return &gridScreen{Screen: s, cells: make(map[[2]int]rune)}
}

type recordingSharer struct {
	messages []string
}

func (r *recordingSharer) Share(msg string) {
	r.messages = append(r.messages, msg)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

type tuiFixture struct {
	t      *testing.T
	screen *gridScreen
	app    *App
	sharer *recordingSharer
}

func newTUIFixture(t *testing.T, cue *BeepCue) *tuiFixture {
	t.Helper()
	screen := newTestScreen(t, 100, 50)
	sharer := &recordingSharer{}
	app := NewApp(screen, Config{
		Game:          config.DefaultGameConfig(),
		Scores:        game.NewScoreStore(nil),
		Cue:           cue,
		Sharer:        sharer,
		SimulateShake: true,
	})
	return &tuiFixture{t: t, screen: screen, app: app, sharer: sharer}
}

func (f *tuiFixture) send(ev tcell.Event) bool {
	f.t.Helper()
	return f.app.HandleEvent(ev)
}

// toActive 从开始页走到虫子出现
func (f *tuiFixture) toActive() {
	f.t.Helper()
	f.send(key(tcell.KeyEnter))
	f.send(key(tcell.KeyEnter))
	if got := f.app.Machine().Screen(); got != game.ScreenWaitingForShake {
		f.t.Fatalf("screen = %v, want WaitingForShake", got)
	}
	f.send(runeKey('s'))
	for i := 0; i < 60*10 && f.app.Machine().Screen() != game.ScreenActive; i++ {
		f.app.Tick(frame)
	}
	if got := f.app.Machine().Screen(); got != game.ScreenActive {
		f.t.Fatalf("screen = %v, want Active", got)
	}
}

// targetLabel 返回蚂蚁在屏幕上的编号
func (f *tuiFixture) targetLabel() rune {
	f.t.Helper()
	for i, bug := range f.app.Machine().Snapshot().Bugs {
		if bug.IsTarget {
			return rune('1' + i)
		}
	}
	f.t.Fatal("no target in roster")
	return 0
}

func TestTUIWinByNumberKey(t *testing.T) {
	f := newTUIFixture(t, nil)
	f.toActive()

	f.app.Tick(0)
	if !strings.Contains(f.screen.text(), "Click the ant") {
		t.Error("active screen should show the tap hint")
	}

	f.send(runeKey(f.targetLabel()))

	m := f.app.Machine()
	if m.Screen() != game.ScreenResult {
		t.Fatalf("screen = %v, want Result (no cue)", m.Screen())
	}
	if m.Result().Outcome != game.OutcomeWin {
		t.Fatalf("outcome = %v, want win", m.Result().Outcome)
	}

	f.app.Tick(0)
	out := f.screen.text()
	if !strings.Contains(out, "You caught the ant in") {
		t.Errorf("result screen missing headline:\n%s", out)
	}
	if !strings.Contains(out, "Best Time:") {
		t.Errorf("result screen missing best line:\n%s", out)
	}
}

func TestTUIWinWaitsForCue(t *testing.T) {
	var played []beep.Streamer
	f := newTUIFixture(t, newTestCue(&played))
	f.toActive()

	f.send(runeKey(f.targetLabel()))
	m := f.app.Machine()
	if m.Screen() != game.ScreenActive || !m.Resolved() {
		t.Fatalf("screen = %v resolved = %v, want Active while the cue plays", m.Screen(), m.Resolved())
	}
	// 按键音 + 胜利音效
	if len(played) != 2 {
		t.Fatalf("played %d cues, want 2", len(played))
	}

	f.app.Tick(0)
	if !strings.Contains(f.screen.text(), "Got it!") {
		t.Error("caught banner should be visible during the cue")
	}

	// 0.68 秒的琶音
	for i := 0; i < 60 && m.Screen() != game.ScreenResult; i++ {
		f.app.Tick(frame)
	}
	if m.Screen() != game.ScreenResult {
		t.Fatalf("screen = %v, want Result after the cue", m.Screen())
	}
}

func TestTUIMouseClick(t *testing.T) {
	f := newTUIFixture(t, nil)
	f.toActive()

	snap := f.app.Machine().Snapshot()
	x, y := bugCell(snap.Bugs[0], snap.MoveProgress)
	want, ok := BugAt(snap, x, y)
	if !ok {
		t.Fatal("BugAt should find the bug under its own cell")
	}
	picked, _ := snap.Bugs.Find(want)

	f.send(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))

	outcome := f.app.Machine().Result().Outcome
	if picked.IsTarget && outcome != game.OutcomeWin {
		t.Errorf("clicked the ant, outcome = %v", outcome)
	}
	if !picked.IsTarget && outcome != game.OutcomeLoss {
		t.Errorf("clicked a decoy, outcome = %v", outcome)
	}
}

func TestTUIMouseMissIgnored(t *testing.T) {
	f := newTUIFixture(t, nil)
	f.toActive()

	// 左上角在活动区域之外
	f.send(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	if m := f.app.Machine(); m.Screen() != game.ScreenActive || m.Resolved() {
		t.Errorf("a miss should not resolve the round")
	}
}

func TestTUIMouseDragOntoBugIgnored(t *testing.T) {
	f := newTUIFixture(t, nil)
	f.toActive()

	snap := f.app.Machine().Snapshot()
	x, y := bugCell(snap.Bugs[0], snap.MoveProgress)
	m := f.app.Machine()

	// 在空白处按下，按住拖到虫子上
	f.send(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	f.send(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	if m.Screen() != game.ScreenActive || m.Resolved() {
		t.Fatal("dragging onto a bug should not count as a tap")
	}

	f.send(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	f.send(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	if m.Screen() == game.ScreenActive && !m.Resolved() {
		t.Error("a fresh press on a bug should resolve the round")
	}
}

func TestPumpEventsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan tcell.Event) // 无人接收，发送会一直阻塞
	done := make(chan struct{})
	go func() {
		pumpEvents(ctx, func() tcell.Event { return runeKey('x') }, out)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pumpEvents did not return after cancel")
	}
}

func TestPumpEventsStopsOnNil(t *testing.T) {
	out := make(chan tcell.Event, 2)
	sent := false
	poll := func() tcell.Event {
		if sent {
			return nil
		}
		sent = true
		return runeKey('x')
	}

	pumpEvents(context.Background(), poll, out)
	if len(out) != 1 {
		t.Errorf("forwarded %d events, want 1", len(out))
	}
}

func TestTUIShakeRequiresSimulation(t *testing.T) {
	screen := newTestScreen(t, 80, 40)
	app := NewApp(screen, Config{Game: config.DefaultGameConfig()})

	app.HandleEvent(key(tcell.KeyEnter))
	app.HandleEvent(key(tcell.KeyEnter))
	app.HandleEvent(runeKey('s'))
	app.Tick(frame)

	if got := app.Machine().Screen(); got != game.ScreenWaitingForShake {
		t.Errorf("screen = %v, want WaitingForShake without simulation", got)
	}
	app.Tick(0)
	if !strings.Contains(screen.text(), "Shake your phone to start!") {
		t.Error("default shake prompt missing")
	}
}

func TestTUIQuitAndBack(t *testing.T) {
	f := newTUIFixture(t, nil)

	if !f.send(key(tcell.KeyEnter)) {
		t.Fatal("Enter should not quit")
	}
	if !f.send(key(tcell.KeyEscape)) {
		t.Fatal("Esc on Rules should go back, not quit")
	}
	if got := f.app.Machine().Screen(); got != game.ScreenStart {
		t.Fatalf("screen = %v, want Start", got)
	}
	if f.send(key(tcell.KeyEscape)) {
		t.Error("Esc on Start should quit")
	}
	if f.send(runeKey('q')) {
		t.Error("q on Start should quit")
	}
	if f.send(key(tcell.KeyCtrlC)) {
		t.Error("Ctrl-C should quit")
	}
}

func TestTUIShareAndMenu(t *testing.T) {
	f := newTUIFixture(t, nil)
	f.toActive()
	f.send(runeKey(f.targetLabel()))

	f.send(runeKey('s'))
	if len(f.sharer.messages) != 1 || !strings.HasPrefix(f.sharer.messages[0], "I caught the ant in") {
		t.Fatalf("shared = %v", f.sharer.messages)
	}

	f.app.Tick(0)
	if !strings.Contains(f.screen.text(), "Shared!") {
		t.Error("status line should confirm the share")
	}
	for i := 0; i < 100; i++ {
		f.app.Tick(frame)
	}
	if strings.Contains(f.screen.text(), "Shared!") {
		t.Error("status line should clear")
	}

	f.send(key(tcell.KeyEnter))
	if got := f.app.Machine().Screen(); got != game.ScreenWaitingForShake {
		t.Fatalf("Play Again: screen = %v", got)
	}
}

func TestTUIResultMenu(t *testing.T) {
	f := newTUIFixture(t, nil)
	f.toActive()
	f.send(runeKey(f.targetLabel()))
	f.send(runeKey('m'))
	if got := f.app.Machine().Screen(); got != game.ScreenStart {
		t.Errorf("screen = %v, want Start", got)
	}
}

func TestTUIToggleSound(t *testing.T) {
	var played []beep.Streamer
	cue := newTestCue(&played)
	f := newTUIFixture(t, cue)

	f.send(runeKey('m'))
	if _, err := cue.PlayCue("SOUND_WIN"); err == nil {
		t.Error("cue should be muted after toggling")
	}
	f.app.Tick(0)
	if !strings.Contains(f.screen.text(), "Sound: Off") {
		t.Error("status should show Sound: Off")
	}

	f.send(runeKey('m'))
	if _, err := cue.PlayCue("SOUND_WIN"); err != nil {
		t.Errorf("cue should play after unmuting: %v", err)
	}
}

func TestTUIResize(t *testing.T) {
	f := newTUIFixture(t, nil)
	before := f.app.Machine().PlayArea()

	f.screen.SetSize(60, 30)
	f.send(tcell.NewEventResize(60, 30))

	after := f.app.Machine().PlayArea()
	if after == before {
		t.Fatal("play area should follow the terminal size")
	}
	want := game.Rect{MinX: 40, MinY: 150, MaxX: 60*cellWidth - 40, MaxY: 30*cellHeight - 100}
	if after != want {
		t.Errorf("play area = %+v, want %+v", after, want)
	}
}
