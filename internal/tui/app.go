package tui

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/decker502/bugcatch/pkg/config"
	"github.com/decker502/bugcatch/pkg/game"
	"github.com/gdamore/tcell/v2"
)

const (
	// frameInterval 约 60 FPS
	frameInterval = 16 * time.Millisecond

	// statusDuration 状态行显示时长（秒）
	statusDuration = 1.5

	// simulatedShakeG 模拟摇动时注入的加速度（g）
	simulatedShakeG = 3.0
)

// Config 终端版启动配置
type Config struct {
	Game          *config.GameConfig
	Scores        game.HighScoreStore
	Cue           *BeepCue // 可为 nil，此时胜利后立即显示结果
	Sharer        game.Sharer
	SimulateShake bool
	Muted         bool
}

// App 终端版主循环：输入事件 + 固定帧率更新
type App struct {
	screen   tcell.Screen
	view     *View
	machine  *game.Machine
	cue      *BeepCue
	muted    bool
	simulate bool
	hint     string

	mouseDown bool // 上一个鼠标事件时左键是否按下

	status    string
	statusTTL float64
}

// NewApp 创建终端版应用
// screen 需已经 Init
func NewApp(screen tcell.Screen, cfg Config) *App {
	deps := game.MachineDeps{
		Detector: game.NewShakeDetector(cfg.Game.Shake.Threshold),
		Scores:   cfg.Scores,
		Sharer:   cfg.Sharer,
	}
	if cfg.Cue != nil {
		deps.Cue = cfg.Cue
	}

	a := &App{
		screen:   screen,
		view:     NewView(screen),
		machine:  game.NewMachine(cfg.Game, deps),
		cue:      cfg.Cue,
		simulate: cfg.SimulateShake,
		muted:    cfg.Muted,
	}
	if a.cue != nil {
		a.cue.SetMuted(a.muted)
	}
	if a.simulate {
		a.hint = "No accelerometer here: press [s] to shake"
	}
	a.resize()
	return a
}

// Machine 返回状态机
func (a *App) Machine() *game.Machine {
	return a.machine
}

// resize 终端尺寸变化时同步活动区域
func (a *App) resize() {
	w, h := a.view.LogicalSize()
	a.machine.SetScreenSize(w, h)
}

// Run 运行主循环，直到用户退出或 ctx 结束
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go pumpEvents(ctx, a.screen.PollEvent, events)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			a.Tick(now.Sub(last).Seconds())
			last = now
		}
	}
}

// pumpEvents 把 poll 读到的事件转发到 out，poll 返回 nil 或 ctx 结束时退出
func pumpEvents(ctx context.Context, poll func() tcell.Event, out chan<- tcell.Event) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// Tick 推进一帧并重绘
func (a *App) Tick(dt float64) {
	if a.statusTTL > 0 {
		a.statusTTL -= dt
		if a.statusTTL <= 0 {
			a.status = ""
		}
	}
	a.machine.Update(dt)
	a.view.Draw(a.machine.Snapshot(), a.hint, a.status)
}

// HandleEvent 处理一个输入事件
//
// 返回：
//   - bool: false 表示用户要求退出
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	case *tcell.EventMouse:
		// 按住拖动也会产生事件，只在按下的那一刻算点击
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !a.mouseDown {
			x, y := ev.Position()
			a.handleClick(x, y)
		}
		a.mouseDown = pressed
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return true
}

// handleClick 活动界面点击虫子
func (a *App) handleClick(col, row int) {
	if a.machine.Screen() != game.ScreenActive {
		return
	}
	if id, ok := BugAt(a.machine.Snapshot(), col, row); ok {
		a.tapBug(id)
	}
}

// tapBug 播放按键音后结算点击
func (a *App) tapBug(id game.BugID) {
	if a.cue != nil {
		if _, err := a.cue.PlayCue(tapCueID); err != nil && !errors.Is(err, game.ErrSoundDisabled) {
			log.Printf("[TUI] Tap click failed: %v", err)
		}
	}
	a.machine.TapBug(id)
}

// handleKey 按界面分发按键
func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}

	screen := a.machine.Screen()
	if ev.Key() == tcell.KeyEscape {
		if screen == game.ScreenStart {
			return false
		}
		a.machine.ReturnToStart()
		return true
	}

	enter := ev.Key() == tcell.KeyEnter
	r := ev.Rune()
	if ev.Key() != tcell.KeyRune {
		r = 0
	}

	switch screen {
	case game.ScreenStart:
		switch {
		case enter || r == 'p':
			a.machine.SelectPlay()
		case r == 'm':
			a.toggleSound()
		case r == 'q':
			return false
		}
	case game.ScreenRules:
		if enter {
			a.machine.SelectStart()
		}
	case game.ScreenWaitingForShake:
		if r == 's' && a.simulate {
			a.machine.Detector().Feed(game.Acceleration{X: simulatedShakeG})
		}
	case game.ScreenActive:
		if r >= '1' && r <= '9' {
			if id, ok := BugByLabel(a.machine.Snapshot(), int(r-'0')); ok {
				a.tapBug(id)
			}
		}
	case game.ScreenResult:
		switch {
		case enter:
			a.machine.SelectPlayAgain()
		case r == 's':
			a.machine.Share()
			a.setStatus("Shared!")
		case r == 'm':
			a.machine.ReturnToStart()
		}
	}
	return true
}

// toggleSound 切换静音
func (a *App) toggleSound() {
	a.muted = !a.muted
	if a.cue != nil {
		a.cue.SetMuted(a.muted)
	}
	if a.muted {
		a.setStatus("Sound: Off")
	} else {
		a.setStatus("Sound: On")
	}
	log.Printf("[TUI] Sound muted: %v", a.muted)
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusTTL = statusDuration
}
