// bugcatch-tui 终端版抓虫游戏
//
// 终端没有加速度计，默认用 s 键模拟摇动；鼠标点击或按数字键抓虫。
// 标准输出被屏幕占用，日志写到 -log 指定的文件。
//
// 用法：
//
//	go run ./cmd/bugcatch-tui -log bugcatch.log
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/decker502/bugcatch/internal/tui"
	"github.com/decker502/bugcatch/pkg/config"
	"github.com/decker502/bugcatch/pkg/game"
	"github.com/gdamore/tcell/v2"
)

var (
	logPath       = flag.String("log", "", "日志文件路径（为空则不记录）")
	mute          = flag.Bool("mute", false, "关闭音效")
	simulateShake = flag.Bool("simulate-shake", true, "允许按 s 键模拟摇动")
	configPath    = flag.String("config", "", "外部游戏配置文件（默认使用内置配置）")
)

func main() {
	flag.Parse()

	closeLog, err := setupLog(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	gameCfg := config.DefaultGameConfig()
	if *configPath != "" {
		if gameCfg, err = config.LoadGameConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "游戏配置加载失败: %v\n", err)
			os.Exit(1)
		}
	}

	if err := run(gameCfg); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(gameCfg *config.GameConfig) error {
	// 与 GUI 共用同一份存档
	gameState := game.GetGameState()
	muted := *mute || !gameState.GetSettingsManager().GetSettings().SoundEnabled

	cue := tui.NewBeepCue(gameCfg.WinCueID)
	if err := cue.Init(); err != nil {
		log.Printf("[TUI] Audio unavailable: %v (results show immediately)", err)
	}
	defer cue.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	app := tui.NewApp(screen, tui.Config{
		Game:          gameCfg,
		Scores:        gameState.GetScoreStore(),
		Cue:           cue,
		Sharer:        game.LogSharer{},
		SimulateShake: *simulateShake,
		Muted:         muted,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return app.Run(ctx)
}

// setupLog 把日志写到文件，未指定时丢弃
func setupLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	log.SetOutput(f)
	return func() { f.Close() }, nil
}
