// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/bugcatch/pkg/config"
	"github.com/decker502/bugcatch/pkg/embedded"
	"github.com/decker502/bugcatch/pkg/game"
	"github.com/decker502/bugcatch/pkg/scenes"
	"github.com/decker502/bugcatch/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// gameConfigPath 内嵌的游戏配置
	gameConfigPath = "assets/config/game.yaml"

	// resourceConfigPath 内嵌的资源配置
	resourceConfigPath = "assets/config/resources.yaml"

	// audioSampleRate 音频上下文采样率
	audioSampleRate = 48000

	// simulatedShakeG 模拟摇动时注入的加速度（g），高于默认阈值
	simulatedShakeG = 3.0
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部游戏配置文件路径，为空则使用内嵌配置
	ConfigPath string
	// SimulateShake 允许用 S 键模拟摇动（桌面端没有加速度计）
	SimulateShake bool
	// Sensor 加速度计数据源，nil 表示没有传感器
	Sensor game.AccelerometerSource
	// Sharer 分享出口，nil 时输出到标准输出
	Sharer game.Sharer
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	machine                  *game.Machine
	sceneManager             *game.SceneManager
	detector                 *game.ShakeDetector
	settings                 *game.SettingsManager
	cancelSensor             context.CancelFunc
	simulateShake            bool
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameCfg, err := loadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(audioSampleRate)

	// 创建资源管理器并加载资源配置
	resourceManager := game.NewResourceManager(embedded.FS(), audioContext)
	if err := resourceManager.LoadResourceConfig(resourceConfigPath); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}

	// 初始化 AudioManager 并设置到 GameState
	gameState := game.GetGameState()
	audioManager := game.NewAudioManager(resourceManager, gameState.GetSettingsManager())
	audioManager.PreloadSounds(resourceManager.PreloadIDs())
	gameState.SetAudioManager(audioManager)
	log.Printf("[App] AudioManager initialized")

	// 启动传感器采样
	detector := game.NewShakeDetector(gameCfg.Shake.Threshold)
	sensor := cfg.Sensor
	if sensor == nil {
		sensor = game.UnavailableSource{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	interval := time.Duration(gameCfg.Shake.SampleInterval * float64(time.Second))
	go detector.Run(ctx, sensor, interval)

	// 真机有加速度计，不需要模拟
	simulate := cfg.SimulateShake && !utils.IsMobile()

	sharer := cfg.Sharer
	if sharer == nil {
		sharer = game.LogSharer{Out: os.Stdout}
	}

	machine := game.NewMachine(gameCfg, game.MachineDeps{
		Detector: detector,
		Scores:   gameState.GetScoreStore(),
		Cue:      audioManager,
		Sharer:   sharer,
	})

	fonts, err := scenes.NewFonts()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	deps := &scenes.Deps{
		Machine:  machine,
		Audio:    audioManager,
		Settings: gameState.GetSettingsManager(),
		Fonts:    fonts,
	}
	if simulate {
		deps.ShakeHint = "Press S to simulate a shake"
	}

	if gameState.GetSettingsManager().GetSettings().Fullscreen && !utils.IsMobile() {
		ebiten.SetFullscreen(true)
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(scenes.NewFactory(deps))
	sceneManager.SyncTo(machine.Screen())

	return &App{
		machine:       machine,
		sceneManager:  sceneManager,
		detector:      detector,
		settings:      gameState.GetSettingsManager(),
		cancelSensor:  cancel,
		simulateShake: simulate,
		verbose:       cfg.Verbose,
	}, nil
}

// loadGameConfig 加载游戏配置
// 指定了外部文件时加载失败即报错；内嵌配置异常时退回默认值
func loadGameConfig(path string) (*config.GameConfig, error) {
	if path != "" {
		cfg, err := config.LoadGameConfig(path)
		if err != nil {
			return nil, fmt.Errorf("游戏配置加载失败: %w", err)
		}
		log.Printf("[Config] Loaded game config from %s", path)
		return cfg, nil
	}

	data, err := embedded.ReadFile(gameConfigPath)
	if err != nil {
		log.Printf("[Config] Warning: %v (using defaults)", err)
		return config.DefaultGameConfig(), nil
	}
	cfg, err := config.ParseGameConfig(data)
	if err != nil {
		log.Printf("[Config] Warning: %v (using defaults)", err)
		return config.DefaultGameConfig(), nil
	}
	return cfg, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏，并记住选择
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if !a.settings.ToggleFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.machine.ReturnToStart()
	}
	if a.simulateShake && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.detector.Feed(game.Acceleration{X: simulatedShakeG})
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	a.machine.Update(deltaTime)
	a.sceneManager.SyncTo(a.machine.Screen())
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Machine 返回状态机
func (a *App) Machine() *game.Machine {
	return a.machine
}

// Close 停止传感器采样
func (a *App) Close() {
	if a.cancelSensor != nil {
		a.cancelSensor()
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
