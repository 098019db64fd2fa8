package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/bugcatch/pkg/app"
	"github.com/decker502/bugcatch/pkg/config"
	"github.com/decker502/bugcatch/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "外部游戏配置文件（默认使用内嵌的 assets/config/game.yaml）")
	simulateShake := flag.Bool("simulate-shake", true, "允许按 S 键模拟摇动（桌面端没有加速度计）")
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(assetsFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:       *verbose,
		ConfigPath:    *configPath,
		SimulateShake: *simulateShake,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Bug Catch")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
