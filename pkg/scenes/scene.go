// Package scenes 实现 Ebitengine 下每个界面的绘制与输入处理
//
// 场景只读取状态机的快照并把玩家操作转成状态机调用，不持有游戏状态。
package scenes

import (
	"github.com/decker502/bugcatch/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// tapSoundID 按钮点击音效
const tapSoundID = "SOUND_TAP"

// Deps 场景共享的依赖
type Deps struct {
	Machine  *game.Machine
	Audio    *game.AudioManager    // 可为 nil（无音频设备）
	Settings *game.SettingsManager // 可为 nil
	Fonts    *Fonts

	// ShakeHint 等待摇动时的额外提示（如桌面端模拟摇动的按键），可为空
	ShakeHint string
}

// playTap 播放按钮音效（音频不可用时静默）
func (d *Deps) playTap() {
	if d.Audio != nil {
		d.Audio.PlaySound(tapSoundID)
	}
}

// NewFactory 返回按界面创建场景的工厂函数
func NewFactory(deps *Deps) game.SceneFactory {
	return func(screen game.Screen) game.Scene {
		switch screen {
		case game.ScreenStart:
			return NewStartScene(deps)
		case game.ScreenRules:
			return NewRulesScene(deps)
		case game.ScreenWaitingForShake:
			return NewWaitingScene(deps, waitForShake)
		case game.ScreenWaitingBeforeStart:
			return NewWaitingScene(deps, waitForBugs)
		case game.ScreenActive:
			return NewPlayScene(deps)
		case game.ScreenResult:
			return NewResultScene(deps)
		default:
			return nil
		}
	}
}
