package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents the view of one Screen (start, rules, waiting, play, result).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Enterable 是一个可选接口，场景在每次成为当前场景时被调用 OnEnter()
//
// 用于重置按钮高亮、动画计时等只属于一次展示的状态。
type Enterable interface {
	OnEnter()
}
