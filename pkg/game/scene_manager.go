package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 按界面创建对应的场景，避免 game 包依赖 scenes 包
type SceneFactory func(screen Screen) Scene

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time,
// and follows the state machine's current Screen through SyncTo.
type SceneManager struct {
	currentScene  Scene
	currentScreen Screen
	hasScreen     bool
	sceneFactory  SceneFactory     // 场景工厂函数，用于创建新场景
	scenes        map[Screen]Scene // 已创建的场景，每个界面只创建一次
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or SyncTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		scenes: make(map[Screen]Scene),
	}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The new scene's Update and Draw methods will be called on subsequent game loop iterations.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	sm.hasScreen = false
	if e, ok := scene.(Enterable); ok {
		e.OnEnter()
	}
}

// SyncTo 切换到指定界面对应的场景
// 界面未变化时不做任何事；场景通过工厂函数创建并缓存
func (sm *SceneManager) SyncTo(screen Screen) {
	if sm.hasScreen && sm.currentScreen == screen {
		return
	}

	scene, ok := sm.scenes[screen]
	if !ok {
		if sm.sceneFactory == nil {
			log.Printf("[SceneManager] 错误: SceneFactory 未设置")
			return
		}
		scene = sm.sceneFactory(screen)
		if scene == nil {
			log.Printf("[SceneManager] 错误: 无法创建场景: %s", screen)
			return
		}
		sm.scenes[screen] = scene
	}

	sm.SwitchTo(scene)
	sm.currentScreen = screen
	sm.hasScreen = true
	log.Printf("[SceneManager] 切换到场景: %s", screen)
}

// GetCurrentScene 返回当前活动的场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
