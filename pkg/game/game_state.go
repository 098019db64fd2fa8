package game

import (
	"log"

	"github.com/decker502/bugcatch/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "bugcatch"

// GameState 存储进程级全局状态
// 这是一个单例，持有跨回合存活的存储：设置与最佳成绩
type GameState struct {
	gdataManager    *gdata.Manager   // 可为 nil（降级模式，仅内存）
	settingsManager *SettingsManager // 全局设置
	scoreStore      *ScoreStore      // 最佳反应时间与胜负统计
	audioManager    *AudioManager    // 由 App 初始化后注入
}

// 全局单例实例
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，确保整个游戏生命周期只有一个实例
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = newGameState(openGdataManager())
	}
	return globalGameState
}

func newGameState(manager *gdata.Manager) *GameState {
	return &GameState{
		gdataManager:    manager,
		settingsManager: NewSettingsManager(manager),
		scoreStore:      NewScoreStore(manager),
	}
}

// openGdataManager 打开 gdata 存储
// 失败时返回 nil，游戏以纯内存模式运行（成绩不会保存）
func openGdataManager() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[GameState] Warning: Failed to prepare storage dir: %v", err)
	}

	manager, err := gdata.Open(gdata.Config{
		AppName: AppName,
	})
	if err != nil {
		log.Printf("[GameState] Warning: Failed to open gdata storage: %v (scores will not persist)", err)
		return nil
	}
	if dir := utils.GetStoragePath(); dir != "" {
		log.Printf("[GameState] Storage path: %s", dir)
	}
	return manager
}

// GetGdataManager 返回 gdata 管理器（可能为 nil）
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// GetScoreStore 返回成绩存储
func (gs *GameState) GetScoreStore() *ScoreStore {
	return gs.scoreStore
}

// SetAudioManager 注入音频管理器
func (gs *GameState) SetAudioManager(am *AudioManager) {
	gs.audioManager = am
}

// GetAudioManager 返回音频管理器（未初始化时为 nil）
func (gs *GameState) GetAudioManager() *AudioManager {
	return gs.audioManager
}
