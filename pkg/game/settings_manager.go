package game

import (
	"log"

	"github.com/decker502/bugcatch/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// GameSettings 玩家设置，跨回合、跨进程保留
type GameSettings struct {
	SoundVolume  float64 `yaml:"soundVolume"`  // 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // 开始页的音效开关
	Fullscreen   bool    `yaml:"fullscreen"`   // 桌面端，F11 切换后记住
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundVolume:  0.8,
		SoundEnabled: true,
	}
}

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// SettingsManager 设置管理器
// 数据存在 gdata 的 settings/global 下；store 为 nil 时只保存在内存中
type SettingsManager struct {
	store    *gdata.Manager
	settings GameSettings
}

// NewSettingsManager 创建设置管理器并加载已保存的设置
//
// 参数：
//   - store: gdata 存储，可为 nil（降级模式）
//
// 返回：
//   - *SettingsManager: 加载失败时使用默认设置，只记录日志
func NewSettingsManager(store *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		store:    store,
		settings: *DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: %v (using defaults)", err)
	}
	return sm
}

// Load 重新读取设置，记录不存在或损坏时恢复默认值
func (sm *SettingsManager) Load() error {
	loaded := *DefaultSettings()
	found, err := loadYAMLProp(sm.store, settingsObject, settingsProperty, &loaded)
	if err != nil || !found {
		sm.settings = *DefaultSettings()
		return err
	}

	loaded.SoundVolume = utils.Clamp01(loaded.SoundVolume)
	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded (sound: %v, volume: %.2f)", loaded.SoundEnabled, loaded.SoundVolume)
	return nil
}

// Save 持久化当前设置
func (sm *SettingsManager) Save() error {
	return saveYAMLProp(sm.store, settingsObject, settingsProperty, sm.settings)
}

// GetSettings 返回当前设置（可直接读取，修改请用 Set* 方法）
func (sm *SettingsManager) GetSettings() *GameSettings {
	return &sm.settings
}

// SetSoundVolume 设置音量，超出 [0, 1] 的值会被截断
// 只修改内存，需调用 Save 持久化
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = utils.Clamp01(volume)
}

// SetSoundEnabled 设置音效开关，需调用 Save 持久化
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetFullscreen 设置全屏，需调用 Save 持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// ToggleSound 切换音效开关并立即保存，返回新的状态
func (sm *SettingsManager) ToggleSound() bool {
	sm.settings.SoundEnabled = !sm.settings.SoundEnabled
	sm.saveOrWarn()
	return sm.settings.SoundEnabled
}

// ToggleFullscreen 切换全屏并立即保存，返回新的状态
func (sm *SettingsManager) ToggleFullscreen() bool {
	sm.settings.Fullscreen = !sm.settings.Fullscreen
	sm.saveOrWarn()
	return sm.settings.Fullscreen
}

func (sm *SettingsManager) saveOrWarn() {
	if err := sm.Save(); err != nil {
		log.Printf("[SettingsManager] Warning: %v", err)
	}
}
