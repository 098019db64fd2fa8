package game

import (
	"errors"
	"fmt"
	"log"
	"time"
)

var (
	// ErrSoundDisabled 音效在设置中被关闭
	ErrSoundDisabled = errors.New("sound disabled")

	// ErrCueUnavailable 音效资源缺失或无法解码
	ErrCueUnavailable = errors.New("cue unavailable")
)

// AudioManager 音频管理器
// 职责：
//   - 统一管理游戏中所有音效的播放
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 实现 CuePlayer：播放胜利音效并返回时长，供状态机控制结果页的出现时机
type AudioManager struct {
	resourceManager *ResourceManager        // 资源管理器（用于加载音频）
	settingsManager *SettingsManager        // 设置管理器（用于读取音量设置，可为 nil）
	sounds          map[string]*SoundEffect // 音效缓存（资源ID -> 音效）
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频文件）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		sounds:          make(map[string]*SoundEffect),
	}
}

// PlayCue 播放音效并返回其播放时长
//
// 返回：
//   - time.Duration: 音效时长
//   - error: 音效关闭（ErrSoundDisabled）或资源不可用（ErrCueUnavailable）
func (am *AudioManager) PlayCue(soundID string) (time.Duration, error) {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return 0, ErrSoundDisabled
	}

	effect, err := am.getSound(soundID)
	if err != nil {
		return 0, err
	}

	effect.Player.SetVolume(am.getSoundVolume())
	if err := effect.Player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	effect.Player.Play()

	return effect.Duration, nil
}

// PlaySound 播放音效，不关心时长
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	_, err := am.PlayCue(soundID)
	return err == nil
}

// PreloadSounds 预加载音效，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds(soundIDs []string) {
	loaded := 0
	for _, soundID := range soundIDs {
		if _, err := am.getSound(soundID); err == nil {
			loaded++
		}
	}
	log.Printf("[AudioManager] Preloaded %d/%d sounds", loaded, len(soundIDs))
}

// getSound 获取或加载音效
func (am *AudioManager) getSound(soundID string) (*SoundEffect, error) {
	if effect, exists := am.sounds[soundID]; exists {
		return effect, nil
	}

	if am.resourceManager == nil {
		return nil, fmt.Errorf("%w: %s (no resource manager)", ErrCueUnavailable, soundID)
	}

	effect, err := am.resourceManager.LoadSoundEffectByID(soundID)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load sound %s: %v", soundID, err)
		return nil, fmt.Errorf("%w: %s: %v", ErrCueUnavailable, soundID, err)
	}

	am.sounds[soundID] = effect
	return effect, nil
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}
