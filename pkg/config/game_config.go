package config

import (
	"fmt"
	"os"

	"github.com/decker502/bugcatch/pkg/types"
	"gopkg.in/yaml.v3"
)

// GameConfig 游戏节奏与判定配置
//
// 配置文件位置: assets/config/game.yaml（随程序嵌入）
// 所有时间单位均为秒，加速度单位为 g。
type GameConfig struct {
	// Shake 摇一摇检测配置
	Shake ShakeConfig `yaml:"shake"`

	// StartDelay 摇动后到虫子出现前的随机等待区间
	StartDelay DelayRange `yaml:"startDelay"`

	// Movement 虫子移动配置
	Movement MovementConfig `yaml:"movement"`

	// Roster 每回合的虫子组成，恰好一种为目标（蚂蚁）
	Roster []RosterEntry `yaml:"roster"`

	// PlayArea 可活动区域相对屏幕边缘的内缩量
	PlayArea PlayAreaInsets `yaml:"playArea"`

	// WinCueID 胜利音效的资源ID
	WinCueID string `yaml:"winCue"`
}

// ShakeConfig 摇一摇检测配置
type ShakeConfig struct {
	// Threshold 加速度模长阈值（g），超过即判定为摇动
	Threshold float64 `yaml:"threshold"`

	// SampleInterval 加速度计采样间隔（秒），0.2 即 5Hz
	SampleInterval float64 `yaml:"sampleInterval"`
}

// DelayRange 随机延迟区间
type DelayRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// MovementConfig 虫子移动配置
type MovementConfig struct {
	// Interval 两次重新定位之间的间隔（秒）
	Interval float64 `yaml:"interval"`

	// AnimDuration 单次移动动画时长（秒），必须小于 Interval
	AnimDuration float64 `yaml:"animDuration"`
}

// RosterEntry 某一种虫子在每回合中的数量
type RosterEntry struct {
	Kind  types.BugKind `yaml:"kind"`
	Count int           `yaml:"count"`
}

// PlayAreaInsets 可活动区域内缩量（逻辑像素）
type PlayAreaInsets struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

// TargetKind 目标虫子种类，目前固定为蚂蚁
const TargetKind = types.BugAnt

// DefaultGameConfig 返回默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Shake: ShakeConfig{
			Threshold:      2.5,
			SampleInterval: 0.2,
		},
		StartDelay: DelayRange{Min: 2, Max: 5},
		Movement: MovementConfig{
			Interval:     1.0,
			AnimDuration: 0.8,
		},
		Roster: []RosterEntry{
			{Kind: types.BugLadybug, Count: 2},
			{Kind: types.BugBeetle, Count: 2},
			{Kind: types.BugCaterpillar, Count: 2},
			{Kind: types.BugAnt, Count: 1},
		},
		PlayArea: PlayAreaInsets{Left: 40, Right: 40, Top: 150, Bottom: 100},
		WinCueID: "SOUND_WIN",
	}
}

// LoadGameConfig 从文件加载游戏配置
//
// 参数:
//   - path: 配置文件路径（如 "assets/config/game.yaml"）
//
// 返回:
//   - *GameConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 格式的游戏配置
//
// 未出现在 YAML 中的字段保留默认值。
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 阈值与采样间隔为正
//   - 延迟区间 0 <= Min <= Max
//   - 动画时长短于移动间隔
//   - 虫子组成中恰好有一只目标，且没有未知种类
//   - 内缩量非负
func (c *GameConfig) Validate() error {
	if c.Shake.Threshold <= 0 {
		return fmt.Errorf("shake threshold must be positive, got %.2f", c.Shake.Threshold)
	}
	if c.Shake.SampleInterval <= 0 {
		return fmt.Errorf("shake sample interval must be positive, got %.2f", c.Shake.SampleInterval)
	}

	if c.StartDelay.Min < 0 || c.StartDelay.Min > c.StartDelay.Max {
		return fmt.Errorf("start delay range invalid: min(%.2f) max(%.2f)", c.StartDelay.Min, c.StartDelay.Max)
	}

	if c.Movement.Interval <= 0 {
		return fmt.Errorf("movement interval must be positive, got %.2f", c.Movement.Interval)
	}
	if c.Movement.AnimDuration < 0 || c.Movement.AnimDuration >= c.Movement.Interval {
		return fmt.Errorf("movement anim duration (%.2f) must be in [0, interval(%.2f))",
			c.Movement.AnimDuration, c.Movement.Interval)
	}

	targets := 0
	for _, entry := range c.Roster {
		if entry.Kind == types.BugUnknown {
			return fmt.Errorf("roster contains unknown bug kind")
		}
		if entry.Count <= 0 {
			return fmt.Errorf("roster count for %s must be positive, got %d", entry.Kind, entry.Count)
		}
		if entry.Kind == TargetKind {
			targets += entry.Count
		}
	}
	if targets != 1 {
		return fmt.Errorf("roster must contain exactly one %s, got %d", TargetKind, targets)
	}

	if c.PlayArea.Left < 0 || c.PlayArea.Right < 0 || c.PlayArea.Top < 0 || c.PlayArea.Bottom < 0 {
		return fmt.Errorf("play area insets must not be negative")
	}

	return nil
}

// RosterSize 返回每回合虫子总数
func (c *GameConfig) RosterSize() int {
	total := 0
	for _, entry := range c.Roster {
		total += entry.Count
	}
	return total
}
