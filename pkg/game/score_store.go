package game

import (
	"log"
	"math"

	"github.com/quasilyte/gdata/v2"
)

// HighScoreStore 最佳反应时间的存取接口
//
// Get 在从未记录时返回 +Inf。状态机只会用严格更小的值调用 Set，
// 存储本身不负责保证单调性。
type HighScoreStore interface {
	Get() float64
	Set(value float64) error
}

// RoundRecorder 可选接口，实现后状态机会在每回合结束时记录胜负
type RoundRecorder interface {
	RecordWin() error
	RecordLoss() error
}

// ScoreRecord 持久化的成绩记录
type ScoreRecord struct {
	// BestReactionTime 最佳反应时间（秒），未记录时不写入
	BestReactionTime *float64 `yaml:"bestReactionTime,omitempty"`
	Wins             int      `yaml:"wins"`
	Losses           int      `yaml:"losses"`
}

// 存储路径常量
const (
	scoresObject   = "scores"
	scoresProperty = "best"
)

// ScoreStore 成绩存储
//
// 职责：
//   - 读写最佳反应时间（默认 +Inf 表示尚无成绩）
//   - 记录胜负次数
//
// 数据以 YAML 序列化后存入 gdata；gdataManager 为 nil 时仅保存在内存中（降级模式）。
type ScoreStore struct {
	gdataManager *gdata.Manager
	best         float64
	wins         int
	losses       int
}

// NewScoreStore 创建成绩存储并加载已有记录
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 返回：
//   - *ScoreStore: 成绩存储实例（加载失败时使用默认值，只记录日志）
func NewScoreStore(gdataManager *gdata.Manager) *ScoreStore {
	s := &ScoreStore{
		gdataManager: gdataManager,
		best:         math.Inf(1),
	}

	if err := s.Load(); err != nil {
		log.Printf("[ScoreStore] Warning: Failed to load scores: %v (starting fresh)", err)
	}

	return s
}

// Load 从 gdata 加载成绩记录
func (s *ScoreStore) Load() error {
	s.best = math.Inf(1)
	s.wins = 0
	s.losses = 0

	var record ScoreRecord
	found, err := loadYAMLProp(s.gdataManager, scoresObject, scoresProperty, &record)
	if err != nil || !found {
		return err
	}

	if record.BestReactionTime != nil && *record.BestReactionTime >= 0 && !math.IsNaN(*record.BestReactionTime) {
		s.best = *record.BestReactionTime
	}
	s.wins = record.Wins
	s.losses = record.Losses

	log.Printf("[ScoreStore] Scores loaded (best: %s, wins: %d, losses: %d)", FormatBest(s.best), s.wins, s.losses)
	return nil
}

// Save 把当前记录写入 gdata（降级模式下直接返回 nil）
func (s *ScoreStore) Save() error {
	return saveYAMLProp(s.gdataManager, scoresObject, scoresProperty, s.Record())
}

// Get 返回最佳反应时间（秒），尚无成绩时返回 +Inf
func (s *ScoreStore) Get() float64 {
	return s.best
}

// Set 写入新的最佳反应时间并立即持久化
func (s *ScoreStore) Set(value float64) error {
	s.best = value
	return s.Save()
}

// RecordWin 记录一次胜利
func (s *ScoreStore) RecordWin() error {
	s.wins++
	return s.Save()
}

// RecordLoss 记录一次失败
func (s *ScoreStore) RecordLoss() error {
	s.losses++
	return s.Save()
}

// Wins 返回胜利次数
func (s *ScoreStore) Wins() int {
	return s.wins
}

// Losses 返回失败次数
func (s *ScoreStore) Losses() int {
	return s.losses
}

// Record 返回当前记录的副本
func (s *ScoreStore) Record() ScoreRecord {
	record := ScoreRecord{Wins: s.wins, Losses: s.losses}
	if !math.IsInf(s.best, 1) {
		best := s.best
		record.BestReactionTime = &best
	}
	return record
}

// FormatBest 格式化最佳时间，尚无成绩时返回 "-"
func FormatBest(best float64) string {
	if math.IsInf(best, 1) {
		return "-"
	}
	return FormatSeconds(best)
}
