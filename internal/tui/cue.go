package tui

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/decker502/bugcatch/pkg/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// cueSampleRate 终端音效的采样率
const cueSampleRate = beep.SampleRate(44100)

// tapCueID 按键音 ID（与 resources.yaml 一致）
const tapCueID = "SOUND_TAP"

// note 合成音效中的一个音符
type note struct {
	freq float64
	dur  time.Duration
}

// winChime C 大调上行琶音
var winChime = []note{
	{freq: 523.25, dur: 120 * time.Millisecond},
	{freq: 659.25, dur: 120 * time.Millisecond},
	{freq: 783.99, dur: 120 * time.Millisecond},
	{freq: 1046.50, dur: 320 * time.Millisecond},
}

// tapClick 按键反馈
var tapClick = []note{
	{freq: 880, dur: 40 * time.Millisecond},
}

// BeepCue 终端版的 CuePlayer，用 beep 实时合成音效
//
// 播放时长由合成的采样数换算，和 GUI 版从解码长度换算一致。
// 扬声器初始化失败时 PlayCue 返回错误，状态机立即显示结果。
type BeepCue struct {
	mu    sync.Mutex
	rate  beep.SampleRate
	ready bool
	muted bool
	cues  map[string][]note
	play  func(beep.Streamer)
}

// NewBeepCue 创建终端音效播放器
//
// 参数：
//   - winCueID: 胜利音效 ID（与 GameConfig.WinCueID 一致）
func NewBeepCue(winCueID string) *BeepCue {
	return &BeepCue{
		rate: cueSampleRate,
		cues: map[string][]note{
			winCueID: winChime,
			tapCueID: tapClick,
		},
	}
}

// Init 初始化扬声器
func (c *BeepCue) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready {
		return nil
	}
	if err := speaker.Init(c.rate, c.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	c.play = func(s beep.Streamer) { speaker.Play(s) }
	c.ready = true
	return nil
}

// Close 关闭扬声器
func (c *BeepCue) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready && c.play != nil {
		speaker.Close()
	}
	c.ready = false
}

// SetMuted 静音开关
func (c *BeepCue) SetMuted(muted bool) {
	c.mu.Lock()
	c.muted = muted
	c.mu.Unlock()
}

// PlayCue 合成并播放音效，返回播放时长
func (c *BeepCue) PlayCue(name string) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.muted {
		return 0, game.ErrSoundDisabled
	}
	if !c.ready {
		return 0, fmt.Errorf("%w: %s (speaker not initialized)", game.ErrCueUnavailable, name)
	}
	notes, ok := c.cues[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", game.ErrCueUnavailable, name)
	}

	stream, samples, err := synthesize(c.rate, notes)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", game.ErrCueUnavailable, name, err)
	}
	c.play(beep.Seq(stream, beep.Callback(func() {
		log.Printf("[Cue] %s finished", name)
	})))

	return c.rate.D(samples), nil
}

// synthesize 把音符序列合成为一个有限长度的流
//
// 返回：
//   - beep.Streamer: 音效流
//   - int: 总采样数
func synthesize(rate beep.SampleRate, notes []note) (beep.Streamer, int, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	total := 0
	for _, n := range notes {
		tone, err := generators.SineTone(rate, n.freq)
		if err != nil {
			return nil, 0, fmt.Errorf("tone %.2f Hz: %w", n.freq, err)
		}
		samples := rate.N(n.dur)
		quiet := &effects.Volume{Streamer: tone, Base: 2, Volume: -2}
		parts = append(parts, beep.Take(samples, quiet))
		total += samples
	}
	return beep.Seq(parts...), total, nil
}
