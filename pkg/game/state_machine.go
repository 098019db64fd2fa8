package game

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/decker502/bugcatch/pkg/components"
	"github.com/decker502/bugcatch/pkg/config"
)

// Screen 当前界面
type Screen int

const (
	ScreenStart              Screen = iota // 开始页
	ScreenRules                            // 规则说明
	ScreenWaitingForShake                  // 等待摇动
	ScreenWaitingBeforeStart               // 摇动后的随机等待
	ScreenActive                           // 回合进行中
	ScreenResult                           // 结果页
)

var screenNames = [...]string{
	ScreenStart:              "Start",
	ScreenRules:              "Rules",
	ScreenWaitingForShake:    "WaitingForShake",
	ScreenWaitingBeforeStart: "WaitingBeforeStart",
	ScreenActive:             "Active",
	ScreenResult:             "Result",
}

// String 返回界面名称
func (s Screen) String() string {
	if s < 0 || int(s) >= len(screenNames) {
		return fmt.Sprintf("Screen(%d)", int(s))
	}
	return screenNames[s]
}

// Outcome 回合结果
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
)

// String 返回结果名称
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "none"
	}
}

// RoundResult 一回合的结算信息
type RoundResult struct {
	Outcome      Outcome
	ReactionTime time.Duration // 仅胜利时有效
	Formatted    string        // 保留两位小数的秒数，如 "1.84"
	NewBest      bool          // 是否刷新了最佳成绩
}

// CuePlayer 音效播放接口
//
// PlayCue 开始播放并返回播放时长；资源缺失或播放失败时返回错误，
// 状态机此时按时长 0 处理。
type CuePlayer interface {
	PlayCue(name string) (time.Duration, error)
}

// MachineDeps 状态机的外部协作者
//
// 除 Detector 外都可以省略：
//   - Scores 为 nil 时使用不持久化的 ScoreStore
//   - Cue 为 nil 时胜利后立即进入结果页
//   - Sharer 为 nil 时 Share 只返回消息
//   - Now 为 nil 时使用 time.Now
//   - Rand 为 nil 时使用以当前时间为种子的随机源
type MachineDeps struct {
	Detector *ShakeDetector
	Scores   HighScoreStore
	Cue      CuePlayer
	Sharer   Sharer
	Now      func() time.Time
	Rand     *rand.Rand
}

// Machine 游戏状态机
//
// 持有界面、回合计时、虫子列表和最佳成绩的更新逻辑。
// 所有方法都只能在主循环上调用；传感器 goroutine 只通过 ShakeDetector 交接信号，
// 计时器都是帧驱动的，由 Update 推进。
//
// 状态流转：
//
//	Start -> Rules -> WaitingForShake -> WaitingBeforeStart -> Active -> Result
//	Result -> WaitingForShake（再来一局）
//	任意界面 -> Start（ReturnToStart，取消所有计时器）
type Machine struct {
	cfg      *config.GameConfig
	detector *ShakeDetector
	scores   HighScoreStore
	cue      CuePlayer
	sharer   Sharer
	now      func() time.Time
	rng      *rand.Rand

	screen   Screen
	playArea Rect

	roster    Roster
	scheduler *MovementScheduler

	startTimer *components.Timer // 摇动后的随机等待
	cueTimer   *components.Timer // 胜利音效播放期间

	startTime time.Time
	started   bool // startTime 是否有效
	resolved  bool // 本回合是否已经结算

	result    RoundResult
	shareTime string // 可分享的反应时间，输掉一局时清空
}

// NewMachine 创建状态机，初始界面为 Start
//
// 参数：
//   - cfg: 游戏配置，nil 时使用默认配置
//   - deps: 外部协作者
func NewMachine(cfg *config.GameConfig, deps MachineDeps) *Machine {
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}

	m := &Machine{
		cfg:        cfg,
		detector:   deps.Detector,
		scores:     deps.Scores,
		cue:        deps.Cue,
		sharer:     deps.Sharer,
		now:        deps.Now,
		rng:        deps.Rand,
		screen:     ScreenStart,
		startTimer: components.NewTimer("start_delay"),
		cueTimer:   components.NewTimer("win_cue"),
	}

	if m.detector == nil {
		m.detector = NewShakeDetector(cfg.Shake.Threshold)
	}
	if m.scores == nil {
		m.scores = NewScoreStore(nil)
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m.scheduler = NewMovementScheduler(m.rng)
	m.playArea = PlayAreaFor(config.GameWindowWidth, config.GameWindowHeight, cfg.PlayArea)

	return m
}

// Config 返回状态机使用的配置
func (m *Machine) Config() *config.GameConfig {
	return m.cfg
}

// Detector 返回摇一摇检测器
func (m *Machine) Detector() *ShakeDetector {
	return m.detector
}

// Screen 返回当前界面
func (m *Machine) Screen() Screen {
	return m.screen
}

// SelectPlay 开始页点击 Play：Start -> Rules
func (m *Machine) SelectPlay() bool {
	if m.screen != ScreenStart {
		return false
	}
	m.setScreen(ScreenRules)
	return true
}

// SelectStart 规则页点击 Start：Rules -> WaitingForShake
func (m *Machine) SelectStart() bool {
	if m.screen != ScreenRules {
		return false
	}
	m.enterWaitingForShake()
	return true
}

// SelectPlayAgain 结果页点击 Play Again：Result -> WaitingForShake
func (m *Machine) SelectPlayAgain() bool {
	if m.screen != ScreenResult {
		return false
	}
	m.enterWaitingForShake()
	return true
}

// ReturnToStart 从任意界面回到开始页，取消所有未触发的计时器
func (m *Machine) ReturnToStart() {
	m.stopTimers()
	m.roster = nil
	m.started = false
	m.resolved = false
	m.setScreen(ScreenStart)
}

// SetPlayArea 设置虫子的活动区域
// 回合开始时以及每次移动时使用最新的区域
func (m *Machine) SetPlayArea(area Rect) {
	m.playArea = area
	m.scheduler.SetBounds(area)
}

// SetScreenSize 按屏幕尺寸和配置的内缩量计算活动区域
func (m *Machine) SetScreenSize(width, height float64) {
	m.SetPlayArea(PlayAreaFor(width, height, m.cfg.PlayArea))
}

// PlayArea 返回当前活动区域
func (m *Machine) PlayArea() Rect {
	return m.playArea
}

// Update 推进一帧
//
// 顺序：处理摇动信号 -> 推进开局等待 -> 推进虫子移动 -> 推进胜利音效等待
//
// 参数：
//   - dt: 本帧经过的时间（秒）
func (m *Machine) Update(dt float64) {
	m.pollShake()

	if m.startTimer.Advance(dt) > 0 {
		m.beginRound()
	}

	m.scheduler.Update(dt)

	if m.cueTimer.Advance(dt) > 0 {
		m.revealResult()
	}
}

// pollShake 消费传感器交接过来的摇动信号
func (m *Machine) pollShake() {
	// 丢弃其他界面期间积累的通知，信号本身由 Reset 负责清除
	select {
	case <-m.detector.Events():
	default:
	}

	if m.screen != ScreenWaitingForShake || !m.detector.Detected() {
		return
	}

	m.detector.Reset()
	delay := m.randomStartDelay()
	m.startTimer.Start(delay)
	m.setScreen(ScreenWaitingBeforeStart)
	log.Printf("[Machine] Shake detected, bugs arrive in %.2fs", delay)
}

func (m *Machine) randomStartDelay() float64 {
	lo, hi := m.cfg.StartDelay.Min, m.cfg.StartDelay.Max
	return lo + m.rng.Float64()*(hi-lo)
}

// beginRound 进入 Active：记录开始时间、生成新的虫子并启动移动
func (m *Machine) beginRound() {
	if m.screen != ScreenWaitingBeforeStart {
		return
	}

	m.startTime = m.now()
	m.started = true
	m.resolved = false
	m.result = RoundResult{}
	m.roster = NewRoster(m.playArea, m.cfg.Roster, m.rng)
	m.scheduler.Start(&m.roster, m.playArea, m.cfg.Movement.Interval)
	m.setScreen(ScreenActive)

	log.Printf("[Machine] Round started with %d bugs (run #%d)", len(m.roster), m.scheduler.Generation())
}

// TapBug 处理玩家点击虫子
//
// 每个回合只有第一次有效点击会结算；结算后、非 Active 界面或未知 ID 的点击都被忽略。
//
// 返回：
//   - bool: 点击是否产生了效果
func (m *Machine) TapBug(id BugID) bool {
	if m.screen != ScreenActive || m.resolved || !m.started {
		return false
	}

	bug, ok := m.roster.Find(id)
	if !ok {
		return false
	}

	m.resolved = true
	m.scheduler.Stop()
	m.roster.Settle()

	if bug.IsTarget {
		m.resolveWin(bug)
	} else {
		m.resolveLoss(bug)
	}
	return true
}

func (m *Machine) resolveLoss(bug Bug) {
	m.started = false
	m.roster = nil
	m.shareTime = ""
	m.result = RoundResult{Outcome: OutcomeLoss}

	if rec, ok := m.scores.(RoundRecorder); ok {
		if err := rec.RecordLoss(); err != nil {
			log.Printf("[Machine] Warning: Failed to record loss: %v", err)
		}
	}

	log.Printf("[Machine] Wrong bug tapped (%s)", bug.Kind)
	m.setScreen(ScreenResult)
}

func (m *Machine) resolveWin(bug Bug) {
	elapsed := m.now().Sub(m.startTime)
	if elapsed < 0 {
		elapsed = 0
	}
	m.started = false

	seconds := elapsed.Seconds()
	formatted := FormatSeconds(seconds)

	newBest := seconds < m.scores.Get()
	if newBest {
		if err := m.scores.Set(seconds); err != nil {
			log.Printf("[Machine] Warning: Failed to save best time: %v", err)
		}
	}

	if rec, ok := m.scores.(RoundRecorder); ok {
		if err := rec.RecordWin(); err != nil {
			log.Printf("[Machine] Warning: Failed to record win: %v", err)
		}
	}

	m.result = RoundResult{
		Outcome:      OutcomeWin,
		ReactionTime: elapsed,
		Formatted:    formatted,
		NewBest:      newBest,
	}
	m.shareTime = formatted
	m.roster = Roster{bug}

	log.Printf("[Machine] Ant caught in %ss (new best: %v)", formatted, newBest)

	delay := m.playWinCue()
	if delay <= 0 {
		m.revealResult()
		return
	}
	m.cueTimer.Start(delay.Seconds())
}

// playWinCue 播放胜利音效，返回需要等待的时长（失败时为 0）
func (m *Machine) playWinCue() time.Duration {
	if m.cue == nil {
		return 0
	}
	d, err := m.cue.PlayCue(m.cfg.WinCueID)
	if err != nil {
		log.Printf("[Machine] Win cue skipped: %v", err)
		return 0
	}
	return d
}

func (m *Machine) revealResult() {
	if m.screen != ScreenActive || !m.resolved {
		return
	}
	m.setScreen(ScreenResult)
}

func (m *Machine) enterWaitingForShake() {
	m.stopTimers()
	m.detector.Reset()
	m.roster = nil
	m.started = false
	m.resolved = false
	m.result = RoundResult{}
	m.setScreen(ScreenWaitingForShake)
}

func (m *Machine) stopTimers() {
	m.startTimer.Stop()
	m.cueTimer.Stop()
	m.scheduler.Stop()
}

func (m *Machine) setScreen(s Screen) {
	if m.screen == s {
		return
	}
	log.Printf("[Machine] %s -> %s", m.screen, s)
	m.screen = s
}

// Result 返回最近一次结算结果（尚未结算时 Outcome 为 OutcomeNone）
func (m *Machine) Result() RoundResult {
	return m.result
}

// Resolved 本回合是否已经结算
func (m *Machine) Resolved() bool {
	return m.resolved
}

// Bugs 返回当前虫子的副本
func (m *Machine) Bugs() Roster {
	return m.roster.Clone()
}

// BestTime 返回最佳反应时间（秒），尚无成绩时为 +Inf
func (m *Machine) BestTime() float64 {
	return m.scores.Get()
}

// Message 返回结果页标题
func (m *Machine) Message() string {
	switch m.result.Outcome {
	case OutcomeWin:
		return fmt.Sprintf("🎉 You caught the ant in %s seconds!", m.result.Formatted)
	case OutcomeLoss:
		return "💀 You tapped the wrong bug!"
	default:
		return ""
	}
}

// BestLine 返回最佳成绩行，尚无成绩时为空
func (m *Machine) BestLine() string {
	best := m.scores.Get()
	if math.IsInf(best, 1) {
		return ""
	}
	return fmt.Sprintf("🏆 Best Time: %s seconds", FormatSeconds(best))
}

// ShareMessage 返回分享内容
func (m *Machine) ShareMessage() string {
	if m.shareTime == "" {
		return "Try this fun bug-catching reaction game!"
	}
	return fmt.Sprintf("I caught the ant in %s seconds! Can you beat my score?", m.shareTime)
}

// Share 把分享内容交给 Sharer，并返回该内容
func (m *Machine) Share() string {
	msg := m.ShareMessage()
	if m.sharer != nil {
		m.sharer.Share(msg)
	}
	return msg
}

// MoveProgress 返回当前移动动画的线性进度 [0, 1]
func (m *Machine) MoveProgress() float64 {
	if !m.scheduler.Active() {
		return 1
	}
	anim := m.cfg.Movement.AnimDuration
	if anim <= 0 {
		return 1
	}
	p := m.scheduler.SinceTick() / anim
	if p > 1 {
		return 1
	}
	return p
}

// Snapshot 渲染用的只读快照，与状态机内部数据不共享
type Snapshot struct {
	Screen       Screen
	Bugs         Roster
	MoveProgress float64
	Resolved     bool
	Result       RoundResult
	BestTime     float64
	Message      string
	BestLine     string
	ShareMessage string
	PlayArea     Rect
}

// Snapshot 返回当前状态的快照
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Screen:       m.screen,
		Bugs:         m.roster.Clone(),
		MoveProgress: m.MoveProgress(),
		Resolved:     m.resolved,
		Result:       m.result,
		BestTime:     m.scores.Get(),
		Message:      m.Message(),
		BestLine:     m.BestLine(),
		ShareMessage: m.ShareMessage(),
		PlayArea:     m.playArea,
	}
}

// FormatSeconds 把秒数格式化为两位小数
func FormatSeconds(seconds float64) string {
	return fmt.Sprintf("%.2f", seconds)
}

// RulesLines 规则页文本，每条一项（续行以空格缩进）
var RulesLines = []string{
	"1. Shake your phone to start",
	"2. Wait for the bugs to come",
	"3. Tap on the ant to catch it\n   Be careful not to catch any\n   of the other bugs!",
	"4. See how fast you reacted and try to beat your score!",
}
