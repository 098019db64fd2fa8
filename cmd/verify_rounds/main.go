// verify_rounds 无界面回合验证工具
//
// 用虚拟时钟驱动状态机跑若干回合：模拟摇动、等待虫子出现、按设定的反应时间点击，
// 打印每回合结果和最佳成绩变化。用于检查配置文件的节奏是否合理。
//
// 用法：
//
//	go run ./cmd/verify_rounds -rounds 10 -seed 42 -miss 0.2
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/bugcatch/pkg/config"
	"github.com/decker502/bugcatch/pkg/game"
)

const frame = 1.0 / 60.0

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	rounds     = flag.Int("rounds", 5, "回合数")
	seed       = flag.Int64("seed", 1, "随机种子")
	missRate   = flag.Float64("miss", 0.2, "点错虫子的概率 [0, 1]")
	minReact   = flag.Float64("min-react", 0.4, "最短反应时间（秒）")
	maxReact   = flag.Float64("max-react", 2.5, "最长反应时间（秒）")
	configPath = flag.String("config", "", "外部游戏配置文件（默认使用内置配置）")
)

// clock 虚拟时钟，随帧推进
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) advance(dt float64) {
	c.now = c.now.Add(time.Duration(dt * float64(time.Second)))
}

// fixedCue 固定时长的音效，模拟真实播放
type fixedCue time.Duration

func (c fixedCue) PlayCue(string) (time.Duration, error) {
	return time.Duration(c), nil
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadGameConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
			os.Exit(1)
		}
	}
	if *minReact <= 0 || *maxReact < *minReact {
		fmt.Fprintf(os.Stderr, "invalid reaction range [%.2f, %.2f]\n", *minReact, *maxReact)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	clk := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	scores := game.NewScoreStore(nil)

	m := game.NewMachine(cfg, game.MachineDeps{
		Detector: game.NewShakeDetector(cfg.Shake.Threshold),
		Scores:   scores,
		Cue:      fixedCue(900 * time.Millisecond),
		Now:      clk.Now,
		Rand:     rand.New(rand.NewSource(*seed + 1)),
	})

	m.SelectPlay()
	m.SelectStart()

	failed := false
	for i := 1; i <= *rounds; i++ {
		if err := playRound(m, clk, rng); err != nil {
			fmt.Printf("round %d: FAIL %v\n", i, err)
			failed = true
			break
		}
		res := m.Result()
		line := fmt.Sprintf("round %d: %-4s", i, res.Outcome)
		if res.Outcome == game.OutcomeWin {
			line += fmt.Sprintf(" %ss", res.Formatted)
			if res.NewBest {
				line += " (new best)"
			}
		}
		fmt.Println(line)
		m.SelectPlayAgain()
	}

	best := scores.Get()
	if math.IsInf(best, 1) {
		fmt.Println("best: none")
	} else {
		fmt.Printf("best: %ss\n", game.FormatSeconds(best))
	}
	fmt.Printf("wins: %d losses: %d\n", scores.Wins(), scores.Losses())
	fmt.Println(m.ShareMessage())

	if failed {
		os.Exit(1)
	}
}

// playRound 从 WaitingForShake 开始跑完一回合，停在 Result
func playRound(m *game.Machine, clk *clock, rng *rand.Rand) error {
	if m.Screen() != game.ScreenWaitingForShake {
		return fmt.Errorf("expected WaitingForShake, got %v", m.Screen())
	}
	m.Detector().Feed(game.Acceleration{X: m.Detector().Threshold() + 0.5})

	step := func() {
		clk.advance(frame)
		m.Update(frame)
	}

	// 随机等待最长 StartDelay.Max，留出余量
	limit := int((m.Config().StartDelay.Max+1)/frame) + 1
	for n := 0; m.Screen() != game.ScreenActive; n++ {
		if n > limit {
			return fmt.Errorf("bugs did not appear within %.1fs", m.Config().StartDelay.Max+1)
		}
		step()
	}

	react := *minReact + rng.Float64()*(*maxReact-*minReact)
	for t := 0.0; t < react; t += frame {
		step()
	}

	bugs := m.Bugs()
	pick, ok := bugs.Target()
	if !ok {
		return fmt.Errorf("roster has no target")
	}
	if rng.Float64() < *missRate {
		for _, b := range bugs {
			if !b.IsTarget {
				pick = b
				break
			}
		}
	}
	if !m.TapBug(pick.ID) {
		return fmt.Errorf("tap on bug %d rejected", pick.ID)
	}

	for n := 0; m.Screen() != game.ScreenResult; n++ {
		if n > 10*60 {
			return fmt.Errorf("result not shown within 10s of the tap")
		}
		step()
	}
	return nil
}
