package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/decker502/bugcatch/pkg/game"
	"github.com/gopxl/beep"
)

// newTestCue 返回不依赖真实扬声器的播放器
func newTestCue(played *[]beep.Streamer) *BeepCue {
	c := NewBeepCue("SOUND_WIN")
	c.ready = true
	c.play = func(s beep.Streamer) { *played = append(*played, s) }
	return c
}

func TestBeepCueDuration(t *testing.T) {
	var played []beep.Streamer
	c := newTestCue(&played)

	d, err := c.PlayCue("SOUND_WIN")
	if err != nil {
		t.Fatalf("PlayCue: %v", err)
	}
	want := 680 * time.Millisecond
	if diff := d - want; diff < -time.Millisecond || diff > time.Millisecond {
		t.Errorf("duration = %v, want ~%v", d, want)
	}
	if len(played) != 1 {
		t.Fatalf("played %d streams, want 1", len(played))
	}
}

func TestBeepCueErrors(t *testing.T) {
	var played []beep.Streamer

	t.Run("not initialized", func(t *testing.T) {
		c := NewBeepCue("SOUND_WIN")
		d, err := c.PlayCue("SOUND_WIN")
		if !errors.Is(err, game.ErrCueUnavailable) || d != 0 {
			t.Errorf("got (%v, %v), want ErrCueUnavailable", d, err)
		}
	})

	t.Run("unknown cue", func(t *testing.T) {
		c := newTestCue(&played)
		if _, err := c.PlayCue("SOUND_MISSING"); !errors.Is(err, game.ErrCueUnavailable) {
			t.Errorf("err = %v, want ErrCueUnavailable", err)
		}
	})

	t.Run("muted", func(t *testing.T) {
		c := newTestCue(&played)
		c.SetMuted(true)
		if _, err := c.PlayCue("SOUND_WIN"); !errors.Is(err, game.ErrSoundDisabled) {
			t.Errorf("err = %v, want ErrSoundDisabled", err)
		}
	})

	if len(played) != 0 {
		t.Errorf("failed cues should not play, got %d", len(played))
	}
}

func TestSynthesizeLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	stream, total, err := synthesize(rate, []note{
		{freq: 440, dur: 100 * time.Millisecond},
		{freq: 660, dur: 50 * time.Millisecond},
	})
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if total != 1200 {
		t.Fatalf("total = %d, want 1200", total)
	}

	buf := make([][2]float64, 256)
	streamed := 0
	for {
		n, ok := stream.Stream(buf)
		streamed += n
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", streamed-n+i, buf[i][0])
			}
		}
		if !ok {
			break
		}
	}
	if streamed != total {
		t.Errorf("streamed %d samples, want %d", streamed, total)
	}
}

func TestSynthesizeRejectsAliasedTone(t *testing.T) {
	if _, _, err := synthesize(beep.SampleRate(8000), []note{{freq: 5000, dur: time.Millisecond}}); err == nil {
		t.Error("expected error for a tone above the Nyquist frequency")
	}
}
