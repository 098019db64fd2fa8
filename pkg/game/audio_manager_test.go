package game

import (
	"errors"
	"testing"
	"time"
)

func TestAudioManagerPlayCue(t *testing.T) {
	rm := newTestResourceManager(t)
	am := NewAudioManager(rm, NewSettingsManager(nil))

	d, err := am.PlayCue("SOUND_WIN")
	if err != nil {
		t.Fatalf("PlayCue failed: %v", err)
	}
	if d != 500*time.Millisecond {
		t.Errorf("duration = %v, want 500ms", d)
	}
	if _, cached := am.sounds["SOUND_WIN"]; !cached {
		t.Error("sound should be cached after the first play")
	}
}

func TestAudioManagerPlayCueErrors(t *testing.T) {
	rm := newTestResourceManager(t)

	tests := []struct {
		name    string
		am      *AudioManager
		id      string
		wantErr error
	}{
		{"missing resource", NewAudioManager(rm, nil), "SOUND_MISSING", ErrCueUnavailable},
		{"corrupt resource", NewAudioManager(rm, nil), "SOUND_BROKEN", ErrCueUnavailable},
		{"no resource manager", NewAudioManager(nil, nil), "SOUND_WIN", ErrCueUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.am.PlayCue(tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("PlayCue error = %v, want %v", err, tt.wantErr)
			}
			if d != 0 {
				t.Errorf("duration = %v, want 0 on failure", d)
			}
		})
	}
}

func TestAudioManagerSoundDisabled(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetSoundEnabled(false)
	am := NewAudioManager(newTestResourceManager(t), sm)

	if _, err := am.PlayCue("SOUND_WIN"); !errors.Is(err, ErrSoundDisabled) {
		t.Errorf("PlayCue error = %v, want ErrSoundDisabled", err)
	}
	if am.PlaySound("SOUND_TAP") {
		t.Error("PlaySound should report false while sound is disabled")
	}

	sm.ToggleSound()
	if !am.PlaySound("SOUND_TAP") {
		t.Error("PlaySound should succeed once sound is enabled again")
	}
}

func TestAudioManagerVolume(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetSoundVolume(0.3)
	am := NewAudioManager(nil, sm)
	if got := am.getSoundVolume(); got != 0.3 {
		t.Errorf("volume = %v, want 0.3", got)
	}

	if got := NewAudioManager(nil, nil).getSoundVolume(); got != 0.8 {
		t.Errorf("default volume = %v, want 0.8", got)
	}
}
