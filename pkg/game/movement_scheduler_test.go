package game

import (
	"math/rand"
	"testing"

	"github.com/decker502/bugcatch/pkg/config"
)

const frame = 1.0 / 60.0

func newTestRoster(seed int64) Roster {
	return NewRoster(testBounds, config.DefaultGameConfig().Roster, rand.New(rand.NewSource(seed)))
}

func TestMovementSchedulerTicksEveryInterval(t *testing.T) {
	s := NewMovementScheduler(rand.New(rand.NewSource(1)))
	roster := newTestRoster(1)
	initial := roster.Clone()

	s.Start(&roster, testBounds, 1.0)
	if !s.Active() {
		t.Fatal("scheduler should be active after Start")
	}

	if fired := s.Update(0.5); fired != 0 {
		t.Fatalf("fired %d times after 0.5s", fired)
	}
	for i := range roster {
		if roster[i].Position != initial[i].Position {
			t.Fatal("bugs moved before the first tick")
		}
	}

	if fired := s.Update(0.6); fired != 1 {
		t.Fatalf("fired %d times after 1.1s, want 1", fired)
	}
	moved := 0
	for i := range roster {
		if roster[i].Position != initial[i].Position {
			moved++
		}
		if roster[i].From != initial[i].Position {
			t.Errorf("bug %d From = %+v, want previous position", i, roster[i].From)
		}
	}
	if moved != len(roster) {
		t.Errorf("%d of %d bugs moved on tick", moved, len(roster))
	}
	if s.Ticks() != 1 {
		t.Errorf("Ticks() = %d, want 1", s.Ticks())
	}
}

func TestMovementSchedulerPositionsStayInBounds(t *testing.T) {
	s := NewMovementScheduler(rand.New(rand.NewSource(7)))
	roster := newTestRoster(7)
	s.Start(&roster, testBounds, 1.0)

	for i := 0; i < 60*120; i++ {
		s.Update(frame)
		for _, bug := range roster {
			if !testBounds.Contains(bug.Position) {
				t.Fatalf("frame %d: bug %d out of bounds at %+v", i, bug.ID, bug.Position)
			}
		}
	}
	if s.Ticks() < 119 {
		t.Errorf("Ticks() = %d after 120s, want about 120", s.Ticks())
	}
}

func TestMovementSchedulerStopIsIdempotent(t *testing.T) {
	s := NewMovementScheduler(rand.New(rand.NewSource(1)))

	// 未启动时 Stop 不报错
	s.Stop()
	s.Stop()
	if s.Active() {
		t.Fatal("scheduler active before Start")
	}
	if fired := s.Update(5); fired != 0 {
		t.Fatalf("unstarted scheduler fired %d times", fired)
	}

	roster := newTestRoster(2)
	s.Start(&roster, testBounds, 1.0)
	s.Stop()
	s.Stop()

	frozen := roster.Clone()
	if fired := s.Update(10); fired != 0 {
		t.Fatalf("stopped scheduler fired %d times", fired)
	}
	for i := range roster {
		if roster[i] != frozen[i] {
			t.Fatal("stopped scheduler moved a bug")
		}
	}
}

func TestMovementSchedulerRestartReplacesPreviousRun(t *testing.T) {
	s := NewMovementScheduler(rand.New(rand.NewSource(1)))

	oldRoster := newTestRoster(3)
	s.Start(&oldRoster, testBounds, 1.0)
	s.Update(0.9)
	firstGen := s.Generation()

	newRoster := newTestRoster(4)
	s.Start(&newRoster, testBounds, 1.0)
	if s.Generation() != firstGen+1 {
		t.Errorf("Generation() = %d, want %d", s.Generation(), firstGen+1)
	}

	frozenOld := oldRoster.Clone()
	// 0.2s 后旧运行本该触发，新运行不应触发
	if fired := s.Update(0.2); fired != 0 {
		t.Fatalf("restart kept the old schedule: fired %d", fired)
	}
	s.Update(1.0)

	for i := range oldRoster {
		if oldRoster[i] != frozenOld[i] {
			t.Fatal("previous run still moves its roster after restart")
		}
	}
	if s.Ticks() != 1 {
		t.Errorf("Ticks() = %d, want 1 for the new run", s.Ticks())
	}
}

func TestMovementSchedulerSinceTick(t *testing.T) {
	s := NewMovementScheduler(rand.New(rand.NewSource(1)))
	roster := newTestRoster(5)
	s.Start(&roster, testBounds, 1.0)

	s.Update(0.25)
	s.Update(0.25)
	if got := s.SinceTick(); got < 0.49 || got > 0.51 {
		t.Errorf("SinceTick() = %v, want 0.5", got)
	}

	s.Update(0.6)
	if got := s.SinceTick(); got < 0.09 || got > 0.11 {
		t.Errorf("SinceTick() after tick = %v, want 0.1", got)
	}
}
