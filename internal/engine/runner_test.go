package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunnerApplyAndSpeed(t *testing.T) {
	e := testEngine(0.99)
	r := NewRunner(e, NewGameState(), time.Second, nil, nil)

	if r.Speed() != 1 {
		t.Errorf("initial speed = %d, want 1", r.Speed())
	}
	r.SetSpeed(50)
	if r.Speed() != 50 {
		t.Errorf("speed = %d, want 50", r.Speed())
	}
	r.SetSpeed(7) // not an allowed multiplier
	if r.Speed() != 50 {
		t.Errorf("speed = %d, want unchanged 50", r.Speed())
	}

	r.Apply(func(s *GameState) *GameState { return e.Tick(s) })
	if r.State().Enemy == nil {
		t.Error("applied tick should have spawned an enemy")
	}
}

func TestRunnerTicksAndSavesOnShutdown(t *testing.T) {
	e := testEngine(0.99)

	var saves atomic.Int32
	save := func(*GameState) error {
		saves.Add(1)
		return nil
	}

	r := NewRunner(e, NewGameState(), 5*time.Millisecond, save, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for r.State().Enemy == nil {
		select {
		case <-deadline:
			t.Fatal("runner never ticked")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done

	if saves.Load() == 0 {
		t.Error("shutdown should persist the final snapshot")
	}
}

func TestRunnerPauseSkipsTicks(t *testing.T) {
	e := testEngine(0.99)
	r := NewRunner(e, NewGameState(), 5*time.Millisecond, nil, nil)
	r.Pause()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	if r.State().Enemy != nil {
		t.Error("paused runner should not tick")
	}

	cancel()
	<-done
}
