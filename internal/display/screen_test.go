package display

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pagedeck/internal/pagemanager"
)

func TestScreen_RecordsLoads(t *testing.T) {
	clock := newClock()
	s := NewScreen(WithClock(clock.Now))
	home := NewPage("home", "Home", "")
	about := NewPage("about", "About", "")

	require.Nil(t, s.Current())

	s.ShowPage(home, pagemanager.AnimNone, 0)
	s.ShowPage(about, pagemanager.AnimMoveLeft, 200*time.Millisecond)

	pb := s.Playback()
	require.Equal(t, uint64(2), pb.Seq)
	require.Same(t, home, pb.From)
	require.Same(t, about, pb.To)
	require.Equal(t, pagemanager.AnimMoveLeft, pb.Animation)
	require.Equal(t, 200*time.Millisecond, pb.Duration)
	require.Equal(t, clock.Now(), pb.Started)
	require.Same(t, about, s.Current())

	history := s.History()
	require.Len(t, history, 2)
	require.Nil(t, history[0].From)
}

func TestScreen_HistoryBounded(t *testing.T) {
	s := NewScreen()
	p := NewPage("p", "P", "")
	for range maxHistory + 10 {
		s.ShowPage(p, pagemanager.AnimNone, 0)
	}

	history := s.History()
	require.Len(t, history, maxHistory)
	require.Equal(t, uint64(maxHistory+10), history[len(history)-1].Seq)
}

func TestScreen_ChangedCoalesces(t *testing.T) {
	s := NewScreen()
	p := NewPage("p", "P", "")

	s.ShowPage(p, pagemanager.AnimNone, 0)
	s.ShowPage(p, pagemanager.AnimNone, 0)

	select {
	case <-s.Changed():
	default:
		t.Fatal("expected a change signal")
	}
	select {
	case <-s.Changed():
		t.Fatal("signals should coalesce")
	default:
	}
	require.Equal(t, uint64(2), s.Playback().Seq)
}

func TestPlayback_Progress(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	from := NewPage("a", "A", "")
	to := NewPage("b", "B", "")

	tests := []struct {
		name string
		pb   Playback
		at   time.Duration
		want float64
	}{
		{"start", Playback{From: from, To: to, Animation: pagemanager.AnimFadeIn, Duration: time.Second, Started: start}, 0, 0},
		{"half", Playback{From: from, To: to, Animation: pagemanager.AnimFadeIn, Duration: time.Second, Started: start}, 500 * time.Millisecond, 0.5},
		{"after end", Playback{From: from, To: to, Animation: pagemanager.AnimFadeIn, Duration: time.Second, Started: start}, 2 * time.Second, 1},
		{"zero duration", Playback{From: from, To: to, Animation: pagemanager.AnimFadeIn, Started: start}, 0, 1},
		{"no animation", Playback{From: from, To: to, Animation: pagemanager.AnimNone, Duration: time.Second, Started: start}, 0, 1},
		{"first load", Playback{To: to, Animation: pagemanager.AnimOverLeft, Duration: time.Second, Started: start}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, tt.pb.Progress(start.Add(tt.at)), 1e-9)
		})
	}
}

func TestScreen_DrivenByManager(t *testing.T) {
	reg := pagemanager.NewRegistry()
	home := NewPage("home", "Home", "")
	about := NewPage("about", "About", "")
	require.NoError(t, reg.Register("Home", 0, home))
	require.NoError(t, reg.Register("About", 1, about))

	s := NewScreen()
	m, err := pagemanager.New(reg, pagemanager.WithRenderer(s), pagemanager.WithDefaultPage("Home"))
	require.NoError(t, err)

	ctx := context.Background()
	m.Setup(ctx)
	require.Same(t, home, s.Current())
	require.Equal(t, pagemanager.AnimNone, s.Playback().Animation)

	m.Next(ctx)
	pb := s.Playback()
	require.Same(t, about, pb.To)
	require.Equal(t, pagemanager.AnimOverLeft, pb.Animation)
	require.Equal(t, pagemanager.DefaultDuration, pb.Duration)
}
