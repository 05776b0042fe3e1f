package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/iliyamo/live-cricket-scoring/internal/model"
)

func TestOversToBalls(t *testing.T) {
	cases := []struct {
		name    string
		overs   float64
		want    int
		wantErr bool
	}{
		{name: "no balls bowled", overs: 0, want: 0},
		{name: "mid over", overs: 4.3, want: 27},
		{name: "last ball of the over", overs: 9.5, want: 59},
		{name: "full twenty overs", overs: 20.0, want: 120},
		{name: "six balls is the next over", overs: 4.6, wantErr: true},
		{name: "nine ball digit", overs: 4.9, wantErr: true},
		{name: "negative overs", overs: -1.0, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := OversToBalls(tc.overs)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidValue) {
					t.Fatalf("want ErrInvalidValue, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %d balls, want %d", got, tc.want)
			}
		})
	}
}

func TestBallsToOversRoundTrip(t *testing.T) {
	for balls := 0; balls <= 120; balls++ {
		back, err := OversToBalls(BallsToOvers(balls))
		if err != nil {
			t.Fatalf("balls %d: %v", balls, err)
		}
		if back != balls {
			t.Fatalf("round trip lost balls: %d -> %d", balls, back)
		}
	}
}

func TestRunRate(t *testing.T) {
	cases := []struct {
		name  string
		runs  int
		overs float64
		want  float64
	}{
		{name: "sixty off ten", runs: 60, overs: 10.0, want: 6.00},
		{name: "before the first ball", runs: 0, overs: 0, want: 0},
		{name: "mid over", runs: 30, overs: 2.3, want: 12.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RunRate(tc.runs, tc.overs)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if math.Abs(got-tc.want) > 1e-2 {
				t.Fatalf("got %.4f, want %.2f", got, tc.want)
			}
		})
	}
}

func TestRequiredRunRate(t *testing.T) {
	// 181 to win, 100 on the board, 10 of 20 overs gone: 81 off 60 balls.
	rrr, ok, err := RequiredRunRate(181, 100, 10.0, 20)
	if err != nil || !ok {
		t.Fatalf("defined RRR expected: ok=%v err=%v", ok, err)
	}
	if math.Abs(rrr-8.1) > 1e-2 {
		t.Fatalf("got %.4f, want 8.10", rrr)
	}

	// No target: undefined, not an error.
	if _, ok, err := RequiredRunRate(0, 50, 5.0, 20); err != nil || ok {
		t.Fatalf("no target: want undefined, got ok=%v err=%v", ok, err)
	}
	// No balls left: undefined.
	if _, ok, err := RequiredRunRate(181, 100, 20.0, 20); err != nil || ok {
		t.Fatalf("no balls remaining: want undefined, got ok=%v err=%v", ok, err)
	}
}

func TestStatsUndefinedOnFirstInnings(t *testing.T) {
	e, _ := newTestEngine()
	mustCreate(t, e, "m1", 1, "A", "B")
	mustStart(t, e, "m1", 1)
	iptr := func(n int) *int { return &n }
	fptr := func(f float64) *float64 { return &f }
	if _, err := e.Update(context.Background(), "m1", 1, Correction{Runs: iptr(60), Overs: fptr(10.0)}); err != nil {
		t.Fatalf("update: %v", err)
	}

	stats, err := e.Stats(context.Background(), "m1", 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if math.Abs(stats.RunRate-6.00) > 1e-2 {
		t.Fatalf("run rate %.4f, want 6.00", stats.RunRate)
	}
	if stats.RequiredRunRate != nil || stats.Target != nil || stats.RemainingRuns != nil {
		t.Fatalf("first innings must have no chase stats: %+v", stats)
	}
	if stats.RemainingBalls != 60 {
		t.Fatalf("remaining balls %d, want 60", stats.RemainingBalls)
	}
	if stats.ProjectedScore != 120 {
		t.Fatalf("projected score %d, want 120", stats.ProjectedScore)
	}
}

func TestStatsOnTheChase(t *testing.T) {
	e, _ := newTestEngine()
	iptr := func(n int) *int { return &n }
	fptr := func(f float64) *float64 { return &f }

	mustCreate(t, e, "m1", 1, "A", "B")
	mustStart(t, e, "m1", 1)
	if _, err := e.Update(context.Background(), "m1", 1, Correction{Runs: iptr(180), Overs: fptr(20.0)}); err != nil {
		t.Fatalf("update innings 1: %v", err)
	}
	if _, err := e.End(context.Background(), "m1", 1, model.ResultOversCompleted, ""); err != nil {
		t.Fatalf("end innings 1: %v", err)
	}

	mustCreate(t, e, "m1", 2, "B", "A")
	mustStart(t, e, "m1", 2)
	if _, err := e.Update(context.Background(), "m1", 2, Correction{Runs: iptr(100), Overs: fptr(10.0)}); err != nil {
		t.Fatalf("update innings 2: %v", err)
	}

	stats, err := e.Stats(context.Background(), "m1", 2)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Target == nil || *stats.Target != 180 {
		t.Fatalf("target %+v, want 180", stats.Target)
	}
	if stats.RemainingRuns == nil || *stats.RemainingRuns != 80 {
		t.Fatalf("remaining runs %+v, want 80", stats.RemainingRuns)
	}
	if stats.RequiredRunRate == nil || math.Abs(*stats.RequiredRunRate-8.0) > 1e-2 {
		t.Fatalf("required run rate %+v, want 8.00", stats.RequiredRunRate)
	}
}
