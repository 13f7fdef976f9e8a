package sweep

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"nickguard/internal/domain"
)

func members(n int) []domain.Member {
	out := make([]domain.Member, n)
	for i := range out {
		out[i] = domain.Member{ID: fmt.Sprint(i), Nickname: fmt.Sprintf("Nick%d | Иван", i)}
	}
	return out
}

func TestRun_PreservesOrder(t *testing.T) {
	var inFlight, peak atomic.Int32
	checker := CheckerFunc(func(ctx context.Context, m domain.Member) domain.CombinedDecision {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
		return domain.CombinedDecision{Candidate: m.Nickname, Approve: true}
	})

	in := members(50)
	got, err := Run(context.Background(), in, checker, 4, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(in) {
		t.Fatalf("results = %d, want %d", len(got), len(in))
	}
	for i, r := range got {
		if r.Member.ID != in[i].ID || r.Decision.Candidate != in[i].Nickname {
			t.Fatalf("result %d = %+v, out of order", i, r)
		}
	}
	if p := peak.Load(); p > 4 {
		t.Errorf("peak concurrency = %d, want <= 4", p)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	checker := CheckerFunc(func(ctx context.Context, m domain.Member) domain.CombinedDecision {
		if calls.Add(1) == 3 {
			cancel()
		}
		return domain.CombinedDecision{Approve: true}
	})

	got, err := Run(ctx, members(100), checker, 1, nil)
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(got) >= 100 || len(got) != int(calls.Load()) {
		t.Errorf("results = %d, calls = %d", len(got), calls.Load())
	}
}

func TestRun_Empty(t *testing.T) {
	got, err := Run(context.Background(), nil, CheckerFunc(func(ctx context.Context, m domain.Member) domain.CombinedDecision {
		t.Error("checker called for empty input")
		return domain.CombinedDecision{}
	}), 0, nil)
	if err != nil || len(got) != 0 {
		t.Errorf("got %v, %v", got, err)
	}
}
