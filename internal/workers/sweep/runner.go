package sweep

import (
	"context"
	"log/slog"
	"sync"

	"nickguard/internal/domain"
)

// Checker decides on one member's nickname.
type Checker interface {
	Check(ctx context.Context, m domain.Member) domain.CombinedDecision
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, m domain.Member) domain.CombinedDecision

func (f CheckerFunc) Check(ctx context.Context, m domain.Member) domain.CombinedDecision {
	return f(ctx, m)
}

type job struct {
	idx    int
	member domain.Member
}

// Run fans members out to concurrency workers and returns results in input
// order. On cancellation it stops dispatching, lets in-flight checks finish
// and returns whatever completed, still in input order, with ctx.Err().
func Run(ctx context.Context, members []domain.Member, checker Checker, concurrency int, log *slog.Logger) ([]domain.MemberResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	if log == nil {
		log = slog.Default()
	}
	jobsCh := make(chan job, concurrency)
	results := make([]domain.MemberResult, len(members))
	done := make([]bool, len(members))

	// dispatcher
	go func() {
		defer close(jobsCh)
		for i, m := range members {
			select {
			case <-ctx.Done():
				log.Warn("sweep cancelled", "dispatched", i, "total", len(members))
				return
			case jobsCh <- job{idx: i, member: m}:
			}
		}
	}()

	// workers
	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := range jobsCh {
				d := checker.Check(ctx, j.member)
				results[j.idx] = domain.MemberResult{Member: j.member, Decision: d}
				done[j.idx] = true
				if !d.Approve {
					log.Debug("member rejected", "worker", worker, "member", j.member.ID, "stage", d.Stage)
				}
			}
		}(w)
	}
	wg.Wait()

	out := results[:0]
	for i := range results {
		if done[i] {
			out = append(out, results[i])
		}
	}
	return out, ctx.Err()
}
