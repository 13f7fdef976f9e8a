package roster

import (
	"context"
	"log/slog"
	"strings"

	"nickguard/internal/domain"
	"nickguard/internal/textsim"
	"nickguard/internal/workers/sweep"
)

// Decider is the slice of the nickname engine a sweep needs.
type Decider interface {
	Check(candidate string) domain.CombinedDecision
	Decide(ctx context.Context, candidate string) domain.CombinedDecision
}

type Options struct {
	Workers int
	// SimilarityThreshold groups handles at or above this score. Zero means 0.8.
	SimilarityThreshold float64
}

type Service struct {
	engine Decider
	opts   Options
	log    *slog.Logger
}

func New(engine Decider, opts Options, log *slog.Logger) *Service {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.SimilarityThreshold <= 0 || opts.SimilarityThreshold > 1 {
		opts.SimilarityThreshold = 0.8
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{engine: engine, opts: opts, log: log.With("component", "roster")}
}

// Audit checks every member and groups look-alike handles. With semantic
// set each valid nickname also goes through the arbiter, which is rate
// limited, so large rosters take a while.
func (s *Service) Audit(ctx context.Context, members []domain.Member, semantic bool) domain.RosterReport {
	check := sweep.CheckerFunc(func(ctx context.Context, m domain.Member) domain.CombinedDecision {
		if semantic {
			return s.engine.Decide(ctx, m.Nickname)
		}
		return s.engine.Check(m.Nickname)
	})
	results, err := sweep.Run(ctx, members, check, s.opts.Workers, s.log)

	report := domain.RosterReport{
		Checked:    len(results),
		Results:    results,
		Duplicates: GroupDuplicates(members, s.opts.SimilarityThreshold),
		Partial:    err != nil,
	}
	for _, r := range results {
		if !r.Decision.Approve {
			report.Rejected++
		}
	}
	s.log.Info("roster audited", "members", len(members), "checked", report.Checked,
		"rejected", report.Rejected, "duplicate_groups", len(report.Duplicates), "partial", report.Partial)
	return report
}

// Handle is the part before the separator, or the whole trimmed nickname
// when there is none.
func Handle(nickname string) string {
	h, _, _ := strings.Cut(nickname, domain.Separator)
	return strings.TrimSpace(h)
}

// GroupDuplicates links members whose handles are identical or at least
// threshold similar, transitively. Groups and their members keep input
// order; singletons are dropped.
func GroupDuplicates(members []domain.Member, threshold float64) []domain.DuplicateGroup {
	parent := make([]int, len(members))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	handles := make([]string, len(members))
	for i, m := range members {
		handles[i] = strings.ToLower(Handle(m.Nickname))
	}
	for i := range members {
		if handles[i] == "" {
			continue
		}
		for j := i + 1; j < len(members); j++ {
			if handles[j] == "" {
				continue
			}
			if handles[i] == handles[j] || textsim.Alike(handles[i], handles[j], threshold) {
				ri, rj := find(i), find(j)
				if ri != rj {
					// Lower index stays root so groups order by first member.
					if rj < ri {
						ri, rj = rj, ri
					}
					parent[rj] = ri
				}
			}
		}
	}

	byRoot := make(map[int]int)
	var groups []domain.DuplicateGroup
	sizes := make(map[int]int)
	for i := range members {
		if handles[i] != "" {
			sizes[find(i)]++
		}
	}
	for i, m := range members {
		if handles[i] == "" {
			continue
		}
		root := find(i)
		if sizes[root] < 2 {
			continue
		}
		idx, ok := byRoot[root]
		if !ok {
			idx = len(groups)
			byRoot[root] = idx
			groups = append(groups, domain.DuplicateGroup{Handle: Handle(members[root].Nickname)})
		}
		groups[idx].Members = append(groups[idx].Members, m.ID)
	}
	if groups == nil {
		groups = []domain.DuplicateGroup{}
	}
	return groups
}
