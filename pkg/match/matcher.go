// Package match reconnects free-text titles echoed by the judge to harvested records.
package match

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/umputun/topicwatch/pkg/domain"
)

// DefaultCutoff is the minimal similarity ratio for a match
const DefaultCutoff = 0.5

// Matcher finds the closest harvested title by character sequence similarity
type Matcher struct {
	Cutoff float64
}

// New makes a matcher with the given cutoff, non-positive cutoff means default
func New(cutoff float64) *Matcher {
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}
	return &Matcher{Cutoff: cutoff}
}

// Closest returns the candidate most similar to title and its ratio.
// Candidates below the cutoff never match; on equal ratio the first candidate wins.
func (m *Matcher) Closest(title string, candidates []string) (best string, ratio float64, ok bool) {
	sm := difflib.NewMatcher(nil, nil)
	sm.SetSeq2(chars(title))
	for _, c := range candidates {
		sm.SetSeq1(chars(c))
		// cheap upper bounds first, same order as get_close_matches
		if sm.RealQuickRatio() < m.Cutoff || sm.QuickRatio() < m.Cutoff {
			continue
		}
		r := sm.Ratio()
		if r < m.Cutoff {
			continue
		}
		if !ok || r > ratio {
			best, ratio, ok = c, r, true
		}
	}
	return best, ratio, ok
}

// Resolve maps each marked title to its harvest record. Marked titles with no match
// above the cutoff are dropped, and two marked titles resolving to the same harvested
// title yield one candidate.
func (m *Matcher) Resolve(marked []string, harvest *domain.Harvest) []domain.Candidate {
	if harvest == nil || harvest.Len() == 0 {
		return nil
	}
	titles := harvest.Titles()
	seen := make(map[string]bool, len(marked))
	res := make([]domain.Candidate, 0, len(marked))
	for _, mt := range marked {
		best, _, ok := m.Closest(mt, titles)
		if !ok || seen[best] {
			continue
		}
		seen[best] = true
		rec, _ := harvest.Get(best)
		res = append(res, domain.Candidate{Title: best, Link: rec.Link, Published: rec.Published, Time: rec.Time})
	}
	return res
}

func chars(s string) []string {
	rs := []rune(s)
	res := make([]string, len(rs))
	for i, r := range rs {
		res[i] = string(r)
	}
	return res
}
