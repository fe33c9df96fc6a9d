package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/topicwatch/pkg/domain"
)

func TestMatcher_Closest(t *testing.T) {
	candidates := []string{
		"Senate passes solar tariff bill - Reuters",
		"Panel makers brace for new duties - AP",
	}
	m := New(0)

	tests := []struct {
		name      string
		title     string
		cands     []string
		wantTitle string
		wantOK    bool
	}{
		{name: "exact", title: "Panel makers brace for new duties - AP", cands: candidates,
			wantTitle: "Panel makers brace for new duties - AP", wantOK: true},
		{name: "truncated echo", title: "Senate passes solar tariff bill", cands: candidates,
			wantTitle: "Senate passes solar tariff bill - Reuters", wantOK: true},
		{name: "punctuation differs", title: "Panel-makers brace for new duties", cands: candidates,
			wantTitle: "Panel makers brace for new duties - AP", wantOK: true},
		{name: "unrelated", title: "xyzzy", cands: candidates, wantOK: false},
		{name: "no candidates", title: "anything", cands: nil, wantOK: false},
		{name: "cutoff inclusive", title: "ab", cands: []string{"ax"}, wantTitle: "ax", wantOK: true},
		{name: "below cutoff", title: "abcd", cands: []string{"axyz"}, wantOK: false},
		{name: "tie goes to first", title: "abcd", cands: []string{"abcx", "abcy"}, wantTitle: "abcx", wantOK: true},
		{name: "better later candidate", title: "abcd", cands: []string{"abxy", "abcx"}, wantTitle: "abcx", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ratio, ok := m.Closest(tt.title, tt.cands)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTitle, got)
			if ok {
				assert.GreaterOrEqual(t, ratio, DefaultCutoff)
			}
		})
	}
}

func TestMatcher_Ratio(t *testing.T) {
	m := New(0.1)
	_, ratio, ok := m.Closest("abcd", []string{"abcx"})
	require.True(t, ok)
	assert.InDelta(t, 0.75, ratio, 0.0001)

	_, ratio, ok = m.Closest("Senate passes solar tariff bill", []string{"Senate passes solar tariff bill - Reuters"})
	require.True(t, ok)
	assert.InDelta(t, 62.0/72.0, ratio, 0.0001)
}

func TestMatcher_Resolve(t *testing.T) {
	ts := time.Date(2026, 10, 6, 15, 4, 5, 0, time.UTC)
	harvest := domain.NewHarvest()
	harvest.Add("Senate passes solar tariff bill - Reuters",
		domain.HarvestRecord{Link: "https://example.com/1", Published: "Mon, 06 Oct 2026 15:04:05 GMT", Time: ts})
	harvest.Add("Panel makers brace for new duties - AP",
		domain.HarvestRecord{Link: "https://example.com/2", Published: "Tue, 07 Oct 2026 10:00:00 GMT"})

	m := New(DefaultCutoff)
	res := m.Resolve([]string{
		"Panel makers brace for new duties",
		"xyzzy",
		"Panel makers brace for new duties - AP", // resolves to the same record
		"Senate passes solar tariff bill",
	}, harvest)

	require.Len(t, res, 2)
	assert.Equal(t, domain.Candidate{Title: "Panel makers brace for new duties - AP", Link: "https://example.com/2",
		Published: "Tue, 07 Oct 2026 10:00:00 GMT"}, res[0])
	assert.Equal(t, domain.Candidate{Title: "Senate passes solar tariff bill - Reuters", Link: "https://example.com/1",
		Published: "Mon, 06 Oct 2026 15:04:05 GMT", Time: ts}, res[1])

	assert.Empty(t, m.Resolve([]string{"a"}, domain.NewHarvest()))
	assert.Empty(t, m.Resolve([]string{"a"}, nil))
}
