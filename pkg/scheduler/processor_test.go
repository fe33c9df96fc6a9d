package scheduler_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/topicwatch/pkg/content"
	"github.com/umputun/topicwatch/pkg/domain"
	"github.com/umputun/topicwatch/pkg/llm"
	"github.com/umputun/topicwatch/pkg/report"
	"github.com/umputun/topicwatch/pkg/repository"
	"github.com/umputun/topicwatch/pkg/scheduler"
	"github.com/umputun/topicwatch/pkg/scheduler/mocks"
)

type fixture struct {
	topics     *mocks.TopicStoreMock
	candidates *mocks.CandidateStoreMock
	accounts   *mocks.AccountStoreMock
	harvester  *mocks.HarvesterMock
	judge      *mocks.JudgeMock
	resolver   *mocks.ResolverMock
	reporter   *mocks.ReporterMock
	notifier   *mocks.NotifierMock
	proc       *scheduler.TopicProcessor
}

func testTopic() *domain.Topic {
	return &domain.Topic{
		ID: 1, AccountID: 7, Title: "Solar tariffs", Interest: "US tariffs on imported solar panels",
		Searches: []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7"},
		Sources:  5, Contact: domain.ContactDaily,
		Checkpoint: time.Now().Add(-2 * time.Hour), LastReport: time.Now().Add(-48 * time.Hour),
		Version: 3,
	}
}

func harvestOf(titles ...string) *domain.Harvest {
	h := domain.NewHarvest()
	for i, title := range titles {
		h.Add(title, domain.HarvestRecord{
			Link:      "https://news.google.com/rss/articles/" + strings.ReplaceAll(title, " ", "-"),
			Published: fmt.Sprintf("Mon, 02 Mar 2026 1%d:00:00 GMT", i%10),
			Time:      time.Date(2026, 3, 2, 10+i%10, 0, 0, 0, time.UTC),
		})
	}
	return h
}

func storedItems(n int) []domain.CandidateItem {
	res := make([]domain.CandidateItem, n)
	for i := range res {
		res[i] = domain.CandidateItem{ID: int64(i + 1), TopicID: 1, Title: fmt.Sprintf("stored %d", i),
			Link: fmt.Sprintf("https://example.com/stored/%d", i), SiteName: "Example", Explanation: "earlier"}
	}
	return res
}

// newFixture wires a processor where the first search surfaces the given titles and
// the judge marks and accepts all of them
func newFixture(t *testing.T, topic *domain.Topic, stored []domain.CandidateItem, titles ...string) *fixture {
	t.Helper()
	f := &fixture{
		topics: &mocks.TopicStoreMock{
			GetTopicFunc: func(ctx context.Context, id int64) (*domain.Topic, error) {
				cp := *topic
				return &cp, nil
			},
			CommitCycleFunc: func(ctx context.Context, c repository.CycleCommit) (*domain.Topic, error) {
				cp := *topic
				cp.Checkpoint, cp.Version = c.Checkpoint, c.Version+1
				return &cp, nil
			},
		},
		candidates: &mocks.CandidateStoreMock{ListCandidatesFunc: func(ctx context.Context, topicID int64) ([]domain.CandidateItem, error) {
			return stored, nil
		}},
		accounts: &mocks.AccountStoreMock{GetAccountFunc: func(ctx context.Context, id int64) (*domain.Account, error) {
			return &domain.Account{ID: id, Email: "reader@example.com"}, nil
		}},
		harvester: &mocks.HarvesterMock{HarvestFunc: func(ctx context.Context, search string, since time.Time) (*domain.Harvest, string, error) {
			if search == "s1" {
				return harvestOf(titles...), "digest", nil
			}
			return domain.NewHarvest(), "", nil
		}},
		judge: &mocks.JudgeMock{
			MarkTitlesFunc: func(ctx context.Context, interest, search, digest string) ([]string, error) {
				return titles, nil
			},
			EvaluateFunc: func(ctx context.Context, interest, title, text string) (llm.Verdict, error) {
				return llm.Verdict{Relevant: true, Reason: "about " + title}, nil
			},
		},
		resolver: &mocks.ResolverMock{ResolveFunc: func(ctx context.Context, link string) (content.Page, bool) {
			return content.Page{Link: strings.Replace(link, "news.google.com/rss/articles", "www.reuters.com", 1),
				Text: strings.Repeat("text ", 100), SiteName: "Reuters"}, true
		}},
		reporter: &mocks.ReporterMock{SynthesizeFunc: func(ctx context.Context, topic domain.Topic, items []domain.VettedItem) (report.Report, error) {
			return report.Report{Subject: report.Subject(topic), HTML: "<p>report</p>", Items: len(items)}, nil
		}},
		notifier: &mocks.NotifierMock{SendFunc: func(ctx context.Context, to, subject, html string) error {
			return nil
		}},
	}
	f.proc = scheduler.NewTopicProcessor(scheduler.TopicProcessorParams{
		Topics: f.topics, Candidates: f.candidates, Accounts: f.accounts, Harvester: f.harvester,
		Judge: f.judge, Resolver: f.resolver, Reporter: f.reporter, Notifier: f.notifier,
	})
	return f
}

func TestTopicProcessor_Cycle_Accumulates(t *testing.T) {
	// threshold 5, accumulated 3, 1 new, cadence elapsed: no report, item persisted
	topic := testTopic()
	f := newFixture(t, topic, storedItems(3), "Senate passes solar tariff bill")

	res, err := f.proc.Cycle(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduler.DecisionAccumulate, res.Decision)
	assert.Equal(t, 1, res.Accepted)
	assert.False(t, res.ReportSent)

	require.Len(t, f.topics.CommitCycleCalls(), 1)
	commit := f.topics.CommitCycleCalls()[0].C
	assert.False(t, commit.Fired)
	assert.Equal(t, int64(3), commit.Version)
	require.Len(t, commit.Add, 1)
	item := commit.Add[0]
	assert.Equal(t, "Senate passes solar tariff bill", item.Title)
	assert.Equal(t, "https://www.reuters.com/Senate-passes-solar-tariff-bill", item.Link)
	assert.Equal(t, "Reuters", item.SiteName)
	assert.Equal(t, "about Senate passes solar tariff bill", item.Explanation)
	assert.True(t, commit.Checkpoint.After(topic.Checkpoint), "checkpoint advances")
	assert.Equal(t, commit.Checkpoint, res.Checkpoint)

	assert.Empty(t, f.reporter.SynthesizeCalls())
	assert.Empty(t, f.notifier.SendCalls())

	// every search harvested since the checkpoint
	require.Len(t, f.harvester.HarvestCalls(), 7)
	for _, call := range f.harvester.HarvestCalls() {
		assert.Equal(t, topic.Checkpoint, call.Since)
	}
	// only searches with harvested items reach the coarse stage
	require.Len(t, f.judge.MarkTitlesCalls(), 1)
	assert.Equal(t, "s1", f.judge.MarkTitlesCalls()[0].Search)
	assert.Equal(t, "digest", f.judge.MarkTitlesCalls()[0].Digest)
	assert.Equal(t, topic.Interest, f.judge.MarkTitlesCalls()[0].Interest)
}

func TestTopicProcessor_Cycle_Fires(t *testing.T) {
	// threshold 5, accumulated 3, 2 new, cadence elapsed: report fires
	topic := testTopic()
	f := newFixture(t, topic, storedItems(3), "Senate passes solar tariff bill", "Installers warn of higher costs")

	res, err := f.proc.Cycle(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduler.DecisionFire, res.Decision)
	assert.True(t, res.ReportSent)

	require.Len(t, f.reporter.SynthesizeCalls(), 1)
	items := f.reporter.SynthesizeCalls()[0].Items
	require.Len(t, items, 5, "stored and new items reported together")
	assert.Equal(t, "stored 0", items[0].Title)
	assert.Equal(t, "Installers warn of higher costs", items[4].Title)

	require.Len(t, f.topics.CommitCycleCalls(), 1)
	commit := f.topics.CommitCycleCalls()[0].C
	assert.True(t, commit.Fired)
	assert.Empty(t, commit.Add)
	assert.Equal(t, commit.Checkpoint, commit.ReportedAt)

	require.Len(t, f.notifier.SendCalls(), 1)
	send := f.notifier.SendCalls()[0]
	assert.Equal(t, "reader@example.com", send.To)
	assert.Equal(t, "Solar tariffs update", send.Subject)
	assert.Equal(t, "<p>report</p>", send.Html)
}

func TestTopicProcessor_Cycle_HoldsWhenCadenceNotElapsed(t *testing.T) {
	// threshold 5, accumulated 10, cadence not elapsed: nothing added, checkpoint advances
	topic := testTopic()
	topic.LastReport = time.Now().Add(-time.Hour)
	f := newFixture(t, topic, storedItems(10), "Senate passes solar tariff bill")

	res, err := f.proc.Cycle(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduler.DecisionHold, res.Decision)

	require.Len(t, f.topics.CommitCycleCalls(), 1)
	commit := f.topics.CommitCycleCalls()[0].C
	assert.False(t, commit.Fired)
	assert.Empty(t, commit.Add)
	assert.True(t, commit.Checkpoint.After(topic.Checkpoint))
	assert.Empty(t, f.reporter.SynthesizeCalls())
}

func TestTopicProcessor_Cycle_HoldAccumulatePolicy(t *testing.T) {
	topic := testTopic()
	topic.LastReport = time.Now().Add(-time.Hour)
	f := newFixture(t, topic, storedItems(10), "Senate passes solar tariff bill")
	proc := scheduler.NewTopicProcessor(scheduler.TopicProcessorParams{
		Topics: f.topics, Candidates: f.candidates, Accounts: f.accounts, Harvester: f.harvester,
		Judge: f.judge, Resolver: f.resolver, Reporter: f.reporter, Notifier: f.notifier,
		Gate: scheduler.Gate{Hold: scheduler.HoldAccumulate},
	})

	_, err := proc.Cycle(context.Background(), topic.ID)
	require.NoError(t, err)
	require.Len(t, f.topics.CommitCycleCalls(), 1)
	assert.Len(t, f.topics.CommitCycleCalls()[0].C.Add, 1)
}

func TestTopicProcessor_Cycle_AcceptCap(t *testing.T) {
	titles := make([]string, 15)
	for i := range titles {
		titles[i] = fmt.Sprintf("Solar tariff story number %02d", i)
	}
	topic := testTopic()
	topic.Sources = 100
	f := newFixture(t, topic, nil, titles...)

	res, err := f.proc.Cycle(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, res.Candidates)
	assert.Equal(t, 10, res.Accepted)
	assert.Len(t, f.judge.EvaluateCalls(), 10, "stops right after the 10th acceptance")
	assert.Len(t, f.resolver.ResolveCalls(), 10)
	assert.Len(t, f.topics.CommitCycleCalls()[0].C.Add, 10)
}

func TestTopicProcessor_Cycle_ContentGate(t *testing.T) {
	topic := testTopic()
	f := newFixture(t, topic, nil, "Stub page story", "Real story about solar tariffs")
	f.resolver.ResolveFunc = func(ctx context.Context, link string) (content.Page, bool) {
		if strings.Contains(link, "Stub") {
			return content.Page{}, false
		}
		return content.Page{Link: link, Text: strings.Repeat("x", 500)}, true
	}

	res, err := f.proc.Cycle(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Accepted)
	require.Len(t, f.judge.EvaluateCalls(), 1, "fine classifier never sees dropped candidates")
	assert.Equal(t, "Real story about solar tariffs", f.judge.EvaluateCalls()[0].Title)
}

func TestTopicProcessor_Cycle_RejectedAndFailedVerdicts(t *testing.T) {
	topic := testTopic()
	f := newFixture(t, topic, nil, "Rejected story", "Broken story", "Accepted story")
	f.judge.EvaluateFunc = func(ctx context.Context, interest, title, text string) (llm.Verdict, error) {
		switch title {
		case "Rejected story":
			return llm.Verdict{Relevant: false, Reason: "off topic"}, nil
		case "Broken story":
			return llm.Verdict{}, errors.New("judge returned no structured verdict")
		}
		return llm.Verdict{Relevant: true, Reason: "on topic"}, nil
	}

	res, err := f.proc.Cycle(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Accepted)
	add := f.topics.CommitCycleCalls()[0].C.Add
	require.Len(t, add, 1)
	assert.Equal(t, "Accepted story", add[0].Title)
}

func TestTopicProcessor_Cycle_DedupAcrossSearches(t *testing.T) {
	topic := testTopic()
	f := newFixture(t, topic, nil)
	f.harvester.HarvestFunc = func(ctx context.Context, search string, since time.Time) (*domain.Harvest, string, error) {
		switch search {
		case "s1":
			return harvestOf("Senate passes solar tariff bill", "Other"), "d1", nil
		case "s2":
			return harvestOf("Senate passes solar tariff bill"), "d2", nil
		case "s3":
			return nil, "", errors.New("feed unavailable")
		}
		return domain.NewHarvest(), "", nil
	}
	f.judge.MarkTitlesFunc = func(ctx context.Context, interest, search, digest string) ([]string, error) {
		if search == "s2" {
			return nil, errors.New("judge gave up")
		}
		return []string{"Senate passes solar tariff bill", "Senate passes solar tariff bill"}, nil
	}

	res, err := f.proc.Cycle(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Harvested, "duplicate title merged once")
	assert.Equal(t, 1, res.Marked)
	assert.Equal(t, 1, res.Candidates)
	assert.Len(t, f.judge.MarkTitlesCalls(), 2, "failing feed skipped, judge failure skipped")
}

func TestTopicProcessor_Cycle_UnmatchedTitlesDropped(t *testing.T) {
	topic := testTopic()
	f := newFixture(t, topic, nil, "Senate passes solar tariff bill")
	f.judge.MarkTitlesFunc = func(ctx context.Context, interest, search, digest string) ([]string, error) {
		return []string{"zzzz qqqq", "Senate passes solar tariff bill - Reuters"}, nil
	}

	res, err := f.proc.Cycle(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Candidates)
	require.Len(t, f.judge.EvaluateCalls(), 1)
	assert.Equal(t, "Senate passes solar tariff bill", f.judge.EvaluateCalls()[0].Title)
}

func TestTopicProcessor_Cycle_ReportFailureKeepsItems(t *testing.T) {
	topic := testTopic()
	f := newFixture(t, topic, storedItems(3), "a story about tariffs", "another story about tariffs")
	f.reporter.SynthesizeFunc = func(ctx context.Context, topic domain.Topic, items []domain.VettedItem) (report.Report, error) {
		return report.Report{}, fmt.Errorf("synthesize report after 3 attempts: %w", report.ErrContract)
	}

	res, err := f.proc.Cycle(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduler.DecisionAccumulate, res.Decision)
	assert.False(t, res.ReportSent)
	commit := f.topics.CommitCycleCalls()[0].C
	assert.False(t, commit.Fired)
	assert.Len(t, commit.Add, 2)
	assert.Empty(t, f.notifier.SendCalls())
}

func TestTopicProcessor_Cycle_DeliveryFailureLogged(t *testing.T) {
	topic := testTopic()
	f := newFixture(t, topic, storedItems(4), "Senate passes solar tariff bill")
	f.notifier.SendFunc = func(ctx context.Context, to, subject, html string) error {
		return errors.New("smtp down")
	}

	res, err := f.proc.Cycle(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduler.DecisionFire, res.Decision)
	assert.False(t, res.ReportSent)
	assert.True(t, f.topics.CommitCycleCalls()[0].C.Fired, "commit happens before delivery")
	assert.Len(t, f.notifier.SendCalls(), 1)
}

func TestTopicProcessor_Cycle_Conflict(t *testing.T) {
	topic := testTopic()
	f := newFixture(t, topic, nil, "Senate passes solar tariff bill")
	reads := 0
	f.topics.GetTopicFunc = func(ctx context.Context, id int64) (*domain.Topic, error) {
		reads++
		cp := *topic
		if reads > 1 {
			cp.Version++
		}
		return &cp, nil
	}

	_, err := f.proc.Cycle(context.Background(), topic.ID)
	require.ErrorIs(t, err, repository.ErrConflict)
	assert.Empty(t, f.topics.CommitCycleCalls())
	assert.Equal(t, 2, reads)
}

func TestTopicProcessor_Cycle_StoreErrors(t *testing.T) {
	t.Run("datastore unreachable", func(t *testing.T) {
		topic := testTopic()
		f := newFixture(t, topic, nil)
		f.topics.GetTopicFunc = func(ctx context.Context, id int64) (*domain.Topic, error) {
			return nil, errors.New("unable to open database file")
		}
		_, err := f.proc.Cycle(context.Background(), topic.ID)
		require.ErrorIs(t, err, scheduler.ErrDatastore)
		assert.Empty(t, f.harvester.HarvestCalls())
	})

	t.Run("topic deleted", func(t *testing.T) {
		topic := testTopic()
		f := newFixture(t, topic, nil)
		f.topics.GetTopicFunc = func(ctx context.Context, id int64) (*domain.Topic, error) {
			return nil, fmt.Errorf("topic %d: %w", id, repository.ErrNotFound)
		}
		_, err := f.proc.Cycle(context.Background(), topic.ID)
		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.NotErrorIs(t, err, scheduler.ErrDatastore)
	})

	t.Run("commit fails", func(t *testing.T) {
		topic := testTopic()
		f := newFixture(t, topic, storedItems(4), "Senate passes solar tariff bill")
		f.topics.CommitCycleFunc = func(ctx context.Context, c repository.CycleCommit) (*domain.Topic, error) {
			return nil, errors.New("disk I/O error")
		}
		_, err := f.proc.Cycle(context.Background(), topic.ID)
		require.ErrorIs(t, err, scheduler.ErrDatastore)
		assert.Empty(t, f.notifier.SendCalls(), "no delivery without a commit")
	})
}

func TestTopicProcessor_Cycle_Canceled(t *testing.T) {
	topic := testTopic()
	f := newFixture(t, topic, nil, "Senate passes solar tariff bill")
	ctx, cancel := context.WithCancel(context.Background())
	f.judge.MarkTitlesFunc = func(ctx context.Context, interest, search, digest string) ([]string, error) {
		cancel()
		return []string{"Senate passes solar tariff bill"}, nil
	}

	_, err := f.proc.Cycle(ctx, topic.ID)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.topics.CommitCycleCalls())
}
