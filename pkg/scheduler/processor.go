package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/topicwatch/pkg/content"
	"github.com/umputun/topicwatch/pkg/domain"
	"github.com/umputun/topicwatch/pkg/llm"
	"github.com/umputun/topicwatch/pkg/match"
	"github.com/umputun/topicwatch/pkg/metrics"
	"github.com/umputun/topicwatch/pkg/report"
	"github.com/umputun/topicwatch/pkg/repository"
)

//go:generate moq -out mocks/topic_store.go -pkg mocks -skip-ensure -fmt goimports . TopicStore
//go:generate moq -out mocks/candidate_store.go -pkg mocks -skip-ensure -fmt goimports . CandidateStore
//go:generate moq -out mocks/account_store.go -pkg mocks -skip-ensure -fmt goimports . AccountStore
//go:generate moq -out mocks/harvester.go -pkg mocks -skip-ensure -fmt goimports . Harvester
//go:generate moq -out mocks/judge.go -pkg mocks -skip-ensure -fmt goimports . Judge
//go:generate moq -out mocks/resolver.go -pkg mocks -skip-ensure -fmt goimports . Resolver
//go:generate moq -out mocks/reporter.go -pkg mocks -skip-ensure -fmt goimports . Reporter
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// ErrDatastore marks failures talking to the datastore, the batch pauses and moves on
var ErrDatastore = errors.New("datastore failure")

// TopicStore reads and commits monitored topics
type TopicStore interface {
	GetTopic(ctx context.Context, id int64) (*domain.Topic, error)
	CommitCycle(ctx context.Context, c repository.CycleCommit) (*domain.Topic, error)
}

// CandidateStore reads persisted candidate items
type CandidateStore interface {
	ListCandidates(ctx context.Context, topicID int64) ([]domain.CandidateItem, error)
}

// AccountStore reads report recipients
type AccountStore interface {
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
}

// Harvester queries the feed source for one search
type Harvester interface {
	Harvest(ctx context.Context, search string, since time.Time) (*domain.Harvest, string, error)
}

// Judge runs both classification stages
type Judge interface {
	MarkTitles(ctx context.Context, interest, search, digest string) ([]string, error)
	Evaluate(ctx context.Context, interest, title, content string) (llm.Verdict, error)
}

// Resolver follows a harvested link and extracts its main text
type Resolver interface {
	Resolve(ctx context.Context, link string) (content.Page, bool)
}

// Reporter synthesizes a report from vetted items
type Reporter interface {
	Synthesize(ctx context.Context, topic domain.Topic, items []domain.VettedItem) (report.Report, error)
}

// Notifier delivers a rendered report
type Notifier interface {
	Send(ctx context.Context, to, subject, html string) error
}

// TopicProcessorParams holds collaborators and settings of TopicProcessor
type TopicProcessorParams struct {
	Topics      TopicStore
	Candidates  CandidateStore
	Accounts    AccountStore
	Harvester   Harvester
	Judge       Judge
	Resolver    Resolver
	Reporter    Reporter
	Notifier    Notifier
	Matcher     *match.Matcher
	Gate        Gate
	MaxAccepted int // fine classifier stops after this many accepted items
	Metrics     *metrics.Metrics
}

// TopicProcessor runs one research cycle for a topic:
//   - harvests every search of the plan since the topic checkpoint
//   - asks the judge to mark promising titles per search
//   - reconnects marked titles to harvested records
//   - resolves and extracts each candidate, then asks the judge for a verdict
//   - gates the accumulated items and fires or persists them
type TopicProcessor struct {
	TopicProcessorParams
	now func() time.Time
}

// CycleResult describes what one cycle did
type CycleResult struct {
	TopicID    int64     `json:"topic_id"`
	Harvested  int       `json:"harvested"`
	Marked     int       `json:"marked"`
	Candidates int       `json:"candidates"`
	Accepted   int       `json:"accepted"`
	Stored     int       `json:"stored"`
	Decision   Decision  `json:"decision"`
	ReportSent bool      `json:"report_sent"`
	Checkpoint time.Time `json:"checkpoint"`
}

// NewTopicProcessor makes a processor, MaxAccepted defaults to 10 and Matcher to the default cutoff
func NewTopicProcessor(params TopicProcessorParams) *TopicProcessor {
	if params.MaxAccepted <= 0 {
		params.MaxAccepted = 10
	}
	if params.Matcher == nil {
		params.Matcher = match.New(match.DefaultCutoff)
	}
	if params.Gate.Hold == "" {
		params.Gate.Hold = HoldDiscard
	}
	return &TopicProcessor{TopicProcessorParams: params, now: time.Now}
}

// Cycle runs the whole pipeline for the topic. The topic is re-read after the external calls
// and the outcome is committed only if it did not change in between.
func (p *TopicProcessor) Cycle(ctx context.Context, topicID int64) (res CycleResult, err error) {
	started := p.now()
	res = CycleResult{TopicID: topicID}
	defer func() {
		outcome := string(res.Decision)
		switch {
		case errors.Is(err, repository.ErrConflict):
			outcome = "conflict"
		case err != nil:
			outcome = "failed"
		}
		p.Metrics.CycleDone(outcome, p.now().Sub(started))
	}()

	topic, err := p.Topics.GetTopic(ctx, topicID)
	if err != nil {
		return res, storeErr("get topic", err)
	}

	harvest, marked := p.coarse(ctx, topic)
	res.Harvested, res.Marked = harvest.Len(), len(marked)

	candidates := p.Matcher.Resolve(marked, harvest)
	res.Candidates = len(candidates)
	p.Metrics.Items("candidates", len(candidates))

	vetted := p.fine(ctx, topic.Interest, candidates)
	res.Accepted = len(vetted)
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("cycle for topic %d interrupted: %w", topicID, err)
	}

	// reacquire the record, the external calls above can take minutes
	fresh, err := p.Topics.GetTopic(ctx, topicID)
	if err != nil {
		return res, storeErr("re-read topic", err)
	}
	if fresh.Version != topic.Version {
		return res, fmt.Errorf("topic %d changed during cycle: %w", topicID, repository.ErrConflict)
	}

	stored, err := p.Candidates.ListCandidates(ctx, topicID)
	if err != nil {
		return res, storeErr("list candidates", err)
	}
	res.Stored = len(stored)

	gate := p.Gate.Decide(GateInput{
		Stored:     len(stored),
		New:        len(vetted),
		Sources:    fresh.Sources,
		Contact:    fresh.Contact,
		LastReport: fresh.LastReport,
		Now:        started,
	})
	res.Decision = gate.Decision
	lgr.Printf("[INFO] topic %d gate: %s, total %d/%d, enough time %v", topicID, gate.Decision, gate.Total,
		fresh.Sources, gate.EnoughTime)

	commit := repository.CycleCommit{TopicID: topicID, Version: fresh.Version, Checkpoint: started}
	var rep report.Report
	if gate.Decision == DecisionFire {
		items := make([]domain.VettedItem, 0, len(stored)+len(vetted))
		for _, c := range stored {
			items = append(items, c.ToVetted())
		}
		items = append(items, vetted...)

		if rep, err = p.Reporter.Synthesize(ctx, *fresh, items); err != nil {
			if ctx.Err() != nil {
				return res, fmt.Errorf("synthesize report for topic %d: %w", topicID, err)
			}
			// nothing is lost, new items wait for the next cycle
			lgr.Printf("[WARN] report for topic %d not produced, keeping items: %v", topicID, err)
			res.Decision = DecisionAccumulate
			gate.KeepNew = len(vetted) > 0
		} else {
			commit.Fired, commit.ReportedAt = true, started
		}
	}
	if gate.KeepNew && !commit.Fired {
		commit.Add = vetted
	}
	p.Metrics.GateDecision(string(res.Decision))

	committed, err := p.Topics.CommitCycle(ctx, commit)
	if err != nil {
		return res, storeErr("commit cycle", err)
	}
	res.Checkpoint = committed.Checkpoint

	if commit.Fired {
		res.ReportSent = p.deliver(ctx, committed, rep)
	}
	return res, nil
}

// coarse harvests every search and collects titles the judge marked, each title once
func (p *TopicProcessor) coarse(ctx context.Context, topic *domain.Topic) (*domain.Harvest, []string) {
	harvest := domain.NewHarvest()
	var marked []string
	seen := map[string]bool{}

	for _, search := range topic.Searches {
		if ctx.Err() != nil {
			break
		}
		h, digest, err := p.Harvester.Harvest(ctx, search, topic.Checkpoint)
		if err != nil {
			lgr.Printf("[WARN] topic %d, harvest %q failed: %v", topic.ID, search, err)
			continue
		}
		if h.Len() == 0 {
			lgr.Printf("[DEBUG] topic %d, nothing new for %q", topic.ID, search)
			continue
		}
		harvest.Merge(h)
		p.Metrics.Items("harvested", h.Len())

		titles, err := p.Judge.MarkTitles(ctx, topic.Interest, search, digest)
		if err != nil {
			lgr.Printf("[WARN] topic %d, marking titles for %q failed: %v", topic.ID, search, err)
			continue
		}
		for _, title := range titles {
			if seen[title] {
				continue
			}
			seen[title] = true
			marked = append(marked, title)
		}
		p.Metrics.Items("marked", len(titles))
	}
	return harvest, marked
}

// fine resolves candidates in order and keeps those the judge accepts, up to MaxAccepted
func (p *TopicProcessor) fine(ctx context.Context, interest string, candidates []domain.Candidate) []domain.VettedItem {
	var res []domain.VettedItem
	for _, c := range candidates {
		if len(res) >= p.MaxAccepted || ctx.Err() != nil {
			break
		}
		page, ok := p.Resolver.Resolve(ctx, c.Link)
		if !ok {
			lgr.Printf("[DEBUG] no usable content for %q", c.Title)
			continue
		}
		p.Metrics.Items("resolved", 1)

		verdict, err := p.Judge.Evaluate(ctx, interest, c.Title, page.Text)
		if err != nil {
			lgr.Printf("[WARN] evaluating %q failed: %v", c.Title, err)
			continue
		}
		if !verdict.Relevant {
			lgr.Printf("[DEBUG] rejected %q: %s", c.Title, verdict.Reason)
			continue
		}
		res = append(res, domain.VettedItem{
			Title:       c.Title,
			Link:        page.Link,
			SiteName:    page.SiteName,
			Published:   c.Published,
			Time:        c.Time,
			Explanation: verdict.Reason,
		})
		p.Metrics.Items("accepted", 1)
	}
	return res
}

// deliver sends the report to the topic owner, failures are logged only
func (p *TopicProcessor) deliver(ctx context.Context, topic *domain.Topic, rep report.Report) bool {
	acc, err := p.Accounts.GetAccount(ctx, topic.AccountID)
	if err != nil {
		lgr.Printf("[WARN] no recipient for topic %d: %v", topic.ID, err)
		p.Metrics.Report("failed")
		return false
	}
	if err := p.Notifier.Send(ctx, acc.Email, rep.Subject, rep.HTML); err != nil {
		lgr.Printf("[WARN] failed to deliver report for topic %d to %s: %v", topic.ID, acc.Email, err)
		p.Metrics.Report("failed")
		return false
	}
	lgr.Printf("[INFO] report for topic %d sent to %s, %d items", topic.ID, acc.Email, rep.Items)
	p.Metrics.Report("sent")
	return true
}

// storeErr marks datastore failures, missing and changed records are passed as is
func storeErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrConflict) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrDatastore, op, err)
}
