package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/gorhill/cronexpr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/topicwatch/pkg/domain"
	"github.com/umputun/topicwatch/pkg/repository"
)

//go:generate moq -out mocks/processor.go -pkg mocks -skip-ensure -fmt goimports . Processor
//go:generate moq -out mocks/topic_lister.go -pkg mocks -skip-ensure -fmt goimports . TopicLister

// Processor runs one cycle for a topic
type Processor interface {
	Cycle(ctx context.Context, topicID int64) (CycleResult, error)
}

// TopicLister lists topics to process
type TopicLister interface {
	ListTopics(ctx context.Context, accountID int64) ([]domain.Topic, error)
}

// Params holds scheduler configuration
type Params struct {
	Cron           string        // cron expression, 5 to 7 fields
	MaxParallel    int           // topics processed at the same time
	DatastorePause time.Duration // pause after a datastore failure before the next topic
}

// Scheduler runs a cycle for every topic on each cron tick
type Scheduler struct {
	lister      TopicLister
	processor   Processor
	schedule    *cronexpr.Expression
	maxParallel int
	pause       time.Duration
	now         func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
	runMu  sync.Mutex // one batch at a time
}

// BatchResult summarizes one run over all topics
type BatchResult struct {
	Topics    int
	Fired     int
	Failed    int
	Conflicts int
}

// NewScheduler creates a new scheduler instance
func NewScheduler(lister TopicLister, processor Processor, params Params) (*Scheduler, error) {
	if params.Cron == "" {
		params.Cron = "0 * * * *"
	}
	schedule, err := cronexpr.Parse(params.Cron)
	if err != nil {
		return nil, fmt.Errorf("parse cron %q: %w", params.Cron, err)
	}
	if params.MaxParallel < 1 {
		params.MaxParallel = 1
	}
	if params.DatastorePause <= 0 {
		params.DatastorePause = 5 * time.Second
	}
	return &Scheduler{
		lister:      lister,
		processor:   processor,
		schedule:    schedule,
		maxParallel: params.MaxParallel,
		pause:       params.DatastorePause,
		now:         time.Now,
	}, nil
}

// Start begins the scheduler loop in background
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.worker(ctx)
	lgr.Printf("[INFO] scheduler started, next run at %s", s.schedule.Next(s.now()).Format(time.RFC3339))
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		next := s.schedule.Next(s.now())
		if next.IsZero() {
			lgr.Printf("[WARN] cron schedule has no future runs, scheduler idle")
			return
		}
		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		if _, err := s.RunOnce(ctx); err != nil {
			lgr.Printf("[WARN] batch run failed: %v", err)
		}
	}
}

// RunOnce runs a cycle for every topic with bounded parallelism. Failures of a single
// topic never stop the batch, datastore failures pause before the next topic.
func (s *Scheduler) RunOnce(ctx context.Context) (BatchResult, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	topics, err := s.lister.ListTopics(ctx, 0)
	if err != nil {
		return BatchResult{}, fmt.Errorf("%w: list topics: %w", ErrDatastore, err)
	}
	lgr.Printf("[INFO] running cycle for %d topics", len(topics))

	var mu sync.Mutex
	res := BatchResult{Topics: len(topics)}
	var g errgroup.Group
	g.SetLimit(s.maxParallel)

	for _, topic := range topics {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			cycle, err := s.cycle(ctx, topic.ID)
			mu.Lock()
			switch {
			case err == nil && cycle.Decision == DecisionFire:
				res.Fired++
			case errors.Is(err, repository.ErrConflict):
				res.Conflicts++
			case err != nil:
				res.Failed++
			}
			mu.Unlock()

			switch {
			case err == nil:
			case errors.Is(err, repository.ErrConflict):
				lgr.Printf("[INFO] topic %d skipped: %v", topic.ID, err)
			case errors.Is(err, ErrDatastore):
				lgr.Printf("[WARN] topic %d: %v, pausing %v", topic.ID, err, s.pause)
				s.sleep(ctx, s.pause)
			default:
				lgr.Printf("[ERROR] topic %d cycle abandoned: %v", topic.ID, err)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	lgr.Printf("[INFO] batch done, %d topics, %d fired, %d failed", res.Topics, res.Fired, res.Failed)
	return res, nil
}

// cycle runs one topic, a panic inside the cycle abandons only this topic
func (s *Scheduler) cycle(ctx context.Context, topicID int64) (res CycleResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panicked: %v", r)
		}
	}()
	return s.processor.Cycle(ctx, topicID)
}

func (s *Scheduler) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
