package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/topicwatch/pkg/domain"
)

// TopicRepository handles monitored topics
type TopicRepository struct {
	db *sqlx.DB
}

type topicRow struct {
	ID          int64      `db:"id"`
	AccountID   int64      `db:"account_id"`
	Title       string     `db:"title"`
	Interest    string     `db:"interest"`
	Searches    stringsSQL `db:"searches"`
	Sources     int        `db:"sources"`
	Contact     int        `db:"contact"`
	Checkpoint  time.Time  `db:"checkpoint"`
	LastReport  time.Time  `db:"last_report"`
	ReportsSent int        `db:"reports_sent"`
	Version     int64      `db:"version"`
	CreatedAt   time.Time  `db:"created_at"`
}

// CycleCommit is the persistent outcome of one topic cycle
type CycleCommit struct {
	TopicID    int64
	Version    int64 // topic version the cycle was computed against
	Checkpoint time.Time
	Add        []domain.VettedItem // new candidate items
	Fired      bool                // report fired, clears candidates and bumps counters
	ReportedAt time.Time
}

// NewTopicRepository creates a new topic repository
func NewTopicRepository(db *sqlx.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// CreateTopic validates and inserts a topic. Checkpoint and last report start at creation time
// unless already set. ErrNotFound if the owning account does not exist.
func (r *TopicRepository) CreateTopic(ctx context.Context, topic *domain.Topic) error {
	if err := topic.Validate(); err != nil {
		return fmt.Errorf("invalid topic: %w", err)
	}
	now := time.Now().UTC()
	if topic.CreatedAt.IsZero() {
		topic.CreatedAt = now
	}
	if topic.Checkpoint.IsZero() {
		topic.Checkpoint = topic.CreatedAt
	}
	if topic.LastReport.IsZero() {
		topic.LastReport = topic.CreatedAt
	}

	var id int64
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO topics (account_id, title, interest, searches, sources, contact, checkpoint, last_report, version, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`,
			topic.AccountID, topic.Title, topic.Interest, stringsSQL(topic.Searches), topic.Sources, int(topic.Contact),
			topic.Checkpoint.UTC(), topic.LastReport.UTC(), topic.CreatedAt.UTC())
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return fmt.Errorf("create topic, account %d: %w", topic.AccountID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("create topic: %w", err)
	}

	topic.ID, topic.Version, topic.ReportsSent = id, 1, 0
	return nil
}

// GetTopic retrieves a topic by ID
func (r *TopicRepository) GetTopic(ctx context.Context, id int64) (*domain.Topic, error) {
	return getTopic(ctx, r.db, id)
}

// ListTopics returns topics of the account ordered by ID, all topics for accountID 0
func (r *TopicRepository) ListTopics(ctx context.Context, accountID int64) ([]domain.Topic, error) {
	query, args := "SELECT * FROM topics ORDER BY id", []any{}
	if accountID > 0 {
		query, args = "SELECT * FROM topics WHERE account_id = ? ORDER BY id", []any{accountID}
	}
	var rows []topicRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	res := make([]domain.Topic, len(rows))
	for i, row := range rows {
		res[i] = *row.toDomain()
	}
	return res, nil
}

// DeleteTopic removes the topic and, by cascade, its candidate items
func (r *TopicRepository) DeleteTopic(ctx context.Context, id int64) error {
	var affected int64
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM topics WHERE id = ?", id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("topic %d: %w", id, ErrNotFound)
	}
	return nil
}

// CommitCycle applies the cycle outcome in one transaction, guarded by the topic version.
// Returns ErrConflict if the topic changed after the cycle read it.
func (r *TopicRepository) CommitCycle(ctx context.Context, c CycleCommit) (*domain.Topic, error) {
	var topic *domain.Topic
	err := withLockRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		if err := bumpTopic(ctx, tx, c); err != nil {
			return err
		}

		if c.Fired {
			if _, err := tx.ExecContext(ctx, "DELETE FROM candidate_items WHERE topic_id = ?", c.TopicID); err != nil {
				return fmt.Errorf("clear candidates: %w", err)
			}
			_, err := tx.ExecContext(ctx,
				"UPDATE accounts SET reports_sent = reports_sent + 1 WHERE id = (SELECT account_id FROM topics WHERE id = ?)",
				c.TopicID)
			if err != nil {
				return fmt.Errorf("bump account reports: %w", err)
			}
		}

		if err := insertCandidates(ctx, tx, c.TopicID, c.Add); err != nil {
			return err
		}

		if topic, err = getTopic(ctx, tx, c.TopicID); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		return nil, fmt.Errorf("commit cycle for topic %d: %w", c.TopicID, err)
	}
	return topic, nil
}

// bumpTopic stamps the checkpoint and, on fire, the report fields, if the version still matches
func bumpTopic(ctx context.Context, tx *sqlx.Tx, c CycleCommit) error {
	query := "UPDATE topics SET checkpoint = ?, version = version + 1 WHERE id = ? AND version = ?"
	args := []any{c.Checkpoint.UTC(), c.TopicID, c.Version}
	if c.Fired {
		query = `UPDATE topics SET checkpoint = ?, last_report = ?, reports_sent = reports_sent + 1, version = version + 1
			WHERE id = ? AND version = ?`
		args = []any{c.Checkpoint.UTC(), c.ReportedAt.UTC(), c.TopicID, c.Version}
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update topic: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update topic: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var count int
	if err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM topics WHERE id = ?", c.TopicID); err != nil {
		return fmt.Errorf("check topic: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("topic %d: %w", c.TopicID, ErrNotFound)
	}
	return fmt.Errorf("topic %d version %d: %w", c.TopicID, c.Version, ErrConflict)
}

func getTopic(ctx context.Context, q sqlx.QueryerContext, id int64) (*domain.Topic, error) {
	var row topicRow
	err := sqlx.GetContext(ctx, q, &row, "SELECT * FROM topics WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("topic %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	return row.toDomain(), nil
}

func (t topicRow) toDomain() *domain.Topic {
	return &domain.Topic{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Title:       t.Title,
		Interest:    t.Interest,
		Searches:    []string(t.Searches),
		Sources:     t.Sources,
		Contact:     domain.Contact(t.Contact),
		Checkpoint:  t.Checkpoint,
		LastReport:  t.LastReport,
		ReportsSent: t.ReportsSent,
		Version:     t.Version,
		CreatedAt:   t.CreatedAt,
	}
}
