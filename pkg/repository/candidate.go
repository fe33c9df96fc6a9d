package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/topicwatch/pkg/domain"
)

// CandidateRepository handles vetted items waiting for a report
type CandidateRepository struct {
	db *sqlx.DB
}

type candidateRow struct {
	ID          int64      `db:"id"`
	TopicID     int64      `db:"topic_id"`
	Title       string     `db:"title"`
	Link        string     `db:"link"`
	SiteName    string     `db:"site_name"`
	Published   *time.Time `db:"published"`
	Explanation string     `db:"explanation"`
	CreatedAt   time.Time  `db:"created_at"`
}

// NewCandidateRepository creates a new candidate repository
func NewCandidateRepository(db *sqlx.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// ListCandidates returns candidate items of the topic in insertion order
func (r *CandidateRepository) ListCandidates(ctx context.Context, topicID int64) ([]domain.CandidateItem, error) {
	var rows []candidateRow
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM candidate_items WHERE topic_id = ? ORDER BY id", topicID)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	res := make([]domain.CandidateItem, len(rows))
	for i, row := range rows {
		res[i] = row.toDomain()
	}
	return res, nil
}

// CountCandidates returns the number of candidate items of the topic
func (r *CandidateRepository) CountCandidates(ctx context.Context, topicID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM candidate_items WHERE topic_id = ?", topicID); err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return count, nil
}

// insertCandidates writes vetted items of the topic, callers own the transaction and the
// topic version bump
func insertCandidates(ctx context.Context, ex sqlx.ExecerContext, topicID int64, items []domain.VettedItem) error {
	now := time.Now().UTC()
	for _, item := range items {
		c := domain.CandidateFromVetted(topicID, item)
		var published *time.Time
		if c.Published != nil {
			ts := c.Published.UTC()
			published = &ts
		}
		_, err := ex.ExecContext(ctx, `
			INSERT INTO candidate_items (topic_id, title, link, site_name, published, explanation, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			topicID, c.Title, c.Link, c.SiteName, published, c.Explanation, now)
		if err != nil {
			return fmt.Errorf("insert candidate %q: %w", c.Title, err)
		}
	}
	return nil
}

func (c candidateRow) toDomain() domain.CandidateItem {
	return domain.CandidateItem{
		ID:          c.ID,
		TopicID:     c.TopicID,
		Title:       c.Title,
		Link:        c.Link,
		SiteName:    c.SiteName,
		Published:   c.Published,
		Explanation: c.Explanation,
		CreatedAt:   c.CreatedAt,
	}
}
