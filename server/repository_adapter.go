package server

import (
	"context"

	"github.com/umputun/topicwatch/pkg/domain"
	"github.com/umputun/topicwatch/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Store interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// CreateAccount registers an account
func (r *RepositoryAdapter) CreateAccount(ctx context.Context, acc *domain.Account) error {
	return r.repos.Account.CreateAccount(ctx, acc)
}

// GetAccount returns account by ID
func (r *RepositoryAdapter) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return r.repos.Account.GetAccount(ctx, id)
}

// CreateTopic stores a new topic
func (r *RepositoryAdapter) CreateTopic(ctx context.Context, topic *domain.Topic) error {
	return r.repos.Topic.CreateTopic(ctx, topic)
}

// GetTopic returns topic by ID
func (r *RepositoryAdapter) GetTopic(ctx context.Context, id int64) (*domain.Topic, error) {
	return r.repos.Topic.GetTopic(ctx, id)
}

// ListTopics returns topics of the account, all topics for accountID 0
func (r *RepositoryAdapter) ListTopics(ctx context.Context, accountID int64) ([]domain.Topic, error) {
	return r.repos.Topic.ListTopics(ctx, accountID)
}

// DeleteTopic removes the topic
func (r *RepositoryAdapter) DeleteTopic(ctx context.Context, id int64) error {
	return r.repos.Topic.DeleteTopic(ctx, id)
}

// CountCandidates returns the number of items waiting for the next report
func (r *RepositoryAdapter) CountCandidates(ctx context.Context, topicID int64) (int, error) {
	return r.repos.Candidate.CountCandidates(ctx, topicID)
}
