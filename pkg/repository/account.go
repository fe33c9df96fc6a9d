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

// AccountRepository handles account records
type AccountRepository struct {
	db *sqlx.DB
}

type accountRow struct {
	ID          int64     `db:"id"`
	Email       string    `db:"email"`
	ReportsSent int       `db:"reports_sent"`
	CreatedAt   time.Time `db:"created_at"`
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateAccount inserts a new account, ErrConflict if the email is already registered
func (r *AccountRepository) CreateAccount(ctx context.Context, acc *domain.Account) error {
	email := strings.TrimSpace(acc.Email)
	if email == "" {
		return fmt.Errorf("create account: email is required")
	}
	now := time.Now().UTC()

	var id int64
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "INSERT INTO accounts (email, created_at) VALUES (?, ?)", email, now)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if isUniqueError(err) {
		return fmt.Errorf("create account %s: %w", email, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	acc.ID, acc.Email, acc.CreatedAt, acc.ReportsSent = id, email, now, 0
	return nil
}

// GetAccount retrieves an account by ID
func (r *AccountRepository) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	var row accountRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM accounts WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return row.toDomain(), nil
}

// GetAccountByEmail retrieves an account by its email
func (r *AccountRepository) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var row accountRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM accounts WHERE email = ?", strings.TrimSpace(email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return row.toDomain(), nil
}

func (a accountRow) toDomain() *domain.Account {
	return &domain.Account{ID: a.ID, Email: a.Email, ReportsSent: a.ReportsSent, CreatedAt: a.CreatedAt}
}
