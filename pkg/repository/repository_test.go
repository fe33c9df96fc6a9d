package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/topicwatch/pkg/domain"
)

// seedCandidates writes candidate items directly, outside of a cycle commit
func seedCandidates(t *testing.T, repos *Repositories, topicID int64, items []domain.VettedItem) {
	t.Helper()
	require.NoError(t, insertCandidates(context.Background(), repos.DB, topicID, items))
}

func setupTestDB(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewRepositories(context.Background(), Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func testSearches() []string {
	return []string{"solar tariffs", "solar import duties", "senate solar bill", "solar panel prices",
		"commerce department solar", "solar manufacturing jobs", "solar installers costs"}
}

func createTestTopic(t *testing.T, repos *Repositories) (*domain.Account, *domain.Topic) {
	t.Helper()
	acc := &domain.Account{Email: "reader@example.com"}
	require.NoError(t, repos.Account.CreateAccount(context.Background(), acc))
	topic := &domain.Topic{
		AccountID: acc.ID,
		Title:     "Solar tariffs",
		Interest:  "US tariffs on imported solar panels",
		Searches:  testSearches(),
		Sources:   5,
		Contact:   domain.ContactDaily,
	}
	require.NoError(t, repos.Topic.CreateTopic(context.Background(), topic))
	return acc, topic
}

func TestRepositories_Ping(t *testing.T) {
	repos := setupTestDB(t)
	require.NoError(t, repos.Ping(context.Background()))
}

func TestAccountRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	acc := &domain.Account{Email: " reader@example.com "}
	require.NoError(t, repos.Account.CreateAccount(ctx, acc))
	assert.NotZero(t, acc.ID)
	assert.Equal(t, "reader@example.com", acc.Email)

	got, err := repos.Account.GetAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", got.Email)
	assert.Zero(t, got.ReportsSent)

	got, err = repos.Account.GetAccountByEmail(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	err = repos.Account.CreateAccount(ctx, &domain.Account{Email: "reader@example.com"})
	require.ErrorIs(t, err, ErrConflict)

	err = repos.Account.CreateAccount(ctx, &domain.Account{Email: "  "})
	require.Error(t, err)

	_, err = repos.Account.GetAccount(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = repos.Account.GetAccountByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTopicRepository_CreateGetList(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	acc, topic := createTestTopic(t, repos)

	assert.NotZero(t, topic.ID)
	assert.Equal(t, int64(1), topic.Version)
	assert.Equal(t, topic.CreatedAt, topic.Checkpoint, "checkpoint starts at creation")
	assert.Equal(t, topic.CreatedAt, topic.LastReport, "last report starts at creation")

	got, err := repos.Topic.GetTopic(ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, testSearches(), got.Searches)
	assert.Equal(t, "Solar tariffs", got.Title)
	assert.Equal(t, 5, got.Sources)
	assert.Equal(t, domain.ContactDaily, got.Contact)
	assert.Equal(t, acc.ID, got.AccountID)
	assert.WithinDuration(t, topic.Checkpoint, got.Checkpoint, time.Millisecond)

	other := &domain.Account{Email: "other@example.com"}
	require.NoError(t, repos.Account.CreateAccount(ctx, other))
	second := &domain.Topic{AccountID: other.ID, Interest: "EU battery rules", Searches: testSearches(), Sources: 1}
	require.NoError(t, repos.Topic.CreateTopic(ctx, second))

	all, err := repos.Topic.ListTopics(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, topic.ID, all[0].ID)

	mine, err := repos.Topic.ListTopics(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "EU battery rules", mine[0].Interest)

	_, err = repos.Topic.GetTopic(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTopicRepository_CreateInvalid(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	tbl := []struct {
		name  string
		topic domain.Topic
	}{
		{"short plan", domain.Topic{AccountID: 1, Interest: "x", Searches: []string{"a"}, Sources: 1}},
		{"zero sources", domain.Topic{AccountID: 1, Interest: "x", Searches: testSearches(), Sources: 0}},
		{"no interest", domain.Topic{AccountID: 1, Searches: testSearches(), Sources: 1}},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			err := repos.Topic.CreateTopic(ctx, &tt.topic)
			require.Error(t, err)
			assert.Zero(t, tt.topic.ID)
		})
	}

	t.Run("unknown account", func(t *testing.T) {
		err := repos.Topic.CreateTopic(ctx, &domain.Topic{AccountID: 42, Interest: "x", Searches: testSearches(), Sources: 1})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTopicRepository_DeleteCascades(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	_, topic := createTestTopic(t, repos)

	seedCandidates(t, repos, topic.ID, []domain.VettedItem{
		{Title: "one", Link: "https://example.com/1"}, {Title: "two", Link: "https://example.com/2"},
	})

	require.NoError(t, repos.Topic.DeleteTopic(ctx, topic.ID))
	count, err := repos.Candidate.CountCandidates(ctx, topic.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.ErrorIs(t, repos.Topic.DeleteTopic(ctx, topic.ID), ErrNotFound)
}

func TestCandidateRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	_, topic := createTestTopic(t, repos)

	published := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	items := []domain.VettedItem{
		{Title: "Senate passes bill", Link: "https://reuters.com/a", SiteName: "Reuters", Time: published, Explanation: "vote"},
		{Title: "Installers warn", Link: "https://example.com/b", Explanation: "costs"},
	}
	seedCandidates(t, repos, topic.ID, items)

	got, err := repos.Candidate.ListCandidates(ctx, topic.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Senate passes bill", got[0].Title)
	assert.Equal(t, "Reuters", got[0].SiteName)
	require.NotNil(t, got[0].Published)
	assert.True(t, published.Equal(*got[0].Published))
	assert.Nil(t, got[1].Published)
	assert.Equal(t, topic.ID, got[1].TopicID)

	count, err := repos.Candidate.CountCandidates(ctx, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err = repos.Candidate.ListCandidates(ctx, topic.ID+1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTopicRepository_CommitCycle(t *testing.T) {
	ctx := context.Background()

	t.Run("accumulate", func(t *testing.T) {
		repos := setupTestDB(t)
		_, topic := createTestTopic(t, repos)
		now := time.Now().UTC().Add(time.Hour)

		updated, err := repos.Topic.CommitCycle(ctx, CycleCommit{
			TopicID: topic.ID, Version: topic.Version, Checkpoint: now,
			Add: []domain.VettedItem{{Title: "a", Link: "https://example.com/a"}},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated.Version)
		assert.WithinDuration(t, now, updated.Checkpoint, time.Millisecond)
		assert.WithinDuration(t, topic.LastReport, updated.LastReport, time.Millisecond)
		assert.Zero(t, updated.ReportsSent)

		count, err := repos.Candidate.CountCandidates(ctx, topic.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("fire", func(t *testing.T) {
		repos := setupTestDB(t)
		acc, topic := createTestTopic(t, repos)
		seedCandidates(t, repos, topic.ID, []domain.VettedItem{
			{Title: "a", Link: "https://example.com/a"}, {Title: "b", Link: "https://example.com/b"},
		})
		now := time.Now().UTC().Add(time.Hour)

		updated, err := repos.Topic.CommitCycle(ctx, CycleCommit{
			TopicID: topic.ID, Version: topic.Version, Checkpoint: now, Fired: true, ReportedAt: now,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, updated.ReportsSent)
		assert.WithinDuration(t, now, updated.LastReport, time.Millisecond)

		count, err := repos.Candidate.CountCandidates(ctx, topic.ID)
		require.NoError(t, err)
		assert.Zero(t, count)

		gotAcc, err := repos.Account.GetAccount(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, gotAcc.ReportsSent)
	})

	t.Run("stale version", func(t *testing.T) {
		repos := setupTestDB(t)
		_, topic := createTestTopic(t, repos)
		_, err := repos.Topic.CommitCycle(ctx, CycleCommit{TopicID: topic.ID, Version: topic.Version, Checkpoint: time.Now()})
		require.NoError(t, err)

		_, err = repos.Topic.CommitCycle(ctx, CycleCommit{
			TopicID: topic.ID, Version: topic.Version, Checkpoint: time.Now(),
			Add: []domain.VettedItem{{Title: "late", Link: "https://example.com/late"}},
		})
		require.ErrorIs(t, err, ErrConflict)

		count, err := repos.Candidate.CountCandidates(ctx, topic.ID)
		require.NoError(t, err)
		assert.Zero(t, count, "conflicting commit leaves nothing behind")
	})

	t.Run("deleted topic", func(t *testing.T) {
		repos := setupTestDB(t)
		_, err := repos.Topic.CommitCycle(ctx, CycleCommit{TopicID: 77, Version: 1, Checkpoint: time.Now()})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestWithLockRetry(t *testing.T) {
	t.Run("retries lock errors", func(t *testing.T) {
		calls := 0
		err := withLockRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("SQLITE_BUSY: database is locked")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on other errors", func(t *testing.T) {
		calls := 0
		err := withLockRetry(context.Background(), func() error {
			calls++
			return fmt.Errorf("topic 1: %w", ErrConflict)
		})
		require.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, 1, calls)
	})
}

func TestIsLockError(t *testing.T) {
	tbl := []struct {
		err  error
		lock bool
	}{
		{nil, false},
		{errors.New("SQLITE_BUSY: database is busy"), true},
		{errors.New("database is locked"), true},
		{errors.New("database table is locked"), true},
		{errors.New("syntax error"), false},
		{errors.New(""), false},
	}
	for i, tt := range tbl {
		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			assert.Equal(t, tt.lock, isLockError(tt.err))
		})
	}
}

func TestStringsSQL(t *testing.T) {
	var nilVal stringsSQL
	v, err := nilVal.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = stringsSQL{"a", "b"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, v.(string))

	var s stringsSQL
	require.NoError(t, s.Scan([]byte(`["x"]`)))
	assert.Equal(t, stringsSQL{"x"}, s)
	require.NoError(t, s.Scan(nil))
	assert.Empty(t, s)
	require.Error(t, s.Scan("not json"))
}
