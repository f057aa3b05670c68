package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

const testSchema = `
	DROP TABLE IF EXISTS questions;
	DROP TABLE IF EXISTS categories;
	CREATE TABLE categories (id SERIAL PRIMARY KEY, type TEXT NOT NULL);
	CREATE TABLE questions (
		id SERIAL PRIMARY KEY,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		category INTEGER NOT NULL,
		difficulty INTEGER NOT NULL
	);
`

// newTestPool connects to TRIVIA_TEST_DATABASE_URL and resets the schema.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TRIVIA_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TRIVIA_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, testSchema)
	require.NoError(t, err)
	return pool
}

func TestQuestionRepository(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewQuestionRepository(pool)

	questions := []*domain.Question{
		{Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", Category: 3, Difficulty: 2},
		{Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: 4, Difficulty: 2},
		{Question: "What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", Answer: "Apollo 13", Category: 5, Difficulty: 4},
	}
	require.NoError(t, repo.BulkCreateQuestions(ctx, questions))
	for _, q := range questions {
		assert.NotZero(t, q.ID)
	}

	t.Run("search is case-insensitive", func(t *testing.T) {
		got, err := repo.List(ctx, domain.QuestionFilter{Search: "LAKE"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Lake Victoria", got[0].Answer)
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		got, err := repo.List(ctx, domain.QuestionFilter{Search: "%"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("exclude and limit", func(t *testing.T) {
		got, err := repo.List(ctx, domain.QuestionFilter{ExcludeIDs: []int{questions[0].ID}, Limit: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, questions[1].ID, got[0].ID)
	})

	t.Run("create, get and delete", func(t *testing.T) {
		q := &domain.Question{Question: "X?", Answer: "Y", Category: 1, Difficulty: 1}
		require.NoError(t, repo.CreateQuestion(ctx, q))

		got, err := repo.GetByID(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, q, got)

		require.NoError(t, repo.DeleteQuestion(ctx, q.ID))
		assert.ErrorIs(t, repo.DeleteQuestion(ctx, q.ID), domain.ErrQuestionNotFound)

		_, err = repo.GetByID(ctx, q.ID)
		assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
	})
}

func TestCategoryRepository(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewCategoryRepository(pool)

	require.NoError(t, repo.UpsertCategories(ctx, []*domain.Category{
		{ID: 2, Type: "Art"},
		{ID: 1, Type: "Science"},
	}))
	require.NoError(t, repo.UpsertCategories(ctx, []*domain.Category{{ID: 2, Type: "Arts"}}))

	categories, err := repo.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*domain.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Arts"}}, categories)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
