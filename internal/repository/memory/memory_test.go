package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

func TestQuestionStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewQuestionStore()
	require.NoError(t, store.BulkCreateQuestions(ctx, []*domain.Question{
		{Question: "What boxer's original name is Cassius Clay?", Answer: "Muhammad Ali", Category: 4, Difficulty: 1},
		{Question: "Which Dutch graphic artist was a title character?", Answer: "Escher", Category: 2, Difficulty: 1},
		{Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: 1, Difficulty: 4},
	}))

	all, err := store.List(ctx, domain.QuestionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{all[0].ID, all[1].ID, all[2].ID})

	found, err := store.List(ctx, domain.QuestionFilter{Search: "TITLE"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Escher", found[0].Answer)

	inCategory, err := store.List(ctx, domain.InCategory(1))
	require.NoError(t, err)
	require.Len(t, inCategory, 1)
	assert.Equal(t, 3, inCategory[0].ID)

	unseen, err := store.List(ctx, domain.QuestionFilter{ExcludeIDs: []int{1}, Limit: 1})
	require.NoError(t, err)
	require.Len(t, unseen, 1)
	assert.Equal(t, 2, unseen[0].ID)
}

func TestQuestionStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewQuestionStore()
	q := &domain.Question{Question: "X?", Answer: "Y", Category: 1, Difficulty: 1}
	require.NoError(t, store.CreateQuestion(ctx, q))

	require.NoError(t, store.DeleteQuestion(ctx, q.ID))
	assert.ErrorIs(t, store.DeleteQuestion(ctx, q.ID), domain.ErrQuestionNotFound)

	_, err := store.GetByID(ctx, q.ID)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)

	// IDs are never reused
	next := &domain.Question{Question: "Z?", Answer: "W", Category: 1, Difficulty: 1}
	require.NoError(t, store.CreateQuestion(ctx, next))
	assert.Greater(t, next.ID, q.ID)
}

func TestCategoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewCategoryStore(domain.Category{ID: 2, Type: "Art"}, domain.Category{ID: 1, Type: "Science"})

	categories, err := store.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*domain.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}, categories)

	_, err = store.GetByID(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
