package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

func TestBuildListQuery(t *testing.T) {
	category := 3

	tests := []struct {
		name      string
		filter    domain.QuestionFilter
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "no filter",
			filter:    domain.QuestionFilter{},
			wantQuery: "SELECT id, question, answer, category, difficulty FROM questions ORDER BY id",
			wantArgs:  nil,
		},
		{
			name:      "category only",
			filter:    domain.QuestionFilter{Category: &category},
			wantQuery: "SELECT id, question, answer, category, difficulty FROM questions WHERE category = $1 ORDER BY id",
			wantArgs:  []any{3},
		},
		{
			name:   "all conditions",
			filter: domain.QuestionFilter{Category: &category, Search: "title", ExcludeIDs: []int{1, 2}, Limit: 1},
			wantQuery: "SELECT id, question, answer, category, difficulty FROM questions" +
				" WHERE category = $1 AND strpos(lower(question), lower($2)) > 0 AND NOT (id = ANY($3::int8[]))" +
				" ORDER BY id LIMIT $4",
			wantArgs: []any{3, "title", []int{1, 2}, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildListQuery(tt.filter)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
