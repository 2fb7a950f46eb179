package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sajidddd11/telegramtodo/internal/model"
	"github.com/Sajidddd11/telegramtodo/internal/todo"
	"github.com/Sajidddd11/telegramtodo/internal/todo/repository/sqlite"
	"github.com/Sajidddd11/telegramtodo/pkg/datemath"
	"github.com/Sajidddd11/telegramtodo/pkg/log"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newTestUseCase(t *testing.T) *implUseCase {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dm, err := datemath.NewParser("Asia/Dhaka")
	require.NoError(t, err)

	uc := New(log.NewNop(), sqlite.New(db, log.NewNop()), dm).(*implUseCase)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestCreate_Normalization(t *testing.T) {
	ctx := context.Background()
	sc := model.Scope{UserID: "u1"}

	tests := []struct {
		name         string
		input        todo.CreateInput
		wantPriority int
		wantDeadline time.Time
		wantErr      error
	}{
		{
			name:         "defaults",
			input:        todo.CreateInput{Title: "buy milk"},
			wantPriority: model.PriorityDefault,
			wantDeadline: fixedNow.AddDate(0, 0, 1),
		},
		{
			name:         "in-band priority kept",
			input:        todo.CreateInput{Title: "a", Priority: intPtr(9)},
			wantPriority: 9,
			wantDeadline: fixedNow.AddDate(0, 0, 1),
		},
		{
			name:         "out-of-band priority defaulted",
			input:        todo.CreateInput{Title: "a", Priority: intPtr(42)},
			wantPriority: model.PriorityDefault,
			wantDeadline: fixedNow.AddDate(0, 0, 1),
		},
		{
			name:         "zero priority defaulted",
			input:        todo.CreateInput{Title: "a", Priority: intPtr(0)},
			wantPriority: model.PriorityDefault,
			wantDeadline: fixedNow.AddDate(0, 0, 1),
		},
		{
			name:         "offset deadline converted to UTC",
			input:        todo.CreateInput{Title: "a", Deadline: "2024-05-03T18:00:00+06:00"},
			wantPriority: model.PriorityDefault,
			wantDeadline: time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC),
		},
		{
			name:    "missing title",
			input:   todo.CreateInput{Title: "   "},
			wantErr: todo.ErrTitleRequired,
		},
		{
			name:    "bad deadline",
			input:   todo.CreateInput{Title: "a", Deadline: "someday maybe"},
			wantErr: todo.ErrInvalidDeadline,
		},
	}

	uc := newTestUseCase(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.Create(ctx, sc, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, todo.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPriority, got.Priority)
			assert.True(t, got.Deadline.Equal(tt.wantDeadline), "deadline %v", got.Deadline)
			assert.Equal(t, time.UTC, got.Deadline.Location())
		})
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t)
	owner := model.Scope{UserID: "u1"}

	created, err := uc.Create(ctx, owner, todo.CreateInput{Title: "Buy milk", Priority: intPtr(6)})
	require.NoError(t, err)

	t.Run("partial", func(t *testing.T) {
		done := true
		got, err := uc.Update(ctx, owner, todo.UpdateInput{ID: created.ID, Completed: &done, Priority: intPtr(99)})
		require.NoError(t, err)
		assert.True(t, got.Completed)
		assert.Equal(t, model.PriorityDefault, got.Priority)
		assert.Equal(t, "Buy milk", got.Title)
	})

	t.Run("deadline normalized", func(t *testing.T) {
		got, err := uc.Update(ctx, owner, todo.UpdateInput{ID: created.ID, Deadline: strPtr("2024-06-01")})
		require.NoError(t, err)
		assert.True(t, got.Deadline.Equal(time.Date(2024, 6, 1, 17, 59, 59, 0, time.UTC)))
	})

	t.Run("nothing to update", func(t *testing.T) {
		_, err := uc.Update(ctx, owner, todo.UpdateInput{ID: created.ID})
		assert.ErrorIs(t, err, todo.ErrNothingToUpdate)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := uc.Update(ctx, owner, todo.UpdateInput{Title: strPtr("x")})
		assert.ErrorIs(t, err, todo.ErrIDRequired)
	})

	t.Run("foreign user", func(t *testing.T) {
		_, err := uc.Update(ctx, model.Scope{UserID: "u2"}, todo.UpdateInput{ID: created.ID, Title: strPtr("x")})
		assert.ErrorIs(t, err, todo.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t)
	owner := model.Scope{UserID: "u1"}

	created, err := uc.Create(ctx, owner, todo.CreateInput{Title: "Call mom"})
	require.NoError(t, err)

	_, err = uc.Delete(ctx, model.Scope{UserID: "u2"}, created.ID)
	assert.ErrorIs(t, err, todo.ErrNotFound)

	deleted, err := uc.Delete(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Call mom", deleted.Title)

	_, err = uc.Delete(ctx, owner, created.ID)
	assert.ErrorIs(t, err, todo.ErrNotFound)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t)
	sc := model.Scope{UserID: "u1"}

	_, err := uc.Create(ctx, sc, todo.CreateInput{Title: "Buy MILK"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, sc, todo.CreateInput{Title: "Gym", Description: "leg day, then milkshake"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, model.Scope{UserID: "u2"}, todo.CreateInput{Title: "milk for u2"})
	require.NoError(t, err)

	got, err := uc.Search(ctx, sc, todo.SearchInput{Query: "milk"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = uc.Search(ctx, sc, todo.SearchInput{Query: "  milkSHAKE "})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Gym", got[0].Title)

	got, err = uc.Search(ctx, sc, todo.SearchInput{Query: "   "})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = uc.Search(ctx, sc, todo.SearchInput{Query: "dentist"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	uc := newTestUseCase(t)
	got, err := uc.List(context.Background(), model.Scope{UserID: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTelegramLinking(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t)

	uid, err := uc.ResolveTelegramUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, uid)

	require.NoError(t, uc.LinkTelegramChat(ctx, model.Scope{UserID: "u1"}, 42))

	uid, err = uc.ResolveTelegramUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)
}
