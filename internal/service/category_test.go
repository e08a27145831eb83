package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService(t *testing.T) {
	ctx := context.Background()
	svc := NewCategoryService(newTestStore(t))

	food, err := svc.Create(ctx, "Food")
	require.NoError(t, err)
	assert.NotEmpty(t, food.ID)

	_, err = svc.Create(ctx, "Food")
	assert.Equal(t, KindValidation, KindOf(err))
	assert.EqualError(t, err, "Category already exists")

	// names compare case-sensitively
	_, err = svc.Create(ctx, "food")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Bills")
	require.NoError(t, err)

	cats, err := svc.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Bills", "Food", "food"}, names)

	got, err := svc.Get(ctx, food.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", got.Name)

	_, err = svc.Get(ctx, uuid.NewString())
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.EqualError(t, err, "Category not found")
}
