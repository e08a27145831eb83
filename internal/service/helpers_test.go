package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"expense-ledger/internal/config"
	"expense-ledger/internal/database"
	"expense-ledger/internal/models"
	"expense-ledger/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a migrated sqlite store private to the test.
func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err, "init test database")
	require.NoError(t, database.AutoMigrate(db), "migrate test database")
	t.Cleanup(func() { _ = database.Close(db) })
	return repository.New(db)
}

func seedUser(t *testing.T, repo repository.Repository, email string) *models.User {
	t.Helper()
	u := &models.User{Name: email, Email: email, PasswordHash: "x"}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

func seedCategory(t *testing.T, repo repository.Repository, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	require.NoError(t, repo.CreateCategory(context.Background(), c))
	return c
}

func seedExpense(t *testing.T, repo repository.Repository, userID, categoryID, amount string, at time.Time) *models.Expense {
	t.Helper()
	e := &models.Expense{
		Amount:     decimal.RequireFromString(amount),
		Narration:  "seed " + amount,
		UserID:     userID,
		CategoryID: categoryID,
		CreatedAt:  at,
	}
	require.NoError(t, repo.CreateExpense(context.Background(), e))
	return e
}

func day(y int, m time.Month, d, h, min, s int) time.Time {
	return time.Date(y, m, d, h, min, s, 0, time.UTC)
}
