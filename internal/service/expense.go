package service

import (
	"context"
	"errors"
	"time"

	"expense-ledger/internal/models"
	"expense-ledger/internal/repository"
	"expense-ledger/internal/util"
)

// ExpenseQuery holds the raw list parameters. At most one of the category
// filter and the date range applies, in that order of precedence; the range
// is used only when both bounds are given.
type ExpenseQuery struct {
	Filter    string
	StartDate string
	EndDate   string
}

// ExpenseService creates, reads, updates, deletes, lists and summarizes expenses.
type ExpenseService struct {
	repo repository.Repository
}

func NewExpenseService(repo repository.Repository) *ExpenseService {
	return &ExpenseService{repo: repo}
}

// dateWindow turns inclusive calendar dates into the half-open window
// [start, end+1day).
func dateWindow(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := util.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, Validation("Invalid startDate")
	}
	end, err := util.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, Validation("Invalid endDate")
	}
	return start, end.AddDate(0, 0, 1), nil
}

// Query resolves q into the caller's expenses, oldest first.
func (s *ExpenseService) Query(ctx context.Context, userID string, q ExpenseQuery) ([]models.Expense, error) {
	filter := repository.ExpenseFilter{UserID: userID}

	switch {
	case q.Filter != "":
		cat, err := s.repo.GetCategoryByName(ctx, q.Filter)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, NotFound("Category not found")
			}
			return nil, Internal(err)
		}
		filter.CategoryID = cat.ID
	case q.StartDate != "" && q.EndDate != "":
		from, to, err := dateWindow(q.StartDate, q.EndDate)
		if err != nil {
			return nil, err
		}
		filter.From, filter.To = from, to
	}

	expenses, err := s.repo.FindExpenses(ctx, filter)
	if err != nil {
		return nil, Internal(err)
	}
	return expenses, nil
}

// Summary totals the caller's expenses, optionally within a date range.
func (s *ExpenseService) Summary(ctx context.Context, userID, startDate, endDate string) (Summary, error) {
	filter := repository.ExpenseFilter{UserID: userID}
	if startDate != "" && endDate != "" {
		from, to, err := dateWindow(startDate, endDate)
		if err != nil {
			return Summary{}, err
		}
		filter.From, filter.To = from, to
	}

	expenses, err := s.repo.FindExpenses(ctx, filter)
	if err != nil {
		return Summary{}, Internal(err)
	}
	return Summarize(expenses), nil
}

// errOwnerGone is returned when a still-valid token outlives its account.
var errOwnerGone = Unauthorized("User no longer exists")

// Create stores a new expense owned by userID. The owner and category checks
// and the insert share one transaction, and owner and category are written
// with the row.
func (s *ExpenseService) Create(ctx context.Context, userID string, in util.ExpenseInput) (*models.Expense, error) {
	var created *models.Expense
	err := s.repo.Transact(ctx, func(tx repository.Repository) error {
		if _, err := tx.GetUser(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return errOwnerGone
			}
			return err
		}

		cat, err := tx.GetCategory(ctx, in.CategoryID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NotFound("Category not found")
			}
			return err
		}

		e := &models.Expense{
			Amount:     in.Amount,
			Narration:  in.Narration,
			UserID:     userID,
			CategoryID: cat.ID,
		}
		if err := tx.CreateExpense(ctx, e); err != nil {
			if errors.Is(err, repository.ErrForeignKey) {
				return errOwnerGone
			}
			return err
		}
		e.Category = cat
		created = e
		return nil
	})
	if err != nil {
		return nil, asInternal(err)
	}
	return created, nil
}

// Get returns any expense by id, whoever owns it.
func (s *ExpenseService) Get(ctx context.Context, id string) (*models.Expense, error) {
	e, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Expense not found")
		}
		return nil, Internal(err)
	}
	return e, nil
}

// Update overwrites amount, narration and category. The owner never changes.
func (s *ExpenseService) Update(ctx context.Context, id string, in util.ExpenseInput) (*models.Expense, error) {
	var updated *models.Expense
	err := s.repo.Transact(ctx, func(tx repository.Repository) error {
		e, err := tx.GetExpense(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NotFound("Expense not found")
			}
			return err
		}

		cat, err := tx.GetCategory(ctx, in.CategoryID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NotFound("Category not found")
			}
			return err
		}

		e.Amount = in.Amount
		e.Narration = in.Narration
		e.CategoryID = cat.ID
		if err := tx.SaveExpense(ctx, e); err != nil {
			if errors.Is(err, repository.ErrForeignKey) {
				return NotFound("Category not found")
			}
			return err
		}
		e.Category = cat
		updated = e
		return nil
	})
	if err != nil {
		return nil, asInternal(err)
	}
	return updated, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("Expense not found")
		}
		return Internal(err)
	}
	return nil
}
