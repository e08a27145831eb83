package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expense-ledger/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrForeignKey = errors.New("referenced record missing")
)

// ExpenseFilter narrows FindExpenses. Zero-valued fields are ignored; the
// time window is half-open: From <= created_at < To.
type ExpenseFilter struct {
	UserID     string
	CategoryID string
	From       time.Time
	To         time.Time
}

// Repository is the store as seen by the services.
type Repository interface {
	// Transact runs fn against a transactional view of the store. Any error
	// returned by fn rolls back every write made through tx.
	Transact(ctx context.Context, fn func(tx Repository) error) error
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, c *models.Category) error
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateExpense(ctx context.Context, e *models.Expense) error
	GetExpense(ctx context.Context, id string) (*models.Expense, error)
	SaveExpense(ctx context.Context, e *models.Expense) error
	DeleteExpense(ctx context.Context, id string) error
	FindExpenses(ctx context.Context, f ExpenseFilter) ([]models.Expense, error)
}

// Store implements Repository on a gorm handle.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ Repository = (*Store)(nil)

func (s *Store) Transact(ctx context.Context, fn func(tx Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// translate maps gorm errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrForeignKey, err)
	}
	return err
}

// ---------- users ----------

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if err := translate(s.db.WithContext(ctx).Create(u).Error); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	if err := translate(s.db.WithContext(ctx).Save(u).Error); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// DeleteUser removes the user and every expense the user owns.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.Transact(ctx, func(tx Repository) error {
		db := tx.(*Store).db
		if err := db.Where("user_id = ?", id).Delete(&models.Expense{}).Error; err != nil {
			return fmt.Errorf("delete user expenses: %w", err)
		}
		res := db.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ---------- categories ----------

func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	if err := translate(s.db.WithContext(ctx).Create(c).Error); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC, id ASC").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// ---------- expenses ----------

// CreateExpense inserts e with its owner and category in a single row write.
func (s *Store) CreateExpense(ctx context.Context, e *models.Expense) error {
	if err := translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error); err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (s *Store) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	var e models.Expense
	if err := s.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (s *Store) SaveExpense(ctx context.Context, e *models.Expense) error {
	if err := translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error); err != nil {
		return fmt.Errorf("save expense: %w", err)
	}
	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Expense{})
	if res.Error != nil {
		return fmt.Errorf("delete expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindExpenses returns matching expenses ordered by creation time, then id.
func (s *Store) FindExpenses(ctx context.Context, f ExpenseFilter) ([]models.Expense, error) {
	q := s.db.WithContext(ctx).Model(&models.Expense{}).Preload("Category")
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}

	var expenses []models.Expense
	if err := q.Order("created_at ASC, id ASC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	return expenses, nil
}
