package service

import (
	"context"
	"testing"
	"time"

	"expense-ledger/internal/repository"
	"expense-ledger/internal/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceSuite struct {
	suite.Suite
	ctx    context.Context
	store  *repository.Store
	tokens *util.TokenService
	svc    *UserService
}

func (s *UserServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = newTestStore(s.T())
	s.tokens = util.NewTokenService("test-secret", "expense-ledger", time.Hour)
	s.svc = NewUserService(s.store, util.NewCredentialStore(bcrypt.MinCost), s.tokens)
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) register(email string) string {
	u, err := s.svc.Register(s.ctx, util.RegisterInput{Name: "Ada", Email: email, Password: "correct horse"})
	s.Require().NoError(err)
	return u.ID
}

func (s *UserServiceSuite) TestRegisterHashesPassword() {
	u, err := s.svc.Register(s.ctx, util.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "correct horse"})
	s.Require().NoError(err)
	s.NotEmpty(u.ID)
	s.NotEqual("correct horse", u.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct horse")))
}

func (s *UserServiceSuite) TestRegisterDuplicateEmail() {
	s.register("ada@example.com")

	_, err := s.svc.Register(s.ctx, util.RegisterInput{Name: "Other", Email: "ada@example.com", Password: "password1"})
	s.Equal(KindValidation, KindOf(err))
	s.EqualError(err, "Email already in use")
}

func (s *UserServiceSuite) TestRegisterShortPassword() {
	_, err := s.svc.Register(s.ctx, util.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "short"})
	s.EqualError(err, "Password must be at least 8 characters")
}

func (s *UserServiceSuite) TestLogin() {
	id := s.register("ada@example.com")

	token, err := s.svc.Login(s.ctx, "ada@example.com", "correct horse")
	s.Require().NoError(err)

	got, err := s.tokens.Verify(token)
	s.Require().NoError(err)
	s.Equal(util.Identity{UserID: id, Email: "ada@example.com"}, got)
}

func (s *UserServiceSuite) TestLoginFailures() {
	s.register("ada@example.com")

	_, err := s.svc.Login(s.ctx, "nobody@example.com", "correct horse")
	s.Equal(KindUnauthorized, KindOf(err))
	s.EqualError(err, "Invalid email")

	_, err = s.svc.Login(s.ctx, "ada@example.com", "wrong horse")
	s.Equal(KindUnauthorized, KindOf(err))
	s.EqualError(err, "Invalid password")
}

func (s *UserServiceSuite) TestGetAndExists() {
	id := s.register("ada@example.com")

	u, err := s.svc.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("ada@example.com", u.Email)

	ok, err := s.svc.Exists(s.ctx, id)
	s.Require().NoError(err)
	s.True(ok)

	missing := uuid.NewString()
	_, err = s.svc.Get(s.ctx, missing)
	s.EqualError(err, "User not found")

	ok, err = s.svc.Exists(s.ctx, missing)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *UserServiceSuite) TestUpdate() {
	id := s.register("ada@example.com")
	s.register("bob@example.com")

	u, err := s.svc.Update(s.ctx, id, util.UpdateUserInput{Name: "Ada L", Email: "ada@lovelace.dev"})
	s.Require().NoError(err)
	s.Equal("Ada L", u.Name)
	s.Equal("ada@lovelace.dev", u.Email)

	// unchanged email is not a conflict with itself
	_, err = s.svc.Update(s.ctx, id, util.UpdateUserInput{Name: "Ada", Email: "ada@lovelace.dev"})
	s.Require().NoError(err)

	_, err = s.svc.Update(s.ctx, id, util.UpdateUserInput{Name: "Ada", Email: "bob@example.com"})
	s.EqualError(err, "Email already in use")

	_, err = s.svc.Update(s.ctx, uuid.NewString(), util.UpdateUserInput{Name: "x", Email: "x@example.com"})
	s.Equal(KindNotFound, KindOf(err))
	s.EqualError(err, "User Not Found")
}

func (s *UserServiceSuite) TestDeleteRemovesExpenses() {
	id := s.register("ada@example.com")
	other := s.register("bob@example.com")
	cat := seedCategory(s.T(), s.store, "Food")
	seedExpense(s.T(), s.store, id, cat.ID, "5", day(2024, 1, 1, 8, 0, 0))
	kept := seedExpense(s.T(), s.store, other, cat.ID, "7", day(2024, 1, 1, 9, 0, 0))

	s.Require().NoError(s.svc.Delete(s.ctx, id))

	all, err := s.store.FindExpenses(s.ctx, repository.ExpenseFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(kept.ID, all[0].ID)

	err = s.svc.Delete(s.ctx, id)
	s.Equal(KindNotFound, KindOf(err))
}
