package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FieldError is a rejected request field with a client-facing message.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func fieldErr(field, msg string) *FieldError {
	return &FieldError{Field: field, Message: msg}
}

// Request bodies keep the raw JSON of every field so that a value of the wrong
// JSON type is reported per field, in a fixed order, instead of failing the
// whole decode.

type ExpenseRequest struct {
	Amount     json.RawMessage `json:"amount"`
	Narration  json.RawMessage `json:"narration"`
	CategoryID json.RawMessage `json:"categoryId"`
}

// ExpenseInput is a validated expense body.
type ExpenseInput struct {
	Amount     decimal.Decimal
	Narration  string
	CategoryID string
}

// ParseExpenseInput checks amount, narration and categoryId in that order.
func ParseExpenseInput(req ExpenseRequest) (ExpenseInput, error) {
	amount, ok := numberField(req.Amount)
	if !ok {
		return ExpenseInput{}, fieldErr("amount", "Amount must be a number")
	}
	narration, ok := stringField(req.Narration)
	if !ok {
		return ExpenseInput{}, fieldErr("narration", "Narration must be a string")
	}
	categoryID, ok := stringField(req.CategoryID)
	if !ok {
		return ExpenseInput{}, fieldErr("categoryId", "Category Id must be a string")
	}
	return ExpenseInput{Amount: amount, Narration: narration, CategoryID: categoryID}, nil
}

type RegisterRequest struct {
	Name     json.RawMessage `json:"name"`
	Email    json.RawMessage `json:"email"`
	Password json.RawMessage `json:"password"`
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// ParseRegisterInput checks name, email and password types and the password policy.
func ParseRegisterInput(req RegisterRequest) (RegisterInput, error) {
	name, ok := stringField(req.Name)
	if !ok {
		return RegisterInput{}, fieldErr("name", "Name must be a string")
	}
	email, ok := stringField(req.Email)
	if !ok {
		return RegisterInput{}, fieldErr("email", "Email must be a string")
	}
	password, ok := stringField(req.Password)
	if !ok {
		return RegisterInput{}, fieldErr("password", "Password must be a string")
	}
	if err := ValidatePassword(password); err != nil {
		return RegisterInput{}, fieldErr("password", "Password must be at least 8 characters")
	}
	return RegisterInput{Name: name, Email: email, Password: password}, nil
}

type LoginRequest struct {
	Email    json.RawMessage `json:"email"`
	Password json.RawMessage `json:"password"`
}

// ParseLoginInput never fails: non-string credentials simply cannot match a user.
func ParseLoginInput(req LoginRequest) (email, password string) {
	email, _ = stringField(req.Email)
	password, _ = stringField(req.Password)
	return email, password
}

type UpdateUserRequest struct {
	Name  json.RawMessage `json:"name"`
	Email json.RawMessage `json:"email"`
}

type UpdateUserInput struct {
	Name  string
	Email string
}

func ParseUpdateUserInput(req UpdateUserRequest) (UpdateUserInput, error) {
	name, ok := stringField(req.Name)
	if !ok {
		return UpdateUserInput{}, fieldErr("name", "name must be string")
	}
	email, ok := stringField(req.Email)
	if !ok {
		return UpdateUserInput{}, fieldErr("email", "email must be string")
	}
	if !strings.Contains(email, "@") {
		return UpdateUserInput{}, fieldErr("email", "Enter valid email")
	}
	return UpdateUserInput{Name: name, Email: email}, nil
}

type CategoryRequest struct {
	Name json.RawMessage `json:"name"`
}

func ParseCategoryName(req CategoryRequest) (string, error) {
	name, ok := stringField(req.Name)
	if !ok {
		return "", fieldErr("name", "Name must be a string")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fieldErr("name", "Name must not be empty")
	}
	if len(name) > 64 {
		return "", fieldErr("name", "Name too long, max 64 characters")
	}
	return name, nil
}

// stringField accepts only a JSON string.
func stringField(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// numberField accepts only a JSON number and keeps its exact decimal value.
func numberField(raw json.RawMessage) (decimal.Decimal, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return decimal.Decimal{}, false
	}
	if c := raw[0]; c != '-' && (c < '0' || c > '9') {
		return decimal.Decimal{}, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDate parses s as a calendar date and returns midnight UTC of that day.
// Full timestamps are accepted: they are moved to UTC first, then their time
// of day is dropped.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format %q, want YYYY-MM-DD", s)
}
