// backend/internal/domain/user/entity.go
package user

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// User is a storefront account. Email is unique and stored lower-cased.
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Phone        string     `json:"phone"`
	Birthday     *time.Time `json:"birthday"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Patch is a partial profile update. nil means "no change".
type Patch struct {
	Name     *string
	Phone    *string
	Birthday *time.Time
}

var (
	ErrNotFound        = errors.New("user: not found")
	ErrEmailTaken      = errors.New("user: email already registered")
	ErrInvalidName     = errors.New("user: invalid name")
	ErrInvalidEmail    = errors.New("user: invalid email")
	ErrWeakPassword    = errors.New("user: weak password")
	ErrInvalidBirthday = errors.New("user: invalid birthday")
)

// BirthdayLayout is the accepted birthday format.
const BirthdayLayout = "2006-01-02"

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// New builds a user. passwordHash must already be hashed.
func New(name, email, passwordHash string, now time.Time) (User, error) {
	u := User{
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}
	if err := u.validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

// Apply merges a profile patch.
func (u *User) Apply(p Patch, now time.Time) error {
	if p.Name != nil {
		n := strings.TrimSpace(*p.Name)
		if n == "" {
			return ErrInvalidName
		}
		u.Name = n
	}
	if p.Phone != nil {
		u.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Birthday != nil {
		b := p.Birthday.UTC()
		u.Birthday = &b
	}
	u.UpdatedAt = now.UTC()
	return nil
}

func (u User) validate() error {
	if u.Name == "" {
		return ErrInvalidName
	}
	if !ValidEmail(u.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail checks the address shape.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidatePassword requires at least 8 characters with one uppercase letter and one digit.
func ValidatePassword(pw string) error {
	if len(pw) < 8 {
		return ErrWeakPassword
	}
	var upper, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !digit {
		return ErrWeakPassword
	}
	return nil
}

// ParseBirthday parses a YYYY-MM-DD date. Empty input returns (nil, nil).
func ParseBirthday(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(BirthdayLayout, s)
	if err != nil {
		return nil, ErrInvalidBirthday
	}
	return &t, nil
}
