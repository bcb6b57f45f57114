package entity

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxNameLength     = 50
	MaxEmailLength    = 50
	MinPasswordLength = 8
	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// PasswordHasher turns a plaintext password into a stored credential.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// User is a registered account. PasswordHash never leaves the process in
// serialized form.
type User struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// NewUser validates the profile fields and hashes password through h.
// The returned user has no ID or timestamps yet.
func NewUser(firstName, lastName, email, password string, isAdmin bool, h PasswordHasher) (User, error) {
	u := User{IsAdmin: isAdmin}
	if err := u.setFirstName(firstName); err != nil {
		return User{}, err
	}
	if err := u.setLastName(lastName); err != nil {
		return User{}, err
	}
	if err := u.setEmail(email); err != nil {
		return User{}, err
	}
	if err := u.SetPassword(password, h); err != nil {
		return User{}, err
	}
	return u, nil
}

// SetPassword validates and hashes a new password.
func (u *User) SetPassword(password string, h PasswordHasher) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	hash, err := h.Hash(password)
	if err != nil {
		return fmt.Errorf("entity: hash password: %w", err)
	}
	u.PasswordHash = hash
	return nil
}

// ValidatePassword checks the plaintext length bounds.
func ValidatePassword(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return invalid("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	case len(password) > MaxPasswordLength:
		return invalid("password", fmt.Sprintf("must be at most %d bytes", MaxPasswordLength))
	}
	return nil
}

var userSetters = map[string]setter[User]{
	"first_name": func(u *User, v any) error {
		s, err := stringValue("first_name", v)
		if err != nil {
			return err
		}
		return u.setFirstName(s)
	},
	"last_name": func(u *User, v any) error {
		s, err := stringValue("last_name", v)
		if err != nil {
			return err
		}
		return u.setLastName(s)
	},
	"email": func(u *User, v any) error {
		s, err := stringValue("email", v)
		if err != nil {
			return err
		}
		return u.setEmail(s)
	},
}

// Apply updates the profile fields present in fields. Credentials and the
// admin flag have no setter here.
func (u *User) Apply(fields Fields) error {
	return apply(u, fields, userSetters)
}

func (u *User) setFirstName(s string) error {
	if err := checkText("first_name", s, MaxNameLength); err != nil {
		return err
	}
	u.FirstName = s
	return nil
}

func (u *User) setLastName(s string) error {
	if err := checkText("last_name", s, MaxNameLength); err != nil {
		return err
	}
	u.LastName = s
	return nil
}

func (u *User) setEmail(s string) error {
	if err := checkText("email", s, MaxEmailLength); err != nil {
		return err
	}
	if !emailPattern.MatchString(s) {
		return invalid("email", "must be a valid email address")
	}
	u.Email = s
	return nil
}

// checkText rejects blank values and values longer than max runes.
// A max of zero means unbounded.
func checkText(field, s string, max int) error {
	if strings.TrimSpace(s) == "" {
		return invalid(field, "is required")
	}
	if max > 0 && utf8.RuneCountInString(s) > max {
		return invalid(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return nil
}
