package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyEmail    = errors.New("email is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 8 characters")
)

// User is a shop account. Email is the login identity; the same account can
// act as buyer and seller.
type User struct {
	ID        int64
	Email     string
	Username  string
	Password  string
	CreatedAt time.Time
}

// NewUser builds a user ensuring required invariants.
func NewUser(email, username, password string) (*User, error) {
	user := &User{}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetUsername(username); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// SetEmail trims and validates the login email.
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetUsername trims and validates the display name.
func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	u.Username = username
	return nil
}

// SetPassword validates basic password strength.
func (u *User) SetPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if len(password) < 8 {
		return ErrWeakPassword
	}
	u.Password = password
	return nil
}

// CheckPassword compares the stored password with the supplied credentials.
func (u *User) CheckPassword(password string) bool {
	return password != "" && u.Password == password
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetEmail(u.Email); err != nil {
		return err
	}
	if err := u.SetUsername(u.Username); err != nil {
		return err
	}
	return u.SetPassword(u.Password)
}
