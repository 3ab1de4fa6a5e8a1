package models

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/serr"
	"golang.org/x/crypto/bcrypt"
)

// User is an account that owns notes.
// PasswordHash uses bcrypt and is never exposed in JSON.
type User struct {
	GUID         string    `json:"guid"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUsersTableSQL returns the DDL for the users table
const CreateUsersTableSQL = `
CREATE TABLE IF NOT EXISTS users (
    guid          VARCHAR PRIMARY KEY,
    username      VARCHAR NOT NULL UNIQUE,
    password_hash VARCHAR NOT NULL,
    is_active     BOOLEAN DEFAULT true,
    created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// UserRegisterInput carries the plaintext password; it is hashed before storage.
type UserRegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserLoginInput contains credentials for authentication
type UserLoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Cost of 12 keeps login around a quarter second
const bcryptCost = 12

// HashPassword creates a bcrypt hash of the plaintext password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", serr.Wrap(err, "failed to hash password")
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against its hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword requires at least 8 characters
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return serr.New("password must be at least 8 characters")
	}
	return nil
}

// ValidateUsername requires 3-50 characters, alphanumeric and underscores only.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return serr.New("username must be at least 3 characters")
	}
	if len(username) > 50 {
		return serr.New("username must be at most 50 characters")
	}
	for _, c := range username {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_') {
			return serr.New("username can only contain letters, numbers, and underscores")
		}
	}
	return nil
}

// CreateUser validates and stores a new account
func CreateUser(input UserRegisterInput) (*User, error) {
	if err := ValidateUsername(input.Username); err != nil {
		return nil, err
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	passwordHash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		GUID:         uuid.NewString(),
		Username:     input.Username,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = writeDB(`
		INSERT INTO users (guid, username, password_hash, is_active, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, user.GUID, user.Username, user.PasswordHash, user.IsActive, user.CreatedAt)
	if err != nil {
		errStr := strings.ToLower(err.Error())
		if strings.Contains(errStr, "unique") || strings.Contains(errStr, "duplicate") ||
			strings.Contains(errStr, "constraint") {
			return nil, serr.New("username already exists")
		}
		return nil, serr.Wrap(err, "failed to create user")
	}

	return user, nil
}

// GetUserByUsername returns nil, nil if the user is not found
func GetUserByUsername(username string) (*User, error) {
	return getUser(`WHERE username = ?`, username)
}

// GetUserByGUID returns nil, nil if the user is not found
func GetUserByGUID(guid string) (*User, error) {
	return getUser(`WHERE guid = ?`, guid)
}

func getUser(where string, arg string) (*User, error) {
	row, err := queryRowDB(`
		SELECT guid, username, password_hash, is_active, created_at
		FROM users `+where, arg)
	if err != nil {
		return nil, err
	}

	user := &User{}
	err = row.Scan(&user.GUID, &user.Username, &user.PasswordHash, &user.IsActive, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, serr.Wrap(err, "failed to get user")
	}
	return user, nil
}

// AuthenticateUser returns the user when the credentials match.
// Returns nil, nil for an unknown user or a wrong password.
func AuthenticateUser(input UserLoginInput) (*User, error) {
	user, err := GetUserByUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if !user.IsActive {
		return nil, serr.New("account is disabled")
	}
	if !CheckPassword(input.Password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}
