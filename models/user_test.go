package models

import (
	"strings"
	"testing"
)

const testSecret = "test-secret-key-for-jwt-testing-minimum-32-chars"

// TestValidateUsername tests username validation rules.
func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid alphanumeric", "johndoe", false},
		{"valid with underscore", "john_doe", false},
		{"valid with numbers", "user123", false},
		{"valid minimum length", "abc", false},
		{"too short", "ab", true},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 51), true},
		{"contains space", "john doe", true},
		{"contains hyphen", "john-doe", true},
		{"contains special char", "john$doe", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid long password", "mysecurepassword", false},
		{"valid exactly 8 chars", "12345678", false},
		{"too short 7 chars", "1234567", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	password := "my_secure_password_123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	if hash == "" || hash == password {
		t.Fatalf("HashPassword() = %q, want a bcrypt hash", hash)
	}

	if !CheckPassword(password, hash) {
		t.Error("CheckPassword() returned false for correct password")
	}
	if CheckPassword("wrong_password", hash) {
		t.Error("CheckPassword() returned true for wrong password")
	}

	// Salted: the same input hashes differently
	again, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	if again == hash {
		t.Error("HashPassword() produced identical hashes for the same input")
	}
}

func TestCreateAndAuthenticateUser(t *testing.T) {
	setupTestDB(t)

	user, err := CreateUser(UserRegisterInput{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}
	if user.GUID == "" || !user.IsActive {
		t.Errorf("CreateUser() = %+v", user)
	}

	if _, err := CreateUser(UserRegisterInput{Username: "alice", Password: "password456"}); err == nil ||
		!strings.Contains(err.Error(), "already exists") {
		t.Errorf("duplicate CreateUser() error = %v, want already exists", err)
	}

	if _, err := CreateUser(UserRegisterInput{Username: "bo", Password: "password123"}); err == nil {
		t.Error("CreateUser() accepted an invalid username")
	}

	tests := []struct {
		name     string
		input    UserLoginInput
		wantUser bool
	}{
		{"correct credentials", UserLoginInput{"alice", "password123"}, true},
		{"wrong password", UserLoginInput{"alice", "password999"}, false},
		{"unknown user", UserLoginInput{"nobody", "password123"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AuthenticateUser(tt.input)
			if err != nil {
				t.Fatalf("AuthenticateUser() unexpected error: %v", err)
			}
			if (got != nil) != tt.wantUser {
				t.Errorf("AuthenticateUser() = %+v, want user %v", got, tt.wantUser)
			}
			if got != nil && got.GUID != user.GUID {
				t.Errorf("GUID = %q, want %q", got.GUID, user.GUID)
			}
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	if err := InitJWT(testSecret); err != nil {
		t.Fatalf("InitJWT() unexpected error: %v", err)
	}

	user := &User{GUID: "test-guid-12345", Username: "testuser", IsActive: true}

	tokenString, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.UserGUID != user.GUID {
		t.Errorf("claims.UserGUID = %q, want %q", claims.UserGUID, user.GUID)
	}
	if claims.Username != user.Username {
		t.Errorf("claims.Username = %q, want %q", claims.Username, user.Username)
	}
	if claims.Issuer != TokenIssuer {
		t.Errorf("claims.Issuer = %q, want %q", claims.Issuer, TokenIssuer)
	}
}

func TestValidateTokenRejectsInvalid(t *testing.T) {
	if err := InitJWT(testSecret); err != nil {
		t.Fatalf("InitJWT() unexpected error: %v", err)
	}

	// Signed with a different key
	other := []byte("another-secret-that-is-also-32-chars-long")
	saved := jwtSecret
	jwtSecret = other
	foreign, err := GenerateToken(&User{GUID: "g", Username: "u"})
	jwtSecret = saved
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"garbage", "not.a.jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ0ZXN0In0"},
		{"foreign key", foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateToken(tt.token); err == nil {
				t.Errorf("ValidateToken(%q) expected error, got nil", tt.token)
			}
		})
	}
}

func TestInitJWTSecretLength(t *testing.T) {
	if err := InitJWT("too-short"); err == nil {
		t.Error("InitJWT() accepted a short secret")
	}
	// Empty falls back to the development key
	if err := InitJWT(""); err != nil {
		t.Errorf("InitJWT(\"\") unexpected error: %v", err)
	}
}
