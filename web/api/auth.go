package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"scratch/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// AuthResponse contains the user and token returned on successful authentication
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Health handles GET /api/v1/health
func Health(ctx rweb.Context) error {
	return writeSuccess(ctx, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "scratch",
	})
}

// Register creates a new user account and returns a JWT token.
// POST /api/v1/auth/register
//
// Request body:
//
//	{ "username": "johndoe", "password": "SecurePass123!" }
//
// Errors:
//   - 400: Invalid input (missing/weak password, invalid username)
//   - 409: Username already exists
func Register(ctx rweb.Context) error {
	var input models.UserRegisterInput
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	if input.Username == "" {
		return writeError(ctx, http.StatusBadRequest, "username is required")
	}
	if input.Password == "" {
		return writeError(ctx, http.StatusBadRequest, "password is required")
	}

	resp, status, err := RegisterUser(input)
	if err != nil {
		return writeError(ctx, status, err.Error())
	}
	return writeSuccess(ctx, http.StatusCreated, resp)
}

// RegisterUser creates the account and issues its token.
// The returned status is meant for the caller's error response.
func RegisterUser(input models.UserRegisterInput) (*AuthResponse, int, error) {
	user, err := models.CreateUser(input)
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "already exists") {
			return nil, http.StatusConflict, serr.New("username already exists")
		}
		if strings.Contains(errMsg, "must be") || strings.Contains(errMsg, "can only") {
			return nil, http.StatusBadRequest, err
		}
		logger.LogErr(serr.Wrap(err, "failed to create user"), "username", input.Username)
		return nil, http.StatusInternalServerError, serr.New("failed to create user")
	}

	token, err := models.GenerateToken(user)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to generate token"), "user_guid", user.GUID)
		return nil, http.StatusInternalServerError, serr.New("failed to generate token")
	}

	logger.Info("User registered", "username", user.Username)
	return &AuthResponse{User: *user, Token: token}, http.StatusCreated, nil
}

// Login authenticates a user and returns a JWT token.
// POST /api/v1/auth/login
//
// Errors:
//   - 400: Missing username or password
//   - 401: Invalid credentials
//   - 403: Account is disabled
func Login(ctx rweb.Context) error {
	var input models.UserLoginInput
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	if input.Username == "" {
		return writeError(ctx, http.StatusBadRequest, "username is required")
	}
	if input.Password == "" {
		return writeError(ctx, http.StatusBadRequest, "password is required")
	}

	resp, status, err := LoginUser(input)
	if err != nil {
		return writeError(ctx, status, err.Error())
	}
	return writeSuccess(ctx, http.StatusOK, resp)
}

// LoginUser checks the credentials and issues a token
func LoginUser(input models.UserLoginInput) (*AuthResponse, int, error) {
	user, err := models.AuthenticateUser(input)
	if err != nil {
		if strings.Contains(err.Error(), "disabled") {
			return nil, http.StatusForbidden, serr.New("account is disabled")
		}
		logger.LogErr(serr.Wrap(err, "authentication error"), "username", input.Username)
		return nil, http.StatusInternalServerError, serr.New("authentication error")
	}

	if user == nil {
		// Don't reveal whether the username exists
		return nil, http.StatusUnauthorized, serr.New("invalid credentials")
	}

	token, err := models.GenerateToken(user)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to generate token"), "user_guid", user.GUID)
		return nil, http.StatusInternalServerError, serr.New("failed to generate token")
	}

	return &AuthResponse{User: *user, Token: token}, http.StatusOK, nil
}

// GetCurrentUser returns the authenticated user's profile.
// GET /api/v1/auth/me
func GetCurrentUser(ctx rweb.Context) error {
	userGUID := GetCurrentUserGUID(ctx)

	user, err := models.GetUserByGUID(userGUID)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to get user"), "user_guid", userGUID)
		return writeError(ctx, http.StatusInternalServerError, "failed to get user")
	}
	if user == nil {
		return writeError(ctx, http.StatusUnauthorized, "user not found")
	}

	return writeSuccess(ctx, http.StatusOK, user)
}

// GetCurrentUserGUID extracts the user GUID from the request context.
// Returns empty string if not authenticated.
func GetCurrentUserGUID(ctx rweb.Context) string {
	guid, _ := ctx.Get("user_guid").(string)
	return guid
}

// IsAuthenticated checks if the request has valid authentication.
func IsAuthenticated(ctx rweb.Context) bool {
	auth, _ := ctx.Get("authenticated").(bool)
	return auth
}
