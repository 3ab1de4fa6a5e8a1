package web

import (
	"net/http"
	"strings"
	"time"

	"scratch/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// tokenCookie carries the JWT for the server-rendered pages
const tokenCookie = "scratch_token"

// CorsMiddleware handles CORS headers for cross-origin requests
func CorsMiddleware(c rweb.Context) error {
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers",
		"Content-Type, Authorization, X-Requested-With, "+models.BodyEncodingHeader)

	// Handle preflight OPTIONS requests
	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}

	return c.Next()
}

// JWTAuthMiddleware validates JWT tokens and populates user context.
// The token comes from the Bearer Authorization header, or from the page
// cookie when there is no header. Requests without a valid token continue
// unauthenticated; RequireAuth does the blocking.
func JWTAuthMiddleware(c rweb.Context) error {
	tokenString := ""
	if authHeader := c.Request().Header("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	} else if cookie, err := c.GetCookie(tokenCookie); err == nil {
		tokenString = cookie
	}

	if tokenString == "" {
		c.Set("user_guid", "")
		c.Set("authenticated", false)
		return c.Next()
	}

	claims, err := models.ValidateToken(tokenString)
	if err != nil {
		// Don't log every invalid token attempt
		c.Set("user_guid", "")
		c.Set("authenticated", false)
		return c.Next()
	}

	c.Set("user_guid", claims.UserGUID)
	c.Set("username", claims.Username)
	c.Set("authenticated", true)

	return c.Next()
}

// RequireAuth blocks unauthenticated requests to the protected API paths.
// It must run after JWTAuthMiddleware.
func RequireAuth(c rweb.Context) error {
	if !isProtectedAPIPath(c.Request().Path()) {
		return c.Next()
	}

	authenticated, _ := c.Get("authenticated").(bool)
	if !authenticated {
		c.SetStatus(http.StatusUnauthorized)
		return c.WriteJSON(map[string]interface{}{
			"success": false,
			"error":   "authentication required",
		})
	}
	return c.Next()
}

func isProtectedAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/v1/notes") || path == "/api/v1/auth/me"
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("X-Frame-Options", "DENY")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")

	// The pages use inline styles and plain forms only
	csp := []string{
		"default-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"form-action 'self'",
	}
	c.Response().SetHeader("Content-Security-Policy", strings.Join(csp, "; "))

	return c.Next()
}

// LoggingMiddleware provides detailed request logging
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()

	logger.Debug("Request started",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
	)

	err := c.Next()

	logger.Debug("Request completed",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"duration", time.Since(start).String(),
	)
	if err != nil {
		logger.LogErr(err, "request failed", "path", c.Request().Path())
	}

	return err
}
