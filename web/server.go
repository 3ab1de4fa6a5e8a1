package web

import (
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// DefaultAddress is where the server listens when none is configured
const DefaultAddress = ":8000"

// NewServer creates and configures the RWeb server
func NewServer(address string, verbose bool) *rweb.Server {
	if address == "" {
		address = DefaultAddress
	}

	s := rweb.NewServer(rweb.ServerOptions{
		Address: address,
		Verbose: verbose,
	})

	s.Use(rweb.RequestInfo)
	s.Use(CorsMiddleware)
	s.Use(SecurityHeadersMiddleware)
	s.Use(JWTAuthMiddleware)
	s.Use(RequireAuth)
	s.Use(LoggingMiddleware)

	setupRoutes(s)
	SetupStaticFiles(s)

	return s
}

// Run starts the server
func Run(s *rweb.Server, address string) error {
	logger.Info("Scratch notes server starting", "address", address)
	return s.Run()
}
