// Package dashboard serves the network overview page: every subnet's price
// and emission, the watched wallet's balance and stake positions, and one
// subnet's full neuron table. Data comes from the chain gateway and is
// refreshed in the background; handlers only ever read a guarded snapshot.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
)

const (
	DefaultServerHost = "127.0.0.1"
	DefaultServerPort = 8080

	// DefaultRefreshInterval matches the chain's block time.
	DefaultRefreshInterval = 12 * time.Second
)

// ServerConfig controls the dashboard listener and refresh cadence.
type ServerConfig struct {
	Host            string
	Port            int
	RefreshInterval time.Duration
}

// Server is the dashboard web server.
type Server struct {
	App *fiber.App

	collector *Collector
	state     *State
	cfg       *ServerConfig
}

// NewServer builds the fiber app and its routes. A nil or partial config is
// filled with defaults.
func NewServer(collector *Collector, cfg *ServerConfig) *Server {
	if cfg == nil {
		cfg = &ServerConfig{}
	}
	if cfg.Host == "" {
		cfg.Host = DefaultServerHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultServerPort
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}

	app := fiber.New(fiber.Config{
		Prefork:               false,
		DisableStartupMessage: true,
		ErrorHandler:          fiberErrHandler,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
	})

	app.Use(recover.New())
	app.Use(ZstdMiddleware([]string{"/", "/health"}))

	s := &Server{
		App:       app,
		collector: collector,
		state:     NewState(),
		cfg:       cfg,
	}

	app.Get("/health", s.handleHealth)
	app.Get("/", s.handleIndex)
	app.Get("/data", s.handleData)

	return s
}

func fiberErrHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	log.Error().
		Err(err).
		Int("status_code", code).
		Str("path", c.Path()).
		Msg("dashboard error handler triggered")

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleData(c *fiber.Ctx) error {
	snap, ok := s.state.Get()
	if !ok {
		return fiber.NewError(fiber.StatusServiceUnavailable, "no snapshot collected yet")
	}
	return c.JSON(snap)
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	snap, ok := s.state.Get()
	if !ok {
		return fiber.NewError(fiber.StatusServiceUnavailable, "no snapshot collected yet")
	}

	page, err := RenderHTML(snap)
	if err != nil {
		return fmt.Errorf("render dashboard page: %w", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(page)
}

// refresh collects a fresh snapshot and swaps it in. On failure the previous
// snapshot keeps serving, marked stale.
func (s *Server) refresh() {
	snap, err := s.collector.Collect()
	if err != nil {
		log.Error().Err(err).Msg("dashboard refresh failed, keeping last good snapshot")
		s.state.MarkStale()
		return
	}
	s.state.Set(snap)
}

// refreshLoop re-collects every RefreshInterval until ctx is canceled.
func (s *Server) refreshLoop(ctx context.Context) {
	t := time.NewTicker(s.cfg.RefreshInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.refresh()
		}
	}
}

// Start primes the snapshot, serves until ctx is canceled, then shuts down.
func (s *Server) Start(ctx context.Context) error {
	s.refresh()
	go s.refreshLoop(ctx)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.App.Listen(addr)
	}()

	log.Info().Str("addr", addr).Msg("dashboard listening")

	select {
	case err := <-errCh:
		return fmt.Errorf("dashboard listen on %s: %w", addr, err)
	case <-ctx.Done():
		log.Info().Msg("shutting down dashboard")
		return s.App.ShutdownWithTimeout(5 * time.Second)
	}
}

// URL is the address the dashboard serves on, for display to the user.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s:%d", s.cfg.Host, s.cfg.Port)
}
