// Package server exposes the daemon's local HTTP surface: read-only status,
// a manual sync trigger, live notifications and metrics.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/models"
	"github.com/MrSnakeDoc/navsync/internal/syncer"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 5 * time.Second

type Syncer interface {
	PerformSync(ctx context.Context, force bool) (syncer.Result, error)
}

type SettingsLoader interface {
	LoadSettings(ctx context.Context) (models.SyncSettings, error)
}

type Deps struct {
	Syncer   Syncer
	Settings SettingsLoader
	// Live and Metrics are mounted as-is when set.
	Live    http.Handler
	Metrics http.Handler
}

type Server struct {
	e    *echo.Echo
	deps Deps
}

func New(deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMiddleware.Recover())
	e.Use(requestLogger)

	s := &Server{e: e, deps: deps}
	e.GET("/status", s.getStatus)
	e.POST("/sync", s.postSync)
	if deps.Live != nil {
		e.GET("/ws", echo.WrapHandler(deps.Live))
	}
	if deps.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(deps.Metrics))
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.e
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http: listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type Status struct {
	Enabled             bool       `json:"enabled"`
	Backend             string     `json:"backend"`
	ServerURL           string     `json:"server_url"`
	Interval            int        `json:"interval"`
	LastCheckTime       *time.Time `json:"last_check_time"`
	LastSyncSuccessTime *time.Time `json:"last_sync_success_time"`
	LastSyncStatus      string     `json:"last_sync_status"`
}

// NewStatus builds the public view of the settings. Credentials are left out.
func NewStatus(st models.SyncSettings) Status {
	return Status{
		Enabled:             st.Enabled,
		Backend:             st.BackendName(),
		ServerURL:           st.ServerURL,
		Interval:            st.Interval,
		LastCheckTime:       timePtr(st.LastCheckTime),
		LastSyncSuccessTime: timePtr(st.LastSyncSuccessTime),
		LastSyncStatus:      st.LastSyncStatus,
	}
}

func (s *Server) getStatus(c echo.Context) error {
	st, err := s.deps.Settings.LoadSettings(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, NewStatus(st))
}

type syncResponse struct {
	Skipped string `json:"skipped,omitempty"`
	Config  string `json:"config,omitempty"`
	Stats   string `json:"stats,omitempty"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

func (s *Server) postSync(c echo.Context) error {
	res, err := s.deps.Syncer.PerformSync(c.Request().Context(), true)
	if err != nil {
		kind := syncer.KindOf(err)
		return c.JSON(statusForKind(kind), syncResponse{Error: err.Error(), Kind: string(kind)})
	}
	if res.Skipped != syncer.SkipNone {
		return c.JSON(http.StatusConflict, syncResponse{Skipped: string(res.Skipped)})
	}
	return c.JSON(http.StatusOK, syncResponse{
		Config:  string(res.Config),
		Stats:   string(res.Stats),
		Summary: res.Summary,
	})
}

func statusForKind(k syncer.Kind) int {
	switch k {
	case syncer.KindConfiguration:
		return http.StatusBadRequest
	case syncer.KindConnectivity, syncer.KindTransfer:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		req := c.Request()
		logger.Debug("http: %s %s -> %d (%s)", req.Method, req.URL.Path, c.Response().Status,
			time.Since(start).Truncate(time.Microsecond))
		if err != nil {
			logger.Debug("http: handler error: %v", err)
		}
		return err
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
