package web

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mv2-creator/connectors/config"
	"mv2-creator/creator"
	"mv2-creator/domain/mv2"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run starts an Echo web server converting uploaded MV1 workbooks and an
// optional SPA front end.
//
// Usage:
//
//	mv2 web [-addr :8080] [-ui ./ui/dist]
//
// Endpoints:
//
//	POST /api/mv2           multipart "file" -> MV2 report (xlsx attachment)
//	POST /api/mv2/preview   multipart "file" -> aggregate as JSON
//	GET  /healthz
//	GET  /metrics
//
// When -ui points to a built Vite app (index.html exists), static files are served at / and
// unknown routes fall back to index.html for SPA routing.
func Run(args []string) error {
	cfg, err := config.Resolve()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	addr := fs.String("addr", cfg.Web.Addr, "http listen address (host:port)")
	uiDir := fs.String("ui", "./ui/dist", "directory containing built UI (Vite dist)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := creator.New(cfg)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	e := newServer(cfg, c, *uiDir, reg)
	slog.Info("web.start", "addr", *addr)
	return e.Start(*addr)
}

type server struct {
	creator *creator.Creator
	metrics *metrics
}

func newServer(cfg *config.Config, c *creator.Creator, uiDir string, reg *prometheus.Registry) *echo.Echo {
	s := &server{creator: c, metrics: newMetrics(reg)}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if cfg.Web.MaxUploadMB > 0 {
		e.Use(middleware.BodyLimit(strconv.Itoa(cfg.Web.MaxUploadMB) + "M"))
	}

	// APIs
	e.POST("/api/mv2", s.metrics.instrument("convert", s.convert))
	e.POST("/api/mv2/preview", s.metrics.instrument("preview", s.preview))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Static UI (optional)
	indexPath := filepath.Join(uiDir, "index.html")
	if fi, err := os.Stat(indexPath); err == nil && !fi.IsDir() {
		e.Static("/", uiDir)
		e.GET("/", func(c echo.Context) error { return c.File(indexPath) })

		// Fallback to index.html for non-API 404s (SPA routing) while keeping static assets working
		e.HTTPErrorHandler = func(err error, c echo.Context) {
			if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusNotFound {
				if !strings.HasPrefix(c.Request().URL.Path, "/api") {
					_ = c.File(indexPath)
					return
				}
			}
			e.DefaultHTTPErrorHandler(err, c)
		}
	}
	return e
}

func (s *server) convert(c echo.Context) error {
	return s.withUpload(c, func(ctx context.Context, input, workDir string) error {
		path, err := s.creator.Create(ctx, input, workDir)
		if err != nil {
			return failure(c, err)
		}
		return c.Attachment(path, filepath.Base(path))
	})
}

func (s *server) preview(c echo.Context) error {
	return s.withUpload(c, func(ctx context.Context, input, _ string) error {
		agg, err := s.creator.Load(ctx, input)
		if err != nil {
			return failure(c, err)
		}
		return c.JSON(http.StatusOK, agg)
	})
}

// withUpload stores the multipart "file" field in a private work directory
// that is removed once fn returns.
func (s *server) withUpload(c echo.Context, fn func(ctx context.Context, input, workDir string) error) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "missing file",
			"message": "please select a file first",
		})
	}

	workDir, err := os.MkdirTemp("", "mv2-"+uuid.NewString())
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	input := filepath.Join(workDir, "mv1"+strings.ToLower(filepath.Ext(fh.Filename)))
	dst, err := os.Create(input)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}

	slog.Info("web.upload", "filename", fh.Filename, "size", fh.Size,
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID))
	return fn(c.Request().Context(), input, workDir)
}

// failure maps pipeline errors to HTTP responses.
func failure(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	var ie *mv2.IngestionError
	var re *mv2.ReportError
	switch {
	case errors.As(err, &ie), errors.As(err, &re):
		status = http.StatusUnprocessableEntity
	}
	slog.Error("web.convert.error", "status", status, "error", err,
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID))
	return c.JSON(status, map[string]any{
		"error":   err.Error(),
		"message": "an error occurred",
	})
}
