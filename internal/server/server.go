// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/analyzer"
	"github.com/spigell/resume-analyzer/internal/document"
	"github.com/spigell/resume-analyzer/internal/store"
)

const (
	// DefaultMaxUploadBytes bounds the accepted document size.
	DefaultMaxUploadBytes = 10 << 20
	formFileField         = "file"
	shutdownTimeout       = 10 * time.Second
)

// Analyzer runs the pipeline on raw document bytes.
type Analyzer interface {
	Analyze(ctx context.Context, source string, raw []byte) (*analyzer.Result, error)
}

// Saver persists results. It is optional.
type Saver interface {
	Save(ctx context.Context, rec store.Record) (store.Record, error)
}

// Server holds the HTTP handlers.
type Server struct {
	analyzer  Analyzer
	saver     Saver
	logger    *zap.Logger
	maxUpload int64
}

// New creates a Server. saver may be nil, in which case save requests are
// rejected.
func New(a Analyzer, saver Saver, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{analyzer: a, saver: saver, logger: logger, maxUpload: DefaultMaxUploadBytes}
}

// Router returns the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/analyze", s.handleAnalyze)

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze accepts either a multipart upload in the "file" field or the
// raw document as the request body.
// POST /v1/analyze[?save=true][&text=true]
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	save, err := boolQuery(r, "save")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	withText, err := boolQuery(r, "text")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if save && s.saver == nil {
		writeError(w, http.StatusBadRequest, "storage is not configured")
		return
	}

	source, raw, err := s.readDocument(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "document is too large")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), source, raw)
	if err != nil {
		if errors.Is(err, document.ErrUnreadable) {
			writeError(w, http.StatusUnprocessableEntity, "document is unreadable")
			return
		}
		s.logger.Error("analyze failed", zap.String("request_id", middleware.GetReqID(r.Context())), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if save {
		rec, err := s.saver.Save(r.Context(), store.RecordFromResult(result))
		if err != nil {
			s.logger.Error("saving analysis failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.Header().Set("X-Analysis-Id", rec.ID.String())
	}

	if !withText {
		result.Profile.RawText = ""
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		file, header, err := r.FormFile(formFileField)
		if err != nil {
			return "", nil, fmt.Errorf("reading form field %q: %w", formFileField, err)
		}
		defer file.Close()

		raw, err := io.ReadAll(file)
		if err != nil {
			return "", nil, err
		}
		if len(raw) == 0 {
			return "", nil, errors.New("uploaded document is empty")
		}
		return header.Filename, raw, nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, err
	}
	if len(raw) == 0 {
		return "", nil, errors.New("request body is empty")
	}
	return "", raw, nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func boolQuery(r *http.Request, key string) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("query parameter %q: %w", key, err)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
