package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/magnusozprime/hero-wars-data/internal/common/middleware"
)

const serviceName = "scanner"

func NewRouter(scanHandler *ScanHandler, giftHandler *GiftHandler, rateLimiter *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /api/v1/scan", rateLimiter.Middleware(http.HandlerFunc(scanHandler.ScanPost)))
	mux.Handle("POST /api/v1/gifts/deactivate", rateLimiter.Middleware(http.HandlerFunc(giftHandler.DeactivatePost)))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return middleware.Metrics(serviceName, mux)
}

type Server struct {
	server *http.Server
	logger *slog.Logger
	port   int
}

// NewServer задаёт WriteTimeout больше дедлайна прохода, иначе ответ ручного запуска обрежется.
func NewServer(port int, router http.Handler, runDeadline time.Duration, logger *slog.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      runDeadline + 30*time.Second,
		},
		logger: logger,
		port:   port,
	}
}

// Start блокируется до остановки сервера; отмена ctx запускает graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Запуск HTTP сервера сканера", "port", s.port)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Ошибка при остановке HTTP сервера", "error", err)
		}
	}()

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
