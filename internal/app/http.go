package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/orgball2608/story-playback/internal/domain"
	"github.com/orgball2608/story-playback/internal/playback"
	"github.com/orgball2608/story-playback/internal/rail"
	"github.com/orgball2608/story-playback/internal/ratelimit"
	"github.com/orgball2608/story-playback/internal/repositories/story"
	"github.com/orgball2608/story-playback/internal/tracker"
	"github.com/orgball2608/story-playback/pkg/config"
	apperrors "github.com/orgball2608/story-playback/pkg/errors"
	"github.com/orgball2608/story-playback/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

const userHeader = "X-User-ID"

type ServerOpts struct {
	fx.In

	Rail      rail.Client
	Tracker   tracker.Client
	StoryRepo story.Repository
	Logger    logger.Logger
	Config    *config.Config
}

type Server struct {
	Rail      rail.Client
	Tracker   tracker.Client
	StoryRepo story.Repository
	Logger    logger.Logger

	addr    string
	limiter ratelimit.Limiter
	srv     *http.Server
}

func NewServer(opts ServerOpts) *Server {
	s := &Server{
		Rail:      opts.Rail,
		Tracker:   opts.Tracker,
		StoryRepo: opts.StoryRepo,
		Logger:    opts.Logger.WithComponent("HTTP"),
		addr:      fmt.Sprintf(":%d", opts.Config.App.Port),
		limiter:   ratelimit.NewInMemoryLimiter(opts.Config.App.RateLimit, time.Second, opts.Config.App.RateBurst),
	}
	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.healthCheck)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /rail", s.limited(s.railAvatars))
	mux.HandleFunc("GET /stories/{id}/viewers", s.limited(s.storyViewers))
	return mux
}

func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.Logger.Info("Starting server", "addr", s.addr)
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("Server stopped unexpectedly", "error", err)
		}
	}()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	s.Logger.Debug("Health check request received", "method", r.Method, "url", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		s.Logger.Error("Failed to write response", "error", err)
	}
}

func (s *Server) limited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(userHeader)
		if key == "" {
			key = r.RemoteAddr
		}
		if !s.limiter.Allow(key) {
			w.Header().Set("Retry-After", "1")
			s.writeError(w, apperrors.ErrRateLimited)
			return
		}
		next(w, r)
	}
}

type railResponse struct {
	Avatars []rail.Avatar `json:"avatars"`
}

// railAvatars answers the rail for the requesting user. Anonymous requests
// get every ring unviewed.
func (s *Server) railAvatars(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, railResponse{Avatars: s.Rail.Avatars(r.Header.Get(userHeader))})
}

type viewersResponse struct {
	StoryID   string          `json:"story_id"`
	Label     string          `json:"label"`
	Viewers   []domain.Viewer `json:"viewers"`
	EmptyText string          `json:"empty_text,omitempty"`
}

func (s *Server) storyViewers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requester, err := s.requester(ctx, r.Header.Get(userHeader))
	if err != nil {
		s.writeError(w, err)
		return
	}

	st, ok := findStory(s.Rail.Stories(), r.PathValue("id"))
	if !ok {
		s.writeError(w, story.ErrNotFound)
		return
	}

	viewers, err := s.Tracker.Viewers(ctx, st, requester)
	if err != nil {
		s.writeError(w, err)
		return
	}

	st.Viewers = viewers
	stats := playback.NewStats(st)
	s.writeJSON(w, http.StatusOK, viewersResponse{
		StoryID:   stats.StoryID,
		Label:     stats.Label,
		Viewers:   stats.Viewers,
		EmptyText: stats.EmptyText,
	})
}

func (s *Server) requester(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, apperrors.WrapWithCode(apperrors.ErrUnauthorized, apperrors.CodeUnauthorized, "missing "+userHeader)
	}
	u, err := s.StoryRepo.GetUser(ctx, userID)
	if apperrors.IsNotFound(err) {
		return nil, apperrors.WrapWithCode(err, apperrors.CodeUnauthorized, "unknown user")
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load requester")
	}
	return u, nil
}

func findStory(stories []domain.Story, id string) (domain.Story, bool) {
	for _, st := range stories {
		if st.ID == id {
			return st, true
		}
	}
	return domain.Story{}, false
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	resp := errorResponse{Code: apperrors.GetCode(err), Message: apperrors.GetMessage(err)}
	if status == http.StatusInternalServerError {
		s.Logger.Error("Request failed", "error", err)
		resp.Message = "internal error"
	}
	s.writeJSON(w, status, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.Logger.Error("Failed to write response", "error", err)
	}
}
