package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/orgball2608/story-playback/internal/domain"
	"github.com/orgball2608/story-playback/internal/playback"
	"github.com/orgball2608/story-playback/internal/rail"
	mock_rail "github.com/orgball2608/story-playback/internal/rail/mocks"
	"github.com/orgball2608/story-playback/internal/repositories/story"
	mock_story "github.com/orgball2608/story-playback/internal/repositories/story/mocks"
	mock_tracker "github.com/orgball2608/story-playback/internal/tracker/mocks"
	"github.com/orgball2608/story-playback/pkg/config"
	apperrors "github.com/orgball2608/story-playback/pkg/errors"
	"github.com/orgball2608/story-playback/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type deps struct {
	rail    *mock_rail.MockClient
	tracker *mock_tracker.MockClient
	repo    *mock_story.MockRepository
	srv     *Server
}

func newDeps(t *testing.T, rateLimit int) *deps {
	ctrl := gomock.NewController(t)
	d := &deps{
		rail:    mock_rail.NewMockClient(ctrl),
		tracker: mock_tracker.NewMockClient(ctrl),
		repo:    mock_story.NewMockRepository(ctrl),
	}

	cfg := &config.Config{}
	cfg.App.Port = 0
	cfg.App.RateLimit = rateLimit
	cfg.App.RateBurst = rateLimit

	d.srv = NewServer(ServerOpts{
		Rail:      d.rail,
		Tracker:   d.tracker,
		StoryRepo: d.repo,
		Logger:    logger.New(logger.Opts{Env: "test"}),
		Config:    cfg,
	})
	return d
}

func (d *deps) get(path, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID != "" {
		req.Header.Set(userHeader, userID)
	}
	rec := httptest.NewRecorder()
	d.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := newDeps(t, 10).get("/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRail(t *testing.T) {
	d := newDeps(t, 10)
	d.rail.EXPECT().Avatars("me").Return([]rail.Avatar{
		{AuthorID: "a", Name: "Ann", Count: 2},
		{AuthorID: "b", Name: "Bakery", Viewed: true, Count: 1},
	})

	rec := d.get("/rail", "me")
	require.Equal(t, http.StatusOK, rec.Code)

	var body railResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Avatars, 2)
	assert.False(t, body.Avatars[0].Viewed)
	assert.True(t, body.Avatars[1].Viewed)
}

func TestRailRateLimited(t *testing.T) {
	d := newDeps(t, 1)
	d.rail.EXPECT().Avatars("me").Return(nil).Times(1)

	assert.Equal(t, http.StatusOK, d.get("/rail", "me").Code)

	rec := d.get("/rail", "me")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.CodeRateLimited, body.Code)
}

func TestStoryViewers(t *testing.T) {
	owned := domain.Story{ID: "s1", AuthorID: "bakery", UserID: "owner"}
	owner := &domain.User{ID: "owner", Name: "Olga"}
	stranger := &domain.User{ID: "stranger"}

	tests := []struct {
		name     string
		userID   string
		storyID  string
		setup    func(d *deps)
		wantCode int
		check    func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:     "missing user",
			storyID:  "s1",
			setup:    func(d *deps) {},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "unknown user",
			userID:  "ghost",
			storyID: "s1",
			setup: func(d *deps) {
				d.repo.EXPECT().GetUser(gomock.Any(), "ghost").Return(nil, story.ErrNotFound)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "user lookup failure is not leaked",
			userID:  "owner",
			storyID: "s1",
			setup: func(d *deps) {
				d.repo.EXPECT().GetUser(gomock.Any(), "owner").Return(nil, errors.New("pool closed"))
			},
			wantCode: http.StatusInternalServerError,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.NotContains(t, rec.Body.String(), "pool closed")
			},
		},
		{
			name:    "unknown story",
			userID:  "owner",
			storyID: "nope",
			setup: func(d *deps) {
				d.repo.EXPECT().GetUser(gomock.Any(), "owner").Return(owner, nil)
				d.rail.EXPECT().Stories().Return([]domain.Story{owned})
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:    "not the owner",
			userID:  "stranger",
			storyID: "s1",
			setup: func(d *deps) {
				d.repo.EXPECT().GetUser(gomock.Any(), "stranger").Return(stranger, nil)
				d.rail.EXPECT().Stories().Return([]domain.Story{owned})
				d.tracker.EXPECT().Viewers(gomock.Any(), owned, stranger).Return(nil, story.ErrForbidden)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "store failure is not leaked",
			userID:  "owner",
			storyID: "s1",
			setup: func(d *deps) {
				d.repo.EXPECT().GetUser(gomock.Any(), "owner").Return(owner, nil)
				d.rail.EXPECT().Stories().Return([]domain.Story{owned})
				d.tracker.EXPECT().Viewers(gomock.Any(), owned, owner).Return(nil, errors.New("conn reset"))
			},
			wantCode: http.StatusInternalServerError,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.NotContains(t, rec.Body.String(), "conn reset")
			},
		},
		{
			name:    "owner with no viewers",
			userID:  "owner",
			storyID: "s1",
			setup: func(d *deps) {
				d.repo.EXPECT().GetUser(gomock.Any(), "owner").Return(owner, nil)
				d.rail.EXPECT().Stories().Return([]domain.Story{owned})
				d.tracker.EXPECT().Viewers(gomock.Any(), owned, owner).Return(nil, nil)
			},
			wantCode: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body viewersResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "0 views", body.Label)
				assert.Equal(t, playback.EmptyStatsText, body.EmptyText)
			},
		},
		{
			name:    "owner sees viewers in order",
			userID:  "owner",
			storyID: "s1",
			setup: func(d *deps) {
				d.repo.EXPECT().GetUser(gomock.Any(), "owner").Return(owner, nil)
				d.rail.EXPECT().Stories().Return([]domain.Story{owned})
				d.tracker.EXPECT().Viewers(gomock.Any(), owned, owner).
					Return([]domain.Viewer{{ID: "v2", Name: "Val"}, {ID: "v1", Name: "Vic"}}, nil)
			},
			wantCode: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body viewersResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "2 views", body.Label)
				require.Len(t, body.Viewers, 2)
				assert.Equal(t, "v2", body.Viewers[0].ID)
				assert.Empty(t, body.EmptyText)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps(t, 100)
			tt.setup(d)

			rec := d.get("/stories/"+tt.storyID+"/viewers", tt.userID)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.check != nil {
				tt.check(t, rec)
			}
		})
	}
}
