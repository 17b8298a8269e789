package story

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/story-playback/internal/domain"
	"github.com/orgball2608/story-playback/internal/repositories"
	"github.com/orgball2608/story-playback/pkg/logger"
)

const foreignKeyViolation = "23503"

type PgxRepository struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewPgxRepository(pool *pgxpool.Pool, logger logger.Logger) *PgxRepository {
	return &PgxRepository{
		pool:   pool,
		logger: logger.WithComponent("StoryRepo"),
	}
}

var _ Repository = (*PgxRepository)(nil)

func (r *PgxRepository) List(ctx context.Context) ([]domain.Story, error) {
	query, args, err := repositories.SqBuilder.
		Select("s.id", "s.author_id", "s.author_name", "s.author_avatar", "s.user_id",
			"s.media", "s.caption", "s.content_config", "s.created_at").
		From("stories s").
		OrderBy("s.created_at DESC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stories: %w", err)
	}
	defer rows.Close()

	var stories []domain.Story
	index := make(map[string]int)
	for rows.Next() {
		var (
			s       domain.Story
			caption *string
			content []byte
		)
		if err := rows.Scan(&s.ID, &s.AuthorID, &s.AuthorName, &s.AuthorAvatar, &s.UserID,
			&s.Media, &caption, &content, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan story row: %w", err)
		}
		if caption != nil {
			s.Caption = *caption
		}
		if len(content) > 0 {
			var cc domain.ContentConfig
			if err := json.Unmarshal(content, &cc); err != nil {
				r.logger.Warn("Skipping malformed content config", "story_id", s.ID, "error", err)
			} else {
				s.ContentConfig = &cc
			}
		}
		index[s.ID] = len(stories)
		stories = append(stories, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating story rows: %w", err)
	}

	if len(stories) == 0 {
		return stories, nil
	}

	views, err := r.views(ctx, sq.Eq{"v.story_id": keys(index)})
	if err != nil {
		return nil, err
	}
	for storyID, viewers := range views {
		if i, ok := index[storyID]; ok {
			stories[i].Viewers = viewers
		}
	}

	return stories, nil
}

// RecordView upserts the viewer's profile and adds them to the story's
// viewer set in one transaction. A repeated pair is a no-op.
func (r *PgxRepository) RecordView(ctx context.Context, storyID string, viewer domain.User) error {
	userQuery, userArgs, err := repositories.SqBuilder.
		Insert("users").
		Columns("id", "name", "avatar").
		Values(viewer.ID, viewer.Name, viewer.Avatar).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, avatar = EXCLUDED.avatar").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	viewQuery, viewArgs, err := repositories.SqBuilder.
		Insert("story_views").
		Columns("story_id", "viewer_id", "viewed_at").
		Values(storyID, viewer.ID, time.Now()).
		Suffix("ON CONFLICT (story_id, viewer_id) DO NOTHING").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			r.logger.Warn("Failed to roll back view transaction", "story_id", storyID, "error", err)
		}
	}()

	if _, err := tx.Exec(ctx, userQuery, userArgs...); err != nil {
		return fmt.Errorf("failed to upsert viewer %s: %w", viewer.ID, err)
	}
	if _, err := tx.Exec(ctx, viewQuery, viewArgs...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return ErrNotFound
		}
		return fmt.Errorf("failed to record view of story %s: %w", storyID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit view of story %s: %w", storyID, err)
	}
	return nil
}

func (r *PgxRepository) ListViewers(ctx context.Context, storyID, ownerID string) ([]domain.Viewer, error) {
	query, args, err := repositories.SqBuilder.
		Select("user_id").
		From("stories").
		Where(sq.Eq{"id": storyID}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var owner string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&owner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get story owner: %w", err)
	}
	if owner != ownerID {
		return nil, ErrForbidden
	}

	views, err := r.views(ctx, sq.Eq{"v.story_id": storyID})
	if err != nil {
		return nil, err
	}
	return views[storyID], nil
}

func (r *PgxRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	query, args, err := repositories.SqBuilder.
		Select("id", "name", "avatar").
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var u domain.User
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Name, &u.Avatar); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &u, nil
}

// views loads viewer sets in the order they were recorded, keyed by story id.
func (r *PgxRepository) views(ctx context.Context, where sq.Sqlizer) (map[string][]domain.Viewer, error) {
	query, args, err := repositories.SqBuilder.
		Select("v.story_id", "u.id", "u.name", "u.avatar").
		From("story_views v").
		Join("users u ON u.id = v.viewer_id").
		Where(where).
		OrderBy("v.viewed_at ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query story views: %w", err)
	}
	defer rows.Close()

	views := make(map[string][]domain.Viewer)
	for rows.Next() {
		var (
			storyID string
			v       domain.Viewer
		)
		if err := rows.Scan(&storyID, &v.ID, &v.Name, &v.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan story view row: %w", err)
		}
		views[storyID] = append(views[storyID], v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating story view rows: %w", err)
	}

	return views, nil
}

func keys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
