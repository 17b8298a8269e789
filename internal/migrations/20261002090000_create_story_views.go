package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateStoryViews, downCreateStoryViews)
}

// The primary key keeps the viewer set of a story free of duplicates.
func upCreateStoryViews(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE story_views (
		story_id  VARCHAR NOT NULL REFERENCES stories (id) ON DELETE CASCADE,
		viewer_id VARCHAR NOT NULL REFERENCES users (id),
		viewed_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
		PRIMARY KEY (story_id, viewer_id)
	);
	`)
	return err
}

func downCreateStoryViews(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE story_views;`)
	return err
}
