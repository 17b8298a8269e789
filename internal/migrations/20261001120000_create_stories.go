package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateStories, downCreateStories)
}

func upCreateStories(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE users (
		id     VARCHAR PRIMARY KEY,
		name   VARCHAR NOT NULL,
		avatar VARCHAR NOT NULL DEFAULT ''
	);

	CREATE TABLE stories (
		id             VARCHAR PRIMARY KEY,
		author_id      VARCHAR NOT NULL,
		author_name    VARCHAR NOT NULL,
		author_avatar  VARCHAR NOT NULL DEFAULT '',
		user_id        VARCHAR NOT NULL REFERENCES users (id),
		media          VARCHAR NOT NULL,
		caption        VARCHAR,
		content_config JSONB,
		created_at     TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);

	CREATE INDEX stories_created_at_idx ON stories (created_at DESC);
	`)
	return err
}

func downCreateStories(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE stories;
	DROP TABLE users;
	`)
	return err
}
