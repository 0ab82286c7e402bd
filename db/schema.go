package db

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	fam TEXT NOT NULL,
	name TEXT NOT NULL,
	otc TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS coords (
	id SERIAL PRIMARY KEY,
	latitude DOUBLE PRECISION NOT NULL,
	longitude DOUBLE PRECISION NOT NULL,
	height INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS levels (
	id SERIAL PRIMARY KEY,
	winter TEXT NOT NULL DEFAULT '',
	summer TEXT NOT NULL DEFAULT '',
	autumn TEXT NOT NULL DEFAULT '',
	spring TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS perevals (
	id SERIAL PRIMARY KEY,
	beauty_title TEXT NOT NULL,
	title TEXT NOT NULL,
	other_titles TEXT NOT NULL DEFAULT '',
	connect TEXT NOT NULL DEFAULT '',
	add_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	status TEXT NOT NULL DEFAULT 'new' CHECK (status IN ('new', 'pending', 'accepted', 'rejected')),
	user_id INTEGER NOT NULL REFERENCES users(id),
	coords_id INTEGER NOT NULL REFERENCES coords(id),
	level_id INTEGER NOT NULL REFERENCES levels(id)
);

CREATE INDEX IF NOT EXISTS idx_perevals_user_id ON perevals(user_id);

CREATE TABLE IF NOT EXISTS images (
	id SERIAL PRIMARY KEY,
	img TEXT NOT NULL,
	title TEXT NOT NULL,
	date_added TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS pereval_images (
	pereval_id INTEGER NOT NULL REFERENCES perevals(id) ON DELETE CASCADE,
	image_id INTEGER NOT NULL REFERENCES images(id) ON DELETE CASCADE,
	PRIMARY KEY (pereval_id, image_id)
);
`

// EnsureSchema создаёт таблицы при старте, если их ещё нет.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}
	return nil
}
