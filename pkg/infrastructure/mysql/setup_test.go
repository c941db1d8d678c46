package mysql

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// schema mirrors migrations/ in a dialect the embedded engine accepts.
const schema = `
CREATE TABLE users (
	id CHAR(36) PRIMARY KEY,
	email VARCHAR(255) NOT NULL UNIQUE,
	hashed_password VARCHAR(255) NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE profiles (
	id CHAR(36) PRIMARY KEY,
	first_name VARCHAR(100) NOT NULL DEFAULT '',
	last_name VARCHAR(100) NOT NULL DEFAULT '',
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(50) NOT NULL DEFAULT '',
	avatar_url VARCHAR(1024) NOT NULL DEFAULT '',
	notify_order_updates INTEGER NOT NULL DEFAULT 1,
	notify_promotions INTEGER NOT NULL DEFAULT 1,
	notify_product_news INTEGER NOT NULL DEFAULT 0,
	notify_blog_posts INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE addresses (
	id CHAR(36) PRIMARY KEY,
	user_id CHAR(36) NOT NULL,
	recipient_name VARCHAR(200) NOT NULL DEFAULT '',
	address_line1 VARCHAR(255) NOT NULL,
	address_line2 VARCHAR(255) NOT NULL DEFAULT '',
	city VARCHAR(100) NOT NULL,
	state VARCHAR(100) NOT NULL,
	postal_code VARCHAR(20) NOT NULL,
	country VARCHAR(100) NOT NULL,
	phone VARCHAR(50) NOT NULL DEFAULT '',
	is_default INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE orders (
	id CHAR(36) PRIMARY KEY,
	user_id CHAR(36) NOT NULL,
	status VARCHAR(32) NOT NULL,
	total TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE TABLE order_items (
	id CHAR(36) PRIMARY KEY,
	order_id CHAR(36) NOT NULL,
	product_id INTEGER NOT NULL,
	quantity INTEGER NOT NULL,
	price TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE TABLE notifications (
	id CHAR(36) PRIMARY KEY,
	user_id CHAR(36) NOT NULL,
	kind VARCHAR(32) NOT NULL,
	recipient VARCHAR(255) NOT NULL,
	subject VARCHAR(255) NOT NULL,
	body TEXT NOT NULL,
	status INTEGER NOT NULL,
	failure_reason VARCHAR(1024) NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	sent_at DATETIME NULL
);
`

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every pooled connection to :memory: would open its own empty database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)
	return db
}
