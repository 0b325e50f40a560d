package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

// DB stores the permission nodes granted to Discord users.
type DB struct {
	conn *sql.DB
}

// New opens the sqlite database at dsn and creates the schema.
func New(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &DB{conn: conn}
	if err := d.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database connected: %s", dsn)
	return d, nil
}

func (d *DB) migrate() error {
	_, err := d.conn.Exec(`
	CREATE TABLE IF NOT EXISTS permissions (
		user_id TEXT NOT NULL,
		node TEXT NOT NULL,
		PRIMARY KEY (user_id, node)
	);`)
	return err
}

func (d *DB) Close() error {
	log.Println("Database connection closing.")
	return d.conn.Close()
}

// GrantPermission gives userID the node. Granting twice is a no-op.
func (d *DB) GrantPermission(ctx context.Context, userID, node string) error {
	_, err := d.conn.ExecContext(ctx, "INSERT OR IGNORE INTO permissions (user_id, node) VALUES (?, ?)", userID, node)
	if err != nil {
		return fmt.Errorf("grant %s to %s: %w", node, userID, err)
	}
	return nil
}

// RevokePermission removes the node from userID.
func (d *DB) RevokePermission(ctx context.Context, userID, node string) error {
	_, err := d.conn.ExecContext(ctx, "DELETE FROM permissions WHERE user_id = ? AND node = ?", userID, node)
	if err != nil {
		return fmt.Errorf("revoke %s from %s: %w", node, userID, err)
	}
	return nil
}

// HasPermission reports whether userID holds the node.
func (d *DB) HasPermission(ctx context.Context, userID, node string) (bool, error) {
	var one int
	err := d.conn.QueryRowContext(ctx, "SELECT 1 FROM permissions WHERE user_id = ? AND node = ?", userID, node).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check %s for %s: %w", node, userID, err)
	}
	return true, nil
}

// ListPermissions returns the nodes held by userID in alphabetical order.
func (d *DB) ListPermissions(ctx context.Context, userID string) ([]string, error) {
	rows, err := d.conn.QueryContext(ctx, "SELECT node FROM permissions WHERE user_id = ? ORDER BY node", userID)
	if err != nil {
		return nil, fmt.Errorf("list permissions for %s: %w", userID, err)
	}
	defer rows.Close()

	var nodes []string
	for rows.Next() {
		var node string
		if err := rows.Scan(&node); err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, rows.Err()
}
