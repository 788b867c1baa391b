// Package sqlstore implements repository.Repository on MySQL.
//
// Tasks live in a TEMPORARY table bound to one pinned connection, so the
// table and its rows are dropped when the repository is closed.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"tasklist/internal/task"
)

const createTable = `CREATE TEMPORARY TABLE tasks (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    description TEXT NOT NULL,
    is_completed BOOLEAN NOT NULL DEFAULT FALSE
)`

// Repository stores tasks in a temporary MySQL table.
type Repository struct {
	db   *sql.DB
	conn *sql.Conn
}

// Open connects to dsn and creates the temporary tasks table.
func Open(ctx context.Context, dsn string) (*Repository, error) {
	if dsn == "" {
		return nil, fmt.Errorf("mysql dsn is empty")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to mysql: %w", err)
	}

	// Temporary tables are per connection; every query must use this one.
	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	if _, err := conn.ExecContext(ctx, createTable); err != nil {
		conn.Close()
		db.Close()
		return nil, fmt.Errorf("create tasks table: %w", err)
	}
	return &Repository{db: db, conn: conn}, nil
}

// AddTask inserts t as the newest row.
func (r *Repository) AddTask(ctx context.Context, t task.Task) error {
	_, err := r.conn.ExecContext(ctx,
		"INSERT INTO tasks (description, is_completed) VALUES (?, ?)",
		t.Description, t.IsCompleted)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// AllTasks returns the stored tasks ordered by insertion.
func (r *Repository) AllTasks(ctx context.Context) ([]task.Task, error) {
	rows, err := r.conn.QueryContext(ctx, "SELECT description, is_completed FROM tasks ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	result := make([]task.Task, 0)
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(&t.Description, &t.IsCompleted); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return result, nil
}

// Close releases the pinned connection, dropping the temporary table.
func (r *Repository) Close() error {
	connErr := r.conn.Close()
	if err := r.db.Close(); err != nil {
		return err
	}
	return connErr
}
