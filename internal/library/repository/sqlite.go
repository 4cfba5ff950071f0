package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"klwp-gateway/internal/library/models"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

//go:embed migrations/*.sql
var migrations embed.FS

var ErrNotFound = errors.New("preset not found")

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет встроенные миграции по порядку имен файлов.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

const presetColumns = `id, filename, title, author, description, width, height, release_no, root_items, size, created_at`

func (r *Repository) Insert(ctx context.Context, p *models.PresetRecord) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO presets (`+presetColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, p.ID, p.Filename, p.Title, p.Author, p.Description, p.Width, p.Height, p.Release, p.RootItems, p.Size, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert preset: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.PresetRecord, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT `+presetColumns+`
        FROM presets
        WHERE id = ?
    `, id)

	p, err := scanPreset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// List возвращает страницу записей, новые первыми, и общее количество.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]models.PresetRecord, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM presets`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count presets: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT `+presetColumns+`
        FROM presets
        ORDER BY created_at DESC, id
        LIMIT ? OFFSET ?
    `, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	items := make([]models.PresetRecord, 0, limit)
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM presets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping: проверка готовности для /health/ready.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(s scanner) (*models.PresetRecord, error) {
	var p models.PresetRecord
	if err := s.Scan(&p.ID, &p.Filename, &p.Title, &p.Author, &p.Description, &p.Width, &p.Height, &p.Release, &p.RootItems, &p.Size, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
