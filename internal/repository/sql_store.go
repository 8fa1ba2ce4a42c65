package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"petchat/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const productsSchema = `
	CREATE TABLE IF NOT EXISTS products (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		category    TEXT NOT NULL DEFAULT '',
		price       INTEGER NOT NULL DEFAULT 0 CHECK (price >= 0),
		color       TEXT NOT NULL DEFAULT '',
		pet_type    TEXT NOT NULL DEFAULT '',
		size        TEXT NOT NULL DEFAULT '',
		material    TEXT NOT NULL DEFAULT '',
		stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		description TEXT NOT NULL DEFAULT ''
	)
`

const upsertProduct = `
	INSERT INTO products (id, name, category, price, color, pet_type, size, material, stock, description)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		name = excluded.name,
		category = excluded.category,
		price = excluded.price,
		color = excluded.color,
		pet_type = excluded.pet_type,
		size = excluded.size,
		material = excluded.material,
		stock = excluded.stock,
		description = excluded.description
`

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know by default
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// SQLProductStore reads and writes the products table in PostgreSQL or SQLite
type SQLProductStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to PostgreSQL
func NewPostgresStore(dsn string, maxConn, maxIdleConn int) (*SQLProductStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &SQLProductStore{db: db}, nil
}

// NewSQLiteStore opens (or creates) a SQLite database file. Use ":memory:" for tests.
func NewSQLiteStore(path string) (*SQLProductStore, error) {
	db, err := sqlx.Connect("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and serializes writes
	db.SetMaxOpenConns(1)

	return &SQLProductStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLProductStore) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the products table if it does not exist
func (s *SQLProductStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, productsSchema); err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}
	return nil
}

// ListProducts returns all products ordered by id
func (s *SQLProductStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, category, price, color, pet_type, size, material, stock, description
		FROM products
		ORDER BY id
	`
	products := []model.Product{}
	if err := s.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a single product by its id
func (s *SQLProductStore) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := s.db.Rebind(`
		SELECT id, name, category, price, color, pet_type, size, material, stock, description
		FROM products
		WHERE id = ?
	`)
	err := s.db.GetContext(ctx, &product, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// UpsertProducts inserts or updates products in one transaction. It returns
// the number of rows written and per-row error messages. Each row runs under
// its own savepoint so a rejected row does not abort the rest on PostgreSQL.
func (s *SQLProductStore) UpsertProducts(ctx context.Context, products []model.Product) (int, []string) {
	success := 0
	var errors []string

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, s.db.Rebind(upsertProduct))
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := tx.ExecContext(ctx, "SAVEPOINT upsert_row"); err != nil {
			errors = append(errors, fmt.Sprintf("product %s: %v", p.ID, err))
			return 0, errors
		}
		_, err := stmt.ExecContext(ctx,
			p.ID, p.Name, p.Category, p.Price, p.Color, p.PetType, string(p.Size), p.Material, p.Stock, p.Description,
		)
		if err != nil {
			errors = append(errors, fmt.Sprintf("product %s: %v", p.ID, err))
			if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT upsert_row"); rbErr != nil {
				errors = append(errors, fmt.Sprintf("failed to roll back product %s: %v", p.ID, rbErr))
				return 0, errors
			}
			continue
		}
		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT upsert_row"); err != nil {
			errors = append(errors, fmt.Sprintf("product %s: %v", p.ID, err))
			return 0, errors
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}
