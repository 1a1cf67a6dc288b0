package repo

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"Bolted/internal/catalog"
	_ "github.com/lib/pq"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
}

//go:embed schema.sql
var schema string

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Open connects to Postgres and checks the connection. TLS is required unless
// the connection string says otherwise.
func Open(ctx context.Context, connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", withSSLMode(connStr))
	if err != nil {
		return nil, fmt.Errorf("db config: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func withSSLMode(connStr string) string {
	if strings.Contains(connStr, "sslmode=") {
		return connStr
	}
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		if strings.Contains(connStr, "?") {
			return connStr + "&sslmode=require"
		}
		return connStr + "?sslmode=require"
	}
	return connStr + " sslmode=require"
}

// EnsureSchema creates the users and catalog tables when they are missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", ErrNotFound
		}
		return 0, "", err
	}
	return id, hash, nil
}

// LoadCatalog reads the reference tables into an immutable dataset.
func (r *PostgresRepository) LoadCatalog(ctx context.Context) (*catalog.Dataset, error) {
	var t catalogTables
	err := r.each(ctx, "SELECT designation, nominal_diameter FROM bolt_sizes", func(rows *sql.Rows) error {
		var row sizeRow
		if err := rows.Scan(&row.Designation, &row.NominalDiameter); err != nil {
			return err
		}
		t.Sizes = append(t.Sizes, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bolt sizes: %w", err)
	}

	err = r.each(ctx, "SELECT designation, tpi, tensile_stress_area, minor_diameter_area FROM bolt_threads", func(rows *sql.Rows) error {
		var row threadRow
		if err := rows.Scan(&row.Designation, &row.TPI, &row.TensileStressArea, &row.MinorDiameterArea); err != nil {
			return err
		}
		t.Threads = append(t.Threads, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bolt threads: %w", err)
	}

	err = r.each(ctx, "SELECT name, elastic_modulus, yield_strength, poisson_ratio FROM materials", func(rows *sql.Rows) error {
		var row materialRow
		if err := rows.Scan(&row.Name, &row.ElasticModulus, &row.YieldStrength, &row.PoissonRatio); err != nil {
			return err
		}
		t.Materials = append(t.Materials, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("materials: %w", err)
	}

	err = r.each(ctx, "SELECT designation, class, hole_diameter FROM clearance_holes", func(rows *sql.Rows) error {
		var row clearanceRow
		if err := rows.Scan(&row.Designation, &row.Class, &row.HoleDiameter); err != nil {
			return err
		}
		t.Clearances = append(t.Clearances, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("clearance holes: %w", err)
	}

	return t.dataset()
}

func (r *PostgresRepository) each(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// SeedCatalog copies a dataset into the catalog tables. Rows that already
// exist are left untouched.
func (r *PostgresRepository) SeedCatalog(ctx context.Context, ds *catalog.Dataset) error {
	if ds == nil {
		return errors.New("seed catalog: no dataset")
	}
	t := tablesOf(ds)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, row := range t.Sizes {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO bolt_sizes (designation, nominal_diameter) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			row.Designation, row.NominalDiameter); err != nil {
			return fmt.Errorf("seed size %s: %w", row.Designation, err)
		}
	}
	for _, row := range t.Threads {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO bolt_threads (designation, tpi, tensile_stress_area, minor_diameter_area) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING",
			row.Designation, row.TPI, row.TensileStressArea, row.MinorDiameterArea); err != nil {
			return fmt.Errorf("seed thread %s-%d: %w", row.Designation, row.TPI, err)
		}
	}
	for _, row := range t.Clearances {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO clearance_holes (designation, class, hole_diameter) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING",
			row.Designation, row.Class, row.HoleDiameter); err != nil {
			return fmt.Errorf("seed clearance %s/%s: %w", row.Designation, row.Class, err)
		}
	}
	for _, row := range t.Materials {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO materials (name, elastic_modulus, yield_strength, poisson_ratio) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING",
			row.Name, row.ElasticModulus, row.YieldStrength, row.PoissonRatio); err != nil {
			return fmt.Errorf("seed material %s: %w", row.Name, err)
		}
	}
	return tx.Commit()
}
