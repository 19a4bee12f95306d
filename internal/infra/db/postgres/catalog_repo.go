package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"innovatehub-platform/internal/domain"
	"innovatehub-platform/internal/domain/model"
	"innovatehub-platform/internal/domain/ports/repository"
	"innovatehub-platform/internal/infra/metrics"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"
)

// Compile-time assurance this repo satisfies the port
var _ repository.TableCatalog = (*CatalogRepo)(nil)

// CatalogRepo serves the generic table browser from the backend's system
// catalog. It holds no per-table code and no schema metadata beyond the
// column names the driver reports.
type CatalogRepo struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

func NewCatalogRepo(pool *pgxpool.Pool, log *zerolog.Logger) *CatalogRepo {
	return &CatalogRepo{pool: pool, log: log}
}

func (r *CatalogRepo) ListTables(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'`)
	if err != nil {
		metrics.IncBrowserQuery("list_tables", false)
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			metrics.IncBrowserQuery("list_tables", false)
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		metrics.IncBrowserQuery("list_tables", false)
		return nil, fmt.Errorf("list tables: %w", err)
	}
	metrics.IncBrowserQuery("list_tables", true)
	return names, nil
}

func (r *CatalogRepo) FetchRecords(ctx context.Context, table string, limit int) ([]model.Record, error) {
	// Never interpolate caller input: the name must exist in the catalog
	// before it reaches a query.
	known, err := r.tableExists(ctx, table)
	if err != nil {
		metrics.IncBrowserQuery("get_records", false)
		return nil, err
	}
	if !known {
		metrics.IncBrowserQuery("get_records", false)
		return nil, fmt.Errorf("%w: %s", domain.ErrTableUnknown, table)
	}

	q := fmt.Sprintf(`SELECT * FROM %s LIMIT $1`, quoteIdent(table))
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		metrics.IncBrowserQuery("get_records", false)
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTableUnknown, table)
		}
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = string(f.Name)
	}

	var records []model.Record
	ordinal := 0
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			metrics.IncBrowserQuery("get_records", false)
			return nil, fmt.Errorf("read row: %w", err)
		}
		records = append(records, buildRecord(cols, vals, ordinal))
		ordinal++
	}
	if err := rows.Err(); err != nil {
		metrics.IncBrowserQuery("get_records", false)
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	metrics.IncBrowserQuery("get_records", true)
	metrics.AddBrowserRows(len(records))
	r.log.Debug().Str("table", table).Int("rows", len(records)).Msg("records fetched")
	return records, nil
}

func (r *CatalogRepo) tableExists(ctx context.Context, table string) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, `
		SELECT 1
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE' AND table_name = $1`,
		table).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("table lookup: %w", err)
	}
	return true, nil
}

// buildRecord maps one driver row into a Record. The "id" key is guaranteed
// present as a string: a null or absent id falls back to the row ordinal.
func buildRecord(cols []string, vals []any, ordinal int) model.Record {
	rec := make(model.Record, len(cols)+1)
	for i, col := range cols {
		if i < len(vals) {
			rec[col] = model.Cell(vals[i])
		} else {
			rec[col] = model.Cell(nil)
		}
	}
	id := rec["id"].Display()
	if id == "" {
		id = strconv.Itoa(ordinal)
	}
	rec["id"] = model.Cell(id)
	return rec
}

// quoteIdent double-quotes an identifier, escaping embedded quotes, for the
// one place a validated table name is spliced into SQL.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
