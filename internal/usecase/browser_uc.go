package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"innovatehub-platform/internal/domain"
	"innovatehub-platform/internal/domain/model"
	"innovatehub-platform/internal/domain/ports/repository"
	"innovatehub-platform/internal/infra/logging"

	"github.com/rs/zerolog"
)

// DefaultRecordLimit is the flat row cap applied when a caller does not ask
// for one.
const DefaultRecordLimit = 50

type BrowserUseCase interface {
	// ListTables returns table names sorted ascending, without duplicates.
	ListTables(ctx context.Context) ([]string, error)

	// FetchRecords replaces any previous row set wholesale; rows come back
	// in the backend's default order.
	FetchRecords(ctx context.Context, table string, limit int) (*model.TableDescriptor, error)

	// Filter applies the case-insensitive substring search to an already
	// fetched row set. It never requeries the backend.
	Filter(rows []model.Record, query string) []model.Record
}

var _ BrowserUseCase = (*browserUC)(nil)

type browserUC struct {
	catalog repository.TableCatalog
	log     *zerolog.Logger
}

func NewBrowserUseCase(catalog repository.TableCatalog, log *zerolog.Logger) BrowserUseCase {
	return &browserUC{catalog: catalog, log: log}
}

func (u *browserUC) ListTables(ctx context.Context) ([]string, error) {
	defer logging.TraceDuration(u.log, "BrowserUC.ListTables")()

	raw, err := u.catalog.ListTables(ctx)
	if err != nil {
		u.log.Error().Err(err).Msg("table listing failed")
		return nil, err
	}

	seen := make(map[string]struct{}, len(raw))
	names := make([]string, 0, len(raw))
	for _, n := range raw {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (u *browserUC) FetchRecords(ctx context.Context, table string, limit int) (*model.TableDescriptor, error) {
	defer logging.TraceDuration(u.log, "BrowserUC.FetchRecords")()

	if strings.TrimSpace(table) == "" {
		return nil, fmt.Errorf("%w: tableName is required", domain.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = DefaultRecordLimit
	}

	rows, err := u.catalog.FetchRecords(ctx, table, limit)
	if err != nil {
		u.log.Error().Err(err).Str("table", table).Msg("record fetch failed")
		return nil, err
	}
	return &model.TableDescriptor{Name: table, Rows: rows}, nil
}

func (u *browserUC) Filter(rows []model.Record, query string) []model.Record {
	if strings.TrimSpace(query) == "" {
		return rows
	}
	out := make([]model.Record, 0, len(rows))
	for _, r := range rows {
		if r.Matches(query) {
			out = append(out, r)
		}
	}
	return out
}
