package repository

import (
	"context"

	"innovatehub-platform/internal/domain/model"
)

// TableCatalog is the port for the generic table browser's backend access.
// No relational integrity is enforced at this layer; rows come back verbatim
// in whatever order the backend uses by default.
type TableCatalog interface {
	// ListTables returns the raw table names from the backend's system
	// catalog, unordered and possibly with duplicates across schemas.
	ListTables(ctx context.Context) ([]string, error)

	// FetchRecords returns up to limit rows of the named table. Every record
	// carries a string "id". Unknown tables yield domain.ErrTableUnknown.
	FetchRecords(ctx context.Context, table string, limit int) ([]model.Record, error)
}
