package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"salespipeline/internal/domain/entities"
	"salespipeline/internal/usecase/interfaces"

	_ "github.com/lib/pq"
)

const (
	defaultAuditTableName    = "sync_audit_log"
	postgresOperationTimeout = 5 * time.Second
	defaultAuditListLimit    = 200
)

var ErrMissingDSN = errors.New("audit database dsn is required")

type sqlOpenFunc func(driverName, dsn string) (*sql.DB, error)

// AuditLogPostgresRepository appends sync audit entries to PostgreSQL.
//
// The table is created on first use. Rows are never updated or deleted.
type AuditLogPostgresRepository struct {
	dsn       string
	tableName string
	openDB    sqlOpenFunc

	initOnce sync.Once
	initErr  error
	db       *sql.DB
}

var _ interfaces.IAuditLogRepository = (*AuditLogPostgresRepository)(nil)

func NewAuditLogPostgresRepository(dsn, tableName string) (*AuditLogPostgresRepository, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, ErrMissingDSN
	}
	return &AuditLogPostgresRepository{
		dsn:       dsn,
		tableName: tableOrDefault(strings.TrimSpace(tableName), defaultAuditTableName),
		openDB:    sql.Open,
	}, nil
}

func (r *AuditLogPostgresRepository) Append(ctx context.Context, e entities.SyncAuditEntry) error {
	if err := r.ensureReady(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, entity_kind, entity_id, external_system, operation, direction, outcome, error_class, error_detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, quoteIdentifier(r.tableName))
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		string(e.EntityKind),
		e.EntityID,
		string(e.ExternalSystem),
		e.Operation,
		string(e.Direction),
		string(e.Outcome),
		string(e.ErrorClass),
		e.ErrorDetail,
		e.CreatedAt.UTC(),
	)
	return err
}

// List returns entries newest first.
func (r *AuditLogPostgresRepository) List(ctx context.Context, filter entities.AuditFilter) ([]entities.SyncAuditEntry, error) {
	if err := r.ensureReady(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	var (
		where []string
		args  []any
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where = append(where, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("entity_kind", string(filter.EntityKind))
	add("entity_id", filter.EntityID)
	add("operation", filter.Operation)

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultAuditListLimit
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT id, entity_kind, entity_id, external_system, operation, direction, outcome, error_class, error_detail, created_at
		FROM %s`, quoteIdentifier(r.tableName))
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entities.SyncAuditEntry, 0)
	for rows.Next() {
		var (
			e                                          entities.SyncAuditEntry
			kind, system, direction, outcome, errClass string
		)
		if err := rows.Scan(&e.ID, &kind, &e.EntityID, &system, &e.Operation, &direction, &outcome, &errClass, &e.ErrorDetail, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.EntityKind = entities.EntityKind(kind)
		e.ExternalSystem = entities.ExternalSystem(system)
		e.Direction = entities.SyncDirection(direction)
		e.Outcome = entities.SyncOutcome(outcome)
		e.ErrorClass = entities.ErrorClass(errClass)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *AuditLogPostgresRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *AuditLogPostgresRepository) ensureReady() error {
	r.initOnce.Do(func() {
		db, err := r.openDB("postgres", r.dsn)
		if err != nil {
			r.initErr = err
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), postgresOperationTimeout)
		defer cancel()

		table := quoteIdentifier(r.tableName)
		stmts := []string{
			fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				entity_kind TEXT NOT NULL,
				entity_id TEXT NOT NULL,
				external_system TEXT NOT NULL,
				operation TEXT NOT NULL,
				direction TEXT NOT NULL,
				outcome TEXT NOT NULL,
				error_class TEXT NOT NULL DEFAULT '',
				error_detail TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, table),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (entity_kind, entity_id)`,
				quoteIdentifier(r.tableName+"_entity_idx"), table),
		}
		for _, stmt := range stmts {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				_ = db.Close()
				r.initErr = err
				return
			}
		}
		r.db = db
	})
	return r.initErr
}

func quoteIdentifier(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "\"\""
	}
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}
