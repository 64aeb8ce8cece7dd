package pg

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gclaussn/go-bpmn-schema/store"
	"github.com/jackc/pgx/v5"
)

type diagramEntity struct {
	Id string

	Document     []byte
	ErrorCount   int
	InfoCount    int
	Name         string
	Revision     int
	SavedAt      time.Time
	Version      string
	WarningCount int
}

func (e diagramEntity) Record() store.Record {
	return store.Record{
		DiagramId: e.Id,
		Name:      e.Name,
		Version:   e.Version,
		Revision:  e.Revision,
		Errors:    e.ErrorCount,
		Warnings:  e.WarningCount,
		Infos:     e.InfoCount,
		SavedAt:   e.SavedAt,
	}
}

type diagramRepository struct {
	tx    pgx.Tx
	txCtx context.Context
}

func (r diagramRepository) Delete(id string) (bool, error) {
	tag, err := r.tx.Exec(r.txCtx, "DELETE FROM diagram WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete diagram %s: %v", id, err)
	}
	return tag.RowsAffected() != 0, nil
}

func (r diagramRepository) Query(criteria store.Criteria, defaultLimit int) ([]store.Record, error) {
	limit := criteria.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var errors string
	if criteria.HasErrors != nil {
		if *criteria.HasErrors {
			errors = "with"
		} else {
			errors = "without"
		}
	}

	var sql bytes.Buffer
	if err := sqlDiagramQuery.Execute(&sql, map[string]any{
		"c":      criteria,
		"errors": errors,
		"limit":  limit,
		"offset": max(criteria.Offset, 0),
	}); err != nil {
		return nil, fmt.Errorf("failed to execute diagram query template: %v", err)
	}

	rows, err := r.tx.Query(r.txCtx, sql.String())
	if err != nil {
		return nil, fmt.Errorf("failed to execute diagram query: %v", err)
	}

	defer rows.Close()

	results := make([]store.Record, 0)
	for rows.Next() {
		var entity diagramEntity

		if err := rows.Scan(
			&entity.Id,

			&entity.ErrorCount,
			&entity.InfoCount,
			&entity.Name,
			&entity.Revision,
			&entity.SavedAt,
			&entity.Version,
			&entity.WarningCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan diagram row: %v", err)
		}

		results = append(results, entity.Record())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read diagram rows: %v", err)
	}

	return results, nil
}

func (r diagramRepository) Select(id string) (*diagramEntity, error) {
	row := r.tx.QueryRow(r.txCtx, `
SELECT
	document,
	error_count,
	info_count,
	name,
	revision,
	saved_at,
	version,
	warning_count
FROM
	diagram
WHERE
	id = $1
`, id)

	entity := diagramEntity{Id: id}
	if err := row.Scan(
		&entity.Document,
		&entity.ErrorCount,
		&entity.InfoCount,
		&entity.Name,
		&entity.Revision,
		&entity.SavedAt,
		&entity.Version,
		&entity.WarningCount,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		} else {
			return nil, fmt.Errorf("failed to select diagram %s: %v", id, err)
		}
	}

	return &entity, nil
}

// SelectRevision selects the revision of a diagram and locks the row until the transaction ends.
func (r diagramRepository) SelectRevision(id string) (int, error) {
	row := r.tx.QueryRow(r.txCtx, "SELECT revision FROM diagram WHERE id = $1 FOR UPDATE", id)

	var revision int
	if err := row.Scan(&revision); err != nil {
		if err == pgx.ErrNoRows {
			return 0, err
		} else {
			return 0, fmt.Errorf("failed to select revision of diagram %s: %v", id, err)
		}
	}

	return revision, nil
}

// Upsert inserts a diagram with revision 1 or updates an existing diagram and increases its revision.
func (r diagramRepository) Upsert(entity *diagramEntity) error {
	row := r.tx.QueryRow(r.txCtx, `
INSERT INTO diagram (
	id,

	document,
	error_count,
	info_count,
	name,
	revision,
	saved_at,
	version,
	warning_count
) VALUES (
	$1,

	$2,
	$3,
	$4,
	$5,
	1,
	$6,
	$7,
	$8
) ON CONFLICT (id) DO UPDATE SET
	document = EXCLUDED.document,
	error_count = EXCLUDED.error_count,
	info_count = EXCLUDED.info_count,
	name = EXCLUDED.name,
	revision = diagram.revision + 1,
	saved_at = EXCLUDED.saved_at,
	version = EXCLUDED.version,
	warning_count = EXCLUDED.warning_count
RETURNING revision
`,
		entity.Id,

		string(entity.Document),
		entity.ErrorCount,
		entity.InfoCount,
		entity.Name,
		entity.SavedAt,
		entity.Version,
		entity.WarningCount,
	)

	if err := row.Scan(&entity.Revision); err != nil {
		return fmt.Errorf("failed to upsert diagram %s: %v", entity.Id, err)
	}

	return nil
}
