package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"thesisrepo/internal/model"
	"thesisrepo/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
// Authors and keywords are stored as JSONB columns.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, title, abstract, authors, adviser, program, year, keywords,
		pages, size, content_type, storage_path, status, owner_id, downloads, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var (
		d        model.Document
		authors  []byte
		keywords []byte
		status   string
	)
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Abstract,
		&authors,
		&d.Adviser,
		&d.Program,
		&d.Year,
		&keywords,
		&d.Pages,
		&d.Size,
		&d.ContentType,
		&d.StoragePath,
		&status,
		&d.OwnerID,
		&d.Downloads,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(authors, &d.Authors); err != nil {
		return nil, fmt.Errorf("decode authors: %w", err)
	}
	if err := json.Unmarshal(keywords, &d.Keywords); err != nil {
		return nil, fmt.Errorf("decode keywords: %w", err)
	}
	d.Status = model.Status(status)
	return &d, nil
}

// Create inserts a new document row plus its initial history record in one
// transaction, so a document never exists without a creation audit entry.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	authors, err := json.Marshal(doc.Authors)
	if err != nil {
		return nil, fmt.Errorf("encode authors: %w", err)
	}
	keywords, err := json.Marshal(doc.Keywords)
	if err != nil {
		return nil, fmt.Errorf("encode keywords: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	q := `
		INSERT INTO documents (id, title, abstract, authors, adviser, program, year, keywords,
			pages, size, content_type, storage_path, status, owner_id, downloads, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + documentColumns
	row := tx.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Abstract,
		authors,
		doc.Adviser,
		doc.Program,
		doc.Year,
		keywords,
		doc.Pages,
		doc.Size,
		doc.ContentType,
		doc.StoragePath,
		string(doc.Status),
		doc.OwnerID,
		doc.Downloads,
		doc.CreatedAt,
	)
	stored, err := scanDocument(row)
	if err != nil {
		return nil, err
	}

	const qHist = `
		INSERT INTO workflow_history (document_id, from_status, to_status, actor_id, reason)
		VALUES ($1, NULL, $2, $3, NULL)
	`
	if _, err := tx.ExecContext(ctx, qHist, doc.ID, string(doc.Status), doc.OwnerID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stored, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns documents using LIMIT/OFFSET pagination and a total count.
// Filters are optional and combined with AND.
func (r *DocumentPostgres) List(ctx context.Context, f repository.ListFilter, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Program != "" {
		args = append(args, f.Program)
		conds = append(conds, fmt.Sprintf("program = $%d", len(args)))
	}
	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		conds = append(conds, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	// Count total rows
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents"+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	qList := fmt.Sprintf(
		"SELECT "+documentColumns+" FROM documents%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2,
	)
	rows, err := r.db.QueryContext(ctx, qList, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// IncrementDownloads bumps the download counter by one.
func (r *DocumentPostgres) IncrementDownloads(ctx context.Context, id string) error {
	const q = `UPDATE documents SET downloads = downloads + 1 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// Delete removes a document and its history rows. It does not return an
// error if the rows do not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM workflow_history WHERE document_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit()
}
