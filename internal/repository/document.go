package repository

import (
	"context"

	"thesisrepo/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document row together with its initial history
	// entry (from=nil, to=pending) in a single transaction.
	// Returns the stored document (may include values set by the DB).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a paginated list of documents and total rows count for the given filter.
	List(ctx context.Context, f ListFilter, pq PageQuery) (*PageResult[model.Document], error)

	// IncrementDownloads bumps the download counter for a document.
	IncrementDownloads(ctx context.Context, id string) error

	// Delete removes a document and its history by ID.
	// It returns nil if the rows were deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// ListFilter narrows a document listing. Zero values mean "no filter".
type ListFilter struct {
	Status  model.Status
	Program string
	OwnerID string
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
