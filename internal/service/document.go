package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"thesisrepo/internal/model"
	"thesisrepo/internal/permission"
	"thesisrepo/internal/repository"
	"thesisrepo/internal/storage"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("not found")
	ErrReaderNil       = errors.New("reader is nil")
	ErrInvalidMetadata = errors.New("invalid document metadata")
	ErrUnsupportedType = errors.New("unsupported content type")
)

// downloadURLDefaultTTL bounds presigned links when config supplies none.
const downloadURLDefaultTTL = 15 * time.Minute

// UploadInput carries the thesis metadata submitted alongside the file.
type UploadInput struct {
	Title    string
	Abstract string
	Authors  []string
	Adviser  string
	Program  string
	Year     int
	Keywords []string
	Pages    int
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases for handling documents.
// Mutating operations take the acting user explicitly; there is no ambient
// session state.
type DocumentService interface {
	// Upload stores the file in object storage and its metadata in the DB,
	// rolling back storage if the DB save fails. The document starts in
	// pending, owned by the actor. Only PDF files are accepted.
	Upload(ctx context.Context, actorID string, r io.Reader, in UploadInput, originalFilename string, size int64) (*model.Document, error)

	// List returns documents matching the filter using limit/offset and a total count.
	List(ctx context.Context, f repository.ListFilter, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// DownloadURL returns a time-limited presigned link for the document's
	// file and bumps the download counter (best effort).
	DownloadURL(ctx context.Context, actorID, id string) (string, error)

	// Delete removes a document by ID from both storage and repository.
	Delete(ctx context.Context, actorID, id string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store       storage.Storage
	repo        repository.DocumentRepository
	users       repository.UserRepository
	downloadTTL time.Duration
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, users repository.UserRepository, downloadTTL time.Duration) DocumentService {
	if downloadTTL <= 0 {
		downloadTTL = downloadURLDefaultTTL
	}
	return &documentService{store: store, repo: repo, users: users, downloadTTL: downloadTTL}
}

// requireCapability loads the actor and checks a single capability.
func (s *documentService) requireCapability(ctx context.Context, actorID string, c permission.Capability) (*model.User, error) {
	if actorID == "" {
		return nil, ErrIDRequired
	}
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActorNotFound
		}
		return nil, fmt.Errorf("load actor: %w", err)
	}
	if !permission.HasCapability(actor.Role, c) {
		return nil, fmt.Errorf("%w: role %s lacks %s", ErrPermissionDenied, actor.Role, c)
	}
	return actor, nil
}

func validateUpload(in UploadInput) error {
	switch {
	case in.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidMetadata)
	case len(in.Authors) == 0:
		return fmt.Errorf("%w: at least one author is required", ErrInvalidMetadata)
	case in.Program == "":
		return fmt.Errorf("%w: program is required", ErrInvalidMetadata)
	case in.Year <= 0:
		return fmt.Errorf("%w: year is required", ErrInvalidMetadata)
	}
	return nil
}

func (s *documentService) Upload(ctx context.Context, actorID string, r io.Reader, in UploadInput, originalFilename string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if err := validateUpload(in); err != nil {
		return nil, err
	}
	if ext := filepath.Ext(originalFilename); ext != ".pdf" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	actor, err := s.requireCapability(ctx, actorID, permission.CanUpload)
	if err != nil {
		return nil, err
	}

	// Stored object name is UUID-based; the original filename survives only
	// as object metadata.
	genName := uuid.New().String() + ".pdf"
	key := filepath.ToSlash(filepath.Join("theses", genName))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: "application/pdf",
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Abstract:    in.Abstract,
		Authors:     in.Authors,
		Adviser:     in.Adviser,
		Program:     in.Program,
		Year:        in.Year,
		Keywords:    in.Keywords,
		Pages:       in.Pages,
		Size:        objInfo.Size,
		ContentType: "application/pdf",
		StoragePath: objInfo.Key,
		Status:      model.StatusPending,
		OwnerID:     actor.ID,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, f repository.ListFilter, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, f, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) DownloadURL(ctx context.Context, actorID, id string) (string, error) {
	if id == "" {
		return "", ErrIDRequired
	}
	if _, err := s.requireCapability(ctx, actorID, permission.CanDownload); err != nil {
		return "", err
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	url, err := s.store.PresignGet(ctx, doc.StoragePath, s.downloadTTL)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	// Counter bump is best effort; a failed increment must not block the download.
	_ = s.repo.IncrementDownloads(ctx, id)
	return url, nil
}

// Delete removes a document from storage, then deletes its record.
func (s *documentService) Delete(ctx context.Context, actorID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := s.requireCapability(ctx, actorID, permission.CanDelete); err != nil {
		return err
	}
	// Find the document to get its storage path
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	// Delete DB row (repository ignores missing row errors as per contract)
	return s.repo.Delete(ctx, id)
}
