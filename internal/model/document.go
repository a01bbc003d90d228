package model

import "time"

// Document represents a thesis or academic paper stored in the repository.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Abstract    string    `json:"abstract"`
	Authors     []string  `json:"authors"`
	Adviser     string    `json:"adviser,omitempty"`
	Program     string    `json:"program"`
	Year        int       `json:"year"`
	Keywords    []string  `json:"keywords,omitempty"`
	Pages       int       `json:"pages"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	StoragePath string    `json:"storage_path"`
	Status      Status    `json:"status"`
	OwnerID     string    `json:"owner_id"`
	Downloads   int64     `json:"downloads"`
	CreatedAt   time.Time `json:"created_at"`
}
