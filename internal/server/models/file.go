// Package models defines server-side data models persisted in the database.
package models

import "time"

// File describes the metadata of an uploaded file. The bytes themselves
// live in the blob store under URL.
type File struct {
	ID       string
	UserID   string
	FolderID string

	// Name is the original filename shown to the user.
	Name string
	// URL is the blob key. It is unique and never equal to Name.
	URL string

	Size         int64
	MimeType     string
	DateModified time.Time
}
