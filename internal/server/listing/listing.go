// Package listing turns a folder and its children into the view shown to
// users, with human-readable sizes and dates.
package listing

import (
	"fmt"
	"iter"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/server/models"
)

const dateLayout = "Jan 02, 2006"

// FolderItem is a child folder row.
type FolderItem struct {
	ID       string
	Name     string
	Modified string
}

// FileItem is a file row. Size is formatted, Bytes is the raw length.
type FileItem struct {
	ID       string
	Name     string
	MimeType string
	Size     string
	Bytes    int64
	Modified string
}

// FolderView is the content of one folder. Items are formatted lazily as
// they are iterated.
type FolderView struct {
	Folder  *models.Folder
	folders []*models.Folder
	files   []*models.File
}

func NewFolderView(folder *models.Folder, folders []*models.Folder, files []*models.File) *FolderView {
	return &FolderView{Folder: folder, folders: folders, files: files}
}

// ParentID returns the id of the enclosing folder, or "" for the root.
func (v *FolderView) ParentID() string {
	if v.Folder == nil || v.Folder.ParentID == nil {
		return ""
	}
	return *v.Folder.ParentID
}

func (v *FolderView) IsRoot() bool {
	return v.Folder != nil && v.Folder.IsRoot()
}

func (v *FolderView) FolderCount() int { return len(v.folders) }
func (v *FolderView) FileCount() int   { return len(v.files) }

func (v *FolderView) Folders() iter.Seq[FolderItem] {
	return func(yield func(FolderItem) bool) {
		for _, f := range v.folders {
			item := FolderItem{ID: f.ID, Name: f.Name, Modified: FormatDate(f.DateModified)}
			if !yield(item) {
				return
			}
		}
	}
}

func (v *FolderView) Files() iter.Seq[FileItem] {
	return func(yield func(FileItem) bool) {
		for _, f := range v.files {
			item := FileItem{
				ID:       f.ID,
				Name:     f.Name,
				MimeType: f.MimeType,
				Size:     FormatSize(f.Size),
				Bytes:    f.Size,
				Modified: FormatDate(f.DateModified),
			}
			if !yield(item) {
				return
			}
		}
	}
}

// FormatSize renders n bytes with binary units: "512 B", "1.50 KB", "2.00 MB".
func FormatSize(n int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case n < kb:
		return fmt.Sprintf("%d B", n)
	case n < mb:
		return fmt.Sprintf("%.2f KB", float64(n)/kb)
	case n < gb:
		return fmt.Sprintf("%.2f MB", float64(n)/mb)
	default:
		return fmt.Sprintf("%.2f GB", float64(n)/gb)
	}
}

// FormatDate renders t as "Jan 02, 2006"; the zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
