package models

import "time"

// RootFolderName is the name of the single parentless folder every user owns.
const RootFolderName = "home"

// Folder is a node of a user's tree. ParentID is nil only for the root.
type Folder struct {
	ID           string
	UserID       string
	ParentID     *string
	Name         string
	DateModified time.Time
}

// IsRoot reports whether f is the user's root folder.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}
