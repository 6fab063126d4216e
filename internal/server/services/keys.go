package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// blobKeyPrefix is the common prefix of every blob the drive writes.
const blobKeyPrefix = "users/"

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9\-_.]`)

// newBlobKey derives a fresh object key for a user's upload. The ULID keeps
// keys unique and time ordered; the sanitized name keeps them readable.
var newBlobKey = func(userID, name string) string {
	return fmt.Sprintf("%s%s/%s_%s", blobKeyPrefix, userID, ulid.Make().String(), sanitizeKeyName(name))
}

func sanitizeKeyName(name string) string {
	return unsafeKeyChars.ReplaceAllString(strings.TrimSpace(name), "_")
}

// isValidID reports whether id is a well-formed UUID. Malformed ids can
// never match a row, so callers treat them as not found.
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// isRootSelector reports whether id addresses the user's root folder.
func isRootSelector(id string) bool {
	return id == "" || id == common.RootFolderSelector
}
