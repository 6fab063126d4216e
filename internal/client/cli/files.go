package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gophdrive/internal/filex"
)

// Put uploads a local file into the current folder under its base name.
func (a *App) Put(ctx context.Context, args []string) error {
	path := args[0]

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	f, err := a.api.Upload(callCtx, a.cwd.id, filepath.Base(path), content)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Uploaded %s (%s, %s) [%s]\n", f.Name, f.Size, f.MimeType, f.ID)
	return nil
}

// Get downloads a file. Without a destination it lands in the configured
// download directory under its stored name.
func (a *App) Get(ctx context.Context, args []string) error {
	dest := ""
	if len(args) > 1 {
		dest = args[1]
	}

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	resp, err := a.api.Download(callCtx, args[0])
	if err != nil {
		return err
	}

	dir := "."
	if a.config != nil && a.config.DownloadDir != "" {
		dir = a.config.DownloadDir
	}

	path, err := filex.DownloadPath(dir, dest, resp.Name)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, resp.Content, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Fprintf(a.out, "Saved %s (%s, %d bytes)\n", path, resp.MimeType, len(resp.Content))
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	if _, err := a.api.DeleteFile(callCtx, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted file %s\n", args[0])
	return nil
}
