package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophdrive/internal/api"
)

// enter loads folderID ("" means home) and makes it the current folder.
func (a *App) enter(ctx context.Context, folderID string) error {
	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	l, err := a.api.GetFolder(callCtx, folderID)
	if err != nil {
		return err
	}

	a.cwd = &location{id: l.FolderID, name: l.Name, parentID: l.ParentID}
	return nil
}

func (a *App) printListing(l *api.FolderListing) {
	fmt.Fprintf(a.out, "%s [%s]\n", l.Name, l.FolderID)

	if len(l.Folders) == 0 && len(l.Files) == 0 {
		fmt.Fprintln(a.out, "  (empty)")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tNAME\tSIZE\tMODIFIED\tID")
	for _, f := range l.Folders {
		fmt.Fprintf(tw, "dir\t%s\t-\t%s\t%s\n", f.Name, f.Modified, f.ID)
	}
	for _, f := range l.Files {
		fmt.Fprintf(tw, "file\t%s\t%s\t%s\t%s\n", f.Name, f.Size, f.Modified, f.ID)
	}
	_ = tw.Flush()
}

// List prints the current folder, or the folder given as the first argument.
func (a *App) List(ctx context.Context, args []string) error {
	folderID := a.cwd.id
	if len(args) > 0 {
		folderID = args[0]
	}

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	l, err := a.api.GetFolder(callCtx, folderID)
	if err != nil {
		return err
	}

	a.printListing(l)
	return nil
}

// ChangeDir accepts a folder id, ".." for the parent or "home".
func (a *App) ChangeDir(ctx context.Context, args []string) error {
	switch target := args[0]; target {
	case "home", "~":
		return a.enter(ctx, "")
	case "..":
		if a.cwd.parentID == "" {
			fmt.Fprintln(a.out, "Already at home")
			return nil
		}
		return a.enter(ctx, a.cwd.parentID)
	default:
		return a.enter(ctx, target)
	}
}

// MakeDir creates a subfolder of the current folder. Remaining arguments are
// joined so names may contain spaces.
func (a *App) MakeDir(ctx context.Context, args []string) error {
	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	f, err := a.api.CreateFolder(callCtx, a.cwd.id, strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created folder %s [%s]\n", f.Name, f.ID)
	return nil
}

func (a *App) Rename(ctx context.Context, args []string) error {
	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	id, err := a.api.RenameFolder(callCtx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	if a.cwd.id == id {
		if err := a.enter(ctx, id); err != nil {
			return err
		}
	}

	fmt.Fprintf(a.out, "Renamed folder %s\n", id)
	return nil
}

// RemoveDir deletes a folder with everything below it. When the current
// folder is removed the session moves to its parent.
func (a *App) RemoveDir(ctx context.Context, args []string) error {
	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	parentID, err := a.api.DeleteFolder(callCtx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted folder %s\n", args[0])

	if a.cwd.id == args[0] {
		return a.enter(ctx, parentID)
	}
	return nil
}
