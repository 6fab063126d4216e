package services

import (
	"context"
	"fmt"
	"slices"
)

// FindOrphanBlobs lists blob keys that no file row references. It only
// reports; nothing is deleted.
func (s *DriveService) FindOrphanBlobs(ctx context.Context) ([]string, error) {
	keys, err := s.blobs.List(ctx, blobKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}

	urls, err := s.files().ListURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list file urls: %w", err)
	}

	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		referenced[u] = struct{}{}
	}

	var orphans []string
	for _, k := range keys {
		if _, ok := referenced[k]; !ok {
			orphans = append(orphans, k)
			s.logger.Warn(ctx, "unreferenced blob", "key", k)
		}
	}
	slices.Sort(orphans)

	s.logger.Info(ctx, "reconciliation finished", "blobs", len(keys), "files", len(urls), "orphans", len(orphans))
	return orphans, nil
}
