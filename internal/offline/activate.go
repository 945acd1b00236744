package offline

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Activate deletes every cache generation other than the policy's own and
// returns the names it removed.
func Activate(ctx context.Context, store Store, p Policy) ([]string, error) {
	names, err := store.Caches(ctx)
	if err != nil {
		return nil, err
	}
	var purged []string
	for _, name := range names {
		if name == p.CacheName() {
			continue
		}
		if err := store.DeleteCache(ctx, name); err != nil {
			return purged, err
		}
		purged = append(purged, name)
	}
	if len(purged) > 0 {
		log.WithFields(log.Fields{"current": p.CacheName(), "purged": purged}).Info("offline cache activated")
	}
	return purged, nil
}
