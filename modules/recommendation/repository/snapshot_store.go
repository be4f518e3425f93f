package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"room-booking-api/core/cache"
	"room-booking-api/core/constants"
	"room-booking-api/modules/recommendation/entity"
)

// SnapshotStore keeps the last good directory snapshot per date in redis
// so other nodes can serve it while the directory is down.
type SnapshotStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewSnapshotStore(c cache.Cache, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{cache: c, ttl: ttl}
}

func snapshotKey(date string) string {
	return constants.RedisKeyDirectorySnapshot + date
}

func (s *SnapshotStore) Save(ctx context.Context, snap *entity.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", snap.Date, err)
	}
	return s.cache.Set(ctx, snapshotKey(snap.Date), body, s.ttl)
}

func (s *SnapshotStore) Load(ctx context.Context, date string) (*entity.Snapshot, error) {
	body, err := s.cache.Get(ctx, snapshotKey(date))
	if err != nil {
		return nil, err
	}
	var snap entity.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", date, err)
	}
	return &snap, nil
}

// Dates lists the dates that have a stored snapshot.
func (s *SnapshotStore) Dates(ctx context.Context) ([]string, error) {
	keys, err := s.cache.Keys(ctx, constants.RedisKeyDirectorySnapshot+"*")
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(keys))
	for _, k := range keys {
		dates = append(dates, k[len(constants.RedisKeyDirectorySnapshot):])
	}
	return dates, nil
}
