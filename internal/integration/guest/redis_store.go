// Package guest stores guest sessions in Redis, standing in for the device
// storage of a browser: a mode flag and one serialized entry list per session.
package guest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

const (
	guestModeOn = "true"

	// maxUpdateAttempts bounds optimistic retries of UpdateEntries. Every
	// failed attempt means another writer of the same session committed.
	maxUpdateAttempts = 64
)

// ErrConcurrentUpdate is returned when UpdateEntries keeps losing the race
// for one session.
var ErrConcurrentUpdate = errors.New("guest entries changed concurrently")

// redisStore implements the adapter.GuestStore interface.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a guest store whose keys expire after ttl of inactivity.
// A ttl of zero keeps keys forever.
func NewRedisStore(client *redis.Client, ttl time.Duration) adapter.GuestStore {
	return &redisStore{client: client, ttl: ttl}
}

func modeKey(sessionID string) string    { return "guest:" + sessionID + ":mode" }
func entriesKey(sessionID string) string { return "guest:" + sessionID + ":entries" }

// IsGuest reports whether the guest flag is set for the session.
func (s *redisStore) IsGuest(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	val, err := s.client.Get(ctx, modeKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read guest flag: %w", err)
	}
	if val != guestModeOn {
		return false, nil
	}

	// activity keeps the session alive
	s.touch(ctx, sessionID)
	return true, nil
}

// SetGuest sets the guest flag for the session.
func (s *redisStore) SetGuest(ctx context.Context, sessionID string) error {
	if err := s.client.Set(ctx, modeKey(sessionID), guestModeOn, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set guest flag: %w", err)
	}
	return nil
}

// ClearGuest removes the guest flag. Stored entries stay until they expire.
func (s *redisStore) ClearGuest(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, modeKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear guest flag: %w", err)
	}
	return nil
}

// LoadEntries returns the stored snapshot. Missing and malformed snapshots
// both yield an empty list; the malformed case is only logged.
func (s *redisStore) LoadEntries(ctx context.Context, sessionID string) ([]*entity.Entry, error) {
	return decodeEntries(sessionID, s.client.Get(ctx, entriesKey(sessionID)))
}

// UpdateEntries runs fn between WATCH and EXEC on the entries key, retrying
// on redis.TxFailedErr until the write commits on an unchanged snapshot.
func (s *redisStore) UpdateEntries(
	ctx context.Context,
	sessionID string,
	fn func(current []*entity.Entry) ([]*entity.Entry, error),
) ([]*entity.Entry, error) {
	key := entriesKey(sessionID)

	var written []*entity.Entry
	txf := func(tx *redis.Tx) error {
		current, err := decodeEntries(sessionID, tx.Get(ctx, key))
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		raw, err := encodeEntries(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, s.ttl)
			return nil
		})
		if err == nil {
			written = next
		}
		return err
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return written, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, fmt.Errorf("failed to write guest entries: %w", err)
		}
		slog.Debug("Guest snapshot changed during update, retrying", "session_id", sessionID, "attempt", attempt)
	}
	return nil, ErrConcurrentUpdate
}

func decodeEntries(sessionID string, cmd *redis.StringCmd) ([]*entity.Entry, error) {
	raw, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return []*entity.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read guest entries: %w", err)
	}

	var records []entryRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		slog.Warn("Discarding malformed guest snapshot",
			"session_id", sessionID,
			"error", err,
		)
		return []*entity.Entry{}, nil
	}

	entries := make([]*entity.Entry, 0, len(records))
	for i := range records {
		entries = append(entries, records[i].toEntity())
	}
	return entries, nil
}

func encodeEntries(entries []*entity.Entry) ([]byte, error) {
	records := make([]entryRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, entryRecordFromEntity(e))
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode guest entries: %w", err)
	}
	return raw, nil
}

func (s *redisStore) touch(ctx context.Context, sessionID string) {
	if s.ttl <= 0 {
		return
	}
	pipe := s.client.Pipeline()
	pipe.Expire(ctx, modeKey(sessionID), s.ttl)
	pipe.Expire(ctx, entriesKey(sessionID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("Failed to extend guest session", "session_id", sessionID, "error", err)
	}
}
