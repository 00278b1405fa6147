// Package redis backs the session store with a redis instance so chat
// transcripts survive restarts and can be shared across replicas.
// Expiry is delegated to redis key TTLs.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/vestnikmedia/vestnik/internal/chat/session"
)

const keyPrefix = "vestnik:chat:session:"

// Store is a redis-backed session.Store. The Store interface carries no
// context, so calls run under a per-operation timeout.
type Store struct {
	client      *goredis.Client
	ttl         time.Duration
	historyCap  int
	historyKeep int
	opTimeout   time.Duration
}

func New(client *goredis.Client, ttl time.Duration, historyCap, historyKeep int) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if historyCap <= 0 {
		historyCap = 20
	}
	if historyKeep <= 0 || historyKeep > historyCap {
		historyKeep = 10
	}
	return &Store{
		client:      client,
		ttl:         ttl,
		historyCap:  historyCap,
		historyKeep: historyKeep,
		opTimeout:   5 * time.Second,
	}
}

func (s *Store) key(id string) string { return keyPrefix + id }

func (s *Store) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.opTimeout)
}

// Create marks the session with a sentinel first turn-less key. An empty
// redis list does not exist, so the marker is a plain string alongside
// the list.
func (s *Store) Create() (string, error) {
	id := uuid.NewString()
	ctx, cancel := s.ctx()
	defer cancel()
	if err := s.client.Set(ctx, s.key(id), "1", s.ttl).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

func (s *Store) Exists(id string) bool {
	ctx, cancel := s.ctx()
	defer cancel()
	n, err := s.client.Exists(ctx, s.key(id)).Result()
	return err == nil && n > 0
}

func (s *Store) Append(id string, turn session.Turn) error {
	if !s.Exists(id) {
		return session.ErrNotFound
	}
	payload, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("encode turn: %w", err)
	}

	ctx, cancel := s.ctx()
	defer cancel()
	turnsKey := s.key(id) + ":turns"
	if err := s.client.RPush(ctx, turnsKey, payload).Err(); err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	n, err := s.client.LLen(ctx, turnsKey).Result()
	if err != nil {
		return fmt.Errorf("session length: %w", err)
	}
	if n > int64(s.historyCap) {
		if err := s.client.LTrim(ctx, turnsKey, int64(-s.historyKeep), -1).Err(); err != nil {
			return fmt.Errorf("trim session: %w", err)
		}
	}
	// Touching the session extends both keys.
	if err := s.client.Expire(ctx, s.key(id), s.ttl).Err(); err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	if err := s.client.Expire(ctx, turnsKey, s.ttl).Err(); err != nil {
		return fmt.Errorf("touch transcript: %w", err)
	}
	return nil
}

func (s *Store) History(id string) ([]session.Turn, error) {
	if !s.Exists(id) {
		return nil, session.ErrNotFound
	}
	ctx, cancel := s.ctx()
	defer cancel()
	raw, err := s.client.LRange(ctx, s.key(id)+":turns", 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	turns := make([]session.Turn, 0, len(raw))
	for _, item := range raw {
		var t session.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("decode turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (s *Store) End(id string) error {
	ctx, cancel := s.ctx()
	defer cancel()
	if err := s.client.Del(ctx, s.key(id), s.key(id)+":turns").Err(); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}
