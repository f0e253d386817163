package auth

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a session expired or was revoked.
var ErrSessionNotFound = errors.New("session not found")

// Session is the server side record behind a token.
type Session struct {
	ID       string    `json:"id"`
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	StaffID  string    `json:"staff_id,omitempty"`
	Expires  time.Time `json:"expires"`
}

// SessionStore keeps live sessions so that logout and account deletion can
// revoke tokens before they expire.
type SessionStore interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID int64) error
}

// =============================================================================

type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "attendance:session:"}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) userKey(userID int64) string {
	return s.prefix + "user:" + strconv.FormatInt(userID, 10)
}

func (s *RedisStore) Save(ctx context.Context, sess Session) error {
	ttl := time.Until(sess.Expires)
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(sess.ID), data, ttl)
	pipe.SAdd(ctx, s.userKey(sess.UserID), sess.ID)
	pipe.Expire(ctx, s.userKey(sess.UserID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "saving session")
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, errors.Wrap(err, "reading session")
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, errors.Wrap(err, "decoding session")
	}

	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(id))
	pipe.SRem(ctx, s.userKey(sess.UserID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "deleting session")
	}

	return nil
}

func (s *RedisStore) DeleteByUser(ctx context.Context, userID int64) error {
	ids, err := s.client.SMembers(ctx, s.userKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return errors.Wrap(err, "listing user sessions")
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, s.key(id))
	}
	keys = append(keys, s.userKey(userID))

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "deleting user sessions")
	}

	return nil
}

// =============================================================================

// MemoryStore is used when no redis address is configured and in tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session), now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, old := range s.sessions {
		if !now.Before(old.Expires) {
			delete(s.sessions, id)
		}
	}

	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if !s.now().Before(sess.Expires) {
		delete(s.sessions, id)
		return Session{}, ErrSessionNotFound
	}

	return sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) DeleteByUser(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}
