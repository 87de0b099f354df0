package echoapi

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var errSessionNotFound = errors.New("session not found")

// SessionStore keeps server-side session state keyed by an opaque token.
// Get slides the idle timeout forward on every hit.
type SessionStore interface {
	Create(ctx context.Context, email string) (token string, err error)
	Get(ctx context.Context, token string) (email string, err error)
	Delete(ctx context.Context, token string) error
}

// memorySessionStore holds sessions in process memory; fine for a single
// instance and for tests.
type memorySessionStore struct {
	mutex       sync.Mutex
	sessions    map[string]memorySession
	idleTimeout time.Duration
}

type memorySession struct {
	email     string
	expiresAt time.Time
}

var _ SessionStore = (*memorySessionStore)(nil)

func NewMemorySessionStore(idleTimeout time.Duration) SessionStore {
	return &memorySessionStore{
		sessions:    make(map[string]memorySession),
		idleTimeout: idleTimeout,
	}
}

func (store *memorySessionStore) Create(_ context.Context, email string) (string, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	token := uuid.NewString()
	store.sessions[token] = memorySession{email: email, expiresAt: time.Now().Add(store.idleTimeout)}
	return token, nil
}

func (store *memorySessionStore) Get(_ context.Context, token string) (string, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	sess, ok := store.sessions[token]
	if !ok {
		return "", errSessionNotFound
	}
	if time.Now().After(sess.expiresAt) {
		delete(store.sessions, token)
		return "", errSessionNotFound
	}
	sess.expiresAt = time.Now().Add(store.idleTimeout)
	store.sessions[token] = sess
	return sess.email, nil
}

func (store *memorySessionStore) Delete(_ context.Context, token string) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	if _, ok := store.sessions[token]; !ok {
		return errSessionNotFound
	}
	delete(store.sessions, token)
	return nil
}

// redisSessionStore shares sessions across instances; the idle timeout maps
// onto the key TTL.
type redisSessionStore struct {
	client      *redis.Client
	idleTimeout time.Duration
}

var _ SessionStore = (*redisSessionStore)(nil)

func NewRedisSessionStore(addr string, idleTimeout time.Duration) SessionStore {
	return &redisSessionStore{
		client:      redis.NewClient(&redis.Options{Addr: addr}),
		idleTimeout: idleTimeout,
	}
}

func sessionKey(token string) string { return "session:" + token }

func (store *redisSessionStore) Create(ctx context.Context, email string) (string, error) {
	token := uuid.NewString()
	if err := store.client.Set(ctx, sessionKey(token), email, store.idleTimeout).Err(); err != nil {
		return "", errors.Wrap(err, "storing session")
	}
	return token, nil
}

func (store *redisSessionStore) Get(ctx context.Context, token string) (string, error) {
	email, err := store.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", errSessionNotFound
		}
		return "", errors.Wrap(err, "fetching session")
	}
	if err = store.client.Expire(ctx, sessionKey(token), store.idleTimeout).Err(); err != nil {
		return "", errors.Wrap(err, "refreshing session")
	}
	return email, nil
}

func (store *redisSessionStore) Delete(ctx context.Context, token string) error {
	n, err := store.client.Del(ctx, sessionKey(token)).Result()
	if err != nil {
		return errors.Wrap(err, "deleting session")
	}
	if n == 0 {
		return errSessionNotFound
	}
	return nil
}
