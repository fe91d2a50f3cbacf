// Package session owns the client's authentication state: the backend
// session token and the user's email, kept in memory and mirrored to a
// durable local store so they survive a restart.
package session

import (
	"fmt"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
)

// Well-known storage keys. Token and email are always written and deleted
// together; one without the other is invalid.
const (
	tokenKey = "session:token"
	emailKey = "session:email"
)

// Session is the current authentication state. The zero value is Anonymous.
type Session struct {
	Token string
	Email string
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store holds the current session. Every mutation writes the durable copy in
// a single transaction before the in-memory state is published, so the two
// never diverge. Subscribers are notified after each state change.
type Store struct {
	db *badger.DB

	mu      sync.RWMutex
	current Session
	subs    []func(Session)
}

// Open opens (or creates) the durable store at path and loads any persisted
// session into memory.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store at %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying store.
func (s *Store) Close() error {
	return s.db.Close()
}

// load restores the persisted session. A half-written pair (token without
// email or vice versa) is treated as absent.
func (s *Store) load() error {
	var token, email string
	err := s.db.View(func(txn *badger.Txn) error {
		for _, entry := range []struct {
			key string
			dst *string
		}{
			{tokenKey, &token},
			{emailKey, &email},
		} {
			item, err := txn.Get([]byte(entry.key))
			if err == badger.ErrKeyNotFound {
				continue
			}
			if err != nil {
				return err
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			*entry.dst = string(val)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load persisted session: %w", err)
	}

	if token == "" || email == "" {
		return nil
	}
	s.current = Session{Token: token, Email: email}
	return nil
}

// Set stores a new session, replacing any existing one. The durable copy is
// written first; on write failure the previous state stays untouched.
func (s *Store) Set(token, email string) error {
	if token == "" || email == "" {
		return fmt.Errorf("session requires both token and email")
	}

	s.mu.Lock()
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(tokenKey), []byte(token)); err != nil {
			return err
		}
		return txn.Set([]byte(emailKey), []byte(email))
	})
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist session: %w", err)
	}
	s.current = Session{Token: token, Email: email}
	s.publishLocked()
	return nil
}

// Clear wipes the session from memory and disk. It is idempotent and never
// leaves the client looking authenticated: the in-memory state is dropped
// even when the durable delete fails.
func (s *Store) Clear() error {
	s.mu.Lock()
	wasAuthenticated := s.current.Authenticated()
	s.current = Session{}

	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(tokenKey)); err != nil {
			return err
		}
		return txn.Delete([]byte(emailKey))
	})
	if wasAuthenticated {
		s.publishLocked()
	} else {
		s.mu.Unlock()
	}

	if err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	return nil
}

// Current returns a snapshot of the session state.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the current session token, or "" when anonymous.
func (s *Store) Token() string {
	return s.Current().Token
}

// Email returns the current user identity, or "" when anonymous.
func (s *Store) Email() string {
	return s.Current().Email
}

// Authenticated reports whether a session is present.
func (s *Store) Authenticated() bool {
	return s.Current().Authenticated()
}

// Subscribe registers fn to run after every session change. Subscriptions
// live for the lifetime of the store.
func (s *Store) Subscribe(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// publishLocked notifies subscribers of the current state. It is called with
// the write lock held and releases it before invoking callbacks, so
// subscribers may read the store.
func (s *Store) publishLocked() {
	snapshot := s.current
	subs := make([]func(Session), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
