// Package session holds the signed-in user's token, username and role and
// persists them across runs under a fixed storage key.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/mind-engage/mindengage-classroom/internal/lms"
)

// StorageKey is the item the session record lives under.
const StorageKey = "lms_auth"

// ErrLoginRequired is returned by views that need a session when there is none.
var ErrLoginRequired = errors.New("login required")

type Session struct {
	Token    string
	Username string
	Role     lms.Role
}

func (s Session) IsAuthenticated() bool { return s.Token != "" }

// Storage is the persistence the store reads and writes.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
}

// record is the persisted shape; a signed-out session is stored with null fields.
type record struct {
	Token    *string `json:"token"`
	Username *string `json:"username"`
	Role     *string `json:"role"`
}

type Store struct {
	storage Storage

	mu  sync.RWMutex
	cur Session
}

var _ oauth2.TokenSource = (*Store)(nil)

func NewStore(st Storage) *Store {
	return &Store{storage: st}
}

// Restore loads the persisted session. A missing or unreadable record leaves
// the store signed out; problems are logged, never returned.
func (s *Store) Restore(ctx context.Context) Session {
	raw, ok, err := s.storage.GetItem(ctx, StorageKey)
	if err != nil {
		glog.Warningf("session: read %s: %v", StorageKey, err)
	}
	var sess Session
	if err == nil && ok {
		sess = decode(raw)
	}
	s.mu.Lock()
	s.cur = sess
	s.mu.Unlock()
	return sess
}

// decode reads a stored record. Anything that is not a JSON object, a bare
// token string included, is no session.
func decode(raw string) Session {
	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		glog.Warningf("session: ignoring unparsable %s record", StorageKey)
		return Session{}
	}
	return Session{
		Token:    deref(rec.Token),
		Username: deref(rec.Username),
		Role:     lms.Role(deref(rec.Role)),
	}
}

func (s *Store) Login(ctx context.Context, token, username string, role lms.Role) error {
	return s.persist(ctx, Session{Token: token, Username: username, Role: role})
}

func (s *Store) Logout(ctx context.Context) error {
	return s.persist(ctx, Session{})
}

func (s *Store) persist(ctx context.Context, sess Session) error {
	var rec record
	if sess.IsAuthenticated() {
		role := string(sess.Role)
		rec = record{Token: &sess.Token, Username: &sess.Username, Role: &role}
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cur = sess
	s.mu.Unlock()
	return errors.Wrap(s.storage.SetItem(ctx, StorageKey, string(b)), "persist session")
}

func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *Store) IsAuthenticated() bool { return s.Current().IsAuthenticated() }

// Token implements oauth2.TokenSource. Without a session it returns an empty
// token, which callers send no Authorization header for.
func (s *Store) Token() (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: s.Current().Token, TokenType: "Bearer"}, nil
}

// Require returns the current session or ErrLoginRequired.
func (s *Store) Require() (Session, error) {
	cur := s.Current()
	if !cur.IsAuthenticated() {
		return Session{}, ErrLoginRequired
	}
	return cur, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
