// Package session holds the live state shared by the RPC and web services:
// a registry of active terminal sessions, their shells and replay buffers,
// and the tokens that authorize writing to them. The registry is built once
// by the process root and handed to both services; it never depends on
// either of them.
package session

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/termcastio/termcast-server/internal/metrics"
	"github.com/termcastio/termcast-server/pkg/config"
)

// Common errors returned by the session registry and sessions.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionClosed   = errors.New("session closed")
	ErrShellNotFound   = errors.New("shell not found")
	ErrShellExists     = errors.New("shell already exists")
	ErrTooManyShells   = errors.New("too many shells")
	ErrInvalidToken    = errors.New("invalid session token")
	ErrInvalidName     = errors.New("invalid session name")
	ErrInputBacklog    = errors.New("input backlog full")
)

// nameAlphabet generates URL-friendly session names.
const (
	nameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	nameLength   = 10
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,31}$`)

// Record summarizes a closed session for the history store.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Origin    string    `json:"origin" bson:"origin"`
	StartedAt time.Time `json:"started_at" bson:"started_at"`
	EndedAt   time.Time `json:"ended_at" bson:"ended_at"`
	Shells    int       `json:"shells" bson:"shells"`
	Bytes     uint64    `json:"bytes" bson:"bytes"`
}

// RecordSink receives closure records. Implemented by the history storage
// backends; failures are logged by the registry, never surfaced to callers.
type RecordSink interface {
	SaveRecord(ctx context.Context, rec Record) error
}

// Summary describes a live session for listings.
type Summary struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Shells    int       `json:"shells"`
	Viewers   int       `json:"viewers"`
}

// Registry owns all live sessions. It is safe for concurrent use and is the
// single shared handle passed to both the RPC and web services.
type Registry struct {
	cfg    config.SessionConfig
	signer *Signer
	sink   RecordSink
	logger *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates the session registry. sink may be nil, in which case
// closure records are discarded.
func NewRegistry(cfg config.SessionConfig, sink RecordSink, logger *zap.Logger) (*Registry, error) {
	signer, err := NewSigner(cfg.TokenSecret)
	if err != nil {
		return nil, err
	}
	return &Registry{
		cfg:      cfg,
		signer:   signer,
		sink:     sink,
		logger:   logger.Named("session"),
		sessions: make(map[string]*Session),
	}, nil
}

// Open creates a session and returns it with a signed writer token. An
// empty name gets a generated one; a provided name must be 1-32 lowercase
// alphanumerics or dashes and not already in use.
func (r *Registry) Open(origin, name string) (*Session, string, error) {
	if name == "" {
		generated, err := randomName()
		if err != nil {
			return nil, "", err
		}
		name = generated
	} else if !namePattern.MatchString(name) {
		return nil, "", ErrInvalidName
	}

	token, err := r.signer.Sign(name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	r.mu.Lock()
	if _, ok := r.sessions[name]; ok {
		r.mu.Unlock()
		return nil, "", ErrSessionExists
	}
	sess := newSession(name, origin, r.cfg, r.logger)
	r.sessions[name] = sess
	n := len(r.sessions)
	r.mu.Unlock()

	metrics.SetActiveSessions(n)
	r.logger.Info("Session opened",
		zap.String("session", name),
		zap.String("origin", origin),
	)
	return sess, token, nil
}

// Get returns a live session by name.
func (r *Registry) Get(name string) (*Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[name]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// VerifyToken checks a writer token against a session name.
func (r *Registry) VerifyToken(name, token string) error {
	return r.signer.Verify(name, token)
}

// Close verifies the writer token, tears the session down and reports a
// closure record to the history sink.
func (r *Registry) Close(ctx context.Context, name, token string) error {
	if err := r.signer.Verify(name, token); err != nil {
		return err
	}

	r.mu.Lock()
	sess, ok := r.sessions[name]
	if ok {
		delete(r.sessions, name)
	}
	n := len(r.sessions)
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	metrics.SetActiveSessions(n)
	r.teardown(ctx, sess)
	return nil
}

// CloseAll tears down every live session. Used on shutdown.
func (r *Registry) CloseAll(ctx context.Context) {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for name, sess := range r.sessions {
		sessions = append(sessions, sess)
		delete(r.sessions, name)
	}
	r.mu.Unlock()

	metrics.SetActiveSessions(0)
	for _, sess := range sessions {
		r.teardown(ctx, sess)
	}
}

func (r *Registry) teardown(ctx context.Context, sess *Session) {
	shells, bytes := sess.stats()
	sess.close()

	r.logger.Info("Session closed",
		zap.String("session", sess.Name()),
		zap.Int("shells", shells),
		zap.Uint64("bytes", bytes),
	)

	if r.sink == nil {
		return
	}
	rec := Record{
		ID:        uuid.New().String(),
		Name:      sess.Name(),
		Origin:    sess.Origin(),
		StartedAt: sess.CreatedAt(),
		EndedAt:   time.Now(),
		Shells:    shells,
		Bytes:     bytes,
	}
	if err := r.sink.SaveRecord(ctx, rec); err != nil {
		r.logger.Warn("Failed to save session record",
			zap.String("session", rec.Name),
			zap.Error(err),
		)
	}
}

// List returns summaries of all live sessions, newest first.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	summaries := make([]Summary, 0, len(r.sessions))
	for _, sess := range r.sessions {
		summaries = append(summaries, Summary{
			Name:      sess.Name(),
			CreatedAt: sess.CreatedAt(),
			Shells:    len(sess.Shells()),
			Viewers:   sess.Viewers(),
		})
	}
	r.mu.RUnlock()

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func randomName() (string, error) {
	buf := make([]byte, nameLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session name: %w", err)
	}
	for i, b := range buf {
		buf[i] = nameAlphabet[int(b)%len(nameAlphabet)]
	}
	return string(buf), nil
}
