package mode

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"SignalDeck/internal/domain/models"
	"SignalDeck/internal/domain/repository"
	"SignalDeck/internal/remote"
)

type memStore map[string]string

func (m memStore) Get(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (m memStore) Set(key, value string) error {
	m[key] = value
	return nil
}

func fullCreds() memStore {
	return memStore{
		repository.CredAccessKey: "AKIA",
		repository.CredSecretKey: "secret",
	}
}

func TestDetermineModeNoFactory(t *testing.T) {
	c := NewController(fullCreds(), nil, nil)

	if got := c.DetermineMode(); got != models.ModeDemo {
		t.Fatalf("expected DEMO, got %s", got)
	}
	if c.Store() != nil {
		t.Fatalf("demo mode must not hold a store")
	}
}

func TestDetermineModeNoCredentials(t *testing.T) {
	factory := func(remote.Credentials) (repository.RemoteStore, error) {
		t.Fatalf("factory must not run without credentials")
		return nil, nil
	}
	c := NewController(memStore{}, factory, nil)

	if got := c.DetermineMode(); got != models.ModeDemo {
		t.Fatalf("expected DEMO, got %s", got)
	}
}

func TestDetermineModeFactoryError(t *testing.T) {
	factory := func(remote.Credentials) (repository.RemoteStore, error) {
		return nil, errors.New("boom")
	}
	board := NewStatusBoard()
	c := NewController(fullCreds(), factory, nil, WithStatusSink(board))

	if got := c.DetermineMode(); got != models.ModeDemo {
		t.Fatalf("expected DEMO, got %s", got)
	}
	if board.Snapshot()["data"] != StatusDemo {
		t.Fatalf("expected demo indicators, got %v", board.Snapshot())
	}
}

type stubStore struct{ repository.RemoteStore }

func TestDetermineModeLive(t *testing.T) {
	store := &stubStore{}
	var gotCreds remote.Credentials
	factory := func(creds remote.Credentials) (repository.RemoteStore, error) {
		gotCreds = creds
		return store, nil
	}
	board := NewStatusBoard()
	c := NewController(fullCreds(), factory, nil, WithStatusSink(board))

	if got := c.DetermineMode(); got != models.ModeLive {
		t.Fatalf("expected LIVE, got %s", got)
	}
	if gotCreds.AccessKey != "AKIA" || gotCreds.SecretKey != "secret" {
		t.Fatalf("unexpected credentials %+v", gotCreds)
	}
	if c.Store() != store {
		t.Fatalf("expected the live store handle")
	}

	// All three indicators move together.
	snap := board.Snapshot()
	for _, ch := range []string{"data", "engine", "notifications"} {
		if snap[ch] != StatusConnected {
			t.Fatalf("expected %s connected, got %v", ch, snap)
		}
	}
}

func TestStartsUninitialized(t *testing.T) {
	c := NewController(memStore{}, nil, nil)
	if got := c.Mode(); got != models.ModeUninitialized {
		t.Fatalf("expected UNINITIALIZED before arbitration, got %s", got)
	}
}

// syncStore is a credential store safe to mutate while the retry loop reads.
type syncStore struct {
	mu sync.Mutex
	m  map[string]string
}

func (s *syncStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (s *syncStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func TestRunRetriesOnlyWithCredentials(t *testing.T) {
	creds := &syncStore{m: map[string]string{}}
	var calls atomic.Int32
	factory := func(remote.Credentials) (repository.RemoteStore, error) {
		calls.Add(1)
		return &stubStore{}, nil
	}
	c := NewController(creds, factory, nil, WithRetryInterval(10*time.Millisecond))

	if got := c.DetermineMode(); got != models.ModeDemo {
		t.Fatalf("expected DEMO, got %s", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	// Nothing configured: the loop must stay quiet.
	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Fatalf("retry must not run without credentials, got %d calls", got)
	}

	if err := creds.Set(repository.CredAccessKey, "AKIA"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := creds.Set(repository.CredSecretKey, "secret"); err != nil {
		t.Fatalf("set: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for c.Mode() != models.ModeLive {
		if time.Now().After(deadline) {
			t.Fatalf("expected promotion to LIVE, still %s", c.Mode())
		}
		time.Sleep(5 * time.Millisecond)
	}
	if calls.Load() == 0 {
		t.Fatalf("expected a factory call after credentials appeared")
	}
}
