package cache

import "time"

// BytesCache is a minimal cache API storing raw bytes with TTL, used to
// shield the remote store from bursts of dashboard polling.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
