package redis

import "github.com/redis/rueidis"

// NewStoreForTest wraps an existing rueidis client (mock or real) without dialing.
func NewStoreForTest(c rueidis.Client) *Store {
	return &Store{client: c}
}
