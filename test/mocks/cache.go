package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// MockCache is an in-memory implementation of the cache.Cache interface,
// used for testing without a real Redis instance. Expirations are ignored.
type MockCache struct {
	data map[string]string
	mu   sync.Mutex

	// FailAll makes every operation return this error when set.
	FailAll error
}

// NewMockCache creates a new mock cache instance.
func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string]string)}
}

// Get retrieves a value; missing keys return an empty string.
func (m *MockCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return "", m.FailAll
	}
	return m.data[key], nil
}

// Set stores a value.
func (m *MockCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return m.FailAll
	}
	m.data[key] = toString(value)
	return nil
}

// SetNX stores a value only if the key does not exist.
func (m *MockCache) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return false, m.FailAll
	}
	if _, exists := m.data[key]; exists {
		return false, nil
	}
	m.data[key] = toString(value)
	return true, nil
}

// Incr increments a counter key.
func (m *MockCache) Incr(_ context.Context, key string) (int64, error) {
	return m.add(key, 1)
}

// Decr decrements a counter key.
func (m *MockCache) Decr(_ context.Context, key string) (int64, error) {
	return m.add(key, -1)
}

func (m *MockCache) add(key string, delta int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return 0, m.FailAll
	}
	n, _ := strconv.ParseInt(m.data[key], 10, 64)
	n += delta
	m.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

// Del deletes keys.
func (m *MockCache) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return m.FailAll
	}
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

// Exists counts how many of the given keys exist.
func (m *MockCache) Exists(_ context.Context, keys ...string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return 0, m.FailAll
	}
	var count int64
	for _, key := range keys {
		if _, exists := m.data[key]; exists {
			count++
		}
	}
	return count, nil
}

// Close is a no-op.
func (m *MockCache) Close() error {
	return nil
}

func toString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}
