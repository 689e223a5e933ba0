package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/record"
)

type storedObject struct {
	info    record.ObjectInfo
	content []byte
}

// MemoryStore is a thread-safe in-memory ObjectStore for tests and dev.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]*storedObject
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]*storedObject),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, key, contentType string, _ int64, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("reading content: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = &storedObject{
		info: record.ObjectInfo{
			Key:         key,
			Size:        int64(len(data)),
			ContentType: contentType,
			UpdatedAt:   s.now().UTC(),
		},
		content: data,
	}
	return nil
}

func (s *MemoryStore) List(_ context.Context, prefix string) ([]record.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]record.ObjectInfo, 0)
	for key, obj := range s.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, obj.info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (io.ReadCloser, *record.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, nil, record.ErrObjectNotFound
	}
	info := obj.info
	return io.NopCloser(bytes.NewReader(obj.content)), &info, nil
}

func (s *MemoryStore) URL(_ context.Context, key string) (string, error) {
	return "memory://" + key, nil
}
