package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cordobafintech/cobranca-api/internal/application/ports"
)

const previewKeyPrefix = "cordoba:preview:"

var (
	_ ports.PreviewStore = (*RedisPreviewStore)(nil)
	_ ports.PreviewStore = (*MemoryPreviewStore)(nil)
)

// RedisPreviewStore guarda previews de importação como JSON com TTL no Redis.
type RedisPreviewStore struct {
	client *redis.Client
}

// NewRedisPreviewStore constrói o store sobre um cliente já conectado.
func NewRedisPreviewStore(client *redis.Client) *RedisPreviewStore {
	return &RedisPreviewStore{client: client}
}

func (s *RedisPreviewStore) Save(ctx context.Context, p *ports.StoredPreview, ttl time.Duration) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("preview: serializar: %w", err)
	}
	if err := s.client.Set(ctx, previewKeyPrefix+p.ID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("preview: salvar: %w", err)
	}
	return nil
}

func (s *RedisPreviewStore) Get(ctx context.Context, id string) (*ports.StoredPreview, error) {
	return decodePreview(s.client.Get(ctx, previewKeyPrefix+id).Bytes())
}

// Take usa GETDEL, atômico no servidor.
func (s *RedisPreviewStore) Take(ctx context.Context, id string) (*ports.StoredPreview, error) {
	return decodePreview(s.client.GetDel(ctx, previewKeyPrefix+id).Bytes())
}

func decodePreview(raw []byte, err error) (*ports.StoredPreview, error) {
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("preview: ler: %w", err)
	}
	var p ports.StoredPreview
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("preview: decodificar: %w", err)
	}
	return &p, nil
}

// MemoryPreviewStore alternativa em processo, usada quando REDIS_ADDR está vazio.
// Entradas vencidas são descartadas na leitura.
type MemoryPreviewStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

type memEntry struct {
	preview   ports.StoredPreview
	expiresAt time.Time
}

// NewMemoryPreviewStore cria o store em memória.
func NewMemoryPreviewStore() *MemoryPreviewStore {
	return &MemoryPreviewStore{entries: make(map[string]memEntry), now: time.Now}
}

func (s *MemoryPreviewStore) Save(_ context.Context, p *ports.StoredPreview, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	s.entries[p.ID] = memEntry{preview: *p, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryPreviewStore) Get(_ context.Context, id string) (*ports.StoredPreview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(id, false), nil
}

func (s *MemoryPreviewStore) Take(_ context.Context, id string) (*ports.StoredPreview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(id, true), nil
}

func (s *MemoryPreviewStore) lookupLocked(id string, remove bool) *ports.StoredPreview {
	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	if remove || !s.now().Before(e.expiresAt) {
		delete(s.entries, id)
	}
	if !s.now().Before(e.expiresAt) {
		return nil
	}
	p := e.preview
	return &p
}

func (s *MemoryPreviewStore) evictLocked() {
	now := s.now()
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}
