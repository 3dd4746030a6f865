package infrastructure

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// CacheEntry représente une entrée de cache avec expiration
type CacheEntry[V any] struct {
	Value      V
	Expiration time.Time
}

// IsExpired vérifie si l'entrée est expirée (ttl <= 0 = jamais)
func (e CacheEntry[V]) IsExpired(now time.Time) bool {
	return !e.Expiration.IsZero() && now.After(e.Expiration)
}

// Cache interface pour l'abstraction du cache
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V, ttl time.Duration)
	Delete(key string)
	Clear()
	Len() int
}

// InMemoryCache implémentation en mémoire du cache avec TTL
type InMemoryCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry[V]
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

// NewInMemoryCache crée un nouveau cache en mémoire
// cleanupInterval <= 0 désactive le nettoyage périodique.
func NewInMemoryCache[V any](cleanupInterval time.Duration) *InMemoryCache[V] {
	cache := &InMemoryCache[V]{
		entries: make(map[string]CacheEntry[V]),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go cache.cleanupExpired(cleanupInterval)
	}
	return cache
}

// Get récupère une valeur du cache
func (c *InMemoryCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	entry, exists := c.entries[key]
	if !exists || entry.IsExpired(c.now()) {
		return zero, false
	}
	return entry.Value, true
}

// Set ajoute ou met à jour une valeur dans le cache
func (c *InMemoryCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiration time.Time
	if ttl > 0 {
		expiration = c.now().Add(ttl)
	}
	c.entries[key] = CacheEntry[V]{
		Value:      value,
		Expiration: expiration,
	}
}

// Delete supprime une entrée du cache
func (c *InMemoryCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear vide complètement le cache
func (c *InMemoryCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]CacheEntry[V])
}

// Len retourne le nombre d'entrées (expirées incluses tant que non nettoyées)
func (c *InMemoryCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Close arrête le nettoyage périodique
func (c *InMemoryCache[V]) Close() {
	c.once.Do(func() { close(c.done) })
}

// cleanupExpired supprime périodiquement les entrées expirées
func (c *InMemoryCache[V]) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *InMemoryCache[V]) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if entry.IsExpired(now) {
			delete(c.entries, key)
		}
	}
}

// CacheKeyBuilder aide à construire des clés de cache cohérentes
type CacheKeyBuilder struct {
	parts []string
}

// NewCacheKeyBuilder crée un nouveau builder de clé
func NewCacheKeyBuilder() *CacheKeyBuilder {
	return &CacheKeyBuilder{
		parts: make([]string, 0, 4),
	}
}

// Add ajoute une partie à la clé
func (b *CacheKeyBuilder) Add(part string) *CacheKeyBuilder {
	b.parts = append(b.parts, part)
	return b
}

// AddInt ajoute un entier à la clé
func (b *CacheKeyBuilder) AddInt(value int) *CacheKeyBuilder {
	b.parts = append(b.parts, strconv.Itoa(value))
	return b
}

// Build construit la clé finale ("facts:<generation>")
func (b *CacheKeyBuilder) Build() string {
	return strings.Join(b.parts, ":")
}
