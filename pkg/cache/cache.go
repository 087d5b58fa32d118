// Package cache implementa um cache em memória com TTL e proteção
// single-flight contra recomputações duplicadas sob carga.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache é um cache chave -> (valor, expiração) seguro para uso concorrente.
// Não é autoritativo: apenas uma otimização de desempenho com semântica de
// obsolescência explícita — a invalidação acontece por tempo, nunca por
// sinal externo.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
	}
}

// Get retorna o valor da chave se ainda estiver fresco
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set grava um valor com o TTL informado
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

// GetOrCompute retorna o valor fresco da chave ou o recomputa via fn.
// Requisições concorrentes durante uma recomputação não disparam trabalho
// duplicado (single-flight): quem encontra um valor obsoleto é servido com o
// último valor bom enquanto uma única goroutine recomputa — uma troca
// deliberada de obsolescência por latência; quem não tem valor algum espera
// o resultado em andamento.
func (c *Cache) GetOrCompute(key string, ttl time.Duration, fn func() (any, error)) (any, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	now := time.Now()
	if ok && now.Before(e.expiresAt) {
		return e.value, nil
	}

	if ok {
		// Valor obsoleto disponível: serve o último bom e recomputa em
		// segundo plano, deduplicado por chave
		go func() {
			_, _, _ = c.group.Do(key, func() (any, error) {
				value, err := fn()
				if err != nil {
					return nil, err
				}
				c.Set(key, value, ttl)
				return value, nil
			})
		}()
		return e.value, nil
	}

	// Sem valor anterior: aguarda o resultado em andamento
	value, err, _ := c.group.Do(key, func() (any, error) {
		value, err := fn()
		if err != nil {
			return nil, err
		}
		c.Set(key, value, ttl)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Invalidate remove a chave do cache
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
