package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_GetSet(t *testing.T) {
	c := New()

	_, ok := c.Get("ausente")
	assert.False(t, ok)

	c.Set("chave", "valor", time.Minute)

	value, ok := c.Get("chave")
	assert.True(t, ok)
	assert.Equal(t, "valor", value)
}

func TestCache_Expiration(t *testing.T) {
	c := New()

	c.Set("chave", "valor", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("chave")
	assert.False(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	c := New()

	c.Set("chave", "valor", time.Minute)
	c.Invalidate("chave")

	_, ok := c.Get("chave")
	assert.False(t, ok)
}

func TestCache_GetOrCompute(t *testing.T) {
	t.Run("Computa uma única vez enquanto o valor está fresco", func(t *testing.T) {
		c := New()
		var calls int32

		compute := func() (any, error) {
			atomic.AddInt32(&calls, 1)
			return "resultado", nil
		}

		first, err := c.GetOrCompute("chave", time.Minute, compute)
		assert.NoError(t, err)
		assert.Equal(t, "resultado", first)

		second, err := c.GetOrCompute("chave", time.Minute, compute)
		assert.NoError(t, err)
		assert.Equal(t, "resultado", second)

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("Erro de computação não é memorizado", func(t *testing.T) {
		c := New()

		_, err := c.GetOrCompute("chave", time.Minute, func() (any, error) {
			return nil, errors.New("falha transitória")
		})
		assert.Error(t, err)

		value, err := c.GetOrCompute("chave", time.Minute, func() (any, error) {
			return "recuperado", nil
		})
		assert.NoError(t, err)
		assert.Equal(t, "recuperado", value)
	})

	t.Run("Chamadas concorrentes disparam uma única computação", func(t *testing.T) {
		c := New()
		var calls int32

		compute := func() (any, error) {
			atomic.AddInt32(&calls, 1)
			time.Sleep(20 * time.Millisecond)
			return "resultado", nil
		}

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				value, err := c.GetOrCompute("chave", time.Minute, compute)
				assert.NoError(t, err)
				assert.Equal(t, "resultado", value)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("Valor obsoleto é servido enquanto a recomputação acontece", func(t *testing.T) {
		c := New()

		c.Set("chave", "antigo", 1*time.Millisecond)
		time.Sleep(5 * time.Millisecond)

		recomputed := make(chan struct{})
		value, err := c.GetOrCompute("chave", time.Minute, func() (any, error) {
			defer close(recomputed)
			return "novo", nil
		})

		// A chamada que encontra o valor obsoleto é servida com ele na hora
		assert.NoError(t, err)
		assert.Equal(t, "antigo", value)

		// A recomputação acontece em segundo plano e substitui o valor
		select {
		case <-recomputed:
		case <-time.After(time.Second):
			t.Fatal("recomputação em segundo plano não aconteceu")
		}

		assert.Eventually(t, func() bool {
			current, ok := c.Get("chave")
			return ok && current == "novo"
		}, time.Second, 5*time.Millisecond)
	})
}
