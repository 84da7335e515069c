package parserpool_test

import (
	"sync"
	"testing"

	"github.com/gnames/gnmarine/pkg/parserpool"
	"github.com/stretchr/testify/assert"
)

// TestNewPool verifies pool creation with default and custom sizes.
func TestNewPool(t *testing.T) {
	for _, jobs := range []int{0, 1, 4} {
		pool := parserpool.NewPool(jobs)
		assert.NotNil(t, pool)
		res := pool.Parse("Thunnus albacares")
		assert.True(t, res.Parsed)
		pool.Close()
	}
}

func TestCanonical(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()

	tests := []struct {
		name       string
		nameString string
		canonical  string
		ok         bool
	}{
		{"binomial", "Thunnus albacares", "Thunnus albacares", true},
		{"with author", "Gadus morhua Linnaeus, 1758", "Gadus morhua", true},
		{"subgenus is dropped", "Sardinella (Sardinella) longiceps", "Sardinella longiceps", true},
		{"not a name", "!!!", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := pool.Canonical(tt.nameString)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.canonical, res)
		})
	}
}

// TestParse_Concurrent verifies thread-safety with multiple goroutines.
func TestParse_Concurrent(t *testing.T) {
	pool := parserpool.NewPool(4)
	defer pool.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				res, ok := pool.Canonical("Epinephelus coioides (Hamilton, 1822)")
				assert.True(t, ok)
				assert.Equal(t, "Epinephelus coioides", res)
			}
		}()
	}
	wg.Wait()
}

// TestParse_PoolBlocking verifies that a pool of one parser serves
// sequential callers.
func TestParse_PoolBlocking(t *testing.T) {
	pool := parserpool.NewPool(1)
	defer pool.Close()

	done := make(chan struct{})
	go func() {
		assert.True(t, pool.Parse("Gadus morhua").Parsed)
		close(done)
	}()
	assert.True(t, pool.Parse("Thunnus albacares").Parsed)
	<-done
}
