package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilConfig is returned when Load receives a nil pointer.
	ErrNilConfig = errors.New("config: nil destination")

	// ErrParse wraps failures reported by the env parser.
	ErrParse = errors.New("config: failed to parse environment")
)

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> T
)

// Load fills cfg from the environment. The first call for a given type parses
// the environment; later calls for the same type return the cached value.
// A .env file in the working directory is loaded once, if present.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	key := reflect.TypeFor[T]()
	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	dotenvOnce.Do(func() {
		// Missing .env is the common case outside local development.
		_ = godotenv.Load()
	})

	var fresh T
	if err := env.Parse(&fresh); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	actual, _ := cache.LoadOrStore(key, fresh)
	*cfg = actual.(T)
	return nil
}

// MustLoad is Load that panics on failure. Intended for program startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops every cached configuration. Intended for tests.
func Reset() {
	cache.Range(func(k, _ any) bool {
		cache.Delete(k)
		return true
	})
}
