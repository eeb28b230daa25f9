package rainflow

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rainflow/fatigue/woehler"
	"github.com/cwbudde/algo-rainflow/internal/buffer"
)

const defaultHistoryCapacity = 1024

// Allocator grows and releases the point buffers of a [Counter]: residue,
// HCM stack, turning-point history and temporary finalizer snapshots.
type Allocator interface {
	// Grow returns a slice holding the elements of old with capacity for at
	// least n points. A nil old slice requests fresh storage.
	Grow(old []Point, n int) ([]Point, error)
	// Release hands storage back once it is no longer used.
	Release(buf []Point)
}

// DamageModel returns the damage of one full cycle between two classes.
type DamageModel interface {
	Damage(classWidth float64, fromClass, toClass int) float64
}

type config struct {
	method          Method
	finder          CycleFinder
	detector        TurningPointDetector
	damage          DamageModel
	history         bool
	historyCapacity int
	margin          bool
	flags           Flags
	limit           uint64
	alloc           Allocator
}

func defaultConfig() config {
	return config{
		method: MethodFourPoint,
		damage: woehler.Default(),
		flags:  CountAll,
		limit:  math.MaxUint64,
		alloc:  buffer.HeapAllocator[Point]{},
	}
}

// Option configures a [Counter].
type Option func(*config) error

// WithMethod selects the cycle-counting algorithm (default [MethodFourPoint]).
// Use [WithCycleFinder] for a custom algorithm.
func WithMethod(m Method) Option {
	return func(cfg *config) error {
		switch m {
		case MethodFourPoint, MethodHCM, MethodNone:
			cfg.method = m
			cfg.finder = nil

			return nil
		case MethodCustom:
			return fmt.Errorf("%w: custom method requires WithCycleFinder", ErrInvalidArgument)
		}

		return fmt.Errorf("%w: invalid counting method: %d", ErrInvalidArgument, int(m))
	}
}

// WithCycleFinder replaces the built-in counting algorithm.
func WithCycleFinder(f CycleFinder) Option {
	return func(cfg *config) error {
		if f == nil {
			return fmt.Errorf("%w: cycle finder must not be nil", ErrInvalidArgument)
		}

		cfg.method = MethodCustom
		cfg.finder = f

		return nil
	}
}

// WithTurningPointDetector replaces the hysteresis filter.
func WithTurningPointDetector(d TurningPointDetector) Option {
	return func(cfg *config) error {
		if d == nil {
			return fmt.Errorf("%w: turning point detector must not be nil", ErrInvalidArgument)
		}

		cfg.detector = d

		return nil
	}
}

// WithDamageModel sets the damage model (default [woehler.Default]).
func WithDamageModel(m DamageModel) Option {
	return func(cfg *config) error {
		if m == nil {
			return fmt.Errorf("%w: damage model must not be nil", ErrInvalidArgument)
		}

		if v, ok := m.(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}
		}

		cfg.damage = m

		return nil
	}
}

// WithHistory records every turning point. capacity is the initial
// capacity; 0 selects a default.
func WithHistory(capacity int) Option {
	return func(cfg *config) error {
		if capacity < 0 {
			return fmt.Errorf("%w: history capacity must be >= 0: %d", ErrInvalidArgument, capacity)
		}

		if capacity == 0 {
			capacity = defaultHistoryCapacity
		}

		cfg.history = true
		cfg.historyCapacity = capacity

		return nil
	}
}

// WithMarginEnforcement makes the first and last sample of the stream
// part of the turning-point history. Requires [WithHistory].
func WithMarginEnforcement() Option {
	return func(cfg *config) error {
		cfg.margin = true

		return nil
	}
}

// WithCounts selects the aggregates updated by closed cycles
// (default [CountAll]).
func WithCounts(f Flags) Option {
	return func(cfg *config) error {
		if f&^CountAll != 0 {
			return fmt.Errorf("%w: unknown count flags: %#x", ErrInvalidArgument, uint(f&^CountAll))
		}

		cfg.flags = f

		return nil
	}
}

// WithCountLimit sets the saturation limit of every counter
// (default math.MaxUint64). Counters are in half-cycle units.
func WithCountLimit(limit uint64) Option {
	return func(cfg *config) error {
		if limit < FullCycleIncrement {
			return fmt.Errorf("%w: count limit must be >= %d: %d", ErrInvalidArgument, FullCycleIncrement, limit)
		}

		cfg.limit = limit

		return nil
	}
}

// WithAllocator routes all buffer growth through a.
func WithAllocator(a Allocator) Option {
	return func(cfg *config) error {
		if a == nil {
			return fmt.Errorf("%w: allocator must not be nil", ErrInvalidArgument)
		}

		cfg.alloc = a

		return nil
	}
}
