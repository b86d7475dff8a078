// Package options implements generic functional options shared by the grid decoder
// and the format store.
package options

// Option configures a target of type T, typically a pointer to a settings struct.
type Option[T any] interface {
	apply(T) error
}

// optionFunc adapts a plain function to the Option interface.
type optionFunc[T any] func(T) error

func (f optionFunc[T]) apply(target T) error {
	return f(target)
}

// New creates an option from a function that may reject its input.
func New[T any](fn func(T) error) Option[T] {
	return optionFunc[T](fn)
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return optionFunc[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply applies opts to target in order and stops at the first error.
// Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// Build creates a target from defaults and applies opts to it.
//
// Parameters:
//   - defaults: Constructor returning the target preloaded with default settings
//   - opts: Options applied in order
//
// Returns:
//   - T: The configured target, or the zero value on error
//   - error: The first option error
func Build[T any](defaults func() T, opts ...Option[T]) (T, error) {
	target := defaults()
	if err := Apply(target, opts...); err != nil {
		var zero T
		return zero, err
	}

	return target, nil
}
