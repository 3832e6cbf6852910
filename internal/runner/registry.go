package runner

import (
	"fmt"
	"path/filepath"

	m "revisit.dev/pkg/revisit/internal/model"
)

// Body is the executable content of one suite file. Helper bodies define
// bindings on the controller's scope; test bodies declare contexts and
// checks.
type Body func(c *Controller) error

// Registry maps suite file base names to registered bodies. It is the
// shipped Evaluator: Go cannot evaluate source text at run time, so the
// statements a suite file would contain are registered as a compiled-in
// body keyed by the file's name. The on-disk files keep driving discovery,
// ordering, filtering and change detection.
type Registry struct {
	bodies map[string]Body
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{bodies: make(map[string]Body)}
}

// Register binds a suite file base name (e.g. "test_math.go") to its body.
// Re-registering a name replaces the previous body.
func (r *Registry) Register(name string, body Body) {
	r.bodies[name] = body
}

// Len returns the number of registered bodies.
func (r *Registry) Len() int {
	return len(r.bodies)
}

// Eval looks up the body for path's base name and runs it against the
// controller. A discovered file without a registered body is the
// equivalent of a parse fault: fatal to the run.
func (r *Registry) Eval(path m.Path, c *Controller) error {
	body, ok := r.bodies[filepath.Base(string(path))]
	if !ok {
		return fmt.Errorf("%w for %s", ErrNoSuchSuite, path)
	}

	if err := body(c); err != nil {
		return fmt.Errorf("evaluate %s: %w", path, err)
	}

	return nil
}
