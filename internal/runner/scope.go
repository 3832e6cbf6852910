package runner

// Scope is a chain of name bindings. A child scope sees everything its
// ancestors define; bindings made in the child never leak back out. Every
// check body runs in a fresh child of its file's scope.
type Scope struct {
	parent *Scope
	vars   map[string]interface{}
}

// NewScope constructs an empty root scope.
func NewScope() *Scope {
	return &Scope{vars: make(map[string]interface{})}
}

// Child creates a fresh scope that inherits visibility of s's bindings.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s, vars: make(map[string]interface{})}
}

// Define binds name to value in this scope, shadowing any ancestor binding.
func (s *Scope) Define(name string, value interface{}) {
	s.vars[name] = value
}

// Lookup resolves name in this scope or the nearest ancestor that binds it.
func (s *Scope) Lookup(name string) (interface{}, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if value, ok := cur.vars[name]; ok {
			return value, true
		}
	}

	return nil, false
}
