package lox

import "sort"

// Environment holds variable bindings in one flat scope.
type Environment struct {
	values map[string]Value
}

func NewEnvironment() *Environment {
	return &Environment{
		values: make(map[string]Value),
	}
}

// Define binds name to v, replacing any previous binding.
func (e *Environment) Define(name string, v Value) {
	e.values[name] = v
}

func (e *Environment) Get(name Token) (Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}

	return nil, undefined(name)
}

// Assign rebinds an existing variable. Assignment never declares.
func (e *Environment) Assign(name Token, v Value) error {
	if _, ok := e.values[name.Lexeme]; !ok {
		return undefined(name)
	}

	e.values[name.Lexeme] = v
	return nil
}

// Lookup returns the value bound to name without raising an error.
func (e *Environment) Lookup(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

func (e *Environment) Len() int {
	return len(e.values)
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func undefined(name Token) *RuntimeError {
	return newRuntimeError(name, ErrUndefinedVariable, "Undefined variable '%s'.", name.Lexeme)
}
