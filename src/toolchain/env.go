package toolchain

import "sort"

// Environment is the job's environment model. Handlers write here instead of
// mutating the process environment; the accumulated state is rendered with
// Environ when a command is launched.
//
// Insertion order is preserved so repeated renders are stable.
type Environment struct {
	keys   []string
	values map[string]string
}

func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]string)}
}

// Get returns the current value of a variable.
func (e *Environment) Get(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Set assigns a variable, overwriting any previous value.
func (e *Environment) Set(key, value string) {
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

// Append adds value to the end of a variable, joined with sep when the
// variable already has a non-empty value.
func (e *Environment) Append(key, value, sep string) {
	if cur, ok := e.values[key]; ok && cur != "" {
		e.Set(key, cur+sep+value)
		return
	}
	e.Set(key, value)
}

// Prepend adds value to the front of a variable, joined with sep when the
// variable already has a non-empty value.
func (e *Environment) Prepend(key, value, sep string) {
	if cur, ok := e.values[key]; ok && cur != "" {
		e.Set(key, value+sep+cur)
		return
	}
	e.Set(key, value)
}

// Merge applies an environment snapshot (e.g. captured from a vendor setup
// script), overwriting collisions. Keys are merged in sorted order so the
// resulting insertion order is deterministic.
func (e *Environment) Merge(snapshot map[string]string) {
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e.Set(k, snapshot[k])
	}
}

// Environ renders the model as KEY=VALUE pairs in insertion order.
func (e *Environment) Environ() []string {
	out := make([]string, 0, len(e.keys))
	for _, k := range e.keys {
		out = append(out, k+"="+e.values[k])
	}
	return out
}

// Len returns the number of variables set.
func (e *Environment) Len() int { return len(e.keys) }
