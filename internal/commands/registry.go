package commands

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// errEmptyName is returned by Register for a command without a name.
var errEmptyName = errors.New("command has no name")

// Registry resolves command names and aliases to commands.
// Every command is stored once, with each of its names pointing at it.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]Command
	commands []Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register adds c under its name and aliases.
// Nothing is registered if any of those names is empty or already taken.
func (r *Registry) Register(c Command) error {
	names := append([]string{c.Name()}, c.Aliases()...)

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			return errEmptyName
		}
		if _, taken := r.byName[name]; taken || seen[name] {
			return fmt.Errorf("command name already registered: %s", name)
		}
		seen[name] = true
	}

	for _, name := range names {
		r.byName[name] = c
	}
	r.commands = append(r.commands, c)
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.byName[name]
	return cmd, ok
}

// All returns each registered command once, sorted by primary name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	result := make([]Command, len(r.commands))
	copy(result, r.commands)
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// DefaultRegistry holds the commands registered by this package's init functions.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a name clash.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
