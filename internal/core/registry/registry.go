// Package registry resolves chain-suffixed commands to the adapter that
// should serve them.
package registry

import (
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/seedscan/seedscan/internal/core/ports"
)

// baseCommands are the chain-agnostic verbs that existed before chains
// other than the default were added. For backward compatibility they
// resolve to the default adapter when no chain suffix is present.
var baseCommands = map[string]struct{}{
	"generate": {},
	"scan":     {},
	"transfer": {},
	"find":     {},
	"tx":       {},
}

// Registry holds chain adapters keyed by their lowercase name. Construct
// it explicitly at process start and inject it where needed.
type Registry struct {
	adapters    map[string]ports.ChainAdapter
	defaultName string
}

// New returns an empty registry whose chain-agnostic base commands
// resolve to defaultName once that adapter is registered.
func New(defaultName string) *Registry {
	return &Registry{
		adapters:    make(map[string]ports.ChainAdapter),
		defaultName: strings.ToLower(defaultName),
	}
}

// Register adds an adapter under the given key, case-insensitively.
// Registering a duplicate key overwrites the previous adapter and logs a
// warning, silent overwrites are not allowed.
func (r *Registry) Register(name string, adapter ports.ChainAdapter) {
	key := strings.ToLower(name)
	if _, ok := r.adapters[key]; ok {
		log.Warnf("chain %s is already registered, overwriting previous adapter", key)
	}
	r.adapters[key] = adapter
}

// Adapter returns the adapter registered under name.
func (r *Registry) Adapter(name string) (ports.ChainAdapter, error) {
	adapter, ok := r.adapters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf(
			"unknown chain %q, available chains: %s",
			name, strings.Join(r.Chains(), ", "),
		)
	}
	return adapter, nil
}

// Chains lists the registered keys in stable order.
func (r *Registry) Chains() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DetectChain resolves a command like "scan-eth" to the adapter that
// should serve it. A trailing token matching a registered key wins;
// otherwise the chain-agnostic base commands fall back to the default
// adapter.
func (r *Registry) DetectChain(command string) (ports.ChainAdapter, error) {
	tokens := strings.Split(strings.ToLower(command), "-")
	if len(tokens) > 1 {
		if adapter, ok := r.adapters[tokens[len(tokens)-1]]; ok {
			return adapter, nil
		}
	}
	if _, ok := baseCommands[tokens[0]]; ok {
		if adapter, ok := r.adapters[r.defaultName]; ok {
			return adapter, nil
		}
	}
	return nil, fmt.Errorf(
		"cannot detect chain for command %q, available chains: %s",
		command, strings.Join(r.Chains(), ", "),
	)
}

// BaseCommand strips a trailing chain-key token from the command, if
// present. Commands without a chain suffix are returned unchanged.
func (r *Registry) BaseCommand(command string) string {
	tokens := strings.Split(command, "-")
	if len(tokens) > 1 {
		if _, ok := r.adapters[strings.ToLower(tokens[len(tokens)-1])]; ok {
			return strings.Join(tokens[:len(tokens)-1], "-")
		}
	}
	return command
}
