// Package registry provides the process-wide detection-strategy
// registry (spec.md §4.1), grounded on the teacher's
// internal/strategy.StrategyRegistry: a name -> factory map guarded by
// a RWMutex, with Register/Create/List, plus per-strategy metadata
// (description, supported zone tags, required rule keys) spec.md §4.1
// asks for beyond what the teacher's strategy registry tracks.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/atlas-quant/zoneengine/pkg/zerrors"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"go.uber.org/zap"
)

// DetectionStrategy is the shared contract every detection strategy
// implements (spec.md §4.2).
type DetectionStrategy interface {
	Name() string
	Description() string
	SupportedZoneTypes() []string
	RequiredRuleKeys() []string
	DetectZones(table *zonetypes.BarTable, cfg *zonetypes.ZoneDetectionConfig) (zonetypes.ZoneList, error)
}

// Registry manages available detection strategies. Registration is
// expected to happen once at startup (spec.md §5, §9); re-registration
// is allowed but logs a warning and fully replaces the previous entry.
type Registry struct {
	logger     *zap.Logger
	strategies map[string]func() DetectionStrategy
	mu         sync.RWMutex
}

// New creates an empty registry.
func New(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		logger:     logger,
		strategies: make(map[string]func() DetectionStrategy),
	}
}

// Register installs a strategy factory under name, replacing any
// previous entry (last writer wins, spec.md §9).
func (r *Registry) Register(name string, factory func() DetectionStrategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.strategies[name]; exists {
		r.logger.Warn("replacing existing detection strategy registration", zap.String("strategy", name))
	}
	r.strategies[name] = factory
}

// Create looks up a strategy instance by name. Unknown names fail with
// an error listing known strategies (spec.md §4.1).
func (r *Registry) Create(name string) (DetectionStrategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.strategies[name]
	if !ok {
		return nil, zerrors.Configuration("unknown detection strategy %q, known strategies: %s", name, joinNames(r.namesLocked()))
	}
	return factory(), nil
}

// List returns all registered strategy names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func joinNames(xs []string) string {
	if len(xs) == 0 {
		return "(none registered)"
	}
	out := xs[0]
	for _, x := range xs[1:] {
		out += ", " + x
	}
	return out
}

// ValidateRules checks that every key in requiredKeys is present in
// rules, returning a ConfigurationError naming the first missing key
// (and the available keys) otherwise (spec.md §4.2 step 1).
func ValidateRules(strategyName string, requiredKeys []string, rules map[string]interface{}) error {
	for _, key := range requiredKeys {
		if _, ok := rules[key]; !ok {
			return zerrors.Configuration("strategy %q requires rule key %q, got keys: %s", strategyName, key, fmt.Sprint(keys(rules)))
		}
	}
	return nil
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ValidateColumns checks that every required column exists in the
// table, returning a DataError listing available columns otherwise
// (spec.md §4.2 step 2).
func ValidateColumns(table *zonetypes.BarTable, required ...string) error {
	for _, col := range required {
		if col == "" {
			continue
		}
		if _, ok := table.Column(col); !ok {
			return zerrors.Data("required column %q not found, available columns: %s", col, fmt.Sprint(table.ColumnNames()))
		}
	}
	return nil
}
