// Package cache provides content-addressed memoization of
// ZoneAnalysisResult (spec.md §4.7). Key construction is grounded
// directly on original_source/bquant/analysis/zones/cache.py's
// ZoneAnalysisCache: a version-prefixed hash over the OHLC data, the
// config signature, and the swing signature. Storage is grounded on
// the teacher pack's nofendian17-stockbit-haka-haki/cache package: a
// Redis-backed store with JSON marshaling, alongside a process-local
// in-memory default.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/atlas-quant/zoneengine/pkg/zerrors"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

// CurrentVersion is the cache schema version; bump on any
// ZoneAnalysisResult schema change (spec.md §4.7).
const CurrentVersion = 2

// ComputeDataHash hashes the OHLC portion of the table (volume
// excluded, per spec.md §4.7).
func ComputeDataHash(table *zonetypes.BarTable) string {
	h := sha256.New()
	for i := 0; i < table.Len(); i++ {
		fmt.Fprintf(h, "%s|%s|%s|%s;", table.Open[i].String(), table.High[i].String(), table.Low[i].String(), table.Close[i].String())
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ConfigSignature produces a canonical JSON signature of a
// ZoneAnalysisConfig (ordered keys, default serializers for
// dates/enums). Returns an error if cfg contains anything
// non-serializable (spec.md §4.7, "Non-serializable configs").
func ConfigSignature(cfg *zonetypes.ZoneAnalysisConfig) (string, error) {
	payload, err := canonicalizeConfig(cfg)
	if err != nil {
		return "", zerrors.Configuration("zone analysis config cannot be canonically serialized for caching; disable caching or remove non-serializable rule values").Wrap(err)
	}
	return payload, nil
}

// SwingSignature produces a canonical JSON signature of the swing
// sub-strategy configuration (strategy name, numeric params, scope,
// auto-threshold flags).
func SwingSignature(sub *zonetypes.SwingStrategyParams, scope zonetypes.SwingScope) (string, error) {
	payload := map[string]interface{}{
		"scope": scope,
	}
	if sub != nil {
		payload["strategy_name"] = sub.StrategyName
		payload["base_deviation"] = sub.BaseDeviation
		payload["auto_thresholds"] = sub.AutoThresholds
	}
	buf, err := canonicalJSON(payload)
	if err != nil {
		return "", zerrors.Configuration("swing configuration cannot be canonically serialized for caching").Wrap(err)
	}
	return buf, nil
}

// Key computes the stable, version-aware cache key for a run (spec.md
// §4.7 "Cache key"): zone_analysis_<hex> over
// (cache_version, data_hash, config_signature, swing_signature).
func Key(table *zonetypes.BarTable, cfg *zonetypes.ZoneAnalysisConfig) (string, error) {
	dataHash := ComputeDataHash(table)
	configSig, err := ConfigSignature(cfg)
	if err != nil {
		return "", err
	}
	var swingSig string
	if cfg != nil {
		swingSig, err = SwingSignature(cfg.SubStrategies.Swing, cfg.SwingScope)
		if err != nil {
			return "", err
		}
	}

	h := sha256.New()
	fmt.Fprintf(h, "version=%d|data=%s|config=%s|swing=%s",
		CurrentVersion, dataHash, sha256Hex(configSig), sha256Hex(swingSig))
	return "zone_analysis_" + hex.EncodeToString(h.Sum(nil)), nil
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func canonicalizeConfig(cfg *zonetypes.ZoneAnalysisConfig) (string, error) {
	if cfg == nil {
		return canonicalJSON(nil)
	}
	payload := map[string]interface{}{
		"indicator":          cfg.Indicator,
		"zone_detection":     cfg.ZoneDetection,
		"perform_clustering": cfg.PerformClustering,
		"n_clusters":         cfg.NClusters,
		"run_regression":     cfg.RunRegression,
		"run_validation":     cfg.RunValidation,
		"swing_scope":        cfg.SwingScope,
	}
	return canonicalJSON(payload)
}

// canonicalJSON serializes v with sorted map keys so the resulting
// signature is deterministic across runs. It fails on values
// json.Marshal cannot handle (e.g. function-valued rules from the
// combined detection strategy), which is the detection mechanism
// spec.md §4.7 calls for.
func canonicalJSON(v interface{}) (string, error) {
	sorted, err := sortedValue(v)
	if err != nil {
		return "", err
	}
	buf, err := json.Marshal(sorted)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// sortedValue walks v, rejecting function values and converting maps
// into a sorted-key representation so repeated marshals are stable
// (Go's encoding/json already sorts map[string]X keys, but rule maps
// may be map[string]interface{} with nested maps this makes explicit).
func sortedValue(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]interface{}, len(val))
		for _, k := range keys {
			converted, err := sortedValue(val[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			out[k] = converted
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			converted, err := sortedValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	default:
		if reflect.ValueOf(v).Kind() == reflect.Func {
			return nil, fmt.Errorf("value of type %T is not serializable (contains a callable predicate)", v)
		}
		return v, nil
	}
}
