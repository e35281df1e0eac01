package detection

import (
	"github.com/atlas-quant/zoneengine/internal/registry"
	"go.uber.org/zap"
)

// RegisterDefaults installs the five built-in detection strategies into
// reg. Called once at startup, per the registry's process-wide
// registration contract.
func RegisterDefaults(reg *registry.Registry, logger *zap.Logger) {
	reg.Register("zero_crossing", func() registry.DetectionStrategy { return NewZeroCrossing() })
	reg.Register("threshold", func() registry.DetectionStrategy { return NewThreshold() })
	reg.Register("line_crossing", func() registry.DetectionStrategy { return NewLineCrossing() })
	reg.Register("preloaded", func() registry.DetectionStrategy { return NewPreloadedWithLogger(logger) })
	reg.Register("combined", func() registry.DetectionStrategy { return NewCombined() })
}
