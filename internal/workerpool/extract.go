package workerpool

import (
	"sync"

	"github.com/atlas-quant/zoneengine/internal/features"
	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
)

// ExtractZonesParallel runs extractor.Extract over every zone
// concurrently on pool. Each result is written at its zone's index in
// the input list, so the returned slices keep the input zones' original
// order without a separate sorting step (spec.md §5: "any parallel feature
// extraction must re-sort before assembling the result"). A failed
// extraction for one zone is recorded in-place as a nil *ZoneFeatures
// at that zone's position rather than aborting the batch, matching the
// best-effort per-zone contract internal/analyzer.Analyzer already
// applies to sequential extraction.
func ExtractZonesParallel(
	pool *Pool,
	zones zonetypes.ZoneList,
	swingCtx *zonetypes.SwingContext,
	extractor *features.Extractor,
	minDuration int,
) ([]*zonetypes.ZoneFeatures, []error) {
	results := make([]*zonetypes.ZoneFeatures, len(zones))
	errs := make([]error, len(zones))

	var wg sync.WaitGroup
	for i, zone := range zones {
		i, zone := i, zone
		wg.Add(1)
		submitErr := pool.SubmitFunc(func() error {
			defer wg.Done()
			feat, err := extractor.Extract(zone, swingCtx, minDuration)
			results[i] = feat
			errs[i] = err
			return err
		})
		if submitErr != nil {
			// Queue full or pool stopped: run inline so the caller
			// still gets a result at this index.
			wg.Done()
			feat, err := extractor.Extract(zone, swingCtx, minDuration)
			results[i] = feat
			errs[i] = err
		}
	}
	wg.Wait()
	return results, errs
}
