package complexity

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var (
	// ErrComplexityLimit is matched by Check errors when TotalComplexity is over the limit.
	ErrComplexityLimit = errors.New("query complexity exceeds the limit")
	// ErrDepthLimit is matched by Check errors when MaxDepth is over the limit.
	ErrDepthLimit      = errors.New("query depth exceeds the limit")
)

// Limits are the thresholds a caller enforces on a Result. Zero disables a limit.
type Limits struct {
	MaxComplexity float64
	MaxDepth      int // Compared against Result.MaxDepth
}

// Check reports every limit r exceeds. The returned error matches
// ErrComplexityLimit and ErrDepthLimit with errors.Is.
func (r *Result) Check(l Limits) error {
	var result *multierror.Error
	if l.MaxComplexity > 0 && r.TotalComplexity > l.MaxComplexity {
		result = multierror.Append(result, errors.Wrapf(ErrComplexityLimit,
			"the query complexity %g exceeds the max complexity allowed (%g)", r.TotalComplexity, l.MaxComplexity))
	}
	if l.MaxDepth > 0 && r.MaxDepth > l.MaxDepth {
		result = multierror.Append(result, errors.Wrapf(ErrDepthLimit,
			"the query depth %d exceeds the max query depth allowed (%d)", r.MaxDepth, l.MaxDepth))
	}
	return result.ErrorOrNil()
}
