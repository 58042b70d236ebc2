package scoring

import (
	"fmt"
	"math"

	"k8s.io/klog/v2"
)

// Weights maps feature names (aliases accepted) to non-negative weights. A
// zero or negative weight disables the feature entirely: it is excluded from
// scoring and from explanation output.
type Weights map[string]float64

// balancedTolerance bounds how far a weight sum may drift from 1.0 and still
// count as balanced. Rebalancing an already-balanced vector must return
// bit-identical weights, so a sum inside the tolerance is left untouched.
const balancedTolerance = 1e-9

// Validate reports non-finite weights and names that resolve to no scorable
// feature. The engine itself never requires a valid vector (unknown names are
// dropped with a warning at rebalance time); validation exists for callers
// that want to reject malformed configuration up front.
func (w Weights) Validate() error {
	for name, weight := range w {
		if math.IsNaN(weight) || math.IsInf(weight, 0) {
			return fmt.Errorf("weight for %q is not a finite number", name)
		}
		if _, ok := ResolveFeature(name); !ok {
			return fmt.Errorf("%q is not a scorable feature", name)
		}
	}
	return nil
}

// Active returns the enabled portion of the vector, keyed by canonical
// feature name. Zero and negative weights are dropped silently; names that
// resolve to no feature are dropped with a warning.
func (w Weights) Active() Weights {
	active := Weights{}
	for name, weight := range w {
		if weight <= 0 {
			continue
		}
		feature, ok := ResolveFeature(name)
		if !ok {
			klog.Warningf("dropping weight for unknown feature %q", name)
			continue
		}
		active[feature.Name] += weight
	}
	return active
}

// Rebalance scales the active weights so they sum to 1.0. A zero-sum vector
// rebalances to itself (no-op rather than a division by zero), and an
// already-balanced vector comes back bit-identical.
func (w Weights) Rebalance() Weights {
	active := w.Active()

	sum := 0.0
	for _, weight := range active {
		sum += weight
	}
	if sum == 0 || math.Abs(sum-1.0) <= balancedTolerance {
		return active
	}

	rebalanced := make(Weights, len(active))
	for name, weight := range active {
		rebalanced[name] = weight / sum
	}
	return rebalanced
}
