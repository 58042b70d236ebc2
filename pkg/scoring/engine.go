package scoring

import (
	"errors"
	"fmt"
	"sort"

	"k8s.io/klog/v2"

	"open-cluster-management.io/retirement/pkg/cluster"
)

const (
	// neutralNormalized is the normalized value substituted for missing data
	// and for features with a degenerate range. Missing data is deliberately
	// neutral: it neither penalizes nor rewards, keeping scores comparable
	// across clusters of differing completeness.
	neutralNormalized = 0.5

	// degenerateRange guards min-max scaling against division by zero and
	// against spurious separation among near-identical values.
	degenerateRange = 1e-9

	DefaultLowerPercentile = 0.02
	DefaultUpperPercentile = 0.98
)

// ErrClusterNotFound is returned by Explain for an identity absent from the
// supplied population.
var ErrClusterNotFound = errors.New("cluster not found")

// Options tunes one scoring pass.
type Options struct {
	// Winsorize substitutes the values at the configured percentiles for the
	// observed min/max before normalization.
	Winsorize bool `json:"winsorize,omitempty"`

	// Global winsorization percentiles as fractions; zero means the 0.02 /
	// 0.98 defaults. PercentileOverrides replaces both, per feature.
	LowerPercentile     float64                    `json:"lowerPercentile,omitempty"`
	UpperPercentile     float64                    `json:"upperPercentile,omitempty"`
	PercentileOverrides map[string]PercentileRange `json:"percentileOverrides,omitempty"`

	// ExplorationBudget, when in (0, 1), is spread evenly across every
	// scorable feature not explicitly weighted, so unweighted signals still
	// nudge rankings slightly without overwhelming explicit intent.
	ExplorationBudget float64 `json:"explorationBudget,omitempty"`
}

func (o Options) percentiles(feature string) (float64, float64) {
	if override, ok := o.PercentileOverrides[feature]; ok {
		return override.Lower, override.Upper
	}
	lower, upper := o.LowerPercentile, o.UpperPercentile
	if lower == 0 {
		lower = DefaultLowerPercentile
	}
	if upper == 0 {
		upper = DefaultUpperPercentile
	}
	return lower, upper
}

// FactorContribution records how one feature moved one cluster's score,
// enabling full reconstruction of why the cluster ranked where it did.
type FactorContribution struct {
	Feature string `json:"feature"`
	// Raw is the resolved feature value (after derivation and percent
	// coercion); nil means unknown.
	Raw        *float64 `json:"raw,omitempty"`
	Normalized float64  `json:"normalized"`
	Weight     float64  `json:"weight"`
	// Contribution = Weight x Normalized (post-inversion).
	Contribution float64 `json:"contribution"`
	Inverted     bool    `json:"inverted"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
}

// Breakdown is the explainable composite score for one cluster. Factors are
// ordered by descending weight, then by name.
type Breakdown struct {
	Identity string               `json:"identity"`
	Score    float64              `json:"score"`
	Factors  []FactorContribution `json:"factors"`
}

// Result is one full scoring pass over a population.
type Result struct {
	// Rankings is sorted by score descending. Ties keep input order; any
	// further tie-break policy belongs to the orchestration layer.
	Rankings       []Breakdown            `json:"rankings"`
	AppliedWeights Weights                `json:"appliedWeights"`
	Stats          map[string]FactorStats `json:"stats"`
}

// ScoreAll computes composite retirement-suitability scores for the whole
// population. Per-feature statistics are recomputed over exactly the
// population passed in; pre-filtering is the caller's choice, and so is any
// caching of repeated calls.
func ScoreAll(clusters []*cluster.Cluster, weights Weights, opts Options) *Result {
	start := engineMetrics.start()
	defer func() { engineMetrics.done(start) }()

	applied, features := applyWeights(clusters, weights, opts)
	order := factorOrder(applied)

	// resolve every feature once per cluster, then derive the population
	// statistics each normalization needs
	resolved := make(map[string][]*float64, len(order))
	stats := make(map[string]FactorStats, len(order))
	for _, name := range order {
		feature := features[name]
		values := make([]*float64, len(clusters))
		observed := []float64{}
		for i, c := range clusters {
			values[i] = feature.Value(c)
			if values[i] != nil {
				observed = append(observed, *values[i])
			}
		}
		resolved[name] = values

		lower, upper := opts.percentiles(name)
		stats[name] = computeStats(observed, opts.Winsorize, lower, upper)
	}

	rankings := make([]Breakdown, 0, len(clusters))
	for i, c := range clusters {
		breakdown := Breakdown{
			Identity: c.Identity(),
			Factors:  make([]FactorContribution, 0, len(order)),
		}
		for _, name := range order {
			feature := features[name]
			weight := applied[name]
			factor := contribution(feature, weight, resolved[name][i], stats[name])
			breakdown.Factors = append(breakdown.Factors, factor)
			breakdown.Score += factor.Contribution
		}
		rankings = append(rankings, breakdown)
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Score > rankings[j].Score
	})

	return &Result{
		Rankings:       rankings,
		AppliedWeights: applied,
		Stats:          stats,
	}
}

// Explain recomputes the pass and returns the single breakdown for the given
// identity. The entry is identical to the one ScoreAll would rank.
func Explain(clusters []*cluster.Cluster, id string, weights Weights, opts Options) (*Breakdown, error) {
	result := ScoreAll(clusters, weights, opts)
	for i := range result.Rankings {
		if result.Rankings[i].Identity == id {
			return &result.Rankings[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrClusterNotFound, id)
}

// contribution normalizes one resolved value against the population range and
// weights it. Missing values contribute exactly weight x 0.5 regardless of
// polarity; a degenerate range pins every cluster to the neutral 0.5.
func contribution(feature Feature, weight float64, raw *float64, stats FactorStats) FactorContribution {
	inverted := feature.Direction == LowerMoreSuitable

	normalized := neutralNormalized
	if raw != nil {
		if stats.Max-stats.Min >= degenerateRange {
			normalized = (*raw - stats.Min) / (stats.Max - stats.Min)
			if normalized < 0 {
				normalized = 0
			}
			if normalized > 1 {
				normalized = 1
			}
		}
		if inverted {
			normalized = 1 - normalized
		}
	}

	var rawCopy *float64
	if raw != nil {
		v := *raw
		rawCopy = &v
	}

	return FactorContribution{
		Feature:      feature.Name,
		Raw:          rawCopy,
		Normalized:   normalized,
		Weight:       weight,
		Contribution: weight * normalized,
		Inverted:     inverted,
		Min:          stats.Min,
		Max:          stats.Max,
	}
}

// applyWeights rebalances the explicit vector and, when an exploration budget
// is configured, spreads it evenly across the scorable features the caller
// did not weight. Exploration is restricted to features with at least one
// non-missing value in the population and skips the identifier deny list.
func applyWeights(clusters []*cluster.Cluster, weights Weights, opts Options) (Weights, map[string]Feature) {
	explicit := weights.Rebalance()
	features := make(map[string]Feature, len(explicit))
	for name := range explicit {
		feature, _ := ResolveFeature(name)
		features[name] = feature
	}

	budget := opts.ExplorationBudget
	if budget <= 0 {
		return explicit, features
	}
	if budget >= 1 {
		klog.Warningf("ignoring exploration budget %.2f, must be in (0, 1)", budget)
		return explicit, features
	}

	candidates := []Feature{}
	for _, feature := range Catalog() {
		if _, weighted := explicit[feature.Name]; weighted {
			continue
		}
		if explorationDenyList.Has(feature.Name) {
			continue
		}
		if !hasObservation(clusters, feature) {
			continue
		}
		candidates = append(candidates, feature)
	}
	if len(candidates) == 0 {
		return explicit, features
	}

	// with no explicit weights at all, exploration carries the whole vector
	if len(explicit) == 0 {
		budget = 1
	}

	applied := make(Weights, len(explicit)+len(candidates))
	for name, weight := range explicit {
		applied[name] = weight * (1 - budget)
	}
	share := budget / float64(len(candidates))
	for _, feature := range candidates {
		applied[feature.Name] = share
		features[feature.Name] = feature
	}
	return applied, features
}

func hasObservation(clusters []*cluster.Cluster, feature Feature) bool {
	for _, c := range clusters {
		if feature.Value(c) != nil {
			return true
		}
	}
	return false
}

// factorOrder fixes the factor ordering in breakdowns: descending weight,
// name ascending on ties.
func factorOrder(applied Weights) []string {
	order := make([]string, 0, len(applied))
	for name := range applied {
		order = append(order, name)
	}
	sort.Slice(order, func(i, j int) bool {
		if applied[order[i]] == applied[order[j]] {
			return order[i] < order[j]
		}
		return applied[order[i]] > applied[order[j]]
	})
	return order
}
