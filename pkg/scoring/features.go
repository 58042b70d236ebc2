package scoring

import (
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"open-cluster-management.io/retirement/pkg/cluster"
)

// Direction is the polarity of a feature with respect to retirement
// suitability.
type Direction string

const (
	// HigherMoreSuitable: a larger raw value marks a stronger retirement
	// candidate (age, cost, incident counts).
	HigherMoreSuitable Direction = "higher"
	// LowerMoreSuitable: a smaller raw value marks a stronger retirement
	// candidate (utilization, traffic, capacity). The normalized value is
	// inverted before weighting so a higher composite score always means
	// "more suitable to retire".
	LowerMoreSuitable Direction = "lower"
)

// FeatureKind distinguishes attributes read straight off the record from
// ratios computed at scoring time.
type FeatureKind string

const (
	RawFeature     FeatureKind = "raw"
	DerivedFeature FeatureKind = "derived"
)

// Feature is one scorable signal: a raw numeric attribute or a derived ratio.
type Feature struct {
	Name      string      `json:"name"`
	Kind      FeatureKind `json:"kind"`
	Unit      string      `json:"unit"`
	Direction Direction   `json:"direction"`

	resolve func(*cluster.Cluster) *float64
}

// Value resolves the feature for one cluster. nil means unknown.
func (f Feature) Value(c *cluster.Cluster) *float64 {
	return f.resolve(c)
}

// percentScaled lists the attributes known to sometimes arrive pre-scaled
// 0-100. Such a value is divided by 100 only when greater than 1, leaving
// already-normalized ratios untouched. The heuristic cannot tell a true ratio
// of 1.0 from an already-divided 100%; do not extend this set without
// confirming the attribute's unit at the source.
var percentScaled = sets.NewString(
	"CPUUtilizationPercent",
	"MemoryUtilizationPercent",
	"PeakCPUUtilizationPercent",
	"PeakMemoryUtilizationPercent",
	"AvailabilityPercent",
	"ErrorRatePercent",
)

// lowerMoreSuitable lists the raw attributes where a smaller value favors
// retirement. Everything else defaults to HigherMoreSuitable.
var lowerMoreSuitable = sets.NewString(
	"CPUUtilizationPercent",
	"MemoryUtilizationPercent",
	"PeakCPUUtilizationPercent",
	"PeakMemoryUtilizationPercent",
	"AvailabilityPercent",
	"HealthScore",
	"NodeCount",
	"MaxNodeCount",
	"PodCount",
	"PodCapacity",
	"NamespaceCount",
	"WorkloadCount",
	"ActiveUserCount",
	"RequestRatePerSecond",
	"NetworkIngressGbps",
	"NetworkEgressGbps",
	"TotalCPUCores",
	"UsedCPUCores",
	"AllocatableCPUCores",
	"TotalMemoryGiB",
	"UsedMemoryGiB",
	"AllocatableMemoryGiB",
	"StorageTotalTiB",
	"StorageUsedTiB",
	"CreatedYear",
	"CertificateExpiryDays",
	"DaysSinceLastIncident",
)

// explorationDenyList holds numeric attributes that are identifiers rather
// than signals; the exploration budget never touches them.
var explorationDenyList = sets.NewString(
	"CreatedYear",
)

var rawUnits = map[string]string{
	"ClusterAgeYears":              "years",
	"CreatedYear":                  "year",
	"LastUpgradeAgeDays":           "days",
	"NodeImageAgeDays":             "days",
	"CertificateExpiryDays":        "days",
	"DaysSinceLastIncident":        "days",
	"CPUUtilizationPercent":        "percent",
	"MemoryUtilizationPercent":     "percent",
	"PeakCPUUtilizationPercent":    "percent",
	"PeakMemoryUtilizationPercent": "percent",
	"AvailabilityPercent":          "percent",
	"ErrorRatePercent":             "percent",
	"TotalCPUCores":                "cores",
	"UsedCPUCores":                 "cores",
	"AllocatableCPUCores":          "cores",
	"TotalMemoryGiB":               "GiB",
	"UsedMemoryGiB":                "GiB",
	"AllocatableMemoryGiB":         "GiB",
	"StorageTotalTiB":              "TiB",
	"StorageUsedTiB":               "TiB",
	"NetworkIngressGbps":           "Gbps",
	"NetworkEgressGbps":            "Gbps",
	"RequestRatePerSecond":         "req/s",
	"MonthlyCostUSD":               "USD",
	"CostPerCoreUSD":               "USD",
	"EnergyKWhPerMonth":            "kWh",
	"CarbonKgPerMonth":             "kg",
}

// ratio divides two nullable operands. The result is unknown when either
// operand is missing or the denominator is non-positive; it is never inferred
// as zero.
func ratio(num, den *float64) *float64 {
	if num == nil || den == nil || *den <= 0 {
		return nil
	}
	r := *num / *den
	return &r
}

func intRatio(num *int64, den *int64) *float64 {
	if num == nil || den == nil || *den <= 0 {
		return nil
	}
	r := float64(*num) / float64(*den)
	return &r
}

// derivedFeatures is the fixed catalog of ratio features computed at scoring
// time. A derived feature wins over a raw attribute on a name clash.
var derivedFeatures = map[string]Feature{}

func registerDerived(name, unit string, direction Direction, resolve func(*cluster.Cluster) *float64) {
	derivedFeatures[strings.ToLower(name)] = Feature{
		Name:      name,
		Kind:      DerivedFeature,
		Unit:      unit,
		Direction: direction,
		resolve:   resolve,
	}
}

func init() {
	registerDerived("CPUUsageRatio", "ratio", LowerMoreSuitable, func(c *cluster.Cluster) *float64 {
		return ratio(c.UsedCPUCores, c.TotalCPUCores)
	})
	registerDerived("MemoryUsageRatio", "ratio", LowerMoreSuitable, func(c *cluster.Cluster) *float64 {
		return ratio(c.UsedMemoryGiB, c.TotalMemoryGiB)
	})
	registerDerived("StorageUsageRatio", "ratio", LowerMoreSuitable, func(c *cluster.Cluster) *float64 {
		return ratio(c.StorageUsedTiB, c.StorageTotalTiB)
	})
	registerDerived("PodDensity", "ratio", LowerMoreSuitable, func(c *cluster.Cluster) *float64 {
		return intRatio(c.PodCount, c.PodCapacity)
	})
	registerDerived("NodeFillRatio", "ratio", LowerMoreSuitable, func(c *cluster.Cluster) *float64 {
		return intRatio(c.NodeCount, c.MaxNodeCount)
	})
	registerDerived("AllocatableCPURatio", "ratio", HigherMoreSuitable, func(c *cluster.Cluster) *float64 {
		return ratio(c.AllocatableCPUCores, c.TotalCPUCores)
	})
	registerDerived("AllocatableMemoryRatio", "ratio", HigherMoreSuitable, func(c *cluster.Cluster) *float64 {
		return ratio(c.AllocatableMemoryGiB, c.TotalMemoryGiB)
	})
	registerDerived("CostPerWorkloadUSD", "USD", HigherMoreSuitable, func(c *cluster.Cluster) *float64 {
		if c.WorkloadCount == nil || *c.WorkloadCount <= 0 {
			return nil
		}
		den := float64(*c.WorkloadCount)
		return ratio(c.MonthlyCostUSD, &den)
	})
	registerDerived("IncidentDensity", "ratio", HigherMoreSuitable, func(c *cluster.Cluster) *float64 {
		if c.IncidentCount90d == nil {
			return nil
		}
		num := float64(*c.IncidentCount90d)
		if c.NodeCount == nil || *c.NodeCount <= 0 {
			return nil
		}
		den := float64(*c.NodeCount)
		return ratio(&num, &den)
	})
}

// ResolveFeature maps a weight name to its Feature. Derived features take
// priority over raw attributes; raw resolution accepts the same aliases as
// the attribute registry but only yields numeric attributes.
func ResolveFeature(name string) (Feature, bool) {
	if f, ok := derivedFeatures[strings.ToLower(name)]; ok {
		return f, true
	}

	field, ok := cluster.Resolve(name)
	if !ok || (field.Kind != cluster.KindInt && field.Kind != cluster.KindDouble) {
		return Feature{}, false
	}
	return rawFeature(field.Name), true
}

func rawFeature(name string) Feature {
	getter, _ := cluster.NumericAccessor(name)
	direction := HigherMoreSuitable
	if lowerMoreSuitable.Has(name) {
		direction = LowerMoreSuitable
	}
	unit := rawUnits[name]
	if unit == "" {
		unit = "count"
	}

	coerce := percentScaled.Has(name)
	return Feature{
		Name:      name,
		Kind:      RawFeature,
		Unit:      unit,
		Direction: direction,
		resolve: func(c *cluster.Cluster) *float64 {
			v := getter(c)
			if v == nil || !coerce {
				return v
			}
			// pre-scaled 0-100 heuristic, see percentScaled
			if *v > 1 {
				scaled := *v / 100
				return &scaled
			}
			value := *v
			return &value
		},
	}
}

// Catalog enumerates every scorable feature (raw numeric attributes plus the
// derived registry), sorted by name, for discovery and help surfaces.
func Catalog() []Feature {
	features := make([]Feature, 0, len(derivedFeatures))
	for _, f := range derivedFeatures {
		features = append(features, f)
	}
	for _, field := range cluster.ListFields() {
		if field.Kind != cluster.KindInt && field.Kind != cluster.KindDouble {
			continue
		}
		if _, clash := derivedFeatures[strings.ToLower(field.Name)]; clash {
			continue
		}
		features = append(features, rawFeature(field.Name))
	}
	sort.Slice(features, func(i, j int) bool {
		return features[i].Name < features[j].Name
	})
	return features
}
