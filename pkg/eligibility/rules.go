package eligibility

import (
	"open-cluster-management.io/retirement/pkg/criteria"
)

// Rules is the configurable retirement eligibility policy. Baseline checks
// cover the common capacity-planning gates; the generic constraint maps share
// the criteria clause families so the parsing collaborator can emit both from
// one vocabulary.
type Rules struct {
	// Enabled turns the gate on. When false every cluster passes trivially
	// with no reasons, regardless of the other fields.
	Enabled bool `json:"enabled"`

	// Baseline checks. Each is evaluated only when its Enforce toggle is set.
	EnforceMinAge         bool    `json:"enforceMinAge,omitempty"`
	MinAgeYears           float64 `json:"minAgeYears,omitempty"`
	EnforceMaxUtilization bool    `json:"enforceMaxUtilization,omitempty"`
	MaxUtilizationPercent float64 `json:"maxUtilizationPercent,omitempty"`

	EnforceRegionAllowList bool     `json:"enforceRegionAllowList,omitempty"`
	RegionAllowList        []string `json:"regionAllowList,omitempty"`
	EnforceRegionDenyList  bool     `json:"enforceRegionDenyList,omitempty"`
	RegionDenyList         []string `json:"regionDenyList,omitempty"`

	// Generic constraints, same shape families as criteria clauses.
	StringIn     map[string][]string            `json:"stringIn,omitempty"`
	StringNotIn  map[string][]string            `json:"stringNotIn,omitempty"`
	BoolEquals   map[string]bool                `json:"boolEquals,omitempty"`
	IntRanges    map[string]criteria.IntRange   `json:"intRanges,omitempty"`
	DoubleRanges map[string]criteria.FloatRange `json:"doubleRanges,omitempty"`
}

// Rejection pairs a failing cluster with the complete list of violated
// checks.
type Rejection struct {
	Identity string   `json:"identity"`
	Reasons  []string `json:"reasons"`
}
