package criteria

// SortOrder selects the direction of the sort pass.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// SetOperator selects how the results of a plan's items are folded together.
type SetOperator string

const (
	Union     SetOperator = "union"
	Intersect SetOperator = "intersect"
)

// IntRange bounds an integer attribute. A nil side is unbounded.
type IntRange struct {
	Min *int64 `json:"min,omitempty"`
	Max *int64 `json:"max,omitempty"`
}

// FloatRange bounds a double attribute. A nil side is unbounded.
type FloatRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Criteria is one composable filter specification over cluster attributes.
// All clause maps are keyed by attribute name (aliases accepted) and apply
// conjunctively. It is produced by the request-parsing collaborator and is
// serialization-format-agnostic apart from the json tags.
type Criteria struct {
	// StringIn keeps clusters whose attribute equals any listed value,
	// compared case-insensitively after canonicalization.
	StringIn map[string][]string `json:"stringIn,omitempty"`

	// StringNotIn drops clusters whose attribute equals any listed value.
	// A missing value is kept: unknown cannot be proven to be in the list.
	StringNotIn map[string][]string `json:"stringNotIn,omitempty"`

	// ContainsAny keeps clusters whose attribute contains any listed
	// substring after canonicalization.
	ContainsAny map[string][]string `json:"containsAny,omitempty"`

	// BoolEquals keeps clusters whose boolean attribute equals the given
	// value. A missing value never matches.
	BoolEquals map[string]bool `json:"boolEquals,omitempty"`

	// IntRanges and DoubleRanges keep clusters whose numeric attribute lies
	// inside the bounds. A missing value always fails a range.
	IntRanges    map[string]IntRange   `json:"intRanges,omitempty"`
	DoubleRanges map[string]FloatRange `json:"doubleRanges,omitempty"`

	// SortBy names the attribute to order by after filtering. An
	// unrecognized name leaves the order untouched.
	SortBy    string    `json:"sortBy,omitempty"`
	SortOrder SortOrder `json:"sortOrder,omitempty"`

	// Skip and Take page the result after sorting.
	Skip *int32 `json:"skip,omitempty"`
	Take *int32 `json:"take,omitempty"`
}

// Plan combines multiple Criteria by union or intersection. Each item is
// evaluated independently against the full original cluster set, the results
// are folded pairwise keyed by cluster identity, and one global sort/page
// pass runs over the combined set.
type Plan struct {
	Operator SetOperator `json:"operator,omitempty"`
	Items    []Criteria  `json:"items,omitempty"`

	SortBy    string    `json:"sortBy,omitempty"`
	SortOrder SortOrder `json:"sortOrder,omitempty"`
	Skip      *int32    `json:"skip,omitempty"`
	Take      *int32    `json:"take,omitempty"`
}
