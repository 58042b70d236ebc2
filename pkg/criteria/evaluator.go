package criteria

import (
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/klog/v2"

	"open-cluster-management.io/retirement/pkg/cluster"
)

// Apply filters, sorts and pages the given clusters by one Criteria. Clauses
// apply conjunctively in a fixed order: string-in, string-not-in,
// contains-any, bool-equals, int-range, double-range, then sort, then
// skip/take. The input slice is never mutated.
func Apply(clusters []*cluster.Cluster, c Criteria) []*cluster.Cluster {
	matched := clusters
	for field, values := range c.StringIn {
		matched = filterStringIn(matched, field, values, true)
	}
	for field, values := range c.StringNotIn {
		matched = filterStringIn(matched, field, values, false)
	}
	for field, values := range c.ContainsAny {
		matched = filterContainsAny(matched, field, values)
	}
	for field, expected := range c.BoolEquals {
		matched = filterBoolEquals(matched, field, expected)
	}
	for field, bounds := range c.IntRanges {
		matched = filterIntRange(matched, field, bounds)
	}
	for field, bounds := range c.DoubleRanges {
		matched = filterDoubleRange(matched, field, bounds)
	}

	matched = sortClusters(matched, c.SortBy, c.SortOrder)
	return page(matched, c.Skip, c.Take)
}

// EvaluatePlan runs every item of the plan against the full original set,
// folds the per-item results by union or intersection keyed on cluster
// identity, and applies the plan's global sort/page pass. The combined set
// keeps the original input order before sorting so results stay
// deterministic.
func EvaluatePlan(clusters []*cluster.Cluster, p Plan) []*cluster.Cluster {
	combined := clusters
	if len(p.Items) > 0 {
		var acc sets.String
		for i, item := range p.Items {
			ids := identities(Apply(clusters, item))
			switch {
			case i == 0:
				acc = ids
			case p.Operator == Intersect:
				acc = acc.Intersection(ids)
			default:
				acc = acc.Union(ids)
			}
		}

		combined = make([]*cluster.Cluster, 0, acc.Len())
		for _, c := range clusters {
			if acc.Has(c.Identity()) {
				combined = append(combined, c)
			}
		}
	}

	combined = sortClusters(combined, p.SortBy, p.SortOrder)
	return page(combined, p.Skip, p.Take)
}

func identities(clusters []*cluster.Cluster) sets.String {
	ids := sets.NewString()
	for _, c := range clusters {
		ids.Insert(c.Identity())
	}
	return ids
}

// none is returned for a clause naming an unknown attribute: the clause
// quietly matches nothing instead of raising. Malformed configuration is the
// parsing collaborator's concern.
func none(field, clause string) []*cluster.Cluster {
	klog.Warningf("unknown field %q in %s clause, matching nothing", field, clause)
	return []*cluster.Cluster{}
}

func filterStringIn(clusters []*cluster.Cluster, field string, values []string, keepMatch bool) []*cluster.Cluster {
	getter, ok := cluster.StringAccessor(field)
	if !ok {
		if keepMatch {
			return none(field, "string-in")
		}
		// not-in over an unknown field excludes nothing
		return clusters
	}

	allowed := sets.NewString()
	for _, v := range values {
		allowed.Insert(cluster.Canonical(field, v))
	}

	matched := []*cluster.Cluster{}
	for _, c := range clusters {
		value := getter(c)
		if value == nil {
			// unknown membership: fails string-in, survives string-not-in
			if !keepMatch {
				matched = append(matched, c)
			}
			continue
		}
		if allowed.Has(cluster.Canonical(field, *value)) == keepMatch {
			matched = append(matched, c)
		}
	}
	return matched
}

func filterContainsAny(clusters []*cluster.Cluster, field string, values []string) []*cluster.Cluster {
	getter, ok := cluster.StringAccessor(field)
	if !ok {
		return none(field, "contains-any")
	}

	needles := make([]string, 0, len(values))
	for _, v := range values {
		needles = append(needles, cluster.Canonical(field, v))
	}

	matched := []*cluster.Cluster{}
	for _, c := range clusters {
		value := getter(c)
		if value == nil {
			continue
		}
		haystack := cluster.Canonical(field, *value)
		for _, needle := range needles {
			if strings.Contains(haystack, needle) {
				matched = append(matched, c)
				break
			}
		}
	}
	return matched
}

func filterBoolEquals(clusters []*cluster.Cluster, field string, expected bool) []*cluster.Cluster {
	getter, ok := cluster.BoolAccessor(field)
	if !ok {
		return none(field, "bool-equals")
	}

	matched := []*cluster.Cluster{}
	for _, c := range clusters {
		value := getter(c)
		if value != nil && *value == expected {
			matched = append(matched, c)
		}
	}
	return matched
}

func filterIntRange(clusters []*cluster.Cluster, field string, bounds IntRange) []*cluster.Cluster {
	getter, ok := cluster.IntAccessor(field)
	if !ok {
		return none(field, "int-range")
	}

	matched := []*cluster.Cluster{}
	for _, c := range clusters {
		value := getter(c)
		// a missing value can never satisfy a bound
		if value == nil {
			continue
		}
		if bounds.Min != nil && *value < *bounds.Min {
			continue
		}
		if bounds.Max != nil && *value > *bounds.Max {
			continue
		}
		matched = append(matched, c)
	}
	return matched
}

func filterDoubleRange(clusters []*cluster.Cluster, field string, bounds FloatRange) []*cluster.Cluster {
	getter, ok := cluster.NumericAccessor(field)
	if !ok {
		return none(field, "double-range")
	}

	matched := []*cluster.Cluster{}
	for _, c := range clusters {
		value := getter(c)
		if value == nil {
			continue
		}
		if bounds.Min != nil && *value < *bounds.Min {
			continue
		}
		if bounds.Max != nil && *value > *bounds.Max {
			continue
		}
		matched = append(matched, c)
	}
	return matched
}

// sortClusters orders clusters by the named attribute. Missing values sort
// last irrespective of direction; an unrecognized sort field is a no-op.
func sortClusters(clusters []*cluster.Cluster, sortBy string, order SortOrder) []*cluster.Cluster {
	if sortBy == "" {
		return clusters
	}

	field, ok := cluster.Resolve(sortBy)
	if !ok {
		klog.Warningf("unknown sort field %q, leaving order unchanged", sortBy)
		return clusters
	}

	descending := order == Descending
	sorted := make([]*cluster.Cluster, len(clusters))
	copy(sorted, clusters)

	less := lessFunc(field, descending)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func lessFunc(field cluster.Field, descending bool) func(a, b *cluster.Cluster) bool {
	switch field.Kind {
	case cluster.KindString:
		getter, _ := cluster.StringAccessor(field.Name)
		return func(a, b *cluster.Cluster) bool {
			va, vb := getter(a), getter(b)
			if va == nil || vb == nil {
				return vb == nil && va != nil
			}
			sa, sb := strings.ToLower(*va), strings.ToLower(*vb)
			if descending {
				return sa > sb
			}
			return sa < sb
		}
	case cluster.KindBool:
		getter, _ := cluster.BoolAccessor(field.Name)
		return func(a, b *cluster.Cluster) bool {
			va, vb := getter(a), getter(b)
			if va == nil || vb == nil {
				return vb == nil && va != nil
			}
			if descending {
				return *va && !*vb
			}
			return !*va && *vb
		}
	default:
		getter, _ := cluster.NumericAccessor(field.Name)
		return func(a, b *cluster.Cluster) bool {
			va, vb := getter(a), getter(b)
			if va == nil || vb == nil {
				return vb == nil && va != nil
			}
			if descending {
				return *va > *vb
			}
			return *va < *vb
		}
	}
}

func page(clusters []*cluster.Cluster, skip, take *int32) []*cluster.Cluster {
	offset := 0
	if skip != nil && *skip > 0 {
		offset = int(*skip)
	}
	if offset >= len(clusters) {
		return []*cluster.Cluster{}
	}
	paged := clusters[offset:]
	if take != nil && *take >= 0 && int(*take) < len(paged) {
		paged = paged[:*take]
	}
	return paged
}
