package eligibility

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"open-cluster-management.io/retirement/pkg/cluster"
	"open-cluster-management.io/retirement/pkg/criteria"
)

// IsEligible evaluates every enabled check against one cluster and returns
// whether it passed together with the complete list of violated-check
// reasons. Checks never short-circuit: an operator presenting the result gets
// every failure at once, not just the first.
//
// A missing value on an enforced baseline check is itself a failure, with an
// explicit reason naming the unknown field. This mirrors the criteria
// evaluator's rule that unknown can never satisfy a bound, but additionally
// surfaces why.
func IsEligible(c *cluster.Cluster, rules Rules) (bool, []string) {
	if !rules.Enabled {
		return true, nil
	}

	reasons := []string{}
	reasons = append(reasons, baselineReasons(c, rules)...)
	reasons = append(reasons, constraintReasons(c, rules)...)
	return len(reasons) == 0, reasons
}

// FilterEligible splits clusters into those passing the gate and rejections
// carrying full reason lists. Input order is preserved on both sides.
func FilterEligible(clusters []*cluster.Cluster, rules Rules) ([]*cluster.Cluster, []Rejection) {
	passing := []*cluster.Cluster{}
	rejections := []Rejection{}
	for _, c := range clusters {
		ok, reasons := IsEligible(c, rules)
		if ok {
			passing = append(passing, c)
			continue
		}
		rejections = append(rejections, Rejection{Identity: c.Identity(), Reasons: reasons})
	}
	return passing, rejections
}

func baselineReasons(c *cluster.Cluster, rules Rules) []string {
	reasons := []string{}

	if rules.EnforceMinAge {
		switch age := c.ClusterAgeYears; {
		case age == nil:
			reasons = append(reasons, fmt.Sprintf("ClusterAgeYears unknown, required >= %.1f", rules.MinAgeYears))
		case *age < rules.MinAgeYears:
			reasons = append(reasons, fmt.Sprintf("ClusterAgeYears %.1f below minimum %.1f", *age, rules.MinAgeYears))
		}
	}

	if rules.EnforceMaxUtilization {
		switch util := c.CPUUtilizationPercent; {
		case util == nil:
			reasons = append(reasons, fmt.Sprintf("CPUUtilizationPercent unknown, required <= %.1f", rules.MaxUtilizationPercent))
		case *util > rules.MaxUtilizationPercent:
			reasons = append(reasons, fmt.Sprintf("CPUUtilizationPercent %.1f above maximum %.1f", *util, rules.MaxUtilizationPercent))
		}
	}

	if rules.EnforceRegionAllowList {
		switch region := c.Region; {
		case region == nil:
			reasons = append(reasons, fmt.Sprintf("Region unknown, required one of [%s]", strings.Join(rules.RegionAllowList, ", ")))
		case !regionSet(rules.RegionAllowList).Has(cluster.Canonical("Region", *region)):
			reasons = append(reasons, fmt.Sprintf("Region %q not in allow list [%s]", *region, strings.Join(rules.RegionAllowList, ", ")))
		}
	}

	if rules.EnforceRegionDenyList {
		if region := c.Region; region != nil && regionSet(rules.RegionDenyList).Has(cluster.Canonical("Region", *region)) {
			reasons = append(reasons, fmt.Sprintf("Region %q is in deny list [%s]", *region, strings.Join(rules.RegionDenyList, ", ")))
		}
	}

	return reasons
}

// regionSet canonicalizes a configured region list through the same alias
// table the criteria evaluator uses, keeping filtering and eligibility
// semantics consistent.
func regionSet(regions []string) sets.String {
	canonical := sets.NewString()
	for _, r := range regions {
		canonical.Insert(cluster.Canonical("Region", r))
	}
	return canonical
}

func constraintReasons(c *cluster.Cluster, rules Rules) []string {
	reasons := []string{}

	for field, values := range rules.StringIn {
		getter, ok := cluster.StringAccessor(field)
		if !ok {
			reasons = append(reasons, fmt.Sprintf("%s is not a known string attribute", field))
			continue
		}
		value := getter(c)
		if value == nil {
			reasons = append(reasons, fmt.Sprintf("%s unknown, required one of [%s]", field, strings.Join(values, ", ")))
			continue
		}
		if !canonicalSet(field, values).Has(cluster.Canonical(field, *value)) {
			reasons = append(reasons, fmt.Sprintf("%s %q not in [%s]", field, *value, strings.Join(values, ", ")))
		}
	}

	for field, values := range rules.StringNotIn {
		getter, ok := cluster.StringAccessor(field)
		if !ok {
			reasons = append(reasons, fmt.Sprintf("%s is not a known string attribute", field))
			continue
		}
		// unknown survives a not-in constraint, same as the evaluator
		if value := getter(c); value != nil && canonicalSet(field, values).Has(cluster.Canonical(field, *value)) {
			reasons = append(reasons, fmt.Sprintf("%s %q is in excluded set [%s]", field, *value, strings.Join(values, ", ")))
		}
	}

	for field, expected := range rules.BoolEquals {
		getter, ok := cluster.BoolAccessor(field)
		if !ok {
			reasons = append(reasons, fmt.Sprintf("%s is not a known boolean attribute", field))
			continue
		}
		value := getter(c)
		if value == nil {
			reasons = append(reasons, fmt.Sprintf("%s unknown, required %t", field, expected))
			continue
		}
		if *value != expected {
			reasons = append(reasons, fmt.Sprintf("%s is %t, required %t", field, *value, expected))
		}
	}

	for field, bounds := range rules.IntRanges {
		getter, ok := cluster.IntAccessor(field)
		if !ok {
			reasons = append(reasons, fmt.Sprintf("%s is not a known integer attribute", field))
			continue
		}
		value := getter(c)
		if value == nil {
			reasons = append(reasons, fmt.Sprintf("%s unknown, required within %s", field, intBounds(bounds)))
			continue
		}
		if (bounds.Min != nil && *value < *bounds.Min) || (bounds.Max != nil && *value > *bounds.Max) {
			reasons = append(reasons, fmt.Sprintf("%s %d outside %s", field, *value, intBounds(bounds)))
		}
	}

	for field, bounds := range rules.DoubleRanges {
		getter, ok := cluster.NumericAccessor(field)
		if !ok {
			reasons = append(reasons, fmt.Sprintf("%s is not a known numeric attribute", field))
			continue
		}
		value := getter(c)
		if value == nil {
			reasons = append(reasons, fmt.Sprintf("%s unknown, required within %s", field, floatBounds(bounds)))
			continue
		}
		if (bounds.Min != nil && *value < *bounds.Min) || (bounds.Max != nil && *value > *bounds.Max) {
			reasons = append(reasons, fmt.Sprintf("%s %.2f outside %s", field, *value, floatBounds(bounds)))
		}
	}

	return reasons
}

func canonicalSet(field string, values []string) sets.String {
	canonical := sets.NewString()
	for _, v := range values {
		canonical.Insert(cluster.Canonical(field, v))
	}
	return canonical
}

func intBounds(r criteria.IntRange) string {
	switch {
	case r.Min != nil && r.Max != nil:
		return fmt.Sprintf("[%d, %d]", *r.Min, *r.Max)
	case r.Min != nil:
		return fmt.Sprintf(">= %d", *r.Min)
	case r.Max != nil:
		return fmt.Sprintf("<= %d", *r.Max)
	}
	return "(unbounded)"
}

func floatBounds(r criteria.FloatRange) string {
	switch {
	case r.Min != nil && r.Max != nil:
		return fmt.Sprintf("[%.2f, %.2f]", *r.Min, *r.Max)
	case r.Min != nil:
		return fmt.Sprintf(">= %.2f", *r.Min)
	case r.Max != nil:
		return fmt.Sprintf("<= %.2f", *r.Max)
	}
	return "(unbounded)"
}
