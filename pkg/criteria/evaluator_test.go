package criteria

import (
	"testing"

	apiequality "k8s.io/apimachinery/pkg/api/equality"
	"k8s.io/utils/pointer"

	"open-cluster-management.io/retirement/pkg/cluster"
	testinghelpers "open-cluster-management.io/retirement/pkg/helpers/testing"
)

func names(clusters []*cluster.Cluster) []string {
	result := []string{}
	for _, c := range clusters {
		result = append(result, c.Identity())
	}
	return result
}

func TestApply(t *testing.T) {
	fixtures := []*cluster.Cluster{
		testinghelpers.NewCluster("c1").WithRegion("westus2").WithAgeYears(8).WithCPUUtilization(10).WithEnvironment("production").WithProductionTraffic(true).WithNodeCount(20).Build(),
		testinghelpers.NewCluster("c2").WithRegion("eastus").WithAgeYears(4).WithCPUUtilization(50).WithEnvironment("staging").WithProductionTraffic(false).WithNodeCount(5).Build(),
		testinghelpers.NewCluster("c3").WithRegion("West US 2").WithAgeYears(6).WithEnvironment("production").WithNodeCount(9).Build(),
		testinghelpers.NewCluster("c4").Build(),
	}

	cases := []struct {
		name     string
		criteria Criteria
		expected []string
	}{
		{
			name:     "empty criteria keeps everything",
			criteria: Criteria{},
			expected: []string{"c1", "c2", "c3", "c4"},
		},
		{
			name:     "string in is case insensitive and normalized",
			criteria: Criteria{StringIn: map[string][]string{"Region": {"west-us-2"}}},
			expected: []string{"c1", "c3"},
		},
		{
			name:     "string in fails null",
			criteria: Criteria{StringIn: map[string][]string{"Region": {"westus2", "eastus"}}},
			expected: []string{"c1", "c2", "c3"},
		},
		{
			name:     "string not in keeps null",
			criteria: Criteria{StringNotIn: map[string][]string{"Region": {"West US 2"}}},
			expected: []string{"c2", "c4"},
		},
		{
			name:     "contains any",
			criteria: Criteria{ContainsAny: map[string][]string{"Environment": {"prod"}}},
			expected: []string{"c1", "c3"},
		},
		{
			name:     "bool equals fails null",
			criteria: Criteria{BoolEquals: map[string]bool{"RunsProductionTraffic": false}},
			expected: []string{"c2"},
		},
		{
			name:     "int range",
			criteria: Criteria{IntRanges: map[string]IntRange{"NodeCount": {Min: pointer.Int64(6), Max: pointer.Int64(25)}}},
			expected: []string{"c1", "c3"},
		},
		{
			name:     "double range fails null",
			criteria: Criteria{DoubleRanges: map[string]FloatRange{"CPUUtilizationPercent": {Max: pointer.Float64(60)}}},
			expected: []string{"c1", "c2"},
		},
		{
			name:     "double range accepts alias",
			criteria: Criteria{DoubleRanges: map[string]FloatRange{"Age": {Min: pointer.Float64(5)}}},
			expected: []string{"c1", "c3"},
		},
		{
			name:     "unknown field matches nothing",
			criteria: Criteria{StringIn: map[string][]string{"NoSuchField": {"x"}}},
			expected: []string{},
		},
		{
			name:     "unknown field in not-in excludes nothing",
			criteria: Criteria{StringNotIn: map[string][]string{"NoSuchField": {"x"}}},
			expected: []string{"c1", "c2", "c3", "c4"},
		},
		{
			name:     "sort ascending with nulls last",
			criteria: Criteria{SortBy: "ClusterAgeYears", SortOrder: Ascending},
			expected: []string{"c2", "c3", "c1", "c4"},
		},
		{
			name:     "sort descending with nulls still last",
			criteria: Criteria{SortBy: "ClusterAgeYears", SortOrder: Descending},
			expected: []string{"c1", "c3", "c2", "c4"},
		},
		{
			name:     "unknown sort field is a no-op",
			criteria: Criteria{SortBy: "NoSuchField", SortOrder: Descending},
			expected: []string{"c1", "c2", "c3", "c4"},
		},
		{
			name:     "paging after sort",
			criteria: Criteria{SortBy: "ClusterAgeYears", SortOrder: Descending, Skip: pointer.Int32(1), Take: pointer.Int32(2)},
			expected: []string{"c3", "c2"},
		},
		{
			name:     "skip beyond population",
			criteria: Criteria{Skip: pointer.Int32(10)},
			expected: []string{},
		},
		{
			name: "scenario: exclude westus2 and young or unknown age",
			criteria: Criteria{
				StringNotIn:  map[string][]string{"Region": {"westus2"}},
				DoubleRanges: map[string]FloatRange{"AgeYears": {Min: pointer.Float64(5)}},
			},
			expected: []string{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual := names(Apply(fixtures, c.criteria))
			if !apiequality.Semantic.DeepEqual(actual, c.expected) {
				t.Errorf("expected %v, got %v", c.expected, actual)
			}
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	fixtures := []*cluster.Cluster{
		testinghelpers.NewCluster("c1").WithRegion("westus2").WithAgeYears(8).Build(),
		testinghelpers.NewCluster("c2").WithRegion("eastus").WithAgeYears(4).Build(),
		testinghelpers.NewCluster("c3").WithAgeYears(6).Build(),
	}
	criteria := Criteria{
		DoubleRanges: map[string]FloatRange{"ClusterAgeYears": {Min: pointer.Float64(5)}},
		SortBy:       "ClusterAgeYears",
		SortOrder:    Descending,
	}

	once := Apply(fixtures, criteria)
	twice := Apply(once, criteria)
	if !apiequality.Semantic.DeepEqual(names(once), names(twice)) {
		t.Errorf("re-applying identical criteria changed the result: %v vs %v", names(once), names(twice))
	}
}

func TestEvaluatePlan(t *testing.T) {
	fixtures := []*cluster.Cluster{
		testinghelpers.NewCluster("c1").WithRegion("westus2").WithAgeYears(8).Build(),
		testinghelpers.NewCluster("c2").WithRegion("eastus").WithAgeYears(4).Build(),
		testinghelpers.NewCluster("c3").WithRegion("westus2").WithAgeYears(3).Build(),
		testinghelpers.NewCluster("c4").WithRegion("northeurope").WithAgeYears(9).Build(),
	}
	inWestUS2 := Criteria{StringIn: map[string][]string{"Region": {"westus2"}}}
	old := Criteria{DoubleRanges: map[string]FloatRange{"ClusterAgeYears": {Min: pointer.Float64(5)}}}

	cases := []struct {
		name     string
		plan     Plan
		expected []string
	}{
		{
			name:     "empty plan only sorts and pages",
			plan:     Plan{SortBy: "ClusterAgeYears", SortOrder: Descending, Take: pointer.Int32(2)},
			expected: []string{"c4", "c1"},
		},
		{
			name:     "union",
			plan:     Plan{Operator: Union, Items: []Criteria{inWestUS2, old}},
			expected: []string{"c1", "c3", "c4"},
		},
		{
			name:     "default operator is union",
			plan:     Plan{Items: []Criteria{inWestUS2, old}},
			expected: []string{"c1", "c3", "c4"},
		},
		{
			name:     "intersect",
			plan:     Plan{Operator: Intersect, Items: []Criteria{inWestUS2, old}},
			expected: []string{"c1"},
		},
		{
			name: "items run against the full set, not chained",
			plan: Plan{
				Operator: Union,
				Items: []Criteria{
					{StringIn: map[string][]string{"Region": {"eastus"}}},
					{DoubleRanges: map[string]FloatRange{"ClusterAgeYears": {Max: pointer.Float64(4)}}},
				},
			},
			expected: []string{"c2", "c3"},
		},
		{
			name:     "global sort and page after fold",
			plan:     Plan{Operator: Union, Items: []Criteria{inWestUS2, old}, SortBy: "ClusterAgeYears", SortOrder: Descending, Take: pointer.Int32(2)},
			expected: []string{"c4", "c1"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual := names(EvaluatePlan(fixtures, c.plan))
			if !apiequality.Semantic.DeepEqual(actual, c.expected) {
				t.Errorf("expected %v, got %v", c.expected, actual)
			}
		})
	}
}

// intersect([A,B]) must be contained in apply(A) and apply(B); union([A,B])
// must contain both.
func TestPlanSetAlgebra(t *testing.T) {
	fixtures := []*cluster.Cluster{
		testinghelpers.NewCluster("c1").WithRegion("westus2").WithAgeYears(8).Build(),
		testinghelpers.NewCluster("c2").WithRegion("eastus").WithAgeYears(4).Build(),
		testinghelpers.NewCluster("c3").WithRegion("westus2").WithAgeYears(3).Build(),
		testinghelpers.NewCluster("c4").WithRegion("northeurope").WithAgeYears(9).Build(),
	}
	a := Criteria{StringIn: map[string][]string{"Region": {"westus2"}}}
	b := Criteria{DoubleRanges: map[string]FloatRange{"ClusterAgeYears": {Min: pointer.Float64(4)}}}

	membership := func(clusters []*cluster.Cluster) map[string]bool {
		m := map[string]bool{}
		for _, c := range clusters {
			m[c.Identity()] = true
		}
		return m
	}

	applyA := membership(Apply(fixtures, a))
	applyB := membership(Apply(fixtures, b))

	for _, c := range EvaluatePlan(fixtures, Plan{Operator: Intersect, Items: []Criteria{a, b}}) {
		if !applyA[c.Identity()] || !applyB[c.Identity()] {
			t.Errorf("intersection contains %q, absent from a single-criteria result", c.Identity())
		}
	}

	union := membership(EvaluatePlan(fixtures, Plan{Operator: Union, Items: []Criteria{a, b}}))
	for id := range applyA {
		if !union[id] {
			t.Errorf("union misses %q from the first criteria", id)
		}
	}
	for id := range applyB {
		if !union[id] {
			t.Errorf("union misses %q from the second criteria", id)
		}
	}
}
