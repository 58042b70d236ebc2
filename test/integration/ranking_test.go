package integration

import (
	"github.com/onsi/ginkgo"
	"github.com/onsi/gomega"
	"k8s.io/utils/pointer"

	"open-cluster-management.io/retirement/pkg/cluster"
	"open-cluster-management.io/retirement/pkg/criteria"
	"open-cluster-management.io/retirement/pkg/eligibility"
	testinghelpers "open-cluster-management.io/retirement/pkg/helpers/testing"
	"open-cluster-management.io/retirement/pkg/scoring"
)

var _ = ginkgo.Describe("Retirement ranking pipeline", func() {
	var inventory []*cluster.Cluster

	ginkgo.BeforeEach(func() {
		inventory = []*cluster.Cluster{
			testinghelpers.NewCluster("legacy-west").WithRegion("West US 2").WithAgeYears(9).
				WithCPUUtilization(8).WithMonthlyCost(40000).WithIncidentCount(7).
				WithProductionTraffic(false).Build(),
			testinghelpers.NewCluster("busy-east").WithRegion("eastus").WithAgeYears(7).
				WithCPUUtilization(85).WithMonthlyCost(30000).WithIncidentCount(1).
				WithProductionTraffic(true).Build(),
			testinghelpers.NewCluster("young-eu").WithRegion("northeurope").WithAgeYears(2).
				WithCPUUtilization(30).WithMonthlyCost(12000).Build(),
			testinghelpers.NewCluster("mystery").Build(),
		}
	})

	ginkgo.It("filters, gates and ranks in one pass", func() {
		filtered := criteria.Apply(inventory, criteria.Criteria{
			StringNotIn: map[string][]string{"Region": {"northeurope"}},
		})
		gomega.Expect(names(filtered)).To(gomega.Equal([]string{"legacy-west", "busy-east", "mystery"}))

		passing, rejections := eligibility.FilterEligible(filtered, eligibility.Rules{
			Enabled:               true,
			EnforceMinAge:         true,
			MinAgeYears:           5,
			EnforceMaxUtilization: true,
			MaxUtilizationPercent: 50,
		})
		gomega.Expect(names(passing)).To(gomega.Equal([]string{"legacy-west"}))
		gomega.Expect(rejections).To(gomega.HaveLen(2))

		result := scoring.ScoreAll(passing, scoring.Weights{"Age": 0.6, "Utilization": 0.4}, scoring.Options{})
		gomega.Expect(result.Rankings).To(gomega.HaveLen(1))
		gomega.Expect(result.Rankings[0].Identity).To(gomega.Equal("legacy-west"))
	})

	ginkgo.It("ranks an old idle cluster above an unknown one above a young busy one", func() {
		population := []*cluster.Cluster{
			testinghelpers.NewCluster("r1").WithAgeYears(8).WithCPUUtilization(10).Build(),
			testinghelpers.NewCluster("r2").WithAgeYears(4).WithCPUUtilization(50).Build(),
			testinghelpers.NewCluster("r3").Build(),
		}

		result := scoring.ScoreAll(population, scoring.Weights{"age": 0.5, "utilization": 0.5}, scoring.Options{})
		gomega.Expect(rankingNames(result)).To(gomega.Equal([]string{"r1", "r3", "r2"}))
	})

	ginkgo.It("reports complete gate reasons per cluster", func() {
		rules := eligibility.Rules{
			Enabled:               true,
			EnforceMinAge:         true,
			MinAgeYears:           6,
			EnforceMaxUtilization: true,
			MaxUtilizationPercent: 30,
		}

		pass, reasons := eligibility.IsEligible(
			testinghelpers.NewCluster("x").WithAgeYears(5).WithCPUUtilization(20).Build(), rules)
		gomega.Expect(pass).To(gomega.BeFalse())
		gomega.Expect(reasons).To(gomega.ConsistOf(gomega.ContainSubstring("ClusterAgeYears")))

		pass, reasons = eligibility.IsEligible(
			testinghelpers.NewCluster("y").WithAgeYears(7).WithCPUUtilization(40).Build(), rules)
		gomega.Expect(pass).To(gomega.BeFalse())
		gomega.Expect(reasons).To(gomega.ConsistOf(gomega.ContainSubstring("CPUUtilizationPercent")))

		pass, reasons = eligibility.IsEligible(
			testinghelpers.NewCluster("z").WithAgeYears(7).WithCPUUtilization(20).Build(), rules)
		gomega.Expect(pass).To(gomega.BeTrue())
		gomega.Expect(reasons).To(gomega.BeEmpty())
	})

	ginkgo.It("excludes a normalized region together with young or unknown ages", func() {
		filtered := criteria.Apply(inventory, criteria.Criteria{
			StringNotIn:  map[string][]string{"Region": {"westus2"}},
			DoubleRanges: map[string]criteria.FloatRange{"AgeYears": {Min: pointer.Float64(5)}},
		})
		gomega.Expect(names(filtered)).To(gomega.Equal([]string{"busy-east"}))
	})

	ginkgo.It("folds plan items over the full inventory", func() {
		plan := criteria.Plan{
			Operator: criteria.Intersect,
			Items: []criteria.Criteria{
				{DoubleRanges: map[string]criteria.FloatRange{"ClusterAgeYears": {Min: pointer.Float64(5)}}},
				{DoubleRanges: map[string]criteria.FloatRange{"MonthlyCostUSD": {Min: pointer.Float64(35000)}}},
			},
			SortBy:    "MonthlyCostUSD",
			SortOrder: criteria.Descending,
		}
		gomega.Expect(names(criteria.EvaluatePlan(inventory, plan))).To(gomega.Equal([]string{"legacy-west"}))
	})

	ginkgo.It("explanations reconstruct the ranked score exactly", func() {
		weights := scoring.Weights{"Age": 2, "Utilization": 1, "MonthlyCostUSD": 1}

		result := scoring.ScoreAll(inventory, weights, scoring.Options{Winsorize: true})
		for _, entry := range result.Rankings {
			breakdown, err := scoring.Explain(inventory, entry.Identity, weights, scoring.Options{Winsorize: true})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(*breakdown).To(gomega.Equal(entry))
		}
	})
})

func names(clusters []*cluster.Cluster) []string {
	result := []string{}
	for _, c := range clusters {
		result = append(result, c.Identity())
	}
	return result
}

func rankingNames(result *scoring.Result) []string {
	order := []string{}
	for _, b := range result.Rankings {
		order = append(order, b.Identity)
	}
	return order
}
