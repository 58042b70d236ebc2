package benchmark

import (
	"fmt"
	"testing"

	"open-cluster-management.io/retirement/pkg/cluster"
	"open-cluster-management.io/retirement/pkg/criteria"
	"open-cluster-management.io/retirement/pkg/eligibility"
	testinghelpers "open-cluster-management.io/retirement/pkg/helpers/testing"
	"open-cluster-management.io/retirement/pkg/scoring"
)

var regions = []string{"westus2", "eastus", "northeurope", "southeastasia"}

func generateClusters(num int) []*cluster.Cluster {
	clusters := make([]*cluster.Cluster, 0, num)
	for i := 0; i < num; i++ {
		clusters = append(clusters, testinghelpers.NewCluster(fmt.Sprintf("cluster-%d", i)).
			WithRegion(regions[i%len(regions)]).
			WithAgeYears(float64(i%12)).
			WithCPUUtilization(float64(i%100)).
			WithMemoryUtilization(float64((i*7)%100)).
			WithMonthlyCost(float64(1000+i*37)).
			WithIncidentCount(int64(i%9)).
			WithNodeCount(int64(3+i%50)).
			Build())
	}
	return clusters
}

func BenchmarkScoreClusters(b *testing.B) {
	weights := scoring.Weights{"Age": 0.4, "Utilization": 0.3, "MonthlyCostUSD": 0.3}
	for _, num := range []int{100, 1000, 10000} {
		clusters := generateClusters(num)
		b.Run(fmt.Sprintf("%d", num), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				scoring.ScoreAll(clusters, weights, scoring.Options{})
			}
		})
	}
}

func BenchmarkScoreClustersWinsorized(b *testing.B) {
	weights := scoring.Weights{"Age": 0.5, "Utilization": 0.5}
	clusters := generateClusters(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scoring.ScoreAll(clusters, weights, scoring.Options{Winsorize: true})
	}
}

func BenchmarkApplyCriteria(b *testing.B) {
	c := criteria.Criteria{
		StringIn:     map[string][]string{"Region": {"westus2", "eastus"}},
		DoubleRanges: map[string]criteria.FloatRange{"ClusterAgeYears": {Min: float64Ptr(5)}},
		SortBy:       "MonthlyCostUSD",
		SortOrder:    criteria.Descending,
	}
	for _, num := range []int{100, 1000, 10000} {
		clusters := generateClusters(num)
		b.Run(fmt.Sprintf("%d", num), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				criteria.Apply(clusters, c)
			}
		})
	}
}

func BenchmarkFilterEligible(b *testing.B) {
	rules := eligibility.Rules{
		Enabled:               true,
		EnforceMinAge:         true,
		MinAgeYears:           5,
		EnforceMaxUtilization: true,
		MaxUtilizationPercent: 60,
		EnforceRegionDenyList: true,
		RegionDenyList:        []string{"southeastasia"},
	}
	clusters := generateClusters(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		eligibility.FilterEligible(clusters, rules)
	}
}

func float64Ptr(f float64) *float64 { return &f }
