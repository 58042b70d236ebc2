package testing

import (
	"k8s.io/utils/pointer"

	"open-cluster-management.io/retirement/pkg/cluster"
)

// ClusterBuilder assembles cluster fixtures for tests. Attributes not set
// stay nil, matching the "null means unknown" record contract.
type ClusterBuilder struct {
	cluster *cluster.Cluster
}

func NewCluster(name string) *ClusterBuilder {
	return &ClusterBuilder{
		cluster: &cluster.Cluster{
			Name: pointer.String(name),
		},
	}
}

func (b *ClusterBuilder) WithClusterID(id string) *ClusterBuilder {
	b.cluster.ClusterID = pointer.String(id)
	return b
}

func (b *ClusterBuilder) WithRegion(region string) *ClusterBuilder {
	b.cluster.Region = pointer.String(region)
	return b
}

func (b *ClusterBuilder) WithEnvironment(environment string) *ClusterBuilder {
	b.cluster.Environment = pointer.String(environment)
	return b
}

func (b *ClusterBuilder) WithTier(tier string) *ClusterBuilder {
	b.cluster.Tier = pointer.String(tier)
	return b
}

func (b *ClusterBuilder) WithOwnerTeam(team string) *ClusterBuilder {
	b.cluster.OwnerTeam = pointer.String(team)
	return b
}

func (b *ClusterBuilder) WithSupportState(state string) *ClusterBuilder {
	b.cluster.SupportState = pointer.String(state)
	return b
}

func (b *ClusterBuilder) WithAgeYears(years float64) *ClusterBuilder {
	b.cluster.ClusterAgeYears = pointer.Float64(years)
	return b
}

func (b *ClusterBuilder) WithCPUUtilization(percent float64) *ClusterBuilder {
	b.cluster.CPUUtilizationPercent = pointer.Float64(percent)
	return b
}

func (b *ClusterBuilder) WithMemoryUtilization(percent float64) *ClusterBuilder {
	b.cluster.MemoryUtilizationPercent = pointer.Float64(percent)
	return b
}

func (b *ClusterBuilder) WithCPUCores(used, total float64) *ClusterBuilder {
	b.cluster.UsedCPUCores = pointer.Float64(used)
	b.cluster.TotalCPUCores = pointer.Float64(total)
	return b
}

func (b *ClusterBuilder) WithMemoryGiB(used, total float64) *ClusterBuilder {
	b.cluster.UsedMemoryGiB = pointer.Float64(used)
	b.cluster.TotalMemoryGiB = pointer.Float64(total)
	return b
}

func (b *ClusterBuilder) WithNodeCount(count int64) *ClusterBuilder {
	b.cluster.NodeCount = pointer.Int64(count)
	return b
}

func (b *ClusterBuilder) WithPodCounts(count, capacity int64) *ClusterBuilder {
	b.cluster.PodCount = pointer.Int64(count)
	b.cluster.PodCapacity = pointer.Int64(capacity)
	return b
}

func (b *ClusterBuilder) WithWorkloadCount(count int64) *ClusterBuilder {
	b.cluster.WorkloadCount = pointer.Int64(count)
	return b
}

func (b *ClusterBuilder) WithHealthScore(score float64) *ClusterBuilder {
	b.cluster.HealthScore = pointer.Float64(score)
	return b
}

func (b *ClusterBuilder) WithIncidentCount(count int64) *ClusterBuilder {
	b.cluster.IncidentCount90d = pointer.Int64(count)
	return b
}

func (b *ClusterBuilder) WithMonthlyCost(usd float64) *ClusterBuilder {
	b.cluster.MonthlyCostUSD = pointer.Float64(usd)
	return b
}

func (b *ClusterBuilder) WithProductionTraffic(runs bool) *ClusterBuilder {
	b.cluster.RunsProductionTraffic = pointer.Bool(runs)
	return b
}

func (b *ClusterBuilder) WithStatefulWorkloads(has bool) *ClusterBuilder {
	b.cluster.HasStatefulWorkloads = pointer.Bool(has)
	return b
}

func (b *ClusterBuilder) WithMigrationApproved(approved bool) *ClusterBuilder {
	b.cluster.MigrationApproved = pointer.Bool(approved)
	return b
}

func (b *ClusterBuilder) WithLastUpgradeAgeDays(days int64) *ClusterBuilder {
	b.cluster.LastUpgradeAgeDays = pointer.Int64(days)
	return b
}

func (b *ClusterBuilder) Build() *cluster.Cluster {
	return b.cluster
}
