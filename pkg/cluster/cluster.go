package cluster

// Cluster is a flat snapshot of one managed compute cluster as reported by the
// inventory collector. Every attribute is nullable: a nil pointer means the
// collector had no value for it, which is distinct from zero or false.
type Cluster struct {
	// Identity
	Name           *string `json:"name,omitempty"`
	ClusterID      *string `json:"clusterId,omitempty"`
	SubscriptionID *string `json:"subscriptionId,omitempty"`
	ResourceGroup  *string `json:"resourceGroup,omitempty"`
	Provider       *string `json:"provider,omitempty"`
	Environment    *string `json:"environment,omitempty"`
	Tier           *string `json:"tier,omitempty"`
	OwnerTeam      *string `json:"ownerTeam,omitempty"`
	OwnerContact   *string `json:"ownerContact,omitempty"`
	CostCenter     *string `json:"costCenter,omitempty"`
	BusinessUnit   *string `json:"businessUnit,omitempty"`
	ServiceName    *string `json:"serviceName,omitempty"`

	// Location
	Region           *string `json:"region,omitempty"`
	AvailabilityZone *string `json:"availabilityZone,omitempty"`
	Datacenter       *string `json:"datacenter,omitempty"`
	Geo              *string `json:"geo,omitempty"`

	// Lifecycle and age
	KubernetesVersion  *string  `json:"kubernetesVersion,omitempty"`
	NodeImageVersion   *string  `json:"nodeImageVersion,omitempty"`
	SupportState       *string  `json:"supportState,omitempty"`
	LifecycleState     *string  `json:"lifecycleState,omitempty"`
	HardwareGeneration *string  `json:"hardwareGeneration,omitempty"`
	NetworkTopology    *string  `json:"networkTopology,omitempty"`
	StorageClass       *string  `json:"storageClass,omitempty"`
	MigrationTarget    *string  `json:"migrationTarget,omitempty"`
	RetirementWave     *string  `json:"retirementWave,omitempty"`
	ClusterAgeYears    *float64 `json:"clusterAgeYears,omitempty"`
	CreatedYear        *int64   `json:"createdYear,omitempty"`
	LastUpgradeAgeDays *int64   `json:"lastUpgradeAgeDays,omitempty"`
	NodeImageAgeDays   *int64   `json:"nodeImageAgeDays,omitempty"`

	// Capacity and utilization
	NodeCount                    *int64   `json:"nodeCount,omitempty"`
	MaxNodeCount                 *int64   `json:"maxNodeCount,omitempty"`
	PodCount                     *int64   `json:"podCount,omitempty"`
	PodCapacity                  *int64   `json:"podCapacity,omitempty"`
	NamespaceCount               *int64   `json:"namespaceCount,omitempty"`
	WorkloadCount                *int64   `json:"workloadCount,omitempty"`
	TotalCPUCores                *float64 `json:"totalCpuCores,omitempty"`
	UsedCPUCores                 *float64 `json:"usedCpuCores,omitempty"`
	AllocatableCPUCores          *float64 `json:"allocatableCpuCores,omitempty"`
	TotalMemoryGiB               *float64 `json:"totalMemoryGiB,omitempty"`
	UsedMemoryGiB                *float64 `json:"usedMemoryGiB,omitempty"`
	AllocatableMemoryGiB         *float64 `json:"allocatableMemoryGiB,omitempty"`
	StorageTotalTiB              *float64 `json:"storageTotalTiB,omitempty"`
	StorageUsedTiB               *float64 `json:"storageUsedTiB,omitempty"`
	CPUUtilizationPercent        *float64 `json:"cpuUtilizationPercent,omitempty"`
	MemoryUtilizationPercent     *float64 `json:"memoryUtilizationPercent,omitempty"`
	PeakCPUUtilizationPercent    *float64 `json:"peakCpuUtilizationPercent,omitempty"`
	PeakMemoryUtilizationPercent *float64 `json:"peakMemoryUtilizationPercent,omitempty"`
	NetworkIngressGbps           *float64 `json:"networkIngressGbps,omitempty"`
	NetworkEgressGbps            *float64 `json:"networkEgressGbps,omitempty"`
	RequestRatePerSecond         *float64 `json:"requestRatePerSecond,omitempty"`

	// Health
	HealthScore             *float64 `json:"healthScore,omitempty"`
	AvailabilityPercent     *float64 `json:"availabilityPercent,omitempty"`
	ErrorRatePercent        *float64 `json:"errorRatePercent,omitempty"`
	IncidentCount90d        *int64   `json:"incidentCount90d,omitempty"`
	SLOBreaches90d          *int64   `json:"sloBreaches90d,omitempty"`
	HardwareFailureCount    *int64   `json:"hardwareFailureCount,omitempty"`
	PendingSecurityPatches  *int64   `json:"pendingSecurityPatches,omitempty"`
	DeprecatedAPIUsageCount *int64   `json:"deprecatedApiUsageCount,omitempty"`
	CertificateExpiryDays   *int64   `json:"certificateExpiryDays,omitempty"`
	DaysSinceLastIncident   *int64   `json:"daysSinceLastIncident,omitempty"`
	TicketBacklogCount      *int64   `json:"ticketBacklogCount,omitempty"`
	ActiveUserCount         *int64   `json:"activeUserCount,omitempty"`
	ControlPlaneHealthy     *bool    `json:"controlPlaneHealthy,omitempty"`
	EtcdHealthy             *bool    `json:"etcdHealthy,omitempty"`
	MonitoringHealthy       *bool    `json:"monitoringHealthy,omitempty"`

	// Workload flags
	AutoscalingEnabled     *bool `json:"autoscalingEnabled,omitempty"`
	SpotCapable            *bool `json:"spotCapable,omitempty"`
	HasGPUNodes            *bool `json:"hasGpuNodes,omitempty"`
	HasStatefulWorkloads   *bool `json:"hasStatefulWorkloads,omitempty"`
	HasPersistentVolumes   *bool `json:"hasPersistentVolumes,omitempty"`
	RunsProductionTraffic  *bool `json:"runsProductionTraffic,omitempty"`
	RunsBatchWorkloads     *bool `json:"runsBatchWorkloads,omitempty"`
	RunsSystemServices     *bool `json:"runsSystemServices,omitempty"`
	UpgradeBlocked         *bool `json:"upgradeBlocked,omitempty"`
	InMaintenanceWindow    *bool `json:"inMaintenanceWindow,omitempty"`
	MigrationApproved      *bool `json:"migrationApproved,omitempty"`
	TaggedForRetirement    *bool `json:"taggedForRetirement,omitempty"`
	ComplianceHold         *bool `json:"complianceHold,omitempty"`
	DisasterRecoveryTarget *bool `json:"disasterRecoveryTarget,omitempty"`
	SharedTenancy          *bool `json:"sharedTenancy,omitempty"`

	// Cost
	MonthlyCostUSD    *float64 `json:"monthlyCostUsd,omitempty"`
	CostPerCoreUSD    *float64 `json:"costPerCoreUsd,omitempty"`
	EnergyKWhPerMonth *float64 `json:"energyKwhPerMonth,omitempty"`
	CarbonKgPerMonth  *float64 `json:"carbonKgPerMonth,omitempty"`
}

// Identity returns the stable identifier used to key a cluster across filter
// plans and score lookups: ClusterID when present, otherwise Name, otherwise
// the empty string.
func (c *Cluster) Identity() string {
	if c == nil {
		return ""
	}
	if c.ClusterID != nil && *c.ClusterID != "" {
		return *c.ClusterID
	}
	if c.Name != nil {
		return *c.Name
	}
	return ""
}
