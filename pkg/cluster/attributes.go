package cluster

import (
	"sort"
	"strings"
)

// Kind partitions attributes by primitive type.
type Kind string

const (
	KindString Kind = "string"
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindDouble Kind = "double"
)

// Field describes one resolvable attribute.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

type StringGetter func(*Cluster) *string
type BoolGetter func(*Cluster) *bool
type IntGetter func(*Cluster) *int64
type FloatGetter func(*Cluster) *float64

// registry is the process-wide attribute table. It is populated once by
// newRegistry below and never written again, so concurrent readers need no
// locking.
type registry struct {
	strings map[string]StringGetter
	bools   map[string]BoolGetter
	ints    map[string]IntGetter
	floats  map[string]FloatGetter

	// canonical attribute name, keyed by lower-cased name or alias
	names map[string]string
	kinds map[string]Kind
}

var attributes = newRegistry()

func newRegistry() *registry {
	r := &registry{
		strings: map[string]StringGetter{
			"Name":               func(c *Cluster) *string { return c.Name },
			"ClusterID":          func(c *Cluster) *string { return c.ClusterID },
			"SubscriptionID":     func(c *Cluster) *string { return c.SubscriptionID },
			"ResourceGroup":      func(c *Cluster) *string { return c.ResourceGroup },
			"Provider":           func(c *Cluster) *string { return c.Provider },
			"Environment":        func(c *Cluster) *string { return c.Environment },
			"Tier":               func(c *Cluster) *string { return c.Tier },
			"OwnerTeam":          func(c *Cluster) *string { return c.OwnerTeam },
			"OwnerContact":       func(c *Cluster) *string { return c.OwnerContact },
			"CostCenter":         func(c *Cluster) *string { return c.CostCenter },
			"BusinessUnit":       func(c *Cluster) *string { return c.BusinessUnit },
			"ServiceName":        func(c *Cluster) *string { return c.ServiceName },
			"Region":             func(c *Cluster) *string { return c.Region },
			"AvailabilityZone":   func(c *Cluster) *string { return c.AvailabilityZone },
			"Datacenter":         func(c *Cluster) *string { return c.Datacenter },
			"Geo":                func(c *Cluster) *string { return c.Geo },
			"KubernetesVersion":  func(c *Cluster) *string { return c.KubernetesVersion },
			"NodeImageVersion":   func(c *Cluster) *string { return c.NodeImageVersion },
			"SupportState":       func(c *Cluster) *string { return c.SupportState },
			"LifecycleState":     func(c *Cluster) *string { return c.LifecycleState },
			"HardwareGeneration": func(c *Cluster) *string { return c.HardwareGeneration },
			"NetworkTopology":    func(c *Cluster) *string { return c.NetworkTopology },
			"StorageClass":       func(c *Cluster) *string { return c.StorageClass },
			"MigrationTarget":    func(c *Cluster) *string { return c.MigrationTarget },
			"RetirementWave":     func(c *Cluster) *string { return c.RetirementWave },
		},
		bools: map[string]BoolGetter{
			"ControlPlaneHealthy":    func(c *Cluster) *bool { return c.ControlPlaneHealthy },
			"EtcdHealthy":            func(c *Cluster) *bool { return c.EtcdHealthy },
			"MonitoringHealthy":      func(c *Cluster) *bool { return c.MonitoringHealthy },
			"AutoscalingEnabled":     func(c *Cluster) *bool { return c.AutoscalingEnabled },
			"SpotCapable":            func(c *Cluster) *bool { return c.SpotCapable },
			"HasGPUNodes":            func(c *Cluster) *bool { return c.HasGPUNodes },
			"HasStatefulWorkloads":   func(c *Cluster) *bool { return c.HasStatefulWorkloads },
			"HasPersistentVolumes":   func(c *Cluster) *bool { return c.HasPersistentVolumes },
			"RunsProductionTraffic":  func(c *Cluster) *bool { return c.RunsProductionTraffic },
			"RunsBatchWorkloads":     func(c *Cluster) *bool { return c.RunsBatchWorkloads },
			"RunsSystemServices":     func(c *Cluster) *bool { return c.RunsSystemServices },
			"UpgradeBlocked":         func(c *Cluster) *bool { return c.UpgradeBlocked },
			"InMaintenanceWindow":    func(c *Cluster) *bool { return c.InMaintenanceWindow },
			"MigrationApproved":      func(c *Cluster) *bool { return c.MigrationApproved },
			"TaggedForRetirement":    func(c *Cluster) *bool { return c.TaggedForRetirement },
			"ComplianceHold":         func(c *Cluster) *bool { return c.ComplianceHold },
			"DisasterRecoveryTarget": func(c *Cluster) *bool { return c.DisasterRecoveryTarget },
			"SharedTenancy":          func(c *Cluster) *bool { return c.SharedTenancy },
		},
		ints: map[string]IntGetter{
			"CreatedYear":             func(c *Cluster) *int64 { return c.CreatedYear },
			"LastUpgradeAgeDays":      func(c *Cluster) *int64 { return c.LastUpgradeAgeDays },
			"NodeImageAgeDays":        func(c *Cluster) *int64 { return c.NodeImageAgeDays },
			"NodeCount":               func(c *Cluster) *int64 { return c.NodeCount },
			"MaxNodeCount":            func(c *Cluster) *int64 { return c.MaxNodeCount },
			"PodCount":                func(c *Cluster) *int64 { return c.PodCount },
			"PodCapacity":             func(c *Cluster) *int64 { return c.PodCapacity },
			"NamespaceCount":          func(c *Cluster) *int64 { return c.NamespaceCount },
			"WorkloadCount":           func(c *Cluster) *int64 { return c.WorkloadCount },
			"IncidentCount90d":        func(c *Cluster) *int64 { return c.IncidentCount90d },
			"SLOBreaches90d":          func(c *Cluster) *int64 { return c.SLOBreaches90d },
			"HardwareFailureCount":    func(c *Cluster) *int64 { return c.HardwareFailureCount },
			"PendingSecurityPatches":  func(c *Cluster) *int64 { return c.PendingSecurityPatches },
			"DeprecatedAPIUsageCount": func(c *Cluster) *int64 { return c.DeprecatedAPIUsageCount },
			"CertificateExpiryDays":   func(c *Cluster) *int64 { return c.CertificateExpiryDays },
			"DaysSinceLastIncident":   func(c *Cluster) *int64 { return c.DaysSinceLastIncident },
			"TicketBacklogCount":      func(c *Cluster) *int64 { return c.TicketBacklogCount },
			"ActiveUserCount":         func(c *Cluster) *int64 { return c.ActiveUserCount },
		},
		floats: map[string]FloatGetter{
			"ClusterAgeYears":              func(c *Cluster) *float64 { return c.ClusterAgeYears },
			"TotalCPUCores":                func(c *Cluster) *float64 { return c.TotalCPUCores },
			"UsedCPUCores":                 func(c *Cluster) *float64 { return c.UsedCPUCores },
			"AllocatableCPUCores":          func(c *Cluster) *float64 { return c.AllocatableCPUCores },
			"TotalMemoryGiB":               func(c *Cluster) *float64 { return c.TotalMemoryGiB },
			"UsedMemoryGiB":                func(c *Cluster) *float64 { return c.UsedMemoryGiB },
			"AllocatableMemoryGiB":         func(c *Cluster) *float64 { return c.AllocatableMemoryGiB },
			"StorageTotalTiB":              func(c *Cluster) *float64 { return c.StorageTotalTiB },
			"StorageUsedTiB":               func(c *Cluster) *float64 { return c.StorageUsedTiB },
			"CPUUtilizationPercent":        func(c *Cluster) *float64 { return c.CPUUtilizationPercent },
			"MemoryUtilizationPercent":     func(c *Cluster) *float64 { return c.MemoryUtilizationPercent },
			"PeakCPUUtilizationPercent":    func(c *Cluster) *float64 { return c.PeakCPUUtilizationPercent },
			"PeakMemoryUtilizationPercent": func(c *Cluster) *float64 { return c.PeakMemoryUtilizationPercent },
			"NetworkIngressGbps":           func(c *Cluster) *float64 { return c.NetworkIngressGbps },
			"NetworkEgressGbps":            func(c *Cluster) *float64 { return c.NetworkEgressGbps },
			"RequestRatePerSecond":         func(c *Cluster) *float64 { return c.RequestRatePerSecond },
			"HealthScore":                  func(c *Cluster) *float64 { return c.HealthScore },
			"AvailabilityPercent":          func(c *Cluster) *float64 { return c.AvailabilityPercent },
			"ErrorRatePercent":             func(c *Cluster) *float64 { return c.ErrorRatePercent },
			"MonthlyCostUSD":               func(c *Cluster) *float64 { return c.MonthlyCostUSD },
			"CostPerCoreUSD":               func(c *Cluster) *float64 { return c.CostPerCoreUSD },
			"EnergyKWhPerMonth":            func(c *Cluster) *float64 { return c.EnergyKWhPerMonth },
			"CarbonKgPerMonth":             func(c *Cluster) *float64 { return c.CarbonKgPerMonth },
		},
		names: map[string]string{},
		kinds: map[string]Kind{},
	}

	for name := range r.strings {
		r.register(name, KindString)
	}
	for name := range r.bools {
		r.register(name, KindBool)
	}
	for name := range r.ints {
		r.register(name, KindInt)
	}
	for name := range r.floats {
		r.register(name, KindDouble)
	}

	// ergonomic aliases used by the request-parsing collaborator
	r.alias("Age", "ClusterAgeYears")
	r.alias("AgeYears", "ClusterAgeYears")
	r.alias("Utilization", "CPUUtilizationPercent")
	r.alias("UtilizationPercent", "CPUUtilizationPercent")
	r.alias("CPUUtilization", "CPUUtilizationPercent")
	r.alias("MemoryUtilization", "MemoryUtilizationPercent")
	r.alias("Location", "Region")
	r.alias("Zone", "AvailabilityZone")
	r.alias("ID", "ClusterID")
	r.alias("Cost", "MonthlyCostUSD")
	r.alias("MonthlyCost", "MonthlyCostUSD")
	r.alias("Health", "HealthScore")
	r.alias("Version", "KubernetesVersion")
	r.alias("Nodes", "NodeCount")
	r.alias("Pods", "PodCount")

	return r
}

func (r *registry) register(name string, kind Kind) {
	r.names[strings.ToLower(name)] = name
	r.kinds[name] = kind
}

func (r *registry) alias(alias, target string) {
	r.names[strings.ToLower(alias)] = target
}

// lookup maps a caller-supplied field name or alias to its canonical name.
// Lookup is case-insensitive.
func (r *registry) lookup(name string) (string, bool) {
	canonical, ok := r.names[strings.ToLower(name)]
	return canonical, ok
}

// Resolve maps a field name or alias to its canonical Field descriptor.
func Resolve(name string) (Field, bool) {
	canonical, ok := attributes.lookup(name)
	if !ok {
		return Field{}, false
	}
	return Field{Name: canonical, Kind: attributes.kinds[canonical]}, true
}

// StringAccessor returns the typed getter for a string attribute.
func StringAccessor(name string) (StringGetter, bool) {
	canonical, ok := attributes.lookup(name)
	if !ok {
		return nil, false
	}
	getter, ok := attributes.strings[canonical]
	return getter, ok
}

// BoolAccessor returns the typed getter for a boolean attribute.
func BoolAccessor(name string) (BoolGetter, bool) {
	canonical, ok := attributes.lookup(name)
	if !ok {
		return nil, false
	}
	getter, ok := attributes.bools[canonical]
	return getter, ok
}

// IntAccessor returns the typed getter for an integer attribute.
func IntAccessor(name string) (IntGetter, bool) {
	canonical, ok := attributes.lookup(name)
	if !ok {
		return nil, false
	}
	getter, ok := attributes.ints[canonical]
	return getter, ok
}

// FloatAccessor returns the typed getter for a double attribute.
func FloatAccessor(name string) (FloatGetter, bool) {
	canonical, ok := attributes.lookup(name)
	if !ok {
		return nil, false
	}
	getter, ok := attributes.floats[canonical]
	return getter, ok
}

// NumericAccessor resolves integer and double attributes uniformly as float64
// getters. Integer values are widened; nil stays nil.
func NumericAccessor(name string) (FloatGetter, bool) {
	if getter, ok := FloatAccessor(name); ok {
		return getter, true
	}
	getter, ok := IntAccessor(name)
	if !ok {
		return nil, false
	}
	return func(c *Cluster) *float64 {
		v := getter(c)
		if v == nil {
			return nil
		}
		f := float64(*v)
		return &f
	}, true
}

// ListFields enumerates every registered attribute, sorted by name. Aliases
// are not included.
func ListFields() []Field {
	fields := make([]Field, 0, len(attributes.kinds))
	for name, kind := range attributes.kinds {
		fields = append(fields, Field{Name: name, Kind: kind})
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})
	return fields
}
