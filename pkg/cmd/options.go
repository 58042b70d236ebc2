package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"open-cluster-management.io/retirement/pkg/cluster"
	"open-cluster-management.io/retirement/pkg/criteria"
	"open-cluster-management.io/retirement/pkg/eligibility"
	"open-cluster-management.io/retirement/pkg/scoring"
)

// Config is the structured request produced by the upstream parsing layer:
// filter criteria or a multi-criteria plan, eligibility rules, a weight
// vector and scoring options. Everything is optional.
type Config struct {
	Criteria *criteria.Criteria `json:"criteria,omitempty"`
	Plan     *criteria.Plan     `json:"plan,omitempty"`
	Rules    *eligibility.Rules `json:"rules,omitempty"`
	Weights  scoring.Weights    `json:"weights,omitempty"`
	Options  scoring.Options    `json:"options,omitempty"`
}

// Options holds the flags shared by every subcommand.
type Options struct {
	ClustersFile string
	ConfigFile   string
}

func (o *Options) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.ClustersFile, "clusters", "", "Path to a JSON file holding the cluster inventory snapshot.")
	flags.StringVar(&o.ConfigFile, "config", "", "Path to a YAML file holding criteria, rules, weights and options.")
}

func (o *Options) LoadClusters() ([]*cluster.Cluster, error) {
	if o.ClustersFile == "" {
		return nil, fmt.Errorf("--clusters is required")
	}
	data, err := os.ReadFile(o.ClustersFile)
	if err != nil {
		return nil, fmt.Errorf("reading clusters file: %w", err)
	}
	clusters := []*cluster.Cluster{}
	if err := json.Unmarshal(data, &clusters); err != nil {
		return nil, fmt.Errorf("parsing clusters file %q: %w", o.ClustersFile, err)
	}
	return clusters, nil
}

func (o *Options) LoadConfig() (*Config, error) {
	config := &Config{}
	if o.ConfigFile == "" {
		return config, nil
	}
	data, err := os.ReadFile(o.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", o.ConfigFile, err)
	}
	if err := config.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	return config, nil
}

// Narrow applies the configured plan or criteria and the eligibility gate,
// returning the surviving population plus any rejections.
func (c *Config) Narrow(clusters []*cluster.Cluster) ([]*cluster.Cluster, []eligibility.Rejection) {
	population := clusters
	switch {
	case c.Plan != nil:
		population = criteria.EvaluatePlan(population, *c.Plan)
	case c.Criteria != nil:
		population = criteria.Apply(population, *c.Criteria)
	}

	if c.Rules == nil {
		return population, nil
	}
	return eligibility.FilterEligible(population, *c.Rules)
}
