package cluster

import (
	"strings"
)

// regionAliases maps canonicalized spellings of a location to the form the
// inventory reports. Keys and values are already in canonicalized form
// (lower-case, punctuation and whitespace stripped).
var regionAliases = map[string]string{
	"westus":        "westus",
	"westus2":       "westus2",
	"west2":         "westus2",
	"uswest2":       "westus2",
	"westus3":       "westus3",
	"eastus":        "eastus",
	"eastus2":       "eastus2",
	"useast2":       "eastus2",
	"centralus":     "centralus",
	"northeurope":   "northeurope",
	"westeurope":    "westeurope",
	"euwest":        "westeurope",
	"southeastasia": "southeastasia",
	"eastasia":      "eastasia",
	"japaneast":     "japaneast",
	"australiaeast": "australiaeast",
}

// locationFields are the attributes whose values are run through the region
// alias table in addition to the default canonicalization.
var locationFields = map[string]bool{
	"Region":           true,
	"AvailabilityZone": true,
	"Datacenter":       true,
	"Geo":              true,
}

func stripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '-', '_', '.', ',', '/', '(', ')':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Canonical normalizes a string attribute value for comparison: lower-case,
// punctuation and whitespace stripped, and for location fields mapped through
// the region alias table. Both sides of every string comparison in the
// criteria evaluator and the eligibility gate go through this function, so
// "West US 2" and "westus2" compare equal.
func Canonical(field, value string) string {
	canonical := stripPunctuation(strings.ToLower(strings.TrimSpace(value)))
	name, ok := attributes.lookup(field)
	if !ok {
		return canonical
	}
	if locationFields[name] {
		if mapped, ok := regionAliases[canonical]; ok {
			return mapped
		}
	}
	return canonical
}
