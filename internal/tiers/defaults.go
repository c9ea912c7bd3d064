// Package tiers holds the built-in service tier catalog. It seeds fresh
// deployments and serves as the fallback when the tier store is unreachable.
package tiers

import "github.com/gradeport/gradeport/internal/models"

// DefaultCatalog returns the built-in tier catalog for every supported
// grading company, in display order.
func DefaultCatalog() []models.ServiceTier {
	return []models.ServiceTier{
		{Company: "psa", TierID: "walkthrough", Name: "Walk-through", Turnaround: "2 business days", Price: "$600/card", Description: "Fastest service", Order: 1},
		{Company: "psa", TierID: "super_express", Name: "Super Express", Turnaround: "3 business days", Price: "$300/card", Description: "Express service", Order: 2},
		{Company: "psa", TierID: "express", Name: "Express", Turnaround: "5 business days", Price: "$150/card", Description: "Quick turnaround", Order: 3},
		{Company: "psa", TierID: "regular", Name: "Regular", Turnaround: "15 business days", Price: "$75/card", Description: "Standard service", Order: 4},
		{Company: "psa", TierID: "value", Name: "Value", Turnaround: "30 business days", Price: "$25/card", Description: "Economy option", Order: 5},
		{Company: "psa", TierID: "bulk", Name: "Bulk", Turnaround: "45+ business days", Price: "$20/card", Description: "Bulk submissions (20+ cards)", Order: 6},

		{Company: "bgs", TierID: "premium", Name: "Premium", Turnaround: "5 business days", Price: "$200/card", Description: "Fastest service", Order: 1},
		{Company: "bgs", TierID: "express", Name: "Express", Turnaround: "10 business days", Price: "$100/card", Description: "Express service", Order: 2},
		{Company: "bgs", TierID: "standard", Name: "Standard", Turnaround: "30 business days", Price: "$50/card", Description: "Standard service", Order: 3},
		{Company: "bgs", TierID: "economy", Name: "Economy", Turnaround: "60 business days", Price: "$25/card", Description: "Budget option", Order: 4},

		{Company: "sgc", TierID: "walkthrough", Name: "Walk-through", Turnaround: "1 business day", Price: "$500/card", Description: "Same day service", Order: 1},
		{Company: "sgc", TierID: "next_day", Name: "Next Day", Turnaround: "2 business days", Price: "$250/card", Description: "Next business day", Order: 2},
		{Company: "sgc", TierID: "2_day", Name: "2-Day", Turnaround: "2 business days", Price: "$100/card", Description: "Two day service", Order: 3},
		{Company: "sgc", TierID: "5_day", Name: "5-Day", Turnaround: "5 business days", Price: "$50/card", Description: "Five day service", Order: 4},
		{Company: "sgc", TierID: "10_day", Name: "10-Day", Turnaround: "10 business days", Price: "$30/card", Description: "Ten day service", Order: 5},
		{Company: "sgc", TierID: "20_day", Name: "20-Day", Turnaround: "20 business days", Price: "$20/card", Description: "Twenty day service", Order: 6},
		{Company: "sgc", TierID: "bulk", Name: "Bulk", Turnaround: "30+ business days", Price: "$15/card", Description: "Bulk submissions", Order: 7},

		{Company: "cgc", TierID: "walkthrough", Name: "Walk-through", Turnaround: "3 business days", Price: "$400/card", Description: "Fastest service", Order: 1},
		{Company: "cgc", TierID: "express", Name: "Express", Turnaround: "7 business days", Price: "$150/card", Description: "Express service", Order: 2},
		{Company: "cgc", TierID: "standard", Name: "Standard", Turnaround: "20 business days", Price: "$50/card", Description: "Standard service", Order: 3},
		{Company: "cgc", TierID: "economy", Name: "Economy", Turnaround: "40 business days", Price: "$25/card", Description: "Budget option", Order: 4},
	}
}

// DefaultCatalogFor returns the built-in tiers for one company.
func DefaultCatalogFor(company string) []models.ServiceTier {
	var out []models.ServiceTier
	for _, tier := range DefaultCatalog() {
		if tier.Company == company {
			out = append(out, tier)
		}
	}
	return out
}
