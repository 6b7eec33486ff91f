package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Sample is one labeled document for replay.
type Sample struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// BuiltinSamples covers every label of the general taxonomy with one
// short document each, so the tool works without a dataset on disk.
func BuiltinSamples() []Sample {
	return []Sample{
		{Label: "Finance", Text: "Q3 Budget Report: Revenue increased 15% to $2.5M. Operating expenses $1.8M. Net profit $700K."},
		{Label: "Legal", Text: "Master Services Agreement between TechCorp Inc. and ServiceProvider LLC. Term: 24 months. Payment: $50,000 monthly."},
		{Label: "Operations", Text: "Warehouse capacity plan: consolidate the Reno facility, add a second shift, and cut average order fulfillment from 48 to 24 hours."},
		{Label: "HR", Text: "Employee Handbook: PTO Policy. Full-time employees accrue 15 days annually. Sick leave: 10 days."},
		{Label: "Product", Text: "Product roadmap H1: ship self-serve onboarding in February, usage-based pricing beta in April, mobile app GA in June."},
		{Label: "Engineering / Tech", Text: "Architecture decision record: move session storage from Redis to Postgres and keep the cache for rate limiting only. Rollout behind a feature flag."},
		{Label: "Sales", Text: "Sales Pipeline Report: 15 qualified leads, $500K potential revenue. Close rate: 25%."},
		{Label: "Marketing / Communications", Text: "Launch press release draft: announcing the new analytics suite, embargo until Tuesday 9am ET, quotes from the CEO and two design partners."},
		{Label: "Customer Success / Support", Text: "Support escalation summary: ticket #4821, customer reports sync failures since the 2.3 upgrade, workaround shipped, fix scheduled for the next patch."},
		{Label: "Strategy / Corp Dev", Text: "Acquisition memo: the target operates in an adjacent market with $4M ARR. Proposed structure is stock and cash, diligence starts next quarter."},
		{Label: "Compliance / Risk", Text: "Annual SOC 2 readiness review: two minor findings on access revocation timing, remediation owners assigned, next audit window in March."},
		{Label: "Other", Text: "Random notes about weekend plans and grocery shopping list."},
	}
}

// LoadSamples reads a JSON array of labeled samples from disk.
func LoadSamples(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	var samples []Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("parse samples %s: %w", path, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("samples file %s is empty", path)
	}
	for i, s := range samples {
		if strings.TrimSpace(s.Label) == "" || strings.TrimSpace(s.Text) == "" {
			return nil, fmt.Errorf("sample %d in %s: label and text are required", i, path)
		}
	}
	return samples, nil
}
