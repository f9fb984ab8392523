// Package memory defines the persisted user memory and the contexts derived
// from it for strategy decisions.
package memory

// Retention caps for the persisted memory.
const (
	MaxSearchRecords = 1000
	MaxFrequentSites = 50
)

// Record is one remembered search.
type Record struct {
	Query       string `json:"query"`
	Category    string `json:"category,omitempty"`
	ResultCount int    `json:"result_count"`
	ClickedURL  string `json:"clicked_url,omitempty"`
	// Timestamp is unix seconds, same convention as domain.Page.
	Timestamp int64 `json:"timestamp"`
}

// Memory is the full persisted user memory blob.
type Memory struct {
	SearchHistory       []Record           `json:"search_history"`
	FrequentSites       []string           `json:"frequent_sites"`
	CategoryPreferences map[string]float64 `json:"category_preferences"`
}

// BrowsingContext summarizes recent user behavior for the decision provider.
type BrowsingContext struct {
	RecentCategories []string
	FrequentSites    []string
	TimeOfDay        string
	DayOfWeek        string
}

// SearchHistory is the recent-queries view handed to the decision provider.
type SearchHistory struct {
	Queries     []string
	ClickedURLs []string
}

// DefaultCategoryPreferences is the neutral prior per known category.
func DefaultCategoryPreferences() map[string]float64 {
	return map[string]float64{
		"ecommerce": 0.5,
		"news":      0.5,
		"docs":      0.5,
		"social":    0.5,
		"other":     0.5,
	}
}
