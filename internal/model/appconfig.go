package model

// AppConfig holds application-wide preferences.
type AppConfig struct {
	// Attachment editor defaults
	TakeSelection     bool `json:"take_selection"`     // seed references from the current selection
	CreateTransaction bool `json:"create_transaction"` // wrap each edit in an undoable transaction
	Decimals          int  `json:"decimals"`           // digits shown in super placement fields

	// Application preferences
	RecentDocuments []string `json:"recent_documents"`
	Theme           string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		TakeSelection:     true,
		CreateTransaction: true,
		Decimals:          2,
		RecentDocuments:   []string{},
		Theme:             "system",
	}
}

const maxRecentDocuments = 10

// AddRecentDocument moves path to the front of the recent list.
func (c *AppConfig) AddRecentDocument(path string) {
	out := []string{path}
	for _, p := range c.RecentDocuments {
		if p != path {
			out = append(out, p)
		}
	}
	if len(out) > maxRecentDocuments {
		out = out[:maxRecentDocuments]
	}
	c.RecentDocuments = out
}
