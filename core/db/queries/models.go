package queries

import "time"

// FeatureRow is one application's batched feature read (spec.md §4.2
// fetch_features). Tags are keyed by app_id, labels/integrations by
// app_search_id; the join in FetchFeatures preserves that mapping.
type FeatureRow struct {
	AppSearchID     int64
	AppID           int64
	PriceText       string
	Labels          []string
	IntegrationKeys []string
	Tags            []string
}

// SynonymRow is one row of the label→synonyms catalog.
type SynonymRow struct {
	Label    string
	Synonyms []string
}

// AppNameRow pairs an app_id with its display name.
type AppNameRow struct {
	AppID int64
	Name  string
}

// ActiveCardRow is an active card plus the text of every linked prompt.
type ActiveCardRow struct {
	CardID  int64
	Prompts []string
}

// Card mirrors the persisted cards row.
type Card struct {
	ID               int64
	Title            string
	Description      string
	Status           int32
	NumberOfRequests int64
	CreatedAt        time.Time
}

// PromptComment mirrors the persisted card_prompts_comments row.
type PromptComment struct {
	ID          int64
	CardID      int64
	PromptText  string
	CommentText *string
	CreatedAt   time.Time
}
