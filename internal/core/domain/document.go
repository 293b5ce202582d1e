package domain

import "time"

// CategoryUnknown is the sentinel category assigned whenever the
// classifier cannot produce a label. A stored document always carries
// either a model-predicted label or this sentinel, never an empty one.
const CategoryUnknown = "unknown"

// MaxTags bounds how many derived tags a document carries.
const MaxTags = 5

type Document struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mime_type"`
	StoragePath string    `json:"storage_path"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// SearchFilter composes the optional document search predicates. All
// supplied predicates are conjunctive; Query alone matches disjunctively
// across content, filename and tags.
type SearchFilter struct {
	Query    string
	Category string
	DateFrom *time.Time
	DateTo   *time.Time
}

func (f SearchFilter) Empty() bool {
	return f.Query == "" && f.Category == "" && f.DateFrom == nil && f.DateTo == nil
}
