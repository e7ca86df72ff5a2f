package model

const (
	FeatureStatusActive   = "active"
	FeatureStatusUpcoming = "upcoming"
)

type Feature struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	SortOrder   int    `json:"sort_order"`
	Link        string `json:"link"`
	Ctime       int64  `json:"ctime"`
	Mtime       int64  `json:"mtime"`
}
