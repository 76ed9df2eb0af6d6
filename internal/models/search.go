package models

import "time"

// CollegeFilter encapsulates one search submission plus presentation state.
type CollegeFilter struct {
	Thresholds
	States   []string
	Page     int
	PageSize int
}

// Pagination describes a page of results.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// StateCount is one entry of the state filter options.
type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// Session holds the per-visitor selection list. The core never reads it.
type Session struct {
	ID        string    `json:"id"`
	Selected  []string  `json:"selected"`
	UpdatedAt time.Time `json:"updated_at"`
}
