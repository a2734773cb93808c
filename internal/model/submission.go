package model

import "time"

// Status is the review state of a contact submission.
type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
)

// Valid reports whether s is one of the two known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusReviewed
}

// Toggled returns the opposite status. The admin panel exposes a single
// control that flips pending<->reviewed; there is no third state.
func (s Status) Toggled() Status {
	if s == StatusReviewed {
		return StatusPending
	}
	return StatusReviewed
}

// Submission represents a single contact-form entry with its review state.
// All fields except Status/ReviewedBy/ReviewedAt are immutable after creation.
type Submission struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Subject    string     `json:"subject"`
	Message    string     `json:"message"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ReviewedBy *string    `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

// SortBy selects the column used to order submission listings.
type SortBy string

const (
	SortByCreatedAt SortBy = "created_at"
	SortByName      SortBy = "name"
	SortBySubject   SortBy = "subject"
)

func (s SortBy) Valid() bool {
	switch s {
	case SortByCreatedAt, SortByName, SortBySubject:
		return true
	}
	return false
}

// SortOrder is the listing direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

// StatusFilter restricts a listing to submissions in a given state.
type StatusFilter string

const (
	FilterAll      StatusFilter = "all"
	FilterPending  StatusFilter = "pending"
	FilterReviewed StatusFilter = "reviewed"
)

func (f StatusFilter) Valid() bool {
	switch f {
	case FilterAll, FilterPending, FilterReviewed:
		return true
	}
	return false
}

// SubmissionListOptions carries sort and filter parameters for listing
// submissions. Zero values fall back to created_at descending, all statuses.
type SubmissionListOptions struct {
	SortBy       SortBy
	SortOrder    SortOrder
	StatusFilter StatusFilter
}

// Normalized returns a copy with zero/invalid fields replaced by defaults.
func (o SubmissionListOptions) Normalized() SubmissionListOptions {
	if !o.SortBy.Valid() {
		o.SortBy = SortByCreatedAt
	}
	if !o.SortOrder.Valid() {
		o.SortOrder = SortDesc
	}
	if !o.StatusFilter.Valid() {
		o.StatusFilter = FilterAll
	}
	return o
}
