package domain

import "time"

// MediaItem is a book, film or other media entry tracked by the /media
// endpoints.
type MediaItem struct {
	ID             ID             `json:"id"`
	Title          string         `json:"title"`
	MediaType      string         `json:"media_type"`
	OriginalTitle  string         `json:"original_title,omitempty"`
	Description    string         `json:"description,omitempty"`
	Content        string         `json:"content,omitempty"`
	Rating         *float64       `json:"rating,omitempty"`
	PersonalRating *float64       `json:"personal_rating,omitempty"`
	Status         string         `json:"status"`
	Progress       float64        `json:"progress"`
	Notes          string         `json:"notes,omitempty"`
	ExternalID     string         `json:"external_id,omitempty"`
	ExternalSource string         `json:"external_source,omitempty"`
	PosterURL      string         `json:"poster_url,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	Tags           Tags           `json:"tags"`
	Category       string         `json:"category,omitempty"`
	OwnerID        ID             `json:"owner_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	LastAccessed   *time.Time     `json:"last_accessed,omitempty"`
}

// CreateMediaRequest is the body of POST /media. Tags travel as the comma
// string the backend stores.
type CreateMediaRequest struct {
	Title          string   `json:"title" validate:"required,max=200"`
	MediaType      string   `json:"media_type,omitempty"`
	OriginalTitle  string   `json:"original_title,omitempty"`
	Description    string   `json:"description,omitempty"`
	Rating         *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	PersonalRating *float64 `json:"personal_rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Status         string   `json:"status,omitempty"`
	Progress       float64  `json:"progress,omitempty" validate:"gte=0,lte=100"`
	Notes          string   `json:"notes,omitempty"`
	PosterURL      string   `json:"poster_url,omitempty" validate:"omitempty,url"`
	Tags           string   `json:"tags,omitempty"`
	Category       string   `json:"category,omitempty"`
}

// UpdateMediaRequest is the body of PUT /media/{id}. Nil fields are left
// untouched by the server.
type UpdateMediaRequest struct {
	Title          *string  `json:"title,omitempty" validate:"omitempty,max=200"`
	MediaType      *string  `json:"media_type,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Rating         *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	PersonalRating *float64 `json:"personal_rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Status         *string  `json:"status,omitempty"`
	Progress       *float64 `json:"progress,omitempty" validate:"omitempty,gte=0,lte=100"`
	Notes          *string  `json:"notes,omitempty"`
	Tags           *string  `json:"tags,omitempty"`
	Category       *string  `json:"category,omitempty"`
}

// MediaQuery carries the /media list filters forwarded verbatim as query
// parameters. Zero values are omitted.
type MediaQuery struct {
	Skip      int
	Limit     int
	MediaType string
	Status    string
	Category  string
	Tags      Tags
	Search    string
}
