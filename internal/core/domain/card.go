package domain

import "time"

// Card is a knowledge card as returned by the /cards endpoints.
type Card struct {
	ID           ID         `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	ContentType  string     `json:"content_type,omitempty"`
	Summary      string     `json:"summary,omitempty"`
	Tags         Tags       `json:"tags"`
	Category     string     `json:"category,omitempty"`
	Status       string     `json:"status,omitempty"`
	Priority     int        `json:"priority"`
	IsFavorite   bool       `json:"is_favorite"`
	IsPublic     bool       `json:"is_public"`
	NotebookID   ID         `json:"notebook_id,omitempty"`
	OwnerID      ID         `json:"owner_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastAccessed *time.Time `json:"last_accessed,omitempty"`
}

// CreateCardRequest is the body of POST /cards.
type CreateCardRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	ContentType string `json:"content_type,omitempty" validate:"omitempty,oneof=markdown text html"`
	Summary     string `json:"summary,omitempty"`
	Tags        Tags   `json:"tags"`
	Category    string `json:"category,omitempty"`
	Priority    int    `json:"priority,omitempty" validate:"gte=0"`
	IsFavorite  bool   `json:"is_favorite,omitempty"`
	IsPublic    bool   `json:"is_public,omitempty"`
	NotebookID  ID     `json:"notebook_id,omitempty"`
}

// UpdateCardRequest is the body of PUT /cards/{id}. Nil fields are left
// untouched by the server.
type UpdateCardRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Content     *string `json:"content,omitempty"`
	ContentType *string `json:"content_type,omitempty" validate:"omitempty,oneof=markdown text html"`
	Summary     *string `json:"summary,omitempty"`
	Tags        *Tags   `json:"tags,omitempty"`
	Category    *string `json:"category,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *int    `json:"priority,omitempty" validate:"omitempty,gte=0"`
	IsFavorite  *bool   `json:"is_favorite,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
	NotebookID  *ID     `json:"notebook_id,omitempty"`
}

// CardQuery carries the list filters forwarded verbatim as query parameters.
// Zero values are omitted.
type CardQuery struct {
	Skip     int
	Page     int
	Limit    int
	Search   string
	Tags     Tags
	Category string
	Status   string
}

// Notebook groups cards.
type Notebook struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	IsDefault   bool      `json:"is_default"`
	OwnerID     ID        `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateNotebookRequest is the body of POST /notebooks.
type CreateNotebookRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	IsDefault   bool   `json:"is_default,omitempty"`
}

// UpdateNotebookRequest is the body of PUT /notebooks/{id}.
type UpdateNotebookRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	IsDefault   *bool   `json:"is_default,omitempty"`
}
