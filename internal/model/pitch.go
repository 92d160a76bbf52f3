package model

import "time"

const MaxPitchDeckFileSize = 50 * 1024 * 1024

// AllowedPitchDeckTypes lists the MIME types accepted for deck uploads.
var AllowedPitchDeckTypes = []string{
	"application/pdf",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

type PitchDeck struct {
	ID           int64     `db:"id" json:"id"`
	FounderID    int64     `db:"founder_id" json:"founder_id"`
	Title        string    `db:"title" json:"title"`
	Description  *string   `db:"description" json:"description,omitempty"`
	FileURL      string    `db:"file_url" json:"file_url"`
	FileName     string    `db:"file_name" json:"file_name"`
	FileSize     int64     `db:"file_size" json:"file_size"`
	FileType     string    `db:"file_type" json:"file_type"`
	Status       string    `db:"status" json:"status"`
	ViewCount    int64     `db:"view_count" json:"view_count"`
	LikeCount    int64     `db:"like_count" json:"like_count"`
	CommentCount int64     `db:"comment_count" json:"comment_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// PitchDeckSummary is a deck row with its slide count, as returned by list
// queries.
type PitchDeckSummary struct {
	ID           int64     `db:"id" json:"id"`
	FounderID    int64     `db:"founder_id" json:"founder_id"`
	Title        string    `db:"title" json:"title"`
	Description  *string   `db:"description" json:"description,omitempty"`
	FileName     string    `db:"file_name" json:"file_name"`
	FileType     string    `db:"file_type" json:"file_type"`
	Status       string    `db:"status" json:"status"`
	ViewCount    int64     `db:"view_count" json:"view_count"`
	LikeCount    int64     `db:"like_count" json:"like_count"`
	CommentCount int64     `db:"comment_count" json:"comment_count"`
	SlideCount   int64     `db:"slide_count" json:"slide_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type UploadPitchDeckRequest struct {
	FounderID   int64   `json:"founder_id" binding:"required"`
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description"`
	FileName    string  `json:"file_name" binding:"required"`
	FileSize    int64   `json:"file_size" binding:"required,min=1"`
	FileType    string  `json:"file_type" binding:"required,decktype"`
}

type UploadPitchDeckResponse struct {
	PitchDeckID int64  `json:"pitch_deck_id"`
	UploadURL   string `json:"upload_url"`
}

type PitchDeckWithURL struct {
	PitchDeck
	DownloadURL string `json:"download_url"`
}

// PitchDeckFilters narrows list queries. Zero values mean "no filter".
type PitchDeckFilters struct {
	FounderID int64
	Status    string
}

type ListPitchDecksResponse struct {
	PitchDecks []*PitchDeckSummary `json:"pitch_decks"`
	Total      int64               `json:"total"`
}
