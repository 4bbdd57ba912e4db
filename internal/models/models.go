package models

import "time"

// Book is a bibliographic record. The same shape carries the vision
// extraction, a catalog candidate, and the merged final record.
type Book struct {
	ISBN      string `json:"isbn" yaml:"isbn"`
	Title     string `json:"title" yaml:"title"`
	Author    string `json:"author" yaml:"author"`
	Year      int    `json:"year" yaml:"year"`
	Publisher string `json:"publisher" yaml:"publisher"`
}

// IdentifySession represents one book identification request
type IdentifySession struct {
	ID            string    `json:"id"`
	ImageFilename string    `json:"image_filename"`
	ImageURL      string    `json:"image_url,omitempty"`
	Record        *Book     `json:"record,omitempty"`
	CoverURL      string    `json:"cover_url,omitempty"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
