// Package identify orchestrates book identification: vision extraction,
// catalog resolution, and the merge of both into one final record.
package identify

import (
	"context"
	"log/slog"

	"github.com/shelfsort/bookident/internal/models"
)

// Extractor produces a bibliographic guess from a cover image
type Extractor interface {
	Extract(ctx context.Context, image []byte) (*models.Book, error)
}

// Resolver looks up a catalog candidate from identifier or text hints.
// A nil result means no usable match, never a failure.
type Resolver interface {
	Resolve(ctx context.Context, isbn, title, author string) *models.Book
}

// Service runs the identification pipeline
type Service struct {
	extractor Extractor
	resolver  Resolver
}

// NewService creates an identification service
func NewService(extractor Extractor, resolver Resolver) *Service {
	return &Service{
		extractor: extractor,
		resolver:  resolver,
	}
}

// Identify extracts metadata from the cover image, enriches it with a
// catalog lookup, and returns the merged record. Extraction failures
// abort the pipeline; a missing catalog candidate does not - the
// extraction then stands on its own.
func (s *Service) Identify(ctx context.Context, image []byte) (*models.Book, error) {
	guess, err := s.extractor.Extract(ctx, image)
	if err != nil {
		return nil, err
	}

	candidate := s.resolver.Resolve(ctx, guess.ISBN, guess.Title, guess.Author)
	if candidate == nil {
		slog.Debug("No catalog candidate, using extraction as-is", "title", guess.Title)
	}

	record := merge(*guess, candidate)
	return &record, nil
}

// merge combines the vision extraction with a catalog candidate
// field-by-field: the catalog value wins whenever it is non-empty
// (non-zero for year), the extraction fills the gaps.
func merge(guess models.Book, candidate *models.Book) models.Book {
	if candidate == nil {
		return guess
	}

	merged := *candidate
	if merged.ISBN == "" {
		merged.ISBN = guess.ISBN
	}
	if merged.Title == "" {
		merged.Title = guess.Title
	}
	if merged.Author == "" {
		merged.Author = guess.Author
	}
	if merged.Year == 0 {
		merged.Year = guess.Year
	}
	if merged.Publisher == "" {
		merged.Publisher = guess.Publisher
	}
	return merged
}
