// Package metrics compares identified records against ground truth and
// aggregates per-field accuracy.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/shelfsort/bookident/internal/isbn"
	"github.com/shelfsort/bookident/internal/models"
)

// FieldMatch represents the comparison result for a single field
type FieldMatch struct {
	Expected string
	Actual   string
	Score    float64 // 0.0 to 1.0
	Method   string  // "exact", "substring", "no_match", "expected_missing", "actual_missing", "both_missing"
}

// RecordComparison represents field-level comparison results
type RecordComparison struct {
	ISBNMatch      FieldMatch
	TitleMatch     FieldMatch
	AuthorMatch    FieldMatch
	YearMatch      FieldMatch
	PublisherMatch FieldMatch

	OverallScore float64
}

// EvaluationResult represents the outcome for a single dataset record
type EvaluationResult struct {
	ImagePath      string
	Expected       models.Book
	Identified     *models.Book
	Comparison     *RecordComparison
	ProcessingTime time.Duration
	Error          string // If identification failed
}

// CompareRecords compares an identified record against the ground truth
func CompareRecords(expected, actual models.Book) *RecordComparison {
	comparison := &RecordComparison{
		ISBNMatch:      compareField(isbn.Normalize(expected.ISBN), isbn.Normalize(actual.ISBN)),
		TitleMatch:     compareField(expected.Title, actual.Title),
		AuthorMatch:    compareField(expected.Author, actual.Author),
		YearMatch:      compareField(yearString(expected.Year), yearString(actual.Year)),
		PublisherMatch: compareField(expected.Publisher, actual.Publisher),
	}

	comparison.OverallScore = (comparison.ISBNMatch.Score +
		comparison.TitleMatch.Score +
		comparison.AuthorMatch.Score +
		comparison.YearMatch.Score +
		comparison.PublisherMatch.Score) / 5

	return comparison
}

// compareField scores one field pair after text normalization
func compareField(expected, actual string) FieldMatch {
	match := FieldMatch{Expected: expected, Actual: actual}

	e := normalizeText(expected)
	a := normalizeText(actual)

	switch {
	case e == "" && a == "":
		match.Score = 1.0
		match.Method = "both_missing"
	case e == "":
		match.Score = 1.0
		match.Method = "expected_missing"
	case a == "":
		match.Score = 0.0
		match.Method = "actual_missing"
	case e == a:
		match.Score = 1.0
		match.Method = "exact"
	case strings.Contains(e, a) || strings.Contains(a, e):
		match.Score = 0.5
		match.Method = "substring"
	default:
		match.Score = 0.0
		match.Method = "no_match"
	}

	return match
}

// normalizeText lower-cases and collapses whitespace for comparison
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func yearString(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
