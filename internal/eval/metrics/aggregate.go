package metrics

import (
	"fmt"
	"strings"
	"time"
)

// AggregateResults represents aggregated evaluation metrics
type AggregateResults struct {
	TotalRecords int
	SuccessCount int
	FailureCount int

	// Field-level statistics
	ISBNAccuracy      FieldStats
	TitleAccuracy     FieldStats
	AuthorAccuracy    FieldStats
	YearAccuracy      FieldStats
	PublisherAccuracy FieldStats

	// Overall
	OverallAccuracy float64

	// Timing
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration

	// Detailed results
	Results []EvaluationResult

	// Metadata
	EvaluationDate time.Time
	Model          string
	SampleSize     int
}

// FieldStats contains statistics for a specific record field
type FieldStats struct {
	ExactMatches   int
	PartialMatches int
	NoMatches      int
	MissingFields  int
	AverageScore   float64
	Scores         []float64
}

// AggregateEvaluationResults aggregates multiple evaluation results
func AggregateEvaluationResults(results []EvaluationResult, model string) *AggregateResults {
	agg := &AggregateResults{
		TotalRecords:   len(results),
		Results:        results,
		EvaluationDate: time.Now(),
		Model:          model,
		SampleSize:     len(results),
	}

	totalOverallScore := 0.0
	var totalDuration time.Duration
	var successDuration time.Duration

	for _, result := range results {
		totalDuration += result.ProcessingTime

		if result.Error != "" {
			agg.FailureCount++
			continue
		}

		agg.SuccessCount++
		successDuration += result.ProcessingTime

		if result.Comparison == nil {
			continue
		}

		aggregateFieldStats(&agg.ISBNAccuracy, result.Comparison.ISBNMatch)
		aggregateFieldStats(&agg.TitleAccuracy, result.Comparison.TitleMatch)
		aggregateFieldStats(&agg.AuthorAccuracy, result.Comparison.AuthorMatch)
		aggregateFieldStats(&agg.YearAccuracy, result.Comparison.YearMatch)
		aggregateFieldStats(&agg.PublisherAccuracy, result.Comparison.PublisherMatch)

		totalOverallScore += result.Comparison.OverallScore
	}

	// Calculate averages
	if agg.SuccessCount > 0 {
		agg.ISBNAccuracy.AverageScore = calculateAverage(agg.ISBNAccuracy.Scores)
		agg.TitleAccuracy.AverageScore = calculateAverage(agg.TitleAccuracy.Scores)
		agg.AuthorAccuracy.AverageScore = calculateAverage(agg.AuthorAccuracy.Scores)
		agg.YearAccuracy.AverageScore = calculateAverage(agg.YearAccuracy.Scores)
		agg.PublisherAccuracy.AverageScore = calculateAverage(agg.PublisherAccuracy.Scores)
		agg.OverallAccuracy = totalOverallScore / float64(agg.SuccessCount)
		agg.AverageProcessingTime = successDuration / time.Duration(agg.SuccessCount)
	}

	agg.TotalProcessingTime = totalDuration

	return agg
}

// aggregateFieldStats updates field statistics
func aggregateFieldStats(stats *FieldStats, match FieldMatch) {
	stats.Scores = append(stats.Scores, match.Score)

	switch match.Method {
	case "exact":
		stats.ExactMatches++
	case "substring":
		stats.PartialMatches++
	case "no_match":
		stats.NoMatches++
	case "actual_missing", "expected_missing", "both_missing":
		stats.MissingFields++
	}
}

// calculateAverage calculates the average of a slice of scores
func calculateAverage(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, score := range scores {
		sum += score
	}

	return sum / float64(len(scores))
}

// PrintSummary prints a human-readable summary of the evaluation
func (a *AggregateResults) PrintSummary() {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("BOOKIDENT EVALUATION SUMMARY")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Evaluation Date: %s\n", a.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Printf("Model: %s\n", a.Model)
	fmt.Printf("Sample Size: %d records\n", a.SampleSize)
	fmt.Println()

	fmt.Println("PROCESSING STATISTICS")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Total Records: %d\n", a.TotalRecords)
	if a.TotalRecords > 0 {
		fmt.Printf("Successful: %d (%.1f%%)\n", a.SuccessCount, float64(a.SuccessCount)/float64(a.TotalRecords)*100)
		fmt.Printf("Failed: %d (%.1f%%)\n", a.FailureCount, float64(a.FailureCount)/float64(a.TotalRecords)*100)
	}
	fmt.Printf("Average Processing Time: %s\n", a.AverageProcessingTime)
	fmt.Printf("Total Processing Time: %s\n", a.TotalProcessingTime)
	fmt.Println()

	fmt.Println("FIELD-LEVEL ACCURACY")
	fmt.Println(strings.Repeat("-", 70))
	printFieldStats("ISBN", a.ISBNAccuracy)
	printFieldStats("Title", a.TitleAccuracy)
	printFieldStats("Author", a.AuthorAccuracy)
	printFieldStats("Year", a.YearAccuracy)
	printFieldStats("Publisher", a.PublisherAccuracy)
	fmt.Println()

	fmt.Println("OVERALL SCORE")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Overall Accuracy: %.2f%% (%.3f)\n", a.OverallAccuracy*100, a.OverallAccuracy)
	fmt.Println(strings.Repeat("=", 70))
}

// printFieldStats prints statistics for a single field
func printFieldStats(fieldName string, stats FieldStats) {
	fmt.Printf("\n%s:\n", fieldName)
	fmt.Printf("  Average Score: %.2f%% (%.3f)\n", stats.AverageScore*100, stats.AverageScore)
	fmt.Printf("  Exact Matches: %d\n", stats.ExactMatches)
	fmt.Printf("  Partial Matches: %d\n", stats.PartialMatches)
	fmt.Printf("  No Matches: %d\n", stats.NoMatches)
	fmt.Printf("  Missing Fields: %d\n", stats.MissingFields)
}
