// Package results writes evaluation reports.
package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shelfsort/bookident/internal/eval/metrics"
	"github.com/shelfsort/bookident/internal/models"
	"gopkg.in/yaml.v3"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	Model       string `yaml:"model"`
	DatasetPath string `yaml:"datasetpath"`
	SampleSize  int    `yaml:"samplesize"`
	Timestamp   string `yaml:"timestamp"`
}

// EvalResult represents a single evaluation result
type EvalResult struct {
	ImagePath    string             `yaml:"imagepath"`
	Expected     models.Book        `yaml:"expected"`
	Identified   *models.Book       `yaml:"identified,omitempty"`
	OverallScore float64            `yaml:"overallscore"`
	FieldScores  map[string]float64 `yaml:"fieldscores,omitempty"`
	Error        string             `yaml:"error,omitempty"`
}

// EvalSummary represents aggregate accuracy numbers
type EvalSummary struct {
	TotalRecords      int     `yaml:"totalrecords"`
	SuccessCount      int     `yaml:"successcount"`
	FailureCount      int     `yaml:"failurecount"`
	OverallAccuracy   float64 `yaml:"overallaccuracy"`
	ISBNAccuracy      float64 `yaml:"isbnaccuracy"`
	TitleAccuracy     float64 `yaml:"titleaccuracy"`
	AuthorAccuracy    float64 `yaml:"authoraccuracy"`
	YearAccuracy      float64 `yaml:"yearaccuracy"`
	PublisherAccuracy float64 `yaml:"publisheraccuracy"`
}

// EvalSpec represents the complete evaluation report
type EvalSpec struct {
	Config  EvalConfig   `yaml:"config"`
	Summary EvalSummary  `yaml:"summary"`
	Results []EvalResult `yaml:"results"`
}

// SaveToYAML saves evaluation results to a YAML file in evals/ directory
func SaveToYAML(datasetPath string, agg *metrics.AggregateResults) error {
	// Create evals directory
	if err := os.MkdirAll("evals", 0755); err != nil {
		return fmt.Errorf("failed to create evals directory: %w", err)
	}

	// Generate timestamp
	timestamp := time.Now().Format("2006-01-02_15-04-05")

	spec := EvalSpec{
		Config: EvalConfig{
			Model:       agg.Model,
			DatasetPath: datasetPath,
			SampleSize:  agg.SampleSize,
			Timestamp:   timestamp,
		},
		Summary: EvalSummary{
			TotalRecords:      agg.TotalRecords,
			SuccessCount:      agg.SuccessCount,
			FailureCount:      agg.FailureCount,
			OverallAccuracy:   agg.OverallAccuracy,
			ISBNAccuracy:      agg.ISBNAccuracy.AverageScore,
			TitleAccuracy:     agg.TitleAccuracy.AverageScore,
			AuthorAccuracy:    agg.AuthorAccuracy.AverageScore,
			YearAccuracy:      agg.YearAccuracy.AverageScore,
			PublisherAccuracy: agg.PublisherAccuracy.AverageScore,
		},
		Results: make([]EvalResult, 0, len(agg.Results)),
	}

	// Convert results
	for _, r := range agg.Results {
		evalResult := EvalResult{
			ImagePath:  r.ImagePath,
			Expected:   r.Expected,
			Identified: r.Identified,
			Error:      r.Error,
		}

		if r.Comparison != nil {
			evalResult.OverallScore = r.Comparison.OverallScore
			evalResult.FieldScores = map[string]float64{
				"isbn":      r.Comparison.ISBNMatch.Score,
				"title":     r.Comparison.TitleMatch.Score,
				"author":    r.Comparison.AuthorMatch.Score,
				"year":      r.Comparison.YearMatch.Score,
				"publisher": r.Comparison.PublisherMatch.Score,
			}
		}

		spec.Results = append(spec.Results, evalResult)
	}

	// Generate filename
	filename := fmt.Sprintf("evals/%s-%s.yaml", agg.Model, timestamp)

	// Write YAML
	data, err := yaml.Marshal(&spec)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("\nEvaluation results saved to: %s\n", absPath)

	return nil
}
