// Package evalcmd implements the eval subcommands.
package evalcmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shelfsort/bookident/internal/books"
	"github.com/shelfsort/bookident/internal/eval/dataset"
	"github.com/shelfsort/bookident/internal/eval/metrics"
	"github.com/shelfsort/bookident/internal/eval/results"
	"github.com/shelfsort/bookident/internal/identify"
	"github.com/shelfsort/bookident/internal/vision"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the eval run command
func NewRunCmd() *cobra.Command {
	var datasetPath string
	var model string
	var sampleSize int
	var concurrency int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an identification accuracy evaluation",
		Long: `Runs the identification pipeline over a ground-truth dataset of
cover images (Parquet or JSONL) and scores each field of the result
against the expected record. Writes a YAML report under evals/.`,
		Example: `  # Evaluate 25 records from a JSONL dataset
  bookident eval run --dataset covers.jsonl --sample 25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if model == "" {
				model = os.Getenv("GEMINI_MODEL")
			}
			return executeRun(cmd, datasetPath, model, sampleSize, concurrency)
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "", "Path to the ground-truth dataset (.parquet or .jsonl)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Gemini model to evaluate (defaults to GEMINI_MODEL)")
	cmd.Flags().IntVarP(&sampleSize, "sample", "s", 0, "Limit evaluation to the first N records (0 = all)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 2, "Number of records to process in parallel")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func executeRun(cmd *cobra.Command, datasetPath, model string, sampleSize, concurrency int) error {
	slog.Info("Starting evaluation run", "dataset", datasetPath, "model", model)

	// Load dataset
	slog.Info("Loading dataset...")
	loader := dataset.NewLoader(datasetPath)
	records, err := loader.LoadSample(sampleSize)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	slog.Info("Dataset loaded", "records", len(records))

	extractor := vision.New(os.Getenv("GEMINI_API_KEY"), model)
	service := identify.NewService(extractor, books.NewClient())

	// Process records with concurrency control
	slog.Info("Processing records", "concurrency", concurrency)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)
	resultsChan := make(chan metrics.EvaluationResult, len(records))

	baseDir := filepath.Dir(datasetPath)

	for i, record := range records {
		wg.Add(1)
		go func(idx int, record dataset.GroundTruthRecord) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			slog.Info("Processing record", "image", record.ImagePath, "progress", fmt.Sprintf("%d/%d", idx+1, len(records)))

			resultsChan <- processRecord(cmd, service, record, baseDir)
		}(i, record)
	}

	// Wait for all goroutines to finish
	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Collect results
	var evalResults []metrics.EvaluationResult
	for result := range resultsChan {
		evalResults = append(evalResults, result)
	}

	// Aggregate, report, save
	agg := metrics.AggregateEvaluationResults(evalResults, model)
	agg.PrintSummary()

	if err := results.SaveToYAML(datasetPath, agg); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	return nil
}

func processRecord(cmd *cobra.Command, service *identify.Service, record dataset.GroundTruthRecord, baseDir string) metrics.EvaluationResult {
	result := metrics.EvaluationResult{
		ImagePath: record.ImagePath,
		Expected:  record.Expected(),
	}

	imagePath := record.ImagePath
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(baseDir, imagePath)
	}

	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read image: %v", err)
		return result
	}

	start := time.Now()
	identified, err := service.Identify(cmd.Context(), imageData)
	result.ProcessingTime = time.Since(start)

	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Identified = identified
	result.Comparison = metrics.CompareRecords(result.Expected, *identified)

	return result
}
