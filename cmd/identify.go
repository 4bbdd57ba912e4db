package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shelfsort/bookident/internal/covers"
	"github.com/shelfsort/bookident/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newIdentifyCmd() *cobra.Command {
	var format string
	var withCover bool

	cmd := &cobra.Command{
		Use:   "identify <image>",
		Short: "Identify a book from a cover image file",
		Long: `Identifies the book shown on a cover photograph.

The image is sent to the configured vision model, the extracted
metadata is reconciled against Google Books, and the merged record is
printed to stdout.`,
		Example: `  # Identify a book and print the record as JSON
  bookident identify cover.jpg

  # YAML output with an Open Library cover URL attached
  bookident identify cover.jpg --format yaml --cover`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imageData, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			service := newIdentifyService()
			record, err := service.Identify(cmd.Context(), imageData)
			if err != nil {
				return fmt.Errorf("identification failed: %w", err)
			}

			output := struct {
				Record   *models.Book `json:"record" yaml:"record"`
				CoverURL string       `json:"cover_url,omitempty" yaml:"cover_url,omitempty"`
			}{Record: record}

			if withCover && record.ISBN != "" {
				output.CoverURL = covers.NewFetcher().LookupURL(cmd.Context(), record.ISBN)
			}

			switch format {
			case "yaml":
				data, err := yaml.Marshal(output)
				if err != nil {
					return fmt.Errorf("failed to marshal YAML: %w", err)
				}
				fmt.Print(string(data))
			case "json":
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(output); err != nil {
					return fmt.Errorf("failed to encode JSON: %w", err)
				}
			default:
				return fmt.Errorf("unsupported format: %s (supported: json, yaml)", format)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json or yaml)")
	cmd.Flags().BoolVar(&withCover, "cover", false, "Look up an Open Library cover URL for the identified book")

	return cmd
}
