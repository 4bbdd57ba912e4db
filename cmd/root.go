package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/shelfsort/bookident/internal/books"
	"github.com/shelfsort/bookident/internal/identify"
	"github.com/shelfsort/bookident/internal/vision"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookident",
		Short: "Book identification tool with LLM-powered cover recognition",
		Long: `Bookident identifies physical books from cover photographs.

A vision-capable LLM reads the cover, the extraction is reconciled
against Google Books, and the result is a normalized bibliographic
record (ISBN, title, author, year, publisher).`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newIdentifyCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}

// newIdentifyService wires the identification pipeline. The Gemini
// credential is resolved here, once, and passed into the extractor
// rather than read at call time.
func newIdentifyService() *identify.Service {
	extractor := vision.New(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	return identify.NewService(extractor, books.NewClient())
}
