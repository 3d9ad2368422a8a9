package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/generative-ai-go/genai"
	"github.com/spf13/cobra"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available Gemini models",
	Long:  `List the generation models available to the configured API key, with their token limits.`,
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	client, err := genai.NewClient(cmd.Context(), option.WithAPIKey(apiKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer func() { _ = client.Close() }()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISPLAY NAME\tINPUT TOKENS\tOUTPUT TOKENS")

	it := client.ListModels(cmd.Context())
	for {
		m, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list models: %w", err)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", m.Name, m.DisplayName, m.InputTokenLimit, m.OutputTokenLimit)
	}

	return w.Flush()
}
