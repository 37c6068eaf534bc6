package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/apisentry/pkg/advisor"
	"github.com/user/apisentry/pkg/config"
	"github.com/user/apisentry/pkg/engine"
)

var adviseFindingsPath string

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Ask the configured AI model for remediation guidance on scan findings",
	Long: `Advise reads findings from the most recent scan (or a findings JSON
file produced with 'scan --format json') and asks the configured model
for prioritized remediation guidance. Requires 'apisentry config setup'
to be run once.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := adviseFindingsPath
		if path == "" {
			var err error
			path, err = config.LastScanPath()
			if err != nil {
				return err
			}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("no findings to advise on (run 'apisentry scan' first): %w", err)
		}
		var findings []engine.Finding
		if err := json.Unmarshal(data, &findings); err != nil {
			return fmt.Errorf("failed to parse findings file %s: %w", path, err)
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		providerName := cfg.SelectedProvider
		if providerName == "" {
			providerName = "gemini"
		}
		apiKey := cfg.GetAPIKey(providerName)
		if apiKey == "" && providerName == "gemini" {
			apiKey = os.Getenv("GOOGLE_API_KEY")
		}
		if apiKey == "" {
			return fmt.Errorf("no API key configured; run 'apisentry config setup'")
		}

		ctx := cmd.Context()
		provider, err := advisor.NewProvider(ctx, providerName, apiKey, cfg.SelectedModel)
		if err != nil {
			return fmt.Errorf("creating AI provider: %w", err)
		}
		if closer, ok := provider.(interface{ Close() }); ok {
			defer closer.Close()
		}

		fmt.Printf("Asking %s (%s) for remediation guidance on %d finding(s)...\n\n", providerName, cfg.SelectedModel, len(findings))
		advice, err := advisor.Advise(ctx, provider, findings)
		if err != nil {
			return err
		}
		fmt.Println(advice)
		return nil
	},
}

func init() {
	adviseCmd.Flags().StringVar(&adviseFindingsPath, "findings", "", "Findings JSON file (default: last scan result)")
	rootCmd.AddCommand(adviseCmd)
}
