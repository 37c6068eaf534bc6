package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/user/apisentry/pkg/adapters"
	"github.com/user/apisentry/pkg/config"
	"github.com/user/apisentry/pkg/engine"
	"github.com/user/apisentry/pkg/input"
	"github.com/user/apisentry/pkg/probe"
	"github.com/user/apisentry/pkg/report"
	"github.com/user/apisentry/pkg/spec"
)

var (
	scanConfigPath   string
	scanIgnore       []string
	scanCustomFields []string
	scanCompliance   string
	scanFormat       string
	scanBaseline     string
	scanSaveBaseline string
)

var scanCmd = &cobra.Command{
	Use:   "scan <file-or-url>",
	Short: "Scan an API description or live endpoint for security issues",
	Long: `Scan accepts an OpenAPI/Swagger document (.json/.yaml), a request
collection export, a traffic capture (.har), or an http(s) URL. URLs are
either fetched directly as spec documents or probed for conventional
spec locations and endpoints.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadScanConfig(scanConfigPath)
		if err != nil {
			return fmt.Errorf("loading scan config: %w", err)
		}
		cfg.IgnorePaths = append(cfg.IgnorePaths, scanIgnore...)
		cfg.CustomSensitiveFields = append(cfg.CustomSensitiveFields, scanCustomFields...)
		if scanCompliance != "" {
			cfg.Compliance = scanCompliance
		}

		canonical, err := resolveInput(cmd, args[0], cfg)
		if err != nil {
			return err
		}

		findings := engine.Scan(canonical, engine.Config{
			IgnorePaths:           cfg.IgnorePaths,
			CustomSensitiveFields: cfg.CustomSensitiveFields,
			Compliance:            cfg.Compliance,
			Rules:                 cfg.Rules,
		})

		saveLastScan(findings)

		if scanFormat == "json" {
			if err := report.RenderJSON(os.Stdout, findings); err != nil {
				return err
			}
		} else {
			report.RenderConsole(os.Stdout, findings)
		}

		if scanBaseline != "" {
			baseline, err := engine.LoadBaseline(scanBaseline)
			if err != nil {
				return fmt.Errorf("loading baseline: %w", err)
			}
			report.RenderBaselineDiff(os.Stdout, engine.CompareBaseline(findings, baseline))
		}
		if scanSaveBaseline != "" {
			if err := engine.SaveBaseline(scanSaveBaseline, findings); err != nil {
				return fmt.Errorf("saving baseline: %w", err)
			}
			fmt.Printf("Saved %d finding(s) to baseline %s\n", len(findings), scanSaveBaseline)
		}
		return nil
	},
}

// resolveInput obtains the canonical spec from either a local document
// or a live target. A scan that cannot obtain any canonical
// representation is a hard failure; an empty probe result set is not.
func resolveInput(cmd *cobra.Command, target string, cfg *config.ScanConfig) (*spec.CanonicalSpec, error) {
	if input.IsURL(target) {
		prober := probe.NewProber()
		prober.CustomPatterns = cfg.CustomSensitiveFields
		outcome, err := prober.Run(cmd.Context(), target)
		if err != nil {
			return nil, err
		}
		if outcome.SpecDoc != nil {
			return (&adapters.OpenAPIAdapter{}).Adapt(outcome.SpecDoc), nil
		}
		return adapters.FromProbeResults(outcome.Results), nil
	}

	doc, err := input.LoadDocument(target)
	if err != nil {
		return nil, err
	}
	adapter := adapters.Detect(doc)
	if adapter == nil {
		return nil, fmt.Errorf("unrecognized document format: %s", target)
	}
	return adapter.Adapt(doc), nil
}

// saveLastScan stores findings for the advise command. Failure here is
// only worth a debug line; the scan itself already succeeded.
func saveLastScan(findings []engine.Finding) {
	path, err := config.LastScanPath()
	if err != nil {
		log.Debug().Err(err).Msg("cannot resolve last-scan path")
		return
	}
	data, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		log.Debug().Err(err).Msg("cannot write last-scan file")
	}
}

func init() {
	scanCmd.Flags().StringVarP(&scanConfigPath, "config", "c", "", "Scan config file (default .apisentry.yaml if present)")
	scanCmd.Flags().StringSliceVar(&scanIgnore, "ignore", nil, "Path pattern to ignore (repeatable, one * wildcard supported)")
	scanCmd.Flags().StringSliceVar(&scanCustomFields, "sensitive-field", nil, "Extra sensitive field pattern (repeatable)")
	scanCmd.Flags().StringVar(&scanCompliance, "compliance", "", "Compliance mode: gdpr, ccpa, hipaa or pci")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "console", "Output format: console or json")
	scanCmd.Flags().StringVar(&scanBaseline, "baseline", "", "Compare findings against a saved baseline file")
	scanCmd.Flags().StringVar(&scanSaveBaseline, "save-baseline", "", "Save findings to a baseline file")
	rootCmd.AddCommand(scanCmd)
}
