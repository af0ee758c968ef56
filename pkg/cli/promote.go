/*
Copyright © 2025 Strata Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/gitopskit/strata/pkg/config"
	"github.com/gitopskit/strata/pkg/header"
	"github.com/gitopskit/strata/pkg/promotion"
	"github.com/gitopskit/strata/pkg/serializer"
)

// ruleSet is the shape of a promotion rules file.
type ruleSet struct {
	Rules []promotion.Rule `json:"rules" yaml:"rules"`
}

func promoteCmd() *cli.Command {
	return &cli.Command{
		Name:                  "promote",
		EnableShellCompletion: true,
		Usage:                 "Check a promotion pipeline against safety rules",
		Description: `Check resolved configurations along a promotion pipeline.

Stages are given earliest to latest; each adjacent pair is compared under
the rule set. The default rules require that later stages never loosen
operational safety:
  - autoscaling.minReplicas must not shrink
  - autoscaling.cpuThresholdPct must not rise
  - autoscaling.memThresholdPct must not rise

A failing pipeline produces a report with one entry per breached pair and
rule; it is not an error unless --fail-on-error is set.

# Examples

Check a two-stage pipeline:
  strata promote --stage staging=staging.yaml --stage production=prod.yaml

Check with custom rules:
  strata promote --stage dev=dev.yaml --stage prod=prod.yaml --rules rules.yaml

Gate a CD pipeline on the check:
  strata promote --stage staging=staging.yaml --stage production=prod.yaml --fail-on-error`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "stage",
				Required: true,
				Usage: `Pipeline stage as environment=path, earliest first (can be repeated).
	Paths support: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
			},
			&cli.StringFlag{
				Name:  "rules",
				Usage: "Path/URI to a rules file overriding the default promotion rules",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with non-zero status if the promotion check fails",
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			kubeconfig := cmd.String("kubeconfig")

			stages, err := loadStages(cmd.StringSlice("stage"), kubeconfig)
			if err != nil {
				return err
			}

			opts := []promotion.Option{
				promotion.WithVersion(version),
			}

			if rulesPath := cmd.String("rules"); rulesPath != "" {
				slog.Info("loading promotion rules", "uri", rulesPath)

				rs, err := serializer.FromFileWithKubeconfig[ruleSet](rulesPath, kubeconfig)
				if err != nil {
					return fmt.Errorf("failed to load rules from %q: %w", rulesPath, err)
				}
				opts = append(opts, promotion.WithRules(rs.Rules))
			}

			seq := promotion.New(opts...)

			report, err := seq.Check(stages)
			if err != nil {
				return fmt.Errorf("promotion check failed: %w", err)
			}

			report.Init(header.KindPromotionReport, config.APIVersion, version)

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)

			if err := ser.Serialize(ctx, report); err != nil {
				return fmt.Errorf("failed to serialize promotion report: %w", err)
			}

			slog.Info("promotion check completed",
				"pipeline", report.Pipeline,
				"status", report.Summary.Status,
				"violations", report.Summary.Violations)

			if cmd.Bool("fail-on-error") && !report.Passed() {
				return fmt.Errorf("promotion check failed: %d violation(s)", report.Summary.Violations)
			}

			return nil
		},
	}
}

// loadStages parses repeated environment=path stage arguments and loads the
// resolved config behind each path, preserving pipeline order.
func loadStages(args []string, kubeconfig string) ([]promotion.Stage, error) {
	stages := make([]promotion.Stage, 0, len(args))

	for _, arg := range args {
		env, path, ok := strings.Cut(arg, "=")
		if !ok || env == "" || path == "" {
			return nil, fmt.Errorf("invalid stage %q: expected environment=path", arg)
		}

		slog.Info("loading stage config", "environment", env, "uri", path)

		cfg, err := serializer.FromFileWithKubeconfig[config.ResolvedConfig](path, kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to load stage %q from %q: %w", env, path, err)
		}

		stages = append(stages, promotion.Stage{
			Environment: env,
			Config:      cfg,
		})
	}

	return stages, nil
}
