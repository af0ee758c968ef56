/*
Copyright © 2025 Strata Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/gitopskit/strata/pkg/config"
	"github.com/gitopskit/strata/pkg/header"
	"github.com/gitopskit/strata/pkg/serializer"
	"github.com/gitopskit/strata/pkg/validator"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate a resolved configuration against coherence rules",
		Description: `Validate a resolved deployment configuration.

All rules are checked and every violation is reported; validation never
stops at the first breach. The checks cover:
  - autoscaling bounds (minReplicas <= maxReplicas)
  - replica count within the autoscaling window
  - CPU and memory thresholds within [1,100]
  - resource requests not exceeding limits
  - ingress host shape (DNS-1123 subdomain)

# Examples

Validate a resolved config:
  strata validate -f resolved.yaml

Load the config from a ConfigMap (result to stdout):
  strata validate -f cm://apps/fastapi-staging

Output the validation result to a file:
  strata validate -f resolved.yaml -o result.yaml

Fail the command if any rule is violated (useful for CI/CD):
  strata validate -f resolved.yaml --fail-on-error`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Required: true,
				Usage: `Path/URI to the resolved configuration to validate.
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with non-zero status if any rule is violated",
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

			filePath := cmd.String("file")
			kubeconfig := cmd.String("kubeconfig")

			slog.Info("loading resolved config", "uri", filePath)

			resolved, err := serializer.FromFileWithKubeconfig[config.ResolvedConfig](filePath, kubeconfig)
			if err != nil {
				return fmt.Errorf("failed to load resolved config from %q: %w", filePath, err)
			}

			v := validator.New(
				validator.WithVersion(version),
			)

			result, err := v.Validate(resolved)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			result.Init(header.KindValidationResult, config.APIVersion, version)

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)

			if err := ser.Serialize(ctx, result); err != nil {
				return fmt.Errorf("failed to serialize validation result: %w", err)
			}

			slog.Info("validation completed",
				"environment", resolved.Environment,
				"status", result.Summary.Status,
				"checked", result.Summary.Checked,
				"violations", result.Summary.Violations)

			if cmd.Bool("fail-on-error") && !result.Valid() {
				return fmt.Errorf("validation failed: %d rule(s) violated", result.Summary.Violations)
			}

			return nil
		},
	}
}
