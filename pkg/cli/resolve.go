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
	"github.com/gitopskit/strata/pkg/overlay"
	"github.com/gitopskit/strata/pkg/resolver"
	"github.com/gitopskit/strata/pkg/serializer"
	"github.com/gitopskit/strata/pkg/validator"
)

func resolveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "resolve",
		EnableShellCompletion: true,
		Usage:                 "Resolve an overlay set against a base configuration",
		Description: `Merge an environment overlay set into a base deployment configuration
and emit the resolved config.

Patches apply in order; the last write to a field wins. Nested fields
(resourceRequests, resourceLimits, autoscaling) merge per subfield, so a
patch that sets only autoscaling.maxReplicas keeps the base minReplicas.

The resolved config is validated before output. Rule violations are
reported on stderr and do not block output unless --fail-on-error is set.

# Examples

Resolve a staging overlay to stdout:
  strata resolve -b base.yaml -s staging.yaml

Write the resolved config to a file as JSON:
  strata resolve -b base.yaml -s staging.yaml -o resolved.json -t json

Publish to a ConfigMap for deployment tooling:
  strata resolve -b base.yaml -s staging.yaml -o cm://apps/fastapi-staging

Fail in CI when the resolved config violates validation rules:
  strata resolve -b base.yaml -s staging.yaml --fail-on-error`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "base",
				Aliases:  []string{"b"},
				Required: true,
				Usage: `Path/URI to the base configuration.
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
			},
			&cli.StringFlag{
				Name:     "overlay",
				Aliases:  []string{"s"},
				Required: true,
				Usage: `Path/URI to the overlay set.
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with non-zero status if the resolved config fails validation",
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

			basePath := cmd.String("base")
			overlayPath := cmd.String("overlay")
			kubeconfig := cmd.String("kubeconfig")

			slog.Info("loading base config", "uri", basePath)

			base, err := serializer.FromFileWithKubeconfig[config.BaseConfig](basePath, kubeconfig)
			if err != nil {
				return fmt.Errorf("failed to load base config from %q: %w", basePath, err)
			}

			slog.Info("loading overlay set", "uri", overlayPath)

			set, err := serializer.FromFileWithKubeconfig[overlay.OverlaySet](overlayPath, kubeconfig)
			if err != nil {
				return fmt.Errorf("failed to load overlay set from %q: %w", overlayPath, err)
			}

			resolved, err := resolver.Resolve(base, set)
			if err != nil {
				return fmt.Errorf("resolution failed: %w", err)
			}

			v := validator.New(
				validator.WithVersion(version),
			)

			result, err := v.Validate(resolved)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			for _, violation := range result.Violations {
				slog.Warn("validation violation",
					"field", violation.Field,
					"value", violation.Value,
					"rule", violation.Rule)
			}

			// Stamp the emitted artifact with timestamp and CLI version.
			resolved.Init(header.KindResolvedConfig, config.APIVersion, version)

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)

			if err := ser.Serialize(ctx, resolved); err != nil {
				return fmt.Errorf("failed to serialize resolved config: %w", err)
			}

			slog.Info("resolution completed",
				"environment", resolved.Environment,
				"status", result.Summary.Status,
				"violations", result.Summary.Violations)

			if cmd.Bool("fail-on-error") && !result.Valid() {
				return fmt.Errorf("validation failed: %d rule(s) violated", result.Summary.Violations)
			}

			return nil
		},
	}
}
