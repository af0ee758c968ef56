// Package cli implements the command-line interface for the strata tool.
//
// # Overview
//
// The strata CLI resolves environment overlays against base deployment
// configurations, validates resolved configs, and checks promotion pipelines.
// It is designed for platform engineers managing multi-environment
// deployments from declarative manifests.
//
// # Commands
//
// resolve - Merge an overlay set into a base configuration:
//
//	strata resolve -b base.yaml -s staging.yaml [-o out.yaml] [-t yaml|json|table]
//
// Applies the overlay's patches in order (last write wins, nested fields
// merge per subfield), validates the result, and emits the resolved config.
//
// validate - Validate a resolved configuration:
//
//	strata validate -f resolved.yaml [--fail-on-error]
//
// Checks every coherence rule and reports all violations; use
// --fail-on-error to gate CI on the result.
//
// promote - Check a promotion pipeline:
//
//	strata promote --stage staging=staging.yaml --stage production=prod.yaml
//
// Compares adjacent stages under promotion safety rules and emits a report.
//
// # Global Flags
//
//	--output, -o   Output destination: file path or cm://namespace/name (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//	--log-level    Log level: debug, info, warn, error (default: info)
//
// Inputs are read from file paths, HTTP/HTTPS URLs, or ConfigMap URIs.
package cli
