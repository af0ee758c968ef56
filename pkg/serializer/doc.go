// Copyright (c) 2025, Strata Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serializer provides encoding and decoding of strata documents in
// multiple formats.
//
// # Overview
//
// Base configurations and overlay sets come in as JSON or YAML documents;
// resolved configurations, validation results, and promotion reports go out
// as JSON, YAML, or human-readable tables. The package covers both
// directions with automatic format detection from file extensions.
//
// # Sources and sinks
//
// Readers accept local file paths, http(s) URLs (downloaded to a temporary
// file), and ConfigMap URIs (cm://namespace/name). Writers target files,
// stdout, or ConfigMaps; the ConfigMap sink is the hand-off point for
// cluster tooling that consumes resolved configurations.
//
// # Usage
//
//	base, err := serializer.FromFile[config.BaseConfig]("base.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "resolved.yaml")
//	defer w.(serializer.Closer).Close()
//	if err := w.Serialize(ctx, resolved); err != nil {
//	    log.Fatal(err)
//	}
//
// Table format is write-only; use it for terminal inspection of a resolved
// config or a violation list, not for round-tripping.
package serializer
