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

package serializer

import "context"

// ConfigMapURIScheme is the URI scheme for Kubernetes ConfigMap sources and
// sinks (cm://namespace/name).
const ConfigMapURIScheme = "cm://"

// Serializer is an interface for writing strata resources (resolved
// configurations, validation results, promotion reports) to an output sink.
//
// The context parameter is used for cancellation and timeouts, which matters
// for implementations that perform I/O (e.g., ConfigMap writes).
type Serializer interface {
	Serialize(ctx context.Context, resource any) error
}

// Closer is an optional interface that Serializers can implement
// if they need to release resources (e.g., close file handles).
type Closer interface {
	Close() error
}
