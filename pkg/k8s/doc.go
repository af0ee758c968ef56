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

// Package k8s provides Kubernetes integration for strata.
//
// The client sub-package holds a singleton Kubernetes client with automatic
// authentication discovery (KUBECONFIG, ~/.kube/config, in-cluster service
// account). It backs the serializer's ConfigMap reader and writer, which are
// how resolved configurations move between strata and cluster tooling:
//
//	clientset, _, err := client.GetKubeClient()
//	if err != nil {
//	    return err
//	}
//
// The singleton uses sync.Once, so the client is safe to request from
// concurrent CLI commands and server handlers without connection churn.
package k8s
