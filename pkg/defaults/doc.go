// Copyright (c) 2025, Lakescan Authors.  All rights reserved.
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

// Package defaults provides centralized configuration constants for lakescan.
//
// This package defines timeout values, retry parameters, rate limits, and
// other configuration defaults used across the codebase. Centralizing these
// values ensures consistency and makes tuning easier.
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/lakescan/lakescan/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ScanTimeout)
//	defer cancel()
//
// Retry and rate-limit values are defaults only: the scan command exposes
// flags that override them per run.
package defaults
