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

package defaults

import "time"

// HTTP client timeouts for outbound requests against the workspace API.
const (
	// HTTPClientTimeout is the default total timeout for a single HTTP attempt.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// Retry parameters for workspace API calls.
//
// The workspace API throttles aggressively, so transient failures (429/5xx,
// network errors) are retried with a bounded budget. These are defaults only;
// the scan command exposes flags to tune them per run.
const (
	// RetryMaxAttempts is the default number of attempts per API call.
	RetryMaxAttempts = 3

	// RetryWait is the default wait between attempts for the fixed
	// backoff strategy, and the initial wait for the exponential one.
	RetryWait = 2 * time.Second

	// RetryMaxWait caps the wait between attempts for the exponential
	// backoff strategy.
	RetryMaxWait = 30 * time.Second
)

// API rate limiting for outbound calls.
const (
	// APIRequestsPerSecond is the default client-side request rate
	// against the workspace API.
	APIRequestsPerSecond = 10

	// APIRequestBurst is the default client-side burst allowance.
	APIRequestBurst = 5
)

// Resolver timeouts for external CLI invocation.
const (
	// ResolverCLITimeout is the timeout for the workspace-listing CLI call.
	ResolverCLITimeout = 30 * time.Second
)

// Scan timeouts for the end-to-end metadata collection run.
const (
	// ScanTimeout is the default overall deadline for a scan.
	ScanTimeout = 5 * time.Minute
)

// Collection parameters.
const (
	// JobRunsLimit is the default number of recent runs fetched per job.
	JobRunsLimit = 3

	// SubItemConcurrency bounds parallel sub-item fetches within a
	// collector (per-cluster libraries, per-job runs, per-notebook
	// exports).
	SubItemConcurrency = 4
)
