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

package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API call metrics
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lakescan_api_requests_total",
			Help: "Total number of workspace API calls by outcome",
		},
		[]string{"outcome"}, // success or lowercased error code
	)

	apiRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lakescan_api_retries_total",
			Help: "Total number of retried workspace API attempts",
		},
	)

	apiRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lakescan_api_request_duration_seconds",
			Help:    "Time taken by workspace API calls including retries",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)
)
