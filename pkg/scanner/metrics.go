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

package scanner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Scan-level metrics
	scanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lakescan_scan_duration_seconds",
			Help:    "Time taken to complete a full workspace scan",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	scanTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lakescan_scan_total",
			Help: "Total number of workspace scan attempts",
		},
		[]string{"status"}, // success or error
	)

	scanCollectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lakescan_scan_collector_duration_seconds",
			Help:    "Time taken by individual section collectors",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"collector"}, // clusters, sql_warehouses, unity_catalog, jobs, notebooks
	)

	scanSectionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lakescan_scan_section_failures_total",
			Help: "Total number of section-level collection failures",
		},
		[]string{"collector"},
	)
)
