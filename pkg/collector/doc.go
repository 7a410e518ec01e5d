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

// Package collector provides interfaces and implementations for harvesting
// workspace metadata sections.
//
// # Overview
//
// Each collector fetches and normalizes one domain of workspace metadata:
// compute clusters (with installed libraries), SQL warehouses, the
// catalog/schema/table hierarchy, jobs with recent runs, and notebooks with
// detected languages and magic commands. Collectors are independent: they
// share only the read-only API client, so they can run in parallel and
// merge into disjoint sections of the report.
//
// # Core Interface
//
// The Collector interface defines a single method for gathering data:
//
//	type Collector interface {
//	    Name() report.SectionName
//	    Collect(ctx context.Context) (*report.Section, error)
//	}
//
// A returned error means the whole section failed (for example the
// top-level listing call exhausted its retries); the aggregator records it
// and moves on. Sub-item failures never surface as errors: a cluster whose
// library listing fails keeps an empty library list, and a catalog branch
// that fails mid-traversal is recorded in the section's partial errors
// while sibling branches continue.
//
// # Factory Pattern
//
// The Factory interface enables dependency injection and testing by
// abstracting collector creation:
//
//	factory := collector.NewDefaultFactory(client,
//	    collector.WithJobRunsLimit(5),
//	)
//	col := factory.CreateClusterCollector()
//
// # Subpackages
//
// The collector package is organized into subpackages by section:
//   - collector/cluster - compute clusters and installed libraries
//   - collector/warehouse - SQL warehouses
//   - collector/catalog - catalog/schema/table traversal
//   - collector/job - jobs and recent runs
//   - collector/notebook - notebook listing and content scan
package collector
