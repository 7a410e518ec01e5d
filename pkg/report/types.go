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

package report

import (
	"fmt"

	"github.com/lakescan/lakescan/pkg/header"
)

// FullAPIVersion identifies the report schema.
const FullAPIVersion = "lakescan/v1"

// SectionName identifies one top-level key of the workspace summary.
type SectionName string

// The five report sections, in collection order.
const (
	SectionClusters     SectionName = "clusters"
	SectionWarehouses   SectionName = "sql_warehouses"
	SectionUnityCatalog SectionName = "unity_catalog"
	SectionJobs         SectionName = "jobs"
	SectionNotebooks    SectionName = "notebooks"
)

// AllSections returns the section names in their fixed collection order.
func AllSections() []SectionName {
	return []SectionName{
		SectionClusters,
		SectionWarehouses,
		SectionUnityCatalog,
		SectionJobs,
		SectionNotebooks,
	}
}

// LibraryRecord describes one library installed on a cluster, typed by
// artifact kind.
type LibraryRecord struct {
	Type        string `json:"type"`
	Status      string `json:"status,omitempty"`
	Path        string `json:"path,omitempty"`
	Coordinates string `json:"coordinates,omitempty"`
	Package     string `json:"package,omitempty"`
}

// ComputeDetails carries the sizing and runtime attributes of a cluster.
type ComputeDetails struct {
	SparkVersion     string  `json:"spark_version,omitempty"`
	NodeTypeID       string  `json:"node_type_id,omitempty"`
	DriverNodeTypeID string  `json:"driver_node_type_id,omitempty"`
	MemoryMB         int64   `json:"cluster_memory_mb,omitempty"`
	Cores            float64 `json:"cluster_cores,omitempty"`
	RuntimeEngine    string  `json:"runtime_engine,omitempty"`
}

// ClusterRecord is the normalized form of one compute cluster. Libraries is
// never nil: a failed library fetch degrades to an empty list.
type ClusterRecord struct {
	ID        string          `json:"cluster_id"`
	Name      string          `json:"name"`
	State     string          `json:"state"`
	Compute   ComputeDetails  `json:"compute_details"`
	Libraries []LibraryRecord `json:"libraries"`
}

// WarehouseRecord is the normalized form of one SQL warehouse.
type WarehouseRecord struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	ClusterSize string `json:"cluster_size"`
}

// Well-known table types. Anything else the API reports is carried through
// verbatim.
const (
	TableTypeManaged          = "MANAGED"
	TableTypeMaterializedView = "MATERIALIZED_VIEW"
	TableTypeStreamingTable   = "STREAMING_TABLE"
)

// CatalogTableRecord is one table from the catalog/schema/table traversal,
// flattened.
type CatalogTableRecord struct {
	Catalog   string `json:"catalog"`
	Schema    string `json:"schema"`
	Table     string `json:"table"`
	TableType string `json:"table_type,omitempty"`
}

// RunRecord is one job run. Times are RFC3339 UTC; a run that has not
// finished has no end time.
type RunRecord struct {
	RunID       int64  `json:"run_id"`
	State       string `json:"state,omitempty"`
	ResultState string `json:"result_state,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
}

// JobRecord is one job with its most recent runs, ordered as returned by
// the API (most recent first), never re-sorted.
type JobRecord struct {
	JobID int64       `json:"job_id"`
	Name  string      `json:"name,omitempty"`
	Runs  []RunRecord `json:"runs"`
}

// NotebookRecord is one notebook with the languages and magic commands
// detected in its content. The detected sets are sorted so repeated scans
// of an unchanged workspace are byte-identical.
type NotebookRecord struct {
	Path              string   `json:"path"`
	DefaultLanguage   string   `json:"default_language"`
	EmbeddedLanguages []string `json:"embedded_languages"`
	OtherMagics       []string `json:"other_magics"`
}

// Section is the unit a collector hands to the aggregator: the typed
// records for one section plus any branch-level failures that degraded
// gracefully instead of failing the section.
type Section struct {
	Name    SectionName
	Records any
	Partial []string
}

// Status records the outcome of one section's collection.
type Status struct {
	OK            bool     `json:"ok"`
	Error         string   `json:"error,omitempty"`
	PartialErrors []string `json:"partial_errors,omitempty"`
}

// Summary is the consolidated workspace report. All five section keys are
// always serialized, with empty (never null) payloads for failed sections,
// and a per-section status under "sections".
type Summary struct {
	header.Header `json:",inline" yaml:",inline"`

	Clusters      []ClusterRecord          `json:"clusters" yaml:"clusters"`
	SQLWarehouses []WarehouseRecord        `json:"sql_warehouses" yaml:"sql_warehouses"`
	UnityCatalog  []CatalogTableRecord     `json:"unity_catalog" yaml:"unity_catalog"`
	Jobs          []JobRecord              `json:"jobs" yaml:"jobs"`
	Notebooks     []NotebookRecord         `json:"notebooks" yaml:"notebooks"`
	Sections      map[SectionName]Status   `json:"sections" yaml:"sections"`
}

// NewSummary creates a Summary with an initialized header and empty section
// payloads. Every section starts out marked as not collected so the report
// invariant (no key omission) holds even if the scan aborts early.
func NewSummary(version string) *Summary {
	s := &Summary{
		Clusters:      make([]ClusterRecord, 0),
		SQLWarehouses: make([]WarehouseRecord, 0),
		UnityCatalog:  make([]CatalogTableRecord, 0),
		Jobs:          make([]JobRecord, 0),
		Notebooks:     make([]NotebookRecord, 0),
		Sections:      make(map[SectionName]Status, 5),
	}
	s.Init(header.KindWorkspaceSummary, FullAPIVersion, version)

	for _, name := range AllSections() {
		s.Sections[name] = Status{OK: false, Error: "not collected"}
	}

	return s
}

// Attach merges a collected section into the summary under its key and
// marks it successful. The section's record type must match its name.
func (s *Summary) Attach(sec *Section) error {
	if sec == nil {
		return fmt.Errorf("nil section")
	}

	switch sec.Name {
	case SectionClusters:
		records, ok := sec.Records.([]ClusterRecord)
		if !ok {
			return fmt.Errorf("section %s carries %T", sec.Name, sec.Records)
		}
		s.Clusters = records
	case SectionWarehouses:
		records, ok := sec.Records.([]WarehouseRecord)
		if !ok {
			return fmt.Errorf("section %s carries %T", sec.Name, sec.Records)
		}
		s.SQLWarehouses = records
	case SectionUnityCatalog:
		records, ok := sec.Records.([]CatalogTableRecord)
		if !ok {
			return fmt.Errorf("section %s carries %T", sec.Name, sec.Records)
		}
		s.UnityCatalog = records
	case SectionJobs:
		records, ok := sec.Records.([]JobRecord)
		if !ok {
			return fmt.Errorf("section %s carries %T", sec.Name, sec.Records)
		}
		s.Jobs = records
	case SectionNotebooks:
		records, ok := sec.Records.([]NotebookRecord)
		if !ok {
			return fmt.Errorf("section %s carries %T", sec.Name, sec.Records)
		}
		s.Notebooks = records
	default:
		return fmt.Errorf("unknown section %q", sec.Name)
	}

	s.Sections[sec.Name] = Status{OK: true, PartialErrors: sec.Partial}
	return nil
}

// MarkFailed records a section-level failure. The section keeps its empty
// payload and is never dropped from the report.
func (s *Summary) MarkFailed(name SectionName, err error) {
	msg := "unknown failure"
	if err != nil {
		msg = err.Error()
	}
	s.Sections[name] = Status{OK: false, Error: msg}
}

// FailedSections returns the names of failed sections in collection order.
func (s *Summary) FailedSections() []SectionName {
	failed := make([]SectionName, 0)
	for _, name := range AllSections() {
		if st, ok := s.Sections[name]; !ok || !st.OK {
			failed = append(failed, name)
		}
	}
	return failed
}
