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

// Package cluster collects compute clusters and their installed libraries.
package cluster

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/lakescan/lakescan/pkg/api"
	"github.com/lakescan/lakescan/pkg/errors"
	"github.com/lakescan/lakescan/pkg/report"
)

const (
	listPath      = "/api/2.0/clusters/list"
	librariesPath = "/api/2.0/libraries/cluster-status"
)

// Collector gathers cluster metadata. A per-cluster library fetch failure
// degrades that cluster's library list to empty rather than failing the
// section.
type Collector struct {
	Client api.Caller

	// Concurrency bounds parallel per-cluster library fetches.
	Concurrency int
}

type listResponse struct {
	Clusters []clusterInfo `json:"clusters"`
}

type clusterInfo struct {
	ClusterID        string  `json:"cluster_id"`
	ClusterName      string  `json:"cluster_name"`
	State            string  `json:"state"`
	SparkVersion     string  `json:"spark_version"`
	NodeTypeID       string  `json:"node_type_id"`
	DriverNodeTypeID string  `json:"driver_node_type_id"`
	ClusterMemoryMB  int64   `json:"cluster_memory_mb"`
	ClusterCores     float64 `json:"cluster_cores"`
	RuntimeEngine    string  `json:"runtime_engine"`
}

type libraryStatusResponse struct {
	LibraryStatuses []libraryStatus `json:"library_statuses"`
}

type libraryStatus struct {
	Status  string      `json:"status"`
	Library librarySpec `json:"library"`
}

type librarySpec struct {
	Jar   string         `json:"jar"`
	Egg   string         `json:"egg"`
	Whl   string         `json:"whl"`
	Maven *mavenLibrary  `json:"maven"`
	Pypi  *pypiLibrary   `json:"pypi"`
	Cran  *cranLibrary   `json:"cran"`
}

type mavenLibrary struct {
	Coordinates string `json:"coordinates"`
}

type pypiLibrary struct {
	Package string `json:"package"`
}

type cranLibrary struct {
	Package string `json:"package"`
}

// Name implements the Collector interface.
func (c *Collector) Name() report.SectionName {
	return report.SectionClusters
}

// Collect lists clusters and fans out per-cluster library fetches. Listing
// order is preserved in the output regardless of fetch concurrency.
func (c *Collector) Collect(ctx context.Context) (*report.Section, error) {
	slog.Info("collecting clusters")

	var list listResponse
	if err := c.Client.Get(ctx, listPath, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list clusters: %w", err)
	}

	records := make([]report.ClusterRecord, len(list.Clusters))

	g := new(errgroup.Group)
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}

	for i, info := range list.Clusters {
		i, info := i, info
		g.Go(func() error {
			records[i] = report.ClusterRecord{
				ID:    info.ClusterID,
				Name:  info.ClusterName,
				State: info.State,
				Compute: report.ComputeDetails{
					SparkVersion:     info.SparkVersion,
					NodeTypeID:       info.NodeTypeID,
					DriverNodeTypeID: info.DriverNodeTypeID,
					MemoryMB:         info.ClusterMemoryMB,
					Cores:            info.ClusterCores,
					RuntimeEngine:    info.RuntimeEngine,
				},
				Libraries: c.libraries(ctx, info.ClusterID),
			}
			return nil
		})
	}
	_ = g.Wait()

	slog.Debug("cluster collection complete", "clusters", len(records))

	return &report.Section{
		Name:    report.SectionClusters,
		Records: records,
	}, nil
}

// libraries fetches the installed libraries for one cluster, degrading to
// an empty list on any failure. A 404 simply means no library state exists
// for the cluster.
func (c *Collector) libraries(ctx context.Context, clusterID string) []report.LibraryRecord {
	query := url.Values{"cluster_id": {clusterID}}

	var resp libraryStatusResponse
	if err := c.Client.Get(ctx, librariesPath, query, &resp); err != nil {
		if errors.IsCode(err, errors.ErrCodeNotFound) {
			slog.Debug("no library state for cluster", "cluster_id", clusterID)
		} else {
			slog.Warn("degrading cluster libraries to empty",
				"cluster_id", clusterID,
				"error", err.Error())
		}
		return []report.LibraryRecord{}
	}

	libs := make([]report.LibraryRecord, 0, len(resp.LibraryStatuses))
	for _, ls := range resp.LibraryStatuses {
		libs = append(libs, toLibraryRecord(ls))
	}
	return libs
}

// toLibraryRecord normalizes one library status into its artifact kind.
func toLibraryRecord(ls libraryStatus) report.LibraryRecord {
	rec := report.LibraryRecord{
		Type:   "unknown",
		Status: ls.Status,
	}
	if rec.Status == "" {
		rec.Status = "UNKNOWN"
	}

	switch {
	case ls.Library.Jar != "":
		rec.Type = "jar"
		rec.Path = ls.Library.Jar
	case ls.Library.Egg != "":
		rec.Type = "egg"
		rec.Path = ls.Library.Egg
	case ls.Library.Whl != "":
		rec.Type = "whl"
		rec.Path = ls.Library.Whl
	case ls.Library.Maven != nil:
		rec.Type = "maven"
		rec.Coordinates = ls.Library.Maven.Coordinates
	case ls.Library.Pypi != nil:
		rec.Type = "pypi"
		rec.Package = ls.Library.Pypi.Package
	case ls.Library.Cran != nil:
		rec.Type = "cran"
		rec.Package = ls.Library.Cran.Package
	}

	return rec
}
