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

// Package warehouse collects SQL warehouse metadata.
package warehouse

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lakescan/lakescan/pkg/api"
	"github.com/lakescan/lakescan/pkg/report"
)

const listPath = "/api/2.0/sql/warehouses"

// Collector gathers SQL warehouse metadata in a single listing call.
type Collector struct {
	Client api.Caller
}

type listResponse struct {
	Warehouses []warehouseInfo `json:"warehouses"`
}

type warehouseInfo struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	ClusterSize string `json:"cluster_size"`
}

// Name implements the Collector interface.
func (c *Collector) Name() report.SectionName {
	return report.SectionWarehouses
}

// Collect lists SQL warehouses and maps them directly to records, with
// documented defaults for missing fields.
func (c *Collector) Collect(ctx context.Context) (*report.Section, error) {
	slog.Info("collecting sql warehouses")

	var list listResponse
	if err := c.Client.Get(ctx, listPath, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list sql warehouses: %w", err)
	}

	records := make([]report.WarehouseRecord, 0, len(list.Warehouses))
	for _, wh := range list.Warehouses {
		rec := report.WarehouseRecord{
			Name:        wh.Name,
			State:       wh.State,
			ClusterSize: wh.ClusterSize,
		}
		if rec.Name == "" {
			rec.Name = "N/A"
		}
		if rec.State == "" {
			rec.State = "UNKNOWN"
		}
		if rec.ClusterSize == "" {
			rec.ClusterSize = "N/A"
		}
		records = append(records, rec)
	}

	slog.Debug("warehouse collection complete", "warehouses", len(records))

	return &report.Section{
		Name:    report.SectionWarehouses,
		Records: records,
	}, nil
}
