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

// Package catalog collects the catalog/schema/table hierarchy, flattened
// into one record per table.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/lakescan/lakescan/pkg/api"
	"github.com/lakescan/lakescan/pkg/report"
)

const (
	catalogsPath = "/api/2.1/unity-catalog/catalogs"
	schemasPath  = "/api/2.1/unity-catalog/schemas"
	tablesPath   = "/api/2.1/unity-catalog/tables"
)

// Collector traverses catalogs, schemas, and tables. A failure at any level
// for one branch records a partial error for that branch only; sibling
// branches continue.
type Collector struct {
	Client api.Caller
}

type catalogsResponse struct {
	Catalogs      []namedObject `json:"catalogs"`
	NextPageToken string        `json:"next_page_token"`
}

type schemasResponse struct {
	Schemas       []namedObject `json:"schemas"`
	NextPageToken string        `json:"next_page_token"`
}

type tablesResponse struct {
	Tables        []tableInfo `json:"tables"`
	NextPageToken string      `json:"next_page_token"`
}

type namedObject struct {
	Name string `json:"name"`
}

type tableInfo struct {
	Name      string `json:"name"`
	TableType string `json:"table_type"`
}

// Name implements the Collector interface.
func (c *Collector) Name() report.SectionName {
	return report.SectionUnityCatalog
}

// Collect flattens the three-level traversal into table records. Output
// order is catalog-list order, then schema-list order, then table-list
// order, exactly as the API returned them.
func (c *Collector) Collect(ctx context.Context) (*report.Section, error) {
	slog.Info("collecting unity catalog structure")

	catalogs, err := c.listCatalogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}

	records := make([]report.CatalogTableRecord, 0)
	partial := make([]string, 0)

	for _, cat := range catalogs {
		schemas, err := c.listSchemas(ctx, cat)
		if err != nil {
			slog.Warn("skipping catalog branch", "catalog", cat, "error", err.Error())
			partial = append(partial, fmt.Sprintf("catalog %s: %v", cat, err))
			continue
		}

		for _, schema := range schemas {
			// The information schema is system-generated noise for an
			// inventory report.
			if strings.EqualFold(schema, "information_schema") {
				continue
			}

			tables, err := c.listTables(ctx, cat, schema)
			if err != nil {
				slog.Warn("skipping schema branch",
					"catalog", cat, "schema", schema, "error", err.Error())
				partial = append(partial, fmt.Sprintf("catalog %s schema %s: %v", cat, schema, err))
				continue
			}

			for _, tbl := range tables {
				records = append(records, report.CatalogTableRecord{
					Catalog:   cat,
					Schema:    schema,
					Table:     tbl.Name,
					TableType: tbl.TableType,
				})
			}
		}
	}

	slog.Debug("catalog collection complete",
		"tables", len(records), "partial_failures", len(partial))

	return &report.Section{
		Name:    report.SectionUnityCatalog,
		Records: records,
		Partial: partial,
	}, nil
}

func (c *Collector) listCatalogs(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	token := ""
	for {
		query := url.Values{}
		if token != "" {
			query.Set("page_token", token)
		}

		var resp catalogsResponse
		if err := c.Client.Get(ctx, catalogsPath, query, &resp); err != nil {
			return nil, err
		}
		for _, cat := range resp.Catalogs {
			names = append(names, cat.Name)
		}

		token = resp.NextPageToken
		if token == "" {
			return names, nil
		}
	}
}

func (c *Collector) listSchemas(ctx context.Context, catalog string) ([]string, error) {
	names := make([]string, 0)
	token := ""
	for {
		query := url.Values{"catalog_name": {catalog}}
		if token != "" {
			query.Set("page_token", token)
		}

		var resp schemasResponse
		if err := c.Client.Get(ctx, schemasPath, query, &resp); err != nil {
			return nil, err
		}
		for _, schema := range resp.Schemas {
			names = append(names, schema.Name)
		}

		token = resp.NextPageToken
		if token == "" {
			return names, nil
		}
	}
}

func (c *Collector) listTables(ctx context.Context, catalog, schema string) ([]tableInfo, error) {
	tables := make([]tableInfo, 0)
	token := ""
	for {
		query := url.Values{
			"catalog_name": {catalog},
			"schema_name":  {schema},
		}
		if token != "" {
			query.Set("page_token", token)
		}

		var resp tablesResponse
		if err := c.Client.Get(ctx, tablesPath, query, &resp); err != nil {
			return nil, err
		}
		tables = append(tables, resp.Tables...)

		token = resp.NextPageToken
		if token == "" {
			return tables, nil
		}
	}
}
