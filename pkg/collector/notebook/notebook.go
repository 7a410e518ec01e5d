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

// Package notebook collects workspace notebooks and scans their content
// for embedded languages and magic commands.
package notebook

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/lakescan/lakescan/pkg/api"
	"github.com/lakescan/lakescan/pkg/report"
)

const (
	listPath   = "/api/2.0/workspace/list"
	statusPath = "/api/2.0/workspace/get-status"
	exportPath = "/api/2.0/workspace/export"
)

// Workspace object types this collector cares about.
const (
	objectTypeNotebook  = "NOTEBOOK"
	objectTypeDirectory = "DIRECTORY"
)

// Collector walks the workspace tree, then fetches each notebook's
// declared language and exported content. Unlistable subdirectories are
// recorded as partial errors while sibling directories continue.
type Collector struct {
	Client api.Caller

	// Root is the workspace path the walk starts from.
	Root string

	// Concurrency bounds parallel per-notebook fetches.
	Concurrency int
}

type listResponse struct {
	Objects []workspaceObject `json:"objects"`
}

type workspaceObject struct {
	Path       string `json:"path"`
	ObjectType string `json:"object_type"`
}

type statusResponse struct {
	Language string `json:"language"`
}

type exportResponse struct {
	Content string `json:"content"`
}

// Name implements the Collector interface.
func (c *Collector) Name() report.SectionName {
	return report.SectionNotebooks
}

// Collect walks the tree from Root and materializes one record per
// notebook in traversal order, regardless of fetch concurrency.
func (c *Collector) Collect(ctx context.Context) (*report.Section, error) {
	root := c.Root
	if root == "" {
		root = "/"
	}

	slog.Info("collecting notebooks", "root", root)

	paths, partial, err := c.walk(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspace objects: %w", err)
	}

	records := make([]report.NotebookRecord, len(paths))

	g := new(errgroup.Group)
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			records[i] = c.describe(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	slog.Debug("notebook collection complete",
		"notebooks", len(records), "partial_failures", len(partial))

	return &report.Section{
		Name:    report.SectionNotebooks,
		Records: records,
		Partial: partial,
	}, nil
}

// walk performs a depth-first traversal of the workspace tree and returns
// notebook paths in traversal order. The root listing failing fails the
// walk; a subdirectory failing is a partial error only.
func (c *Collector) walk(ctx context.Context, root string) (paths []string, partial []string, err error) {
	paths = make([]string, 0)
	partial = make([]string, 0)

	var visit func(path string, isRoot bool) error
	visit = func(path string, isRoot bool) error {
		query := url.Values{"path": {path}}

		var resp listResponse
		if err := c.Client.Get(ctx, listPath, query, &resp); err != nil {
			if isRoot {
				return err
			}
			slog.Warn("skipping unlistable directory", "path", path, "error", err.Error())
			partial = append(partial, fmt.Sprintf("directory %s: %v", path, err))
			return nil
		}

		for _, obj := range resp.Objects {
			switch obj.ObjectType {
			case objectTypeNotebook:
				paths = append(paths, obj.Path)
			case objectTypeDirectory:
				if err := visit(obj.Path, false); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := visit(root, true); err != nil {
		return nil, nil, err
	}
	return paths, partial, nil
}

// describe fetches one notebook's declared language and content scan.
// Either fetch failing degrades that field rather than the record.
func (c *Collector) describe(ctx context.Context, path string) report.NotebookRecord {
	rec := report.NotebookRecord{
		Path:              path,
		DefaultLanguage:   "unknown",
		EmbeddedLanguages: []string{},
		OtherMagics:       []string{},
	}

	query := url.Values{"path": {path}}

	var status statusResponse
	if err := c.Client.Get(ctx, statusPath, query, &status); err != nil {
		slog.Warn("degrading notebook language to unknown", "path", path, "error", err.Error())
	} else if status.Language != "" {
		rec.DefaultLanguage = status.Language
	}

	exportQuery := url.Values{"path": {path}, "format": {"SOURCE"}}

	var export exportResponse
	if err := c.Client.Get(ctx, exportPath, exportQuery, &export); err != nil {
		slog.Warn("degrading notebook content scan to empty", "path", path, "error", err.Error())
		return rec
	}

	content, err := base64.StdEncoding.DecodeString(export.Content)
	if err != nil {
		slog.Warn("notebook content is not valid base64", "path", path, "error", err.Error())
		return rec
	}

	rec.EmbeddedLanguages, rec.OtherMagics = detectMagics(string(content))
	return rec
}
