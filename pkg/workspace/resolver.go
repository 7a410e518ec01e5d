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

// Package workspace determines the target workspace API base URL.
//
// An explicitly configured URL wins and is used verbatim after
// normalization (scheme + host, no trailing slash). Without one, the
// resolver shells out to the Azure CLI to list Databricks workspaces and
// requires exactly one candidate: zero or several candidates is an
// ambiguity the operator has to resolve with an explicit URL.
package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"strings"

	"github.com/lakescan/lakescan/pkg/defaults"
	"github.com/lakescan/lakescan/pkg/errors"
)

// Runner executes an external command and returns its stdout. It exists so
// tests can inject a fake CLI.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// execRunner is the production Runner backed by os/exec.
func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Resolver determines the workspace base URL for a scan run.
type Resolver struct {
	// Runner invokes the external workspace-listing CLI. If nil, os/exec
	// is used.
	Runner Runner
}

// descriptor is the subset of the CLI's workspace listing this tool reads.
type descriptor struct {
	Name         string `json:"name"`
	WorkspaceURL string `json:"workspaceUrl"`
}

// Resolve returns the workspace base URL. When explicit is non-empty it is
// normalized and used directly; otherwise the external CLI is consulted.
func (r *Resolver) Resolve(ctx context.Context, explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		base, err := Normalize(explicit)
		if err != nil {
			return "", err
		}
		slog.Debug("using configured workspace url", "url", base)
		return base, nil
	}

	return r.discover(ctx)
}

// discover lists workspaces via the Azure CLI and requires exactly one.
func (r *Resolver) discover(ctx context.Context) (string, error) {
	run := r.Runner
	if run == nil {
		run = execRunner
	}

	cliCtx, cancel := context.WithTimeout(ctx, defaults.ResolverCLITimeout)
	defer cancel()

	out, err := run(cliCtx, "az", "databricks", "workspace", "list", "--output", "json")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeResolutionFailed,
			"workspace CLI unavailable or unauthenticated", err)
	}

	var workspaces []descriptor
	if err := json.Unmarshal(out, &workspaces); err != nil {
		return "", errors.Wrap(errors.ErrCodeResolutionFailed,
			"failed to parse workspace CLI output", err)
	}

	candidates := make([]descriptor, 0, len(workspaces))
	for _, ws := range workspaces {
		if strings.TrimSpace(ws.WorkspaceURL) != "" {
			candidates = append(candidates, ws)
		}
	}

	switch len(candidates) {
	case 0:
		return "", errors.New(errors.ErrCodeResolutionFailed,
			"no workspaces found in CLI output")
	case 1:
		// fall through
	default:
		names := make([]string, 0, len(candidates))
		for _, ws := range candidates {
			names = append(names, ws.Name)
		}
		return "", errors.NewWithContext(errors.ErrCodeResolutionFailed,
			fmt.Sprintf("ambiguous workspace selection: %d candidates, configure workspace_url explicitly", len(candidates)),
			map[string]any{"workspaces": strings.Join(names, ", ")})
	}

	base, err := Normalize(candidates[0].WorkspaceURL)
	if err != nil {
		return "", err
	}

	slog.Info("discovered workspace", "name", candidates[0].Name, "url", base)
	return base, nil
}

// Normalize reduces a workspace URL to scheme plus host with no trailing
// slash. Bare hostnames are assumed to be HTTPS.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeResolutionFailed,
			fmt.Sprintf("invalid workspace url %q", raw), err)
	}
	if u.Host == "" {
		return "", errors.New(errors.ErrCodeResolutionFailed,
			fmt.Sprintf("invalid workspace url %q: no host", raw))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.New(errors.ErrCodeResolutionFailed,
			fmt.Sprintf("invalid workspace url %q: unsupported scheme %s", raw, u.Scheme))
	}

	return u.Scheme + "://" + u.Host, nil
}
