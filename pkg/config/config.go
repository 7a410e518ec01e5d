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

// Package config loads workspace credentials from a local JSON file.
//
// The file supplies the bearer token used against the workspace API and,
// optionally, an explicit workspace URL:
//
//	{
//	  "token": "dapi...",
//	  "workspace_url": "https://adb-123.4.azuredatabricks.net"
//	}
//
// Config is loaded once at startup and passed explicitly to the components
// that need it; nothing in this package mutates process-wide state.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lakescan/lakescan/pkg/errors"
)

// DefaultPath is the config file consulted when no --config flag is given.
const DefaultPath = "config.json"

// Config holds the credentials for a scan run. It is immutable for the
// process lifetime once loaded.
type Config struct {
	// Token is the bearer token attached to every workspace API call.
	Token string `json:"token"`

	// WorkspaceURL optionally pins the target workspace. When empty the
	// workspace resolver falls back to CLI auto-discovery.
	WorkspaceURL string `json:"workspace_url,omitempty"`
}

// Load reads and validates the config file at the given path.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to parse config file %s", path), err)
	}

	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("bearer token missing in %s", path))
	}

	return &cfg, nil
}
