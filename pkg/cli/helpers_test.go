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

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/lakescan/lakescan/pkg/report"
	"github.com/lakescan/lakescan/pkg/serializer"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{
			name:       "valid json format",
			format:     "json",
			wantFormat: serializer.FormatJSON,
			wantErr:    false,
		},
		{
			name:       "valid yaml format",
			format:     "yaml",
			wantFormat: serializer.FormatYAML,
			wantErr:    false,
		},
		{
			name:       "valid table format",
			format:     "table",
			wantFormat: serializer.FormatTable,
			wantErr:    false,
		},
		{
			name:    "invalid format xml",
			format:  "xml",
			wantErr: true,
		},
		{
			name:    "invalid format csv",
			format:  "csv",
			wantErr: true,
		},
		{
			name:    "empty format",
			format:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a minimal CLI command with the format flag
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: tt.format,
					},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if !tt.wantErr && got != tt.wantFormat {
						t.Errorf("parseOutputFormat() = %v, want %v", got, tt.wantFormat)
					}
					return nil
				},
			}

			err := cmd.Run(context.Background(), []string{"test"})
			if err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

func TestPrintSectionOutcomes(t *testing.T) {
	summary := report.NewSummary("test")

	if err := summary.Attach(&report.Section{
		Name:    report.SectionClusters,
		Records: []report.ClusterRecord{},
	}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if err := summary.Attach(&report.Section{
		Name:    report.SectionUnityCatalog,
		Records: []report.CatalogTableRecord{},
		Partial: []string{"catalog dev: listing failed"},
	}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	summary.MarkFailed(report.SectionJobs, context.DeadlineExceeded)

	var buf bytes.Buffer
	printSectionOutcomes(&buf, summary)
	out := buf.String()

	wantLines := []string{
		"clusters",
		"OK",
		"unity_catalog",
		"1 partial failures",
		"jobs",
		"FAILED",
		"context deadline exceeded",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}

	// Every section appears, collected or not.
	for _, name := range report.AllSections() {
		if !strings.Contains(out, string(name)) {
			t.Errorf("expected section %q in output", name)
		}
	}
}
