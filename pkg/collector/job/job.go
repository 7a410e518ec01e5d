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

// Package job collects jobs with their most recent runs.
package job

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lakescan/lakescan/pkg/api"
	"github.com/lakescan/lakescan/pkg/defaults"
	"github.com/lakescan/lakescan/pkg/report"
)

const (
	listPath   = "/api/2.1/jobs/list"
	detailPath = "/api/2.1/jobs/get"
	runsPath   = "/api/2.1/jobs/runs/list"
)

// Collector gathers jobs and their recent runs. Per-job detail or run
// fetch failures degrade that job's fields; the section only fails when
// the top-level listing does.
type Collector struct {
	Client api.Caller

	// RunsLimit is how many recent runs to fetch per job.
	RunsLimit int

	// Concurrency bounds parallel per-job fetches.
	Concurrency int
}

type listResponse struct {
	Jobs          []jobInfo `json:"jobs"`
	HasMore       bool      `json:"has_more"`
	NextPageToken string    `json:"next_page_token"`
}

type jobInfo struct {
	JobID    int64       `json:"job_id"`
	Settings jobSettings `json:"settings"`
}

type jobSettings struct {
	Name string `json:"name"`
}

type runsResponse struct {
	Runs []runInfo `json:"runs"`
}

type runInfo struct {
	RunID     int64    `json:"run_id"`
	State     runState `json:"state"`
	StartTime int64    `json:"start_time"`
	EndTime   int64    `json:"end_time"`
}

type runState struct {
	LifeCycleState string `json:"life_cycle_state"`
	ResultState    string `json:"result_state"`
}

// Name implements the Collector interface.
func (c *Collector) Name() report.SectionName {
	return report.SectionJobs
}

// Collect lists jobs (following pagination), then fans out per-job detail
// and run fetches. Listing order is preserved in the output, and each
// job's runs keep the API's most-recent-first order verbatim.
func (c *Collector) Collect(ctx context.Context) (*report.Section, error) {
	slog.Info("collecting jobs and runs")

	jobs, err := c.listJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	records := make([]report.JobRecord, len(jobs))

	g := new(errgroup.Group)
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}

	for i, info := range jobs {
		i, info := i, info
		g.Go(func() error {
			records[i] = report.JobRecord{
				JobID: info.JobID,
				Name:  c.jobName(ctx, info),
				Runs:  c.runs(ctx, info.JobID),
			}
			return nil
		})
	}
	_ = g.Wait()

	slog.Debug("job collection complete", "jobs", len(records))

	return &report.Section{
		Name:    report.SectionJobs,
		Records: records,
	}, nil
}

func (c *Collector) listJobs(ctx context.Context) ([]jobInfo, error) {
	jobs := make([]jobInfo, 0)
	token := ""
	for {
		query := url.Values{}
		if token != "" {
			query.Set("page_token", token)
		}

		var resp listResponse
		if err := c.Client.Get(ctx, listPath, query, &resp); err != nil {
			return nil, err
		}
		jobs = append(jobs, resp.Jobs...)

		if !resp.HasMore || resp.NextPageToken == "" {
			return jobs, nil
		}
		token = resp.NextPageToken
	}
}

// jobName resolves the job's display name, preferring the full job detail
// and degrading to whatever the listing carried.
func (c *Collector) jobName(ctx context.Context, info jobInfo) string {
	query := url.Values{"job_id": {strconv.FormatInt(info.JobID, 10)}}

	var detail jobInfo
	if err := c.Client.Get(ctx, detailPath, query, &detail); err != nil {
		slog.Warn("degrading job name to listing value",
			"job_id", info.JobID, "error", err.Error())
		return info.Settings.Name
	}
	if detail.Settings.Name != "" {
		return detail.Settings.Name
	}
	return info.Settings.Name
}

// runs fetches the most recent runs for one job, degrading to an empty
// list on failure.
func (c *Collector) runs(ctx context.Context, jobID int64) []report.RunRecord {
	limit := c.RunsLimit
	if limit <= 0 {
		limit = defaults.JobRunsLimit
	}

	query := url.Values{
		"job_id": {strconv.FormatInt(jobID, 10)},
		"limit":  {strconv.Itoa(limit)},
	}

	var resp runsResponse
	if err := c.Client.Get(ctx, runsPath, query, &resp); err != nil {
		slog.Warn("degrading job runs to empty", "job_id", jobID, "error", err.Error())
		return []report.RunRecord{}
	}

	records := make([]report.RunRecord, 0, len(resp.Runs))
	for _, run := range resp.Runs {
		records = append(records, report.RunRecord{
			RunID:       run.RunID,
			State:       run.State.LifeCycleState,
			ResultState: run.State.ResultState,
			StartTime:   formatMillis(run.StartTime),
			EndTime:     formatMillis(run.EndTime),
		})
	}
	return records
}

// formatMillis converts epoch milliseconds to RFC3339 UTC. A zero value
// (run not finished, or field absent) yields an empty string.
func formatMillis(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
