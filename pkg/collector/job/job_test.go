package job

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakescan/lakescan/pkg/errors"
	"github.com/lakescan/lakescan/pkg/report"
)

type fakeCaller struct {
	mu      sync.Mutex
	handler func(path string, query url.Values) (string, error)
}

func (f *fakeCaller) Get(_ context.Context, path string, query url.Values, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, err := f.handler(path, query)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal([]byte(body), out)
}

func TestCollect(t *testing.T) {
	caller := &fakeCaller{handler: func(path string, query url.Values) (string, error) {
		switch path {
		case listPath:
			return `{"jobs":[
				{"job_id":10,"settings":{"name":"nightly"}},
				{"job_id":20,"settings":{"name":"hourly"}}
			],"has_more":false}`, nil
		case detailPath:
			if query.Get("job_id") == "10" {
				return `{"job_id":10,"settings":{"name":"nightly-etl"}}`, nil
			}
			return `{"job_id":20,"settings":{}}`, nil
		case runsPath:
			require.Equal(t, "3", query.Get("limit"))
			if query.Get("job_id") == "10" {
				// The API hands back runs most-recent-first; the record
				// order must match verbatim.
				return `{"runs":[
					{"run_id":3,"state":{"life_cycle_state":"TERMINATED","result_state":"SUCCESS"},"start_time":1700000300000,"end_time":1700000360000},
					{"run_id":1,"state":{"life_cycle_state":"TERMINATED","result_state":"FAILED"},"start_time":1700000100000,"end_time":1700000160000},
					{"run_id":2,"state":{"life_cycle_state":"RUNNING"},"start_time":1700000200000}
				]}`, nil
			}
			return `{"runs":[]}`, nil
		}
		t.Fatalf("unexpected path %s", path)
		return "", nil
	}}

	c := &Collector{Client: caller, RunsLimit: 3, Concurrency: 2}
	sec, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, report.SectionJobs, sec.Name)

	records, ok := sec.Records.([]report.JobRecord)
	require.True(t, ok)
	require.Len(t, records, 2)

	assert.EqualValues(t, 10, records[0].JobID)
	assert.Equal(t, "nightly-etl", records[0].Name, "detail name wins over listing name")
	assert.EqualValues(t, 20, records[1].JobID)
	assert.Equal(t, "hourly", records[1].Name, "empty detail name falls back to listing")

	runs := records[0].Runs
	require.Len(t, runs, 3)
	assert.EqualValues(t, 3, runs[0].RunID)
	assert.EqualValues(t, 1, runs[1].RunID)
	assert.EqualValues(t, 2, runs[2].RunID)

	assert.Equal(t, "2023-11-14T22:18:20Z", runs[0].StartTime)
	assert.Equal(t, "2023-11-14T22:19:20Z", runs[0].EndTime)
	assert.Equal(t, "", runs[2].EndTime, "unfinished run has no end time")
	assert.Equal(t, "RUNNING", runs[2].State)
	assert.Equal(t, "", runs[2].ResultState)

	assert.NotNil(t, records[1].Runs)
	assert.Empty(t, records[1].Runs)
}

func TestCollect_PerJobFailuresDegrade(t *testing.T) {
	caller := &fakeCaller{handler: func(path string, _ url.Values) (string, error) {
		if path == listPath {
			return `{"jobs":[{"job_id":1,"settings":{"name":"fallback"}}],"has_more":false}`, nil
		}
		return "", errors.New(errors.ErrCodeUnavailable, "sub-call failed")
	}}

	c := &Collector{Client: caller}
	sec, err := c.Collect(context.Background())
	require.NoError(t, err, "per-job failures must not fail the section")

	records := sec.Records.([]report.JobRecord)
	require.Len(t, records, 1)
	assert.Equal(t, "fallback", records[0].Name)
	assert.Empty(t, records[0].Runs)
}

func TestCollect_ListFailureFailsSection(t *testing.T) {
	caller := &fakeCaller{handler: func(string, url.Values) (string, error) {
		return "", errors.New(errors.ErrCodeUnauthorized, "bad token")
	}}

	c := &Collector{Client: caller}
	_, err := c.Collect(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnauthorized, errors.CodeOf(err))
}

func TestListJobs_Pagination(t *testing.T) {
	caller := &fakeCaller{handler: func(path string, query url.Values) (string, error) {
		require.Equal(t, listPath, path)
		switch query.Get("page_token") {
		case "":
			return `{"jobs":[{"job_id":1},{"job_id":2}],"has_more":true,"next_page_token":"p2"}`, nil
		case "p2":
			return `{"jobs":[{"job_id":3}],"has_more":false}`, nil
		}
		t.Fatalf("unexpected page token %q", query.Get("page_token"))
		return "", nil
	}}

	c := &Collector{Client: caller}
	jobs, err := c.listJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.EqualValues(t, 1, jobs[0].JobID)
	assert.EqualValues(t, 3, jobs[2].JobID)
}

func TestFormatMillis(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{"zero omitted", 0, ""},
		{"epoch millis", 1700000100000, "2023-11-14T22:15:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMillis(tt.ms))
		})
	}
}
