package cluster

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
			return `{"clusters":[
				{"cluster_id":"c1","cluster_name":"etl","state":"RUNNING","spark_version":"14.3.x","cluster_cores":8},
				{"cluster_id":"c2","cluster_name":"adhoc","state":"TERMINATED"}
			]}`, nil
		case librariesPath:
			if query.Get("cluster_id") == "c1" {
				return `{"library_statuses":[
					{"status":"INSTALLED","library":{"pypi":{"package":"pandas"}}},
					{"status":"PENDING","library":{"jar":"dbfs:/jars/app.jar"}}
				]}`, nil
			}
			return "", errors.New(errors.ErrCodeNotFound, "no library state")
		}
		t.Fatalf("unexpected path %s", path)
		return "", nil
	}}

	c := &Collector{Client: caller, Concurrency: 2}
	sec, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, report.SectionClusters, sec.Name)

	records, ok := sec.Records.([]report.ClusterRecord)
	require.True(t, ok)
	require.Len(t, records, 2)

	// Listing order preserved despite parallel library fetches.
	assert.Equal(t, "c1", records[0].ID)
	assert.Equal(t, "c2", records[1].ID)
	assert.Equal(t, "etl", records[0].Name)
	assert.Equal(t, "RUNNING", records[0].State)
	assert.Equal(t, "14.3.x", records[0].Compute.SparkVersion)
	assert.EqualValues(t, 8, records[0].Compute.Cores)

	require.Len(t, records[0].Libraries, 2)
	assert.Equal(t, report.LibraryRecord{Type: "pypi", Status: "INSTALLED", Package: "pandas"}, records[0].Libraries[0])
	assert.Equal(t, report.LibraryRecord{Type: "jar", Status: "PENDING", Path: "dbfs:/jars/app.jar"}, records[0].Libraries[1])

	// 404 on the library sub-call degrades to empty, section still succeeds.
	assert.NotNil(t, records[1].Libraries)
	assert.Empty(t, records[1].Libraries)
}

func TestCollect_LibraryFailureDegrades(t *testing.T) {
	caller := &fakeCaller{handler: func(path string, _ url.Values) (string, error) {
		if path == listPath {
			return `{"clusters":[{"cluster_id":"c1","cluster_name":"etl","state":"RUNNING"}]}`, nil
		}
		return "", errors.New(errors.ErrCodeUnavailable, "throttled out")
	}}

	c := &Collector{Client: caller}
	sec, err := c.Collect(context.Background())
	require.NoError(t, err, "library failures must not fail the section")

	records := sec.Records.([]report.ClusterRecord)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Libraries)
}

func TestCollect_ListFailureFailsSection(t *testing.T) {
	caller := &fakeCaller{handler: func(string, url.Values) (string, error) {
		return "", errors.New(errors.ErrCodeUnavailable, "listing failed")
	}}

	c := &Collector{Client: caller}
	_, err := c.Collect(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnavailable, errors.CodeOf(err))
}

func TestToLibraryRecord(t *testing.T) {
	tests := []struct {
		name string
		in   libraryStatus
		want report.LibraryRecord
	}{
		{
			name: "maven",
			in:   libraryStatus{Status: "INSTALLED", Library: librarySpec{Maven: &mavenLibrary{Coordinates: "org.acme:lib:1.0"}}},
			want: report.LibraryRecord{Type: "maven", Status: "INSTALLED", Coordinates: "org.acme:lib:1.0"},
		},
		{
			name: "whl",
			in:   libraryStatus{Status: "INSTALLED", Library: librarySpec{Whl: "dbfs:/wheels/a.whl"}},
			want: report.LibraryRecord{Type: "whl", Status: "INSTALLED", Path: "dbfs:/wheels/a.whl"},
		},
		{
			name: "cran",
			in:   libraryStatus{Status: "INSTALLED", Library: librarySpec{Cran: &cranLibrary{Package: "ggplot2"}}},
			want: report.LibraryRecord{Type: "cran", Status: "INSTALLED", Package: "ggplot2"},
		},
		{
			name: "empty status defaults",
			in:   libraryStatus{Library: librarySpec{Egg: "dbfs:/eggs/a.egg"}},
			want: report.LibraryRecord{Type: "egg", Status: "UNKNOWN", Path: "dbfs:/eggs/a.egg"},
		},
		{
			name: "unrecognized artifact",
			in:   libraryStatus{Status: "INSTALLED"},
			want: report.LibraryRecord{Type: "unknown", Status: "INSTALLED"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toLibraryRecord(tt.in))
		})
	}
}
