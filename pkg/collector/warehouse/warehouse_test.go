package warehouse

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakescan/lakescan/pkg/errors"
	"github.com/lakescan/lakescan/pkg/report"
)

type fakeCaller struct {
	body string
	err  error
}

func (f *fakeCaller) Get(_ context.Context, _ string, _ url.Values, out any) error {
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.body), out)
}

func TestCollect(t *testing.T) {
	caller := &fakeCaller{body: `{"warehouses":[
		{"name":"wh1","state":"RUNNING","cluster_size":"Small"},
		{"name":"wh2","state":"STOPPED","cluster_size":"2X-Large"}
	]}`}

	c := &Collector{Client: caller}
	sec, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, report.SectionWarehouses, sec.Name)

	records, ok := sec.Records.([]report.WarehouseRecord)
	require.True(t, ok)
	require.Len(t, records, 2)
	assert.Equal(t, report.WarehouseRecord{Name: "wh1", State: "RUNNING", ClusterSize: "Small"}, records[0])
	assert.Equal(t, report.WarehouseRecord{Name: "wh2", State: "STOPPED", ClusterSize: "2X-Large"}, records[1])
}

func TestCollect_MissingFieldsGetDefaults(t *testing.T) {
	caller := &fakeCaller{body: `{"warehouses":[{}]}`}

	c := &Collector{Client: caller}
	sec, err := c.Collect(context.Background())
	require.NoError(t, err)

	records := sec.Records.([]report.WarehouseRecord)
	require.Len(t, records, 1)
	assert.Equal(t, report.WarehouseRecord{Name: "N/A", State: "UNKNOWN", ClusterSize: "N/A"}, records[0])
}

func TestCollect_EmptyListing(t *testing.T) {
	caller := &fakeCaller{body: `{}`}

	c := &Collector{Client: caller}
	sec, err := c.Collect(context.Background())
	require.NoError(t, err)

	records := sec.Records.([]report.WarehouseRecord)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestCollect_ListFailureFailsSection(t *testing.T) {
	caller := &fakeCaller{err: errors.New(errors.ErrCodeUnavailable, "throttled")}

	c := &Collector{Client: caller}
	_, err := c.Collect(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnavailable, errors.CodeOf(err))
}
