package catalog

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
	handler func(path string, query url.Values) (string, error)
}

func (f *fakeCaller) Get(_ context.Context, path string, query url.Values, out any) error {
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
		case catalogsPath:
			return `{"catalogs":[{"name":"main"},{"name":"dev"}]}`, nil
		case schemasPath:
			switch query.Get("catalog_name") {
			case "main":
				return `{"schemas":[{"name":"information_schema"},{"name":"sales"}]}`, nil
			case "dev":
				return `{"schemas":[{"name":"scratch"}]}`, nil
			}
		case tablesPath:
			switch query.Get("catalog_name") + "." + query.Get("schema_name") {
			case "main.sales":
				return `{"tables":[{"name":"orders","table_type":"MANAGED"},{"name":"leads","table_type":"VIEW"}]}`, nil
			case "dev.scratch":
				return `{"tables":[{"name":"tmp","table_type":"EXTERNAL"}]}`, nil
			}
		}
		t.Fatalf("unexpected call %s %v", path, query)
		return "", nil
	}}

	c := &Collector{Client: caller}
	sec, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, report.SectionUnityCatalog, sec.Name)
	assert.Empty(t, sec.Partial)

	records, ok := sec.Records.([]report.CatalogTableRecord)
	require.True(t, ok)
	require.Len(t, records, 3, "information_schema must be skipped")

	assert.Equal(t, report.CatalogTableRecord{Catalog: "main", Schema: "sales", Table: "orders", TableType: "MANAGED"}, records[0])
	assert.Equal(t, report.CatalogTableRecord{Catalog: "main", Schema: "sales", Table: "leads", TableType: "VIEW"}, records[1])
	assert.Equal(t, report.CatalogTableRecord{Catalog: "dev", Schema: "scratch", Table: "tmp", TableType: "EXTERNAL"}, records[2])
}

// A failure in one catalog's schema listing must leave sibling catalogs
// fully populated and be recorded as a partial error.
func TestCollect_BranchFailureIsolated(t *testing.T) {
	caller := &fakeCaller{handler: func(path string, query url.Values) (string, error) {
		switch path {
		case catalogsPath:
			return `{"catalogs":[{"name":"a"},{"name":"b"},{"name":"c"}]}`, nil
		case schemasPath:
			if query.Get("catalog_name") == "b" {
				return "", errors.New(errors.ErrCodeUnavailable, "schema listing failed")
			}
			return `{"schemas":[{"name":"s1"}]}`, nil
		case tablesPath:
			return `{"tables":[{"name":"t1","table_type":"MANAGED"}]}`, nil
		}
		return "", nil
	}}

	c := &Collector{Client: caller}
	sec, err := c.Collect(context.Background())
	require.NoError(t, err)

	records := sec.Records.([]report.CatalogTableRecord)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Catalog)
	assert.Equal(t, "c", records[1].Catalog)

	require.Len(t, sec.Partial, 1)
	assert.Contains(t, sec.Partial[0], "catalog b:")
}

func TestCollect_SchemaBranchFailureIsolated(t *testing.T) {
	caller := &fakeCaller{handler: func(path string, query url.Values) (string, error) {
		switch path {
		case catalogsPath:
			return `{"catalogs":[{"name":"main"}]}`, nil
		case schemasPath:
			return `{"schemas":[{"name":"good"},{"name":"bad"},{"name":"also_good"}]}`, nil
		case tablesPath:
			if query.Get("schema_name") == "bad" {
				return "", errors.New(errors.ErrCodeUnavailable, "table listing failed")
			}
			return `{"tables":[{"name":"t","table_type":"MANAGED"}]}`, nil
		}
		return "", nil
	}}

	c := &Collector{Client: caller}
	sec, err := c.Collect(context.Background())
	require.NoError(t, err)

	records := sec.Records.([]report.CatalogTableRecord)
	require.Len(t, records, 2)
	assert.Equal(t, "good", records[0].Schema)
	assert.Equal(t, "also_good", records[1].Schema)

	require.Len(t, sec.Partial, 1)
	assert.Contains(t, sec.Partial[0], "catalog main schema bad:")
}

func TestCollect_CatalogListFailureFailsSection(t *testing.T) {
	caller := &fakeCaller{handler: func(string, url.Values) (string, error) {
		return "", errors.New(errors.ErrCodeUnavailable, "catalog listing failed")
	}}

	c := &Collector{Client: caller}
	_, err := c.Collect(context.Background())
	require.Error(t, err)
}

func TestListCatalogs_Pagination(t *testing.T) {
	caller := &fakeCaller{handler: func(path string, query url.Values) (string, error) {
		require.Equal(t, catalogsPath, path)
		switch query.Get("page_token") {
		case "":
			return `{"catalogs":[{"name":"c1"},{"name":"c2"}],"next_page_token":"p2"}`, nil
		case "p2":
			return `{"catalogs":[{"name":"c3"}]}`, nil
		}
		t.Fatalf("unexpected page token %q", query.Get("page_token"))
		return "", nil
	}}

	c := &Collector{Client: caller}
	names, err := c.listCatalogs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2", "c3"}, names)
}
