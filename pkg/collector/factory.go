package collector

import (
	"context"

	"github.com/lakescan/lakescan/pkg/api"
	"github.com/lakescan/lakescan/pkg/collector/catalog"
	"github.com/lakescan/lakescan/pkg/collector/cluster"
	"github.com/lakescan/lakescan/pkg/collector/job"
	"github.com/lakescan/lakescan/pkg/collector/notebook"
	"github.com/lakescan/lakescan/pkg/collector/warehouse"
	"github.com/lakescan/lakescan/pkg/defaults"
	"github.com/lakescan/lakescan/pkg/report"
)

// Collector gathers and normalizes one section of workspace metadata.
type Collector interface {
	Name() report.SectionName
	Collect(ctx context.Context) (*report.Section, error)
}

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateClusterCollector() Collector
	CreateWarehouseCollector() Collector
	CreateCatalogCollector() Collector
	CreateJobCollector() Collector
	CreateNotebookCollector() Collector
}

// DefaultFactory creates collectors backed by the workspace API client.
type DefaultFactory struct {
	client       api.Caller
	jobRunsLimit int
	concurrency  int
	notebookRoot string
}

// FactoryOption configures the DefaultFactory.
type FactoryOption func(*DefaultFactory)

// WithJobRunsLimit sets how many recent runs are fetched per job.
func WithJobRunsLimit(limit int) FactoryOption {
	return func(f *DefaultFactory) {
		if limit > 0 {
			f.jobRunsLimit = limit
		}
	}
}

// WithSubItemConcurrency bounds parallel sub-item fetches within collectors.
func WithSubItemConcurrency(n int) FactoryOption {
	return func(f *DefaultFactory) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// WithNotebookRoot sets the workspace path the notebook collector walks.
func WithNotebookRoot(root string) FactoryOption {
	return func(f *DefaultFactory) {
		if root != "" {
			f.notebookRoot = root
		}
	}
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(client api.Caller, opts ...FactoryOption) *DefaultFactory {
	f := &DefaultFactory{
		client:       client,
		jobRunsLimit: defaults.JobRunsLimit,
		concurrency:  defaults.SubItemConcurrency,
		notebookRoot: "/",
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateClusterCollector creates a cluster collector.
func (f *DefaultFactory) CreateClusterCollector() Collector {
	return &cluster.Collector{
		Client:      f.client,
		Concurrency: f.concurrency,
	}
}

// CreateWarehouseCollector creates a SQL warehouse collector.
func (f *DefaultFactory) CreateWarehouseCollector() Collector {
	return &warehouse.Collector{
		Client: f.client,
	}
}

// CreateCatalogCollector creates a catalog traversal collector.
func (f *DefaultFactory) CreateCatalogCollector() Collector {
	return &catalog.Collector{
		Client: f.client,
	}
}

// CreateJobCollector creates a job collector.
func (f *DefaultFactory) CreateJobCollector() Collector {
	return &job.Collector{
		Client:      f.client,
		RunsLimit:   f.jobRunsLimit,
		Concurrency: f.concurrency,
	}
}

// CreateNotebookCollector creates a notebook collector.
func (f *DefaultFactory) CreateNotebookCollector() Collector {
	return &notebook.Collector{
		Client:      f.client,
		Root:        f.notebookRoot,
		Concurrency: f.concurrency,
	}
}
