/*
Copyright © 2025 Lakescan Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lakescan/lakescan/pkg/api"
	"github.com/lakescan/lakescan/pkg/collector"
	"github.com/lakescan/lakescan/pkg/config"
	"github.com/lakescan/lakescan/pkg/defaults"
	"github.com/lakescan/lakescan/pkg/scanner"
	"github.com/lakescan/lakescan/pkg/serializer"
	"github.com/lakescan/lakescan/pkg/workspace"
)

func scanCmd() *cli.Command {
	return &cli.Command{
		Name:                  "scan",
		EnableShellCompletion: true,
		Usage:                 "Scan a Databricks workspace and write a metadata summary",
		Description: `Scan a Databricks workspace REST API and write a consolidated
metadata summary covering:
  - Compute clusters and their installed libraries
  - SQL warehouses
  - Unity Catalog tables (catalog/schema/table traversal)
  - Jobs with their most recent runs
  - Notebooks with detected languages and magic commands

Each section is collected independently: a section that cannot be
collected is recorded as failed in the summary while the remaining
sections complete. An authorization failure aborts the scan, but the
partial summary is still written.

The workspace is taken from --workspace-url, then from the config
file, and finally auto-discovered via 'az databricks workspace list'
(which must return exactly one workspace).

# Examples

Scan with an explicit workspace:
  lakescan scan --workspace-url https://adb-123.4.azuredatabricks.net

Scan with auto-discovery, YAML output:
  lakescan scan --output summary.yaml --format yaml

Tighter retry budget for a flaky network:
  lakescan scan --max-attempts 5 --backoff exponential`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the credentials config file",
				Sources: cli.EnvVars("LAKESCAN_CONFIG"),
				Value:   config.DefaultPath,
			},
			&cli.StringFlag{
				Name:    "workspace-url",
				Usage:   "Workspace base URL (skips CLI auto-discovery)",
				Sources: cli.EnvVars("LAKESCAN_WORKSPACE_URL"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Overall scan deadline",
				Value: defaults.ScanTimeout,
			},
			&cli.IntFlag{
				Name:  "max-attempts",
				Usage: "Retry attempts per API call",
				Value: defaults.RetryMaxAttempts,
			},
			&cli.StringFlag{
				Name:  "backoff",
				Usage: "Retry backoff strategy (fixed, exponential)",
				Value: string(api.BackoffFixed),
			},
			&cli.DurationFlag{
				Name:  "retry-wait",
				Usage: "Base wait between retry attempts",
				Value: defaults.RetryWait,
			},
			&cli.IntFlag{
				Name:  "job-runs-limit",
				Usage: "Recent runs fetched per job",
				Value: defaults.JobRunsLimit,
			},
			&cli.StringFlag{
				Name:  "notebook-root",
				Usage: "Workspace path the notebook walk starts from",
				Value: "/",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			policy, err := buildRetryPolicy(cmd)
			if err != nil {
				return err
			}

			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// Flag beats config file; both beat auto-discovery.
			explicit := cmd.String("workspace-url")
			if explicit == "" {
				explicit = cfg.WorkspaceURL
			}

			resolveCtx, cancelResolve := context.WithTimeout(ctx, defaults.ResolverCLITimeout)
			defer cancelResolve()

			resolver := &workspace.Resolver{}
			baseURL, err := resolver.Resolve(resolveCtx, explicit)
			if err != nil {
				return fmt.Errorf("failed to resolve workspace: %w", err)
			}

			client := api.NewClient(baseURL, cfg.Token,
				api.WithRetryPolicy(policy),
				api.WithRateLimit(defaults.APIRequestsPerSecond, defaults.APIRequestBurst),
			)

			factory := collector.NewDefaultFactory(client,
				collector.WithJobRunsLimit(int(cmd.Int("job-runs-limit"))),
				collector.WithSubItemConcurrency(defaults.SubItemConcurrency),
				collector.WithNotebookRoot(cmd.String("notebook-root")),
			)

			output := cmd.String("output")
			if output == "-" {
				output = ""
			}
			sink := serializer.NewFileWriterOrStdout(outFormat, output)
			defer func() {
				if closer, ok := sink.(serializer.Closer); ok {
					_ = closer.Close()
				}
			}()

			ws := &scanner.WorkspaceScanner{
				Version:    version,
				Factory:    factory,
				Serializer: sink,
			}

			scanCtx, cancelScan := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancelScan()

			summary, scanErr := ws.Scan(scanCtx)
			if summary != nil {
				printSectionOutcomes(os.Stderr, summary)
			}
			return scanErr
		},
	}
}

// buildRetryPolicy translates the retry flags into a client policy.
func buildRetryPolicy(cmd *cli.Command) (api.RetryPolicy, error) {
	strategy := api.BackoffStrategy(cmd.String("backoff"))
	if strategy.IsUnknown() {
		return api.RetryPolicy{}, fmt.Errorf("unknown backoff strategy: %q", strategy)
	}

	attempts := int(cmd.Int("max-attempts"))
	if attempts < 1 {
		return api.RetryPolicy{}, fmt.Errorf("max-attempts must be at least 1, got %d", attempts)
	}

	// A zero wait would be silently replaced with the policy default, so
	// reject it here rather than ignore what the operator asked for.
	wait := cmd.Duration("retry-wait")
	if wait <= 0 {
		return api.RetryPolicy{}, fmt.Errorf("retry-wait must be positive, got %v", wait)
	}

	maxWait := defaults.RetryMaxWait
	if wait > maxWait {
		maxWait = wait
	}

	return api.RetryPolicy{
		MaxAttempts: attempts,
		Strategy:    strategy,
		Wait:        wait,
		MaxWait:     maxWait,
	}, nil
}
