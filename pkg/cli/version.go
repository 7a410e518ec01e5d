/*
Copyright © 2025 Lakescan Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(_ context.Context, cmd *cli.Command) error {
			fmt.Fprintf(cmd.Writer, "%s version %s (commit: %s, built: %s)\n",
				name, version, commit, date)
			return nil
		},
	}
}
