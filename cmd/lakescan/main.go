/*
Copyright © 2025 Lakescan Authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import (
	"github.com/lakescan/lakescan/pkg/cli"
)

func main() {
	cli.Execute()
}
