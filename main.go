// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/a2anet/a2a-ui/cmd/a2aui"
)

func main() {
	if err := a2aui.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
