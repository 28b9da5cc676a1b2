// SPDX-License-Identifier: MIT

// Command momsos explores the Motzkin polynomial with SOS certificates:
// the SOS test, the lower-bound hierarchy on a ball and the surface grid.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "momsos:", err)
		stop()
		os.Exit(1)
	}
}
