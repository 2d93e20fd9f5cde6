// Package main provides the CLI entrypoint for codec-generator.
//
// codec-generator reads value types from Go packages or YAML manifests,
// reconciles their fields, accessors, constructor parameters and builder
// setters into one property list per type, and emits JSON codec methods:
//
//	codec-generator gen ./...                 write <type>_codec.go files
//	codec-generator names ./pkg               print the reconciled properties
//	codec-generator check --manifest m.yaml   report conflicts only
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, "codec-generator:", err)
		}

		os.Exit(1)
	}
}
