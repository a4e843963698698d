// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command ruddmc loads symbolic transition systems and computes their
// reachable states.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dalzilio/ruddmc/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
