// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli holds the root command of osmxml and the helpers its
// subcommands share.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"m4o.io/osmxml"
	"m4o.io/osmxml/internal/tracing"
)

// Version is reported by --version and in trace resources.
var Version = "dev"

var (
	backend  = osmxml.DefaultBackend
	logLevel = slog.LevelWarn

	shutdownTracing func(context.Context) error
)

// RootCmd is the osmxml command every subcommand registers with.
var RootCmd = &cobra.Command{
	Use:     "osmxml",
	Short:   "Inspect, fetch and convert OpenStreetMap XML",
	Version: Version,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		slog.SetDefault(NewLogger(cmd.ErrOrStderr(), logLevel))

		shutdown, err := tracing.InitTracing(cmd.Context(), Version)
		if err != nil {
			return err
		}

		shutdownTracing = shutdown

		return nil
	},

	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		if shutdownTracing == nil {
			return nil
		}

		return shutdownTracing(cmd.Context())
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.VarP(NewBackendValue(&backend), "backend", "b", fmt.Sprintf("XML backend, one of %v", osmxml.Backends()))
	flags.VarP(NewLevelValue(&logLevel), "log-level", "l", "log level: debug, info, warn or error")
}

// Backend returns the backend chosen with --backend.
func Backend() osmxml.Backend {
	return backend
}

// NewLogger returns a text logger writing to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
