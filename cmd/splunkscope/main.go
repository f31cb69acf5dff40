/*
 * Copyright 2026 Splunkscope Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/splunktools/splunkscope/pkg/config"
	"github.com/splunktools/splunkscope/pkg/discovery"
	"github.com/splunktools/splunkscope/pkg/health"
	"github.com/splunktools/splunkscope/pkg/logger"
	"github.com/splunktools/splunkscope/pkg/report"
	"github.com/splunktools/splunkscope/pkg/splunkd"
	"github.com/splunktools/splunkscope/pkg/topology"
	"github.com/splunktools/splunkscope/pkg/tui"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to config file (JSON or YAML, defaults used when empty)")
	seedPath := flag.String("seeds", "", "Path to seed CSV (address,port,username,password)")
	reportPath := flag.String("report", "splunkscope.csv", "Path for the CSV report, - for stdout, empty to skip")
	dotPath := flag.String("dot", "", "Path for the Graphviz DOT topology, - for stdout, empty to skip")
	plain := flag.Bool("plain", false, "Disable the interactive progress view")
	flag.Parse()

	if *seedPath == "" {
		flag.Usage()
		return fmt.Errorf("%w: -seeds is required", errFailedToLoadConfig)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Default()

	if *configPath != "" {
		cfg = &config.Config{}
		if err := config.LoadAndValidate(ctx, *configPath, cfg); err != nil {
			return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
		}
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = logger.DefaultConfig()
	}

	mainLogger, err := logger.New(logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	seeds, err := report.LoadSeeds(*seedPath)
	if err != nil {
		return err
	}

	connector := splunkd.NewHTTPConnector(cfg.PollTimeout.Duration(), cfg.InsecureSkipVerify, mainLogger)
	evaluator := health.NewEvaluator(cfg.HealthChecks)
	builder := discovery.NewReportBuilder(connector, evaluator, mainLogger)
	orch := discovery.NewOrchestrator(builder, mainLogger)

	var results *discovery.Results

	if *plain {
		results, err = orch.Run(ctx, seeds, nil)
	} else {
		results, err = tui.Run(ctx, orch, seeds)
	}

	if err != nil {
		return err
	}

	if *reportPath != "" {
		if err := writeTo(*reportPath, func(w *os.File) error {
			return report.WriteCSV(w, results)
		}); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if *dotPath != "" {
		graph := topology.NewBuilder(mainLogger).Build(results.Reports, results.Discovered)

		if err := writeTo(*dotPath, func(w *os.File) error {
			return topology.WriteDOT(w, graph, &cfg.Topology)
		}); err != nil {
			return fmt.Errorf("failed to write topology: %w", err)
		}
	}

	return nil
}

// writeTo writes through fn to the named file, or to stdout when path
// is "-".
func writeTo(path string, fn func(*os.File) error) error {
	if path == "-" {
		return fn(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
