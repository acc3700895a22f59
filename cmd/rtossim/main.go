// Command rtossim is the CLI entry point for the priority-inheritance
// scheduler simulator: "1".."8" runs one named scenario, "all" runs
// every scenario in catalog order, "serve [addr]" starts the
// introspection API, and a missing or unknown argument prints usage
// and exits 1.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/biandopa/rtos-pip-sim/internal/api"
	"github.com/biandopa/rtos-pip-sim/internal/render"
	"github.com/biandopa/rtos-pip-sim/internal/rtos"
	"github.com/biandopa/rtos-pip-sim/internal/scenarios"
	"github.com/biandopa/rtos-pip-sim/utils/config"
	"github.com/biandopa/rtos-pip-sim/utils/log"
)

const configFile = "config.json"

// serveConfig is the engine configuration for the serve subcommand, read
// from config.json when one is present in the working directory.
type serveConfig struct {
	Port     int    `json:"port"`
	LogLevel string `json:"log_level"`
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	arg := os.Args[1]

	switch {
	case arg == "all":
		for _, s := range scenarios.List() {
			runScenario(s.Name)
		}
	case arg == "serve":
		cfg := serveConfig{Port: 8080, LogLevel: "info"}
		if _, err := os.Stat(configFile); err == nil {
			cfg = config.Load[serveConfig](configFile)
		}
		addr := fmt.Sprintf(":%d", cfg.Port)
		if len(os.Args) >= 3 {
			addr = os.Args[2]
		}
		serve(addr, cfg.LogLevel)
	default:
		if _, ok := scenarios.Get(arg); !ok {
			printUsage()
			os.Exit(1)
		}
		runScenario(arg)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: rtossim <1-8|all|serve [addr]>")
	fmt.Fprintln(os.Stderr, "scenarios:")
	for _, s := range scenarios.List() {
		fmt.Fprintf(os.Stderr, "  %-3s %-28s %s\n", s.Name, s.Title, s.Description)
	}
}

func runScenario(name string) {
	s, ok := scenarios.Get(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown scenario %q\n", name)
		return
	}

	sched := s.NewScheduler()
	defer sched.Destroy()

	fmt.Printf("=== scenario %s: %s ===\n", s.Name, s.Title)
	if err := scenarios.Run(name, sched); err != nil {
		fmt.Fprintf(os.Stderr, "scenario %s failed: %v\n", name, err)
		return
	}

	render.RenderGantt(os.Stdout, sched.Events(), sched.Tasks())

	if sched.Policy == rtos.PolicyRateMonotonic {
		render.RenderRMReport(os.Stdout, sched.RMSchedulabilityTest())
	}
	fmt.Println()
}

func serve(addr, logLevel string) {
	logger := log.BuildLogger(logLevel)
	logger.Info("starting introspection API", log.StringAttr("addr", addr))

	if err := http.ListenAndServe(addr, api.NewRouter(logger)); err != nil {
		logger.Error("introspection API server stopped", log.ErrAttr(err))
		os.Exit(1)
	}
}
