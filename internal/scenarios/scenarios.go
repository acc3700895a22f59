// Package scenarios holds the eight canonical end-to-end scenarios that
// exercise internal/rtos, catalogued from an embedded YAML file and each
// wired to a driver function.
package scenarios

import (
	_ "embed"
	"fmt"

	"github.com/biandopa/rtos-pip-sim/internal/rtos"
	"github.com/biandopa/rtos-pip-sim/utils/config"
)

//go:embed data/scenarios.yaml
var catalogYAML []byte

type catalogEntry struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Policy      string `yaml:"policy"`
	PIEnabled   bool   `yaml:"pi_enabled"`
}

type catalogFile struct {
	Scenarios []catalogEntry `yaml:"scenarios"`
}

// Scenario is a named, parameterized driver: it creates tasks and
// resources against a caller-supplied scheduler and runs the tick loop
// to exercise one documented behavior. DefaultPolicy/DefaultPIEnabled are
// the configuration the scenario was designed against; NewScheduler
// builds a scheduler with them.
type Scenario struct {
	Name             string
	Title            string
	Description      string
	DefaultPolicy    rtos.Policy
	DefaultPIEnabled bool
	run              func(*rtos.Scheduler) error
}

// NewScheduler builds a scheduler configured the way this scenario was
// designed to run against.
func (s Scenario) NewScheduler() *rtos.Scheduler {
	return rtos.Init(s.DefaultPolicy, s.DefaultPIEnabled)
}

var runFuncs = map[string]func(*rtos.Scheduler) error{
	"1": runStrictPriority,
	"2": runPreemption,
	"3": runPIPResolvesInversion,
	"4": runNoPIPInversion,
	"5": runTransitivePIP,
	"6": runRateMonotonic,
	"7": runSemaphoreProducerConsumer,
	"8": runDeadlineMiss,
}

var catalog []Scenario

func init() {
	cat := config.LoadYAMLBytes[catalogFile](catalogYAML)
	catalog = make([]Scenario, 0, len(cat.Scenarios))
	for _, entry := range cat.Scenarios {
		run, ok := runFuncs[entry.Name]
		if !ok {
			panic(fmt.Sprintf("scenario catalog entry %q has no registered driver", entry.Name))
		}
		policy := rtos.PolicyPriority
		if entry.Policy == "rate_monotonic" {
			policy = rtos.PolicyRateMonotonic
		}
		catalog = append(catalog, Scenario{
			Name:             entry.Name,
			Title:            entry.Title,
			Description:      entry.Description,
			DefaultPolicy:    policy,
			DefaultPIEnabled: entry.PIEnabled,
			run:              run,
		})
	}
}

// List returns every catalogued scenario in catalog order.
func List() []Scenario {
	return catalog
}

// Get looks up a scenario by name ("1".."8").
func Get(name string) (Scenario, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// Run executes the scenario's driver against sched.
func Run(name string, sched *rtos.Scheduler) error {
	s, ok := Get(name)
	if !ok {
		return fmt.Errorf("unknown scenario %q", name)
	}
	return s.run(sched)
}

func terminateWhenExhausted(sched *rtos.Scheduler, tasks ...*rtos.Task) {
	for _, t := range tasks {
		if t.State != rtos.Terminated && t.RemainingWork <= 0 {
			sched.TaskTerminate(t)
		}
	}
}

func allTerminated(tasks ...*rtos.Task) bool {
	for _, t := range tasks {
		if t.State != rtos.Terminated {
			return false
		}
	}
	return true
}
