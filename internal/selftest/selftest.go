// Package selftest exercises every entry point of a [easylog.Logger]
// under a fixed set of option scenarios.
package selftest

import (
	"fmt"
	"io"

	"github.com/yuin/easylog"
)

// Case is an entry point exercised by [Run] .
type Case struct {
	Name string
	Run  func(l *easylog.Logger, arg any) easylog.Outcome
}

func boolArg(arg any) bool {
	b, _ := arg.(bool)
	return b
}

// Cases are all entry points exercised by [Run] .
var Cases = []Case{
	{"SetSilent", func(l *easylog.Logger, arg any) easylog.Outcome {
		return l.SetSilent(boolArg(arg))
	}},
	{"SetFailOnError", func(l *easylog.Logger, arg any) easylog.Outcome {
		return l.SetFailOnError(boolArg(arg))
	}},
	{"SetRegularOnly", func(l *easylog.Logger, arg any) easylog.Outcome {
		return l.SetRegularOnly(boolArg(arg))
	}},
	{"ForceLog", func(l *easylog.Logger, arg any) easylog.Outcome {
		return l.ForceLog("selftest:", easylog.SeverityDebug, arg)
	}},
	{"Log", func(l *easylog.Logger, arg any) easylog.Outcome {
		return l.Log("selftest:", arg)
	}},
	{"Debug", func(l *easylog.Logger, arg any) easylog.Outcome {
		return l.Debug("selftest:", arg)
	}},
	{"Warn", func(l *easylog.Logger, arg any) easylog.Outcome {
		return l.Warn("selftest:", arg)
	}},
	{"Error", func(l *easylog.Logger, arg any) easylog.Outcome {
		return l.Error("selftest:", arg)
	}},
}

// Scenario is a set of options and an argument passed to each [Case] .
type Scenario struct {
	Name  string
	Arg   any
	Setup func(l *easylog.Logger)
}

// Scenarios are all scenarios used by [Run] .
// Options are reset to the values before [Run] for each scenario.
var Scenarios = []Scenario{
	{Name: "string test", Arg: "string test"},
	{Name: "all options false test", Arg: false},
	{Name: "all options true test", Arg: true},
	{Name: "silenced=true test", Arg: false, Setup: func(l *easylog.Logger) {
		l.SetSilent(true)
	}},
	{Name: "regularOnly=true test", Arg: false, Setup: func(l *easylog.Logger) {
		l.SetRegularOnly(true)
	}},
	{Name: "failOnError=true test", Arg: false, Setup: func(l *easylog.Logger) {
		l.SetFailOnError(true)
	}},
}

// Result is an outcome of a [Case] in a [Scenario] .
type Result struct {
	Case     string
	Scenario string
	Outcome  easylog.Outcome
}

// Report is a result of [Run] .
type Report struct {
	Results []Result
}

// Count returns a number of results with the given kind.
func (r *Report) Count(kind easylog.OutcomeKind) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome.Kind == kind {
			n++
		}
	}
	return n
}

// Find returns a result for the given case and scenario.
func (r *Report) Find(caseName, scenario string) (Result, bool) {
	for _, res := range r.Results {
		if res.Case == caseName && res.Scenario == scenario {
			return res, true
		}
	}
	return Result{}, false
}

// Run runs all [Cases] in all [Scenarios] and writes progress to w.
// Options of l are restored when Run returns.
func Run(l *easylog.Logger, w io.Writer) *Report {
	saved := l.Options()
	defer l.SetOptions(saved)

	printOptions(l, "(Before Tests)")
	report := &Report{}
	for _, c := range Cases {
		for _, s := range Scenarios {
			l.SetOptions(saved)
			if s.Setup != nil {
				s.Setup(l)
			}
			fmt.Fprintf(w, "Testing function: (%s) %s\n", s.Name, c.Name)
			o := c.Run(l, s.Arg)
			fmt.Fprintf(w, "\tOutcome: %s\n\n", o)
			report.Results = append(report.Results, Result{
				Case:     c.Name,
				Scenario: s.Name,
				Outcome:  o,
			})
		}
	}
	l.SetOptions(saved)
	printOptions(l, "(After Tests)")
	return report
}

func printOptions(l *easylog.Logger, label string) {
	s, err := easylog.PrettyString(l.Options(), "options=")
	if err != nil {
		l.Print(label, err)
		return
	}
	l.Print(label, s)
}
