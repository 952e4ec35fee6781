package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/appengine-ltd/flamepath/internal/factory"
	"github.com/appengine-ltd/flamepath/internal/orchestrator"
	"github.com/appengine-ltd/flamepath/internal/paramfile"
	"github.com/appengine-ltd/flamepath/internal/report"
	"github.com/appengine-ltd/flamepath/internal/settings"
)

// version, commit, date are injected at build time via -ldflags -X.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		paramPath   string
		fireLine    float64
		format      string
		watch       bool
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&paramPath, "params", "", "path to a parameter file (required)")
	flag.Float64Var(&fireLine, "fireline", 0, "fire-line length in metres, overriding the parameter file's value")
	flag.StringVar(&format, "format", "text", "output format: text or json")
	flag.BoolVar(&watch, "watch", false, "step through the result interactively instead of printing it")
	flag.Parse()

	if showVersion {
		fmt.Printf("flamepath %s (%s) %s\n", version, commit, date)
		return
	}

	if paramPath == "" {
		fmt.Fprintln(os.Stderr, "flamepath: -params is required")
		os.Exit(1)
	}
	if format != "text" && format != "json" {
		fmt.Fprintf(os.Stderr, "flamepath: -format must be \"text\" or \"json\", got %q\n", format)
		os.Exit(1)
	}

	if err := run(paramPath, fireLine, format, watch); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(paramPath string, fireLineOverride float64, format string, watch bool) error {
	f, err := os.Open(paramPath)
	if err != nil {
		return fmt.Errorf("flamepath: %w", err)
	}
	defer f.Close()

	pf, err := paramfile.Parse(f)
	if err != nil {
		return err
	}
	va := paramfile.ValueAssignments{Params: pf}

	site, err := factory.BuildSite(pf)
	if err != nil {
		return err
	}
	fireLineLength := fireLineOverride
	if fireLineLength == 0 {
		fireLineLength, err = factory.FireLineLength(va)
		if err != nil {
			return err
		}
	}

	result, err := orchestrator.Run(site, fireLineLength, settings.DefaultSettings)
	if err != nil {
		return err
	}

	if watch {
		return runWatch(site, result)
	}

	if format == "json" {
		out, err := report.RenderJSON(site, result)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	fmt.Print(report.Render(site, result))
	return nil
}
