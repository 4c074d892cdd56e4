// Command svc16 loads an SVC16 program and runs it, either in the
// windowed reference host or, with --debug, in a single-step terminal
// inspector.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	getopt "github.com/pborman/getopt/v2"
	"github.com/golang/glog"

	"github.com/xyloflake/svc16/debug"
	"github.com/xyloflake/svc16/host"
	"github.com/xyloflake/svc16/loader"
	"github.com/xyloflake/svc16/vm"
)

func main() {
	optScaling := getopt.IntLong("scaling", 's', 1, "Window scaling factor")
	optMaxIPF := getopt.IntLong("max-ipf", 'm', 3000000, "Maximum instructions per frame")
	optCursor := getopt.BoolLong("cursor", 'c', "Show the cursor over the window")
	optFullscreen := getopt.BoolLong("fullscreen", 'f', "Run in borderless fullscreen")
	optVerbose := getopt.BoolLong("verbose", 'v', "Log per-frame instruction counts and timing")
	optDebug := getopt.StringLong("debug", 'd', "", "Comma-separated addresses to watch in the single-step inspector")
	getopt.Parse()

	args := getopt.Args()
	if len(args) != 1 {
		getopt.Usage()
		os.Exit(2)
	}

	image, err := loader.Load(args[0])
	if err != nil {
		glog.Errorf("svc16: %v", err)
		os.Exit(1)
	}

	if *optDebug != "" {
		watch, err := parseWatch(*optDebug)
		if err != nil {
			glog.Errorf("svc16: %v", err)
			os.Exit(2)
		}
		if err := debug.Run(vm.New(image), watch); err != nil {
			glog.Errorf("svc16: %v", err)
			os.Exit(1)
		}
		return
	}

	if *optScaling < 1 {
		glog.Errorf("svc16: the minimum scaling factor is 1")
		os.Exit(2)
	}

	opts := host.Options{
		Scaling:    *optScaling,
		MaxIPF:     *optMaxIPF,
		Cursor:     *optCursor,
		Fullscreen: *optFullscreen,
		Verbose:    *optVerbose,
	}
	// image is host.Run's own "cached initial image": it constructs the
	// VM itself and rebuilds from the same slice on a restart keypress.
	if err := host.Run(image, opts); err != nil {
		glog.Errorf("svc16: %v", err)
		os.Exit(1)
	}
}

// parseWatch splits a comma-separated list of decimal or 0x-prefixed
// hex addresses into the word values the inspector watches.
func parseWatch(raw string) ([]vm.Word, error) {
	parts := strings.Split(raw, ",")
	watch := make([]vm.Word, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseUint(p, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid watch address %q: %w", p, err)
		}
		watch = append(watch, vm.Word(n))
	}
	return watch, nil
}
