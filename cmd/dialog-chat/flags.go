// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --base-url, --preset, --temperature, --top-p, --verbose, --version

package main

import "flag"

type cliArgs struct {
	baseURL     string
	preset      string
	temperature float64
	topP        float64
	verbose     bool
	version     bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.baseURL, "base-url", "", "Backend base URL (e.g., http://localhost:8080)")
	flag.StringVar(&args.preset, "preset", "", "Sampling preset name (precise, balanced, creative, or custom)")
	flag.Float64Var(&args.temperature, "temperature", -1, "Sampling temperature override")
	flag.Float64Var(&args.topP, "top-p", -1, "Nucleus sampling override")
	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}
