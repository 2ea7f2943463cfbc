package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ironsheep/texture-prep-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const logLevelEnv = "TEXPREP_LOG_LEVEL"

type options struct {
	version    bool
	help       bool
	logLevel   string
	maxWorkers int
}

func parseFlags(args []string) (*options, *pflag.FlagSet, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("texprep-mcp", pflag.ContinueOnError)
	fs.BoolVarP(&opts.version, "version", "v", false, "Print version information")
	fs.BoolVarP(&opts.help, "help", "h", false, "Print this help message")
	fs.StringVar(&opts.logLevel, "log-level", os.Getenv(logLevelEnv), "Log level (debug enables request tracing)")
	fs.IntVar(&opts.maxWorkers, "max-workers", 0, "Concurrent pipelines for batch tools (0 = number of CPUs)")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	return opts, fs, nil
}

func printUsage(fs *pflag.FlagSet) {
	fmt.Println("texprep-mcp - MCP server for texture synthesis preprocessing")
	fmt.Println()
	fmt.Println("Usage: texprep-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Print(fs.FlagUsages())
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug    Enable debug logging\n", logLevelEnv)
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
}

func main() {
	opts, fs, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage(fs)
		os.Exit(2)
	}

	switch {
	case opts.version:
		fmt.Printf("texprep-mcp %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case opts.help:
		printUsage(fs)
		return
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := strings.EqualFold(opts.logLevel, "debug")
	if debug {
		log.Printf("Texture Prep MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	server.Version = Version
	srv := server.New(server.Config{
		MaxWorkers: opts.maxWorkers,
		Debug:      debug,
	})
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
