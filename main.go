package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	flag "github.com/ogier/pflag"

	"github.com/pgtoolbelt/pgtoolbelt/config"
	"github.com/pgtoolbelt/pgtoolbelt/runner"
	"github.com/pgtoolbelt/pgtoolbelt/util"
)

const usageIntro = `pgtoolbelt - PostgreSQL administration snippets as a tool

Usage:
  pgtoolbelt --list
  pgtoolbelt --search TERM
  pgtoolbelt --show SNIPPET
  pgtoolbelt --run SNIPPET [--param KEY=VALUE ...] [--force] [--json]
`

func main() {
	var showList bool
	var searchTerm string
	var showID string
	var runID string
	var params paramFlags
	var configFilename string
	var serverSection string
	var databaseName string
	var file string
	var force bool
	var jsonOutput bool
	var watchInterval int
	var verbose bool
	var quiet bool

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usageIntro+"\n")
		flag.PrintDefaults()
	}

	flag.BoolVarP(&showList, "list", "l", false, "List all snippets")
	flag.StringVar(&searchTerm, "search", "", "List snippets matching the term")
	flag.StringVar(&showID, "show", "", "Print one snippet in full")
	flag.StringVarP(&runID, "run", "r", "", "Run a snippet against the configured server")
	flag.VarP(&params, "param", "p", "Placeholder value as KEY=VALUE (repeatable)")
	flag.StringVarP(&configFilename, "config", "c", "", "Config file to read from (default /etc/pgtoolbelt.conf)")
	flag.StringVar(&serverSection, "server", "", "Config section of the server to use (default: first)")
	flag.StringVarP(&databaseName, "database", "d", "", "Connect to this database instead of the configured one")
	flag.StringVar(&file, "file", "", "Output/input file for dump and restore snippets")
	flag.BoolVar(&force, "force", false, "Allow running destructive snippets")
	flag.BoolVar(&jsonOutput, "json", false, "Emit results as JSON instead of a table")
	flag.IntVarP(&watchInterval, "watch", "w", 0, "Re-run the snippet every N seconds until interrupted")
	flag.BoolVarP(&verbose, "verbose", "v", false, "Print verbose debug output")
	flag.BoolVarP(&quiet, "quiet", "q", false, "Only print errors")
	flag.Parse()

	logger := util.NewLogger(verbose, quiet)

	switch {
	case showList:
		exitOnError(logger, runner.List(os.Stdout))
	case searchTerm != "":
		exitOnError(logger, runner.SearchSnippets(os.Stdout, searchTerm))
	case showID != "":
		exitOnError(logger, runner.Show(os.Stdout, showID))
	case runID != "":
		server, err := selectServer(logger, configFilename, serverSection)
		if err != nil {
			logger.PrintError("Config Error: %s", err)
			os.Exit(1)
		}

		opts := runner.Opts{
			SnippetID:    runID,
			Params:       params.values,
			DatabaseName: databaseName,
			File:         file,
			Force:        force,
			JSON:         jsonOutput,
		}

		if watchInterval > 0 {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			interval := time.Duration(watchInterval) * time.Second
			runner.Watch(ctx, logger, interval, func() error {
				return runner.Run(logger, server, opts, os.Stdout)
			})
			return
		}

		exitOnError(logger, runner.Run(logger, server, opts, os.Stdout))
	default:
		flag.Usage()
		os.Exit(1)
	}
}

func selectServer(logger *util.Logger, configFilename string, serverSection string) (*config.ServerConfig, error) {
	conf, err := config.Read(logger, configFilename)
	if err != nil {
		return nil, err
	}

	if serverSection != "" {
		server, err := conf.ServerBySection(serverSection)
		if err != nil {
			return nil, err
		}
		return &server, nil
	}
	if len(conf.Servers) == 0 {
		return nil, fmt.Errorf("no servers configured")
	}
	return &conf.Servers[0], nil
}

func exitOnError(logger *util.Logger, err error) {
	if err != nil {
		logger.PrintError("%s", err)
		os.Exit(1)
	}
}

// paramFlags collects repeated --param KEY=VALUE flags.
type paramFlags struct {
	values map[string]string
}

func (p *paramFlags) String() string {
	var pairs []string
	for key, value := range p.values {
		pairs = append(pairs, key+"="+value)
	}
	return strings.Join(pairs, ",")
}

func (p *paramFlags) Set(raw string) error {
	key, value, found := strings.Cut(raw, "=")
	if !found || key == "" {
		return fmt.Errorf("expected KEY=VALUE, got %q", raw)
	}
	if p.values == nil {
		p.values = make(map[string]string)
	}
	p.values[key] = value
	return nil
}
