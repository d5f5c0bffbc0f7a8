package cli

import "flag"

const versionString = "1.0.0"
const defaultConfigPath = "./data/config/inscope.toml"

type cliOptions struct {
	configPath   string
	once         bool
	ui           bool
	resolve      string
	resolveIn    string
	resolveKinds string
	unused       bool
	unresolved   bool
	reportTSV    string
	reportJSON   string
	verbose      bool
	version      bool
	args         []string
}

func parseOptions(args []string) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("inscope", flag.ContinueOnError)

	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to config file")
	fs.BoolVar(&opts.once, "once", false, "Run single scan and exit")
	fs.BoolVar(&opts.ui, "ui", false, "Enable terminal UI mode")
	fs.StringVar(&opts.resolve, "resolve", "", "Resolve an unqualified name through a file's imports")
	fs.StringVar(&opts.resolveIn, "in", "", "Source file whose imports --resolve walks")
	fs.StringVar(&opts.resolveKinds, "kinds", "", "Comma-separated kind filter for --resolve (class,method,field,enum_const)")
	fs.BoolVar(&opts.unused, "unused", false, "Print unused import diagnostics and exit")
	fs.BoolVar(&opts.unresolved, "unresolved", false, "Print unresolved import diagnostics and exit")
	fs.StringVar(&opts.reportTSV, "report-tsv", "", "Write the diagnostics report TSV to this path")
	fs.StringVar(&opts.reportJSON, "report-json", "", "Write the diagnostics report JSON to this path")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts.args = fs.Args()
	return opts, nil
}
