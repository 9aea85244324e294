package cli

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pystub/config"
	"pystub/internal/logging"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	cfgFile string
	verbose int
	quiet   bool
	jsonLog bool

	cfg *config.Config
	log *zap.SugaredLogger
}

// NewRootCmd builds the pystub command tree. Running the root command
// generates stubs; subcommands are debugging aids.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}
	gen := &generateFlags{}

	rootCmd := &cobra.Command{
		Use:   "pystub <module>",
		Short: "Python unittest stub generator",
		Long: `pystub scans a Python package and writes one unittest stub file per
source file, with a placeholder test for every public function, class and
method it declares.

Example usage:
  pystub mypkg                      # Write stubs under ./test
  pystub mypkg -m tests -t 4        # Write under ./tests with 4-space indents
  pystub mypkg -X migrations -f     # Skip migrations/, overwrite existing stubs
  pystub inspect mypkg/models.py    # Show what would be stubbed`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, g, gen, args[0])
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.PersistentFlags().CountVarP(&g.verbose, "verbose", "v", "more diagnostics (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "only report warnings and errors")
	rootCmd.PersistentFlags().BoolVar(&g.jsonLog, "json-log", false, "emit diagnostics as JSON")
	gen.register(rootCmd)

	rootCmd.AddCommand(newInspectCmd(g))

	return rootCmd
}

// Execute runs the command line and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger.
func (g *globalOptions) setup(cmd *cobra.Command) error {
	var err error
	if g.cfgFile != "" {
		g.cfg, err = config.Load(g.cfgFile)
	} else {
		var dir string
		dir, err = os.Getwd()
		if err != nil {
			return errors.Wrap(err, "failed to get working directory")
		}
		g.cfg, err = config.LoadFromDir(dir)
	}
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	level := g.cfg.Logging.Level
	flags := cmd.Flags()
	switch {
	case flags.Changed("quiet") && g.quiet:
		level = logging.VerbosityToLevel(logging.VerbosityQuiet).String()
	case flags.Changed("verbose"):
		level = logging.VerbosityToLevel(g.verbose).String()
	}

	g.log, err = logging.New(level, g.cfg.Logging.JSON || g.jsonLog, cmd.OutOrStdout())
	if err != nil {
		return errors.Wrap(err, "failed to create logger")
	}
	return nil
}
