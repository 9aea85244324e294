package cli

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pystub/internal/adapter/extractor"
)

func newInspectCmd(g *globalOptions) *cobra.Command {
	var internal bool

	inspectCmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the declarations a stub would be generated for",
		Long: `Parse a single Python file and print the functions, classes and
methods that would receive placeholder tests, as YAML.

Examples:
  pystub inspect mypkg/models.py
  pystub inspect -i mypkg/_helpers.py   # include internal names`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			include := internal || g.cfg.Generate.Internal
			unit, err := extractor.NewPythonExtractor(g.log).Parse(args[0], include)
			if err != nil {
				return errors.Wrap(err, "nothing to stub")
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(unit); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	inspectCmd.Flags().BoolVarP(&internal, "internal", "i", false, "include internal names starting with _")

	return inspectCmd
}
