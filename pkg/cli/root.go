package cli

import (
	"github.com/spf13/cobra"

	"github.com/r3c/creep/pkg/console"
	"github.com/r3c/creep/pkg/logger"
)

var (
	appendFiles   []string
	removeFiles   []string
	extraAppend   []string
	extraRemove   []string
	baseDir       string
	definitionRef string
	revFrom       string
	revTo         string
	quiet         bool
	verbose       bool
	yes           bool
	noColor       bool
)

// NewRootCommand builds the "creep" cobra command: zero or more positional
// location names (§6), plus the flags that populate an Options value passed
// to Run.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "creep [locations...]",
		Short: "Incrementally deploy a workspace to one or more destinations",
		Long: `creep deploys the files that changed between two revisions of a workspace
to one or more named destinations, recursing into cascaded definitions
after each successful deployment.

With no positional arguments, creep deploys to the "default" location.
A single "*" deploys to every location in the environment.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				console.SetNoColor(true)
			}
			switch {
			case quiet:
				logger.SetLevel(logger.LevelQuiet)
			case verbose:
				logger.SetLevel(logger.LevelVerbose)
			default:
				logger.SetLevel(logger.LevelNormal)
			}

			opts := Options{
				Locations:     args,
				AppendFiles:   append(append([]string{}, appendFiles...), extraAppend...),
				RemoveFiles:   append(append([]string{}, removeFiles...), extraRemove...),
				Base:          baseDir,
				DefinitionRef: definitionRef,
				RevFrom:       revFrom,
				RevTo:         revTo,
				Yes:           yes,
			}

			if !Run(cmd.Context(), opts) {
				return errRunFailed
			}
			return nil
		},
	}

	root.Flags().StringArrayVarP(&appendFiles, "append", "a", nil, "additionally deploy this file or directory (repeatable)")
	root.Flags().StringVarP(&baseDir, "base", "b", "", "base directory the definition reference and origin resolve against")
	root.Flags().StringVarP(&definitionRef, "definition", "d", "", "definition file, directory, or inline JSON object")
	root.Flags().StringVarP(&revFrom, "rev-from", "f", "", "deploy changes starting from this revision instead of the recorded one")
	root.Flags().StringArrayVarP(&removeFiles, "remove", "r", nil, "additionally remove this path from the destination (repeatable)")
	root.Flags().StringVarP(&revTo, "rev-to", "t", "", "deploy changes up to this revision instead of the workspace's current one")
	root.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress normal output, only warnings and errors")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "emit additional debug output")
	root.Flags().BoolVarP(&yes, "yes", "y", false, "answer every confirmation prompt as yes")
	root.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI color output")
	root.Flags().StringArrayVar(&extraAppend, "extra-append", nil, "")
	root.Flags().StringArrayVar(&extraRemove, "extra-remove", nil, "")
	_ = root.Flags().MarkHidden("extra-append")
	_ = root.Flags().MarkHidden("extra-remove")

	return root
}
