package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zbiljic/coverletter/internal/config"
	"github.com/zbiljic/coverletter/pkg/profile"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage the letter templates",
}

var templatesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write starter templates",
	Long: `Writes summary.txt, sample_letter.txt and prompt.txt into the templates
directory. Existing files are kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runTemplatesInitE,
}

var templatesInitFlags = templatesInitOptions{}

type templatesInitOptions struct {
	TemplatesDir string
	Force        bool
}

func templatesInitAddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&templatesInitFlags.TemplatesDir, "templates-dir", "t", "", "Directory to write the templates to")
	cmd.Flags().BoolVarP(&templatesInitFlags.Force, "force", "f", false, "Overwrite existing templates")
}

func init() {
	templatesInitAddFlags(templatesInitCmd)

	templatesCmd.AddCommand(templatesInitCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplatesInitE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(globalFlags.ConfigFile)
	if err != nil {
		return err
	}

	dir := resolveDir(templatesInitFlags.TemplatesDir, envTemplatesDir, cfg.TemplatesDir)

	written, err := profile.WriteDefaults(dir, templatesInitFlags.Force)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(written) == 0 {
		fmt.Fprintf(out, "Templates already exist in %s (use --force to overwrite)\n", dir) //nolint:errcheck
		return nil
	}

	for _, path := range written {
		fmt.Fprintf(out, "Wrote %s\n", path) //nolint:errcheck
	}
	fmt.Fprintf(out, "Edit %s and %s to describe yourself.\n", profile.SummaryFile, profile.SampleLetterFile) //nolint:errcheck

	return nil
}
