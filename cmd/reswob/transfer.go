package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackcoderx/reswob/pkg/render"
	"github.com/blackcoderx/reswob/pkg/storage"
	"github.com/blackcoderx/reswob/pkg/transfer"
)

var dryRun bool

func init() {
	importCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show the resulting change without saving it")
	importCmd.Flags().Bool("strict", false, "reject native files that fail schema validation")
	_ = viper.BindPFlag("strict_import", importCmd.Flags().Lookup("strict"))

	rootCmd.AddCommand(exportCmd, importCmd, validateCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the collection (.postman_collection.json, .yaml or native .json)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		format, err := a.transfer.ExportToFile(args[0])
		if err != nil {
			return err
		}
		fmt.Println(render.SuccessStyle.Render(fmt.Sprintf("Exported collection to %s (%s)", args[0], format)))
		return nil
	}),
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge requests and folders from a Postman, YAML or native file",
	Long: `Merge requests and folders from a file into the collection.
Names that already exist are kept and the incoming entry is skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		if dryRun {
			preview, err := a.transfer.PreviewImport(args[0])
			if err != nil {
				return err
			}
			fmt.Println(preview.Report.Summary())
			if preview.Diff == "" {
				fmt.Println(render.DimStyle.Render("No changes."))
				return nil
			}
			fmt.Print(render.Markdown("```diff\n" + preview.Diff + "```"))
			return nil
		}

		report, err := a.transfer.ImportFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Println(render.SuccessStyle.Render(report.Summary()))
		return nil
	}),
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a native collection file against the document schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			p, err := a.store.Path()
			if err != nil {
				return err
			}
			path = p
		}

		data, err := afero.ReadFile(a.store.Fs(), path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		problems, err := storage.ValidateDocument(data)
		if err != nil {
			return err
		}
		if len(problems) == 0 {
			fmt.Println(render.SuccessStyle.Render(fmt.Sprintf("%s is valid", path)))
			return nil
		}
		for _, p := range problems {
			fmt.Println(render.ErrorStyle.Render("- " + p))
		}
		return fmt.Errorf("%s: %d problem(s): %w", path, len(problems), transfer.ErrInvalidDocument)
	}),
}
