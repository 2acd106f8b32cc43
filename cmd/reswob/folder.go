package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackcoderx/reswob/pkg/render"
)

func init() {
	folderDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")

	folderCmd.AddCommand(
		folderCreateCmd,
		folderDeleteCmd,
		folderAddCmd,
		folderRemoveCmd,
		folderColorCmd,
		folderListCmd,
	)
	rootCmd.AddCommand(folderCmd)
}

var folderCmd = &cobra.Command{
	Use:     "folder",
	Aliases: []string{"collection"},
	Short:   "Group saved requests into folders",
}

var folderCreateCmd = &cobra.Command{
	Use:   "create <folder>",
	Short: "Create an empty folder",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		if err := a.folders.CreateFolder(args[0]); err != nil {
			return err
		}
		fmt.Println(render.SuccessStyle.Render(fmt.Sprintf("Created folder '%s'", args[0])))
		return nil
	}),
}

var folderDeleteCmd = &cobra.Command{
	Use:   "delete <folder>",
	Short: "Delete a folder; its requests become uncategorized",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		ok, err := confirm(fmt.Sprintf("Delete folder '%s'? Its requests are kept.", args[0]))
		if err != nil || !ok {
			return err
		}
		if err := a.folders.DeleteFolder(args[0]); err != nil {
			return err
		}
		fmt.Println(render.SuccessStyle.Render(fmt.Sprintf("Deleted folder '%s'", args[0])))
		return nil
	}),
}

var folderAddCmd = &cobra.Command{
	Use:   "add <request> <folder>",
	Short: "Move a request into a folder",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		if err := a.folders.AddRequestToFolder(args[0], args[1]); err != nil {
			return err
		}
		fmt.Println(render.SuccessStyle.Render(fmt.Sprintf("Moved '%s' to '%s'", args[0], args[1])))
		return nil
	}),
}

var folderRemoveCmd = &cobra.Command{
	Use:   "remove <request>",
	Short: "Take a request out of its folder",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		if err := a.folders.RemoveRequestFromFolder(args[0]); err != nil {
			return err
		}
		fmt.Println(render.SuccessStyle.Render(fmt.Sprintf("'%s' is now uncategorized", args[0])))
		return nil
	}),
}

var folderColorCmd = &cobra.Command{
	Use:   "color <folder> <color>",
	Short: "Set a folder's display color (name or #hex, empty to clear)",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		return a.folders.SetColor(args[0], args[1])
	}),
}

var folderListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "tree"},
	Short:   "Show folders and their requests",
	Args:    cobra.NoArgs,
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		doc, err := a.store.Document()
		if err != nil {
			return err
		}
		fmt.Println(render.FolderTree(doc))
		return nil
	}),
}
