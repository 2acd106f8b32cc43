package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackcoderx/reswob/pkg/core"
	"github.com/blackcoderx/reswob/pkg/render"
	"github.com/blackcoderx/reswob/pkg/storage"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .reswob-requests/config.json in the workspace",
	Args:  cobra.NoArgs,
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		root, err := a.root()
		if err != nil {
			return err
		}
		created, err := core.InitializeWorkspace(a.store.Fs(), root)
		if err != nil {
			return err
		}
		configPath := filepath.Join(root, storage.DirName, core.ConfigFileName)
		if !created {
			fmt.Println(render.DimStyle.Render(fmt.Sprintf("%s already exists", configPath)))
			return nil
		}
		fmt.Println(render.SuccessStyle.Render(fmt.Sprintf("Created %s", configPath)))
		return nil
	}),
}
