package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/blackcoderx/reswob/pkg/core/tools"
	"github.com/blackcoderx/reswob/pkg/render"
	"github.com/blackcoderx/reswob/pkg/storage"
)

var (
	saveMethod  string
	saveURL     string
	saveHeaders []string
	saveBody    string
	saveFolder  string
	copyResult  bool
	assumeYes   bool
)

func init() {
	saveCmd.Flags().StringVarP(&saveMethod, "method", "X", "GET", "HTTP method")
	saveCmd.Flags().StringVarP(&saveURL, "url", "u", "", "request URL")
	saveCmd.Flags().StringArrayVarP(&saveHeaders, "header", "H", nil, `header as "Key: Value" (repeatable)`)
	saveCmd.Flags().StringVarP(&saveBody, "body", "d", "", "raw request body")
	saveCmd.Flags().StringVarP(&saveFolder, "folder", "f", "", "folder to file the request under")
	_ = saveCmd.MarkFlagRequired("url")

	getCmd.Flags().BoolVarP(&copyResult, "copy", "c", false, "copy the request JSON to the clipboard")
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(saveCmd, getCmd, listCmd, deleteCmd, renameCmd, sendCmd)
}

var saveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a request, replacing any request with the same name",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		headers, err := parseHeaders(saveHeaders)
		if err != nil {
			return err
		}
		req := storage.Request{
			Name:    args[0],
			Method:  saveMethod,
			URL:     saveURL,
			Headers: headers,
			Folder:  saveFolder,
		}
		if cmd.Flags().Changed("body") {
			req.Body = storage.StringPtr(saveBody)
		}
		if err := a.requests.SaveRequest(req); err != nil {
			return err
		}
		fmt.Println(render.SuccessStyle.Render(fmt.Sprintf("Saved request '%s'", req.Name)))
		return nil
	}),
}

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show a saved request",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		req, ok, err := a.requests.GetRequest(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("request '%s': %w", args[0], storage.ErrNotFound)
		}
		data, err := json.MarshalIndent(req, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		if copyResult {
			if err := clipboard.WriteAll(string(data)); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			fmt.Println(render.DimStyle.Render("Copied to clipboard"))
		}
		fmt.Println(render.HighlightJSON(string(data)))
		return nil
	}),
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved requests",
	Args:    cobra.NoArgs,
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		requests, err := a.requests.List()
		if err != nil {
			return err
		}
		fmt.Println(render.RequestTable(requests))
		return nil
	}),
}

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved request",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		ok, err := confirm(fmt.Sprintf("Delete request '%s'?", args[0]))
		if err != nil || !ok {
			return err
		}
		if err := a.requests.DeleteRequest(args[0]); err != nil {
			return err
		}
		fmt.Println(render.SuccessStyle.Render(fmt.Sprintf("Deleted request '%s'", args[0])))
		return nil
	}),
}

var renameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a saved request",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		if err := a.requests.RenameRequest(args[0], args[1]); err != nil {
			return err
		}
		fmt.Println(render.SuccessStyle.Render(fmt.Sprintf("Renamed '%s' to '%s'", args[0], args[1])))
		return nil
	}),
}

var sendCmd = &cobra.Command{
	Use:   "send <name>",
	Short: "Send a saved request and print the response",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		httpTool := tools.NewHTTPTool(a.requests, a.cfg.HTTPTimeout)
		req, err := httpTool.Saved(args[0])
		if err != nil {
			return err
		}
		a.log.V(1).Info("sending request", "name", args[0], "method", req.Method, "url", req.URL)
		resp, err := httpTool.Run(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		fmt.Print(render.Markdown(resp.FormatResponse()))
		return nil
	}),
}

// parseHeaders turns "Key: Value" flags into a header map.
func parseHeaders(raw []string) (map[string]string, error) {
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		key, value, ok := strings.Cut(h, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q, expected \"Key: Value\"", h)
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers, nil
}

// confirm asks a yes/no question unless --yes was given.
func confirm(title string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return ok, nil
}
