package tools

import (
	"encoding/json"
	"fmt"

	"github.com/blackcoderx/reswob/pkg/storage"
)

type folderArgs struct {
	Name       string `json:"name"`
	Collection string `json:"collection"`
	Color      string `json:"color"`
}

func parseFolderArgs(args string) (folderArgs, error) {
	var params folderArgs
	if err := json.Unmarshal([]byte(args), &params); err != nil {
		return params, fmt.Errorf("invalid parameters: %w", err)
	}
	return params, nil
}

// CreateFolderTool creates an empty folder
type CreateFolderTool struct {
	folders *storage.Folders
}

func NewCreateFolderTool(f *storage.Folders) *CreateFolderTool {
	return &CreateFolderTool{folders: f}
}

func (t *CreateFolderTool) Name() string { return "create_folder" }

func (t *CreateFolderTool) Description() string {
	return "Create an empty folder. Fails if a folder with the same name exists."
}

func (t *CreateFolderTool) Parameters() string {
	return `{"collection": "string (required) - Folder name"}`
}

func (t *CreateFolderTool) Execute(args string) (string, error) {
	params, err := parseFolderArgs(args)
	if err != nil {
		return "", err
	}
	if params.Collection == "" {
		return "", fmt.Errorf("collection is required")
	}
	if err := t.folders.CreateFolder(params.Collection); err != nil {
		return "", err
	}
	return fmt.Sprintf("Folder '%s' created", params.Collection), nil
}

// DeleteFolderTool deletes a folder, keeping its requests
type DeleteFolderTool struct {
	folders *storage.Folders
}

func NewDeleteFolderTool(f *storage.Folders) *DeleteFolderTool {
	return &DeleteFolderTool{folders: f}
}

func (t *DeleteFolderTool) Name() string { return "delete_folder" }

func (t *DeleteFolderTool) Description() string {
	return "Delete a folder. Its requests are kept and become uncategorized."
}

func (t *DeleteFolderTool) Parameters() string {
	return `{"collection": "string (required) - Folder name"}`
}

func (t *DeleteFolderTool) Execute(args string) (string, error) {
	params, err := parseFolderArgs(args)
	if err != nil {
		return "", err
	}
	if params.Collection == "" {
		return "", fmt.Errorf("collection is required")
	}
	if err := t.folders.DeleteFolder(params.Collection); err != nil {
		return "", err
	}
	return fmt.Sprintf("Folder '%s' deleted", params.Collection), nil
}

// AddToFolderTool files a request under a folder
type AddToFolderTool struct {
	folders *storage.Folders
}

func NewAddToFolderTool(f *storage.Folders) *AddToFolderTool {
	return &AddToFolderTool{folders: f}
}

func (t *AddToFolderTool) Name() string { return "add_to_folder" }

func (t *AddToFolderTool) Description() string {
	return "Move a saved request into a folder. A request belongs to at most one folder."
}

func (t *AddToFolderTool) Parameters() string {
	return `{"name": "string (required) - Request name", "collection": "string (required) - Folder name"}`
}

func (t *AddToFolderTool) Execute(args string) (string, error) {
	params, err := parseFolderArgs(args)
	if err != nil {
		return "", err
	}
	if params.Name == "" || params.Collection == "" {
		return "", fmt.Errorf("name and collection are required")
	}
	if err := t.folders.AddRequestToFolder(params.Name, params.Collection); err != nil {
		return "", err
	}
	return fmt.Sprintf("Request '%s' added to folder '%s'", params.Name, params.Collection), nil
}

// RemoveFromFolderTool uncategorizes a request
type RemoveFromFolderTool struct {
	folders *storage.Folders
}

func NewRemoveFromFolderTool(f *storage.Folders) *RemoveFromFolderTool {
	return &RemoveFromFolderTool{folders: f}
}

func (t *RemoveFromFolderTool) Name() string { return "remove_from_folder" }

func (t *RemoveFromFolderTool) Description() string {
	return "Remove a saved request from its folder."
}

func (t *RemoveFromFolderTool) Parameters() string {
	return `{"name": "string (required) - Request name"}`
}

func (t *RemoveFromFolderTool) Execute(args string) (string, error) {
	params, err := parseFolderArgs(args)
	if err != nil {
		return "", err
	}
	if params.Name == "" {
		return "", fmt.Errorf("name is required")
	}
	if err := t.folders.RemoveRequestFromFolder(params.Name); err != nil {
		return "", err
	}
	return fmt.Sprintf("Request '%s' removed from its folder", params.Name), nil
}

// SetFolderColorTool sets a folder's display color
type SetFolderColorTool struct {
	folders *storage.Folders
}

func NewSetFolderColorTool(f *storage.Folders) *SetFolderColorTool {
	return &SetFolderColorTool{folders: f}
}

func (t *SetFolderColorTool) Name() string { return "set_folder_color" }

func (t *SetFolderColorTool) Description() string {
	return "Set the display color of a folder. An empty color clears it."
}

func (t *SetFolderColorTool) Parameters() string {
	return `{"collection": "string (required) - Folder name", "color": "string (optional) - Color name or hex value"}`
}

func (t *SetFolderColorTool) Execute(args string) (string, error) {
	params, err := parseFolderArgs(args)
	if err != nil {
		return "", err
	}
	if params.Collection == "" {
		return "", fmt.Errorf("collection is required")
	}
	if err := t.folders.SetColor(params.Collection, params.Color); err != nil {
		return "", err
	}
	return fmt.Sprintf("Folder '%s' color set", params.Collection), nil
}

// ListFoldersTool lists folders with their members
type ListFoldersTool struct {
	folders *storage.Folders
}

func NewListFoldersTool(f *storage.Folders) *ListFoldersTool {
	return &ListFoldersTool{folders: f}
}

func (t *ListFoldersTool) Name() string { return "list_folders" }

func (t *ListFoldersTool) Description() string {
	return "List folders with their member request names."
}

func (t *ListFoldersTool) Parameters() string {
	return `{}`
}

func (t *ListFoldersTool) Execute(args string) (string, error) {
	folders, err := t.folders.ListFolders()
	if err != nil {
		return "", err
	}
	return marshalResult(folders)
}
