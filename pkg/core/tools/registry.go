package tools

import (
	"time"

	"github.com/blackcoderx/reswob/pkg/core"
	"github.com/blackcoderx/reswob/pkg/storage"
	"github.com/blackcoderx/reswob/pkg/transfer"
)

// Workspace bundles the services the tools operate on.
type Workspace struct {
	Root        storage.RootResolver
	Store       *storage.Store
	Requests    *storage.Requests
	Folders     *storage.Folders
	Transfer    *transfer.Service
	HTTPTimeout time.Duration
}

// RegisterAll registers every editor-facing tool on d.
func RegisterAll(d *core.Dispatcher, ws Workspace) {
	d.RegisterTool(NewSaveRequestTool(ws.Requests))
	d.RegisterTool(NewLoadRequestTool(ws.Requests))
	d.RegisterTool(NewDeleteRequestTool(ws.Requests))
	d.RegisterTool(NewRenameRequestTool(ws.Requests))
	d.RegisterTool(NewListRequestsTool(ws.Requests))

	d.RegisterTool(NewCreateFolderTool(ws.Folders))
	d.RegisterTool(NewDeleteFolderTool(ws.Folders))
	d.RegisterTool(NewAddToFolderTool(ws.Folders))
	d.RegisterTool(NewRemoveFromFolderTool(ws.Folders))
	d.RegisterTool(NewSetFolderColorTool(ws.Folders))
	d.RegisterTool(NewListFoldersTool(ws.Folders))

	d.RegisterTool(NewExportTool(ws.Transfer, ws.Root))
	d.RegisterTool(NewImportTool(ws.Transfer, ws.Root))
	d.RegisterTool(NewInvalidateCacheTool(ws.Store))

	d.RegisterTool(NewHTTPTool(ws.Requests, ws.HTTPTimeout))
}
