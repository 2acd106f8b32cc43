package transfer

import (
	"fmt"
	"strings"

	"github.com/blackcoderx/reswob/pkg/storage"
)

// Report describes the outcome of a merge.
type Report struct {
	Format          Format
	AddedRequests   []string
	SkippedRequests []string
	AddedFolders    []string
	SkippedFolders  []string
}

// Summary renders the report as a single line for the user.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported %d request(s) and %d folder(s) from %s file",
		len(r.AddedRequests), len(r.AddedFolders), r.Format)
	if n := len(r.SkippedRequests) + len(r.SkippedFolders); n > 0 {
		fmt.Fprintf(&b, ", skipped %d existing name(s)", n)
	}
	return b.String()
}

// Merge appends every request and folder of incoming whose name is not yet
// taken in existing. Nothing in existing is modified or renamed. Requests
// and folders are merged independently, so a folder may be skipped while
// some of its requests are added and vice versa. Within incoming the first
// occurrence of a name wins.
func Merge(existing, incoming *storage.Document) *Report {
	report := &Report{}
	if incoming == nil {
		return report
	}

	taken := make(map[string]bool, len(existing.Requests))
	for _, r := range existing.Requests {
		taken[r.Name] = true
	}
	for _, r := range incoming.Requests {
		if taken[r.Name] {
			report.SkippedRequests = append(report.SkippedRequests, r.Name)
			continue
		}
		taken[r.Name] = true
		r = r.Clone()
		if r.Headers == nil {
			r.Headers = map[string]string{}
		}
		existing.Requests = append(existing.Requests, r)
		report.AddedRequests = append(report.AddedRequests, r.Name)
	}

	takenFolders := make(map[string]bool, len(existing.Folders))
	for _, f := range existing.Folders {
		takenFolders[f.Name] = true
	}
	for _, f := range incoming.Folders {
		if takenFolders[f.Name] {
			report.SkippedFolders = append(report.SkippedFolders, f.Name)
			continue
		}
		takenFolders[f.Name] = true
		members := make([]string, len(f.Members))
		copy(members, f.Members)
		existing.Folders = append(existing.Folders, storage.Folder{Name: f.Name, Members: members, Color: f.Color})
		report.AddedFolders = append(report.AddedFolders, f.Name)
	}
	return report
}
