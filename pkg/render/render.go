package render

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/blackcoderx/reswob/pkg/storage"
)

// RequestTable renders requests as a table of name, method, URL and folder.
func RequestTable(requests []storage.Request) string {
	if len(requests) == 0 {
		return DimStyle.Render("No saved requests.")
	}

	rows := make([][]string, 0, len(requests))
	for _, r := range requests {
		rows = append(rows, []string{r.Name, r.Method, r.URL, r.Folder})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(DimStyle).
		Headers("NAME", "METHOD", "URL", "FOLDER").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle.Padding(0, 1)
			}
			if col == 1 {
				return MethodStyle(rows[row][1]).Padding(0, 1)
			}
			return CellStyle
		})
	return t.String()
}

// FolderTree renders the collection the way the editor sidebar shows it:
// one node per folder holding the requests that point at it, followed by
// uncategorized requests.
func FolderTree(doc *storage.Document) string {
	root := tree.Root(HeaderStyle.Render("Requests")).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(DimStyle)

	byFolder := make(map[string][]storage.Request)
	var uncategorized []storage.Request
	for _, r := range doc.Requests {
		if r.Folder == "" || !doc.HasFolder(r.Folder) {
			uncategorized = append(uncategorized, r)
			continue
		}
		byFolder[r.Folder] = append(byFolder[r.Folder], r)
	}

	for _, f := range doc.Folders {
		style := FolderStyle
		if c, ok := folderColor(f.Color); ok {
			style = style.Foreground(c)
		}
		node := tree.Root(style.Render(f.Name)).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(DimStyle)
		children := byFolder[f.Name]
		if len(children) == 0 {
			node.Child(DimStyle.Render("(empty)"))
		}
		for _, r := range children {
			node.Child(requestLine(r))
		}
		root.Child(node)
	}
	for _, r := range uncategorized {
		root.Child(requestLine(r))
	}
	return root.String()
}

func requestLine(r storage.Request) string {
	return MethodStyle(r.Method).Render(r.Method) + " " + r.Name + " " + DimStyle.Render(r.URL)
}

// HighlightJSON takes a JSON string, validates it, and returns a syntax-highlighted string.
// If the input is not valid JSON, it returns the original string.
func HighlightJSON(input string) string {
	var js any
	if json.Unmarshal([]byte(input), &js) != nil {
		return input
	}

	pretty, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return input
	}
	return strings.TrimSpace(Markdown("```json\n" + string(pretty) + "\n```"))
}

// Markdown renders markdown for the terminal, falling back to the raw text.
func Markdown(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
