package storage

import (
	"fmt"
	"slices"
)

// NewDocument returns an empty document at the current format version.
func NewDocument() *Document {
	return &Document{
		Version:  DocumentVersion,
		Requests: []Request{},
		Folders:  []Folder{},
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Version:  d.Version,
		Requests: make([]Request, len(d.Requests)),
		Folders:  make([]Folder, len(d.Folders)),
	}
	for i, r := range d.Requests {
		out.Requests[i] = r.Clone()
	}
	for i, f := range d.Folders {
		out.Folders[i] = Folder{
			Name:    f.Name,
			Members: slices.Clone(f.Members),
			Color:   f.Color,
		}
	}
	return out
}

// Clone returns a deep copy of the request.
func (r Request) Clone() Request {
	out := r
	if r.Headers != nil {
		out.Headers = make(map[string]string, len(r.Headers))
		for k, v := range r.Headers {
			out.Headers[k] = v
		}
	}
	if r.Body != nil {
		out.Body = StringPtr(*r.Body)
	}
	return out
}

// normalize fills in fields older documents may lack.
func (d *Document) normalize() {
	if d.Version == "" {
		d.Version = DocumentVersion
	}
	if d.Requests == nil {
		d.Requests = []Request{}
	}
	if d.Folders == nil {
		d.Folders = []Folder{}
	}
	for i := range d.Requests {
		if d.Requests[i].Headers == nil {
			d.Requests[i].Headers = map[string]string{}
		}
	}
	for i := range d.Folders {
		if d.Folders[i].Members == nil {
			d.Folders[i].Members = []string{}
		}
	}
}

func (d *Document) requestIndex(name string) int {
	return slices.IndexFunc(d.Requests, func(r Request) bool { return r.Name == name })
}

func (d *Document) folderIndex(name string) int {
	return slices.IndexFunc(d.Folders, func(f Folder) bool { return f.Name == name })
}

// Request returns the request with the given name.
func (d *Document) Request(name string) (Request, bool) {
	if i := d.requestIndex(name); i >= 0 {
		return d.Requests[i], true
	}
	return Request{}, false
}

// HasRequest reports whether a request with the given name exists.
func (d *Document) HasRequest(name string) bool {
	return d.requestIndex(name) >= 0
}

// Folder returns the folder with the given name.
func (d *Document) Folder(name string) (Folder, bool) {
	if i := d.folderIndex(name); i >= 0 {
		return d.Folders[i], true
	}
	return Folder{}, false
}

// HasFolder reports whether a folder with the given name exists.
func (d *Document) HasFolder(name string) bool {
	return d.folderIndex(name) >= 0
}

// RequestNames returns request names in insertion order.
func (d *Document) RequestNames() []string {
	names := make([]string, 0, len(d.Requests))
	for _, r := range d.Requests {
		names = append(names, r.Name)
	}
	return names
}

// PutRequest replaces any request with the same name and appends r.
// Folder membership follows the new request's folder reference.
func (d *Document) PutRequest(r Request) {
	if i := d.requestIndex(r.Name); i >= 0 {
		prev := d.Requests[i].Folder
		d.Requests = slices.Delete(d.Requests, i, i+1)
		if prev != "" && prev != r.Folder {
			d.retract(prev, r.Name)
		}
	}
	if r.Headers == nil {
		r.Headers = map[string]string{}
	}
	d.Requests = append(d.Requests, r)
	if r.Folder != "" {
		if fi := d.folderIndex(r.Folder); fi >= 0 {
			d.Folders[fi].addMember(r.Name)
		}
	}
}

// RemoveRequest deletes the named request and retracts it from every folder.
// It reports whether a request was removed.
func (d *Document) RemoveRequest(name string) bool {
	i := d.requestIndex(name)
	if i < 0 {
		return false
	}
	d.Requests = slices.Delete(d.Requests, i, i+1)
	for fi := range d.Folders {
		d.Folders[fi].removeMember(name)
	}
	return true
}

// RenameRequest renames a request, keeping its folder membership.
func (d *Document) RenameRequest(oldName, newName string) error {
	if newName == "" {
		return ErrInvalidName
	}
	i := d.requestIndex(oldName)
	if i < 0 {
		return fmt.Errorf("%w: request %q", ErrNotFound, oldName)
	}
	if oldName == newName {
		return nil
	}
	if d.HasRequest(newName) {
		return fmt.Errorf("%w: request %q", ErrDuplicateName, newName)
	}
	d.Requests[i].Name = newName
	for fi := range d.Folders {
		for mi, m := range d.Folders[fi].Members {
			if m == oldName {
				d.Folders[fi].Members[mi] = newName
			}
		}
	}
	return nil
}

// AddFolder appends an empty folder.
func (d *Document) AddFolder(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	if d.HasFolder(name) {
		return fmt.Errorf("%w: folder %q", ErrDuplicateName, name)
	}
	d.Folders = append(d.Folders, Folder{Name: name, Members: []string{}})
	return nil
}

// RemoveFolder deletes the folder and clears the folder reference of every
// request that pointed at it.
func (d *Document) RemoveFolder(name string) error {
	i := d.folderIndex(name)
	if i < 0 {
		return fmt.Errorf("%w: folder %q", ErrNotFound, name)
	}
	d.Folders = slices.Delete(d.Folders, i, i+1)
	for ri := range d.Requests {
		if d.Requests[ri].Folder == name {
			d.Requests[ri].Folder = ""
		}
	}
	return nil
}

// AssignFolder moves a request into a folder. Assigning twice is a no-op.
func (d *Document) AssignFolder(requestName, folderName string) error {
	ri := d.requestIndex(requestName)
	if ri < 0 {
		return fmt.Errorf("%w: request %q", ErrNotFound, requestName)
	}
	fi := d.folderIndex(folderName)
	if fi < 0 {
		return fmt.Errorf("%w: folder %q", ErrNotFound, folderName)
	}
	if prev := d.Requests[ri].Folder; prev != "" && prev != folderName {
		d.retract(prev, requestName)
	}
	d.Requests[ri].Folder = folderName
	d.Folders[fi].addMember(requestName)
	return nil
}

// UnassignFolder removes a request from its folder. Uncategorized requests are left alone.
func (d *Document) UnassignFolder(requestName string) error {
	ri := d.requestIndex(requestName)
	if ri < 0 {
		return fmt.Errorf("%w: request %q", ErrNotFound, requestName)
	}
	prev := d.Requests[ri].Folder
	if prev == "" {
		return nil
	}
	d.Requests[ri].Folder = ""
	d.retract(prev, requestName)
	return nil
}

// SetFolderColor updates the display color of a folder.
func (d *Document) SetFolderColor(folderName, color string) error {
	fi := d.folderIndex(folderName)
	if fi < 0 {
		return fmt.Errorf("%w: folder %q", ErrNotFound, folderName)
	}
	d.Folders[fi].Color = color
	return nil
}

func (d *Document) retract(folderName, requestName string) {
	if fi := d.folderIndex(folderName); fi >= 0 {
		d.Folders[fi].removeMember(requestName)
	}
}

func (f *Folder) addMember(name string) {
	if !slices.Contains(f.Members, name) {
		f.Members = append(f.Members, name)
	}
}

func (f *Folder) removeMember(name string) {
	f.Members = slices.DeleteFunc(f.Members, func(m string) bool { return m == name })
}
