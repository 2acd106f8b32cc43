package storage

// Folders is the folder repository. Every mutation keeps a request's folder
// reference and the folder's member list in agreement.
type Folders struct {
	store *Store
}

// NewFolders creates a folder repository over store.
func NewFolders(store *Store) *Folders {
	return &Folders{store: store}
}

// CreateFolder adds an empty folder. It fails with ErrDuplicateName if the
// name is taken.
func (f *Folders) CreateFolder(name string) error {
	return f.store.Update(func(doc *Document) error {
		return doc.AddFolder(name)
	})
}

// DeleteFolder removes the folder and uncategorizes its requests.
func (f *Folders) DeleteFolder(name string) error {
	return f.store.Update(func(doc *Document) error {
		return doc.RemoveFolder(name)
	})
}

// AddRequestToFolder moves a request into a folder.
func (f *Folders) AddRequestToFolder(requestName, folderName string) error {
	return f.store.Update(func(doc *Document) error {
		return doc.AssignFolder(requestName, folderName)
	})
}

// RemoveRequestFromFolder uncategorizes a request.
func (f *Folders) RemoveRequestFromFolder(requestName string) error {
	return f.store.Update(func(doc *Document) error {
		return doc.UnassignFolder(requestName)
	})
}

// SetColor sets a folder's display color.
func (f *Folders) SetColor(folderName, color string) error {
	return f.store.Update(func(doc *Document) error {
		return doc.SetFolderColor(folderName, color)
	})
}

// ListFolders returns all folders in document order.
func (f *Folders) ListFolders() ([]Folder, error) {
	doc, err := f.store.Document()
	if err != nil {
		return nil, err
	}
	return doc.Folders, nil
}
