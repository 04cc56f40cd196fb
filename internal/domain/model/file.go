package model

// File is an entry of the Dynalist file list (a document or a folder).
type File struct {
	ID         string
	Title      string
	Type       string // "document" or "folder"
	Permission int    // 0 none, 1 read, 2 edit, 3 manage, 4 owner
}

// IsDocument reports whether the file is a document rather than a folder.
func (f File) IsDocument() bool {
	return f.Type == "document"
}

// IsEditable reports whether items may be inserted into the file.
func (f File) IsEditable() bool {
	return f.Permission >= 2
}

// Node is a single item of a Dynalist document.
type Node struct {
	ID       string
	Content  string
	Note     string
	Checked  bool
	Parent   string
	Children []string
}
