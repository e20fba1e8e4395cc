// Package models defines server-side data models persisted by the catalog,
// user and session stores.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FileType discriminates catalog records. Folders never carry a payload;
// every other type is backed by exactly one blob.
type FileType string

const (
	FileTypeFolder FileType = "folder"
	FileTypeFile   FileType = "file"
	FileTypeImage  FileType = "image"
)

// ParseFileType accepts only the known record types.
func ParseFileType(s string) (FileType, bool) {
	switch t := FileType(s); t {
	case FileTypeFolder, FileTypeFile, FileTypeImage:
		return t, true
	default:
		return "", false
	}
}

func (t FileType) IsFolder() bool { return t == FileTypeFolder }

// HasContent reports whether records of this type own a blob.
func (t FileType) HasContent() bool { return t == FileTypeFile || t == FileTypeImage }

// ParentRef points at the folder a record lives in. The zero value is the
// root; anything else references another record by id.
//
// On the wire the root is the number 0 and a folder is its id string.
type ParentRef struct {
	id string
}

// Root returns the reference to the top of a user's tree.
func Root() ParentRef { return ParentRef{} }

// InFolder returns a reference to the folder with the given id. An empty id
// or "0" yields the root.
func InFolder(id string) ParentRef {
	if id == "0" {
		return ParentRef{}
	}
	return ParentRef{id: id}
}

func (p ParentRef) IsRoot() bool { return p.id == "" }

// ID returns the referenced folder id, or "" for the root.
func (p ParentRef) ID() string { return p.id }

func (p ParentRef) String() string {
	if p.IsRoot() {
		return "0"
	}
	return p.id
}

func (p ParentRef) MarshalJSON() ([]byte, error) {
	if p.IsRoot() {
		return []byte("0"), nil
	}
	return json.Marshal(p.id)
}

func (p *ParentRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*p = Root()
		return nil
	}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case string:
		*p = InFolder(value)
	case float64:
		if value == 0 {
			*p = Root()
			return nil
		}
		*p = InFolder(strconv.FormatFloat(value, 'f', -1, 64))
	case bool:
		if value {
			return fmt.Errorf("invalid parentId: %s", b)
		}
		*p = Root()
	default:
		return fmt.Errorf("invalid parentId: %s", b)
	}
	return nil
}

// FileRecord is a catalog entry. LocalPath is set iff Type.HasContent().
type FileRecord struct {
	ID        string
	UserID    string
	Name      string
	Type      FileType
	Parent    ParentRef
	IsPublic  bool
	LocalPath string
}

// IsOwnedBy reports whether userID owns the record. An empty userID never
// owns anything.
func (f *FileRecord) IsOwnedBy(userID string) bool {
	return userID != "" && f.UserID == userID
}

// FileView is the external projection of a FileRecord. The on-disk path is
// never exposed.
type FileView struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Name     string    `json:"name"`
	Type     FileType  `json:"type"`
	IsPublic bool      `json:"isPublic"`
	ParentID ParentRef `json:"parentId"`
}

func (f *FileRecord) View() FileView {
	return FileView{
		ID:       f.ID,
		UserID:   f.UserID,
		Name:     f.Name,
		Type:     f.Type,
		IsPublic: f.IsPublic,
		ParentID: f.Parent,
	}
}
