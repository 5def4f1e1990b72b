// Package fsx is the filesystem collaborator spec §1/§6 treats as
// external: reading static assets and templates, writing uploads, and
// listing directories. It wraps afero.Fs so handlers can be tested
// against an in-memory filesystem instead of the real disk.
package fsx

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/webserv/webserv/common"
)

// FS is the filesystem every handler reads/writes through.
var FS afero.Fs = afero.NewOsFs()

// PublicDir returns the static/template document root: the PUBLIC_PATH
// environment override if set, else root if non-empty, else
// common.DefaultPublicDir.
func PublicDir(root string) string {
	if p := os.Getenv(common.PublicPathEnv); p != "" {
		return p
	}
	if root != "" {
		return root
	}
	return common.DefaultPublicDir
}

// DataDir returns the JSON-demo data directory: the DATA_PATH
// environment override if set, else common.DefaultDataDir.
func DataDir() string {
	if p := os.Getenv(common.DataPathEnv); p != "" {
		return p
	}
	return common.DefaultDataDir
}

// LoadFile reads "<PUBLIC_PATH or root><name>" verbatim, per spec §4.E.
func LoadFile(name, root string) ([]byte, error) {
	return afero.ReadFile(FS, filepath.Join(PublicDir(root), name))
}

// LoadDefaultFile reads "<PUBLIC_PATH or build-dir/public>/index.html".
func LoadDefaultFile(root string) ([]byte, error) {
	return afero.ReadFile(FS, filepath.Join(PublicDir(""), "index.html"))
}

// Exists reports whether path exists on FS.
func Exists(path string) bool {
	_, err := FS.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := FS.Stat(path)
	return err == nil && info.IsDir()
}

// Entry is one directory-listing row.
type Entry struct {
	Name  string
	IsDir bool
	Size  int64
}

// ListDirectory returns the sorted contents of path (directories first,
// then files, each alphabetical), for the directory-listing handler.
func ListDirectory(path string) ([]Entry, error) {
	infos, err := afero.ReadDir(FS, path)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{Name: info.Name(), IsDir: info.IsDir(), Size: info.Size()})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// WriteUpload saves data to "<root>/<fieldName>", per spec §4.F's POST
// handler. Concurrent uploads with the same field name race on file
// creation; last writer wins, per spec §5.
func WriteUpload(root, fieldName string, data []byte) error {
	return afero.WriteFile(FS, filepath.Join(root, fieldName), data, 0644)
}

// Remove deletes the file at path, for the DELETE handler (spec §4.F).
func Remove(path string) error {
	return FS.Remove(path)
}

// ReadPath reads an already-resolved path verbatim, for handlers that
// have computed a full filesystem path themselves (directory listing,
// named-resource serving) rather than a name relative to PublicDir.
func ReadPath(path string) ([]byte, error) {
	return afero.ReadFile(FS, path)
}
