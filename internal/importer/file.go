package importer

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// File is a candidate upload. Open may be called more than once; each call
// returns a fresh reader.
type File interface {
	Name() string
	ContentType() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// AcceptsCSV reports whether a file with this name and MIME type may be
// imported: MIME text/csv (parameters ignored) or a .csv extension.
func AcceptsCSV(name, contentType string) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && strings.EqualFold(mediaType, "text/csv") {
		return true
	}
	return strings.EqualFold(filepath.Ext(name), ".csv")
}

// LocalFile is a file on disk, as picked from the CLI.
type LocalFile struct {
	path        string
	size        int64
	contentType string
}

func NewLocalFile(path string) (*LocalFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &LocalFile{
		path:        path,
		size:        info.Size(),
		contentType: mime.TypeByExtension(filepath.Ext(path)),
	}, nil
}

func (f *LocalFile) Name() string        { return filepath.Base(f.path) }
func (f *LocalFile) ContentType() string { return f.contentType }
func (f *LocalFile) Size() int64         { return f.size }

func (f *LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// MultipartFile adapts an uploaded form file.
type MultipartFile struct {
	header *multipart.FileHeader
}

func NewMultipartFile(header *multipart.FileHeader) *MultipartFile {
	return &MultipartFile{header: header}
}

func (f *MultipartFile) Name() string        { return f.header.Filename }
func (f *MultipartFile) ContentType() string { return f.header.Header.Get("Content-Type") }
func (f *MultipartFile) Size() int64         { return f.header.Size }

func (f *MultipartFile) Open() (io.ReadCloser, error) {
	return f.header.Open()
}

// MemoryFile holds the whole file in memory.
type MemoryFile struct {
	name        string
	contentType string
	data        []byte
}

func NewMemoryFile(name, contentType string, data []byte) *MemoryFile {
	return &MemoryFile{name: name, contentType: contentType, data: data}
}

func (f *MemoryFile) Name() string        { return f.name }
func (f *MemoryFile) ContentType() string { return f.contentType }
func (f *MemoryFile) Size() int64         { return int64(len(f.data)) }

func (f *MemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}
