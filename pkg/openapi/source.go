package openapi

import "path/filepath"

// fileSource identifies on-disk contract documents.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// generatedSource marks documents built in memory from the form definition.
type generatedSource struct {
	name string
}

func (s generatedSource) Location() string {
	return s.name
}

func (s generatedSource) Kind() SourceKind {
	return SourceKindGenerated
}

// SourceGenerated labels a document produced by a Builder.
func SourceGenerated(name string) Source {
	return generatedSource{name: name}
}
