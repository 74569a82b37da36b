package lsp

import (
	"strings"
	"sync"

	"github.com/jarredhawkins/urscript-lsp/internal/source"
)

// Document is the editor's copy of an open file. The line buffer is rebuilt
// on every change and shared read-only with queries.
type Document struct {
	URI     string
	Version int
	buffer  *source.Buffer
}

// Text joins the document lines back together
func (d *Document) Text() string {
	return strings.Join(d.buffer.Lines(), "\n")
}

// DocumentStore tracks open documents by URI
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentStore creates an empty document store
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

func newDocument(uri string, version int, text string) *Document {
	return &Document{
		URI:     uri,
		Version: version,
		buffer:  source.NewBuffer(uriToPath(uri), text),
	}
}

// Open starts tracking uri, replacing any previous copy
func (ds *DocumentStore) Open(uri string, version int, text string) {
	doc := newDocument(uri, version, text)
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
}

// Update replaces the text of an open document. Changes for unknown URIs
// and versions older than the current one are dropped.
func (ds *DocumentStore) Update(uri string, version int, text string) bool {
	doc := newDocument(uri, version, text)
	ds.mu.Lock()
	defer ds.mu.Unlock()
	cur, ok := ds.docs[uri]
	if !ok || version < cur.Version {
		return false
	}
	ds.docs[uri] = doc
	return true
}

// Close stops tracking uri
func (ds *DocumentStore) Close(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

// Get returns the open document for uri
func (ds *DocumentStore) Get(uri string) (*Document, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	doc, ok := ds.docs[uri]
	return doc, ok
}

// Buffer returns the line buffer of an open document
func (ds *DocumentStore) Buffer(uri string) (*source.Buffer, bool) {
	doc, ok := ds.Get(uri)
	if !ok {
		return nil, false
	}
	return doc.buffer, true
}
