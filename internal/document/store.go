// Package document holds the single current Markdown document of a session.
package document

// Store is the one in-memory slot holding the latest generated text.
// Set replaces the content wholesale; there is no history and no merge.
// A Store is owned by one loop and is not safe for concurrent writers.
type Store struct {
	text string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the current document, or "" if nothing has been generated yet.
func (s *Store) Get() string {
	return s.text
}

// Set overwrites the current document.
func (s *Store) Set(text string) {
	s.text = text
}

// Empty reports whether there is nothing to export.
func (s *Store) Empty() bool {
	return s.text == ""
}
