package domain

// Page is one indexed chunk of a visited page. Owned by the metadata store,
// read-only to the search engine.
type Page struct {
	URL       string
	Title     string
	Chunk     string
	Category  string
	Timestamp int64 // unix seconds; 0 = unknown
	Extra     map[string]string
}
