package page

import (
	"strconv"

	"github.com/pagetrail/pagetrail/internal/domain"
)

// Reserved hash field names. Everything else round-trips through Page.Extra.
const (
	fieldURL       = "url"
	fieldTitle     = "title"
	fieldChunk     = "chunk"
	fieldCategory  = "category"
	fieldTimestamp = "timestamp"
	fieldVector    = "__vector"
)

func pageToFields(p domain.Page, vector string) map[string]string {
	fields := make(map[string]string, 6+len(p.Extra))
	for k, v := range p.Extra {
		if !isReservedField(k) {
			fields[k] = v
		}
	}
	fields[fieldURL] = p.URL
	fields[fieldTitle] = p.Title
	fields[fieldChunk] = p.Chunk
	fields[fieldCategory] = p.Category
	fields[fieldTimestamp] = strconv.FormatInt(p.Timestamp, 10)
	fields[fieldVector] = vector
	return fields
}

func pageFromFields(fields map[string]string) domain.Page {
	p := domain.Page{
		URL:      fields[fieldURL],
		Title:    fields[fieldTitle],
		Chunk:    fields[fieldChunk],
		Category: fields[fieldCategory],
	}
	if ts, err := strconv.ParseInt(fields[fieldTimestamp], 10, 64); err == nil {
		p.Timestamp = ts
	}
	for k, v := range fields {
		if isReservedField(k) {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]string)
		}
		p.Extra[k] = v
	}
	return p
}

func isReservedField(name string) bool {
	switch name {
	case fieldURL, fieldTitle, fieldChunk, fieldCategory, fieldTimestamp, fieldVector:
		return true
	}
	return false
}
