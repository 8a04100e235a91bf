// Package enrich looks up book metadata on Open Library and distills it
// into authors and display genres. All lookups are best effort: callers
// degrade to empty metadata when enrichment fails.
package enrich

import (
	"context"
	"fmt"

	"github.com/jsvoboda/shelfscan/internal/match"
	"github.com/jsvoboda/shelfscan/internal/openlibrary"
)

// Metadata is the distilled result of a lookup. Found is false when the
// search returned no works, which is itself a cacheable answer.
type Metadata struct {
	Author string   `json:"author,omitempty"`
	Genres []string `json:"genres,omitempty"`
	Found  bool     `json:"found"`
}

// Enricher resolves titles to metadata via Open Library, with a TTL cache
// in front of the network.
type Enricher struct {
	client *openlibrary.Client
	cache  *LookupCache
	table  map[string]string
}

// New creates an enricher. The table maps lowercase subject names to
// canonical display genres.
func New(client *openlibrary.Client, cache *LookupCache, table map[string]string) *Enricher {
	return &Enricher{
		client: client,
		cache:  cache,
		table:  table,
	}
}

// Lookup resolves a title (and optional author hint) to metadata. Results,
// including "nothing found", are cached under the normalized title and
// author; lookup failures are returned as errors and never cached.
func (e *Enricher) Lookup(ctx context.Context, title, author string) (Metadata, error) {
	key := cacheKey(title, author)
	if meta, ok := e.cache.Get(key); ok {
		return meta, nil
	}

	result, err := e.client.SearchByTitle(ctx, title, author)
	if err != nil {
		return Metadata{}, fmt.Errorf("could not search for %q: %w", title, err)
	}

	meta := Metadata{}
	if result.NumFound > 0 && len(result.Docs) > 0 {
		doc := result.Docs[0]
		meta.Found = true
		if len(doc.AuthorName) > 0 {
			meta.Author = doc.AuthorName[0]
		}
		meta.Genres = ExtractGenres(doc.Subject, e.table)
	}

	e.cache.Put(key, meta)
	return meta, nil
}

func cacheKey(title, author string) string {
	return match.Normalize(title) + "|" + match.Normalize(author)
}
