// Package sitesearch maintains the in-memory full-text index behind the
// global site search box. It indexes every content type at once and is
// rebuilt from scratch whenever the catalog reloads; list filtering on the
// content pages deliberately does not use it, that stays substring-exact.
package sitesearch

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve"

	"github.com/thetrustgroup/trustsite/internal/catalog"
)

// Document types surfaced in search hits.
const (
	TypePost = "post"
	TypeJob  = "job"
	TypeWork = "work"
)

const maxHits = 50

// Hit is one search result pointing back into the site.
type Hit struct {
	Type    string  `json:"type"`
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Snippet string  `json:"snippet,omitempty"`
	Score   float64 `json:"score"`
}

type docMeta struct {
	typ     string
	title   string
	url     string
	snippet string
}

type indexedDoc struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Index is a mem-only bleve index over one catalog generation. Rebuilds swap
// the whole index under a lock; queries hold the read side.
type Index struct {
	mu    sync.RWMutex
	bleve bleve.Index
	meta  map[string]docMeta
}

// New builds an index over the given catalog generation.
func New(c *catalog.Catalog) (*Index, error) {
	idx := &Index{}
	if err := idx.Rebuild(c); err != nil {
		return nil, err
	}
	return idx, nil
}

// Rebuild replaces the index contents with a fresh generation.
func (x *Index) Rebuild(c *catalog.Catalog) error {
	b, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("sitesearch index: %w", err)
	}
	meta := make(map[string]docMeta, len(c.Posts)+len(c.Jobs)+len(c.Work))

	for _, p := range c.Posts {
		key := TypePost + ":" + p.ID
		meta[key] = docMeta{typ: TypePost, title: p.Title, url: "/blog/" + p.Slug, snippet: snippet(p.Excerpt)}
		if err := b.Index(key, indexedDoc{Type: TypePost, Text: join(p.SearchText(), p.PostTags)}); err != nil {
			return err
		}
	}
	for _, j := range c.Jobs {
		key := TypeJob + ":" + j.ID
		meta[key] = docMeta{typ: TypeJob, title: j.Title, url: "/careers/" + j.Slug, snippet: snippet(j.Description)}
		if err := b.Index(key, indexedDoc{Type: TypeJob, Text: join(j.SearchText(), nil)}); err != nil {
			return err
		}
	}
	for _, w := range c.Work {
		key := TypeWork + ":" + w.ID
		meta[key] = docMeta{typ: TypeWork, title: w.Title, url: "/work/" + w.Slug, snippet: snippet(w.Summary)}
		if err := b.Index(key, indexedDoc{Type: TypeWork, Text: join(w.SearchText(), w.Categories)}); err != nil {
			return err
		}
	}

	x.mu.Lock()
	old := x.bleve
	x.bleve = b
	x.meta = meta
	x.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Query runs a query-string search and returns at most k hits.
func (x *Index) Query(q string, k int) ([]Hit, error) {
	if k <= 0 || k > maxHits {
		k = 10
	}
	x.mu.RLock()
	b := x.bleve
	meta := x.meta
	x.mu.RUnlock()

	query := bleve.NewQueryStringQuery(q)
	req := bleve.NewSearchRequestOptions(query, k, 0, false)
	res, err := b.Search(req)
	if err != nil {
		return nil, err
	}
	out := make([]Hit, 0, len(res.Hits))
	for _, hit := range res.Hits {
		m, ok := meta[hit.ID]
		if !ok {
			continue
		}
		out = append(out, Hit{
			Type:    m.typ,
			ID:      hit.ID,
			Title:   m.title,
			URL:     m.url,
			Snippet: m.snippet,
			Score:   hit.Score,
		})
	}
	return out, nil
}

func join(fields []string, extra []string) string {
	var b []byte
	for _, f := range fields {
		b = append(b, f...)
		b = append(b, '\n')
	}
	for _, f := range extra {
		b = append(b, f...)
		b = append(b, '\n')
	}
	return string(b)
}

func snippet(s string) string {
	if len(s) <= 200 {
		return s
	}
	return s[:200] + "…"
}
