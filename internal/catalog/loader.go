package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File names expected inside the content directory.
const (
	PostsFile = "posts.json"
	JobsFile  = "jobs.json"
	WorkFile  = "work.json"
)

// Load reads a full catalog generation from dir. It either returns a complete,
// validated catalog or an error — a partially loaded generation is never
// handed out, so a bad edit to one file keeps the previous generation live.
func Load(dir string) (*Catalog, error) {
	var c Catalog
	if err := readJSON(filepath.Join(dir, PostsFile), &c.Posts); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, JobsFile), &c.Jobs); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, WorkFile), &c.Work); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	for i := range c.Work {
		c.Work[i].Index = i
	}
	return &c, nil
}

func readJSON(path string, out interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (c *Catalog) validate() error {
	ids := make(map[string]string)
	claim := func(id, where string) error {
		if id == "" {
			return fmt.Errorf("%s: record with empty id", where)
		}
		if prev, ok := ids[id]; ok {
			return fmt.Errorf("%s: duplicate id %q (also in %s)", where, id, prev)
		}
		ids[id] = where
		return nil
	}
	for i, p := range c.Posts {
		if err := claim(p.ID, PostsFile); err != nil {
			return err
		}
		if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Slug) == "" {
			return fmt.Errorf("%s[%d]: title and slug required", PostsFile, i)
		}
		if p.PublishedAt.IsZero() {
			return fmt.Errorf("%s[%d] (%s): published_at required", PostsFile, i, p.Slug)
		}
	}
	for i, j := range c.Jobs {
		if err := claim(j.ID, JobsFile); err != nil {
			return err
		}
		if strings.TrimSpace(j.Title) == "" || strings.TrimSpace(j.Slug) == "" {
			return fmt.Errorf("%s[%d]: title and slug required", JobsFile, i)
		}
		if j.PostedAt.IsZero() {
			return fmt.Errorf("%s[%d] (%s): posted_at required", JobsFile, i, j.Slug)
		}
	}
	for i, w := range c.Work {
		if err := claim(w.ID, WorkFile); err != nil {
			return err
		}
		if strings.TrimSpace(w.Title) == "" || strings.TrimSpace(w.Slug) == "" {
			return fmt.Errorf("%s[%d]: title and slug required", WorkFile, i)
		}
	}
	return nil
}
