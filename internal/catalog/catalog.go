// Package catalog holds the marketing-site content records: blog posts, job
// listings and work engagements. Records are loaded once per generation from
// JSON files and treated as immutable afterwards; filtering never mutates
// them.
package catalog

import "time"

// Facet names understood by the content types.
const (
	FacetCategory   = "category"
	FacetDepartment = "department"
	FacetType       = "type"
	FacetExperience = "experience"
)

// BlogPost is a published article. Exactly one category, zero or more tags.
type BlogPost struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	PostTags    []string  `json:"tags"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
	ReadingTime int       `json:"reading_time_minutes"`
}

func (p BlogPost) FacetTerms(name string) []string {
	if name == FacetCategory {
		return []string{p.Category}
	}
	return nil
}

func (p BlogPost) Tags() []string { return p.PostTags }

func (p BlogPost) SearchText() []string {
	return []string{p.Title, p.Excerpt, p.Content, p.Author}
}

// NewerThan orders posts newest-first.
func (p BlogPost) NewerThan(other BlogPost) bool {
	return p.PublishedAt.After(other.PublishedAt)
}

// JobListing is an open role. Featured listings sort ahead of the rest,
// newest-first within each partition.
type JobListing struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Department  string    `json:"department"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Experience  string    `json:"experience"`
	Description string    `json:"description"`
	Featured    bool      `json:"featured"`
	PostedAt    time.Time `json:"posted_at"`
}

func (j JobListing) FacetTerms(name string) []string {
	switch name {
	case FacetDepartment:
		return []string{j.Department}
	case FacetType:
		return []string{j.Type}
	case FacetExperience:
		return []string{j.Experience}
	}
	return nil
}

func (j JobListing) Tags() []string { return nil }

func (j JobListing) SearchText() []string {
	return []string{j.Title, j.Department, j.Location, j.Description}
}

// RanksAbove implements the careers ordering: featured first (stable), then
// newest-first.
func (j JobListing) RanksAbove(other JobListing) bool {
	if j.Featured != other.Featured {
		return j.Featured
	}
	return j.PostedAt.After(other.PostedAt)
}

// WorkEngagement is a portfolio case study. Unlike posts and jobs it can
// belong to several categories, and it keeps its authored order: the grid on
// the site only toggles visibility, it never re-sorts.
type WorkEngagement struct {
	ID         string   `json:"id"`
	Slug       string   `json:"slug"`
	Client     string   `json:"client"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Categories []string `json:"categories"`
	Industry   string   `json:"industry"`
	Year       int      `json:"year"`
	Index      int      `json:"index"`
}

func (w WorkEngagement) FacetTerms(name string) []string {
	if name == FacetCategory {
		return w.Categories
	}
	return nil
}

func (w WorkEngagement) Tags() []string { return nil }

func (w WorkEngagement) SearchText() []string {
	return []string{w.Title, w.Client, w.Summary, w.Industry}
}

// Catalog is one immutable generation of site content.
type Catalog struct {
	Posts []BlogPost
	Jobs  []JobListing
	Work  []WorkEngagement
}

// PostBySlug returns the post with the given slug.
func (c *Catalog) PostBySlug(slug string) (BlogPost, bool) {
	for _, p := range c.Posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return BlogPost{}, false
}

// JobBySlug returns the job listing with the given slug.
func (c *Catalog) JobBySlug(slug string) (JobListing, bool) {
	for _, j := range c.Jobs {
		if j.Slug == slug {
			return j, true
		}
	}
	return JobListing{}, false
}

// WorkBySlug returns the engagement with the given slug.
func (c *Catalog) WorkBySlug(slug string) (WorkEngagement, bool) {
	for _, w := range c.Work {
		if w.Slug == slug {
			return w, true
		}
	}
	return WorkEngagement{}, false
}

// PostCategories returns the distinct post categories in first-seen order.
func (c *Catalog) PostCategories() []string {
	seen := make(map[string]struct{}, len(c.Posts))
	var out []string
	for _, p := range c.Posts {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// TagCounts returns how many posts carry each tag.
func (c *Catalog) TagCounts() map[string]int {
	out := make(map[string]int)
	for _, p := range c.Posts {
		for _, t := range p.PostTags {
			out[t]++
		}
	}
	return out
}
