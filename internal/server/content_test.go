package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thetrustgroup/trustsite/internal/catalog"
	"github.com/thetrustgroup/trustsite/internal/query"
)

func day(s string) time.Time {
	ts, _ := time.Parse("2006-01-02", s)
	return ts
}

func fixtureLibrary() *catalog.Library {
	return catalog.NewLibrary(&catalog.Catalog{
		Posts: []catalog.BlogPost{
			{ID: "p1", Slug: "one", Title: "One", Category: "strategy", PostTags: []string{"ai"}, PublishedAt: day("2025-07-01")},
			{ID: "p2", Slug: "two", Title: "Two", Category: "engineering", PostTags: []string{"ai"}, PublishedAt: day("2025-06-01")},
			{ID: "p3", Slug: "three", Title: "Three", Category: "engineering", PostTags: []string{"hiring"}, PublishedAt: day("2025-05-01")},
			{ID: "p4", Slug: "four", Title: "Four", Category: "engineering", PostTags: []string{"ai"}, PublishedAt: day("2025-06-15")},
		},
		Jobs: []catalog.JobListing{
			{ID: "j1", Slug: "consultant", Title: "Consultant", Department: "consulting", Type: "full-time", Experience: "senior", Location: "London, UK", PostedAt: day("2025-07-01")},
			{ID: "j2", Slug: "platform", Title: "Platform Engineer", Department: "engineering", Type: "full-time", Experience: "mid", Location: "Remote (EU)", PostedAt: day("2025-06-01")},
		},
		Work: []catalog.WorkEngagement{
			{ID: "w1", Slug: "bank", Title: "Bank", Categories: []string{"strategy", "engineering"}, Index: 0},
			{ID: "w2", Slug: "retailer", Title: "Retailer", Categories: []string{"operations"}, Index: 1},
			{ID: "w3", Slug: "insurer", Title: "Insurer", Categories: []string{"engineering"}, Index: 2},
		},
	})
}

func contentHandler() *ContentHandler {
	return &ContentHandler{Library: fixtureLibrary(), DefaultPageSize: 10, MaxPageSize: 50}
}

func doGET(t *testing.T, path string, params url.Values, h echo.HandlerFunc, pnames ...string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	target := path
	if params != nil {
		target += "?" + params.Encode()
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	for i := 0; i+1 < len(pnames); i += 2 {
		ctx.SetParamNames(pnames[i])
		ctx.SetParamValues(pnames[i+1])
	}
	return rec, h(ctx)
}

func TestListPostsCategoryAndTag(t *testing.T) {
	h := contentHandler()
	rec, err := doGET(t, "/api/blog", url.Values{
		"category": {"engineering"},
		"tag":      {"ai"},
	}, h.listPosts)
	if err != nil {
		t.Fatalf("listPosts: %v", err)
	}
	var res query.Result[catalog.BlogPost]
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.TotalCount != 2 {
		t.Fatalf("expected 2 posts, got %d", res.TotalCount)
	}
	if res.Items[0].ID != "p4" || res.Items[1].ID != "p2" {
		t.Fatalf("newest-first ordering broken: %s, %s", res.Items[0].ID, res.Items[1].ID)
	}
}

func TestListPostsPageBeyondRangeIsEmpty(t *testing.T) {
	h := contentHandler()
	rec, err := doGET(t, "/api/blog", url.Values{"page": {"40"}}, h.listPosts)
	if err != nil {
		t.Fatal(err)
	}
	var res query.Result[catalog.BlogPost]
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Items) != 0 {
		t.Fatalf("page past the end must be empty, got %d items", len(res.Items))
	}
	if res.TotalCount != 4 {
		t.Fatalf("count must still describe the filtered set: %d", res.TotalCount)
	}
}

func TestListPostsPageSizeIsCapped(t *testing.T) {
	h := contentHandler()
	rec, err := doGET(t, "/api/blog", url.Values{"page_size": {"9999"}}, h.listPosts)
	if err != nil {
		t.Fatal(err)
	}
	var res query.Result[catalog.BlogPost]
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	// 4 posts fit either way; the cap shows up in TotalPages staying 1
	if res.TotalPages != 1 {
		t.Fatalf("total pages: %d", res.TotalPages)
	}
}

func TestListJobsRemoteSearch(t *testing.T) {
	h := contentHandler()
	rec, err := doGET(t, "/api/careers", url.Values{
		"department": {"all"},
		"type":       {"all"},
		"experience": {"all"},
		"q":          {"remote"},
	}, h.listJobs)
	if err != nil {
		t.Fatal(err)
	}
	var res query.Result[catalog.JobListing]
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.TotalCount != 1 || res.Items[0].ID != "j2" {
		t.Fatalf("expected only the remote listing: %+v", res.Items)
	}
}

func TestListWorkKeepsAuthoredOrder(t *testing.T) {
	h := contentHandler()
	rec, err := doGET(t, "/api/work", url.Values{"category": {"engineering"}}, h.listWork)
	if err != nil {
		t.Fatal(err)
	}
	var res query.Result[catalog.WorkEngagement]
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.TotalCount != 2 || res.Items[0].ID != "w1" || res.Items[1].ID != "w3" {
		t.Fatalf("work grid must filter without re-sorting: %+v", res.Items)
	}
}

func TestBlogMeta(t *testing.T) {
	h := contentHandler()
	rec, err := doGET(t, "/api/blog/meta", nil, h.blogMeta)
	if err != nil {
		t.Fatal(err)
	}
	var meta BlogMetaResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &meta); err != nil {
		t.Fatal(err)
	}
	if len(meta.Categories) != 2 || meta.Categories[0] != "strategy" {
		t.Fatalf("categories in first-seen order: %v", meta.Categories)
	}
	if meta.Tags["ai"] != 3 {
		t.Fatalf("tag counts: %v", meta.Tags)
	}
}

func TestGetPostBySlug(t *testing.T) {
	h := contentHandler()
	rec, err := doGET(t, "/api/blog/two", nil, h.getPost, "slug", "two")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}

	_, err = doGET(t, "/api/blog/ghost", nil, h.getPost, "slug", "ghost")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown slug, got %v", err)
	}
}
