package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"oslobors-bot/internal/config"
)

func TestScrapeSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<article class="teaser">
  <h2 class="headline">Oslo Børs faller</h2>
  <a class="lenke" href="/artikkel/1">les mer</a>
  <p class="ingress">Bred nedgang mandag.</p>
</article>
<article class="teaser">
  <h2 class="headline">Oljeprisen stiger</h2>
  <a class="lenke" href="https://ekstern.example/2">les mer</a>
</article>
<article class="teaser">
  <h2 class="headline"></h2>
</article>
</body></html>`)
	}))
	defer srv.Close()

	src := config.Source{Name: "avis", URL: srv.URL, Type: "scrape"}
	src.Selectors.Item = "article.teaser"
	src.Selectors.Title = "h2.headline"
	src.Selectors.Link = "a.lenke"
	src.Selectors.Description = "p.ingress"

	f := NewFetcher([]config.Source{src}, 5*time.Second)
	items, err := f.scrapeSource(context.Background(), src)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items (titleless teaser dropped), got %d", len(items))
	}

	first := items[0]
	if first.Title != "Oslo Børs faller" {
		t.Errorf("Expected title, got %q", first.Title)
	}
	if first.Link != srv.URL+"/artikkel/1" {
		t.Errorf("Expected relative link absolutized, got %q", first.Link)
	}
	if first.Description != "Bred nedgang mandag." {
		t.Errorf("Expected description, got %q", first.Description)
	}
	if items[1].Link != "https://ekstern.example/2" {
		t.Errorf("Expected absolute link untouched, got %q", items[1].Link)
	}
}
