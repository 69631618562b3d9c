package newsrss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>InfoMoney - FIIs</title>
<item>
<title>FII de logística anuncia novo rendimento</title>
<link>https://example.com/noticia-1</link>
<pubDate>Mon, 05 Feb 2024 12:30:00 -0300</pubDate>
</item>
<item>
<title></title>
<link>https://example.com/sem-titulo</link>
</item>
<item>
<title>Fundo de shoppings conclui aquisição</title>
<link>https://example.com/noticia-2</link>
<pubDate>Sun, 04 Feb 2024 09:00:00 -0300</pubDate>
</item>
</channel>
</rss>`

func TestGetHeadlines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	client := NewClient(WithFeedURL(server.URL))
	items, err := client.GetHeadlines(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetHeadlines failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items (untitled skipped), got %d", len(items))
	}
	if items[0].Title != "FII de logística anuncia novo rendimento" {
		t.Errorf("title = %q", items[0].Title)
	}
	if items[0].Source != "InfoMoney - FIIs" {
		t.Errorf("source = %q", items[0].Source)
	}
	want := time.Date(2024, time.February, 5, 15, 30, 0, 0, time.UTC)
	if !items[0].PublishedAt.Equal(want) {
		t.Errorf("published at = %v, want %v", items[0].PublishedAt, want)
	}
}

func TestGetHeadlinesLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	client := NewClient(WithFeedURL(server.URL))
	items, err := client.GetHeadlines(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetHeadlines failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected limit of 1, got %d", len(items))
	}
}

func TestGetHeadlinesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	client := NewClient(WithFeedURL(server.URL))
	if _, err := client.GetHeadlines(context.Background(), 10); err == nil {
		t.Fatal("expected error")
	}
}
