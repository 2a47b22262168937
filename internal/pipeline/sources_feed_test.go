package pipeline

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// rssFixture は指定エントリを持つ最小のRSS 2.0文書を組み立てる
func rssFixture(entries ...[3]string) string {
	body := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<rss version="2.0"><channel><title>fixture</title>`
	for _, e := range entries {
		body += fmt.Sprintf(
			`<item><title>%s</title><link>%s</link><description>desc</description><pubDate>%s</pubDate></item>`,
			e[0], e[1], e[2])
	}
	return body + `</channel></rss>`
}

func serveRSS(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, body)
	}))
}

func testInput() InputConfig {
	return InputConfig{
		MaxItems:  DefaultMaxItemsPerCloud,
		MaxFetch:  DefaultMaxFetchEntries,
		StaleDays: DefaultStaleDays,
	}
}

func TestCollectFeedWithFallbackPrimarySuccess(t *testing.T) {
	primary := serveRSS(t, rssFixture(
		[3]string{"New VM series launched", "https://example.com/news/vm-series/", "Thu, 19 Feb 2026 00:00:00 GMT"},
		[3]string{"Bedrock model update", "https://example.com/news/bedrock/", "Fri, 20 Feb 2026 00:00:00 GMT"},
	))
	defer primary.Close()

	v := VendorConfig{Key: "aws", Name: "test", FeedURL: primary.URL, FallbackURL: ""}
	got := collectVendorFeed(v, testInput(), DefaultSourceConfig())

	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	// 公開日降順
	if got[0].Title != "Bedrock model update" {
		t.Fatalf("got[0].Title = %q, want newest first", got[0].Title)
	}
	if got[0].Tag != "AWS" {
		t.Fatalf("Tag = %q, want AWS", got[0].Tag)
	}
	if got[0].Category != "ai-tag" || got[0].CatLabel != "AI / ML" {
		t.Fatalf("category = %q / %q", got[0].Category, got[0].CatLabel)
	}
	if got[1].Category != "compute-tag" {
		t.Fatalf("vm item category = %q, want compute-tag", got[1].Category)
	}
}

// プライマリが落ちていてもフォールバックで収集できる
func TestCollectFeedWithFallbackFailover(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer broken.Close()

	fallback := serveRSS(t, rssFixture(
		[3]string{"Cloud Spanner update", "https://example.com/news/spanner/", "Fri, 20 Feb 2026 00:00:00 GMT"},
	))
	defer fallback.Close()

	v := VendorConfig{Key: "gcp", Name: "test", FeedURL: broken.URL, FallbackURL: fallback.URL}
	got := collectVendorFeed(v, testInput(), DefaultSourceConfig())

	if len(got) != 1 {
		t.Fatalf("got %d items, want 1 from fallback", len(got))
	}
	if got[0].Title != "Cloud Spanner update" {
		t.Fatalf("got[0].Title = %q", got[0].Title)
	}
}

// 全ソース失敗は空スライス（errorではなく）
func TestCollectFeedWithFallbackAllFail(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	v := VendorConfig{Key: "aws", Name: "test", FeedURL: broken.URL, FallbackURL: broken.URL}
	got := collectVendorFeed(v, testInput(), DefaultSourceConfig())

	if got == nil {
		t.Fatalf("want empty non-nil slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("got %d items, want 0", len(got))
	}
}

func TestCollectFeedWithFallbackCapsItems(t *testing.T) {
	entries := make([][3]string, 0, 10)
	for i := 0; i < 10; i++ {
		entries = append(entries, [3]string{
			fmt.Sprintf("Release note %d published", i),
			fmt.Sprintf("https://example.com/news/item-%d/", i),
			fmt.Sprintf("%02d Feb 2026 00:00:00 GMT", i+1),
		})
	}
	srv := serveRSS(t, rssFixture(entries...))
	defer srv.Close()

	in := testInput()
	in.MaxItems = 3
	v := VendorConfig{Key: "aws", Name: "test", FeedURL: srv.URL}
	got := collectVendorFeed(v, in, DefaultSourceConfig())

	if len(got) != 3 {
		t.Fatalf("got %d items, want capped 3", len(got))
	}
	if got[0].DateISO != "2026-02-10" {
		t.Fatalf("got[0].DateISO = %s, want newest 2026-02-10", got[0].DateISO)
	}
}

// タイトル欠落エントリは代替タイトルで残す（落とさない）
func TestItemFromEntryMissingTitle(t *testing.T) {
	srv := serveRSS(t, rssFixture(
		[3]string{"", "https://example.com/news/untitled/", "Fri, 20 Feb 2026 00:00:00 GMT"},
	))
	defer srv.Close()

	v := VendorConfig{Key: "aws", Name: "test", FeedURL: srv.URL}
	got := collectVendorFeed(v, testInput(), DefaultSourceConfig())

	if len(got) != 1 {
		t.Fatalf("got %d items, want 1", len(got))
	}
	if got[0].Title != DefaultTitle {
		t.Fatalf("Title = %q, want %q", got[0].Title, DefaultTitle)
	}
}

// 走査上限MaxFetchは出力上限MaxItemsとは独立に働く
func TestCollectFeedWithFallbackScanCap(t *testing.T) {
	entries := make([][3]string, 0, 20)
	for i := 0; i < 20; i++ {
		entries = append(entries, [3]string{
			fmt.Sprintf("Release note %d published", i),
			fmt.Sprintf("https://example.com/news/scan-%d/", i),
			fmt.Sprintf("%02d Jan 2026 00:00:00 GMT", i+1),
		})
	}
	srv := serveRSS(t, rssFixture(entries...))
	defer srv.Close()

	in := testInput()
	in.MaxFetch = 5
	in.MaxItems = 10
	v := VendorConfig{Key: "aws", Name: "test", FeedURL: srv.URL}
	got := collectVendorFeed(v, in, DefaultSourceConfig())

	// 先頭5件だけが走査対象なので、出力上限10でも5件しか出ない
	if len(got) != 5 {
		t.Fatalf("got %d items, want 5 (scan cap)", len(got))
	}
}
