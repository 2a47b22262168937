package pipeline

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, body)
	}))
}

const azureListFixture = `<!doctype html>
<html><body>
<section>
  <div class="card">
    <a href="/ja-jp/updates/new-gpu-vm-size/">[In preview] New GPU VM size for AI workloads</a>
    <span>2026-02-19</span>
  </div>
</section>
<section>
  <div class="card">
    <a href="https://azure.microsoft.com/en-us/updates/cosmos-db-tier/">Cosmos DB serverless tier generally available</a>
    <span>2026年2月20日</span>
  </div>
</section>
<!-- 一覧ページ自身へのリンクは候補にしない -->
<a href="/ja-jp/updates/">すべての更新を見る</a>
<!-- タイトルが短すぎる候補はスキップ -->
<section><div class="card"><a href="/ja-jp/updates/short/">詳細</a><span>2026-02-18</span></div></section>
<!-- 日付マーカーのない候補はスキップ（親2階層に日付が見つからない） -->
<section><div class="card"><a href="/ja-jp/updates/no-date-entry/">Undated entry without a marker nearby</a></div></section>
<!-- 重複スラグは最初の1件だけ -->
<section>
  <div class="card">
    <a href="/ja-jp/updates/new-gpu-vm-size/">[In preview] New GPU VM size for AI workloads</a>
    <span>2026-02-19</span>
  </div>
</section>
</body></html>`

func TestScrapeAzureUpdates(t *testing.T) {
	srv := serveHTML(t, azureListFixture)
	defer srv.Close()

	orig := azureUpdatesURL
	azureUpdatesURL = srv.URL + "/ja-jp/updates/"
	defer func() { azureUpdatesURL = orig }()

	got := scrapeAzureUpdates(testInput(), DefaultSourceConfig())

	if len(got) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(got), got)
	}

	// 日付降順: 2/20のCosmosが先頭
	if got[0].DateISO != "2026-02-20" || got[1].DateISO != "2026-02-19" {
		t.Fatalf("dates = %s, %s; want 2026-02-20, 2026-02-19", got[0].DateISO, got[1].DateISO)
	}

	// en-usリンクはja-jpへ正規化される
	if got[0].Link != "https://azure.microsoft.com/ja-jp/updates/cosmos-db-tier/" {
		t.Fatalf("link not canonicalized: %s", got[0].Link)
	}

	// ステータス接頭辞は除去される
	if got[1].Title != "New GPU VM size for AI workloads" {
		t.Fatalf("title = %q, want status prefix stripped", got[1].Title)
	}

	// 部分一致なので "generally available" の "ai" がAIルールに先勝ちする
	if got[0].Category != "ai-tag" {
		t.Fatalf("cosmos category = %q, want ai-tag", got[0].Category)
	}
	if got[0].Tag != "AZURE" || got[1].Tag != "AZURE" {
		t.Fatalf("vendor tags = %q, %q; want AZURE", got[0].Tag, got[1].Tag)
	}
}

func TestScrapeAzureUpdatesFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	orig := azureUpdatesURL
	azureUpdatesURL = srv.URL
	defer func() { azureUpdatesURL = orig }()

	got := scrapeAzureUpdates(testInput(), DefaultSourceConfig())
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice on fetch error, got %#v", got)
	}
}

const ociListFixture = `<!doctype html>
<html><body>
<ul>
  <li>
    <a href="/en-us/iaas/releasenotes/changes/object-storage-tiering/">Object Storage adds automatic tiering support</a>
    <div>Release Date: February 20, 2026</div>
  </li>
  <li>
    <a href="/en-us/iaas/releasenotes/changes/oke-version-update/">OKE adds support for Kubernetes version upgrades</a>
    <div>Release Date: Feb. 18, 2026</div>
  </li>
  <!-- releasenotes配下でないリンクは無視 -->
  <li><a href="/en-us/iaas/other/unrelated-page/">Unrelated documentation page link</a><div>February 19, 2026</div></li>
</ul>
<!-- 日付なし（親2階層に日付マーカーが見つからない） -->
<section><div><a href="/en-us/iaas/releasenotes/changes/undated-note/">Undated release note entry here</a></div></section>
</body></html>`

func TestCollectVendorOCI(t *testing.T) {
	srv := serveHTML(t, ociListFixture)
	defer srv.Close()

	orig := ociReleaseNotesURL
	ociReleaseNotesURL = srv.URL + "/en-us/iaas/releasenotes/"
	defer func() { ociReleaseNotesURL = orig }()

	v, _ := vendorByKey("oci")
	got := collectVendorOCI(v, testInput(), DefaultSourceConfig())

	if len(got) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(got), got)
	}
	if got[0].DateISO != "2026-02-20" {
		t.Fatalf("got[0].DateISO = %s, want 2026-02-20", got[0].DateISO)
	}
	if got[0].Category != "storage-tag" {
		t.Fatalf("object storage category = %q, want storage-tag", got[0].Category)
	}
	if got[1].Category != "container-tag" {
		t.Fatalf("oke category = %q, want container-tag", got[1].Category)
	}
	// 省略形 "Feb. 18, 2026" もパースできる
	if got[1].DateISO != "2026-02-18" {
		t.Fatalf("got[1].DateISO = %s, want 2026-02-18", got[1].DateISO)
	}
	if got[0].Tag != "OCI" {
		t.Fatalf("Tag = %q, want OCI", got[0].Tag)
	}
}

// フィードが新鮮ならスクレイピングのHTTPアクセスは発生しない
func TestCollectVendorAzureFreshFeedSkipsScrape(t *testing.T) {
	feed := serveRSS(t, rssFixture(
		[3]string{"Fresh azure update entry", "https://azure.microsoft.com/ja-jp/updates/fresh-entry/",
			time.Now().UTC().Format(time.RFC1123)},
	))
	defer feed.Close()

	scrapeHits := 0
	scrape := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scrapeHits++
		fmt.Fprint(w, "<html></html>")
	}))
	defer scrape.Close()

	orig := azureUpdatesURL
	azureUpdatesURL = scrape.URL
	defer func() { azureUpdatesURL = orig }()

	v := VendorConfig{Key: "azure", Name: "test", FeedURL: feed.URL}
	got := collectVendorAzure(v, testInput(), DefaultSourceConfig())

	if scrapeHits != 0 {
		t.Fatalf("scrape page fetched %d times despite fresh feed", scrapeHits)
	}
	if len(got) != 1 || got[0].Title != "Fresh azure update entry" {
		t.Fatalf("got %+v, want the single feed item", got)
	}
}

// フィードが古い場合はスクレイピング結果とマージされる
func TestCollectVendorAzureStaleFeedMergesScrape(t *testing.T) {
	feed := serveRSS(t, rssFixture(
		[3]string{"Very old azure feed entry", "https://azure.microsoft.com/ja-jp/updates/ancient-entry/",
			"Sat, 01 Jan 2000 00:00:00 GMT"},
	))
	defer feed.Close()

	scrape := serveHTML(t, azureListFixture)
	defer scrape.Close()

	orig := azureUpdatesURL
	azureUpdatesURL = scrape.URL + "/ja-jp/updates/"
	defer func() { azureUpdatesURL = orig }()

	v := VendorConfig{Key: "azure", Name: "test", FeedURL: feed.URL}
	got := collectVendorAzure(v, testInput(), DefaultSourceConfig())

	// フィード1件 + スクレイピング2件（フィクスチャの有効候補）
	if len(got) != 3 {
		t.Fatalf("got %d items, want 3 merged: %+v", len(got), got)
	}
	// マージ後も日付降順で、古いフィード記事は末尾
	if got[len(got)-1].Title != "Very old azure feed entry" {
		t.Fatalf("stale feed item should sort last: %+v", got)
	}
}

func TestFindLongDateMarker(t *testing.T) {
	if _, _, ok := findLongDateMarker("no dates in here"); ok {
		t.Fatalf("findLongDateMarker should fail without a marker")
	}
	display, iso, ok := findLongDateMarker("Release Date: February 20, 2026 (updated)")
	if !ok || iso != "2026-02-20" || display != "2026年2月20日" {
		t.Fatalf("findLongDateMarker = %q, %q, %v", display, iso, ok)
	}
}

func TestFindDateMarker(t *testing.T) {
	display, iso, ok := findDateMarker("posted 2026-02-05 somewhere")
	if !ok || iso != "2026-02-05" || display != "2026年2月5日" {
		t.Fatalf("iso marker = %q, %q, %v", display, iso, ok)
	}
	display, iso, ok = findDateMarker("公開日: 2026年2月5日")
	if !ok || iso != "2026-02-05" || display != "2026年2月5日" {
		t.Fatalf("jp marker = %q, %q, %v", display, iso, ok)
	}
	if _, _, ok = findDateMarker("日付なし"); ok {
		t.Fatalf("findDateMarker should fail without a marker")
	}
}
