// =============================================================================
// sources_feed.go - フィード取得ソース（共通）
// =============================================================================
//
// このファイルはRSS/Atomフィードを使用するベンダー共通の収集ロジックを
// 提供します。gofeed ライブラリを使用してフィードを解析します。
//
// 【フォールバックの契約】
//   プライマリURL → フォールバックURL の順に試し、「1件以上の有効な
//   エントリを得た最初のソース」で確定する。プライマリとフォールバックの
//   結果をマージすることはない（first success wins）。
//   全ソースが失敗した場合は空スライスを返す。呼び出し元へerrorは伝えない。
//
// 【走査上限】
//   巨大なフィード対策として、1本のフィードから走査するエントリ数は
//   MaxFetch件まで（出力上限MaxItemsとは独立）。走査後に日付降順ソート
//   してから上限を適用する。
//
// =============================================================================
package pipeline

import (
	"fmt"
	"net/http"

	"github.com/mmcdole/gofeed"
)

// feedItemOptions はベンダー固有のエントリ加工フック
//
// フィード共通処理は全ベンダーで同じだが、Azureだけはタイトルの
// ステータス接頭辞除去とリンクのロケール正規化が必要（sources_azure.go）。
type feedItemOptions struct {
	CleanTitle func(string) string // タイトル追加加工（cleanText前に適用）
	CanonLink  func(string) string // リンク正規化
}

// fetchFeed は指定URLからRSS/Atomフィードを取得してパース
//
// 共有HTTPクライアントを使用してフィードをフェッチし、gofeedでパースする。
func fetchFeed(feedURL string, cfg SourceConfig) (*gofeed.Feed, error) {
	resp, err := httpGet(feedURL, cfg)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	fp := gofeed.NewParser()
	feed, err := fp.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed parse failed: %w", err)
	}

	return feed, nil
}

// itemFromEntry はフィードエントリ1件をNewsItemに正規化する
//
// タイトル欠落は代替タイトル、リンク・要約の欠落は空文字列として扱い、
// エントリを落とさない。
func itemFromEntry(entry *gofeed.Item, vendorTag string, opts feedItemOptions) NewsItem {
	rawTitle := entry.Title
	if opts.CleanTitle != nil {
		rawTitle = opts.CleanTitle(rawTitle)
	}
	title := cleanText(rawTitle, 120)
	if title == "" {
		title = DefaultTitle
	}

	rawSummary := entry.Description
	if rawSummary == "" {
		rawSummary = entry.Content
	}
	summary := cleanText(rawSummary, 200)

	link := entry.Link
	if opts.CanonLink != nil {
		link = opts.CanonLink(link)
	}

	display, iso := entryDate(entry)
	catTag := detectCategory(title, summary)

	return NewsItem{
		Title:    title,
		Link:     link,
		Summary:  summary,
		Date:     display,
		DateISO:  iso,
		Category: catTag,
		CatLabel: categoryLabel(catTag),
		Tag:      vendorTag,
	}
}

// collectFeedWithFallback はフィードURLのリストを順に試して収集する
//
// 1件以上取得できた最初のURLで確定する。全滅なら空スライス。
func collectFeedWithFallback(v VendorConfig, urls []string, in InputConfig, cfg SourceConfig, opts feedItemOptions) []NewsItem {
	vendorTag := vendorTagFor(v.Key)

	for _, feedURL := range urls {
		if feedURL == "" {
			continue
		}

		feed, err := fetchFeed(feedURL, cfg)
		if err != nil {
			warnf("[%s] 取得失敗 (%s): %v", v.Key, feedURL, err)
			continue
		}
		if len(feed.Items) == 0 {
			warnf("[%s] エントリなし (%s)", v.Key, feedURL)
			continue
		}

		// 走査上限までエントリを正規化
		entries := feed.Items
		if in.MaxFetch > 0 && len(entries) > in.MaxFetch {
			entries = entries[:in.MaxFetch]
		}
		items := make([]NewsItem, 0, len(entries))
		for _, entry := range entries {
			items = append(items, itemFromEntry(entry, vendorTag, opts))
		}

		if len(items) == 0 {
			continue
		}

		// 公開日降順ソート → 最大件数取得
		items = capItems(sortItemsByDateDesc(items), in.MaxItems)
		infof("[%s] %d 件取得 (%s)", v.Key, len(items), feedURL)
		return items
	}

	return []NewsItem{}
}

// collectVendorFeed はフィードのみのベンダー（AWS / GCP）の収集関数
//
// プライマリ → フォールバックの順で試す。
func collectVendorFeed(v VendorConfig, in InputConfig, cfg SourceConfig) []NewsItem {
	return collectFeedWithFallback(v, []string{v.FeedURL, v.FallbackURL}, in, cfg, feedItemOptions{})
}
