// =============================================================================
// sources_azure.go - Microsoft Azure ソース
// =============================================================================
//
// Azureの「最新情報」は公式フィードが数週間止まることがあるため、
// 他ベンダーより一段複雑な構成になっています。
//
// 【収集フロー】
//  1. フィード（プライマリ → フォールバック）から収集
//  2. 最新記事がstaleDays日以内ならそのまま採用（スクレイピングしない）
//  3. 古い・空の場合のみ updates ページをスクレイピングし、
//     スラグをキーにマージ（reconcile.go）
//
// 【Azure固有の正規化】
//   - タイトル先頭の "[In preview]" などのステータス接頭辞を除去
//   - リンクを ja-jp ロケールパスへ正規化（フィードはen-usリンクを
//     返すことがあり、表示層は日本語ページへ誘導したい）
//
// =============================================================================
package pipeline

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// azureUpdatesURL はスクレイピング対象の「最新情報」一覧ページ
// （varなのはテストで差し替えるため）
var azureUpdatesURL = "https://azure.microsoft.com/ja-jp/updates/"

// minScrapedTitleLen はスクレイピング候補として採用するタイトルの最小文字数
// （ナビゲーションリンクの「詳細」「もっと見る」などを弾く）
const minScrapedTitleLen = 8

// 日付マーカー抽出用（ISO形式と和暦風表記の両方を探す）
var (
	reISODateMarker = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	reJPDateMarker  = regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`)
)

// canonicalizeAzureLink はAzureのリンクを ja-jp ロケールパスに正規化する
//
// 使用例:
//
//	https://azure.microsoft.com/en-us/updates/foo/ -> https://azure.microsoft.com/ja-jp/updates/foo/
func canonicalizeAzureLink(link string) string {
	u, err := url.Parse(link)
	if err != nil || !strings.HasSuffix(u.Host, "azure.microsoft.com") {
		return link
	}
	if strings.HasPrefix(u.Path, "/en-us/") {
		u.Path = "/ja-jp/" + strings.TrimPrefix(u.Path, "/en-us/")
	}
	return u.String()
}

// azureFeedOptions はAzureフィードエントリ用の加工フック
var azureFeedOptions = feedItemOptions{
	CleanTitle: stripStatusPrefix,
	CanonLink:  canonicalizeAzureLink,
}

// findDateMarker はテキスト中の日付マーカーを探してパースする
//
// ISO形式（2026-02-20）と日本語表記（2026年2月20日）の両方を試す。
func findDateMarker(text string) (display, iso string, ok bool) {
	if m := reISODateMarker.FindString(text); m != "" {
		if t, parsed := parseDateString(m); parsed {
			d, i := formatJSTDate(t)
			return d, i, true
		}
	}
	if m := reJPDateMarker.FindStringSubmatch(text); m != nil {
		if t, parsed := parseDateString(m[1] + "-" + pad2(m[2]) + "-" + pad2(m[3])); parsed {
			d, i := formatJSTDate(t)
			return d, i, true
		}
	}
	return "", "", false
}

// pad2 は1〜2桁の数字文字列を2桁ゼロ埋めにする
func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// scrapeAzureUpdates は updates 一覧ページから候補記事を抽出する
//
// 【候補の採用条件】（1つでも欠ける候補はその1件だけをスキップ）
//   - /updates/ 配下の記事詳細への解決可能な絶対リンク
//   - 最小文字数以上のタイトル
//   - リンク周辺ブロックにパース可能な日付マーカー
func scrapeAzureUpdates(in InputConfig, cfg SourceConfig) []NewsItem {
	resp, err := httpGet(azureUpdatesURL, cfg)
	if err != nil {
		warnf("[azure] スクレイピング取得失敗 (%s): %v", azureUpdatesURL, err)
		return []NewsItem{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		warnf("[azure] スクレイピング取得失敗 (%s): status %s", azureUpdatesURL, resp.Status)
		return []NewsItem{}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		warnf("[azure] HTMLパース失敗: %v", err)
		return []NewsItem{}
	}

	out := make([]NewsItem, 0, in.MaxItems)
	seen := make(map[string]bool)

	doc.Find("a[href*='/updates/']").Each(func(_ int, s *goquery.Selection) {
		if len(out) >= in.MaxFetch {
			return
		}

		href, exists := s.Attr("href")
		if !exists {
			return
		}
		link := resolveURL(azureUpdatesURL, href)
		if link == "" || !strings.Contains(link, "/updates/") {
			return
		}
		link = canonicalizeAzureLink(link)

		slug := linkSlug(link)
		if slug == "" || slug == "updates" || seen[slug] {
			return // 一覧ページ自身へのリンクと重複を除外
		}

		title := cleanText(stripStatusPrefix(s.Text()), 120)
		if len([]rune(title)) < minScrapedTitleLen {
			return
		}

		// 日付マーカーはリンクの周辺ブロック（親2階層まで）から探す
		display, iso, ok := findDateMarker(s.Parent().Text())
		if !ok {
			display, iso, ok = findDateMarker(s.Parent().Parent().Text())
		}
		if !ok {
			return
		}

		seen[slug] = true
		catTag := detectCategory(title, "")
		out = append(out, NewsItem{
			Title:    title,
			Link:     link,
			Summary:  "",
			Date:     display,
			DateISO:  iso,
			Category: catTag,
			CatLabel: categoryLabel(catTag),
			Tag:      vendorTagFor("azure"),
		})
	})

	debugf("azure scrape: %d candidates accepted", len(out))
	return capItems(sortItemsByDateDesc(out), in.MaxItems)
}

// collectVendorAzure はAzureの収集関数（フィード + 鮮度ゲート付きスクレイピング）
func collectVendorAzure(v VendorConfig, in InputConfig, cfg SourceConfig) []NewsItem {
	primary := collectFeedWithFallback(v, []string{v.FeedURL, v.FallbackURL}, in, cfg, azureFeedOptions)

	return reconcile(primary, func() []NewsItem {
		infof("[%s] フィードが古いためスクレイピングを併用します", v.Key)
		return scrapeAzureUpdates(in, cfg)
	}, in.StaleDays, in.MaxItems, todayJST())
}
