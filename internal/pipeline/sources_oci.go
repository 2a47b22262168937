// =============================================================================
// sources_oci.go - Oracle Cloud Infrastructure ソース
// =============================================================================
//
// OCIのリリースノートには信頼できるフィードがないため、
// docs.oracle.com のリリースノート一覧ページをスクレイピングします。
//
// 【ページ構造】
//   リリースノート1件 = 詳細ページへのアンカー + 近傍の
//   "Release Date: February 20, 2026" 形式の日付ラベルの組。
//   構造が変わりやすいため、CSSクラスに依存せず
//   「アンカー + 周辺テキストの日付マーカー」で抽出する。
//
// =============================================================================
package pipeline

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ociReleaseNotesURL はスクレイピング対象のリリースノート一覧ページ
// （varなのはテストで差し替えるため）
var ociReleaseNotesURL = "https://docs.oracle.com/en-us/iaas/releasenotes/"

// reLongDateMarker は "February 20, 2026" / "Feb. 20, 2026" 形式の日付マーカー
var reLongDateMarker = regexp.MustCompile(`(?i)(Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?\s+\d{1,2},\s+\d{4}`)

// findLongDateMarker はテキスト中の長形式日付マーカーを探してパースする
func findLongDateMarker(text string) (display, iso string, ok bool) {
	m := reLongDateMarker.FindString(text)
	if m == "" {
		return "", "", false
	}
	t, parsed := parseDateString(strings.ReplaceAll(m, ".", ""))
	if !parsed {
		return "", "", false
	}
	d, i := formatJSTDate(t)
	return d, i, true
}

// collectVendorOCI はOCIの収集関数（スクレイピングのみ）
//
// 【候補の採用条件】（1つでも欠ける候補はその1件だけをスキップ）
//   - releasenotes 配下の詳細ページへの解決可能な絶対リンク
//   - 最小文字数以上のタイトル
//   - リンク周辺ブロックにパース可能な日付マーカー
//
// ページ取得やパースに失敗した場合は空スライスを返す（errorは返さない）。
func collectVendorOCI(v VendorConfig, in InputConfig, cfg SourceConfig) []NewsItem {
	resp, err := httpGet(ociReleaseNotesURL, cfg)
	if err != nil {
		warnf("[%s] 取得失敗 (%s): %v", v.Key, ociReleaseNotesURL, err)
		return []NewsItem{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		warnf("[%s] 取得失敗 (%s): status %s", v.Key, ociReleaseNotesURL, resp.Status)
		return []NewsItem{}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		warnf("[%s] HTMLパース失敗: %v", v.Key, err)
		return []NewsItem{}
	}

	out := make([]NewsItem, 0, in.MaxItems)
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if len(out) >= in.MaxFetch {
			return
		}

		href, _ := s.Attr("href")
		link := resolveURL(ociReleaseNotesURL, href)
		if link == "" || !strings.Contains(link, "releasenotes") {
			return
		}

		slug := linkSlug(link)
		if slug == "" || slug == "releasenotes" || seen[slug] {
			return
		}

		title := cleanText(s.Text(), 120)
		if len([]rune(title)) < minScrapedTitleLen {
			return
		}

		// 日付ラベルはアンカーと同じブロック（親2階層まで）にある
		display, iso, ok := findLongDateMarker(s.Parent().Text())
		if !ok {
			display, iso, ok = findLongDateMarker(s.Parent().Parent().Text())
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
			Tag:      vendorTagFor(v.Key),
		})
	})

	debugf("oci scrape: %d candidates accepted", len(out))

	items := capItems(sortItemsByDateDesc(out), in.MaxItems)
	if len(items) > 0 {
		infof("[%s] %d 件取得 (%s)", v.Key, len(items), ociReleaseNotesURL)
	}
	return items
}
