// =============================================================================
// dates.go - 日付正規化
// =============================================================================
//
// フィード・スクレイピング由来の雑多なタイムスタンプ表現を、固定の
// 日本標準時（UTC+9）に正規化します。
//
// 【受け付ける表現（優先順）】
//  1. gofeedがパース済みのPublished/Updated時刻（UTCとして解釈しJSTへ変換）
//  2. ISO-8601文字列（秒未満は切り捨ててからパース）
//  3. 長形式 "Month D, YYYY"（スクレイピングで拾う日付マーカー。
//     省略形などの揺れは araddon/dateparse で吸収）
//  4. どれもパースできない場合は「現在時刻（JST）」にフォールバック
//
// パース失敗で panic / error を返すことはない。次の候補へ落ちるだけ。
//
// 【出力】
//   display: "{年}年{月}月{日}日"（ゼロ埋めなし、例: "2026年2月20日"）
//   iso:     "YYYY-MM-DD"（ソートキー・同一性判定用）
//
// =============================================================================
package pipeline

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
)

// jst は全日付処理の基準となる固定オフセットのタイムゾーン
var jst = time.FixedZone("JST", 9*60*60)

// reFractionalSeconds はISO-8601文字列の秒未満部分（".123456"など）
var reFractionalSeconds = regexp.MustCompile(`\.\d+`)

// formatJSTDate は時刻をJSTに変換し (表示用, ISO形式) の日付ペアを返す
func formatJSTDate(t time.Time) (display, iso string) {
	t = t.In(jst)
	display = fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
	iso = t.Format("2006-01-02")
	return display, iso
}

// FormatUpdated はスナップショットの生成時刻文字列を返す
//
// 例: "2026年02月20日 09:30 JST"（表示用日付と異なりゼロ埋めあり）
func FormatUpdated(t time.Time) string {
	return t.In(jst).Format("2006年01月02日 15:04 JST")
}

// todayJST は「今日」のJST日付を返す（鮮度計算用）
func todayJST() time.Time {
	return time.Now().In(jst)
}

// entryDate はフィードエントリから (表示用, ISO形式) の日付ペアを返す
//
// PublishedParsed → UpdatedParsed の順で試し、どちらもなければ
// 現在時刻（JST）にフォールバックする。
func entryDate(item *gofeed.Item) (display, iso string) {
	ts := item.PublishedParsed
	if ts == nil {
		ts = item.UpdatedParsed
	}
	if ts != nil {
		return formatJSTDate(ts.UTC())
	}
	return formatJSTDate(time.Now())
}

// parseDateString は日付らしき文字列をパースする
//
// ISO-8601（秒未満切り捨て）→ 長形式 "Month D, YYYY" →
// dateparse（省略形月名などの揺れを吸収）の順で試す。
// 成功時は (時刻, true)、全滅なら (ゼロ値, false)。
func parseDateString(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// ISO-8601: 秒未満を切り捨ててからパース。
	// タイムゾーンを持たない表現はJSTの壁時計として解釈する
	// （UTC扱いにすると+9時間シフトで日付がずれる）。
	iso := reFractionalSeconds.ReplaceAllString(s, "")
	if t, err := time.Parse(time.RFC3339, iso); err == nil {
		return t, true
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.ParseInLocation(layout, iso, jst); err == nil {
			return t, true
		}
	}

	// 長形式: "February 20, 2026"
	for _, layout := range []string{
		"January 2, 2006",
		"Jan 2, 2006",
		"Jan. 2, 2006",
	} {
		if t, err := time.ParseInLocation(layout, s, jst); err == nil {
			return t, true
		}
	}

	// 最後の手段: dateparse（"20 Feb 2026" などの揺れもここで拾える）
	if t, err := dateparse.ParseAny(s); err == nil {
		return t, true
	}

	return time.Time{}, false
}

// normalizeDateString は日付文字列から (表示用, ISO形式) のペアを返す
//
// パースできない場合は現在時刻（JST）にフォールバックする。
// スクレイピングソースで拾った日付マーカーの正規化に使用する。
func normalizeDateString(raw string) (display, iso string) {
	if t, ok := parseDateString(raw); ok {
		return formatJSTDate(t)
	}
	return formatJSTDate(time.Now())
}

// daysSinceISO はISO日付から今日（JST）までの経過日数を返す
//
// パースできない場合は (0, false)。鮮度判定の呼び出し元は
// false を「最大限に古い」として扱うこと（reconcile.go参照）。
func daysSinceISO(iso string, today time.Time) (int, bool) {
	t, err := time.ParseInLocation("2006-01-02", iso, jst)
	if err != nil {
		return 0, false
	}
	days := int(today.In(jst).Sub(t).Hours() / 24)
	return days, true
}
