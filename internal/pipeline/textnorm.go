// =============================================================================
// textnorm.go - テキスト正規化
// =============================================================================
//
// フィードエントリやスクレイピング結果の生テキストを、表示層に渡せる
// プレーンテキストへ正規化します。
//
// 【このファイルで提供する機能】
//   - cleanText:         タグ除去 + 空白正規化 + 単語境界での切り詰め
//   - stripStatusPrefix: Azureタイトルのステータス接頭辞除去
//
// =============================================================================
package pipeline

import (
	"html"
	"regexp"
	"strings"
)

// Package-level compiled regex for performance (avoid recompiling on every call)
var (
	reScriptTags = regexp.MustCompile(`(?s)<script[^>]*>.*?</script>`)
	reHTMLTags   = regexp.MustCompile(`<[^>]*>`)
	reWhitespace = regexp.MustCompile(`\s+`)

	// Azureの「What's New」タイトルは "[In preview] ..." のような
	// ステータス接頭辞付きで配信される。表示にはカテゴリタグを使うため除去する。
	reAzureStatusPrefix = regexp.MustCompile(`(?i)^\[(in preview|public preview|private preview|generally available|in development|launched|retired)\]\s*`)
)

// DefaultTitle はタイトルが取得できなかったエントリに与える代替タイトル
const DefaultTitle = "(タイトルなし)"

// cleanText はHTMLタグを除去し、指定文字数に切り詰める
//
// 【処理の流れ】
//  1. <script>ブロックを中身ごと除去
//  2. 残りのHTMLタグを除去、HTMLエンティティをデコード
//  3. 連続する空白を単一スペースに正規化してトリム
//  4. maxLenを超える場合、maxLen以前の最後の空白境界で切り詰めて「…」を付ける
//
// 日本語などのマルチバイト文字も正しく処理する（runeを使用）。
// 空文字列を渡しても安全（空文字列が返る）。
func cleanText(raw string, maxLen int) string {
	text := reScriptTags.ReplaceAllString(raw, " ")
	text = reHTMLTags.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	text = strings.TrimSpace(reWhitespace.ReplaceAllString(text, " "))

	runes := []rune(text)
	if maxLen <= 0 || len(runes) <= maxLen {
		return text
	}

	cut := string(runes[:maxLen])
	// 単語の途中で切らない。空白を含まないテキスト（日本語など）はそのまま
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + "…"
}

// stripStatusPrefix はAzureタイトル先頭のステータス接頭辞を1つ除去する
//
// 使用例:
//
//	stripStatusPrefix("[In preview] New GPU VM size")  // "New GPU VM size"
//	stripStatusPrefix("No prefix here")                // そのまま
func stripStatusPrefix(title string) string {
	return reAzureStatusPrefix.ReplaceAllString(strings.TrimSpace(title), "")
}
