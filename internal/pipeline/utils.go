// =============================================================================
// utils.go - ユーティリティ関数
// =============================================================================
//
// このファイルはシステム全体で使用する汎用的なヘルパー関数を提供します。
//
// 【このファイルで提供する機能】
//   - ログ出力: 警告・情報メッセージの出力（stdoutはJSON専用のためstderrへ）
//   - JSON操作: ファイル読み書き、標準出力への出力
//   - HTTP操作: User-Agent・タイムアウト付きGET
//   - URL操作: 相対URL解決、スラグ抽出
//   - NewsItem操作: 日付降順ソート、件数上限
//
// =============================================================================
package pipeline

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
)

// -----------------------------------------------------------------------------
// ログ出力関数
// -----------------------------------------------------------------------------

// warnf は警告メッセージを標準エラー出力に書き出す
//
// 【なぜ標準エラー出力を使うか】
//
//	標準出力（stdout）はスナップショットJSONを渡すために使用するため、
//	ログメッセージは標準エラー出力（stderr）に出力する
func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "WARN: "+format+"\n", args...)
}

// infof は情報メッセージを標準エラー出力に書き出す
func infof(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "INFO: "+format+"\n", args...)
}

// errorf はエラーメッセージを標準エラー出力に書き出す
//
// 【注意】この関数はログ出力のみでプログラムは終了しない
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
}

// debugf はDEBUG_SCRAPING環境変数が設定されている場合のみ詳細ログを出力する
func debugf(format string, args ...any) {
	if os.Getenv("DEBUG_SCRAPING") != "" {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// -----------------------------------------------------------------------------
// JSON操作関数
// -----------------------------------------------------------------------------

// WriteJSONToStdout は任意のデータをJSON形式で標準出力に書き出す
//
// 出力は2スペースでインデントされた読みやすい形式になる。
func WriteJSONToStdout(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ") // 2スペースインデント
	return enc.Encode(v)
}

// WriteJSONFile は任意のデータをJSON形式でファイルに保存する
//
// 【ファイル権限】0o644 = 所有者は読み書き可、他は読み取りのみ
func WriteJSONFile(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ReadJSONFile はJSONファイルを読み込んで指定した型に変換する
//
// 使用例:
//
//	var snap Snapshot
//	err := ReadJSONFile("data/news.json", &snap)
func ReadJSONFile(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// -----------------------------------------------------------------------------
// HTTP操作関数
// -----------------------------------------------------------------------------

// httpGet はUser-Agentヘッダー付きでHTTP GETリクエストを実行する
//
// 共有クライアントを使用し、呼び出し元でresp.Body.Close()を行う必要がある。
func httpGet(u string, cfg SourceConfig) (*http.Response, error) {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml")
	return cfg.Client.Do(req)
}

// -----------------------------------------------------------------------------
// URL操作関数
// -----------------------------------------------------------------------------

// resolveURL は相対URLを絶対URLに変換
//
// ベースURLと相対URL（href）から完全な絶対URLを生成する。
// 既に絶対URLの場合はそのまま返す。エラー時は空文字列。
func resolveURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

// linkSlug はURLの最終パスセグメント（スラグ）を返す
//
// 同一記事の重複判定キーとして使用する。末尾のスラッシュは除去するため、
// ".../foo-bar/" と ".../foo-bar" は同じスラグになる。
// クエリ・フラグメントは無視する。パースできないURLは全体をキーにする
// （重複判定できないだけで、記事を落とさない）。
func linkSlug(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	path := strings.TrimRight(u.Path, "/")
	if path == "" {
		return u.Host
	}
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// -----------------------------------------------------------------------------
// NewsItem操作関数
// -----------------------------------------------------------------------------

// sortItemsByDateDesc はNewsItemスライスをdate_iso降順で安定ソートする
//
// 【重要】元のスライスは変更せず、新しいスライスを返す（非破壊的操作）。
// date_isoは"YYYY-MM-DD"形式なので文字列比較がそのまま日付順になる。
func sortItemsByDateDesc(in []NewsItem) []NewsItem {
	out := append([]NewsItem{}, in...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateISO > out[j].DateISO
	})
	return out
}

// capItems はNewsItemスライスを最大max件に切り詰める
func capItems(in []NewsItem, max int) []NewsItem {
	if max <= 0 || len(in) <= max {
		return in
	}
	return in[:max]
}
