// =============================================================================
// types.go - データ構造定義
// =============================================================================
//
// このファイルはCloud News Relayシステム全体で使用するデータ構造を定義します。
//
// 【このファイルで定義している型】
//   - NewsItem: 正規化済みの「What's New」アナウンス1件
//   - Snapshot: 全ベンダーの収集結果をまとめたルート構造
//
// 【JSONフィールド名について】
//   NewsItem / Snapshot のJSONキーはフロントエンド（news.json を読む表示層）
//   との互換性契約です。キー名・ベンダーキーの並び順を変更しないこと。
//
// =============================================================================
package pipeline

import (
	"bytes"
	"encoding/json"
)

// -----------------------------------------------------------------------------
// NewsItem - 正規化済みアナウンス
// -----------------------------------------------------------------------------
//
// 各クラウドベンダーの「What's New」1件分を共通形式に正規化したレコード。
// 一度構築したら変更しない（イミュータブル）。
//
// 【フィールドの説明】
//   Title:     タイトル（タグ除去・120文字切り詰め済み、Azureはステータス接頭辞除去済み）
//   Link:      記事の絶対URL（Azureは ja-jp ロケールパスに正規化）
//   Summary:   要約（タグ除去・200文字切り詰め済み、空の場合あり）
//   Date:      表示用日付（例: "2026年2月20日"、ゼロ埋めなし）
//   DateISO:   ソート・同一性判定用日付（"YYYY-MM-DD"）
//   Category:  カテゴリタグ（ai-tag / security-tag / ... / compute-tag）
//   CatLabel:  カテゴリ表示ラベル（例: "AI / ML"）
//   Tag:       ベンダーコード大文字（AZURE / AWS / GCP / OCI）
//
type NewsItem struct {
	Title    string `json:"title"`     // 記事タイトル
	Link     string `json:"link"`      // 記事URL（絶対URL）
	Summary  string `json:"summary"`   // 要約テキスト
	Date     string `json:"date"`      // 表示用日付
	DateISO  string `json:"date_iso"`  // ISO形式日付（ソートキー）
	Category string `json:"category"`  // カテゴリタグ
	CatLabel string `json:"cat_label"` // カテゴリ表示ラベル
	Tag      string `json:"tag"`       // ベンダーコード
}

// -----------------------------------------------------------------------------
// Snapshot - ルート集約構造
// -----------------------------------------------------------------------------
//
// 1回のパイプライン実行で生成される全ベンダー分の収集結果。
// 生成後は書き換えず、そのまま出力境界（JSONファイル / stdout）へ渡す。
//
// 【フィールドの説明】
//   Updated:     生成時刻（JST、例: "2026年02月20日 09:30 JST"）
//   Clouds:      ベンダーキー -> NewsItem列（date_iso降順）
//   VendorOrder: JSON出力時のベンダーキーの並び順（出力契約の一部）
//
// ベンダーが1件も取得できなかった場合も、そのキーは空配列として必ず含める。
type Snapshot struct {
	Updated string                `json:"updated"`
	Clouds  map[string][]NewsItem `json:"clouds"`

	// VendorOrder はJSONには出力しない。MarshalJSONがcloudsオブジェクトの
	// キー順を固定するために使用する（Goのmapは順序を持たないため）。
	VendorOrder []string `json:"-"`
}

// MarshalJSON は clouds オブジェクトのキーを設定されたベンダー順で出力する
//
// encoding/json はmapのキーをアルファベット順に並べ替えてしまうため、
// 表示層との互換性契約（azure, aws, gcp, oci の順）を保つには
// 手動でオブジェクトを組み立てる必要がある。
func (s Snapshot) MarshalJSON() ([]byte, error) {
	order := s.VendorOrder
	if len(order) == 0 {
		// 並び順未指定の場合はmapに存在するキーをそのまま拾う
		// （テストや部分的なスナップショットの読み戻し用）
		for key := range s.Clouds {
			order = append(order, key)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(`{"updated":`)
	updated, err := json.Marshal(s.Updated)
	if err != nil {
		return nil, err
	}
	buf.Write(updated)

	buf.WriteString(`,"clouds":{`)
	first := true
	for _, key := range order {
		items, ok := s.Clouds[key]
		if !ok {
			continue
		}
		if items == nil {
			items = []NewsItem{} // null ではなく [] を出力する
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		v, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteString("}}")

	return buf.Bytes(), nil
}
