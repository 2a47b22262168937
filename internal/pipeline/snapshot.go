// =============================================================================
// snapshot.go - スナップショット組み立て
// =============================================================================
//
// 全ベンダーのアダプタを順に実行し、表示層へ渡す最終的なSnapshotを
// 組み立てます。
//
// 【ベンダーレジストリ】
//   収集関数をマップで管理することで、組み立てループのif文を削減し、
//   ベンダー追加時の変更を最小化する。
//
//   - azure:     フィード + 鮮度ゲート付きスクレイピング（sources_azure.go）
//   - aws / gcp: フィードのみ（sources_feed.go）
//   - oci:       スクレイピングのみ（sources_oci.go）
//
// 【失敗の扱い】
//   1ベンダーの全ソース失敗はそのベンダーが空配列になるだけで、
//   スナップショット生成自体は必ず完了する（部分失敗の伝播なし）。
//
// =============================================================================
package pipeline

import (
	"strings"
	"time"
)

// VendorCollector はベンダー収集関数のシグネチャを定義する型
//
// 全てのcollectVendor*関数はこのシグネチャに従う。errorを返さないのは
// 契約であり、失敗はログに残して空スライスで回復する。
type VendorCollector func(v VendorConfig, in InputConfig, cfg SourceConfig) []NewsItem

// vendorCollectors は全ベンダーの収集関数を格納するレジストリ
var vendorCollectors = map[string]VendorCollector{
	"azure": collectVendorAzure,
	"aws":   collectVendorFeed,
	"gcp":   collectVendorFeed,
	"oci":   collectVendorOCI,
}

// vendorTagFor はベンダーキーからNewsItemのタグ表記（大文字）を返す
func vendorTagFor(key string) string {
	return strings.ToUpper(key)
}

// BuildSnapshot は全ベンダーを収集してSnapshotを組み立てる
//
// ベンダーはテーブル定義順に1つずつ処理する（フォールバックの
// first-success-wins契約はベンダー内で完結しているため、将来ベンダー単位の
// 並列化を入れる場合も順序保証はこの関数のVendorOrderだけで維持できる）。
func BuildSnapshot(in InputConfig, cfg SourceConfig) Snapshot {
	selected := make(map[string]bool)
	for _, key := range in.VendorList() {
		if _, ok := vendorByKey(key); !ok {
			warnf("unknown vendor: %s (skipped)", key)
			continue
		}
		selected[key] = true
	}

	snap := Snapshot{
		Updated: FormatUpdated(time.Now()),
		Clouds:  make(map[string][]NewsItem, len(Vendors)),
	}

	// テーブル定義順 = JSON出力順
	for _, v := range Vendors {
		if !selected[v.Key] {
			continue
		}
		snap.VendorOrder = append(snap.VendorOrder, v.Key)

		collector, ok := vendorCollectors[v.Key]
		if !ok {
			// レジストリ漏れは設定ミス。空配列で出力契約だけは守る
			errorf("no collector registered for vendor %s", v.Key)
			snap.Clouds[v.Key] = []NewsItem{}
			continue
		}

		infof("Fetching %s ...", v.Name)
		items := collector(v, in, cfg)
		if items == nil {
			items = []NewsItem{}
		}
		if len(items) == 0 {
			warnf("[%s] 0 件（全ソース失敗または空）", v.Key)
		}
		snap.Clouds[v.Key] = items
	}

	return snap
}

// AllItems はスナップショット内の全NewsItemをベンダー順に平坦化して返す
//
// Notionクリップなど、ベンダー区分を持たない出力先向けのヘルパー。
func (s Snapshot) AllItems() []NewsItem {
	var out []NewsItem
	for _, key := range s.VendorOrder {
		out = append(out, s.Clouds[key]...)
	}
	return out
}
