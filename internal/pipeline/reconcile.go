// =============================================================================
// reconcile.go - 複数ソースのマージ/重複排除
// =============================================================================
//
// Azureのように「公式フィードが止まりがち」なベンダーのために、
// フィード結果とスクレイピング結果を1つの重複排除済みリストに統合します。
//
// 【鮮度ゲート】
//   フィード結果の最新記事が十分新しい（staleDays日以内）なら、
//   スクレイピングは実行しない。無駄なHTTPアクセスを避けるため。
//   フィードが空・日付がパース不能な場合は「最大限に古い」とみなして
//   必ずスクレイピングを実行する。
//
// 【同一性判定】
//   リンクURLの最終パスセグメント（スラグ）をキーにする。
//   同じスラグが衝突した場合は date_iso が新しい方を残す。
//   スラグのスコープはベンダー内のみ（マージは常に1ベンダー内で完結する
//   ため、ベンダー間のスラグ衝突は考慮しない）。
//
// =============================================================================
package pipeline

import "time"

// isStale はプライマリ結果の鮮度を判定する
//
// 最新（先頭）記事のdate_isoと今日（JST）の日数差がstaleDaysを超えて
// いればtrue。空リスト・パース不能はtrue（スクレイピングを強制）。
func isStale(primary []NewsItem, staleDays int, today time.Time) bool {
	if len(primary) == 0 {
		return true
	}
	days, ok := daysSinceISO(primary[0].DateISO, today)
	if !ok {
		// 日付が壊れている場合はエラーにせず、古い扱いにして先へ進む
		return true
	}
	return days > staleDays
}

// mergeBySlug は2つの結果セットをスラグをキーに統合する
//
// 同じスラグの記事は date_iso が大きい（新しい）方を残す。
// 出力順は初出順（この後呼び出し元で日付降順ソートされる前提）。
//
// リンクのないエントリはスラグが空になるため、日付+タイトルをキーにする。
// 空スラグ同士を同一記事として潰さないため（リンク欠落はエントリを
// 落とす理由にならない）。
func mergeBySlug(primary, secondary []NewsItem) []NewsItem {
	merged := make([]NewsItem, 0, len(primary)+len(secondary))
	index := make(map[string]int, len(primary)+len(secondary))

	for _, item := range append(append([]NewsItem{}, primary...), secondary...) {
		key := linkSlug(item.Link)
		if key == "" {
			key = item.DateISO + "|" + item.Title
		}
		if pos, seen := index[key]; seen {
			if item.DateISO > merged[pos].DateISO {
				merged[pos] = item
			}
			continue
		}
		index[key] = len(merged)
		merged = append(merged, item)
	}

	return merged
}

// reconcile はプライマリ結果と予備ソースを統合した最終リストを返す
//
// 【引数】
//   - primary:        フィードアダプタの結果（date_iso降順想定）
//   - fetchSecondary: 予備ソース（スクレイピング）の遅延実行クロージャ。
//     鮮度が十分なら一度も呼ばれない
//   - staleDays:      鮮度しきい値（日数）
//   - maxItems:       出力件数上限
//   - today:          「今日」（テスト時に固定できるよう引数で渡す）
func reconcile(primary []NewsItem, fetchSecondary func() []NewsItem, staleDays, maxItems int, today time.Time) []NewsItem {
	if !isStale(primary, staleDays, today) {
		return capItems(primary, maxItems)
	}

	secondary := fetchSecondary()
	if len(secondary) == 0 && len(primary) == 0 {
		return []NewsItem{}
	}

	merged := mergeBySlug(primary, secondary)
	return capItems(sortItemsByDateDesc(merged), maxItems)
}
