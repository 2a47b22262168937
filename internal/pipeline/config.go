// =============================================================================
// config.go - パイプライン設定
// =============================================================================
//
// このファイルはベンダーテーブルの定義とCLIフラグの解析を行います。
//
// 【設定グループ】
//   - VendorConfig:   ベンダー定義（フィードURL、フォールバックURL）
//   - SourceConfig:   HTTP取得設定（User-Agent、タイムアウト、共有クライアント）
//   - PipelineConfig: CLIフラグ全体
//
// 【設計メモ】
//   収集件数上限（6件）・フィード走査上限（100件）・鮮度しきい値（7日）は
//   元スクリプトのマジックナンバー。ベンダーの投稿頻度に依存する値のため、
//   ハードコードせずフラグで変更可能にしてある。
//
// =============================================================================
package pipeline

import (
	"flag"
	"net/http"
	"strings"
	"time"
)

// =============================================================================
// ベンダーテーブル
// =============================================================================

// VendorConfig は1ベンダー分の取得設定
type VendorConfig struct {
	Key         string // ベンダーキー（JSON出力の clouds キー、小文字）
	Name        string // 表示名（ログ用）
	FeedURL     string // プライマリフィードURL（スクレイピング専用ベンダーは空）
	FallbackURL string // フォールバックフィードURL
}

// Vendors は収集対象ベンダーの定義テーブル
//
// スライスの並び順がそのままJSON出力の clouds キー順になる（互換性契約）。
//
//   - azure: 公式フィードが不安定なため、鮮度チェック付きで
//     updates ページのスクレイピングとマージする（sources_azure.go）
//   - aws / gcp: フィードのみ（プライマリ → フォールバック）
//   - oci: 利用可能なフィードがないため、リリースノートページを
//     スクレイピングする（sources_oci.go）
var Vendors = []VendorConfig{
	{
		Key:         "azure",
		Name:        "Microsoft Azure",
		FeedURL:     "https://azure.microsoft.com/ja-jp/updates/feed/",
		FallbackURL: "https://azurecomcdn.azureedge.net/ja-jp/updates/feed/",
	},
	{
		Key:         "aws",
		Name:        "Amazon Web Services",
		FeedURL:     "https://aws.amazon.com/jp/new/feed/",
		FallbackURL: "https://aws.amazon.com/new/feed/",
	},
	{
		Key:         "gcp",
		Name:        "Google Cloud Platform",
		FeedURL:     "https://cloud.google.com/feeds/gcp-release-notes.xml",
		FallbackURL: "https://cloudblog.withgoogle.com/products/gcp/rss/",
	},
	{
		Key:  "oci",
		Name: "Oracle Cloud Infrastructure",
		// OCIのリリースノートRSSは信頼できないため、スクレイピングのみ
	},
}

// VendorKeys は定義テーブルのベンダーキーを定義順で返す
func VendorKeys() []string {
	keys := make([]string, 0, len(Vendors))
	for _, v := range Vendors {
		keys = append(keys, v.Key)
	}
	return keys
}

// vendorByKey はキーに対応するVendorConfigを返す
func vendorByKey(key string) (VendorConfig, bool) {
	for _, v := range Vendors {
		if v.Key == key {
			return v, true
		}
	}
	return VendorConfig{}, false
}

// =============================================================================
// HTTP取得設定
// =============================================================================

// SourceConfig はフィード取得・スクレイピング時のHTTP設定を保持
type SourceConfig struct {
	UserAgent string        // HTTPリクエスト時のUser-Agentヘッダー
	Timeout   time.Duration // HTTPリクエストのタイムアウト時間
	Client    *http.Client  // 共有HTTPクライアント（コネクションプーリング有効）
}

// DefaultSourceConfig はデフォルトのHTTP取得設定を返す
func DefaultSourceConfig() SourceConfig {
	timeout := 20 * time.Second
	return SourceConfig{
		UserAgent: "Mozilla/5.0 (compatible; cloudnews-relay/1.0; +https://example.invalid)",
		Timeout:   timeout,
		Client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// =============================================================================
// CLIフラグ
// =============================================================================

// 元スクリプト由来のデフォルト値
const (
	// DefaultMaxItemsPerCloud は1ベンダーあたりの出力件数上限
	DefaultMaxItemsPerCloud = 6

	// DefaultMaxFetchEntries はフィード1本から走査する最大エントリ数
	// （巨大なフィードでの日付降順ソートのコストを抑える上限。出力上限とは独立）
	DefaultMaxFetchEntries = 100

	// DefaultStaleDays はAzureフィードの鮮度しきい値（日数）。
	// 最新記事がこれより古い場合のみスクレイピングを併用する。
	DefaultStaleDays = 7
)

// PipelineConfig はパイプラインの全設定を保持する
type PipelineConfig struct {
	Input    InputConfig
	Output   OutputConfig
	Schedule ScheduleConfig
}

// InputConfig は収集に関する設定
type InputConfig struct {
	// VendorsRaw はカンマ区切りのベンダーキー（-vendors フラグの値）
	VendorsRaw string

	// MaxItems は1ベンダーあたりの出力件数上限
	MaxItems int

	// MaxFetch はフィード1本から走査する最大エントリ数
	MaxFetch int

	// StaleDays はAzure鮮度しきい値（日数）
	StaleDays int
}

// VendorList はVendorsRawをパースしてスライスで返す（空なら全ベンダー）
func (c *InputConfig) VendorList() []string {
	if strings.TrimSpace(c.VendorsRaw) == "" {
		return VendorKeys()
	}
	var result []string
	for _, s := range strings.Split(c.VendorsRaw, ",") {
		s = strings.TrimSpace(strings.ToLower(s))
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

// OutputConfig は出力に関する設定
type OutputConfig struct {
	// OutFile が指定された場合、ファイルに出力（空の場合はstdout）
	OutFile string

	// NotionClip がtrueの場合、収集した記事をNotionに保存
	NotionClip bool

	// NotionPageID は新規データベース作成時の親ページID
	NotionPageID string

	// NotionDatabaseID は既存のデータベースID
	NotionDatabaseID string
}

// ScheduleConfig は定期実行に関する設定
type ScheduleConfig struct {
	// CronSpec が指定された場合、常駐してcronスケジュールで再収集する
	// （例: "*/30 * * * *"）。空の場合は1回実行して終了。
	CronSpec string
}

// ParseFlags はCLIフラグを解析してPipelineConfigを返す
func ParseFlags() *PipelineConfig {
	cfg := &PipelineConfig{}

	// Input flags
	flag.StringVar(&cfg.Input.VendorsRaw, "vendors", "", "vendors to collect (comma separated; empty = all)")
	flag.IntVar(&cfg.Input.MaxItems, "maxItems", DefaultMaxItemsPerCloud, "max items to keep per vendor")
	flag.IntVar(&cfg.Input.MaxFetch, "maxFetch", DefaultMaxFetchEntries, "max feed entries to scan per source")
	flag.IntVar(&cfg.Input.StaleDays, "staleDays", DefaultStaleDays, "staleness threshold in days before the Azure scrape fallback kicks in")

	// Output flags
	flag.StringVar(&cfg.Output.OutFile, "out", "", "optional: write snapshot JSON to this path (default: stdout)")
	flag.BoolVar(&cfg.Output.NotionClip, "notionClip", false, "clip collected items to Notion database")
	flag.StringVar(&cfg.Output.NotionPageID, "notionPageID", "", "parent page ID for creating new Notion database (required for new DB)")
	flag.StringVar(&cfg.Output.NotionDatabaseID, "notionDatabaseID", "", "existing Notion database ID (optional, will create new if empty)")

	// Schedule flags
	flag.StringVar(&cfg.Schedule.CronSpec, "cron", "", "optional: run as a daemon refreshing on this cron spec (e.g. \"*/30 * * * *\")")

	flag.Parse()
	return cfg
}
