// =============================================================================
// Lambda: collect-news
// =============================================================================
//
// 全クラウドベンダーの「What's New」を収集し、スナップショットJSONを
// 出力するLambda関数。EventBridgeの定期実行から起動する想定。
//
// 環境変数:
//   - OUTPUT_PATH:        スナップショットの書き出し先 (デフォルト: /tmp/news.json)
//   - VENDORS:            収集するベンダー (デフォルト: 全ベンダー)
//   - MAX_ITEMS:          ベンダーあたりの件数 (デフォルト: 6)
//   - STALE_DAYS:         Azure鮮度しきい値 (デフォルト: 7)
//   - NOTION_TOKEN:       Notion API Token (任意)
//   - NOTION_DATABASE_ID: NotionデータベースID (任意)
//
// =============================================================================
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/lambda"

	"cloudnews-relay/internal/pipeline"
)

// LambdaConfig は環境変数から読み込む設定
type LambdaConfig struct {
	OutputPath       string
	Vendors          string
	MaxItems         int
	StaleDays        int
	NotionToken      string // Notion保存用（任意）
	NotionDatabaseID string // Notion保存用（任意）
}

// Response はLambdaレスポンス
type Response struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Collected  int    `json:"collected"`
	Clipped    int    `json:"clipped"`
}

// Handler はLambdaのメインハンドラー
func Handler(ctx context.Context, event interface{}) (Response, error) {
	log.Println("Starting collect-news Lambda...")

	// 1. 環境変数から設定を読み込む
	cfg := loadConfig()
	log.Printf("Config: vendors=%q maxItems=%d staleDays=%d out=%s",
		cfg.Vendors, cfg.MaxItems, cfg.StaleDays, cfg.OutputPath)

	input := pipeline.InputConfig{
		VendorsRaw: cfg.Vendors,
		MaxItems:   cfg.MaxItems,
		MaxFetch:   pipeline.DefaultMaxFetchEntries,
		StaleDays:  cfg.StaleDays,
	}

	// 2. スナップショットを生成
	snap := pipeline.BuildSnapshot(input, pipeline.DefaultSourceConfig())

	collected := 0
	for _, items := range snap.Clouds {
		collected += len(items)
	}
	log.Printf("Collected %d items across %d vendors", collected, len(snap.Clouds))

	// 3. JSONを書き出し
	if err := pipeline.WriteJSONFile(cfg.OutputPath, snap); err != nil {
		log.Printf("Error writing snapshot: %v", err)
		return Response{StatusCode: 500, Message: err.Error(), Collected: collected}, err
	}

	// 4. Notionに保存（設定されている場合のみ）
	clipped := 0
	if cfg.NotionToken != "" && cfg.NotionDatabaseID != "" {
		clipper, err := pipeline.NewNotionClipper(cfg.NotionToken, cfg.NotionDatabaseID)
		if err != nil {
			log.Printf("Error creating Notion clipper: %v", err)
		} else {
			clipped = clipper.ClipSnapshot(ctx, snap)
			log.Printf("Clipped %d items to Notion", clipped)
		}
	}

	return Response{
		StatusCode: 200,
		Message:    fmt.Sprintf("Collected %d items, wrote %s", collected, cfg.OutputPath),
		Collected:  collected,
		Clipped:    clipped,
	}, nil
}

// loadConfig は環境変数から設定を読み込む
func loadConfig() LambdaConfig {
	maxItems := pipeline.DefaultMaxItemsPerCloud
	if mi := os.Getenv("MAX_ITEMS"); mi != "" {
		if val, err := strconv.Atoi(mi); err == nil && val > 0 {
			maxItems = val
		}
	}

	staleDays := pipeline.DefaultStaleDays
	if sd := os.Getenv("STALE_DAYS"); sd != "" {
		if val, err := strconv.Atoi(sd); err == nil && val >= 0 {
			staleDays = val
		}
	}

	outputPath := os.Getenv("OUTPUT_PATH")
	if outputPath == "" {
		outputPath = "/tmp/news.json"
	}

	return LambdaConfig{
		OutputPath:       outputPath,
		Vendors:          os.Getenv("VENDORS"),
		MaxItems:         maxItems,
		StaleDays:        staleDays,
		NotionToken:      os.Getenv("NOTION_TOKEN"),
		NotionDatabaseID: os.Getenv("NOTION_DATABASE_ID"),
	}
}

func main() {
	lambda.Start(Handler)
}
