// =============================================================================
// main.go - Cloud News Relay パイプラインのエントリーポイント
// =============================================================================
//
// 4つのクラウドベンダー（Azure / AWS / GCP / OCI）の「What's New」を収集し、
// 表示層が読むスナップショットJSON（news.json）を生成するCLIツールです。
//
// =============================================================================
// 【処理フロー】
// =============================================================================
//
//   ┌─────────────┐    ┌─────────────┐    ┌─────────────┐
//   │  1. 設定    │ -> │  2. 収集    │ -> │  3. 出力    │
//   │  読み込み   │    │  feed/scrape│    │  JSON生成   │
//   └─────────────┘    └─────────────┘    └─────────────┘
//          │                  │                  │
//          v                  v                  v
//   .env読み込み        4ベンダーから      ファイル/stdout
//   CLIフラグ解析       フォールバック     （任意でNotion保存）
//                       付きで収集
//
// =============================================================================
// 【CLIフラグ一覧】
// =============================================================================
//
// ▼ 収集設定
//   -vendors         収集するベンダー（カンマ区切り、省略時: 全ベンダー）
//   -maxItems        ベンダーあたりの出力件数（デフォルト: 6）
//   -maxFetch        フィード1本の走査上限（デフォルト: 100）
//   -staleDays       Azure鮮度しきい値（デフォルト: 7日）
//
// ▼ 出力設定
//   -out             出力JSONファイルパス（省略時: stdout）
//   -notionClip      Notionデータベースに保存
//
// ▼ 定期実行
//   -cron            cron書式を指定すると常駐して定期的に再収集
//
// エラーは標準エラー出力へ、stdoutはJSONのみ。
//
// =============================================================================
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv" // .env ファイル読み込み

	"cloudnews-relay/internal/pipeline"
)

func main() {
	// .env ファイルから環境変数を読み込み
	// ファイルが存在しない場合はログを出力するが、処理は続行する
	if err := godotenv.Load(); err != nil {
		warnf(".env file not loaded: %v (using environment variables only)", err)
	}

	// CLIフラグを解析（internal/pipeline/config.goのParseFlags）
	cfg := pipeline.ParseFlags()
	srcCfg := pipeline.DefaultSourceConfig()

	runOnce := func() {
		snap := pipeline.BuildSnapshot(cfg.Input, srcCfg)

		if cfg.Output.OutFile != "" {
			if err := pipeline.WriteJSONFile(cfg.Output.OutFile, snap); err != nil {
				fatalf("writing snapshot: %v", err)
			}
			infof("✓ %s を更新しました (%s)", cfg.Output.OutFile, snap.Updated)
		} else {
			if err := pipeline.WriteJSONToStdout(snap); err != nil {
				fatalf("writing snapshot: %v", err)
			}
		}

		if cfg.Output.NotionClip {
			clipToNotion(cfg, snap)
		}
	}

	// -cron 指定時は常駐、未指定なら1回実行して終了
	if cfg.Schedule.CronSpec != "" {
		sched, err := pipeline.NewScheduler(cfg.Schedule.CronSpec, runOnce)
		if err != nil {
			fatalf("invalid cron spec %q: %v", cfg.Schedule.CronSpec, err)
		}
		infof("running on schedule %q (Ctrl-C to stop)", cfg.Schedule.CronSpec)
		sched.Start()

		// SIGINT / SIGTERM でcronを止めてから終了する
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		s := <-sig
		infof("received %s, stopping scheduler", s)
		sched.Stop()
		return
	}

	runOnce()
}

// clipToNotion は収集結果をNotionデータベースへ保存する
func clipToNotion(cfg *pipeline.PipelineConfig, snap pipeline.Snapshot) {
	notionToken := os.Getenv("NOTION_TOKEN")
	if notionToken == "" {
		fatalf("NOTION_TOKEN environment variable is required for Notion integration")
	}

	clipper, err := pipeline.NewNotionClipper(notionToken, cfg.Output.NotionDatabaseID)
	if err != nil {
		fatalf("creating Notion clipper: %v", err)
	}

	ctx := context.Background()

	// データベース未指定なら新規作成
	if cfg.Output.NotionDatabaseID == "" {
		if cfg.Output.NotionPageID == "" {
			fatalf("-notionPageID is required when creating a new Notion database")
		}
		dbID, err := clipper.CreateDatabase(ctx, cfg.Output.NotionPageID)
		if err != nil {
			fatalf("creating Notion database: %v", err)
		}
		infof("add to .env for future runs: NOTION_DATABASE_ID=%s", dbID)
	}

	clipped := clipper.ClipSnapshot(ctx, snap)
	infof("clipped %d items to Notion", clipped)
}
