// =============================================================================
// category.go - カテゴリ判定
// =============================================================================
//
// タイトルと要約の自由テキストから、7種類のカテゴリタグのいずれかを
// ヒューリスティックに推定します。
//
// 【判定方式】
//   - ルールは (タグ, キーワード集合) の順序付きリスト
//   - 先頭から評価し、いずれかのキーワードが部分一致した最初のルールで確定
//     （AIキーワードとcomputeキーワードの両方を含むテキストはAIに分類される）
//   - どのルールにも一致しない場合は compute-tag
//
// ルールの並び順は優先順位そのもの。条件分岐に散らさず、
// データとしてテーブルに保持する。
//
// =============================================================================
package pipeline

import "strings"

// categoryRule は1カテゴリ分の判定ルール
type categoryRule struct {
	Tag      string   // カテゴリタグ（例: "ai-tag"）
	Keywords []string // 部分一致キーワード（英語 + 日本語）
}

// DefaultCategoryTag はどのルールにも一致しない場合のカテゴリタグ
const DefaultCategoryTag = "compute-tag"

// categoryRules はカテゴリ判定ルールテーブル（順番が優先順位）
var categoryRules = []categoryRule{
	{"ai-tag", []string{
		"ai", "ml", "machine learning", "generative", "llm", "bedrock",
		"sagemaker", "vertex", "foundry", "openai", "gemini", "gpt",
		"phi", "llama", "diffusion", "inference", "training", "neural",
		// 日本語
		"人工知能", "生成ai", "機械学習", "推論", "学習モデル", "エージェント",
		"チャット", "言語モデル", "ベクター検索", "ファインチューニング",
	}},
	{"security-tag", []string{
		"security", "iam", "identity", "auth", "mfa", "zero trust",
		"compliance", "encryption", "kms", "vault", "sentinel",
		"defender", "guard", "waf", "shield", "entra",
		// 日本語
		"セキュリティ", "認証", "暗号化", "ゼロトラスト", "アイデンティティ",
		"コンプライアンス", "権限管理", "不正アクセス", "脆弱性",
	}},
	{"container-tag", []string{
		"kubernetes", "container", "eks", "aks", "gke", "oke",
		"docker", "helm", "fargate", "cloud run", "app service",
		// 日本語
		"コンテナ", "クバネティス", "コンテナイメージ", "マイクロサービス",
	}},
	{"database-tag", []string{
		"database", "db", "rds", "aurora", "dynamo", "cosmos", "spanner",
		"alloydb", "sql", "postgres", "mysql", "redis", "mongodb",
		"autonomous", "heatwave", "bigtable", "firestore",
		// 日本語
		"データベース", "データウェアハウス", "データ分析",
		"ベクターデータベース", "ビッグクエリ", "ストリーミング分析",
	}},
	{"storage-tag", []string{
		"storage", "s3", "blob", "bucket", "gcs", "object storage",
		"efs", "fsx", "archive", "backup",
		// 日本語
		"ストレージ", "バックアップ", "アーカイブ", "オブジェクトストレージ",
		"ファイルストレージ", "ブロックストレージ",
	}},
	{"network-tag", []string{
		"network", "vpc", "vnet", "subnet", "cdn", "cloudfront",
		"load balancer", "dns", "route", "direct connect",
		"expressroute", "vpn", "firewall",
		// 日本語
		"ネットワーク", "ファイアウォール", "ロードバランサー",
		"コンテンツ配信", "専用線", "vpn接続", "サブネット",
	}},
	{"compute-tag", []string{
		"compute", "ec2", "vm", "virtual machine", "instance",
		"graviton", "cobalt", "axion", "ampere", "gpu", "tpu",
		"lambda", "functions", "serverless", "batch",
		// 日本語
		"仮想マシン", "コンピューティング", "サーバーレス", "バッチ処理",
		"高性能コンピューティング", "hpc", "インスタンス", "gpuクラスター",
	}},
}

// categoryLabels はタグ名から表示ラベルへの変換テーブル
var categoryLabels = map[string]string{
	"ai-tag":        "AI / ML",
	"security-tag":  "セキュリティ",
	"container-tag": "コンテナ",
	"database-tag":  "データベース",
	"storage-tag":   "ストレージ",
	"network-tag":   "ネットワーク",
	"compute-tag":   "コンピューティング",
}

// detectCategory はタイトルとサマリーからカテゴリタグを推定する
//
// 両方を連結して小文字化し、ルールテーブルを先頭から評価する。
// 最初にキーワードが一致したルールのタグを返す（first-match-wins）。
//
// 照合は素朴な部分一致（単語境界は考慮しない）: "available" は "ai" に、
// "html" は "ml" に一致する。この挙動は表示層との互換性契約の一部。
func detectCategory(title, summary string) string {
	text := strings.ToLower(title + " " + summary)
	for _, rule := range categoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Tag
			}
		}
	}
	return DefaultCategoryTag
}

// categoryLabel はタグ名から表示ラベルへ変換する
//
// 未知のタグは "その他" を返す（ルールテーブル経由では発生しないはずだが、
// 読み戻したJSONなど外部由来のタグに対する保険）。
func categoryLabel(tag string) string {
	if label, ok := categoryLabels[tag]; ok {
		return label
	}
	return "その他"
}
