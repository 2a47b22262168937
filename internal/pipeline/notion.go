// =============================================================================
// notion.go - Notion連携（任意機能）
// =============================================================================
//
// -notionClip フラグ指定時に、収集したアナウンスをNotionデータベースへ
// 保存します。JSONスナップショットとは独立した補助的な出力先です。
//
// 【必要な環境変数】
//   NOTION_TOKEN: Notion Integration Token
//
// =============================================================================
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"
)

// NotionClipper handles clipping news items to Notion
type NotionClipper struct {
	client *notionapi.Client
	dbID   notionapi.DatabaseID
}

// NewNotionClipper creates a new Notion clipper
func NewNotionClipper(token string, databaseID string) (*NotionClipper, error) {
	if token == "" {
		return nil, fmt.Errorf("NOTION_TOKEN is required")
	}

	nc := &NotionClipper{
		client: notionapi.NewClient(notionapi.Token(token)),
	}
	if databaseID != "" {
		nc.dbID = notionapi.DatabaseID(databaseID)
	}
	return nc, nil
}

// CreateDatabase creates a new Notion database for news clipping
// and returns the new database ID.
func (nc *NotionClipper) CreateDatabase(ctx context.Context, pageID string) (string, error) {
	if pageID == "" {
		return "", fmt.Errorf("NOTION_PAGE_ID is required to create a new database")
	}

	vendorOptions := make([]notionapi.Option, 0, len(Vendors))
	for _, v := range Vendors {
		vendorOptions = append(vendorOptions, notionapi.Option{Name: vendorTagFor(v.Key), Color: notionapi.ColorBlue})
	}

	dbRequest := &notionapi.DatabaseCreateRequest{
		Parent: notionapi.Parent{
			Type:   notionapi.ParentTypePageID,
			PageID: notionapi.PageID(pageID),
		},
		Title: []notionapi.RichText{
			{
				Text: &notionapi.Text{
					Content: "Cloud News Clippings",
				},
			},
		},
		Properties: notionapi.PropertyConfigs{
			"Title": notionapi.TitlePropertyConfig{
				Type: notionapi.PropertyConfigTypeTitle,
			},
			"URL": notionapi.URLPropertyConfig{
				Type: notionapi.PropertyConfigTypeURL,
			},
			"Vendor": notionapi.SelectPropertyConfig{
				Type: notionapi.PropertyConfigTypeSelect,
				Select: notionapi.Select{
					Options: vendorOptions,
				},
			},
			"Category": notionapi.SelectPropertyConfig{
				Type: notionapi.PropertyConfigTypeSelect,
				Select: notionapi.Select{
					Options: []notionapi.Option{
						{Name: "AI / ML", Color: notionapi.ColorPurple},
						{Name: "セキュリティ", Color: notionapi.ColorRed},
						{Name: "コンテナ", Color: notionapi.ColorBlue},
						{Name: "データベース", Color: notionapi.ColorGreen},
						{Name: "ストレージ", Color: notionapi.ColorYellow},
						{Name: "ネットワーク", Color: notionapi.ColorOrange},
						{Name: "コンピューティング", Color: notionapi.ColorGray},
					},
				},
			},
			"Published": notionapi.DatePropertyConfig{
				Type: notionapi.PropertyConfigTypeDate,
			},
			"Summary": notionapi.RichTextPropertyConfig{
				Type: notionapi.PropertyConfigTypeRichText,
			},
		},
	}

	db, err := nc.client.Database.Create(ctx, dbRequest)
	if err != nil {
		return "", fmt.Errorf("failed to create Notion database: %w", err)
	}

	nc.dbID = notionapi.DatabaseID(db.ID)
	infof("Notion database created: %s", db.ID)

	return string(db.ID), nil
}

// ClipItem clips one news item to Notion
func (nc *NotionClipper) ClipItem(ctx context.Context, item NewsItem) error {
	if nc.dbID == "" {
		return fmt.Errorf("database ID not set")
	}

	properties := notionapi.Properties{
		"Title": notionapi.TitleProperty{
			Type: notionapi.PropertyTypeTitle,
			Title: []notionapi.RichText{
				{
					Text: &notionapi.Text{
						Content: item.Title,
					},
				},
			},
		},
		"URL": notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  item.Link,
		},
		"Vendor": notionapi.SelectProperty{
			Type: notionapi.PropertyTypeSelect,
			Select: notionapi.Option{
				Name: item.Tag,
			},
		},
		"Category": notionapi.SelectProperty{
			Type: notionapi.PropertyTypeSelect,
			Select: notionapi.Option{
				Name: item.CatLabel,
			},
		},
	}

	// date_isoは常にYYYY-MM-DD形式のはずだが、壊れていてもクリップ自体は続行する
	if t, err := time.ParseInLocation("2006-01-02", item.DateISO, jst); err == nil {
		d := notionapi.Date(t)
		properties["Published"] = notionapi.DateProperty{
			Type: notionapi.PropertyTypeDate,
			Date: &notionapi.DateObject{Start: &d},
		}
	}

	if item.Summary != "" {
		properties["Summary"] = notionapi.RichTextProperty{
			Type: notionapi.PropertyTypeRichText,
			RichText: []notionapi.RichText{
				{
					Text: &notionapi.Text{
						Content: item.Summary,
					},
				},
			},
		}
	}

	pageRequest := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: nc.dbID,
		},
		Properties: properties,
	}

	if _, err := nc.client.Page.Create(ctx, pageRequest); err != nil {
		return fmt.Errorf("failed to clip item: %w", err)
	}

	return nil
}

// ClipSnapshot clips all items in a snapshot, continuing past per-item failures.
// Returns the number of successfully clipped items.
func (nc *NotionClipper) ClipSnapshot(ctx context.Context, snap Snapshot) int {
	clipped := 0
	for _, item := range snap.AllItems() {
		if err := nc.ClipItem(ctx, item); err != nil {
			warnf("failed to clip item '%s': %v", item.Title, err)
			continue
		}
		clipped++
	}
	return clipped
}
