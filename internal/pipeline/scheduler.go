// =============================================================================
// scheduler.go - 定期実行（任意機能）
// =============================================================================
//
// -cron フラグ指定時に常駐し、指定スケジュールでスナップショットを
// 再生成します。CI（GitHub Actions等）から1回実行する運用では不要。
//
// =============================================================================
package pipeline

import (
	"github.com/robfig/cron/v3"
)

// Scheduler はcronスケジュールでの再収集を管理する
type Scheduler struct {
	cron *cron.Cron
	run  func()
}

// NewScheduler はスケジューラを作成する
//
// 引数:
//
//	spec: cron書式（例: "*/30 * * * *"）
//	run:  1回分の収集・出力処理
func NewScheduler(spec string, run func()) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{cron: c, run: run}
	if _, err := c.AddFunc(spec, run); err != nil {
		return nil, err
	}
	return s, nil
}

// Start は初回の収集を即時実行してからcronを開始する
func (s *Scheduler) Start() {
	s.run()
	s.cron.Start()
}

// Stop はcronを停止する（実行中のジョブは完了を待たない）
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
