package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"ride-fetch/internal/ride_fetch/processor"
)

// Worker 周期性地跑两件事：给缺正文的文章补抓内容，再做一轮顺风车提取。
type Worker struct {
	Log      *zap.Logger
	Fetcher  *processor.ContentFetcher
	Rides    *processor.RideProcessor
	Interval time.Duration

	retryWg sync.WaitGroup // 等待所有补抓重试协程收尾
}

func (w *Worker) Run(ctx context.Context) {
	// 启动先跑一轮，不等第一个周期
	w.runOnce(ctx)

	for {
		timer := time.NewTimer(w.interval())
		select {
		case <-ctx.Done():
			timer.Stop()
			w.Log.Info("Waiting for retry goroutines to complete...")
			w.retryWg.Wait()
			return
		case <-timer.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Worker) interval() time.Duration {
	if w.Interval <= 0 {
		return 30 * time.Minute
	}
	return w.Interval
}

func (w *Worker) runOnce(ctx context.Context) {
	start := time.Now()
	w.Fetcher.FetchMissingContent(ctx, &w.retryWg)
	articles, postings := w.Rides.ProcessPending(ctx)

	w.Log.Info("Worker cycle finished",
		zap.Int("articles", articles),
		zap.Int("postings", postings),
		zap.Duration("elapsed", time.Since(start)),
	)
}
