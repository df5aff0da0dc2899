package processor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"ride-fetch/internal/ride_fetch/helper"
	"ride-fetch/internal/ride_fetch/model"
)

const (
	maxFetchRetries  = 5
	maxAutoFetch     = 3  // 单篇文章内容抓取失败的累计上限
	fetchBatchSize   = 10 // 每轮补抓的文章数
	minContentLength = 300
)

// ContentFetcher 给正文缺失的文章补抓内容。
type ContentFetcher struct {
	Log        *zap.Logger
	Stores     *helper.Stores
	HTTPClient *http.Client
	UserAgent  string
	Cookie     string
}

func NewContentFetcher(log *zap.Logger, stores *helper.Stores, httpClient *http.Client, userAgent, cookie string) *ContentFetcher {
	return &ContentFetcher{
		Log:        log,
		Stores:     stores,
		HTTPClient: httpClient,
		UserAgent:  userAgent,
		Cookie:     cookie,
	}
}

// FetchMissingContent 取一批正文为空、失败次数未超限的文章补抓内容。
// 第一次尝试同步执行，失败转入异步重试（15s * 2^(n-1) 退避），
// retryWg 供调用方在退出前等待重试协程收尾。
func (f *ContentFetcher) FetchMissingContent(ctx context.Context, retryWg *sync.WaitGroup) {
	filter := bson.M{
		"$or": []bson.M{
			{"content": ""},
			{"content": bson.M{"$exists": false}},
		},
		"content_auto_fetch": bson.M{"$lt": maxAutoFetch},
	}

	cur, err := f.Stores.Articles.Find(ctx, filter, options.Find().SetLimit(fetchBatchSize))
	if err != nil {
		f.Log.Error("Failed to query articles without content", zap.Error(err))
		return
	}
	defer func(cur *mongo.Cursor, ctx context.Context) {
		if err := cur.Close(ctx); err != nil {
			f.Log.Warn("Failed to close cursor", zap.Error(err))
		}
	}(cur, ctx)

	for cur.Next(ctx) {
		var art model.Article
		if err := cur.Decode(&art); err != nil {
			f.Log.Error("Failed to decode article", zap.Error(err))
			continue
		}
		f.fetchWithAsyncRetry(ctx, art, retryWg)
	}
}

func (f *ContentFetcher) fetchWithAsyncRetry(ctx context.Context, art model.Article, retryWg *sync.WaitGroup) {
	if f.fetchAndSave(ctx, &art, 1) {
		return
	}

	retryWg.Add(1)
	go func() {
		defer retryWg.Done()
		f.asyncRetryLoop(ctx, art)
	}()
}

// calculateRetryDelay 计算重试延迟时间：15s * 2^(n-1)
func (f *ContentFetcher) calculateRetryDelay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 15 * time.Second
	}
	delay := 15 * time.Second
	for i := 1; i < retryCount; i++ {
		delay *= 2
	}
	return delay
}

func (f *ContentFetcher) asyncRetryLoop(ctx context.Context, art model.Article) {
	for attempt := 2; attempt <= maxFetchRetries; attempt++ {
		retryDelay := f.calculateRetryDelay(attempt - 1)

		f.Log.Info("Content fetch retry scheduled",
			zap.String("articleId", art.ID),
			zap.Int("attempt", attempt),
			zap.Duration("delay", retryDelay),
		)

		timer := time.NewTimer(retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			f.Log.Info("Context cancelled, stopping content fetch retries",
				zap.String("articleId", art.ID),
				zap.Int("attempt", attempt),
			)
			return
		case <-timer.C:
			if f.fetchAndSave(ctx, &art, attempt) {
				f.Log.Info("Content fetch retry succeeded",
					zap.String("articleId", art.ID),
					zap.Int("attempt", attempt),
				)
				return
			}
		}
	}

	f.Log.Error("Content fetch max attempts exceeded, giving up",
		zap.String("articleId", art.ID),
		zap.Int("maxRetries", maxFetchRetries),
	)
	f.markFetchFailed(ctx, art.ID)
}

// fetchAndSave 抓取单篇文章的正文并写回，成功返回 true。
func (f *ContentFetcher) fetchAndSave(ctx context.Context, art *model.Article, attempt int) bool {
	url := art.URL
	if url == "" {
		url = fmt.Sprintf("https://mp.weixin.qq.com/s/%s", art.ID)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		f.Log.Error("Failed to create request",
			zap.String("articleId", art.ID),
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return false
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	if f.Cookie != "" {
		req.Header.Set("Cookie", f.Cookie)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		f.Log.Error("Failed to fetch article",
			zap.String("articleId", art.ID),
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return false
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			f.Log.Warn("Failed to close response body", zap.Error(err))
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		f.Log.Error("Unexpected status fetching article",
			zap.String("articleId", art.ID),
			zap.Int("status", resp.StatusCode),
			zap.Int("attempt", attempt),
		)
		return false
	}

	body, err := decodeBody(resp.Body)
	if err != nil {
		f.Log.Error("Failed to read response body",
			zap.String("articleId", art.ID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return false
	}

	// 反爬或跳转页的正文远小于正常文章
	if len(body) < minContentLength {
		f.Log.Warn("Fetched body too short",
			zap.String("articleId", art.ID),
			zap.Int("length", len(body)),
			zap.Int("attempt", attempt),
		)
		return false
	}

	update := bson.M{"$set": bson.M{"content": string(body), "updatedAt": time.Now()}}
	if _, err := f.Stores.Articles.UpdateOne(ctx, bson.M{"_id": art.ID}, update); err != nil {
		f.Log.Error("Failed to save article content",
			zap.String("articleId", art.ID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return false
	}

	f.Log.Info("Article content updated",
		zap.String("articleId", art.ID),
		zap.String("title", art.Title),
		zap.Int("attempt", attempt),
	)
	return true
}

func (f *ContentFetcher) markFetchFailed(ctx context.Context, id string) {
	update := bson.M{"$inc": bson.M{"content_auto_fetch": 1}}
	if _, err := f.Stores.Articles.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		f.Log.Error("Failed to record fetch failure",
			zap.String("articleId", id),
			zap.Error(err),
		)
	}
}

// decodeBody 探测响应编码并解码成 UTF-8，公众号历史页面有 GBK 的情况。
func decodeBody(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)
	return io.ReadAll(transform.NewReader(br, determineEncoding(br).NewDecoder()))
}

func determineEncoding(r *bufio.Reader) encoding.Encoding {
	data, err := r.Peek(1024)
	if err != nil && len(data) == 0 {
		return unicode.UTF8
	}
	e, _, _ := charset.DetermineEncoding(data, "")
	return e
}
