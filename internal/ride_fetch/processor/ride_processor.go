package processor

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"ride-fetch/internal/ride_fetch/extract"
	"ride-fetch/internal/ride_fetch/helper"
	"ride-fetch/internal/ride_fetch/model"
)

// RideProcessor 把已入库的文章正文过一遍提取流水线，落库顺风车记录。
type RideProcessor struct {
	Log    *zap.Logger
	Stores *helper.Stores
}

func NewRideProcessor(log *zap.Logger, stores *helper.Stores) *RideProcessor {
	return &RideProcessor{
		Log:    log,
		Stores: stores,
	}
}

// ProcessPending 扫描待处理文章（free_ride_status == 0、标题带"求车/提供车"、
// 正文非空），逐篇提取并写入顺风车记录，成功后把文章标记为已处理。
// 处理计数作为返回值显式累加，不挂在共享字段上。
func (p *RideProcessor) ProcessPending(ctx context.Context) (articleCount, postingCount int) {
	filter := bson.M{
		"free_ride_status": 0,
		"content":          bson.M{"$exists": true, "$ne": ""},
		"title":            bson.M{"$regex": "求车|提供车"},
	}

	cur, err := p.Stores.Articles.Find(ctx, filter)
	if err != nil {
		p.Log.Error("Failed to query pending articles", zap.Error(err))
		return 0, 0
	}
	defer func(cur *mongo.Cursor, ctx context.Context) {
		if err := cur.Close(ctx); err != nil {
			p.Log.Warn("Failed to close cursor", zap.Error(err))
		}
	}(cur, ctx)

	for cur.Next(ctx) {
		var art model.Article
		if err := cur.Decode(&art); err != nil {
			p.Log.Error("Failed to decode article", zap.Error(err))
			continue
		}

		saved, err := p.processArticle(ctx, &art)
		if err != nil {
			p.Log.Error("Failed to process article",
				zap.String("articleId", art.ID),
				zap.String("title", art.Title),
				zap.Error(err),
			)
			continue
		}

		articleCount++
		postingCount += saved
	}

	if articleCount > 0 {
		p.Log.Info("Ride extraction sweep completed",
			zap.Int("articles", articleCount),
			zap.Int("postings", postingCount),
		)
	}
	return articleCount, postingCount
}

// processArticle 对单篇文章执行提取和落库，返回落库的记录数。
// 基准日期取文章发布时间的本地日期，提取器只用其中的年月。
func (p *RideProcessor) processArticle(ctx context.Context, art *model.Article) (int, error) {
	referenceDate := helper.DateString(art.PublishTime)

	postings, err := extract.Extract(art.Content, referenceDate)
	if err != nil {
		return 0, err
	}

	saved := 0
	for _, posting := range postings {
		if _, created, err := p.Stores.UpsertRidePosting(ctx, posting); err != nil {
			p.Log.Error("Failed to upsert ride posting",
				zap.String("articleId", art.ID),
				zap.String("phone", posting.Phone),
				zap.Error(err),
			)
			continue
		} else if created {
			p.Log.Debug("New ride posting",
				zap.String("articleId", art.ID),
				zap.String("phone", posting.Phone),
				zap.String("timeStr", posting.TimeStr),
			)
		}
		saved++
	}

	update := bson.M{"$set": bson.M{"free_ride_status": 1, "updatedAt": time.Now()}}
	if _, err := p.Stores.Articles.UpdateOne(ctx, bson.M{"_id": art.ID}, update); err != nil {
		return saved, err
	}
	return saved, nil
}
