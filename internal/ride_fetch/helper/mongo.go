package helper

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ride-fetch/internal/ride_fetch/extract"
	"ride-fetch/internal/ride_fetch/model"
)

type Stores struct {
	DB       *mongo.Database
	Articles *mongo.Collection // 固定集合：articles
	Postings *mongo.Collection // 固定集合：ride_postings
}

func MustMongo(ctx context.Context, host, dbname, username, password, authSource string) *Stores {
	clientOpts := options.Client().
		ApplyURI("mongodb://" + host).
		SetAuth(options.Credential{
			Username:   username,
			Password:   password,
			AuthSource: authSource,
		})

	cli, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		panic(err)
	}
	if err = cli.Ping(ctx, nil); err != nil {
		panic(err)
	}

	db := cli.Database(dbname)
	s := &Stores{
		DB:       db,
		Articles: db.Collection("articles"),
		Postings: db.Collection("ride_postings"),
	}
	ensureIndexes(ctx, s)
	return s
}

func ensureIndexes(ctx context.Context, s *Stores) {
	// articles: 处理扫描和内容补抓的常用查询
	_, _ = s.Articles.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "free_ride_status", Value: 1}}},
		{Keys: bson.D{{Key: "publish_time", Value: -1}}},
		{Keys: bson.D{{Key: "mp_id", Value: 1}}},
	})
	// ride_postings: 两个去重键和列表排序
	_, _ = s.Postings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "original_content", Value: 1}}},
		{Keys: bson.D{{Key: "phone", Value: 1}, {Key: "time_str", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
}

// UpsertRidePosting 按去重契约写入一条顺风车记录：
// original_content 完全一致，或 (phone, time_str) 相同，视为同一条信息，
// 就地更新可变字段；否则插入新记录。返回落库后的记录和是否新插入。
// 同一去重键上的并发写入需要调用方保证至多一个写者。
func (s *Stores) UpsertRidePosting(ctx context.Context, candidate model.RidePosting) (model.RidePosting, bool, error) {
	var existing model.RidePosting
	err := s.Postings.FindOne(ctx, bson.M{"original_content": candidate.OriginalContent}).Decode(&existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = s.Postings.FindOne(ctx, bson.M{"phone": candidate.Phone, "time_str": candidate.TimeStr}).Decode(&existing)
	}
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return model.RidePosting{}, false, err
	}

	now := time.Now()
	if err == nil {
		extract.MergePosting(&existing, candidate, now)
		update := bson.M{"$set": bson.M{
			"car_type":    existing.CarType,
			"departure":   existing.Departure,
			"destination": existing.Destination,
			"phone":       existing.Phone,
			"time_str":    existing.TimeStr,
			"updatedAt":   existing.UpdatedAt,
		}}
		if _, err := s.Postings.UpdateOne(ctx, bson.M{"_id": existing.ID}, update); err != nil {
			return model.RidePosting{}, false, err
		}
		return existing, false, nil
	}

	candidate.ID = primitive.NewObjectID().Hex()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	if _, err := s.Postings.InsertOne(ctx, candidate); err != nil {
		return model.RidePosting{}, false, err
	}
	return candidate, true, nil
}

// -------- 时区工具 --------

var shanghai *time.Location

// ConfigureTimeLocation 设置时区，默认 Asia/Shanghai
func ConfigureTimeLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// 加载失败固定到 UTC+8，不让进程起不来
		loc = time.FixedZone("CST", 8*3600)
	}
	shanghai = loc
	return nil
}

// TimeLocation 当前配置的时区
func TimeLocation() *time.Location {
	if shanghai == nil {
		return time.FixedZone("CST", 8*3600)
	}
	return shanghai
}

// DateString 时间戳对应的本地日期（YYYY-MM-DD），用作提取的基准日期
func DateString(unix int64) string {
	return time.Unix(unix, 0).In(TimeLocation()).Format("2006-01-02")
}
