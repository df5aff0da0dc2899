package api

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"ride-fetch/internal/ride_fetch/extract"
	"ride-fetch/internal/ride_fetch/helper"
	"ride-fetch/internal/ride_fetch/model"
)

type Server struct {
	Log    *zap.Logger
	Stores *helper.Stores
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	rides := r.Group("/free-ride")
	rides.GET("", s.listPostings)       // ?kw=&limit=10&offset=0
	rides.POST("", s.addPosting)
	rides.GET("/search/:kw", s.searchArticles)
	rides.GET("/:id", s.getPosting)
	rides.PUT("/:id", s.updatePosting)

	return r
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": data})
}

func fail(c *gin.Context, status, code int, message string) {
	c.JSON(status, gin.H{"code": code, "message": message})
}

func pageParams(c *gin.Context) (int64, int64) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return int64(limit), int64(offset)
}

// listPostings 顺风车列表，按创建时间倒序，kw 对原始内容做模糊匹配
func (s *Server) listPostings(c *gin.Context) {
	limit, offset := pageParams(c)

	filter := bson.M{}
	if kw := c.Query("kw"); kw != "" {
		filter["original_content"] = primitive.Regex{Pattern: regexp.QuoteMeta(kw), Options: "i"}
	}

	total, err := s.Stores.Postings.CountDocuments(c, filter)
	if err != nil {
		s.Log.Error("Failed to count ride postings", zap.Error(err))
		fail(c, http.StatusInternalServerError, 50001, "获取顺风车列表失败")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	cur, err := s.Stores.Postings.Find(c, filter, opts)
	if err != nil {
		s.Log.Error("Failed to query ride postings", zap.Error(err))
		fail(c, http.StatusInternalServerError, 50001, "获取顺风车列表失败")
		return
	}
	defer cur.Close(c)

	list := make([]model.RidePosting, 0, limit)
	for cur.Next(c) {
		var p model.RidePosting
		if err := cur.Decode(&p); err != nil {
			s.Log.Error("Failed to decode ride posting", zap.Error(err))
			continue
		}
		list = append(list, p)
	}

	success(c, gin.H{
		"list":  list,
		"page":  gin.H{"limit": limit, "offset": offset, "total": total},
		"total": total,
	})
}

func (s *Server) getPosting(c *gin.Context) {
	var p model.RidePosting
	err := s.Stores.Postings.FindOne(c, bson.M{"_id": c.Param("id")}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		fail(c, http.StatusNotFound, 40401, "顺风车信息不存在")
		return
	}
	if err != nil {
		s.Log.Error("Failed to load ride posting", zap.String("id", c.Param("id")), zap.Error(err))
		fail(c, http.StatusInternalServerError, 50001, "获取顺风车详情失败")
		return
	}
	success(c, p)
}

type postingRequest struct {
	OriginalContent string `json:"original_content" binding:"required"`
	CarType         string `json:"car_type"`
	Departure       string `json:"departure"`
	Destination     string `json:"destination"`
	TimeStr         string `json:"time_str"`
	HoursStr        string `json:"hours_str"`
	Phone           string `json:"phone"`
	NumPeople       string `json:"num_people"`
}

// addPosting 添加顺风车记录，走与提取流水线相同的去重契约。
// 提交的 phone 字段重新过号码提取，没有有效手机号的记录拒收。
func (s *Server) addPosting(c *gin.Context) {
	var req postingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 40001, "请求数据验证失败")
		return
	}

	phone := extract.ExtractPhone(req.Phone)
	if phone == "" {
		phone = extract.ExtractPhone(req.OriginalContent)
	}
	if phone == "" {
		fail(c, http.StatusBadRequest, 40002, "缺少有效的手机号")
		return
	}

	carType := model.CarTypeOffer
	if strings.Contains(req.CarType, "求车") {
		carType = model.CarTypeSeek
	}

	saved, created, err := s.Stores.UpsertRidePosting(c, model.RidePosting{
		OriginalContent: extract.NormalizeContent(req.OriginalContent),
		CarType:         carType,
		Departure:       req.Departure,
		Destination:     req.Destination,
		TimeStr:         req.TimeStr,
		HoursStr:        req.HoursStr,
		Phone:           phone,
		NumPeople:       req.NumPeople,
	})
	if err != nil {
		s.Log.Error("Failed to upsert ride posting", zap.Error(err))
		fail(c, http.StatusInternalServerError, 50001, "添加顺风车失败")
		return
	}

	s.Log.Info("Ride posting saved via API",
		zap.String("id", saved.ID),
		zap.Bool("created", created),
	)
	success(c, saved)
}

type postingUpdateRequest struct {
	OriginalContent *string `json:"original_content"`
	CarType         *string `json:"car_type"`
	Departure       *string `json:"departure"`
	Destination     *string `json:"destination"`
	TimeStr         *string `json:"time_str"`
	HoursStr        *string `json:"hours_str"`
	Phone           *string `json:"phone"`
	NumPeople       *string `json:"num_people"`
}

// updatePosting 局部更新，只改请求里出现的字段
func (s *Server) updatePosting(c *gin.Context) {
	var req postingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 40001, "请求数据验证失败")
		return
	}

	set := bson.M{}
	if req.OriginalContent != nil {
		set["original_content"] = extract.NormalizeContent(*req.OriginalContent)
	}
	if req.CarType != nil {
		carType := model.CarTypeOffer
		if strings.Contains(*req.CarType, "求车") {
			carType = model.CarTypeSeek
		}
		set["car_type"] = carType
	}
	if req.Departure != nil {
		set["departure"] = *req.Departure
	}
	if req.Destination != nil {
		set["destination"] = *req.Destination
	}
	if req.TimeStr != nil {
		set["time_str"] = *req.TimeStr
	}
	if req.HoursStr != nil {
		set["hours_str"] = *req.HoursStr
	}
	if req.Phone != nil {
		phone := extract.ExtractPhone(*req.Phone)
		if phone == "" {
			fail(c, http.StatusBadRequest, 40002, "缺少有效的手机号")
			return
		}
		set["phone"] = phone
	}
	if req.NumPeople != nil {
		set["num_people"] = *req.NumPeople
	}
	if len(set) == 0 {
		fail(c, http.StatusBadRequest, 40001, "没有可更新的字段")
		return
	}
	set["updatedAt"] = time.Now()

	id := c.Param("id")
	res, err := s.Stores.Postings.UpdateOne(c, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		s.Log.Error("Failed to update ride posting", zap.String("id", id), zap.Error(err))
		fail(c, http.StatusInternalServerError, 50001, "更新顺风车失败")
		return
	}
	if res.MatchedCount == 0 {
		fail(c, http.StatusNotFound, 40401, "顺风车信息不存在")
		return
	}

	var p model.RidePosting
	if err := s.Stores.Postings.FindOne(c, bson.M{"_id": id}).Decode(&p); err != nil {
		s.Log.Error("Failed to reload ride posting", zap.String("id", id), zap.Error(err))
		fail(c, http.StatusInternalServerError, 50001, "更新顺风车失败")
		return
	}
	success(c, p)
}

// searchArticles 按关键字搜索已入库的文章（标题或正文），返回元数据不含正文
func (s *Server) searchArticles(c *gin.Context) {
	kw := c.Param("kw")
	limit, offset := pageParams(c)

	re := primitive.Regex{Pattern: regexp.QuoteMeta(kw), Options: "i"}
	filter := bson.M{"$or": []bson.M{{"title": re}, {"content": re}}}

	total, err := s.Stores.Articles.CountDocuments(c, filter)
	if err != nil {
		s.Log.Error("Failed to count articles", zap.Error(err))
		fail(c, http.StatusInternalServerError, 50001, "搜索文章失败")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publish_time", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit).
		SetProjection(bson.M{"content": 0})
	cur, err := s.Stores.Articles.Find(c, filter, opts)
	if err != nil {
		s.Log.Error("Failed to search articles", zap.Error(err))
		fail(c, http.StatusInternalServerError, 50001, "搜索文章失败")
		return
	}
	defer cur.Close(c)

	list := make([]model.Article, 0, limit)
	for cur.Next(c) {
		var a model.Article
		if err := cur.Decode(&a); err != nil {
			s.Log.Error("Failed to decode article", zap.Error(err))
			continue
		}
		list = append(list, a)
	}

	success(c, gin.H{
		"list":  list,
		"page":  gin.H{"limit": limit, "offset": offset},
		"total": total,
	})
}
