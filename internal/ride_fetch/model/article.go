package model

import (
	"time"
)

// Article 公众号文章
type Article struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	MpID             string    `bson:"mp_id" json:"mp_id"`
	Title            string    `bson:"title" json:"title"`
	PicURL           string    `bson:"pic_url,omitempty" json:"pic_url,omitempty"`
	URL              string    `bson:"url,omitempty" json:"url,omitempty"`
	Content          string    `bson:"content,omitempty" json:"content,omitempty"`
	Description      string    `bson:"description,omitempty" json:"description,omitempty"`
	Status           int       `bson:"status" json:"status"`
	PublishTime      int64     `bson:"publish_time" json:"publish_time"` // unix 秒
	FreeRideStatus   int       `bson:"free_ride_status" json:"free_ride_status"`
	ContentAutoFetch int       `bson:"content_auto_fetch" json:"content_auto_fetch"` // 内容抓取失败次数
	CreatedAt        time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updated_at"`
}
