package model

import (
	"time"
)

// CarType 顺风车信息类型
type CarType string

const (
	CarTypeOffer CarType = "提供车"
	CarTypeSeek  CarType = "求车"
)

// RidePosting 一条顺风车信息。
// 可空字段（Departure、Destination、TimeStr、NumPeople）用空字符串表示缺失。
type RidePosting struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	OriginalContent string    `bson:"original_content" json:"original_content"`
	CarType         CarType   `bson:"car_type" json:"car_type"`
	Departure       string    `bson:"departure" json:"departure,omitempty"`
	Destination     string    `bson:"destination" json:"destination,omitempty"`
	TimeStr         string    `bson:"time_str" json:"time_str,omitempty"` // YYYY-MM-DD，空串表示未解析出日期
	HoursStr        string    `bson:"hours_str" json:"hours_str,omitempty"`
	Phone           string    `bson:"phone" json:"phone"`
	NumPeople       string    `bson:"num_people" json:"num_people,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updated_at"`
}
