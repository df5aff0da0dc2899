package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ride-fetch/internal/ride_fetch/model"
)

func TestExtractRouteBracket(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		carType model.CarType
		dep     string
		dest    string
	}{
		{"offer with arrow", "【提供车：东莞→广昌】6月10号出发", model.CarTypeOffer, "东莞", "广昌"},
		{"offer with dao", "【提供车：广昌到广州】", model.CarTypeOffer, "广昌", "广州"},
		{"seek label", "【求车：广州→广昌】", model.CarTypeSeek, "广州", "广昌"},
		{"edges cleaned", "【提供车：1.东莞🚗→广昌2】", model.CarTypeOffer, "东莞", "广昌"},
		{"interior kept", "【提供车：东莞A区→广昌】", model.CarTypeOffer, "东莞A区", "广昌"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carType, dep, dest := ExtractRoute(tt.text)
			assert.Equal(t, tt.carType, carType)
			assert.Equal(t, tt.dep, dep)
			assert.Equal(t, tt.dest, dest)
		})
	}
}

func TestExtractRouteFallback(t *testing.T) {
	// 没有括号标记：类型看"求车"字样，路线做无标签的箭头匹配
	carType, dep, dest := ExtractRoute("求车：广昌→南丰，2人，电话13970401234")
	assert.Equal(t, model.CarTypeSeek, carType)
	assert.Equal(t, "广昌", dep)
	assert.Equal(t, "南丰", dest)

	// 求车字样缺省判为提供车
	carType, _, _ = ExtractRoute("广昌→广州，还有3个位")
	assert.Equal(t, model.CarTypeOffer, carType)

	// 路线标记完全缺失：出发地/目的地为空，类型仍然可判
	carType, dep, dest = ExtractRoute("求车，价格面议")
	assert.Equal(t, model.CarTypeSeek, carType)
	assert.Equal(t, "", dep)
	assert.Equal(t, "", dest)
}

func TestExtractSeatCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"arabic wei", "还有4个位", "4"},
		{"arabic zuo", "3座可坐", "3"},
		{"chinese numeral", "四个位", "4"},
		{"shi maps to ten", "十个位", "10"},
		{"ren", "两地直达，2人", "2"},
		{"space before unit", "3 个位", "3"},
		{"compound numeral unresolved", "十一个位", "十一"},
		{"none", "私家车出发", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSeatCount(tt.text))
		})
	}
}
