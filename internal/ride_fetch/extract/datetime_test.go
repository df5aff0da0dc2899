package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ref = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestResolveDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"month and day", "6月10号出发", "2025-06-10"},
		{"day ri", "7月8日早上", "2025-07-08"},
		{"day only uses ref month", "10号下午出发", "2025-06-10"},
		{"relative day not resolved", "明天下午3点出发", ""},
		{"no day token", "6月出发", ""},
		{"invalid day", "6月31号", ""},
		{"invalid february day", "2月30日", ""},
		{"invalid month", "13月5号", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDate(tt.text, ref))
		})
	}
}

func TestResolveHours(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"period hour minute", "下午5点30分出发", "下午5:30"},
		{"minute needs fen", "下午5点30左右出发", "下午5:00"},
		{"period and hour", "上午10点", "上午10:00"},
		{"hour only", "3点出发", "3:00"},
		{"period only", "凌晨出发", "凌晨"},
		{"nothing", "私家车直达", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveHours(tt.text))
		})
	}
}

func TestTo24Hour(t *testing.T) {
	tests := []struct {
		hour   int
		period string
		want   int
	}{
		{5, "下午", 17},
		{11, "晚上", 23},
		{12, "下午", 12},
		{12, "上午", 0},
		{9, "中午", 12},
		{3, "凌晨", 3},
		{8, "早上", 8},
		{8, "", 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, To24Hour(tt.hour, tt.period), "hour=%d period=%q", tt.hour, tt.period)
	}
}
