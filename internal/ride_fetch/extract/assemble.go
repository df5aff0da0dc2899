package extract

import (
	"time"

	"ride-fetch/internal/ride_fetch/model"
)

// SamePosting 判断两条记录是否是同一条顺风车信息：
// original_content 完全一致，或 (phone, time_str) 都相同。
// 存储层用它决定是更新已有记录还是插入新记录。
func SamePosting(a, b model.RidePosting) bool {
	if a.OriginalContent == b.OriginalContent {
		return true
	}
	return a.Phone == b.Phone && a.TimeStr == b.TimeStr
}

// MergePosting 把候选记录的可变字段合并进已有记录。
// 只覆盖 car_type、departure、destination、phone、time_str，
// 原始内容和首次提取的 hours_str/num_people 保持不动。
func MergePosting(existing *model.RidePosting, candidate model.RidePosting, now time.Time) {
	existing.CarType = candidate.CarType
	existing.Departure = candidate.Departure
	existing.Destination = candidate.Destination
	existing.Phone = candidate.Phone
	existing.TimeStr = candidate.TimeStr
	existing.UpdatedAt = now
}
