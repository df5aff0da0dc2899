// Package extract 把公众号文章正文里的顺风车信息挖成结构化记录。
//
// 整个流水线是对一个字符串的纯函数计算：不做 I/O，不持有状态，
// 同一 (html, referenceDate) 输入永远得到相同输出，调用方可以按文章并行调用。
package extract

import (
	"fmt"
	"strings"
	"time"

	"ride-fetch/internal/ride_fetch/model"
)

// Extract 从一篇文章的原始 HTML 中提取顺风车记录，按文档顺序返回。
//
// referenceDate 是 YYYY-MM-DD 的基准日期，只取年月做日期解析的上下文；
// 格式不对返回错误，这是本包唯一的报错路径。正文再烂也不报错，
// 最差返回空结果；没有手机号的行直接丢弃。
func Extract(doc string, referenceDate string) ([]model.RidePosting, error) {
	ref, err := time.Parse("2006-01-02", referenceDate)
	if err != nil {
		return nil, fmt.Errorf("invalid reference date %q: %w", referenceDate, err)
	}

	rows, _ := Tokenize(doc)

	results := make([]model.RidePosting, 0, len(rows))
	for _, row := range rows {
		content := NormalizeContent(row.Description)
		if content == "" {
			continue
		}

		// 有独立号码单元格时从单元格取号，否则从正文取
		var phone string
		if row.Phone != "" {
			phone = ExtractPhone(row.Phone)
		} else {
			phone = ExtractPhone(content)
		}
		if phone == "" {
			continue
		}

		carType, departure, destination := ExtractRoute(content)

		results = append(results, model.RidePosting{
			OriginalContent: content,
			CarType:         carType,
			Departure:       departure,
			Destination:     destination,
			TimeStr:         ResolveDate(content, ref),
			HoursStr:        ResolveHours(content),
			NumPeople:       ExtractSeatCount(content),
			Phone:           phone,
		})
	}
	return results, nil
}

// NormalizeContent 归一化行文本：空白压成单个空格、去首尾空白，再去掉剩余空格。
// 归一化结果同时用作去重键，所以必须是确定性的。
func NormalizeContent(s string) string {
	collapsed := strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
	return strings.ReplaceAll(collapsed, " ", "")
}
