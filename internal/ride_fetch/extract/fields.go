package extract

import (
	"regexp"
	"strings"

	"ride-fetch/internal/ride_fetch/model"
)

var (
	// 【提供车：东莞→广昌】 / 【求车：广昌到东莞】
	bracketRouteRe = regexp.MustCompile(`【(.*?)：(.*?)(?:→|到)(.*?)】`)
	// 无括号兜底：箭头两侧取到分隔符为止
	arrowRouteRe = regexp.MustCompile(`([^\s，。！、？：【】]+?)(?:→|到)([^\s，。！、？：【】]+)`)
	// 行首行尾的非中文字符（数字、标点、emoji 等）
	nonChineseEdgeRe = regexp.MustCompile(`^[^\x{4e00}-\x{9fa5}]+|[^\x{4e00}-\x{9fa5}]+$`)

	seatCountRe = regexp.MustCompile(`(\d+|[一二三四五六七八九十]+)\s*个?[坐座人位]`)
)

var chineseNumerals = map[string]string{
	"一": "1",
	"二": "2",
	"三": "3",
	"四": "4",
	"五": "5",
	"六": "6",
	"七": "7",
	"八": "8",
	"九": "9",
	"十": "10",
}

// ExtractRoute 从一行文本里提取信息类型和出发地/目的地。
// 优先匹配【类型：出发地→目的地】，类型标签带"求车"判为求车；
// 没有括号时看正文是否含"求车"，再尝试不带标签的箭头匹配。
// 出发地/目的地都可能为空串（没有路线标记）。
func ExtractRoute(text string) (model.CarType, string, string) {
	if m := bracketRouteRe.FindStringSubmatch(text); m != nil {
		carType := model.CarTypeOffer
		if strings.Contains(m[1], "求车") {
			carType = model.CarTypeSeek
		}
		return carType, cleanNonChinese(m[2]), cleanNonChinese(m[3])
	}

	carType := model.CarTypeOffer
	if strings.Contains(text, "求车") {
		carType = model.CarTypeSeek
	}
	var departure, destination string
	if m := arrowRouteRe.FindStringSubmatch(text); m != nil {
		departure = cleanNonChinese(m[1])
		destination = cleanNonChinese(m[2])
	}
	return carType, departure, destination
}

// ExtractSeatCount 提取座位/人数："4个位"、"四座" 等。
// 一到十的汉字数字转成阿拉伯数字；"十一"、"二十" 这类复合数字不在表内，
// 按原样返回，不做换算。找不到返回空串。
func ExtractSeatCount(text string) string {
	m := seatCountRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if v, ok := chineseNumerals[m[1]]; ok {
		return v
	}
	return m[1]
}

// cleanNonChinese 去掉首尾的非中文字符，保留中间的中文串。
func cleanNonChinese(s string) string {
	return nonChineseEdgeRe.ReplaceAllString(s, "")
}
