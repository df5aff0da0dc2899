package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	monthRe  = regexp.MustCompile(`(\d{1,2})月`)
	dayRe    = regexp.MustCompile(`(\d{1,2})[号日]`)
	hourRe   = regexp.MustCompile(`(\d{1,2})点`)
	periodRe = regexp.MustCompile(`早上|上午|中午|下午|晚上|凌晨`)
	minuteRe = regexp.MustCompile(`(\d{1,2})分`)
)

// ResolveDate 把"6月8号"这类日期短语解析成 YYYY-MM-DD。
// 月份缺省取基准月；"N号/N日"必须出现，否则返回空串。
// "今天/明天"这类相对日期不做偏移解析，没有明确的号数就是解析失败。
// 拼出来的日期无效（如 6月31号）同样返回空串，不做进位修正。
func ResolveDate(text string, ref time.Time) string {
	month := int(ref.Month())
	if m := monthRe.FindStringSubmatch(text); m != nil {
		month, _ = strconv.Atoi(m[1])
	}

	dm := dayRe.FindStringSubmatch(text)
	if dm == nil {
		return ""
	}
	day, _ := strconv.Atoi(dm[1])

	d := time.Date(ref.Year(), time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if int(d.Month()) != month || d.Day() != day {
		// time.Date 会把 6月31 归一化成 7月1，这里要的是判无效
		return ""
	}
	return d.Format("2006-01-02")
}

// ResolveHours 提取粗粒度的时段描述："下午5点30分" -> "下午5:30"。
// 有小时返回 "<时段><时>:<分>"（分缺省 "00"），否则只返回时段（可能为空串）。
// 刻意不换算成 24 小时制，需要可排序时间戳的调用方自己调 To24Hour。
func ResolveHours(text string) string {
	period := periodRe.FindString(text)

	hm := hourRe.FindStringSubmatch(text)
	if hm == nil {
		return period
	}

	minute := "00"
	if mm := minuteRe.FindStringSubmatch(text); mm != nil {
		minute = mm[1]
	}
	return fmt.Sprintf("%s%s:%s", period, hm[1], minute)
}

// To24Hour 把"下午5点"这类时段+小时换算成 24 小时制的小时数。
func To24Hour(hour int, period string) int {
	switch {
	case (period == "下午" || period == "晚上") && hour < 12:
		return hour + 12
	case period == "上午" && hour == 12:
		return 0
	case period == "中午":
		return 12
	case (period == "凌晨" || period == "早上") && hour < 12:
		return hour
	}
	return hour
}
