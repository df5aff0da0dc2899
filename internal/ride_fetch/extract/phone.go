package extract

import "regexp"

var (
	// \p{Zs} 把 &nbsp;、全角空格这类 Unicode 空白也算进去
	whitespaceRe = regexp.MustCompile(`[\s\p{Zs}]+`)
	mobileRe     = regexp.MustCompile(`1[3-9]\d{9}`)
)

// ExtractPhone 去掉所有空白字符后取第一个 11 位手机号（1 开头，第二位 3-9）。
// 找不到返回空串。号码常被作者用空格断开（"133 6794 9982"），所以必须先整体去空白再匹配。
func ExtractPhone(text string) string {
	cleaned := whitespaceRe.ReplaceAllString(text, "")
	return mobileRe.FindString(cleaned)
}
