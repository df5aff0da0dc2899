package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Row 文章中的一条候选信息行。
// Description 是行的正文；Phone 仅在版式上存在独立号码单元格时填充。
type Row struct {
	Description string
	Phone       string
}

// Layout 标记命中的文章版式。
type Layout int

const (
	// LayoutEmpty 两种版式都没有产出任何行
	LayoutEmpty Layout = iota
	// LayoutTable 表格版式：tr/td 两列，第二列是电话
	LayoutTable
	// LayoutSection 段落版式：section 块内以 <br> 分行
	LayoutSection
)

func (l Layout) String() string {
	switch l {
	case LayoutTable:
		return "table"
	case LayoutSection:
		return "section"
	default:
		return "empty"
	}
}

var collapseSpaceRe = regexp.MustCompile(`[\s\p{Zs}]+`)

// Tokenize 把一篇文章的原始 HTML 切成候选信息行。
// 先按表格版式解析，没有产出时退回段落版式；两种都失败返回空结果，
// 残缺标签不会报错（html.Tokenizer 对坏标签是宽容的）。
func Tokenize(doc string) ([]Row, Layout) {
	if rows := tokenizeTable(doc); len(rows) > 0 {
		return rows, LayoutTable
	}
	if rows := tokenizeSections(doc); len(rows) > 0 {
		return rows, LayoutSection
	}
	return nil, LayoutEmpty
}

// tokenizeTable 解析表格版式：每个 tr 是一行，td 内嵌 section/span 存放文本，
// 第一个 td 是描述，第二个 td 是电话。没有累积到任何单元格的 tr 不产出行。
func tokenizeTable(doc string) []Row {
	z := html.NewTokenizer(strings.NewReader(doc))

	var (
		rows      []Row
		row       Row
		cellCount int
		cell      strings.Builder
		inTD      bool
		inSection bool
		inSpan    bool
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF 或残缺输入，都按解析结束处理
			return rows
		}
		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "tr":
				row = Row{}
				cellCount = 0
			case "td":
				inTD = true
				cell.Reset()
			case "section":
				if inTD {
					inSection = true
				}
			case "span":
				if inTD {
					inSpan = true
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "tr":
				if row.Description != "" || row.Phone != "" {
					rows = append(rows, row)
				}
				cellCount = 0
			case "td":
				text := strings.TrimSpace(cell.String())
				if cellCount == 0 {
					row.Description = text
				} else if cellCount == 1 {
					row.Phone = text
				}
				cellCount++
				inTD = false
				inSection = false
				inSpan = false
			}
		case html.TextToken:
			// 只收集 td 内 section/span 里的文本
			if inSection || inSpan {
				cell.Write(z.Text())
			}
		}
	}
}

// tokenizeSections 解析段落版式：section 块内累积文本，<br> 视为换行点，
// 结束一行并开始下一行。空行不产出。
func tokenizeSections(doc string) []Row {
	z := html.NewTokenizer(strings.NewReader(doc))

	var (
		rows      []Row
		text      strings.Builder
		inSection bool
	)

	flush := func() {
		cleaned := strings.TrimSpace(collapseSpaceRe.ReplaceAllString(text.String(), " "))
		if cleaned != "" {
			rows = append(rows, Row{Description: cleaned})
		}
		text.Reset()
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return rows
		}
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "section":
				if tt == html.StartTagToken {
					inSection = true
					text.Reset()
				}
			case "br":
				if inSection {
					flush()
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "section" && inSection {
				inSection = false
				flush()
			}
		case html.TextToken:
			if inSection {
				text.Write(z.Text())
			}
		}
	}
}
