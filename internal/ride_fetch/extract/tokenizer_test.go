package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tableHTML = `
<table><tbody>
<tr>
  <td><section><span>【提供车：东莞→广昌】6月10号，出发私家车，还有3个位，电话18296469705</span></section></td>
  <td><section><span>18296469705</span></section></td>
</tr>
<tr>
  <td><section><span>【求车：广昌到南丰】6月11号上午出发，2人，电话 139 7040 1234</span></section></td>
  <td><section><span>13970401234</span></section></td>
</tr>
<tr><td></td><td></td></tr>
</tbody></table>`

const sectionHTML = `
<section>
【提供车：广昌→广州】6月8号下午5点30分出发，电话18296469705<br/>
【求车：广州到广昌】6月9号，两个人，电话13970401234<br/>
</section>`

func TestTokenizeTable(t *testing.T) {
	rows, layout := Tokenize(tableHTML)

	assert.Equal(t, LayoutTable, layout)
	// 第三个 tr 没有累积到任何文本，不产出行
	assert.Len(t, rows, 2)
	assert.Contains(t, rows[0].Description, "【提供车：东莞→广昌】")
	assert.Equal(t, "18296469705", rows[0].Phone)
	assert.Contains(t, rows[1].Description, "【求车：广昌到南丰】")
	assert.Equal(t, "13970401234", rows[1].Phone)
}

func TestTokenizeTableIgnoresTextOutsideCells(t *testing.T) {
	// td 外、span/section 外的文本都不计入单元格
	rows, layout := Tokenize(`<table><tr>noise<td>bare text<section><span>inner</span></section></td></tr></table>`)

	assert.Equal(t, LayoutTable, layout)
	assert.Len(t, rows, 1)
	assert.Equal(t, "inner", rows[0].Description)
}

func TestTokenizeSectionFallback(t *testing.T) {
	rows, layout := Tokenize(sectionHTML)

	assert.Equal(t, LayoutSection, layout)
	assert.Len(t, rows, 2)
	assert.Contains(t, rows[0].Description, "广昌→广州")
	assert.Contains(t, rows[1].Description, "广州到广昌")
	// 段落版式没有独立号码单元格
	assert.Equal(t, "", rows[0].Phone)
}

func TestTokenizeSectionCollapsesWhitespace(t *testing.T) {
	rows, layout := Tokenize("<section>a  b\n\tc<br/>   <br/>d</section>")

	assert.Equal(t, LayoutSection, layout)
	// 空刷新不产出行
	assert.Len(t, rows, 2)
	assert.Equal(t, "a b c", rows[0].Description)
	assert.Equal(t, "d", rows[1].Description)
}

func TestTokenizeEmptyAndMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"plain text", "没有任何标签的纯文本"},
		{"unclosed tags", "<table><tr><td><section><span>x"},
		{"garbage", "<<<>>><tr<td"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, layout := Tokenize(tt.doc)
			if layout == LayoutEmpty {
				assert.Empty(t, rows)
			}
		})
	}
}

func TestTokenizePrefersTableLayout(t *testing.T) {
	// 两种版式同时存在时表格优先
	doc := `<section>loose line<br/></section><table><tr><td><section>row</section></td></tr></table>`
	rows, layout := Tokenize(doc)

	assert.Equal(t, LayoutTable, layout)
	assert.Len(t, rows, 1)
	assert.Equal(t, "row", rows[0].Description)
}
