package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare number", "18296469705", "18296469705"},
		{"embedded in text", "私家车出发，电话18296469705谢师傅", "18296469705"},
		{"spaces inside number", "☎️133 6794 9982谢师傅", "13367949982"},
		{"newlines and tabs", "电话\t139\n7040\n1234", "13970401234"},
		{"nbsp separated", "电话139\u00a07040\u00a01234", "13970401234"},
		{"first of two", "主13970401234 备18296469705", "13970401234"},
		{"second digit out of range", "12345678901", ""},
		{"landline", "0794-1234567", ""},
		{"too short", "1397040123", ""},
		{"empty", "", ""},
		{"no digits", "没有号码", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPhone(tt.text))
		})
	}
}
