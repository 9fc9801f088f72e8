package report

import (
	"bytes"
	"html/template"

	"github.com/John-Robertt/focalstat/internal/domain"
)

const (
	// FileNameHTML 是 HTML 报告的固定文件名（输出目录下）。
	FileNameHTML = "focal_length_report.html"
)

// htmlTemplate 刻意保持自包含（无外链 CSS/JS），离线打开即可阅读。
const htmlTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>焦距分布报告</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 4px 12px; text-align: right; }
th { background: #eee; }
.summary li { margin: 2px 0; }
</style>
</head>
<body>
<h1>焦距分布报告</h1>
<ul class="summary">
<li id="total">扫描图片总数：{{.Stats.Total}}</li>
<li id="with-focal">包含焦距信息的图片：{{.Stats.WithFocal}}</li>
<li id="missing">缺少焦距信息的图片：{{.Stats.Missing}}</li>
{{if .Stats.HasMode}}<li id="mode">最常见的焦距：{{.ModeText}}mm（共 {{.Stats.ModeCount}} 张）</li>{{end}}
</ul>
<table id="focal-table">
<thead>
<tr><th>焦距（mm）</th><th>数量</th><th>占比</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.Focal}}</td><td>{{.Count}}</td><td>{{.Percent}}</td></tr>
{{end}}</tbody>
</table>
</body>
</html>
`

var htmlTmpl = template.Must(template.New("report").Parse(htmlTemplate))

type htmlRow struct {
	Focal   string
	Count   int
	Percent string
}

// EncodeHTML 把聚合结果编码为自包含 HTML 报告。
// 行内容与 CSV 完全一致（同一数据源、同一排序、同一格式化）。
func EncodeHTML(s domain.FocalStats) ([]byte, error) {
	rows := make([]htmlRow, 0, len(s.Counts))
	for _, f := range s.SortedLengths() {
		rows = append(rows, htmlRow{
			Focal:   FormatFocal(f),
			Count:   s.Counts[f],
			Percent: formatPercent(s.Counts[f], s.WithFocal),
		})
	}

	data := struct {
		Stats    domain.FocalStats
		ModeText string
		Rows     []htmlRow
	}{
		Stats:    s,
		ModeText: FormatFocal(s.Mode),
		Rows:     rows,
	}

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
