package chart

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/John-Robertt/focalstat/internal/domain"
	"github.com/John-Robertt/focalstat/internal/report"
)

const (
	// FileNameChart 是分布图的固定文件名（输出目录下）。
	FileNameChart = "focal_length_chart.png"

	// DefaultWidth / DefaultHeight 对应原始工具 14x7 英寸 @150dpi 的观感。
	DefaultWidth  = 1280
	DefaultHeight = 640

	// maxFullLabels 之内全部显示 x 轴标签；超过则抽稀到约 targetLabels 个。
	maxFullLabels = 30
	targetLabels  = 20

	// barSpacing 用固定小间距：库默认值在焦距值很多时会远超画布宽度。
	barSpacing = 5
)

// Options 控制图表尺寸（来自配置文件；零值用默认）。
type Options struct {
	Width  int
	Height int
}

// Render 把聚合结果渲染为 PNG 柱状图，柱子按焦距升序。
//
// 空统计不算错误：输出一张空白占位图（柱状图库拒绝零数据，
// 但“空目录也要产出文件且不崩溃”是本工具的契约）。
func Render(s domain.FocalStats, opts Options) ([]byte, error) {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	height := opts.Height
	if height <= 0 {
		height = DefaultHeight
	}

	lengths := s.SortedLengths()
	if len(lengths) == 0 {
		return blankPNG(width, height)
	}

	bars := make([]gochart.Value, 0, len(lengths))
	maxCount := 0
	step := labelStep(len(lengths))
	for i, f := range lengths {
		if c := s.Counts[f]; c > maxCount {
			maxCount = c
		}
		label := report.FormatFocal(f)
		if i%step != 0 {
			// 焦距值太多时抽稀标签，柱子本身全部保留（原始工具的做法）。
			label = ""
		}
		bars = append(bars, gochart.Value{
			Value: float64(s.Counts[f]),
			Label: label,
		})
	}

	bc := gochart.BarChart{
		Title:      "Focal Length Distribution",
		Width:      width,
		Height:     height,
		BarWidth:   barWidth(width, len(bars)),
		BarSpacing: barSpacing,
		XAxis: gochart.Style{
			TextRotationDegrees: 45,
		},
		YAxis: gochart.YAxis{
			ValueFormatter: gochart.IntValueFormatter,
			// 显式固定 y 轴范围：所有柱子等高时自动推断的范围会退化。
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(maxCount)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(gochart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func labelStep(n int) int {
	if n <= maxFullLabels {
		return 1
	}
	step := n / targetLabels
	if step < 1 {
		step = 1
	}
	return step
}

func barWidth(width, bars int) int {
	if bars <= 0 {
		return 1
	}
	// 预留两侧边距与柱间空隙；夹在 [2, 60] 内避免单柱过宽或过密。
	w := (width-100)/bars - barSpacing
	if w > 60 {
		return 60
	}
	if w < 2 {
		return 2
	}
	return w
}

// blankPNG 生成一张纯白占位图（标准库编码，无任何柱子）。
func blankPNG(width, height int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
