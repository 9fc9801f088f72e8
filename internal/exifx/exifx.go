package exifx

import (
	"math"
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// Options 控制焦距提取策略。
type Options struct {
	// Prefer35mm 为 true 时优先使用 FocalLengthIn35mmFilm（等效焦距），
	// 与原始工具行为一致；该 tag 缺失或为零时回退到 FocalLength。
	Prefer35mm bool
}

// ReadFocalLength 尝试从 path 指向的图片中提取焦距（毫米，一位小数）。
//
// 契约：
// - tag 存在且数值有效 => (focal, true)
// - tag 缺失/为零/损坏、文件无法解析 => (0, false)，绝不向调用方抛单文件错误
// - 文件句柄在所有返回路径上都已释放
func ReadFocalLength(path string, opts Options) (float64, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return 0, false
	}

	if opts.Prefer35mm {
		if v, ok := focal35mm(x); ok {
			return v, true
		}
	}
	return focalRational(x)
}

// focal35mm 读取 FocalLengthIn35mmFilm（SHORT，单位毫米，整数）。
func focal35mm(x *exif.Exif) (float64, bool) {
	tag, err := x.Get(exif.FocalLengthIn35mmFilm)
	if err != nil {
		return 0, false
	}
	v, err := tag.Int(0)
	if err != nil || v <= 0 {
		return 0, false
	}
	return float64(v), true
}

// focalRational 读取 FocalLength（RATIONAL 分子/分母），四舍五入到一位小数。
func focalRational(x *exif.Exif) (float64, bool) {
	tag, err := x.Get(exif.FocalLength)
	if err != nil {
		return 0, false
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 || num <= 0 {
		return 0, false
	}
	return Round1(float64(num) / float64(den)), true
}

// Round1 四舍五入到一位小数。聚合 map 的 key 必须先经过它，
// 否则 23.99999 与 24.0 会被当成两个焦距。
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
