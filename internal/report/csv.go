package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/John-Robertt/focalstat/internal/domain"
)

const (
	// FileNameCSV 是统计表的固定文件名（输出目录下）。
	FileNameCSV = "focal_length_stats.csv"
)

// EncodeCSV 把聚合结果编码为 CSV：表头 + 每个焦距一行，按焦距升序。
//
// 规则：
// - 空统计输出“只有表头”的文件（不算错误）
// - 同一输入多次运行输出字节级一致（行序/格式完全确定）
// - Percent 是相对 WithFocal 的占比，一位小数
func EncodeCSV(s domain.FocalStats) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Focal Length (mm)", "Count", "Percent"}); err != nil {
		return nil, err
	}
	for _, f := range s.SortedLengths() {
		count := s.Counts[f]
		if err := w.Write([]string{
			FormatFocal(f),
			strconv.Itoa(count),
			formatPercent(count, s.WithFocal),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatFocal 统一焦距的输出格式："24.0"（一位小数，不带单位）。
func FormatFocal(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

func formatPercent(count, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}
