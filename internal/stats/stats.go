package stats

import (
	"github.com/John-Robertt/focalstat/internal/domain"
)

// Fold 把一轮扫描结果折叠为 FocalStats。
//
// 算法：每条结果 total+1；有焦距则 with+1 且对应 key 计数+1，否则 missing+1。
// 折叠完成后计算众数：取计数最大的 key；并列时取数值最小者（文档化的
// tie-break 规则，避免依赖 map 遍历顺序这类容器实现细节）。
// 空输入不报错：返回全零统计且 HasMode=false。
func Fold(results []domain.ScanResult) domain.FocalStats {
	s := domain.FocalStats{
		Counts: make(map[float64]int),
	}

	for _, r := range results {
		s.Total++
		if !r.HasFocal {
			s.Missing++
			continue
		}
		s.WithFocal++
		s.Counts[r.FocalLength]++
	}

	for _, f := range s.SortedLengths() {
		// 升序遍历：第一个达到更大计数的 key 即为众数，天然满足“并列取最小值”。
		if c := s.Counts[f]; c > s.ModeCount {
			s.Mode = f
			s.ModeCount = c
			s.HasMode = true
		}
	}
	return s
}
