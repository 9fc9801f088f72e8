package domain

import "sort"

// FocalStats 是一次运行的聚合结果（只读消费，不跨运行持久化）。
//
// 不变式（由 stats.Fold 保证，domain 层只承载）：
// - WithFocal + Missing == Total
// - Counts 所有 value 之和 == WithFocal
type FocalStats struct {
	// Total 是命中扩展名过滤的文件总数。
	Total int
	// WithFocal 是成功提取到焦距的文件数。
	WithFocal int
	// Missing 是缺少/无法解析焦距的文件数。
	Missing int

	// Counts 是焦距值（毫米，一位小数）到出现次数的映射。
	Counts map[float64]int

	// Mode 是出现次数最多的焦距；并列时取数值最小者。
	// HasMode=false 表示没有任何带焦距的样本（显式“无众数”信号，而非崩溃）。
	Mode      float64
	ModeCount int
	HasMode   bool
}

// SortedLengths 返回按数值升序排列的全部焦距值。
// CSV/图表/HTML 的行序都由它决定，保证同一输入的输出字节级可复现。
func (s FocalStats) SortedLengths() []float64 {
	out := make([]float64, 0, len(s.Counts))
	for f := range s.Counts {
		out = append(out, f)
	}
	sort.Float64s(out)
	return out
}
