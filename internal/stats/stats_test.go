package stats_test

import (
	"testing"

	"github.com/John-Robertt/focalstat/internal/domain"
	"github.com/John-Robertt/focalstat/internal/stats"
)

func result(focal float64, has bool) domain.ScanResult {
	return domain.ScanResult{Path: "x.jpg", Root: "/r", FocalLength: focal, HasFocal: has}
}

func TestFold_Basic(t *testing.T) {
	// 两种焦距（24.0 ×2、50.0 ×1）加一个缺失样本。
	in := []domain.ScanResult{
		result(24.0, true),
		result(24.0, true),
		result(50.0, true),
		result(0, false),
	}

	s := stats.Fold(in)

	if s.Total != 4 || s.WithFocal != 3 || s.Missing != 1 {
		t.Fatalf("计数不符：total=%d with=%d missing=%d", s.Total, s.WithFocal, s.Missing)
	}
	if !s.HasMode || s.Mode != 24.0 || s.ModeCount != 2 {
		t.Fatalf("众数不符：%+v", s)
	}
	if s.Counts[24.0] != 2 || s.Counts[50.0] != 1 {
		t.Fatalf("映射不符：%v", s.Counts)
	}
}

func TestFold_Invariants(t *testing.T) {
	cases := [][]domain.ScanResult{
		nil,
		{result(0, false)},
		{result(35.0, true)},
		{result(24.0, true), result(35.0, true), result(0, false), result(24.0, true)},
	}

	for i, in := range cases {
		s := stats.Fold(in)
		if s.WithFocal+s.Missing != s.Total {
			t.Fatalf("用例 %d：with+missing != total（%d+%d != %d）", i, s.WithFocal, s.Missing, s.Total)
		}
		sum := 0
		for _, c := range s.Counts {
			sum += c
		}
		if sum != s.WithFocal {
			t.Fatalf("用例 %d：映射计数之和 %d != with=%d", i, sum, s.WithFocal)
		}
	}
}

func TestFold_ModeTieBreakSmallest(t *testing.T) {
	// 24.0 与 35.0 并列最大：必须取较小值（文档化的 tie-break 规则）。
	in := []domain.ScanResult{
		result(35.0, true),
		result(24.0, true),
		result(35.0, true),
		result(24.0, true),
	}

	s := stats.Fold(in)
	if !s.HasMode || s.Mode != 24.0 || s.ModeCount != 2 {
		t.Fatalf("并列时应取较小焦距：%+v", s)
	}
}

func TestFold_Empty(t *testing.T) {
	s := stats.Fold(nil)
	if s.Total != 0 || s.WithFocal != 0 || s.Missing != 0 {
		t.Fatalf("空输入应全零：%+v", s)
	}
	if s.HasMode {
		t.Fatal("空输入必须是显式“无众数”")
	}
	if len(s.SortedLengths()) != 0 {
		t.Fatalf("空输入不应有焦距值：%v", s.SortedLengths())
	}
}
