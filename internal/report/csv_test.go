package report_test

import (
	"bytes"
	"testing"

	"github.com/John-Robertt/focalstat/internal/domain"
	"github.com/John-Robertt/focalstat/internal/report"
)

func sampleStats() domain.FocalStats {
	return domain.FocalStats{
		Total:     4,
		WithFocal: 3,
		Missing:   1,
		Counts:    map[float64]int{24.0: 2, 50.0: 1},
		Mode:      24.0,
		ModeCount: 2,
		HasMode:   true,
	}
}

func TestEncodeCSV_Ascending(t *testing.T) {
	got, err := report.EncodeCSV(sampleStats())
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	want := "Focal Length (mm),Count,Percent\n" +
		"24.0,2,66.7%\n" +
		"50.0,1,33.3%\n"
	if string(got) != want {
		t.Fatalf("CSV 不符：\n期望:\n%s\n实际:\n%s", want, got)
	}
}

func TestEncodeCSV_EmptyHeaderOnly(t *testing.T) {
	got, err := report.EncodeCSV(domain.FocalStats{Counts: map[float64]int{}})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if string(got) != "Focal Length (mm),Count,Percent\n" {
		t.Fatalf("空统计应只有表头，实际：%q", got)
	}
}

func TestEncodeCSV_Idempotent(t *testing.T) {
	a, err := report.EncodeCSV(sampleStats())
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	b, err := report.EncodeCSV(sampleStats())
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("同一输入的两次编码必须字节级一致")
	}
}

func TestFormatFocal(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{24.0, "24.0"},
		{45.7, "45.7"},
		{105.0, "105.0"},
	}
	for _, tc := range cases {
		if got := report.FormatFocal(tc.in); got != tc.want {
			t.Fatalf("FormatFocal(%v)：期望 %q，实际 %q", tc.in, tc.want, got)
		}
	}
}
