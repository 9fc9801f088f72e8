package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEffective_Defaults(t *testing.T) {
	cwd := t.TempDir()

	eff, err := LoadEffective(cwd, CLIArgs{Roots: []string{"photos"}, OutputDir: "out"})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	if len(eff.Roots) != 1 || eff.Roots[0] != filepath.Join(cwd, "photos") {
		t.Fatalf("roots 不符：%v", eff.Roots)
	}
	if eff.OutputDir != filepath.Join(cwd, "out") {
		t.Fatalf("output 不符：%q", eff.OutputDir)
	}
	if len(eff.Extensions) != 2 || eff.Extensions[0] != ".jpg" || eff.Extensions[1] != ".jpeg" {
		t.Fatalf("默认扩展名不符：%v", eff.Extensions)
	}
	if !eff.Prefer35mm {
		t.Fatal("prefer_35mm 默认应为 true")
	}
	if eff.ChartWidth != 0 || eff.ChartHeight != 0 {
		t.Fatalf("未配置时图表尺寸应为零值（由 chart 层套默认）：%d x %d", eff.ChartWidth, eff.ChartHeight)
	}
}

func TestLoadEffective_FileOverrides(t *testing.T) {
	cwd := t.TempDir()
	writeConfig(t, cwd, `{
		"extensions": ["JPG", ".jpe"],
		"chart_width": 800,
		"chart_height": 400,
		"prefer_35mm": false
	}`)

	eff, err := LoadEffective(cwd, CLIArgs{Roots: []string{"/a"}, OutputDir: "/o"})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}

	if len(eff.Extensions) != 2 || eff.Extensions[0] != ".jpg" || eff.Extensions[1] != ".jpe" {
		t.Fatalf("扩展名未规范化：%v", eff.Extensions)
	}
	if eff.ChartWidth != 800 || eff.ChartHeight != 400 {
		t.Fatalf("图表尺寸不符：%d x %d", eff.ChartWidth, eff.ChartHeight)
	}
	if eff.Prefer35mm {
		t.Fatal("prefer_35mm 应被配置覆盖为 false")
	}
}

func TestLoadEffective_AbsoluteRootsKept(t *testing.T) {
	eff, err := LoadEffective(t.TempDir(), CLIArgs{Roots: []string{"/abs/a", "/abs/b"}, OutputDir: "/abs/out"})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.Roots[0] != "/abs/a" || eff.Roots[1] != "/abs/b" || eff.OutputDir != "/abs/out" {
		t.Fatalf("绝对路径不应被改写：%v %q", eff.Roots, eff.OutputDir)
	}
}

func TestLoadEffective_NoRoots(t *testing.T) {
	_, err := LoadEffective(t.TempDir(), CLIArgs{})
	if Code(err) != ErrCodeNoRoots {
		t.Fatalf("期望 %s，实际 %v", ErrCodeNoRoots, err)
	}
}

func TestLoadEffective_InvalidJSON(t *testing.T) {
	cwd := t.TempDir()
	writeConfig(t, cwd, `{not json`)

	_, err := LoadEffective(cwd, CLIArgs{Roots: []string{"/a"}, OutputDir: "/o"})
	if Code(err) != ErrCodeInvalid {
		t.Fatalf("期望 %s，实际 %v", ErrCodeInvalid, err)
	}
}

func TestLoadEffective_InvalidFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"空扩展名", `{"extensions": [""]}`},
		{"只有点的扩展名", `{"extensions": ["."]}`},
		{"负的图表宽度", `{"chart_width": -1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cwd := t.TempDir()
			writeConfig(t, cwd, tc.body)
			_, err := LoadEffective(cwd, CLIArgs{Roots: []string{"/a"}, OutputDir: "/o"})
			if Code(err) != ErrCodeInvalid {
				t.Fatalf("期望 %s，实际 %v", ErrCodeInvalid, err)
			}
		})
	}
}

func writeConfig(t *testing.T, cwd, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(cwd, FileName), []byte(body), 0o644); err != nil {
		t.Fatalf("写入配置失败：%v", err)
	}
}
