package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
	// ErrCodeNoRoots 表示 CLI 没有提供任何输入目录。
	ErrCodeNoRoots = "config_no_roots"
)

// FileName 是可选配置文件名，固定从工作目录读取。
const FileName = "focalstat.json"

// DefaultExtensions 是扩展名过滤的内置默认值（大小写不敏感匹配）。
var DefaultExtensions = []string{".jpg", ".jpeg"}

// CLIArgs 只包含 CLI 暴露的入口：若干输入目录 + 一个输出目录（位置参数约定）。
type CLIArgs struct {
	Roots     []string
	OutputDir string
}

// FileConfig 对应 focalstat.json 的解析结构。所有字段可选。
type FileConfig struct {
	Extensions  []string `json:"extensions"`
	ChartWidth  int      `json:"chart_width"`
	ChartHeight int      `json:"chart_height"`
	Prefer35mm  *bool    `json:"prefer_35mm"`
}

// EffectiveConfig 是合并并做最小规范化后的最终配置
//（实现层直接消费，不再做二次默认/优先级判断）。
type EffectiveConfig struct {
	// Roots 是绝对路径化后的输入目录（保持 CLI 顺序）。
	Roots []string
	// OutputDir 是绝对路径化后的输出目录。
	OutputDir string

	// Extensions 已规范化：小写、带点。
	Extensions []string

	ChartWidth  int
	ChartHeight int

	// Prefer35mm 为 true 时优先 35mm 等效焦距（默认 true，与原始工具一致）。
	Prefer35mm bool
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNoRoots:
		return fmt.Sprintf("%s：至少需要一个输入目录和一个输出目录", e.Code)
	case ErrCodeInvalid:
		if e.Err != nil {
			return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：配置文件 %q 无效", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 读取可选的 <cwd>/focalstat.json，并与 CLI 位置参数合并。
//
// 覆盖优先级（固定）：
// - roots / output-dir：仅来自 CLI（位置参数约定，不进配置文件）
// - extensions / chart_* / prefer_35mm：config > 内置默认
// 配置文件不存在不算错误；存在但无法解析/字段不合法 => config_invalid。
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	if len(cli.Roots) == 0 || strings.TrimSpace(cli.OutputDir) == "" {
		return EffectiveConfig{}, &Error{Code: ErrCodeNoRoots}
	}

	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	cfgPath := filepath.Join(cwdAbs, FileName)
	fc, exists, err := readFileConfig(cfgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}
	_ = exists // 不存在也不报错

	exts := DefaultExtensions
	if len(fc.Extensions) > 0 {
		exts, err = normalizeExtensions(fc.Extensions)
		if err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
		}
	}

	if fc.ChartWidth < 0 || fc.ChartHeight < 0 {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath,
			Err: fmt.Errorf("chart_width/chart_height 不能为负数")}
	}

	prefer35 := true
	if fc.Prefer35mm != nil {
		prefer35 = *fc.Prefer35mm
	}

	roots := make([]string, 0, len(cli.Roots))
	for _, r := range cli.Roots {
		roots = append(roots, absCleanFrom(cwdAbs, r))
	}

	return EffectiveConfig{
		Roots:       roots,
		OutputDir:   absCleanFrom(cwdAbs, cli.OutputDir),
		Extensions:  append([]string(nil), exts...),
		ChartWidth:  fc.ChartWidth,
		ChartHeight: fc.ChartHeight,
		Prefer35mm:  prefer35,
	}, nil
}

// normalizeExtensions 把配置里的扩展名统一为“小写、带点”。
// 空白项报错（大概率是手滑），而不是悄悄忽略。
func normalizeExtensions(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || e == "." {
			return nil, fmt.Errorf("extensions 含空项")
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out, nil
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
func absCleanFrom(base, p string) string {
	p = filepath.Clean(strings.TrimSpace(p))
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readFileConfig 读取并解析 JSON 配置文件。
// 返回值 exists 表示该文件是否存在（不存在不算错误）。
func readFileConfig(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, true, err
	}
	return fc, true, nil
}
