package domain

import (
	"encoding/json"
	"sort"
	"time"
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

const (
	// ErrCodeInvalidRoots 表示所有输入目录都不可用。
	ErrCodeInvalidRoots = "invalid_roots"
	// ErrCodeOutputUnwritable 表示输出目录缺失/不可写。
	ErrCodeOutputUnwritable = "output_unwritable"
	// ErrCodeIOFailed 表示输出文件写入阶段的 IO 失败。
	ErrCodeIOFailed = "io_failed"
	// ErrCodeConfigInvalid 表示 focalstat.json 无法解析或字段不合法。
	ErrCodeConfigInvalid = "config_invalid"
)

// RunReport 是对外稳定输出（stdout 非 TTY 时输出该 JSON）的结构。
type RunReport struct {
	Roots     []string `json:"roots"`
	OutputDir string   `json:"output_dir"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Status    string `json:"status"`
	ErrorCode string `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`

	Summary ReportSummary `json:"summary"`

	// Mode 为空串表示无众数；否则形如 "24.0"（毫米，一位小数）。
	Mode      string `json:"mode"`
	ModeCount int    `json:"mode_count"`

	// Warnings 是非致命问题（被跳过的根目录/子目录等），已排序保证稳定。
	Warnings []string `json:"warnings"`

	Outputs OutputFiles `json:"outputs"`
}

type ReportSummary struct {
	Scanned     int `json:"scanned"`
	WithFocal   int `json:"with_focal"`
	Missing     int `json:"missing"`
	SkippedDirs int `json:"skipped_dirs"`
}

type OutputFiles struct {
	CSV   string `json:"csv"`
	Chart string `json:"chart"`
	HTML  string `json:"html"`
}

// Finalize 做两件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) warnings 稳定排序（不同文件系统的遍历顺序不应影响输出）
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()
	if r.Warnings == nil {
		r.Warnings = []string{}
	}
	sort.Strings(r.Warnings)
	if r.Status == "" {
		r.Status = StatusOK
	}
}

// MarshalJSON 仅用于集中约束输出的稳定性（避免未来不小心引入非确定字段）。
// 当前只是透传 encoding/json 的默认行为。
func (r RunReport) MarshalJSON() ([]byte, error) {
	type Alias RunReport
	return json.Marshal(Alias(r))
}
