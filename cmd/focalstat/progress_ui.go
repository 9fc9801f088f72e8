package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/John-Robertt/focalstat/internal/app/run"
	"github.com/John-Robertt/focalstat/internal/config"
)

var _ run.Observer = (*progressUI)(nil)

// progressUI 是交互终端下的过程输出。
//
// 设计目标：
// - 所有过程信息写到 stderr（或 fallback 到 stdout），不污染 stdout 的输出契约
// - 事件驱动：run 层只发事件，CLI 决定如何展示
type progressUI struct {
	w         io.Writer
	startedAt time.Time
}

func newProgressUI(w io.Writer) *progressUI {
	return &progressUI{w: w}
}

func (p *progressUI) OnStart(eff config.EffectiveConfig) {
	now := time.Now()
	if p.startedAt.IsZero() {
		p.startedAt = now
	}

	fmt.Fprintf(p.w, "[%s] focalstat\n", now.Format("15:04:05"))
	fmt.Fprintln(p.w, "配置（生效）:")
	fmt.Fprintf(p.w, "  roots: %s\n", strings.Join(eff.Roots, ", "))
	fmt.Fprintf(p.w, "  output: %s\n", eff.OutputDir)
	fmt.Fprintf(p.w, "  extensions: %s\n", strings.Join(eff.Extensions, ", "))
	fmt.Fprintf(p.w, "  prefer_35mm: %s\n", onOff(eff.Prefer35mm))
	fmt.Fprintln(p.w)
}

func (p *progressUI) OnPhaseDone(name string, fields map[string]any, dur time.Duration) {
	switch name {
	case "scan":
		fmt.Fprintf(p.w, "扫描: files=%d skipped_dirs=%d (%s)\n",
			intField(fields, "files"), intField(fields, "skipped_dirs"), formatShortDuration(dur),
		)
	case "aggregate":
		fmt.Fprintf(p.w, "聚合: distinct=%d (%s)\n",
			intField(fields, "distinct"), formatShortDuration(dur),
		)
	case "write":
		fmt.Fprintf(p.w, "写出: csv/chart/html 完成 (%s)\n", formatShortDuration(dur))
	default:
		// 兜底：未知阶段也不要静默（便于调试/演进）。
		fmt.Fprintf(p.w, "%s (%s)\n", name, formatShortDuration(dur))
	}
}

func (p *progressUI) OnWarning(msg string) {
	fmt.Fprintf(p.w, "警告: %s\n", msg)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func formatShortDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func intField(fields map[string]any, key string) int {
	if fields == nil {
		return 0
	}
	v, ok := fields[key]
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case int:
		return x
	case int32:
		return int(x)
	case int64:
		return int(x)
	default:
		return 0
	}
}
