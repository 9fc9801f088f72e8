package run

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/John-Robertt/focalstat/internal/chart"
	"github.com/John-Robertt/focalstat/internal/config"
	"github.com/John-Robertt/focalstat/internal/domain"
	"github.com/John-Robertt/focalstat/internal/exifx"
	"github.com/John-Robertt/focalstat/internal/infra/fsx"
	"github.com/John-Robertt/focalstat/internal/report"
	"github.com/John-Robertt/focalstat/internal/scan"
	"github.com/John-Robertt/focalstat/internal/stats"
)

// Execute 执行一次完整流程：扫描 -> 聚合 -> CSV/图表/HTML，并返回对外稳定的 RunReport。
//
// 错误分级（与 RunReport.Status/ErrorCode 对应）：
// - 单文件失败：降级为“无焦距”，不出现在错误里
// - 部分根目录失败：进 Warnings，Status 仍为 ok
// - 所有根目录失败 / 输出目录不可用 / 输出写入失败：Status=failed
func Execute(eff config.EffectiveConfig, obs Observer) domain.RunReport {
	started := time.Now().UTC()

	if obs != nil {
		obs.OnStart(eff)
	}

	rr := domain.RunReport{
		Roots:     append([]string(nil), eff.Roots...),
		OutputDir: eff.OutputDir,
		StartedAt: started,
		Status:    domain.StatusOK,
	}

	// 输出目录先行校验：落盘注定失败时，扫描几万个文件毫无意义。
	if err := fsx.EnsureWritableDir(eff.OutputDir); err != nil {
		return fail(rr, domain.ErrCodeOutputUnwritable,
			fmt.Sprintf("输出目录 %s 不可用：%v", eff.OutputDir, err))
	}

	scanStarted := time.Now()
	sr, err := scan.Roots(eff.Roots, scan.Options{
		Extensions: eff.Extensions,
		Exif:       exifx.Options{Prefer35mm: eff.Prefer35mm},
	})
	rr.Warnings = append(rr.Warnings, sr.Warnings...)
	if obs != nil {
		for _, w := range sr.Warnings {
			obs.OnWarning(w)
		}
	}
	if err != nil {
		var ire *scan.InvalidRootsError
		if errors.As(err, &ire) {
			return fail(rr, domain.ErrCodeInvalidRoots, err.Error())
		}
		return fail(rr, domain.ErrCodeIOFailed, fmt.Sprintf("扫描失败：%v", err))
	}
	if obs != nil {
		obs.OnPhaseDone("scan", map[string]any{
			"files":        len(sr.Files),
			"skipped_dirs": sr.SkippedDirs,
		}, time.Since(scanStarted))
	}

	aggStarted := time.Now()
	s := stats.Fold(sr.Files)
	rr.Summary = domain.ReportSummary{
		Scanned:     s.Total,
		WithFocal:   s.WithFocal,
		Missing:     s.Missing,
		SkippedDirs: sr.SkippedDirs,
	}
	if s.HasMode {
		rr.Mode = report.FormatFocal(s.Mode)
		rr.ModeCount = s.ModeCount
	}
	if obs != nil {
		obs.OnPhaseDone("aggregate", map[string]any{
			"distinct": len(s.Counts),
		}, time.Since(aggStarted))
	}

	// 写出阶段：任何一个产物失败都判整轮失败（禁止“部分静默成功”）。
	writeStarted := time.Now()

	csvBytes, err := report.EncodeCSV(s)
	if err != nil {
		return fail(rr, domain.ErrCodeIOFailed, fmt.Sprintf("生成 CSV 失败：%v", err))
	}
	if err := fsx.WriteFileAtomicReplace(eff.OutputDir, report.FileNameCSV, csvBytes); err != nil {
		return fail(rr, domain.ErrCodeIOFailed, fmt.Sprintf("写入 CSV 失败：%v", err))
	}
	rr.Outputs.CSV = filepath.Join(eff.OutputDir, report.FileNameCSV)

	chartBytes, err := chart.Render(s, chart.Options{Width: eff.ChartWidth, Height: eff.ChartHeight})
	if err != nil {
		return fail(rr, domain.ErrCodeIOFailed, fmt.Sprintf("生成图表失败：%v", err))
	}
	if err := fsx.WriteFileAtomicReplace(eff.OutputDir, chart.FileNameChart, chartBytes); err != nil {
		return fail(rr, domain.ErrCodeIOFailed, fmt.Sprintf("写入图表失败：%v", err))
	}
	rr.Outputs.Chart = filepath.Join(eff.OutputDir, chart.FileNameChart)

	htmlBytes, err := report.EncodeHTML(s)
	if err != nil {
		return fail(rr, domain.ErrCodeIOFailed, fmt.Sprintf("生成 HTML 报告失败：%v", err))
	}
	if err := fsx.WriteFileAtomicReplace(eff.OutputDir, report.FileNameHTML, htmlBytes); err != nil {
		return fail(rr, domain.ErrCodeIOFailed, fmt.Sprintf("写入 HTML 报告失败：%v", err))
	}
	rr.Outputs.HTML = filepath.Join(eff.OutputDir, report.FileNameHTML)

	if obs != nil {
		obs.OnPhaseDone("write", map[string]any{
			"csv":   rr.Outputs.CSV,
			"chart": rr.Outputs.Chart,
			"html":  rr.Outputs.HTML,
		}, time.Since(writeStarted))
	}

	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
	return rr
}

func fail(rr domain.RunReport, code, msg string) domain.RunReport {
	rr.Status = domain.StatusFailed
	rr.ErrorCode = code
	rr.ErrorMsg = msg
	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
	return rr
}
