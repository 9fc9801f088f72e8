package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/John-Robertt/focalstat/internal/app/run"
	"github.com/John-Robertt/focalstat/internal/config"
	"github.com/John-Robertt/focalstat/internal/domain"
)

func main() {
	os.Exit(mainExit(os.Args[1:]))
}

func mainExit(args []string) int {
	for _, a := range args {
		if isHelp(a) {
			printUsage()
			return 0
		}
	}

	cli, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printUsage()
		return 2
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取当前目录失败：%v\n", err)
		return 1
	}

	eff, err := config.LoadEffective(cwd, cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		if config.Code(err) == config.ErrCodeNoRoots {
			fmt.Fprintln(os.Stderr)
			printUsage()
			return 2
		}
		return 1
	}

	progressW, interactive := pickProgressWriter()
	var obs run.Observer
	if interactive {
		obs = newProgressUI(progressW)
	}

	rr := run.Execute(eff, obs)
	emitReport(rr)

	if rr.Status == domain.StatusFailed {
		return 1
	}
	return 0
}

// parseArgs 解析位置参数约定：<dir1> [<dir2> ...] <output-dir>。
// 最后一个参数是输出目录，其余全部是输入目录。
func parseArgs(args []string) (config.CLIArgs, error) {
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			return config.CLIArgs{}, fmt.Errorf("未知参数 %q", a)
		}
	}
	if len(args) < 2 {
		return config.CLIArgs{}, fmt.Errorf("至少需要一个输入目录和一个输出目录")
	}
	return config.CLIArgs{
		Roots:     append([]string(nil), args[:len(args)-1]...),
		OutputDir: args[len(args)-1],
	}, nil
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

func printUsage() {
	fmt.Fprint(os.Stdout, `用法：
  focalstat <dir1> [<dir2> ...] <output-dir>

说明：
  递归扫描输入目录下的 JPEG 文件，提取 EXIF 焦距并统计分布，
  在输出目录生成 focal_length_stats.csv、focal_length_chart.png
  与 focal_length_report.html。

  可选配置文件：当前目录下的 focalstat.json
  （extensions / chart_width / chart_height / prefer_35mm）。

示例：
  focalstat /照片目录1 /照片目录2 /输出目录
`)
}

func emitReport(rr domain.RunReport) {
	if isTTY(os.Stdout) {
		emitHuman(os.Stdout, rr)
		return
	}

	// stdout 非 TTY：stdout 必须且仅输出一个 RunReport JSON（摘要走 stderr）。
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(rr)
	fmt.Fprintf(os.Stderr, "完成：scanned=%d with_focal=%d missing=%d status=%s\n",
		rr.Summary.Scanned, rr.Summary.WithFocal, rr.Summary.Missing, rr.Status,
	)
	if rr.Status == domain.StatusFailed {
		fmt.Fprintf(os.Stderr, "%s: %s\n", rr.ErrorCode, rr.ErrorMsg)
	}
}

func emitHuman(w io.Writer, rr domain.RunReport) {
	if rr.Status == domain.StatusFailed {
		fmt.Fprintf(os.Stderr, "错误（%s）：%s\n", rr.ErrorCode, rr.ErrorMsg)
		return
	}

	for _, warn := range rr.Warnings {
		fmt.Fprintf(os.Stderr, "警告: %s\n", warn)
	}

	fmt.Fprintln(w, "\n===== 分析结果 =====")
	fmt.Fprintf(w, "扫描图片总数: %d\n", rr.Summary.Scanned)
	fmt.Fprintf(w, "包含焦距信息的图片: %d\n", rr.Summary.WithFocal)
	fmt.Fprintf(w, "缺少焦距信息的图片: %d\n", rr.Summary.Missing)

	if rr.Mode != "" {
		fmt.Fprintf(w, "最常见的焦距: %smm (共 %d 张)\n", rr.Mode, rr.ModeCount)
	} else {
		fmt.Fprintln(w, "未找到任何包含焦距信息的图片")
	}

	fmt.Fprintf(w, "\n焦距统计已保存至: %s\n", rr.Outputs.CSV)
	fmt.Fprintf(w, "分布图表已保存至: %s\n", rr.Outputs.Chart)
	fmt.Fprintf(w, "HTML 报告已保存至: %s\n", rr.Outputs.HTML)
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func pickProgressWriter() (io.Writer, bool) {
	// 进度输出只在交互终端启用；默认走 stderr（不污染 stdout JSON）。
	if isTTY(os.Stderr) {
		return os.Stderr, true
	}
	// 某些环境（例如仅重定向 stderr）下，stdout 仍是 TTY：退化输出到 stdout。
	if isTTY(os.Stdout) {
		return os.Stdout, true
	}
	return nil, false
}
