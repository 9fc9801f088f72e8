package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/John-Robertt/focalstat/internal/domain"
	"github.com/John-Robertt/focalstat/internal/exifx"
)

// Result 是对一批根目录扫描后的完整产出。
type Result struct {
	// Files 按 (Root, Path) 排序，保证同一输入下输出稳定。
	Files []domain.ScanResult

	// SkippedRoots 是整体不可用的根目录（不存在/不是目录/不可读）。
	SkippedRoots []string
	// SkippedDirs 是遍历过程中无法进入的子目录数。
	SkippedDirs int
	// Warnings 是面向用户的告警文案（与 SkippedRoots/SkippedDirs 对应）。
	Warnings []string
}

// Options 控制扫描行为。
type Options struct {
	// Extensions 是小写的扩展名白名单（含点，例如 ".jpg"）。
	Extensions []string
	// Exif 透传给 exifx.ReadFocalLength。
	Exif exifx.Options
}

// Roots 递归扫描每个根目录下命中扩展名过滤的文件，并逐个提取焦距。
//
// 规则（硬约束）：
// - 单个文件读取/解析失败 => 记为“无焦距”，绝不中止整轮
// - 单个子目录不可读 => 跳过并计数，继续其余部分
// - 单个根目录不可用 => 跳过并告警，继续其余根目录
// - 所有根目录都不可用 => 返回 domain.ErrCodeInvalidRoots 级别的错误（由调用方升级为致命）
func Roots(roots []string, opts Options) (Result, error) {
	var res Result

	valid := 0
	for _, root := range roots {
		root = filepath.Clean(root)
		fi, err := os.Stat(root)
		if err != nil || !fi.IsDir() {
			res.SkippedRoots = append(res.SkippedRoots, root)
			res.Warnings = append(res.Warnings, fmt.Sprintf("输入目录 %s 不存在或不可读，已跳过", root))
			continue
		}
		valid++
		scanRoot(root, opts, &res)
	}

	if valid == 0 {
		return res, &InvalidRootsError{Roots: roots}
	}

	sort.Slice(res.Files, func(i, j int) bool {
		a, b := res.Files[i], res.Files[j]
		if a.Root != b.Root {
			return a.Root < b.Root
		}
		return a.Path < b.Path
	})
	return res, nil
}

// InvalidRootsError 表示所有输入根目录均不可用。
type InvalidRootsError struct {
	Roots []string
}

func (e *InvalidRootsError) Error() string {
	return fmt.Sprintf("所有输入目录均不可用：%v", e.Roots)
}

func scanRoot(root string, opts Options, res *Result) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// WalkDir 只在根目录 Lstat 或目录 ReadDir 失败时才带 error，
			// 不会对单个文件报错；这里一律按“子目录不可读”处理：
			// 跳过该子树并计数，继续其余部分。
			res.SkippedDirs++
			res.Warnings = append(res.Warnings, fmt.Sprintf("目录 %s 无法读取，已跳过", path))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if !hasExt(ext, opts.Extensions) {
			return nil
		}

		// 文件打不开/解析失败由 ReadFocalLength 退化为“无焦距”，不会中止遍历。
		focal, ok := exifx.ReadFocalLength(path, opts.Exif)
		res.Files = append(res.Files, domain.ScanResult{
			Path:        relOr(root, path),
			Root:        root,
			FocalLength: focal,
			HasFocal:    ok,
		})
		return nil
	})
}

func relOr(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

func hasExt(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
