package fsx

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomicReplace_WriteAndOverwrite(t *testing.T) {
	dir := t.TempDir()

	if err := WriteFileAtomicReplace(dir, "a.csv", []byte("v1")); err != nil {
		t.Fatalf("首次写入失败：%v", err)
	}
	if err := WriteFileAtomicReplace(dir, "a.csv", []byte("v2")); err != nil {
		t.Fatalf("覆盖写入失败：%v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "a.csv"))
	if err != nil {
		t.Fatalf("读取失败：%v", err)
	}
	if string(b) != "v2" {
		t.Fatalf("期望 v2，实际 %q", b)
	}

	// 不应留下临时文件。
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("读取目录失败：%v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("期望目录里只有目标文件，实际 %d 个条目", len(entries))
	}
}

func TestWriteFileAtomicReplace_MissingDirFails(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "不存在")
	if err := WriteFileAtomicReplace(dir, "a.csv", []byte("x")); err == nil {
		t.Fatal("目录不存在必须报错（目录校验由 EnsureWritableDir 负责）")
	}
}

func TestEnsureWritableDir_CreatesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	if err := EnsureWritableDir(dir); err != nil {
		t.Fatalf("应自动创建缺失目录：%v", err)
	}
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		t.Fatalf("目录未创建：%v", err)
	}

	// 探针文件必须已清理。
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("探针文件未清理：%d 个条目", len(entries))
	}
}

func TestEnsureWritableDir_FileConflict(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "occupied")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("写入文件失败：%v", err)
	}

	err := EnsureWritableDir(path)
	if err == nil {
		t.Fatal("路径被文件占用必须报错")
	}
	if !IsPathTypeConflict(err) {
		t.Fatalf("期望 PathTypeConflictError，实际 %v", err)
	}
}
