// Package exiftest 构造测试用的最小 JPEG 字节序列（带/不带 EXIF 焦距）。
// 只服务于测试：真实照片体积太大，不适合做仓库内 fixture。
package exiftest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Spec 描述要嵌入的焦距 tag。
type Spec struct {
	// FocalNum/FocalDen 写入 FocalLength（RATIONAL）。FocalDen==0 时不写该 tag。
	FocalNum uint32
	FocalDen uint32

	// With35mm 为 true 时额外写入 FocalLengthIn35mmFilm（SHORT）= F35。
	With35mm bool
	F35      uint16
}

// JPEG 生成一个含 APP1/EXIF 段的最小 JPEG。
// 结构：SOI + APP1(Exif: IFD0 -> ExifIFD -> 焦距 tag) + EOI，没有任何像素数据。
func JPEG(t *testing.T, spec Spec) []byte {
	t.Helper()

	tiff := buildTIFF(spec)

	exifPayload := append([]byte("Exif\x00\x00"), tiff...)
	length := len(exifPayload) + 2
	if length > 0xFFFF {
		t.Fatalf("exif 段过大：%d", length)
	}

	out := []byte{0xFF, 0xD8}
	out = append(out, 0xFF, 0xE1, byte(length>>8), byte(length))
	out = append(out, exifPayload...)
	out = append(out, 0xFF, 0xD9)
	return out
}

// NoExifJPEG 生成一个不含 EXIF 段的最小 JPEG。
func NoExifJPEG() []byte {
	return []byte{0xFF, 0xD8, 0xFF, 0xD9}
}

// Corrupt 返回一段根本不是 JPEG 的字节（用于“损坏文件”场景）。
func Corrupt() []byte {
	return []byte("not a jpeg at all")
}

// Write 把 data 写到 dir/name 并返回完整路径。
func Write(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("创建目录失败：%v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("写入 fixture 失败：%v", err)
	}
	return path
}

const (
	tagExifIFDPointer = 0x8769
	tagFocalLength    = 0x920A
	tagFocal35mm      = 0xA405

	typeShort    = 3
	typeLong     = 4
	typeRational = 5
)

// buildTIFF 构造 little-endian TIFF：
// IFD0 只含 ExifIFDPointer；ExifIFD 含焦距 tag；RATIONAL 数据区跟在 ExifIFD 后面。
func buildTIFF(spec Spec) []byte {
	le := binary.LittleEndian

	entries := 0
	if spec.FocalDen != 0 {
		entries++
	}
	if spec.With35mm {
		entries++
	}

	// 偏移均相对 TIFF 起点。IFD0 固定在 8，长度 2+12+4=18。
	const ifd0Offset = 8
	exifIFDOffset := uint32(ifd0Offset + 18)
	exifIFDSize := 2 + 12*entries + 4
	dataOffset := exifIFDOffset + uint32(exifIFDSize)

	buf := make([]byte, 0, int(dataOffset)+8)
	buf = append(buf, 'I', 'I', 0x2A, 0x00)
	buf = le.AppendUint32(buf, ifd0Offset)

	// IFD0：1 个 entry，指向 ExifIFD。
	buf = le.AppendUint16(buf, 1)
	buf = appendEntry(buf, tagExifIFDPointer, typeLong, 1, exifIFDOffset)
	buf = le.AppendUint32(buf, 0)

	// ExifIFD：tag 必须升序（0x920A < 0xA405）。
	buf = le.AppendUint16(buf, uint16(entries))
	if spec.FocalDen != 0 {
		buf = appendEntry(buf, tagFocalLength, typeRational, 1, dataOffset)
	}
	if spec.With35mm {
		buf = appendEntry(buf, tagFocal35mm, typeShort, 1, uint32(spec.F35))
	}
	buf = le.AppendUint32(buf, 0)

	if spec.FocalDen != 0 {
		buf = le.AppendUint32(buf, spec.FocalNum)
		buf = le.AppendUint32(buf, spec.FocalDen)
	}
	return buf
}

func appendEntry(buf []byte, tag, typ uint16, count, value uint32) []byte {
	le := binary.LittleEndian
	buf = le.AppendUint16(buf, tag)
	buf = le.AppendUint16(buf, typ)
	buf = le.AppendUint32(buf, count)
	buf = le.AppendUint32(buf, value)
	return buf
}
