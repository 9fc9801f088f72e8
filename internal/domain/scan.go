package domain

// ScanResult 是单个候选文件的扫描结果。
// 由 exifx 读取产生，产生后不再修改；聚合进 FocalStats 后即可丢弃。
type ScanResult struct {
	// Path 是相对所属 Root 的路径（对外输出统一用相对路径，便于追溯）。
	Path string
	// Root 是该文件所属的输入根目录（绝对路径）。
	Root string

	// FocalLength 单位毫米，已四舍五入到一位小数；HasFocal=false 时无意义。
	FocalLength float64
	// HasFocal 表示是否成功提取到有效焦距（缺失/损坏/为零都算 false）。
	HasFocal bool
}
