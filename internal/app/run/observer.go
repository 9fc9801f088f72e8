package run

import (
	"time"

	"github.com/John-Robertt/focalstat/internal/config"
)

// Observer 用于把“运行进度/阶段信息”从核心执行流程中解耦出来。
//
// 约束：
// - run 包只负责发事件，不做任何输出（避免污染 stdout 的 JSON 契约）。
// - 本工具单线程顺序执行，Observer 不要求并发安全。
type Observer interface {
	// OnStart 在 Execute 开始时调用（应尽量早，保证用户 1 秒内看到输出）。
	OnStart(eff config.EffectiveConfig)
	// OnPhaseDone 在阶段结束时调用（scan / aggregate / write）。
	OnPhaseDone(name string, fields map[string]any, dur time.Duration)
	// OnWarning 在出现非致命问题时调用（被跳过的根目录/子目录）。
	OnWarning(msg string)
}
