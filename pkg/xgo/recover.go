package xgo

import (
	"runtime/debug"

	"github.com/go-kratos/kratos/v2/log"
)

// RecoverFromError 协程入口 defer 使用，panic 时记录堆栈并回调
func RecoverFromError(cb func(e any)) {
	if e := recover(); e != nil {
		log.Errorf("recovered: %v\n%s", e, debug.Stack())
		if cb != nil {
			cb(e)
		}
	}
}
