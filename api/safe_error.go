package api

import (
	"galon/config"
)

// SafeErrorMessage release 模式下不向客户端返回内部错误详情
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}
