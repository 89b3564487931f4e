package web

import "embed"

// StaticFS 扫码领取页面
//
//go:embed index.html
var StaticFS embed.FS
