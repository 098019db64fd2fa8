package game

import (
	"fmt"
	"io"
	"log"
)

// Sharer 分享出口（系统分享面板、剪贴板、日志等）
//
// 状态机只负责提供一条格式化好的消息，不关心分享结果。
type Sharer interface {
	Share(message string)
}

// ShareFunc 把普通函数适配为 Sharer
type ShareFunc func(message string)

// Share 实现 Sharer
func (f ShareFunc) Share(message string) {
	f(message)
}

// LogSharer 桌面端分享实现：把消息写到输出流并记录日志
type LogSharer struct {
	Out io.Writer // 可为 nil，只记录日志
}

// Share 实现 Sharer
func (s LogSharer) Share(message string) {
	log.Printf("[Share] %s", message)
	if s.Out != nil {
		fmt.Fprintln(s.Out, message)
	}
}
