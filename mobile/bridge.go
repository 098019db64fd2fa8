// bridge.go - 原生宿主与游戏之间的桥接
//
// 此文件在所有构建中编译，便于在桌面端测试。
// 原生代码（Android SensorManager / iOS CoreMotion）通过 FeedAcceleration 推送加速度，
// 通过 SetShareHandler 注册系统分享面板。
package mobile

import (
	"log"
	"sync"

	"github.com/decker502/bugcatch/pkg/game"
)

// ShareHandler 由原生代码实现，弹出系统分享面板
type ShareHandler interface {
	Share(message string)
}

var (
	sensor = game.NewPushSource()

	shareMu      sync.Mutex
	shareHandler ShareHandler
)

// FeedAcceleration 推送一次加速度采样（单位 g）
// 可在任意线程调用
func FeedAcceleration(x, y, z float64) {
	sensor.Push(x, y, z)
}

// SetShareHandler 注册分享处理器，传 nil 取消注册
func SetShareHandler(h ShareHandler) {
	shareMu.Lock()
	shareHandler = h
	shareMu.Unlock()
}

// share 将分享文本交给原生处理器，未注册时只记录日志
func share(message string) {
	shareMu.Lock()
	h := shareHandler
	shareMu.Unlock()

	if h == nil {
		log.Printf("[Mobile] No share handler registered: %s", message)
		return
	}
	h.Share(message)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
