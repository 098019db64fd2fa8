package config

// 布局配置常量
// 逻辑分辨率按竖屏手机设计，Ebitengine 负责缩放到实际窗口/屏幕。

const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 390

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 844
)

const (
	// BugSize 虫子精灵直径（逻辑像素），点击判定半径为其一半
	BugSize float64 = 50

	// ButtonWidth 通用按钮宽度
	ButtonWidth float64 = 200

	// ButtonHeight 通用按钮高度
	ButtonHeight float64 = 60

	// TitleFontSize 标题字体大小
	TitleFontSize float64 = 32

	// BodyFontSize 正文字体大小
	BodyFontSize float64 = 20

	// SmallFontSize 小号字体大小
	SmallFontSize float64 = 16

	// PanelMargin 面板距屏幕左右边缘的距离
	PanelMargin float64 = 30
)

// 配色（RGB 十六进制）
const (
	ColorButtonHex    = 0xF3A932
	ColorPanelHex     = 0xE4C189
	ColorGrassHex     = 0x8BBF5A
	ColorSoilHex      = 0x6B8E3A
	ColorPlayAgainHex = 0x33B34D
	ColorShareHex     = 0x2F6FE4
)
