package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/bugcatch/pkg/config"
	"github.com/decker502/bugcatch/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// pressFeedbackDuration 按钮按下后的回弹动画时长（秒）
const pressFeedbackDuration = 0.15

// Fonts 界面使用的字体
type Fonts struct {
	Title *text.GoTextFace
	Body  *text.GoTextFace
	Small *text.GoTextFace
}

// NewFonts 按布局配置创建字体
func NewFonts() (*Fonts, error) {
	title, err := utils.NewBoldFace(config.TitleFontSize)
	if err != nil {
		return nil, fmt.Errorf("title font: %w", err)
	}
	body, err := utils.NewFace(config.BodyFontSize)
	if err != nil {
		return nil, fmt.Errorf("body font: %w", err)
	}
	small, err := utils.NewFace(config.SmallFontSize)
	if err != nil {
		return nil, fmt.Errorf("small font: %w", err)
	}
	return &Fonts{Title: title, Body: body, Small: small}, nil
}

// hexColor 把 0xRRGGBB 转换为不透明颜色
func hexColor(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xFF}
}

// Button 矩形按钮
type Button struct {
	Label     string
	X, Y      float64
	W, H      float64
	Fill      color.RGBA
	TextColor color.Color

	pressed float64 // 距离上次按下的时间，<0 表示未按下
}

// newButton 创建以 cx 为水平中心的按钮
func newButton(label string, cx, y, w, h float64, fill color.RGBA, textColor color.Color) *Button {
	return &Button{
		Label:     label,
		X:         cx - w/2,
		Y:         y,
		W:         w,
		H:         h,
		Fill:      fill,
		TextColor: textColor,
		pressed:   -1,
	}
}

// Contains 点是否落在按钮内
func (b *Button) Contains(x, y float64) bool {
	return utils.InRect(x, y, b.X, b.Y, b.W, b.H)
}

// Press 记录按下，用于绘制回弹
func (b *Button) Press() {
	b.pressed = 0
}

// Reset 清除按下状态
func (b *Button) Reset() {
	b.pressed = -1
}

// Update 推进按下动画
func (b *Button) Update(dt float64) {
	if b.pressed < 0 {
		return
	}
	b.pressed += dt
	if b.pressed >= pressFeedbackDuration {
		b.pressed = -1
	}
}

// scale 返回当前绘制缩放（按下时略微缩小再回弹）
func (b *Button) scale() float64 {
	if b.pressed < 0 {
		return 1
	}
	return 0.92 + 0.08*utils.EaseOutCubic(b.pressed/pressFeedbackDuration)
}

// Draw 绘制按钮
func (b *Button) Draw(screen *ebiten.Image, face text.Face) {
	s := b.scale()
	w, h := b.W*s, b.H*s
	x, y := b.X+(b.W-w)/2, b.Y+(b.H-h)/2

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), b.Fill, true)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, color.RGBA{A: 0x60}, true)
	drawCenteredText(screen, b.Label, face, x+w/2, y+h/2, b.TextColor)
}

// drawCenteredText 以 (cx, cy) 为中心绘制单行文本
func drawCenteredText(screen *ebiten.Image, s string, face text.Face, cx, cy float64, clr color.Color) {
	if face == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

// drawTextLines 自动换行后从 (x, y) 开始逐行绘制，返回绘制后的 y
func drawTextLines(screen *ebiten.Image, s string, face *text.GoTextFace, x, y, maxWidth, lineGap float64, clr color.Color) float64 {
	if face == nil {
		return y
	}
	lineHeight := face.Size + lineGap
	for _, line := range utils.WrapText(s, face, maxWidth) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, line, face, op)
		y += lineHeight
	}
	return y
}

// drawPanel 绘制带描边的面板
func drawPanel(screen *ebiten.Image, x, y, w, h float64, fill, border color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), fill, true)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 4, border, true)
}

// drawBackground 绘制草地背景
// start 为 true 时使用开始页的颜色
func drawBackground(screen *ebiten.Image, start bool) {
	if start {
		screen.Fill(hexColor(config.ColorSoilHex))
		return
	}
	screen.Fill(hexColor(config.ColorGrassHex))

	// 草地上稀疏的深色草丛
	grass := hexColor(config.ColorSoilHex)
	for row := 0; row < 12; row++ {
		for col := 0; col < 6; col++ {
			x := float32(col*70 + (row%2)*35 + 20)
			y := float32(row*75 + 30)
			vector.StrokeLine(screen, x, y, x-4, y-10, 2, grass, true)
			vector.StrokeLine(screen, x, y, x+4, y-10, 2, grass, true)
		}
	}
}

// dimScreen 在场景上叠加半透明黑色
func dimScreen(screen *ebiten.Image, alpha uint8) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.RGBA{A: alpha}, false)
}
