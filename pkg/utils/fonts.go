package utils

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce    sync.Once
	regularFont *text.GoTextFaceSource
	boldFont    *text.GoTextFaceSource
	fontErr     error
)

// loadFonts 解析内置的 Go 字体，只执行一次
func loadFonts() {
	regularFont, fontErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if fontErr != nil {
		fontErr = fmt.Errorf("failed to load regular font: %w", fontErr)
		return
	}
	boldFont, fontErr = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if fontErr != nil {
		fontErr = fmt.Errorf("failed to load bold font: %w", fontErr)
	}
}

// NewFace 创建指定字号的常规字体
func NewFace(size float64) (*text.GoTextFace, error) {
	fontOnce.Do(loadFonts)
	if fontErr != nil {
		return nil, fontErr
	}
	return &text.GoTextFace{Source: regularFont, Size: size}, nil
}

// NewBoldFace 创建指定字号的粗体字体（标题、按钮）
func NewBoldFace(size float64) (*text.GoTextFace, error) {
	fontOnce.Do(loadFonts)
	if fontErr != nil {
		return nil, fontErr
	}
	return &text.GoTextFace{Source: boldFont, Size: size}, nil
}
