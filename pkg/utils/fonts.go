package utils

import (
	"bytes"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// fontSource 延迟解析的内置字体源
type fontSource struct {
	once sync.Once
	name string
	ttf  []byte
	src  *text.GoTextFaceSource
}

func (f *fontSource) face(size float64) *text.GoTextFace {
	f.once.Do(func() {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(f.ttf))
		if err != nil {
			log.Printf("[Fonts] Warning: failed to parse %s font: %v", f.name, err)
			return
		}
		f.src = src
	})
	if f.src == nil {
		return nil
	}
	return &text.GoTextFace{
		Source: f.src,
		Size:   size,
	}
}

var (
	regularFont = &fontSource{name: "regular", ttf: goregular.TTF}
	boldFont    = &fontSource{name: "bold", ttf: gobold.TTF}
)

// DefaultFace 返回内置 Go Regular 字体的指定字号
// 字体源只解析一次；解析失败时返回 nil，调用方跳过文字绘制
func DefaultFace(size float64) *text.GoTextFace {
	return regularFont.face(size)
}

// BoldFace 返回内置 Go Bold 字体（说话人、标题）
func BoldFace(size float64) *text.GoTextFace {
	return boldFont.face(size)
}
