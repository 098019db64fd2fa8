// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import (
	"fmt"
	"strings"
)

// BugKind 定义虫子的种类
type BugKind int

const (
	// BugUnknown 未知虫子类型
	BugUnknown BugKind = iota
	// BugLadybug 瓢虫（干扰项）
	BugLadybug
	// BugBeetle 甲虫（干扰项）
	BugBeetle
	// BugCaterpillar 毛毛虫（干扰项）
	BugCaterpillar
	// BugAnt 蚂蚁（唯一目标）
	BugAnt
)

// String 返回虫子类型的字符串表示
func (k BugKind) String() string {
	switch k {
	case BugLadybug:
		return "Ladybug"
	case BugBeetle:
		return "Beetle"
	case BugCaterpillar:
		return "Caterpillar"
	case BugAnt:
		return "Ant"
	default:
		return "Unknown"
	}
}

// Emoji 返回虫子在终端界面中显示的字符
func (k BugKind) Emoji() string {
	switch k {
	case BugLadybug:
		return "🐞"
	case BugBeetle:
		return "🪲"
	case BugCaterpillar:
		return "🐛"
	case BugAnt:
		return "🐜"
	default:
		return "?"
	}
}

// ParseBugKind 将配置文件中的名称解析为 BugKind（不区分大小写）
func ParseBugKind(name string) (BugKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ladybug":
		return BugLadybug, nil
	case "beetle":
		return BugBeetle, nil
	case "caterpillar":
		return BugCaterpillar, nil
	case "ant":
		return BugAnt, nil
	default:
		return BugUnknown, fmt.Errorf("unknown bug kind: %q", name)
	}
}

// UnmarshalText 支持 yaml/文本形式的 BugKind
func (k *BugKind) UnmarshalText(text []byte) error {
	parsed, err := ParseBugKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalText 输出小写名称，与配置文件保持一致
func (k BugKind) MarshalText() ([]byte, error) {
	if k == BugUnknown {
		return nil, fmt.Errorf("cannot marshal unknown bug kind")
	}
	return []byte(strings.ToLower(k.String())), nil
}
