// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）或 mobile/embed.go。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

var (
	assetsFS    fs.FS
	initialized bool
)

// errNotInitialized 未调用 Init 时返回的错误
var errNotInitialized = fmt.Errorf("embedded package not initialized, call Init() first")

// Init 初始化资源文件系统
// 必须在 main() 开始时、任何资源加载之前调用
//
// 参数：
//   - assets: 根目录包含 assets/ 的文件系统（通常是 embed.FS，开发时也可以是 os.DirFS）
func Init(assets fs.FS) {
	assetsFS = assets
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径，并校验路径前缀
func normalize(path string) (string, error) {
	// embed.FS 使用正斜杠
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "assets/") && path != "assets" {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/')", path)
	}
	return path, nil
}

// Open 打开嵌入的文件，路径必须以 "assets/" 开头
func Open(path string) (fs.File, error) {
	if !initialized {
		return nil, errNotInitialized
	}
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return assetsFS.Open(p)
}

// ReadFile 读取嵌入的文件内容，路径必须以 "assets/" 开头
func ReadFile(path string) ([]byte, error) {
	if !initialized {
		return nil, errNotInitialized
	}
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(assetsFS, p)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配嵌入的文件，模式必须以 "assets/" 开头
func Glob(pattern string) ([]string, error) {
	if !initialized {
		return nil, errNotInitialized
	}
	p, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(assetsFS, p)
}

// assetFS 把包级函数适配为 fs.FS，供 ResourceManager 使用
type assetFS struct{}

func (assetFS) Open(name string) (fs.File, error) {
	return Open(name)
}

func (assetFS) ReadFile(name string) ([]byte, error) {
	return ReadFile(name)
}

// FS 返回嵌入资源的 fs.FS 视图
//
// 返回的文件系统在调用时才读取，因此可以在 Init 之前获取。
func FS() fs.FS {
	return assetFS{}
}
