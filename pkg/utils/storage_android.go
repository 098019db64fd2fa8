//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// androidDataRoot Android 应用私有数据根目录
const androidDataRoot = "/data/data"

// EnsureStorageDir 确保 Android 上 gdata 的存储目录存在并可写
// gdata 在 Android 上把数据写到 /data/data/{package}/ 下，但不会预先创建子目录，
// 目录不可写时最佳成绩会静默丢失。此函数在 gdata.Open 之前调用。
//
// 返回：
//   - error: 如果创建目录失败或目录不可写返回错误
func EnsureStorageDir() error {
	dir := GetStoragePath()
	if dir == "" {
		return fmt.Errorf("failed to detect Android package name")
	}
	savesDir := filepath.Join(dir, "saves")

	if err := os.MkdirAll(savesDir, 0755); err != nil {
		return fmt.Errorf("failed to create saves directory %s: %w", savesDir, err)
	}

	probe := filepath.Join(savesDir, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("saves directory %s is not writable: %w", savesDir, err)
	}
	return os.Remove(probe)
}

// GetStoragePath 获取 Android 存储路径，无法识别包名时返回空字符串
func GetStoragePath() string {
	// /proc/self/cmdline 的第一个参数即包名，以 NUL 结尾
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	pkg := string(bytes.TrimSpace(data))
	if pkg == "" {
		return ""
	}
	return filepath.Join(androidDataRoot, pkg)
}
