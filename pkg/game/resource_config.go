package game

import (
	"sort"
	"strings"
)

// ResourceConfig 资源清单（assets/config/resources.yaml）
//
// 格式：
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  cues:
//	    preload: true
//	    sounds:
//	      - id: SOUND_WIN
//	        path: sounds/win.wav
type ResourceConfig struct {
	Version  string                   `yaml:"version"`
	BasePath string                   `yaml:"base_path"`
	Groups   map[string]ResourceGroup `yaml:"groups"`
}

// ResourceGroup 一组资源
// Preload 为 true 的组在启动时解码，避免第一次播放卡顿
type ResourceGroup struct {
	Preload bool            `yaml:"preload"`
	Sounds  []SoundResource `yaml:"sounds"`
}

// SoundResource 一条音效：ID -> 相对 base_path 的路径（可省略扩展名，默认 .wav）
type SoundResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// preloadIDs 返回所有预加载组中的音效 ID（按组名排序，组内保持顺序）
func (c *ResourceConfig) preloadIDs() []string {
	names := make([]string, 0, len(c.Groups))
	for name, group := range c.Groups {
		if group.Preload {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var ids []string
	for _, name := range names {
		for _, sound := range c.Groups[name].Sounds {
			ids = append(ids, sound.ID)
		}
	}
	return ids
}

// buildFullPath 拼接 base_path 与相对路径
//
//	buildFullPath("assets", "sounds/win.wav")  -> "assets/sounds/win.wav"
//	buildFullPath("assets", "/sounds/win.wav") -> "assets/sounds/win.wav"
//	buildFullPath("", "sounds/win.wav")        -> "sounds/win.wav"
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	return strings.TrimSuffix(basePath, "/") + "/" + strings.TrimPrefix(relativePath, "/")
}
