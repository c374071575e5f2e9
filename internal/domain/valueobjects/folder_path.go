package valueobjects

import (
	"errors"
	"path"
	"strings"
)

// FolderPath 媒体服务中的目录路径值对象
// 远端命名空间始终使用"/"分隔，与本地文件系统无关，因此使用path而非filepath
type FolderPath struct {
	value string
}

// String 返回路径字符串
func (p FolderPath) String() string {
	return p.value
}

// IsEmpty 判断路径是否为空
func (p FolderPath) IsEmpty() bool {
	return p.value == ""
}

// Join 连接子目录,返回新的FolderPath
func (p FolderPath) Join(elem string) FolderPath {
	return FolderPath{value: path.Join(p.value, elem)}
}

// Base 返回最后一级目录名
func (p FolderPath) Base() string {
	return path.Base(p.value)
}

// NewFolderPath 创建目录路径值对象,进行验证和规范化
func NewFolderPath(raw string) (FolderPath, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "/")

	if raw == "" {
		return FolderPath{}, errors.New("folder path cannot be empty")
	}

	// 路径遍历检查
	for _, seg := range strings.Split(raw, "/") {
		if seg == ".." {
			return FolderPath{}, errors.New("folder path contains illegal '..' segment")
		}
	}

	if len(raw) > 1024 {
		return FolderPath{}, errors.New("folder path exceeds maximum length of 1024 bytes")
	}

	return FolderPath{value: path.Clean(raw)}, nil
}

// MustNewFolderPath 创建目录路径值对象,失败时panic(仅用于测试或常量路径)
func MustNewFolderPath(raw string) FolderPath {
	fp, err := NewFolderPath(raw)
	if err != nil {
		panic(err)
	}
	return fp
}
