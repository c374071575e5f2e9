package valueobjects

import (
	"strconv"
	"strings"

	"github.com/locus-portfolio/locus-backend/internal/domain/entities"
)

// UnknownAlbumPart 目录名不符合"<年份>_<主题>"约定时的占位值
const UnknownAlbumPart = "Unknown"

// AlbumFolder 相册子目录值对象，目录名约定为"<年份>_<主题>"
type AlbumFolder struct {
	Name  string
	Year  string
	Topic string
}

// ParseAlbumFolder 解析相册子目录名
// "2023_Street_Portraits" -> {2023, Street_Portraits}；不含"_"时年份和主题都为Unknown
func ParseAlbumFolder(name string) AlbumFolder {
	parts := strings.Split(name, "_")
	if len(parts) < 2 {
		return AlbumFolder{Name: name, Year: UnknownAlbumPart, Topic: UnknownAlbumPart}
	}
	return AlbumFolder{
		Name:  name,
		Year:  parts[0],
		Topic: strings.Join(parts[1:], "_"),
	}
}

// Metadata 返回合并到资源元数据中的派生字段，category是topic的别名
func (a AlbumFolder) Metadata() map[string]any {
	return map[string]any{
		entities.MetadataKeyYear:     a.Year,
		entities.MetadataKeyTopic:    a.Topic,
		entities.MetadataKeyFolder:   a.Name,
		entities.MetadataKeyCategory: a.Topic,
	}
}

// YearValue 返回整数年份，无法解析时为0
func YearValue(year string) int {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 0
	}
	return y
}
