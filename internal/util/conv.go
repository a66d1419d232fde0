package util

import (
	"strconv"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParseIntDefault 解析失败或为空时返回默认值
func ParseIntDefault(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// FormatUint uint 转字符串，分组 ID 使用
func FormatUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
