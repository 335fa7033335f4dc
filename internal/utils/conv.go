package utils

import (
	"strconv"
)

// ParseID 解析路径里的数字 ID，0 和非法值都返回 false
func ParseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
