package service

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHoursWindow 将交易时段字符串解析为 [open, close) 小时窗口
// 例如 "9-16" -> (9, 16)，"0-24" 表示全天交易
func ParseHoursWindow(s string) (open int, close int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid hours window format: %q", s)
	}

	open, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid open hour in %q: %w", s, err)
	}
	close, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid close hour in %q: %w", s, err)
	}

	// 窗口必须落在一天之内，且开盘早于收盘
	if open < 0 || close > 24 || open >= close {
		return 0, 0, fmt.Errorf("hours window %q out of range: want 0 <= open < close <= 24", s)
	}

	return open, close, nil
}

// FormatHoursWindow 是 ParseHoursWindow 的逆操作，用于状态展示
func FormatHoursWindow(open, close int) string {
	return fmt.Sprintf("%d-%d", open, close)
}
