// Package engine 實作冰箱食材與食譜的配對、評分與推薦排序。
// 所有函式皆為純函式：只讀取參數、不做 I/O、可安全併發呼叫。
package engine

import (
	"strconv"
	"strings"
)

// ParseQuantity 從自由格式數量字串取出數值。
// 支援純數字（"2"、"1.5"、"300g"）與簡單分數（"1/2"、"1/2컵"）。
// 無法解析（"적당량"、"約 적당히"、空字串）回傳 ok=false，不視為錯誤。
func ParseQuantity(amount string) (float64, bool) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, false
	}

	// 只出現一個 "/" 時當作分數處理，兩側取純數字子字串
	if strings.Count(amount, "/") == 1 {
		parts := strings.SplitN(amount, "/", 2)
		num, okNum := parseDigits(parts[0])
		den, okDen := parseDigits(parts[1])
		if okNum && okDen && den != 0 {
			return num / den, true
		}
	}

	// 其餘情況：去除非數字、非小數點字元後解析
	residue := stripNonNumeric(amount)
	if residue == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(residue, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// parseDigits 只保留數字字元後解析為整數值
func parseDigits(s string) (float64, bool) {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return 0, false
	}
	val, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// stripNonNumeric 去除所有非數字、非 '.' 的字元
func stripNonNumeric(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
