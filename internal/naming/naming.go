// Package naming derives product names and numeric product codes from master data.
package naming

import (
	"fmt"
	"regexp"
	"strings"
)

// Compose replaces every literal occurrence of oldFragment in fullName with
// newFragment. Names that do not contain oldFragment come back unchanged.
func Compose(fullName, oldFragment, newFragment string) string {
	if oldFragment == "" || oldFragment == newFragment {
		return fullName
	}
	return strings.ReplaceAll(fullName, oldFragment, newFragment)
}

// Join builds a display name from its parts, skipping empty ones.
func Join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// Checksum weights digits 1,3,1,3... from the left and returns the digit that
// completes the sum to a multiple of ten. Non-digits count as zero.
func Checksum(code string) int {
	sum := 0
	for i, r := range code {
		if r < '0' || r > '9' {
			continue
		}
		d := int(r - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}
	return (10 - sum%10) % 10
}

// JacketCode is the 13 digit code of a stock/color good.
func JacketCode(stockCode, colorCode string) string {
	base := strings.TrimSpace(stockCode+colorCode) + "0000000"
	return fmt.Sprintf("%s%d", base, Checksum(base))
}

var afterDot = regexp.MustCompile(`\.(\d{1,3})`)

// AfterDotDigits returns the digits that follow the first dot of a product
// code, or "" when there are none.
func AfterDotDigits(productCode string) string {
	m := afterDot.FindStringSubmatch(productCode)
	if m == nil {
		return ""
	}
	return m[1]
}

// RemainingBarcode builds the barcode of a remaining assortment good:
// "000", color code (2), position number (4), digits after the dot of the
// product code (3) and the checksum.
func RemainingBarcode(colorCode string, number int, productCode string) string {
	var b strings.Builder
	b.WriteString("000")
	b.WriteString(fixed(colorCode, 2))
	b.WriteString(fixed(fmt.Sprint(number), 4))
	b.WriteString(fixed(AfterDotDigits(productCode), 3))
	code := b.String()
	return fmt.Sprintf("%s%d", code, Checksum(code))
}

// fixed left pads s with zeros to n characters and cuts anything longer.
func fixed(s string, n int) string {
	if len(s) < n {
		s = strings.Repeat("0", n-len(s)) + s
	}
	return s[:n]
}
