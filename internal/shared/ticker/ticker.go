// Package ticker は銘柄コードの正規化と検証を提供します。
package ticker

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalid は銘柄コードの形式が不正な場合に返されます。
var ErrInvalid = errors.New("invalid ticker symbol")

// 英大文字・数字に加え、"BRK-B"、"7203.T"、"^GSPC" のような区切りを許可します。
var pattern = regexp.MustCompile(`^\^?[A-Z0-9][A-Z0-9.\-]{0,14}$`)

// Normalize は前後の空白を除去して大文字化し、形式を検証します。
func Normalize(s string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if !pattern.MatchString(code) {
		return "", ErrInvalid
	}
	return code, nil
}
