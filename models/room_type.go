package models

import (
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

type RoomType string

const (
	RoomTypeSingle RoomType = "single"
	RoomTypeDouble RoomType = "double"
	RoomTypeTwin   RoomType = "twin"
	RoomTypeDeluxe RoomType = "deluxe"
	RoomTypeSuite  RoomType = "suite"
	RoomTypeFamily RoomType = "family"
)

var RoomTypes = []RoomType{
	RoomTypeSingle, RoomTypeDouble, RoomTypeTwin, RoomTypeDeluxe, RoomTypeSuite, RoomTypeFamily,
}

// alias từ khóa người dùng hay nhập
var roomTypeAliases = map[string]RoomType{
	"don":            RoomTypeSingle,
	"phong don":      RoomTypeSingle,
	"doi":            RoomTypeDouble,
	"phong doi":      RoomTypeDouble,
	"giuong doi":     RoomTypeDouble,
	"hai giuong":     RoomTypeTwin,
	"cao cap":        RoomTypeDeluxe,
	"thuong gia":     RoomTypeSuite,
	"gia dinh":       RoomTypeFamily,
	"phong gia dinh": RoomTypeFamily,
}

var roomTypeMatcher = newRoomTypeMatcher()

func newRoomTypeMatcher() *closestmatch.ClosestMatch {
	keywords := make([]string, 0, len(RoomTypes)+len(roomTypeAliases))
	for _, t := range RoomTypes {
		keywords = append(keywords, string(t))
	}
	for alias := range roomTypeAliases {
		keywords = append(keywords, alias)
	}
	return closestmatch.New(keywords, []int{2, 3})
}

func (t RoomType) Valid() bool {
	for _, known := range RoomTypes {
		if t == known {
			return true
		}
	}
	return false
}

func normalizeInput(input string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(input)))
}

// ParseRoomType nhận cả lỗi chính tả và tiếng Việt không dấu/có dấu.
// Returns false when nothing is close enough.
func ParseRoomType(input string) (RoomType, bool) {
	normalized := normalizeInput(input)
	if normalized == "" {
		return "", false
	}
	if t := RoomType(normalized); t.Valid() {
		return t, true
	}
	if t, ok := roomTypeAliases[normalized]; ok {
		return t, true
	}

	candidate := roomTypeMatcher.Closest(normalized)
	if candidate == "" || similarity(normalized, candidate) < 0.6 {
		return "", false
	}
	if t, ok := roomTypeAliases[candidate]; ok {
		return t, true
	}
	return RoomType(candidate), true
}

func similarity(a, b string) float64 {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	return 1 - float64(dist)/float64(maxLen)
}
