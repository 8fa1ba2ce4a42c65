package service

import (
	"slices"

	"petchat/internal/utils"
)

var (
	// seekingKeywords mark a shopper looking for something
	seekingKeywords = []string{"tìm", "muốn", "cần", "mua", "có bán", "find", "looking for", "want", "need", "buy"}

	careKeywords     = []string{"giặt", "bảo quản", "phơi", "wash", "care"}
	deliveryKeywords = []string{"giao hàng", "bao lâu", "phí ship", "khi nào tới", "delivery", "shipping"}

	fillerReplies   = []string{"có", "ok", "ừ", "vâng"}
	greetingReplies = []string{"hi", "chào", "hello", "xin chào"}
	thanksReplies   = []string{"cảm ơn", "thank you", "cám ơn"}
)

// categoryKeywords are the trigger words of the category chain
var categoryKeywords = utils.Keywords(categoryRules)

// IsProductInquiry reports whether text both seeks something and names a
// product category
func IsProductInquiry(text string) bool {
	return utils.ContainsAny(text, seekingKeywords) && utils.ContainsAny(text, categoryKeywords)
}

func isFiller(text string) bool {
	return slices.Contains(fillerReplies, text)
}
