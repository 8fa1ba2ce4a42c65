package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"petchat/internal/config"
	"petchat/internal/logger"
	"petchat/internal/model"
	"petchat/internal/utils"
)

// Fixed replies
const (
	ClarifyPrompt   = "Dạ, bạn muốn tìm sản phẩm nào cho bé nhà mình nhỉ? Mình có áo, váy, quần cho chó và mèo, giá từ 150k-300k! 😊"
	GreetingReply   = "Chào bạn! Mình là trợ lý tư vấn quần áo thú cưng đây. Bạn muốn tìm sản phẩm nào cho bé nhà mình nhỉ? 😊"
	ThanksReply     = "Không có gì đâu bạn! Nếu cần thêm gì, cứ nói với mình nhé! 😄"
	EmptyInputReply = "Bạn chưa nhập tin nhắn. Hãy cho mình biết bạn cần tìm gì nhé!"

	productListFormat = "Dạ, shop có %s. Bạn muốn mình tư vấn thêm về mẫu nào không? 😊"
	notFoundFormat    = "Xin lỗi bạn nha, hiện tại shop chưa có %s phù hợp. Bạn thử tìm màu hoặc size khác xem, mình sẵn sàng tư vấn thêm! 😊"

	carePromptFormat     = "Hướng dẫn ngắn gọn cách bảo quản %s, trả lời tự nhiên như nhân viên bán hàng."
	careFallback         = "Nên giặt tay với nước mát, tránh chất tẩy mạnh và phơi nơi thoáng mát để giữ form quần áo nhé! 😊"
	deliveryPromptFormat = "Thông báo thời gian giao hàng và phí ship%s, trả lời tự nhiên như nhân viên bán hàng."
	deliveryFallback     = "Bạn ở %s thì hàng sẽ tới trong 1-2 ngày, phí ship 30k, miễn phí cho đơn từ 500k nha! 😊"
)

// ComposerOptions selects how care and delivery questions are answered
type ComposerOptions struct {
	Mode   string // config.GeneratorModeCanned or config.GeneratorModeGenerate
	Params GenerationParams
}

// ResponseComposer routes a message through the response chain. The first
// branch that applies produces the reply:
//
//  1. short or filler input gets the clarifying prompt
//  2. a matched intent template
//  3. exact greetings and thanks
//  4. a product inquiry lists matching products
//  5. care questions
//  6. delivery questions
//  7. everything else lists matching products
type ResponseComposer struct {
	catalog   *model.Catalog
	matcher   *IntentMatcher
	extractor *AttributeExtractor
	picker    Picker
	generator Generator
	opts      ComposerOptions
	log       *logger.Logger
}

// NewResponseComposer creates a composer. generator may be nil, in which case
// care and delivery questions always get canned answers.
func NewResponseComposer(
	catalog *model.Catalog,
	matcher *IntentMatcher,
	extractor *AttributeExtractor,
	picker Picker,
	generator Generator,
	opts ComposerOptions,
	log *logger.Logger,
) *ResponseComposer {
	if log == nil {
		log = logger.Nop()
	}
	return &ResponseComposer{
		catalog:   catalog,
		matcher:   matcher,
		extractor: extractor,
		picker:    picker,
		generator: generator,
		opts:      opts,
		log:       log,
	}
}

// Respond returns only the reply text
func (c *ResponseComposer) Respond(ctx context.Context, input string, history []string) string {
	return c.Compose(ctx, input, history).Text
}

// Compose produces the reply for one message given the previous turns
func (c *ResponseComposer) Compose(ctx context.Context, input string, history []string) *model.Reply {
	input = utils.Normalize(input)

	if utils.RuneLen(input) <= 3 || isFiller(input) {
		return &model.Reply{Text: ClarifyPrompt, Route: model.RouteClarify}
	}

	attrs := c.extractor.Extract(input)

	if match, ok := c.matcher.Match(input, history); ok {
		return &model.Reply{
			Text:       match.Response,
			Route:      model.RouteIntent,
			IntentID:   match.IntentID,
			Attributes: attrs,
		}
	}

	if slices.Contains(greetingReplies, input) {
		return &model.Reply{Text: GreetingReply, Route: model.RouteSmallTalk, Attributes: attrs}
	}
	if slices.Contains(thanksReplies, input) {
		return &model.Reply{Text: ThanksReply, Route: model.RouteSmallTalk, Attributes: attrs}
	}

	if IsProductInquiry(input) {
		return c.productReply(attrs, model.RouteProductInquiry)
	}

	if utils.ContainsAny(input, careKeywords) {
		subject := "quần áo thú cưng"
		if attrs.Category != nil {
			subject = string(*attrs.Category)
		}
		prompt := fmt.Sprintf(carePromptFormat, subject)
		text, generated := c.answer(ctx, model.IntentCareInstructions, prompt, careFallback, attrs)
		return &model.Reply{
			Text:       text,
			Route:      model.RouteCare,
			IntentID:   model.IntentCareInstructions,
			Attributes: attrs,
			Generated:  generated,
		}
	}

	if utils.ContainsAny(input, deliveryKeywords) {
		where, area := "", "khu vực của bạn"
		if attrs.Location != nil {
			where = " cho " + string(*attrs.Location)
			area = string(*attrs.Location)
		}
		prompt := fmt.Sprintf(deliveryPromptFormat, where)
		text, generated := c.answer(ctx, model.IntentDeliveryInfo, prompt, fmt.Sprintf(deliveryFallback, area), attrs)
		return &model.Reply{
			Text:       text,
			Route:      model.RouteDelivery,
			IntentID:   model.IntentDeliveryInfo,
			Attributes: attrs,
			Generated:  generated,
		}
	}

	return c.productReply(attrs, model.RouteCatalog)
}

// answer returns a canned response for intentID, or a generated one in
// generate mode. Any generation failure falls back to the canned sentence.
func (c *ResponseComposer) answer(ctx context.Context, intentID, prompt, fallback string, attrs model.ExtractedAttributes) (string, bool) {
	if c.opts.Mode != config.GeneratorModeGenerate || c.generator == nil {
		if intent, ok := c.catalog.Intent(intentID); ok && len(intent.Responses) > 0 {
			return FillTemplate(choose(c.picker, intent.Responses), attrs), false
		}
		return fallback, false
	}

	out, err := c.generator.Generate(ctx, prompt, c.opts.Params)
	if err != nil {
		c.log.Warn("generation failed, using canned reply", "intent", intentID, "error", err)
		return fallback, false
	}
	if text := CleanGeneration(out, prompt); text != "" {
		return text, true
	}
	return fallback, false
}

func (c *ResponseComposer) productReply(attrs model.ExtractedAttributes, route model.Route) *model.Reply {
	products := FilterProducts(c.catalog.Products, attrs)
	reply := &model.Reply{Route: route, Attributes: attrs, Products: products}
	if route == model.RouteProductInquiry {
		reply.IntentID = model.IntentInquireProduct
	}
	if len(products) == 0 {
		reply.Text = fmt.Sprintf(notFoundFormat, describeRequest(attrs))
		return reply
	}
	reply.Text = fmt.Sprintf(productListFormat, formatProducts(products))
	return reply
}

func formatProducts(products []model.Product) string {
	items := make([]string, 0, len(products))
	for _, p := range products {
		items = append(items, fmt.Sprintf("%s (Giá: %d VNĐ, Màu: %s)", p.Name, p.Price, p.Color))
	}
	return strings.Join(items, ", ")
}

// describeRequest echoes the requested attributes, e.g.
// "áo cho chó màu đỏ size M giá dưới 200000 VNĐ"
func describeRequest(attrs model.ExtractedAttributes) string {
	var b strings.Builder
	if attrs.Category != nil {
		b.WriteString(string(*attrs.Category))
	} else {
		b.WriteString("sản phẩm")
	}
	if attrs.PetType != nil {
		b.WriteString(" cho " + string(*attrs.PetType))
	}
	if attrs.Color != nil {
		b.WriteString(" màu " + *attrs.Color)
	}
	if attrs.Size != nil {
		b.WriteString(" size " + string(*attrs.Size))
	}
	if attrs.Material != nil {
		b.WriteString(" chất liệu " + string(*attrs.Material))
	}
	if attrs.PriceMax != nil {
		fmt.Fprintf(&b, " giá dưới %d VNĐ", *attrs.PriceMax)
	}
	return b.String()
}
