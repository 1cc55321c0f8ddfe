package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultAPIBaseURL is the public Bot API endpoint. Tests point the
// client at an httptest server instead.
const DefaultAPIBaseURL = "https://api.telegram.org"

// BotClient talks to the Telegram Bot API. It implements Transport and
// additionally exposes GetUpdates long polling for the dispatcher.
type BotClient struct {
	client      *resty.Client
	pollTimeout time.Duration
}

var _ Transport = (*BotClient)(nil)

// NewBotClient builds a client for the given bot token. baseURL is
// normally DefaultAPIBaseURL.
func NewBotClient(baseURL, token string, pollTimeout time.Duration) *BotClient {
	c := resty.New().
		SetBaseURL(fmt.Sprintf("%s/bot%s", baseURL, token)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(pollTimeout + 30*time.Second)

	return &BotClient{client: c, pollTimeout: pollTimeout}
}

// apiResponse is the Bot API envelope; Result decoding is caller-specific.
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

type updatesResponse struct {
	OK          bool     `json:"ok"`
	Description string   `json:"description"`
	Result      []Update `json:"result"`
}

type sendMessageRequest struct {
	ChatID      int64        `json:"chat_id"`
	Text        string       `json:"text"`
	ParseMode   string       `json:"parse_mode,omitempty"`
	ReplyMarkup *replyMarkup `json:"reply_markup,omitempty"`
}

type editMessageRequest struct {
	ChatID      int64        `json:"chat_id"`
	MessageID   int64        `json:"message_id"`
	Text        string       `json:"text"`
	ParseMode   string       `json:"parse_mode,omitempty"`
	ReplyMarkup *replyMarkup `json:"reply_markup,omitempty"`
}

type deleteMessageRequest struct {
	ChatID    int64 `json:"chat_id"`
	MessageID int64 `json:"message_id"`
}

type getUpdatesRequest struct {
	Offset  int64 `json:"offset,omitempty"`
	Timeout int64 `json:"timeout,omitempty"`
}

type answerCallbackRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
}

type replyMarkup struct {
	InlineKeyboard InlineKeyboard `json:"inline_keyboard"`
}

func markupFor(opts *SendOptions) *replyMarkup {
	if opts == nil || opts.Keyboard == nil {
		return nil
	}
	return &replyMarkup{InlineKeyboard: opts.Keyboard}
}

func parseModeFor(opts *SendOptions) string {
	if opts == nil {
		return ""
	}
	return opts.ParseMode
}

func (b *BotClient) call(ctx context.Context, method string, body any) error {
	var out apiResponse
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post("/" + method)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	if resp.StatusCode() != http.StatusOK || !out.OK {
		return fmt.Errorf("telegram %s: status %d: %s", method, resp.StatusCode(), out.Description)
	}
	return nil
}

func (b *BotClient) SendMessage(ctx context.Context, chatID int64, text string, opts *SendOptions) error {
	return b.call(ctx, "sendMessage", sendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   parseModeFor(opts),
		ReplyMarkup: markupFor(opts),
	})
}

func (b *BotClient) EditMessageText(ctx context.Context, chatID, messageID int64, text string, opts *SendOptions) error {
	return b.call(ctx, "editMessageText", editMessageRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   parseModeFor(opts),
		ReplyMarkup: markupFor(opts),
	})
}

func (b *BotClient) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	return b.call(ctx, "deleteMessage", deleteMessageRequest{ChatID: chatID, MessageID: messageID})
}

// AnswerCallbackQuery acknowledges a button press so the client stops
// showing a progress indicator.
func (b *BotClient) AnswerCallbackQuery(ctx context.Context, callbackID string) error {
	return b.call(ctx, "answerCallbackQuery", answerCallbackRequest{CallbackQueryID: callbackID})
}

// GetUpdates long-polls for updates with IDs >= offset.
func (b *BotClient) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	var out updatesResponse
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(getUpdatesRequest{Offset: offset, Timeout: int64(b.pollTimeout.Seconds())}).
		SetResult(&out).
		SetError(&out).
		Post("/getUpdates")
	if err != nil {
		return nil, fmt.Errorf("telegram getUpdates: %w", err)
	}
	if resp.StatusCode() != http.StatusOK || !out.OK {
		return nil, fmt.Errorf("telegram getUpdates: status %d: %s", resp.StatusCode(), out.Description)
	}
	return out.Result, nil
}
