// Package telegram is the chat transport boundary. Handlers consume the
// Transport interface; BotClient implements it against the Telegram Bot
// API over HTTP.
package telegram

import "context"

// InlineKeyboardButton is one button of an inline keyboard. CallbackData
// is the opaque token delivered back when the button is pressed.
type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
}

// InlineKeyboard is rows of buttons.
type InlineKeyboard [][]InlineKeyboardButton

// SendOptions carries the optional message attributes the bot uses.
type SendOptions struct {
	ParseMode string
	Keyboard  InlineKeyboard
}

// User identifies the sender of an update.
type User struct {
	ID int64 `json:"id"`
}

// Chat identifies the conversation an update belongs to.
type Chat struct {
	ID int64 `json:"id"`
}

// Message is an inbound or referenced chat message.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

// CallbackQuery is an inline keyboard button press.
type CallbackQuery struct {
	ID      string   `json:"id"`
	From    User     `json:"from"`
	Message *Message `json:"message"`
	Data    string   `json:"data"`
}

// Update is one element of the Bot API event stream.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
}

// ChatID returns the chat the update belongs to, or 0 when it carries
// neither a message nor a callback with a message.
func (u *Update) ChatID() int64 {
	switch {
	case u.Message != nil:
		return u.Message.Chat.ID
	case u.CallbackQuery != nil && u.CallbackQuery.Message != nil:
		return u.CallbackQuery.Message.Chat.ID
	default:
		return 0
	}
}

// Transport is the outbound side of the chat boundary.
type Transport interface {
	// SendMessage posts a new message to the chat.
	SendMessage(ctx context.Context, chatID int64, text string, opts *SendOptions) error

	// EditMessageText replaces the text (and keyboard) of an existing message.
	EditMessageText(ctx context.Context, chatID, messageID int64, text string, opts *SendOptions) error

	// DeleteMessage removes a message from the chat.
	DeleteMessage(ctx context.Context, chatID, messageID int64) error

	// AnswerCallbackQuery acknowledges a pressed inline button.
	AnswerCallbackQuery(ctx context.Context, callbackID string) error
}
