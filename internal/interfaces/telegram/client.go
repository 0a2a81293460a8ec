package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Messenger salida del bot hacia los chats. El handler solo depende de esto.
type Messenger interface {
	Send(ctx context.Context, chatID int64, text string, kb Keyboard) error
	Edit(ctx context.Context, chatID int64, messageID int, text string, kb Keyboard) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// BotClient Messenger y fuente de updates sobre la Bot API.
// Las peticiones se arman con Params para poder enviar botones web_app.
type BotClient struct {
	api *tgbotapi.BotAPI
}

var _ Messenger = (*BotClient)(nil)

// NewBotClient valida el token contra getMe.
func NewBotClient(token string, debug bool) (*BotClient, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: conectar bot: %w", err)
	}
	api.Debug = debug
	return &BotClient{api: api}, nil
}

// Username nombre público del bot.
func (c *BotClient) Username() string {
	return c.api.Self.UserName
}

func (c *BotClient) Send(_ context.Context, chatID int64, text string, kb Keyboard) error {
	params := tgbotapi.Params{"text": text}
	params.AddNonZero64("chat_id", chatID)
	if err := addKeyboard(params, kb); err != nil {
		return err
	}
	return c.call("sendMessage", params)
}

func (c *BotClient) Edit(_ context.Context, chatID int64, messageID int, text string, kb Keyboard) error {
	params := tgbotapi.Params{"text": text}
	params.AddNonZero64("chat_id", chatID)
	params.AddNonZero("message_id", messageID)
	if err := addKeyboard(params, kb); err != nil {
		return err
	}
	return c.call("editMessageText", params)
}

func (c *BotClient) AnswerCallback(_ context.Context, callbackID, text string) error {
	params := tgbotapi.Params{"callback_query_id": callbackID}
	params.AddNonEmpty("text", text)
	return c.call("answerCallbackQuery", params)
}

// Updates abre el long polling.
func (c *BotClient) Updates(timeout int) tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeout
	return c.api.GetUpdatesChan(u)
}

// Stop corta el long polling; el canal de Updates se cierra.
func (c *BotClient) Stop() {
	c.api.StopReceivingUpdates()
}

func (c *BotClient) call(endpoint string, params tgbotapi.Params) error {
	if _, err := c.api.MakeRequest(endpoint, params); err != nil {
		return fmt.Errorf("telegram %s: %w", endpoint, err)
	}
	return nil
}

func addKeyboard(params tgbotapi.Params, kb Keyboard) error {
	if len(kb) == 0 {
		return nil
	}
	return params.AddInterface("reply_markup", kb)
}
