package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jhoicas/marketplace-bot/internal/application/usecase"
	"github.com/jhoicas/marketplace-bot/pkg/logger"
)

// UpdateSource origen de updates (long polling en producción).
type UpdateSource interface {
	Updates(timeout int) tgbotapi.UpdatesChannel
	Stop()
}

// Dispatcher reparte los updates: usuarios distintos en paralelo,
// los de un mismo usuario en serie y en orden.
type Dispatcher struct {
	source      UpdateSource
	handler     *Handler
	queue       *userQueue
	log         *logger.Logger
	pollTimeout int
}

// NewDispatcher construye el dispatcher. pollTimeout en segundos.
func NewDispatcher(source UpdateSource, handler *Handler, log *logger.Logger, pollTimeout int) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		source:      source,
		handler:     handler,
		queue:       newUserQueue(),
		log:         log.Component("dispatcher"),
		pollTimeout: pollTimeout,
	}
}

// Run consume updates hasta que ctx se cancela o el canal se cierra.
// Al salir espera a que terminen los updates en curso.
func (d *Dispatcher) Run(ctx context.Context) error {
	updates := d.source.Updates(d.pollTimeout)
	d.log.Info().Int("poll_timeout", d.pollTimeout).Msg("bot escuchando updates")
	for {
		select {
		case <-ctx.Done():
			d.source.Stop()
			d.log.Info().Int("draining_users", d.queue.Active()).Msg("apagando: esperando updates en curso")
			d.Wait()
			return nil
		case upd, ok := <-updates:
			if !ok {
				d.Wait()
				return nil
			}
			d.Dispatch(ctx, upd)
		}
	}
}

// Dispatch encola un update en la cola de su usuario. Updates sin remitente se ignoran.
func (d *Dispatcher) Dispatch(ctx context.Context, upd tgbotapi.Update) {
	// Los updates ya aceptados terminan aunque se esté apagando el proceso.
	ctx = context.WithoutCancel(ctx)
	switch {
	case upd.CallbackQuery != nil && upd.CallbackQuery.From != nil:
		cb := callbackFromUpdate(upd.CallbackQuery)
		d.queue.Submit(cb.From.TelegramID, func() {
			d.run(ctx, "callback", cb.From.TelegramID, cb.Data, func(ctx context.Context) error {
				return d.handler.HandleCallback(ctx, cb)
			})
		})
	case upd.Message != nil && upd.Message.From != nil && upd.Message.Chat != nil:
		m := messageFromUpdate(upd.Message)
		d.queue.Submit(m.From.TelegramID, func() {
			d.run(ctx, "message", m.From.TelegramID, "", func(ctx context.Context) error {
				return d.handler.HandleMessage(ctx, m)
			})
		})
	}
}

// Wait espera a que se procesen los updates encolados.
func (d *Dispatcher) Wait() {
	d.queue.Wait()
}

func (d *Dispatcher) run(ctx context.Context, kind string, telegramID int64, data string, fn func(context.Context) error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Interface("panic", r).
				Str("update", kind).
				Int64("telegram_id", telegramID).
				Str("callback", data).
				Msg("panic procesando update")
		}
	}()
	if err := fn(ctx); err != nil {
		d.log.Error().Err(err).Str("update", kind).Int64("telegram_id", telegramID).Str("callback", data).Msg("update con error")
		return
	}
	d.log.Debug().Str("update", kind).Int64("telegram_id", telegramID).Dur("duration", time.Since(start)).Msg("update procesado")
}

func profileFromUser(u *tgbotapi.User) usecase.TelegramProfile {
	return usecase.TelegramProfile{
		TelegramID: u.ID,
		Username:   u.UserName,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
	}
}

func messageFromUpdate(m *tgbotapi.Message) Message {
	return Message{ChatID: m.Chat.ID, From: profileFromUser(m.From), Text: m.Text}
}

func callbackFromUpdate(q *tgbotapi.CallbackQuery) Callback {
	cb := Callback{ID: q.ID, From: profileFromUser(q.From), Data: q.Data}
	if q.Message != nil && q.Message.Chat != nil {
		cb.ChatID = q.Message.Chat.ID
		cb.MessageID = q.Message.MessageID
	} else {
		// Mensaje inline sin chat: se contesta por privado.
		cb.ChatID = q.From.ID
	}
	return cb
}
