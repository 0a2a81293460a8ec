// Package telegram es la capa de presentación del bot: comandos, callbacks inline,
// teclados y textos. La lógica vive en los casos de uso; aquí solo se traduce.
package telegram

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/marketplace-bot/internal/application/access"
	"github.com/jhoicas/marketplace-bot/internal/application/seller"
	"github.com/jhoicas/marketplace-bot/internal/application/usecase"
	"github.com/jhoicas/marketplace-bot/internal/domain"
	"github.com/jhoicas/marketplace-bot/internal/domain/conversation"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
	"github.com/jhoicas/marketplace-bot/pkg/config"
	"github.com/jhoicas/marketplace-bot/pkg/logger"
	"github.com/jhoicas/marketplace-bot/pkg/money"
)

// Cantidad de productos por pantalla del bot.
const screenPageSize = 20

var (
	adminRoles  = access.Roles(entity.RoleAdmin)
	sellerRoles = access.Roles(entity.RoleSeller)
)

// Message mensaje de texto o comando entrante.
type Message struct {
	ChatID int64
	From   usecase.TelegramProfile
	Text   string
}

// Callback pulsación de un botón inline.
type Callback struct {
	ID        string
	ChatID    int64
	MessageID int
	From      usecase.TelegramProfile
	Data      string
}

// screen contenido con el que se reemplaza el mensaje del botón pulsado.
type screen struct {
	text string
	kb   Keyboard
}

type callbackFunc func(ctx context.Context, cb Callback, arg string) (*screen, error)

// route callback registrado. forbidden es el texto para ErrForbidden en esa acción.
type route struct {
	fn        callbackFunc
	forbidden string
}

// HandlerDeps dependencias del handler del bot.
type HandlerDeps struct {
	UserUC         *usecase.UserUseCase
	RegistrationUC *seller.RegistrationUseCase
	ApprovalUC     *seller.ApprovalUseCase
	ProductUC      *usecase.ProductUseCase
	CartUC         *usecase.CartUseCase
	FavoriteUC     *usecase.FavoriteUseCase
	Authorizer     *access.Authorizer
	Messenger      Messenger
	Money          *money.Formatter
	Config         config.TelegramConfig
	Log            *logger.Logger
}

// Handler traduce updates de Telegram a casos de uso y respuestas.
type Handler struct {
	users     *usecase.UserUseCase
	reg       *seller.RegistrationUseCase
	approval  *seller.ApprovalUseCase
	products  *usecase.ProductUseCase
	cart      *usecase.CartUseCase
	favorites *usecase.FavoriteUseCase
	authz     *access.Authorizer
	msg       Messenger
	money     *money.Formatter
	cfg       config.TelegramConfig
	log       *logger.Logger

	exact    map[string]route
	prefixed map[string]route
}

// NewHandler construye el handler y su tabla de callbacks.
func NewHandler(d HandlerDeps) *Handler {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	h := &Handler{
		users:     d.UserUC,
		reg:       d.RegistrationUC,
		approval:  d.ApprovalUC,
		products:  d.ProductUC,
		cart:      d.CartUC,
		favorites: d.FavoriteUC,
		authz:     d.Authorizer,
		msg:       d.Messenger,
		money:     d.Money,
		cfg:       d.Config,
		log:       log.Component("telegram"),
	}
	h.exact = map[string]route{
		cbMainMenu:           {fn: h.mainMenu},
		cbCancelRegistration: {fn: h.cancelRegistration},
		cbProfile:            {fn: h.profile},
		cbBecomeSeller:       {fn: h.becomeSeller, forbidden: textAlreadySeller},
		cbFavorites:          {fn: h.showFavorites},
		cbCart:               {fn: h.showCart},
		cbOrderHistory:       {fn: h.stub(titleOrderHistory)},
		cbRecommendations:    {fn: h.stub(titleRecommendations)},
		cbMyProducts:         {fn: h.myProducts, forbidden: textNotSeller},
		cbSalesStats:         {fn: h.salesStats, forbidden: textNotSeller},
		cbAdminSellers:       {fn: h.adminSellers, forbidden: textNotAdmin},
		cbAdminProducts:      {fn: h.adminProducts, forbidden: textNotAdmin},
		cbAdminOrders:        {fn: h.adminOrders, forbidden: textNotAdmin},
	}
	h.prefixed = map[string]route{
		cbReviewPrefix:  {fn: h.reviewApplication, forbidden: textNotAdmin},
		cbApprovePrefix: {fn: h.approve, forbidden: textNotAdmin},
		cbRejectPrefix:  {fn: h.reject, forbidden: textNotAdmin},
	}
	return h
}

// ─── mensajes ────────────────────────────────────────────────────────────────

// HandleMessage atiende comandos y, durante el registro de vendedor, las respuestas de texto.
// Los errores de dominio se contestan al usuario; solo se devuelven fallos de transporte o internos.
func (h *Handler) HandleMessage(ctx context.Context, m Message) error {
	switch command(m.Text) {
	case "start":
		return h.start(ctx, m)
	case "cancel":
		return h.cancelCommand(ctx, m)
	case "skip":
		return h.skip(ctx, m)
	}
	return h.text(ctx, m)
}

// command devuelve el nombre del comando ("/start@bot arg" → "start") o "".
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	name := strings.Fields(text[1:])
	if len(name) == 0 {
		return ""
	}
	cmd, _, _ := strings.Cut(name[0], "@")
	return strings.ToLower(cmd)
}

// start registra o refresca al usuario y muestra el menú de su rol. No toca el diálogo en curso.
func (h *Handler) start(ctx context.Context, m Message) error {
	user, err := h.users.EnsureUser(ctx, m.From, h.cfg.IsAdmin(m.From.TelegramID))
	if err != nil {
		return h.replyError(ctx, m.ChatID, err, "")
	}
	return h.msg.Send(ctx, m.ChatID, welcomeText(m.From.FirstName), h.menuFor(user.Role))
}

func (h *Handler) cancelCommand(ctx context.Context, m Message) error {
	state, err := h.reg.State(ctx, m.From.TelegramID)
	if err != nil {
		return h.replyError(ctx, m.ChatID, err, "")
	}
	if state == conversation.StateIdle {
		return h.msg.Send(ctx, m.ChatID, textNothingToCancel, nil)
	}
	if err := h.reg.Cancel(ctx, m.From.TelegramID); err != nil {
		return h.replyError(ctx, m.ChatID, err, "")
	}
	return h.msg.Send(ctx, m.ChatID, textCancelled, MainMenu(h.cfg.WebAppURL))
}

// skip solo vale en el paso del ИИН: equivale a "no informado".
func (h *Handler) skip(ctx context.Context, m Message) error {
	state, err := h.reg.State(ctx, m.From.TelegramID)
	if err != nil {
		return h.replyError(ctx, m.ChatID, err, "")
	}
	switch state {
	case conversation.StateAwaitingTaxID:
		return h.submitStep(ctx, m, "")
	case conversation.StateIdle:
		return h.text(ctx, m)
	default:
		return h.msg.Send(ctx, m.ChatID, textCannotSkip, RegistrationKeyboard())
	}
}

func (h *Handler) text(ctx context.Context, m Message) error {
	state, err := h.reg.State(ctx, m.From.TelegramID)
	if err != nil {
		return h.replyError(ctx, m.ChatID, err, "")
	}
	if state != conversation.StateIdle {
		// Stickers, fotos y notas de voz llegan sin texto: no avanzan el paso.
		if m.Text == "" {
			return h.msg.Send(ctx, m.ChatID, textSendText, RegistrationKeyboard())
		}
		return h.submitStep(ctx, m, m.Text)
	}
	role, err := h.authz.GetRole(ctx, m.From.TelegramID)
	if err != nil {
		return h.replyError(ctx, m.ChatID, err, "")
	}
	return h.msg.Send(ctx, m.ChatID, textChooseAction, h.menuFor(role))
}

func (h *Handler) submitStep(ctx context.Context, m Message, text string) error {
	res, err := h.reg.SubmitStep(ctx, m.From.TelegramID, text)
	if err != nil {
		return h.replyError(ctx, m.ChatID, err, textAlreadySeller)
	}
	switch res.State {
	case conversation.StateAwaitingTaxID:
		return h.msg.Send(ctx, m.ChatID, textAskTaxID, RegistrationKeyboard())
	case conversation.StateAwaitingDescription:
		return h.msg.Send(ctx, m.ChatID, textAskDescription, RegistrationKeyboard())
	}
	if err := h.msg.Send(ctx, m.ChatID, textSubmitted, MainMenu(h.cfg.WebAppURL)); err != nil {
		return err
	}
	h.notifyAdmins(ctx, res.Application)
	return nil
}

// notifyAdmins avisa a los admins configurados; un fallo de envío no invalida la solicitud.
func (h *Handler) notifyAdmins(ctx context.Context, app *entity.SellerApplication) {
	if app == nil {
		return
	}
	for _, adminID := range h.cfg.AdminIDs {
		if err := h.msg.Send(ctx, adminID, newApplicationText(app), ReviewKeyboard(app.ID)); err != nil {
			h.log.Warn().Err(err).Int64("telegram_id", adminID).Str("application_id", app.ID).Msg("no se pudo notificar al admin")
		}
	}
}

// ─── callbacks ───────────────────────────────────────────────────────────────

// HandleCallback enruta el callback_data, reemplaza el mensaje con la pantalla resultante
// y siempre responde el callback (si no, Telegram deja el botón "cargando").
func (h *Handler) HandleCallback(ctx context.Context, cb Callback) error {
	r, arg, ok := h.lookup(cb.Data)
	if !ok {
		return h.msg.AnswerCallback(ctx, cb.ID, textUnknownAction)
	}
	sc, err := r.fn(ctx, cb, arg)
	if err != nil {
		return h.msg.AnswerCallback(ctx, cb.ID, h.errorText(err, r.forbidden, cb.Data))
	}
	if sc != nil {
		if err := h.msg.Edit(ctx, cb.ChatID, cb.MessageID, sc.text, sc.kb); err != nil {
			h.log.Warn().Err(err).Str("callback", cb.Data).Msg("no se pudo editar el mensaje")
			if err := h.msg.Send(ctx, cb.ChatID, sc.text, sc.kb); err != nil {
				return err
			}
		}
	}
	return h.msg.AnswerCallback(ctx, cb.ID, "")
}

func (h *Handler) lookup(data string) (route, string, bool) {
	if r, ok := h.exact[data]; ok {
		return r, "", true
	}
	for prefix, r := range h.prefixed {
		if arg, ok := strings.CutPrefix(data, prefix); ok && arg != "" {
			return r, arg, true
		}
	}
	return route{}, "", false
}

// mainMenu abandona cualquier registro en curso y muestra el menú del rol.
func (h *Handler) mainMenu(ctx context.Context, cb Callback, _ string) (*screen, error) {
	if err := h.reg.Cancel(ctx, cb.From.TelegramID); err != nil {
		return nil, err
	}
	role, err := h.authz.GetRole(ctx, cb.From.TelegramID)
	if err != nil && !errors.Is(err, domain.ErrNotRegistered) {
		return nil, err
	}
	if role == entity.RoleAdmin {
		return &screen{textAdminMainMenu, AdminMenu()}, nil
	}
	return &screen{textMainMenu, MainMenu(h.cfg.WebAppURL)}, nil
}

func (h *Handler) cancelRegistration(ctx context.Context, cb Callback, arg string) (*screen, error) {
	sc, err := h.mainMenu(ctx, cb, arg)
	if err != nil {
		return nil, err
	}
	sc.text = textCancelled + "\n\n" + sc.text
	return sc, nil
}

func (h *Handler) profile(ctx context.Context, cb Callback, _ string) (*screen, error) {
	user, err := h.authz.CurrentUser(ctx, cb.From.TelegramID)
	if err != nil {
		return nil, err
	}
	return &screen{profileText(user), ProfileMenu(user.Role)}, nil
}

func (h *Handler) becomeSeller(ctx context.Context, cb Callback, _ string) (*screen, error) {
	res, err := h.reg.Start(ctx, cb.From.TelegramID)
	if err != nil {
		return nil, err
	}
	if res.Pending != nil {
		return &screen{textPendingExists, BackKeyboard()}, nil
	}
	return &screen{textAskCompanyName, RegistrationKeyboard()}, nil
}

func (h *Handler) showFavorites(ctx context.Context, cb Callback, _ string) (*screen, error) {
	favs, err := h.favorites.List(ctx, cb.From.TelegramID)
	if err != nil {
		return nil, err
	}
	return &screen{favoritesText(favs, h.money), BackKeyboard()}, nil
}

func (h *Handler) showCart(ctx context.Context, cb Callback, _ string) (*screen, error) {
	cart, err := h.cart.Get(ctx, cb.From.TelegramID)
	if err != nil {
		return nil, err
	}
	return &screen{cartText(cart, h.money), BackKeyboard()}, nil
}

func (h *Handler) myProducts(ctx context.Context, cb Callback, _ string) (*screen, error) {
	list, err := h.products.ListMine(ctx, cb.From.TelegramID, screenPageSize, 0)
	if err != nil {
		return nil, err
	}
	return &screen{myProductsText(list, h.money), BackKeyboard()}, nil
}

func (h *Handler) salesStats(ctx context.Context, cb Callback, _ string) (*screen, error) {
	if _, err := h.authz.Require(ctx, cb.From.TelegramID, sellerRoles); err != nil {
		return nil, err
	}
	return &screen{stubText(titleSalesStats), BackKeyboard()}, nil
}

func (h *Handler) stub(title string) callbackFunc {
	return func(context.Context, Callback, string) (*screen, error) {
		return &screen{stubText(title), BackKeyboard()}, nil
	}
}

// ─── administración ──────────────────────────────────────────────────────────

func (h *Handler) adminSellers(ctx context.Context, cb Callback, _ string) (*screen, error) {
	apps, err := h.approval.ListPending(ctx, cb.From.TelegramID)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return &screen{textNoPending, AdminMenu()}, nil
	}
	return &screen{pendingListText(apps), PendingListKeyboard(apps)}, nil
}

func (h *Handler) reviewApplication(ctx context.Context, cb Callback, id string) (*screen, error) {
	app, err := h.approval.Get(ctx, cb.From.TelegramID, id)
	if err != nil {
		return nil, err
	}
	if !app.IsPending() {
		return nil, domain.ErrApplicationAlreadyProcessed
	}
	return &screen{applicationText(app), ReviewKeyboard(app.ID)}, nil
}

func (h *Handler) approve(ctx context.Context, cb Callback, id string) (*screen, error) {
	app, err := h.approval.Approve(ctx, cb.From.TelegramID, id)
	if err != nil {
		return nil, err
	}
	h.log.Info().Int64("telegram_id", cb.From.TelegramID).Str("application_id", app.ID).Msg("solicitud de vendedor aprobada")
	h.notifyApplicant(ctx, app, textApplicantApproved)
	return &screen{approvedText(app), AdminMenu()}, nil
}

func (h *Handler) reject(ctx context.Context, cb Callback, id string) (*screen, error) {
	app, err := h.approval.Reject(ctx, cb.From.TelegramID, id)
	if err != nil {
		return nil, err
	}
	h.log.Info().Int64("telegram_id", cb.From.TelegramID).Str("application_id", app.ID).Msg("solicitud de vendedor rechazada")
	h.notifyApplicant(ctx, app, textApplicantRejected)
	return &screen{rejectedText(app), AdminMenu()}, nil
}

func (h *Handler) notifyApplicant(ctx context.Context, app *entity.SellerApplication, text string) {
	user, err := h.users.GetByID(ctx, app.UserID)
	if err == nil {
		err = h.msg.Send(ctx, user.TelegramID, text, nil)
	}
	if err != nil {
		h.log.Warn().Err(err).Str("application_id", app.ID).Msg("no se pudo notificar al solicitante")
	}
}

func (h *Handler) adminProducts(ctx context.Context, cb Callback, _ string) (*screen, error) {
	if _, err := h.authz.Require(ctx, cb.From.TelegramID, adminRoles); err != nil {
		return nil, err
	}
	cat, err := h.products.Catalog(ctx, screenPageSize, 0)
	if err != nil {
		return nil, err
	}
	return &screen{catalogText("📦 Все товары", cat, h.money), AdminMenu()}, nil
}

func (h *Handler) adminOrders(ctx context.Context, cb Callback, _ string) (*screen, error) {
	if _, err := h.authz.Require(ctx, cb.From.TelegramID, adminRoles); err != nil {
		return nil, err
	}
	return &screen{stubText(titleAdminOrders), AdminMenu()}, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (h *Handler) menuFor(role entity.Role) Keyboard {
	if role == entity.RoleAdmin {
		return AdminMenu()
	}
	return MainMenu(h.cfg.WebAppURL)
}

// replyError contesta con el texto del error de dominio. Un fallo interno se loguea
// y el usuario recibe un mensaje genérico.
func (h *Handler) replyError(ctx context.Context, chatID int64, err error, forbidden string) error {
	return h.msg.Send(ctx, chatID, h.errorText(err, forbidden, ""), nil)
}

func (h *Handler) errorText(err error, forbidden, callback string) string {
	switch {
	case errors.Is(err, domain.ErrNotRegistered):
		return textStartFirst
	case errors.Is(err, domain.ErrForbidden):
		if forbidden == "" {
			return textAlreadySeller
		}
		return forbidden
	case errors.Is(err, domain.ErrDuplicatePendingApplication):
		return textPendingExists
	case errors.Is(err, domain.ErrApplicationAlreadyProcessed):
		return textAlreadyProcessed
	case errors.Is(err, domain.ErrNoActiveRegistration):
		return textNoRegistration
	case errors.Is(err, domain.ErrProductUnavailable):
		return textProductNA
	case errors.Is(err, domain.ErrNotFound):
		return textNotFound
	}
	h.log.Error().Err(err).Str("callback", callback).Msg("error procesando update")
	return textInternalError
}
