package telegram

import (
	"encoding/json"

	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
)

// callback_data de los botones inline.
const (
	cbMainMenu           = "main_menu"
	cbProfile            = "profile"
	cbBecomeSeller       = "become_seller"
	cbCancelRegistration = "cancel_registration"
	cbFavorites          = "favorites"
	cbCart               = "cart"
	cbOrderHistory       = "order_history"
	cbRecommendations    = "recommendations"
	cbMyProducts         = "my_products"
	cbSalesStats         = "sales_stats"
	cbAdminSellers       = "admin_sellers"
	cbAdminProducts      = "admin_products"
	cbAdminOrders        = "admin_orders"

	// Prefijos seguidos del ID de la solicitud (uuid); caben en los 64 bytes de callback_data.
	cbReviewPrefix  = "review_seller_"
	cbApprovePrefix = "approve_seller_"
	cbRejectPrefix  = "reject_seller_"
)

// Button botón inline: callback o apertura de la WebApp.
type Button struct {
	Text         string  `json:"text"`
	CallbackData string  `json:"callback_data,omitempty"`
	WebApp       *WebApp `json:"web_app,omitempty"`
}

// WebApp destino de un botón web_app.
type WebApp struct {
	URL string `json:"url"`
}

// Keyboard teclado inline, una fila por slice. Se serializa como reply_markup.
type Keyboard [][]Button

// MarshalJSON produce {"inline_keyboard": [...]}.
func (k Keyboard) MarshalJSON() ([]byte, error) {
	rows := [][]Button(k)
	if rows == nil {
		rows = [][]Button{}
	}
	return json.Marshal(struct {
		InlineKeyboard [][]Button `json:"inline_keyboard"`
	}{rows})
}

// Callbacks devuelve el callback_data de cada botón en orden (los web_app se omiten).
func (k Keyboard) Callbacks() []string {
	var out []string
	for _, row := range k {
		for _, b := range row {
			if b.CallbackData != "" {
				out = append(out, b.CallbackData)
			}
		}
	}
	return out
}

func row(text, data string) []Button {
	return []Button{{Text: text, CallbackData: data}}
}

// MainMenu menú principal de compradores y vendedores. Sin URL de WebApp no hay botón de tienda.
func MainMenu(webAppURL string) Keyboard {
	var kb Keyboard
	if webAppURL != "" {
		kb = append(kb, []Button{{Text: "🛍️ Открыть магазин", WebApp: &WebApp{URL: webAppURL}}})
	}
	return append(kb,
		row("⭐ Избранное", cbFavorites),
		row("🛒 Корзина", cbCart),
		row("👤 Личный кабинет", cbProfile),
	)
}

// AdminMenu menú del administrador.
func AdminMenu() Keyboard {
	return Keyboard{
		row("👥 Продавцы", cbAdminSellers),
		row("📦 Все товары", cbAdminProducts),
		row("🛒 Все заказы", cbAdminOrders),
		row("🔙 Назад", cbMainMenu),
	}
}

// ProfileMenu opciones del perfil según el rol actual.
func ProfileMenu(role entity.Role) Keyboard {
	kb := Keyboard{
		row("📜 История покупок", cbOrderHistory),
		row("💎 Рекомендации", cbRecommendations),
	}
	switch role {
	case entity.RoleBuyer:
		kb = append(kb, row("🏪 Стать продавцом", cbBecomeSeller))
	case entity.RoleSeller:
		kb = append(kb,
			row("📦 Мои товары", cbMyProducts),
			row("📊 Статистика продаж", cbSalesStats),
		)
	}
	return append(kb, row("🔙 Назад", cbMainMenu))
}

// PendingListKeyboard un botón por solicitud pendiente para abrir su revisión.
func PendingListKeyboard(apps []*entity.SellerApplication) Keyboard {
	kb := make(Keyboard, 0, len(apps)+1)
	for _, a := range apps {
		kb = append(kb, row("🏢 "+a.CompanyName, cbReviewPrefix+a.ID))
	}
	return append(kb, row("🔙 Назад", cbMainMenu))
}

// ReviewKeyboard aprobar / rechazar una solicitud.
func ReviewKeyboard(applicationID string) Keyboard {
	return Keyboard{
		row("✅ Одобрить", cbApprovePrefix+applicationID),
		row("❌ Отклонить", cbRejectPrefix+applicationID),
		row("🔙 Назад", cbAdminSellers),
	}
}

// RegistrationKeyboard se muestra en cada paso del diálogo de registro.
func RegistrationKeyboard() Keyboard {
	return Keyboard{row("❌ Отменить", cbCancelRegistration)}
}

// BackKeyboard vuelve al menú principal.
func BackKeyboard() Keyboard {
	return Keyboard{row("🔙 Назад", cbMainMenu)}
}
