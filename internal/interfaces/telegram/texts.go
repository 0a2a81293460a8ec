package telegram

import (
	"fmt"
	"strings"

	"github.com/jhoicas/marketplace-bot/internal/application/dto"
	"github.com/jhoicas/marketplace-bot/internal/domain/entity"
	"github.com/jhoicas/marketplace-bot/pkg/money"
)

// Textos fijos del bot (idioma de los usuarios del marketplace).
const (
	textMainMenu          = "Главное меню:"
	textAdminMainMenu     = "Главное меню администратора:"
	textChooseAction      = "Выберите действие:"
	textStartFirst        = "Сначала запустите бота командой /start"
	textAlreadySeller     = "Вы уже являетесь продавцом или администратором"
	textNotAdmin          = "У вас нет прав администратора"
	textNotSeller         = "Доступно только продавцам"
	textPendingExists     = "Ваша заявка на рассмотрении. Ожидайте подтверждения."
	textAlreadyProcessed  = "Заявка уже обработана"
	textNotFound          = "Не найдено"
	textNoRegistration    = "Регистрация не начата. Откройте личный кабинет и нажмите «Стать продавцом»."
	textProductNA         = "Товар недоступен"
	textInternalError     = "Произошла ошибка. Попробуйте позже."
	textUnknownAction     = "Неизвестное действие"
	textAskCompanyName    = "📝 Регистрация продавца\n\nВведите название вашей компании:"
	textAskTaxID          = "Введите ИИН компании (или отправьте /skip, чтобы пропустить):"
	textAskDescription    = "Опишите вашу деятельность:"
	textSubmitted         = "✅ Заявка отправлена на модерацию! Ожидайте подтверждения от администратора."
	textCancelled         = "Регистрация отменена."
	textNothingToCancel   = "Нечего отменять."
	textCannotSkip        = "Этот шаг нельзя пропустить."
	textSendText          = "Пожалуйста, отправьте ответ текстовым сообщением."
	textNoPending         = "Нет заявок на регистрацию продавцов."
	textApplicantApproved = "🎉 Ваша заявка одобрена! Теперь вы продавец и можете добавлять товары."
	textApplicantRejected = "К сожалению, ваша заявка на регистрацию продавца отклонена."
	textNotSpecified      = "Не указан"
	textInDevelopment     = "Функционал в разработке..."
)

// Títulos de las pantallas que todavía no tienen contenido propio.
const (
	titleOrderHistory    = "📜 История покупок"
	titleRecommendations = "💎 Рекомендации товаров"
	titleSalesStats      = "📊 Статистика продаж"
	titleAdminOrders     = "🛒 Все заказы"
)

func roleLabel(r entity.Role) string {
	switch r {
	case entity.RoleSeller:
		return "Продавец"
	case entity.RoleAdmin:
		return "Администратор"
	default:
		return "Покупатель"
	}
}

func welcomeText(firstName string) string {
	return fmt.Sprintf("Привет, %s! 👋\n\nДобро пожаловать в маркетплейс!\n\n%s", firstName, textChooseAction)
}

func stubText(title string) string {
	return title + "\n\n" + textInDevelopment
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func profileText(u *entity.User) string {
	var b strings.Builder
	b.WriteString("👤 Ваш профиль\n\n")
	fmt.Fprintf(&b, "Имя: %s\n", orDefault(u.FirstName, "Не указано"))
	if u.Username != "" {
		fmt.Fprintf(&b, "Username: @%s\n", u.Username)
	} else {
		fmt.Fprintf(&b, "Username: %s\n", textNotSpecified)
	}
	fmt.Fprintf(&b, "Роль: %s\n", roleLabel(u.Role))
	fmt.Fprintf(&b, "Дата регистрации: %s", u.CreatedAt.Format("02.01.2006"))
	return b.String()
}

func taxIDText(taxID *string) string {
	if taxID == nil {
		return textNotSpecified
	}
	return *taxID
}

func pendingListText(apps []*entity.SellerApplication) string {
	var b strings.Builder
	b.WriteString("📋 Заявки на регистрацию продавцов:\n")
	for _, a := range apps {
		fmt.Fprintf(&b, "\n🏢 %s\nИИН: %s\nОписание: %s\n", a.CompanyName, taxIDText(a.TaxID), a.Description)
	}
	return b.String()
}

func applicationText(a *entity.SellerApplication) string {
	return fmt.Sprintf("🏢 %s\nИИН: %s\nОписание: %s\nДата подачи: %s",
		a.CompanyName, taxIDText(a.TaxID), a.Description, a.CreatedAt.Format("02.01.2006 15:04"))
}

func newApplicationText(a *entity.SellerApplication) string {
	return "🆕 Новая заявка продавца\n\n" + applicationText(a)
}

func approvedText(a *entity.SellerApplication) string {
	return fmt.Sprintf("✅ Продавец %s одобрен!", a.CompanyName)
}

func rejectedText(a *entity.SellerApplication) string {
	return fmt.Sprintf("❌ Заявка продавца %s отклонена.", a.CompanyName)
}

func cartText(cart *dto.CartResponse, m *money.Formatter) string {
	if len(cart.Items) == 0 {
		return "🛒 Корзина\n\nКорзина пуста."
	}
	var b strings.Builder
	b.WriteString("🛒 Корзина\n\n")
	for _, it := range cart.Items {
		fmt.Fprintf(&b, "• %s × %d = %s\n", it.Name, it.Quantity, m.Format(it.Total))
	}
	fmt.Fprintf(&b, "\nИтого: %s", m.Format(cart.Total))
	return b.String()
}

func favoritesText(favs *dto.FavoritesResponse, m *money.Formatter) string {
	if len(favs.Items) == 0 {
		return "⭐ Избранное\n\nСписок пуст."
	}
	return "⭐ Избранное\n\n" + catalogLines(favs.Items, m)
}

func catalogText(title string, cat *dto.CatalogResponse, m *money.Formatter) string {
	if len(cat.Items) == 0 {
		return title + "\n\nТоваров пока нет."
	}
	return title + "\n\n" + catalogLines(cat.Items, m)
}

func catalogLines(items []dto.CatalogItemResponse, m *money.Formatter) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "• %s - %s (%s)\n", it.Name, m.Format(it.Price), orDefault(it.SellerName, textNotSpecified))
	}
	return strings.TrimRight(b.String(), "\n")
}

func myProductsText(list *dto.ProductListResponse, m *money.Formatter) string {
	if len(list.Items) == 0 {
		return "📦 Мои товары\n\nУ вас пока нет товаров. Добавьте их в магазине."
	}
	var b strings.Builder
	b.WriteString("📦 Мои товары\n\n")
	for _, p := range list.Items {
		mark := "✅"
		if !p.IsAvailable {
			mark = "⛔"
		}
		fmt.Fprintf(&b, "%s %s - %s\n", mark, p.Name, m.Format(p.Price))
	}
	return strings.TrimRight(b.String(), "\n")
}
