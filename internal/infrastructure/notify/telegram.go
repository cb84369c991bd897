// Package notify implementa la publicación de alertas de stock bajo.
package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jhoicas/Autoelectrica-api/internal/application/orders"
	"github.com/jhoicas/Autoelectrica-api/internal/domain/entity"
	"github.com/jhoicas/Autoelectrica-api/pkg/logger"
)

var _ orders.Notifier = (*TelegramNotifier)(nil)

// TelegramNotifier envía las alertas de stock bajo al chat de la tienda.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *logger.Logger
}

// NewTelegramNotifier crea el notificador validando el token contra la API.
func NewTelegramNotifier(token string, chatID int64, log *logger.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID, log: log}, nil
}

// NotifyLowStock envía un mensaje con los productos bajo su umbral de alerta.
func (n *TelegramNotifier) NotifyLowStock(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("⚠️ Stock bajo tras despachar pedido:\n")
	for _, p := range products {
		fmt.Fprintf(&b, "• %s (%s): quedan %d, mínimo %d\n", p.Name, p.Code, p.StockQty, p.MinAlert)
	}

	msg := tgbotapi.NewMessage(n.chatID, b.String())
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("enviar alerta telegram: %w", err)
	}
	n.log.Info().Int("products", len(products)).Msg("alerta de stock bajo enviada")
	return nil
}
