package bot

import (
	"github.com/go-telegram/bot/models"
)

// ConfirmKeyboard returns a confirm / cancel keyboard for destructive actions
func ConfirmKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✅ Confirm", CallbackData: "confirm"},
				{Text: "❌ Cancel", CallbackData: "cancel"},
			},
		},
	}
}

// MenuKeyboard returns the admin main menu keyboard
func MenuKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "👥 Accounts", CallbackData: "menu:users"},
			},
			{
				{Text: "💸 Mass credit", CallbackData: "menu:masscredit"},
				{Text: "📣 Broadcast", CallbackData: "menu:broadcast"},
			},
		},
	}
}
