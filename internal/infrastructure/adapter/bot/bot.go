package bot

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"

	"github.com/capsule-market/backend/internal/domain/entity"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	adminUseCase "github.com/capsule-market/backend/internal/domain/usecase/admin"
	purchaseUseCase "github.com/capsule-market/backend/internal/domain/usecase/purchase"
)

// defaultListLimit caps account and ledger listings in bot replies
const defaultListLimit = 20

// AdminBot wraps the telegram bot with admin command handlers
type AdminBot struct {
	bot      *bot.Bot
	admin    *adminUseCase.Service
	sessions *SessionManager
	logger   coreport.Logger
}

// New creates the admin bot and registers all command handlers. pollTimeout
// is the long-poll window passed to getUpdates.
func New(token string, pollTimeout time.Duration, admin *adminUseCase.Service, sessions *SessionManager, logger coreport.Logger) (*AdminBot, error) {
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}

	b := &AdminBot{
		admin:    admin,
		sessions: sessions,
		logger:   logger,
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(b.defaultHandler),
		bot.WithCallbackQueryDataHandler("", bot.MatchTypePrefix, b.callbackHandler),
		bot.WithHTTPClient(pollTimeout, pollClient(pollTimeout)),
	}

	tgBot, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	b.bot = tgBot

	for _, route := range b.commandRoutes() {
		tgBot.RegisterHandler(bot.HandlerTypeMessageText, route.pattern, route.matchType, bot.HandlerFunc(b.authorized(route.handler)))
	}

	return b, nil
}

type commandRoute struct {
	pattern   string
	matchType bot.MatchType
	handler   handlerFunc
}

// commandRoutes lists every admin command. Commands taking arguments are
// registered twice: the exact form yields the usage reply, the prefix form
// ends with a space so "/user 5" matches but "/users" does not.
func (b *AdminBot) commandRoutes() []commandRoute {
	return []commandRoute{
		{"/start", bot.MatchTypeExact, b.startHandler},
		{"/users", bot.MatchTypeExact, b.usersHandler},
		{"/user", bot.MatchTypeExact, b.userHandler},
		{"/user ", bot.MatchTypePrefix, b.userHandler},
		{"/gifts", bot.MatchTypeExact, b.giftsHandler},
		{"/gifts ", bot.MatchTypePrefix, b.giftsHandler},
		{"/transactions", bot.MatchTypeExact, b.transactionsHandler},
		{"/transactions ", bot.MatchTypePrefix, b.transactionsHandler},
		{"/balance", bot.MatchTypeExact, b.balanceHandler},
		{"/balance ", bot.MatchTypePrefix, b.balanceHandler},
		{"/addgift", bot.MatchTypeExact, b.addGiftHandler},
		{"/addgift ", bot.MatchTypePrefix, b.addGiftHandler},
		{"/promo", bot.MatchTypeExact, b.promoHandler},
		{"/promo ", bot.MatchTypePrefix, b.promoHandler},
		{"/masscredit", bot.MatchTypeExact, b.massCreditHandler},
		{"/masscredit ", bot.MatchTypePrefix, b.massCreditHandler},
		{"/broadcast", bot.MatchTypeExact, b.broadcastHandler},
	}
}

// defaultPollTimeout is used when the configured polling timeout is unset
const defaultPollTimeout = 30 * time.Second

// pollClient builds the HTTP client for long polling. Its timeout must exceed
// the poll window or every idle getUpdates call would abort early.
func pollClient(pollTimeout time.Duration) *http.Client {
	return &http.Client{Timeout: pollTimeout + 10*time.Second}
}

// Start starts the bot polling. Blocks until ctx is canceled.
func (b *AdminBot) Start(ctx context.Context) {
	b.logger.Info("Admin bot polling started", nil)
	b.bot.Start(ctx)
}

type handlerFunc func(ctx context.Context, tgBot *bot.Bot, update *models.Update)

// authorized wraps a handler with the allow-list check
func (b *AdminBot) authorized(next handlerFunc) handlerFunc {
	return func(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		if !b.admin.IsAuthorized(update.Message.From.ID) {
			b.logger.Warn("Unauthorized bot command", map[string]any{
				"user_id": update.Message.From.ID,
				"text":    update.Message.Text,
			})
			b.reply(ctx, update.Message.Chat.ID, "You are not authorized to use this bot.", nil)
			return
		}
		next(ctx, tgBot, update)
	}
}

// --- Command handlers ---

func (b *AdminBot) startHandler(ctx context.Context, _ *bot.Bot, update *models.Update) {
	b.sessions.Clear(update.Message.From.ID)
	text := "Capsule Market admin console.\n\n" +
		"/users — list accounts\n" +
		"/user <id> — account detail\n" +
		"/gifts <id> — owned gifts\n" +
		"/transactions <id> — ledger entries\n" +
		"/balance <id> <amount> — grant TON balance\n" +
		"/addgift <id> <giftId> <name> — grant a gift\n" +
		"/promo <amount> — issue a promo code\n" +
		"/masscredit <amount> — credit every account\n" +
		"/broadcast — message every account"
	b.reply(ctx, update.Message.Chat.ID, text, MenuKeyboard())
}

func (b *AdminBot) usersHandler(ctx context.Context, _ *bot.Bot, update *models.Update) {
	accounts, err := b.admin.ListAccounts(ctx, defaultListLimit)
	if err != nil {
		b.replyError(ctx, update.Message.Chat.ID, err)
		return
	}
	if len(accounts) == 0 {
		b.reply(ctx, update.Message.Chat.ID, "No accounts yet.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👥 <b>Accounts</b> (latest %d)\n\n", len(accounts)))
	for _, account := range accounts {
		sb.WriteString(fmt.Sprintf("• <code>%d</code> %s — %s TON, %d Stars\n",
			account.UserID, displayName(account), account.BalanceTON().String(), account.BalanceStars()))
	}
	b.reply(ctx, update.Message.Chat.ID, sb.String(), nil)
}

func (b *AdminBot) userHandler(ctx context.Context, _ *bot.Bot, update *models.Update) {
	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		b.reply(ctx, update.Message.Chat.ID, "Usage: /user <id>", nil)
		return
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || userID <= 0 {
		b.reply(ctx, update.Message.Chat.ID, "Invalid account id.", nil)
		return
	}

	detail, err := b.admin.AccountDetail(ctx, userID, defaultListLimit)
	if err != nil {
		b.replyError(ctx, update.Message.Chat.ID, err)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👤 <b>Account %d</b> %s\n", detail.Account.UserID, displayName(detail.Account)))
	sb.WriteString(fmt.Sprintf("Balance: %s TON, %d Stars\n", detail.Account.BalanceTON().String(), detail.Account.BalanceStars()))
	sb.WriteString(fmt.Sprintf("Gifts: %d, ledger entries: %d\n", len(detail.Gifts), len(detail.Transactions)))
	if detail.Account.WalletAddress != "" {
		sb.WriteString(fmt.Sprintf("Wallet: <code>%s</code>\n", detail.Account.WalletAddress))
	}
	b.reply(ctx, update.Message.Chat.ID, sb.String(), nil)
}

func (b *AdminBot) giftsHandler(ctx context.Context, _ *bot.Bot, update *models.Update) {
	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		b.reply(ctx, update.Message.Chat.ID, "Usage: /gifts <id>", nil)
		return
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || userID <= 0 {
		b.reply(ctx, update.Message.Chat.ID, "Invalid account id.", nil)
		return
	}

	gifts, err := b.admin.ListGifts(ctx, userID)
	if err != nil {
		b.replyError(ctx, update.Message.Chat.ID, err)
		return
	}
	if len(gifts) == 0 {
		b.reply(ctx, update.Message.Chat.ID, "No gifts owned.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎁 <b>Gifts of %d</b>\n\n", userID))
	for _, gift := range gifts {
		sb.WriteString(fmt.Sprintf("• %s (<code>%s</code>) — %s TON\n", gift.Name, gift.GiftID, gift.PricePaid.String()))
	}
	b.reply(ctx, update.Message.Chat.ID, sb.String(), nil)
}

func (b *AdminBot) transactionsHandler(ctx context.Context, _ *bot.Bot, update *models.Update) {
	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		b.reply(ctx, update.Message.Chat.ID, "Usage: /transactions <id>", nil)
		return
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || userID <= 0 {
		b.reply(ctx, update.Message.Chat.ID, "Invalid account id.", nil)
		return
	}

	txns, err := b.admin.ListTransactions(ctx, userID, defaultListLimit)
	if err != nil {
		b.replyError(ctx, update.Message.Chat.ID, err)
		return
	}
	if len(txns) == 0 {
		b.reply(ctx, update.Message.Chat.ID, "No ledger entries.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📒 <b>Ledger of %d</b>\n\n", userID))
	for _, txn := range txns {
		sb.WriteString(fmt.Sprintf("• %s %s %s [%s] %s\n",
			txn.CreatedAt.Format("01-02 15:04"), string(txn.Kind), txn.Amount.String(),
			string(txn.Currency), string(txn.Status)))
	}
	b.reply(ctx, update.Message.Chat.ID, sb.String(), nil)
}

func (b *AdminBot) balanceHandler(ctx context.Context, _ *bot.Bot, update *models.Update) {
	args := commandArgs(update.Message.Text)
	if len(args) != 2 {
		b.reply(ctx, update.Message.Chat.ID, "Usage: /balance <id> <amount>", nil)
		return
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || userID <= 0 {
		b.reply(ctx, update.Message.Chat.ID, "Invalid account id.", nil)
		return
	}
	amount, err := decimal.NewFromString(args[1])
	if err != nil || amount.IsNegative() {
		b.reply(ctx, update.Message.Chat.ID, "Invalid amount.", nil)
		return
	}

	account, err := b.admin.GrantBalance(ctx, update.Message.From.ID, userID, amount)
	if err != nil {
		b.replyError(ctx, update.Message.Chat.ID, err)
		return
	}

	b.reply(ctx, update.Message.Chat.ID,
		fmt.Sprintf("✅ Granted %s TON to %d. New balance: %s TON.",
			amount.String(), userID, account.BalanceTON().String()), nil)
}

func (b *AdminBot) addGiftHandler(ctx context.Context, _ *bot.Bot, update *models.Update) {
	args := commandArgs(update.Message.Text)
	if len(args) < 3 {
		b.reply(ctx, update.Message.Chat.ID, "Usage: /addgift <id> <giftId> <name>", nil)
		return
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || userID <= 0 {
		b.reply(ctx, update.Message.Chat.ID, "Invalid account id.", nil)
		return
	}

	gift, err := b.admin.GrantGift(ctx, purchaseUseCase.Request{
		AccountID: userID,
		GiftID:    args[1],
		GiftName:  strings.Join(args[2:], " "),
		Price:     decimal.Zero,
	})
	if err != nil {
		b.replyError(ctx, update.Message.Chat.ID, err)
		return
	}

	b.reply(ctx, update.Message.Chat.ID,
		fmt.Sprintf("✅ Gift %s granted to %d.", gift.GiftID, userID), nil)
}

func (b *AdminBot) promoHandler(ctx context.Context, _ *bot.Bot, update *models.Update) {
	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		b.reply(ctx, update.Message.Chat.ID, "Usage: /promo <amount>", nil)
		return
	}
	amount, err := decimal.NewFromString(args[0])
	if err != nil || !amount.IsPositive() {
		b.reply(ctx, update.Message.Chat.ID, "Invalid amount.", nil)
		return
	}

	code, err := b.admin.IssuePromoCode(ctx, amount)
	if err != nil {
		b.replyError(ctx, update.Message.Chat.ID, err)
		return
	}

	b.reply(ctx, update.Message.Chat.ID,
		fmt.Sprintf("🎟 Promo code issued: <code>%s</code> worth %s TON.", code.Code, code.Amount.String()), nil)
}

// massCreditHandler starts the confirm flow: the amount is parked in the
// session until the admin presses confirm.
func (b *AdminBot) massCreditHandler(ctx context.Context, _ *bot.Bot, update *models.Update) {
	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		b.reply(ctx, update.Message.Chat.ID, "Usage: /masscredit <amount>", nil)
		return
	}
	amount, err := decimal.NewFromString(args[0])
	if err != nil || !amount.IsPositive() {
		b.reply(ctx, update.Message.Chat.ID, "Invalid amount.", nil)
		return
	}

	b.sessions.Set(update.Message.From.ID, StateAwaitingConfirmation, "masscredit", map[string]any{
		"amount": amount.String(),
	})

	b.reply(ctx, update.Message.Chat.ID,
		fmt.Sprintf("⚠️ Credit <b>%s TON</b> to every account?", amount.String()),
		ConfirmKeyboard())
}

// broadcastHandler starts the two-step flow: ask for the message text first,
// confirm second.
func (b *AdminBot) broadcastHandler(ctx context.Context, _ *bot.Bot, update *models.Update) {
	b.sessions.Set(update.Message.From.ID, StateAwaitingInput, "broadcast", nil)
	b.reply(ctx, update.Message.Chat.ID, "Send the broadcast message text:", nil)
}

// defaultHandler routes free-form input according to the admin's session state
func (b *AdminBot) defaultHandler(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	adminID := update.Message.From.ID
	if !b.admin.IsAuthorized(adminID) {
		return
	}

	session := b.sessions.Get(adminID)
	if session.State != StateAwaitingInput {
		return
	}

	switch session.Action {
	case "broadcast":
		text := strings.TrimSpace(update.Message.Text)
		if text == "" {
			b.reply(ctx, update.Message.Chat.ID, "Broadcast text cannot be empty.", nil)
			return
		}
		b.sessions.Set(adminID, StateAwaitingConfirmation, "broadcast", map[string]any{
			"text": text,
		})
		b.reply(ctx, update.Message.Chat.ID,
			fmt.Sprintf("⚠️ Send this to every account?\n\n%s", text),
			ConfirmKeyboard())
	default:
		b.sessions.Clear(adminID)
	}
}

// callbackHandler handles inline keyboard presses
func (b *AdminBot) callbackHandler(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	cb := update.CallbackQuery
	adminID := cb.From.ID

	tgBot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
	})

	if !b.admin.IsAuthorized(adminID) {
		return
	}

	chatID := chatIDOf(cb)

	switch cb.Data {
	case "confirm":
		b.handleConfirm(ctx, adminID, chatID)
	case "cancel":
		b.sessions.Clear(adminID)
		b.reply(ctx, chatID, "Cancelled.", nil)
	case "menu:users":
		b.listAccountsTo(ctx, chatID)
	case "menu:masscredit":
		b.reply(ctx, chatID, "Use /masscredit <amount>.", nil)
	case "menu:broadcast":
		b.sessions.Set(adminID, StateAwaitingInput, "broadcast", nil)
		b.reply(ctx, chatID, "Send the broadcast message text:", nil)
	default:
		b.logger.Warn("Unknown callback", map[string]any{
			"data":    cb.Data,
			"user_id": adminID,
		})
	}
}

func (b *AdminBot) handleConfirm(ctx context.Context, adminID, chatID int64) {
	session := b.sessions.Get(adminID)
	if session.State != StateAwaitingConfirmation {
		b.reply(ctx, chatID, "Nothing to confirm.", nil)
		return
	}
	b.sessions.Clear(adminID)

	switch session.Action {
	case "masscredit":
		raw, _ := session.Data["amount"].(string)
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			b.reply(ctx, chatID, "Session expired, start over with /masscredit.", nil)
			return
		}

		report, err := b.admin.MassCredit(ctx, adminID, amount)
		if err != nil {
			b.replyError(ctx, chatID, err)
			return
		}
		b.reply(ctx, chatID,
			fmt.Sprintf("💸 Mass credit done: %d total, %d succeeded, %d failed.",
				report.Total, report.Succeeded, report.Failed), nil)

	case "broadcast":
		text, _ := session.Data["text"].(string)
		if text == "" {
			b.reply(ctx, chatID, "Session expired, start over with /broadcast.", nil)
			return
		}

		targets, err := b.admin.BroadcastTargets(ctx)
		if err != nil {
			b.replyError(ctx, chatID, err)
			return
		}

		sent := 0
		for _, target := range targets {
			if _, err := b.bot.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:    target,
				Text:      text,
				ParseMode: models.ParseModeHTML,
			}); err != nil {
				b.logger.Warn("Broadcast delivery failed", map[string]any{
					"target": target,
					"error":  err.Error(),
				})
				continue
			}
			sent++
		}
		b.reply(ctx, chatID, fmt.Sprintf("📣 Broadcast sent to %d of %d accounts.", sent, len(targets)), nil)

	default:
		b.reply(ctx, chatID, "Nothing to confirm.", nil)
	}
}

func (b *AdminBot) listAccountsTo(ctx context.Context, chatID int64) {
	accounts, err := b.admin.ListAccounts(ctx, defaultListLimit)
	if err != nil {
		b.replyError(ctx, chatID, err)
		return
	}
	if len(accounts) == 0 {
		b.reply(ctx, chatID, "No accounts yet.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👥 <b>Accounts</b> (latest %d)\n\n", len(accounts)))
	for _, account := range accounts {
		sb.WriteString(fmt.Sprintf("• <code>%d</code> %s — %s TON, %d Stars\n",
			account.UserID, displayName(account), account.BalanceTON().String(), account.BalanceStars()))
	}
	b.reply(ctx, chatID, sb.String(), nil)
}

// --- Helpers ---

func (b *AdminBot) reply(ctx context.Context, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	if _, err := b.bot.SendMessage(ctx, params); err != nil {
		b.logger.Error("Failed to send bot message", map[string]any{
			"chat_id": chatID,
			"error":   err.Error(),
		})
	}
}

func (b *AdminBot) replyError(ctx context.Context, chatID int64, err error) {
	b.logger.Error("Bot command failed", map[string]any{
		"chat_id": chatID,
		"error":   err.Error(),
	})
	b.reply(ctx, chatID, "❌ "+err.Error(), nil)
}

func chatIDOf(cb *models.CallbackQuery) int64 {
	if cb.Message.Message != nil {
		return cb.Message.Message.Chat.ID
	}
	return cb.From.ID
}

func displayName(account *entity.Account) string {
	switch {
	case account.Username != "":
		return "@" + account.Username
	case account.FirstName != "":
		return strings.TrimSpace(account.FirstName + " " + account.LastName)
	default:
		return ""
	}
}

// commandArgs strips the leading /command token and returns the rest
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}
