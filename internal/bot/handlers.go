// Package bot ties the chat transport, services and session layer into
// the conversational flows of the wallet.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eosbot/internal/bot/services"
	"github.com/dmitrijs2005/eosbot/internal/conversation"
	"github.com/dmitrijs2005/eosbot/internal/eos"
	"github.com/dmitrijs2005/eosbot/internal/logging"
	"github.com/dmitrijs2005/eosbot/internal/session"
	"github.com/dmitrijs2005/eosbot/internal/telegram"
)

const minPasswordLength = 8

// Bot handles updates for all chats. Per-chat serialization is the
// dispatcher's job; handlers only deal with one update at a time.
type Bot struct {
	transport telegram.Transport
	wallet    *services.WalletService
	orders    *services.OrderService
	auth      *session.Authorizer
	tokens    *session.TokenIssuer
	collector *conversation.Collector
	logger    logging.Logger
}

func New(transport telegram.Transport, wallet *services.WalletService, orders *services.OrderService,
	auth *session.Authorizer, tokens *session.TokenIssuer, collector *conversation.Collector,
	logger logging.Logger) *Bot {
	return &Bot{
		transport: transport,
		wallet:    wallet,
		orders:    orders,
		auth:      auth,
		tokens:    tokens,
		collector: collector,
		logger:    logger,
	}
}

// Handle processes one update: armed prompts win over commands, then
// /start, then callbacks.
func (b *Bot) Handle(ctx context.Context, upd *telegram.Update) {
	switch {
	case upd.Message != nil && upd.Message.From != nil:
		b.handleMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		b.handleCallback(ctx, upd.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *telegram.Message) {
	if err := b.wallet.Ensure(ctx, msg.From.ID); err != nil {
		b.logger.Error(ctx, "registering user", "error", err, "user_id", msg.From.ID)
	}

	if b.collector.Deliver(msg.Chat.ID, msg.Text) {
		return
	}

	if msg.Text == "/start" {
		b.send(ctx, msg.Chat.ID, "Welcome to the EOS wallet bot. Choose an option:", &telegram.SendOptions{
			Keyboard: startMenu(),
		})
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	if err := b.wallet.Ensure(ctx, userID); err != nil {
		b.logger.Error(ctx, "registering user", "error", err, "user_id", userID)
	}

	if err := b.transport.AnswerCallbackQuery(ctx, cb.ID); err != nil {
		b.logger.Error(ctx, "answering callback", "error", err)
	}

	cmd := ParseCommand(cb.Data)
	b.logger.Debug(ctx, "callback", "data", cb.Data, "chat_id", chatID)

	switch cmd.Kind {
	case CmdWallets:
		b.handleWallets(ctx, chatID, userID, cb.Message.MessageID)
	case CmdImport:
		b.handleImport(ctx, chatID, userID)
	case CmdCreate:
		b.handleCreateOrder(ctx, chatID, userID)
	case CmdSelectAccount:
		b.handleSelectAccount(ctx, chatID, userID, cmd.Account, cmd.Permission)
	case CmdAuthorize:
		b.handleAuthorize(ctx, chatID, userID)
	case CmdAuthorizeGrant:
		b.handleAuthorizeGrant(ctx, chatID, cmd.Hours, cmd.Token)
	case CmdTransfer:
		b.handleTransfer(ctx, chatID, userID, cb.Message.MessageID)
	case CmdBuyRAM:
		b.handleBuyRAM(ctx, chatID, userID, cb.Message.MessageID)
	case CmdRAMOrder:
		b.handleRAMOrder(ctx, chatID, userID, cb.Message.MessageID)
	case CmdViewRAMOrders:
		b.handleViewRAMOrders(ctx, chatID, userID, cmd.Page)
	case CmdClearRAMOrders:
		b.handleClearRAMOrders(ctx, chatID, userID)
	case CmdViewOrder:
		b.handleViewOrder(ctx, chatID, userID)
	case CmdDeleteOrder:
		b.handleDeleteOrder(ctx, chatID, userID)
	case CmdActivateAccount:
		b.handleActivateAccount(ctx, chatID, userID)
	case CmdProfile:
		b.handleProfile(ctx, chatID, userID, cb.Message.MessageID)
	case CmdDeleteAccount:
		b.handleDeleteAccount(ctx, chatID, cb.Message.MessageID)
	case CmdConfirmDeleteAccount:
		b.handleConfirmDeleteAccount(ctx, chatID, userID, cb.Message.MessageID)
	case CmdClose:
		b.handleClose(ctx, chatID, cb.Message.MessageID)
	}
}

func (b *Bot) handleWallets(ctx context.Context, chatID, userID, messageID int64) {
	user, err := b.wallet.User(ctx, userID)
	if err != nil {
		b.reportError(ctx, chatID, "loading wallet", err)
		return
	}

	if !user.HasAccount() {
		if order, err := b.wallet.PendingOrder(ctx, userID); err == nil {
			text := fmt.Sprintf("You have an ongoing order for account: <code>%s</code>", order.AccountName)
			b.edit(ctx, chatID, messageID, text, &telegram.SendOptions{
				ParseMode: "HTML",
				Keyboard: telegram.InlineKeyboard{
					{{Text: "View Order", CallbackData: "view_order"}},
					{{Text: "❌ Close", CallbackData: "close"}},
				},
			})
			return
		}
		b.edit(ctx, chatID, messageID, "Please Create Account or Import Account.", &telegram.SendOptions{
			Keyboard: walletMenuNoAccount(),
		})
		return
	}

	if !b.auth.IsActive(userID) {
		b.promptUnlock(ctx, chatID, userID)
		return
	}

	balance, err := b.wallet.Balance(ctx, userID)
	if err != nil {
		b.reportError(ctx, chatID, "loading balance", err)
		return
	}
	privateKey, _ := b.auth.PrivateKey(userID)
	_, hasOrders, err := b.hasRAMOrders(ctx, userID)
	if err != nil {
		b.reportError(ctx, chatID, "loading orders", err)
		return
	}

	text := fmt.Sprintf("🔹 Account Name: <code>%s</code>\n"+
		"🔹 Public Key: <code>%s</code>\n"+
		"🔹 Private Key(Plz Backup❗️): <span class=\"tg-spoiler\">%s</span>\n"+
		"🔹 Balance: %g EOS\n",
		user.AccountName.String, user.PublicKey.String, privateKey, balance)
	if exp, ok := b.auth.Expiration(userID); ok {
		text += fmt.Sprintf("🔹 Session Expire in %d days %d hours %d minutes", exp.Days, exp.Hours, exp.Minutes)
	}

	b.edit(ctx, chatID, messageID, text, &telegram.SendOptions{
		ParseMode: "HTML",
		Keyboard:  walletMenuWithAccount(hasOrders),
	})
}

// promptUnlock asks for the password and arms the reply slot; the grant
// itself happens through the duration keyboard callback.
func (b *Bot) promptUnlock(ctx context.Context, chatID, userID int64) {
	b.send(ctx, chatID, "🔐Please enter your password to unlock:", nil)
	b.collector.Arm(chatID, func(password string) {
		token, err := b.tokens.IssueUnlockToken(chatID, userID, password)
		if err != nil {
			b.reportError(ctx, chatID, "preparing authorization", err)
			return
		}
		b.send(ctx, chatID, "Select authorization duration:", &telegram.SendOptions{
			Keyboard: durationMenu(token),
		})
	})
}

func (b *Bot) handleAuthorize(ctx context.Context, chatID, userID int64) {
	user, err := b.wallet.User(ctx, userID)
	if err != nil || !user.HasAccount() {
		b.send(ctx, chatID, "No account found for authorization.", &telegram.SendOptions{Keyboard: walletRow()})
		return
	}
	b.send(ctx, chatID, "⚠️The bot will be authorized to execute some transactions with your private key temporarily. "+
		"Such as executing the limit order. \n\n🔐Please enter your password to authorize:", nil)
	b.collector.Arm(chatID, func(password string) {
		token, err := b.tokens.IssueUnlockToken(chatID, userID, password)
		if err != nil {
			b.reportError(ctx, chatID, "preparing authorization", err)
			return
		}
		b.send(ctx, chatID, "Select authorization duration:", &telegram.SendOptions{
			Keyboard: durationMenu(token),
		})
	})
}

func (b *Bot) handleAuthorizeGrant(ctx context.Context, chatID int64, hours int, token string) {
	grant, err := b.tokens.RedeemUnlockToken(token)
	if err != nil {
		b.send(ctx, chatID, "This authorization request has expired. Please unlock again.", &telegram.SendOptions{
			Keyboard: walletRow(),
		})
		return
	}

	err = b.auth.Authorize(ctx, grant.UserID, grant.Password, time.Duration(hours)*time.Hour)
	if err != nil {
		if errors.Is(err, session.ErrPasswordIncorrect) {
			b.send(ctx, chatID, "🙅 Incorrect password. Please try again.", &telegram.SendOptions{
				Keyboard: walletRow(),
			})
			return
		}
		b.reportError(ctx, chatID, "authorizing user", err)
		return
	}
	b.send(ctx, chatID, fmt.Sprintf("✅Authorized for %d hour(s).", hours), &telegram.SendOptions{
		Keyboard: walletRow(),
	})
}

func (b *Bot) handleImport(ctx context.Context, chatID, userID int64) {
	b.send(ctx, chatID, "🔑Please enter your EOS private key:", nil)
	b.collector.Arm(chatID, func(privateKey string) {
		if privateKey == "" {
			b.send(ctx, chatID, "Please provide your EOS private key.", nil)
			return
		}
		b.send(ctx, chatID, "🔐Please enter an encryption password(>= 8 characters):", nil)
		b.collector.Arm(chatID, func(password string) {
			if len(password) < minPasswordLength {
				b.send(ctx, chatID, "Invalid password. Please provide an encryption password.(>= 8 characters)", nil)
				return
			}
			b.finishImport(ctx, chatID, userID, privateKey, password)
		})
	})
}

func (b *Bot) finishImport(ctx context.Context, chatID, userID int64, privateKey, password string) {
	accounts, err := b.wallet.Import(ctx, userID, privateKey, password)
	if err != nil {
		b.reportError(ctx, chatID, "importing EOS account", err)
		b.send(ctx, chatID, "Returning to wallet options...", &telegram.SendOptions{Keyboard: walletMenuNoAccount()})
		return
	}

	if len(accounts) == 1 {
		user, err := b.wallet.User(ctx, userID)
		if err != nil {
			b.reportError(ctx, chatID, "importing EOS account", err)
			return
		}
		text := fmt.Sprintf("Account imported successfully.\n\n"+
			"🔹 Account Name: %s\n🔹 Public Key: %s\n🔹 Permission: %s",
			accounts[0].Account, user.PublicKey.String, accounts[0].Permission)
		b.send(ctx, chatID, text, &telegram.SendOptions{Keyboard: startMenu()})
		return
	}

	var kb telegram.InlineKeyboard
	for _, account := range accounts {
		kb = append(kb, []telegram.InlineKeyboardButton{{
			Text:         fmt.Sprintf("%s (%s)", account.Account, account.Permission),
			CallbackData: selectAccountData(account.Account, account.Permission),
		}})
	}
	b.send(ctx, chatID, "Multiple accounts found. Please select one:", &telegram.SendOptions{Keyboard: kb})
}

func (b *Bot) handleSelectAccount(ctx context.Context, chatID, userID int64, account, permission string) {
	if err := b.wallet.SelectAccount(ctx, userID, account, permission); err != nil {
		b.reportError(ctx, chatID, "importing EOS account", err)
		return
	}
	user, err := b.wallet.User(ctx, userID)
	if err != nil {
		b.reportError(ctx, chatID, "importing EOS account", err)
		return
	}
	text := fmt.Sprintf("Account imported successfully.\n\n"+
		"🔹 Account Name: %s\n🔹 Public Key: %s\n🔹 Permission: %s",
		account, user.PublicKey.String, permission)
	b.send(ctx, chatID, text, &telegram.SendOptions{Keyboard: startMenu()})
}

func (b *Bot) handleCreateOrder(ctx context.Context, chatID, userID int64) {
	b.send(ctx, chatID, "🔐Please enter a password to encrypt your private key(>= 8 characters):", nil)
	b.collector.Arm(chatID, func(password string) {
		if len(password) < minPasswordLength {
			b.send(ctx, chatID, "Invalid password. Please provide an encryption password.(>= 8 characters)", nil)
			return
		}
		order, err := b.wallet.CreateAccountOrder(ctx, userID, password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrOrderAlreadyPending):
				b.send(ctx, chatID, "You already have a pending account order.", &telegram.SendOptions{
					Keyboard: pendingOrderMenu(),
				})
			case errors.Is(err, services.ErrAccountAlreadyExists):
				b.send(ctx, chatID, "Generated account already exists. Please try again.", nil)
			default:
				b.reportError(ctx, chatID, "creating EOS account", err)
			}
			return
		}
		b.send(ctx, chatID, accountOrderMessage(order.AccountName, order.PublicKey), &telegram.SendOptions{
			ParseMode: "HTML",
			Keyboard: telegram.InlineKeyboard{
				{{Text: "Activate", CallbackData: "activate_account"}},
				{{Text: "↔️ Wallet", CallbackData: "wallets"}},
			},
		})
	})
}

func (b *Bot) handleViewOrder(ctx context.Context, chatID, userID int64) {
	order, err := b.wallet.PendingOrder(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrNoPendingOrder) {
			b.send(ctx, chatID, "No pending order found.", &telegram.SendOptions{Keyboard: walletRow()})
			return
		}
		b.reportError(ctx, chatID, "loading order", err)
		return
	}
	b.send(ctx, chatID, accountOrderMessage(order.AccountName, order.PublicKey), &telegram.SendOptions{
		ParseMode: "HTML",
		Keyboard:  pendingOrderMenu(),
	})
}

func (b *Bot) handleDeleteOrder(ctx context.Context, chatID, userID int64) {
	if err := b.wallet.DeletePendingOrder(ctx, userID); err != nil {
		b.reportError(ctx, chatID, "deleting order", err)
		return
	}
	b.send(ctx, chatID, "Your account order has been deleted.", &telegram.SendOptions{Keyboard: walletRow()})
}

func (b *Bot) handleActivateAccount(ctx context.Context, chatID, userID int64) {
	order, err := b.wallet.Activate(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoPendingOrder):
			b.send(ctx, chatID, "No pending orders found.", &telegram.SendOptions{Keyboard: walletRow()})
		case errors.Is(err, services.ErrAccountNotYetCreated):
			b.send(ctx, chatID, "Account activation failed. The account does not exist yet.", &telegram.SendOptions{
				Keyboard: walletRow(),
			})
		default:
			b.reportError(ctx, chatID, "activating account", err)
		}
		return
	}
	text := fmt.Sprintf("Account activated successfully!\n\n🔹 Account Name: %s\n🔹 Public Key: %s",
		order.AccountName, order.PublicKey)
	b.send(ctx, chatID, text, &telegram.SendOptions{Keyboard: walletRow()})
}

func (b *Bot) handleTransfer(ctx context.Context, chatID, userID, messageID int64) {
	if !b.auth.IsActive(userID) {
		b.edit(ctx, chatID, messageID, "Unlock Wallet to Transfer. ", &telegram.SendOptions{Keyboard: walletRow()})
		return
	}

	text := "Enter Addresses with Amounts and memo(optional). The address and amount are separated by commas.\n\n" +
		"&lt;receiver&gt;,&lt;amount&gt;,&lt;memo&gt;\n\n" +
		"<b>Example (Click to Copy):</b>\n" +
		"1. <code>replace_account,0.001</code>\n" +
		"2. <code>replace_account,1,ThisIsTheMemo</code>\n" +
		"3. <code>replace_account,3.45,This_is_The_memo</code>\n" +
		"(\"_\" will be replaced with space)"
	b.send(ctx, chatID, text, &telegram.SendOptions{ParseMode: "HTML"})

	b.collector.Arm(chatID, func(input string) {
		receiver, amount, memo, err := parseTransferInput(input)
		if err != nil {
			b.send(ctx, chatID, "Please provide the address and amount.", nil)
			return
		}
		txID, err := b.wallet.Transfer(ctx, userID, receiver, amount, memo)
		if err != nil {
			b.reportChainError(ctx, chatID, userID, "transferring EOS", err)
			return
		}
		text := fmt.Sprintf("Successfully transferred %g EOS to %s", amount, receiver)
		if memo != "" {
			text += " with memo: " + memo
		}
		text += ".\n\n" + transactionLink(txID)
		b.send(ctx, chatID, text, &telegram.SendOptions{Keyboard: walletRow()})
	})
}

func (b *Bot) handleBuyRAM(ctx context.Context, chatID, userID, messageID int64) {
	if !b.auth.IsActive(userID) {
		b.edit(ctx, chatID, messageID, "Unlock Wallet then buy RAM. ", &telegram.SendOptions{Keyboard: walletRow()})
		return
	}
	price, err := b.wallet.RAMPrice(ctx)
	if err != nil {
		b.reportError(ctx, chatID, "loading RAM price", err)
		return
	}

	text := fmt.Sprintf("RAM price: %g EOS/kb\n\n"+
		"Enter Addresses with Amounts (supports bytes or EOS amount)\n"+
		"The address and amount are separated by commas.\n\n"+
		"&lt;receiver&gt;,&lt;ram_bytes&gt; or &lt;ram_of_eos_price&gt;\n\n"+
		"<b>Example (Click to Copy):</b>\n"+
		"1.<code>replace_account,1024bytes</code>\n"+
		"2.<code>replace_account,1.2kb</code>\n"+
		"3.<code>replace_account,1mb</code>\n"+
		"4.<code>replace_account,2.1gb</code>\n"+
		"5.<code>replace_account,1EOS</code>\n"+
		"6.<code>replace_account,3.45EOS</code>", price)
	b.send(ctx, chatID, text, &telegram.SendOptions{ParseMode: "HTML"})

	b.collector.Arm(chatID, func(input string) {
		b.finishBuyRAM(ctx, chatID, userID, input)
	})
}

func (b *Bot) finishBuyRAM(ctx context.Context, chatID, userID int64, input string) {
	parts := splitN(input, 2)
	if parts == nil {
		b.send(ctx, chatID, "Please provide the required information.", nil)
		return
	}
	receiver, amount := parts[0], parts[1]

	var txID string
	var err error
	if bytes, parseErr := parseRAMBytes(amount); parseErr == nil {
		if bytes > maxRAMBytesPerPurchase {
			b.send(ctx, chatID, "RAM amount is too large for a single purchase.", nil)
			return
		}
		txID, err = b.wallet.BuyRAMBytes(ctx, userID, receiver, uint32(bytes))
	} else if eosAmount, eosErr := parseEOSAmount(amount); eosErr == nil {
		txID, err = b.wallet.BuyRAM(ctx, userID, receiver, eosAmount)
	} else {
		b.send(ctx, chatID, "Invalid amount format. Please use bytes, kb, mb, gb, or EOS.", nil)
		return
	}

	if err != nil {
		b.reportChainError(ctx, chatID, userID, "buying RAM", err)
		return
	}
	b.send(ctx, chatID, "RAM bought successfully!\nTransaction ID: "+transactionLink(txID), &telegram.SendOptions{
		Keyboard: walletRow(),
	})
}

func (b *Bot) handleRAMOrder(ctx context.Context, chatID, userID, messageID int64) {
	if !b.auth.IsActive(userID) {
		b.edit(ctx, chatID, messageID, "Unlock Wallet then buy RAM. ", &telegram.SendOptions{Keyboard: walletRow()})
		return
	}
	price, err := b.wallet.RAMPrice(ctx)
	if err != nil {
		b.reportError(ctx, chatID, "loading RAM price", err)
		return
	}

	text := fmt.Sprintf("RAM Price:%g EOS/kb \n\n"+
		"Please make sure to create a Session Key that is long enough on the wallet page.\n\n"+
		" Enter RAM order details in the format: \n\n"+
		"&lt;receiver&gt;,&lt;ram_amount(EOS or bytes)&gt;,&lt;price_per_kb(EOS)&gt;\n\n"+
		"<b>Example (Click to Copy):</b>\n"+
		"1.<code>replace_account,1024bytes,0.01</code>\n"+
		"2.<code>replace_account,1kb,0.01</code>\n"+
		"3.<code>replace_account,1mb,0.01</code>\n"+
		"4.<code>replace_account,1gb,0.01</code>", price)
	b.send(ctx, chatID, text, &telegram.SendOptions{ParseMode: "HTML"})

	b.collector.Arm(chatID, func(input string) {
		b.finishRAMOrder(ctx, chatID, userID, input)
	})
}

func (b *Bot) finishRAMOrder(ctx context.Context, chatID, userID int64, input string) {
	parts := splitN(input, 3)
	if parts == nil {
		b.send(ctx, chatID, "Please provide the RAM order details.", nil)
		return
	}
	receiver := parts[0]
	ramBytes, err := parseRAMBytes(parts[1])
	if err != nil {
		b.send(ctx, chatID, "Invalid amount format. Please use bytes, kb, mb, or gb.", nil)
		return
	}
	price, err := parseFloat(parts[2])
	if err != nil || price <= 0 {
		b.send(ctx, chatID, "Invalid price. Please provide the price per KB in EOS.", nil)
		return
	}

	if _, err := b.orders.Place(ctx, userID, receiver, ramBytes, price); err != nil {
		if errors.Is(err, services.ErrPendingLimitExceeded) {
			b.send(ctx, chatID, fmt.Sprintf("You have reached the maximum limit of %d pending RAM orders.",
				services.MaxPendingOrders), nil)
			return
		}
		b.reportError(ctx, chatID, "creating RAM order", err)
		return
	}
	b.send(ctx, chatID, "RAM order created successfully.", &telegram.SendOptions{Keyboard: walletRow()})
}

func (b *Bot) handleViewRAMOrders(ctx context.Context, chatID, userID int64, page int) {
	orders, total, err := b.orders.List(ctx, userID, page)
	if err != nil {
		b.reportError(ctx, chatID, "loading RAM orders", err)
		return
	}
	totalPages := (total + services.OrderPageSize - 1) / services.OrderPageSize
	offset := (page - 1) * services.OrderPageSize

	b.send(ctx, chatID, formatRAMOrders(orders, offset, total), &telegram.SendOptions{
		Keyboard: ramOrdersMenu(page, totalPages),
	})
}

func (b *Bot) handleClearRAMOrders(ctx context.Context, chatID, userID int64) {
	if err := b.orders.Clear(ctx, userID); err != nil {
		b.reportError(ctx, chatID, "clearing RAM orders", err)
		return
	}
	b.send(ctx, chatID, "All your RAM orders have been cleared.", &telegram.SendOptions{Keyboard: walletRow()})
}

func (b *Bot) handleProfile(ctx context.Context, chatID, userID, messageID int64) {
	user, err := b.wallet.User(ctx, userID)
	if err != nil || !user.HasAccount() {
		b.edit(ctx, chatID, messageID, "Please Create or Import an EOS account.", &telegram.SendOptions{
			Keyboard: profileMenu(),
		})
		return
	}

	usage, err := b.wallet.Resources(ctx, userID)
	if err != nil {
		b.reportError(ctx, chatID, "loading profile", err)
		return
	}

	text := fmt.Sprintf("🔹 Account Name: <code>%s</code>\n"+
		"🔹 RAM: %s / %s\n"+
		"🔹 NET: %s / %s\n"+
		"🔹 CPU: %s / %s",
		user.AccountName.String,
		formatBytes(usage.RAM.Used), formatBytes(usage.RAM.Max),
		formatBytes(usage.Net.Used), formatBytes(usage.Net.Max),
		formatMicroseconds(usage.CPU.Used), formatMicroseconds(usage.CPU.Max))
	b.edit(ctx, chatID, messageID, text, &telegram.SendOptions{
		ParseMode: "HTML",
		Keyboard:  profileMenu(),
	})
}

func (b *Bot) handleDeleteAccount(ctx context.Context, chatID, messageID int64) {
	b.edit(ctx, chatID, messageID, "Are you sure you want to delete your EOS account?", &telegram.SendOptions{
		Keyboard: deleteConfirmMenu(),
	})
}

func (b *Bot) handleConfirmDeleteAccount(ctx context.Context, chatID, userID, messageID int64) {
	if err := b.wallet.DeleteAccount(ctx, userID); err != nil {
		b.reportError(ctx, chatID, "deleting account", err)
		return
	}
	b.edit(ctx, chatID, messageID, "Your EOS account information has been deleted.", &telegram.SendOptions{
		Keyboard: telegram.InlineKeyboard{{{Text: "❌ Close", CallbackData: "close"}}},
	})
}

func (b *Bot) handleClose(ctx context.Context, chatID, messageID int64) {
	if err := b.transport.DeleteMessage(ctx, chatID, messageID); err != nil {
		b.logger.Warn(ctx, "deleting message", "error", err, "chat_id", chatID)
		b.send(ctx, chatID, "Failed to delete the message. It may have already been deleted.", nil)
	}
}

func (b *Bot) hasRAMOrders(ctx context.Context, userID int64) (int, bool, error) {
	_, total, err := b.orders.List(ctx, userID, 1)
	if err != nil {
		return 0, false, err
	}
	return total, total > 0, nil
}

// reportChainError labels a failed chain operation and, for resource
// exhaustion, points the user at a free powerup service.
func (b *Bot) reportChainError(ctx context.Context, chatID, userID int64, operation string, err error) {
	if errors.Is(err, services.ErrSessionExpired) {
		b.send(ctx, chatID, "Session expired. Please unlock your wallet again.", &telegram.SendOptions{
			Keyboard: walletRow(),
		})
		return
	}

	text := fmt.Sprintf("Error %s: %s", operation, err.Error())
	if errors.Is(err, eos.ErrResourceInsufficient) {
		account := ""
		if user, uerr := b.wallet.User(ctx, userID); uerr == nil && user.HasAccount() {
			account = user.AccountName.String
		}
		text += resourceHelp(account)
	}
	b.logger.Error(ctx, "chain operation failed", "operation", operation, "error", err, "chat_id", chatID)
	b.send(ctx, chatID, text, &telegram.SendOptions{Keyboard: walletRow()})
}

func (b *Bot) reportError(ctx context.Context, chatID int64, operation string, err error) {
	b.logger.Error(ctx, "operation failed", "operation", operation, "error", err, "chat_id", chatID)
	b.send(ctx, chatID, fmt.Sprintf("Error %s: %s", operation, err.Error()), &telegram.SendOptions{
		Keyboard: walletRow(),
	})
}

func (b *Bot) send(ctx context.Context, chatID int64, text string, opts *telegram.SendOptions) {
	if err := b.transport.SendMessage(ctx, chatID, text, opts); err != nil {
		b.logger.Error(ctx, "sending message", "error", err, "chat_id", chatID)
	}
}

func (b *Bot) edit(ctx context.Context, chatID, messageID int64, text string, opts *telegram.SendOptions) {
	if err := b.transport.EditMessageText(ctx, chatID, messageID, text, opts); err != nil {
		b.logger.Error(ctx, "editing message", "error", err, "chat_id", chatID)
	}
}
