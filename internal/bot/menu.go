package bot

import "github.com/dmitrijs2005/eosbot/internal/telegram"

// Static keyboards mirror the original bot's menu layout.

func startMenu() telegram.InlineKeyboard {
	return telegram.InlineKeyboard{
		{{Text: "💳 Wallets", CallbackData: "wallets"}},
		{{Text: "👤 Profile", CallbackData: "profile"}},
		{{Text: "❌ Close", CallbackData: "close"}},
	}
}

func walletMenuNoAccount() telegram.InlineKeyboard {
	return telegram.InlineKeyboard{
		{{Text: "🆕 Create Account", CallbackData: "create_account"}},
		{{Text: "🔑 Import Account", CallbackData: "import_account"}},
		{{Text: "❌ Close", CallbackData: "close"}},
	}
}

func walletMenuWithAccount(hasRAMOrders bool) telegram.InlineKeyboard {
	kb := telegram.InlineKeyboard{
		{{Text: "💸 Transfer EOS", CallbackData: "transfer_eos"}},
		{
			{Text: "🛒 Buy RAM", CallbackData: "buy_ram"},
			{Text: "📝 RAM Limit Order", CallbackData: "ram_order"},
		},
		{{Text: "🔓 Authorize", CallbackData: "authorize"}},
		{{Text: "🗑 Delete Account", CallbackData: "delete_account"}},
		{{Text: "❌ Close", CallbackData: "close"}},
	}
	if hasRAMOrders {
		kb = append(telegram.InlineKeyboard{
			{{Text: "📜 RAM Orders", CallbackData: "view_ram_orders"}},
		}, kb...)
	}
	return kb
}

func walletRow() telegram.InlineKeyboard {
	return telegram.InlineKeyboard{
		{{Text: "↔️ Wallet", CallbackData: "wallets"}},
	}
}

func durationMenu(token string) telegram.InlineKeyboard {
	return telegram.InlineKeyboard{
		{
			{Text: "1 hour", CallbackData: authorizeGrantData(1, token)},
			{Text: "6 hours", CallbackData: authorizeGrantData(6, token)},
			{Text: "12 hours", CallbackData: authorizeGrantData(12, token)},
		},
		{
			{Text: "1 day", CallbackData: authorizeGrantData(24, token)},
			{Text: "3 days", CallbackData: authorizeGrantData(72, token)},
			{Text: "7 days", CallbackData: authorizeGrantData(168, token)},
		},
	}
}

func pendingOrderMenu() telegram.InlineKeyboard {
	return telegram.InlineKeyboard{
		{{Text: "❌ Delete Order", CallbackData: "delete_order"}},
		{{Text: "Activate", CallbackData: "activate_account"}},
		{{Text: "↔️ Wallet", CallbackData: "wallets"}},
	}
}

func deleteConfirmMenu() telegram.InlineKeyboard {
	return telegram.InlineKeyboard{
		{{Text: "Yes, delete", CallbackData: "confirm_delete_account"}},
		{{Text: "No, go back", CallbackData: "wallets"}},
	}
}

func profileMenu() telegram.InlineKeyboard {
	return telegram.InlineKeyboard{
		{{Text: "⬅️ Return wallets list", CallbackData: "wallets"}},
		{{Text: "❌ Close", CallbackData: "close"}},
	}
}

func ramOrdersMenu(page, totalPages int) telegram.InlineKeyboard {
	kb := telegram.InlineKeyboard{
		{{Text: "↔️ Wallet", CallbackData: "wallets"}},
	}
	if page > 1 {
		kb = append(telegram.InlineKeyboard{
			{{Text: "⬅️ Previous", CallbackData: ramOrdersPageData(page - 1)}},
		}, kb...)
	}
	if page < totalPages {
		kb = append(telegram.InlineKeyboard{
			{{Text: "➡️ Next", CallbackData: ramOrdersPageData(page + 1)}},
		}, kb...)
	}
	return append(telegram.InlineKeyboard{
		{{Text: "Clear Orders", CallbackData: "clear_ram_orders"}},
	}, kb...)
}
