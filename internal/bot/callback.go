package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandKind enumerates the callback actions the inline keyboards emit.
type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdWallets
	CmdImport
	CmdCreate
	CmdSelectAccount
	CmdAuthorize
	CmdAuthorizeGrant
	CmdTransfer
	CmdBuyRAM
	CmdRAMOrder
	CmdViewRAMOrders
	CmdClearRAMOrders
	CmdViewOrder
	CmdDeleteOrder
	CmdActivateAccount
	CmdProfile
	CmdDeleteAccount
	CmdConfirmDeleteAccount
	CmdClose
)

// Command is one decoded callback. Only the fields of the matching kind
// are set: Account/Permission for CmdSelectAccount, Hours/Token for
// CmdAuthorizeGrant, Page for CmdViewRAMOrders.
type Command struct {
	Kind       CommandKind
	Account    string
	Permission string
	Hours      int
	Token      string
	Page       int
}

// ParseCommand decodes callback data. Unrecognized or malformed data maps
// to CmdUnknown so a stale button never reaches a handler half-parsed.
func ParseCommand(data string) Command {
	parts := strings.Split(data, ":")

	switch parts[0] {
	case "wallets":
		return Command{Kind: CmdWallets}
	case "import_account":
		return Command{Kind: CmdImport}
	case "create_account":
		return Command{Kind: CmdCreate}
	case "select_account":
		if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
			return Command{}
		}
		return Command{Kind: CmdSelectAccount, Account: parts[1], Permission: parts[2]}
	case "authorize":
		if len(parts) == 1 {
			return Command{Kind: CmdAuthorize}
		}
		if len(parts) != 3 {
			return Command{}
		}
		hours, err := strconv.Atoi(parts[1])
		if err != nil || hours <= 0 || parts[2] == "" {
			return Command{}
		}
		return Command{Kind: CmdAuthorizeGrant, Hours: hours, Token: parts[2]}
	case "transfer_eos":
		return Command{Kind: CmdTransfer}
	case "buy_ram":
		return Command{Kind: CmdBuyRAM}
	case "ram_order":
		return Command{Kind: CmdRAMOrder}
	case "view_ram_orders":
		page := 1
		if len(parts) > 1 {
			p, err := strconv.Atoi(parts[1])
			if err != nil || p < 1 {
				return Command{}
			}
			page = p
		}
		return Command{Kind: CmdViewRAMOrders, Page: page}
	case "clear_ram_orders":
		return Command{Kind: CmdClearRAMOrders}
	case "view_order":
		return Command{Kind: CmdViewOrder}
	case "delete_order":
		return Command{Kind: CmdDeleteOrder}
	case "activate_account":
		return Command{Kind: CmdActivateAccount}
	case "profile":
		return Command{Kind: CmdProfile}
	case "delete_account":
		return Command{Kind: CmdDeleteAccount}
	case "confirm_delete_account":
		return Command{Kind: CmdConfirmDeleteAccount}
	case "close":
		return Command{Kind: CmdClose}
	default:
		return Command{}
	}
}

func selectAccountData(account, permission string) string {
	return fmt.Sprintf("select_account:%s:%s", account, permission)
}

func authorizeGrantData(hours int, token string) string {
	return fmt.Sprintf("authorize:%d:%s", hours, token)
}

func ramOrdersPageData(page int) string {
	return fmt.Sprintf("view_ram_orders:%d", page)
}
