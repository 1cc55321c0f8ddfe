package eos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	eosgo "github.com/eoscanada/eos-go"
	"github.com/eoscanada/eos-go/ecc"
	"github.com/eoscanada/eos-go/system"
	"github.com/eoscanada/eos-go/token"
)

// Client implements Chain against a nodeos HTTP endpoint.
type Client struct {
	nodeURL string
	api     *eosgo.API
}

var _ Chain = (*Client)(nil)

// NewClient builds a Client for the given nodeos URL (e.g.
// "https://eos.greymass.com").
func NewClient(nodeURL string) *Client {
	return &Client{
		nodeURL: nodeURL,
		api:     eosgo.New(nodeURL),
	}
}

// signingAPI returns a fresh API handle with the given key loaded. A
// per-call handle keeps key material out of the shared read-only client
// and avoids races between concurrent signing flows.
func (c *Client) signingAPI(ctx context.Context, wif string) (*eosgo.API, error) {
	api := eosgo.New(c.nodeURL)
	keyBag := &eosgo.KeyBag{}
	if err := keyBag.ImportPrivateKey(ctx, wif); err != nil {
		return nil, fmt.Errorf("importing signing key: %w", err)
	}
	api.SetSigner(keyBag)
	return api, nil
}

func (c *Client) AccountExists(ctx context.Context, name string) (bool, error) {
	_, err := c.api.GetAccount(ctx, eosgo.AccountName(name))
	if err == nil {
		return true, nil
	}

	var apiErr eosgo.APIError
	if errors.As(err, &apiErr) && strings.Contains(strings.ToLower(apiErr.Error()), "unknown key") {
		return false, nil
	}
	return false, fmt.Errorf("get_account %s: %w", name, err)
}

func (c *Client) AccountsForKey(ctx context.Context, publicKey string) ([]AccountPermission, error) {
	resp, err := c.api.GetKeyAccounts(ctx, publicKey)
	if err != nil {
		return nil, fmt.Errorf("get_key_accounts: %w", err)
	}

	var out []AccountPermission
	for _, name := range resp.AccountNames {
		acct, err := c.api.GetAccount(ctx, eosgo.AccountName(name))
		if err != nil {
			return nil, fmt.Errorf("get_account %s: %w", name, err)
		}
		for _, perm := range acct.Permissions {
			for _, key := range perm.RequiredAuth.Keys {
				if key.PublicKey.String() == publicKey {
					out = append(out, AccountPermission{
						Account:    string(name),
						Permission: perm.PermName,
					})
				}
			}
		}
	}
	return out, nil
}

func (c *Client) GenerateKeyPair() (KeyPair, error) {
	priv, err := ecc.NewRandomPrivateKey()
	if err != nil {
		return KeyPair{}, fmt.Errorf("generating key pair: %w", err)
	}
	return KeyPair{
		PrivateKey: priv.String(),
		PublicKey:  priv.PublicKey().String(),
	}, nil
}

func (c *Client) GenerateAccountName() string {
	return randomAccountName()
}

func (c *Client) PublicKeyForPrivate(wif string) (string, error) {
	priv, err := ecc.NewPrivateKey(wif)
	if err != nil {
		return "", fmt.Errorf("invalid private key: %w", err)
	}
	return priv.PublicKey().String(), nil
}

func (c *Client) Balance(ctx context.Context, account string) (float64, error) {
	assets, err := c.api.GetCurrencyBalance(ctx, eosgo.AccountName(account), "EOS", "eosio.token")
	if err != nil {
		return 0, fmt.Errorf("get_currency_balance %s: %w", account, err)
	}
	if len(assets) == 0 {
		return 0, nil
	}
	return assetToFloat(assets[0]), nil
}

func (c *Client) Resources(ctx context.Context, account string) (ResourceUsage, error) {
	acct, err := c.api.GetAccount(ctx, eosgo.AccountName(account))
	if err != nil {
		return ResourceUsage{}, fmt.Errorf("get_account %s: %w", account, err)
	}
	return ResourceUsage{
		RAM: Resource{Used: int64(acct.RAMUsage), Max: int64(acct.RAMQuota)},
		Net: Resource{Used: int64(acct.NetLimit.Used), Max: int64(acct.NetLimit.Max)},
		CPU: Resource{Used: int64(acct.CPULimit.Used), Max: int64(acct.CPULimit.Max)},
	}, nil
}

// rammarketRow mirrors the single row of the eosio.rammarket Bancor table.
type rammarketRow struct {
	Base struct {
		Balance string `json:"balance"`
	} `json:"base"`
	Quote struct {
		Balance string `json:"balance"`
	} `json:"quote"`
}

func (c *Client) RAMPrice(ctx context.Context) (float64, error) {
	resp, err := c.api.GetTableRows(ctx, eosgo.GetTableRowsRequest{
		Code:  "eosio",
		Scope: "eosio",
		Table: "rammarket",
		JSON:  true,
		Limit: 1,
	})
	if err != nil {
		return 0, fmt.Errorf("get_table_rows rammarket: %w", err)
	}

	var rows []rammarketRow
	if err := json.Unmarshal(resp.Rows, &rows); err != nil {
		return 0, fmt.Errorf("decoding rammarket rows: %w", err)
	}
	if len(rows) == 0 {
		return 0, errors.New("rammarket table is empty")
	}

	ramBytes, err := parseQuantity(rows[0].Base.Balance)
	if err != nil {
		return 0, err
	}
	eosBalance, err := parseQuantity(rows[0].Quote.Balance)
	if err != nil {
		return 0, err
	}
	if ramBytes == 0 {
		return 0, errors.New("rammarket base balance is zero")
	}

	// Bancor spot price, scaled from per-byte to per-KiB.
	return eosBalance / ramBytes * 1024, nil
}

func (c *Client) Transfer(ctx context.Context, signingKey, from, to string, amount float64, memo string) (string, error) {
	api, err := c.signingAPI(ctx, signingKey)
	if err != nil {
		return "", err
	}

	quantity := eosgo.NewEOSAsset(toAssetUnits(amount))
	action := token.NewTransfer(eosgo.AccountName(from), eosgo.AccountName(to), quantity, memo)

	resp, err := api.SignPushActions(ctx, action)
	if err != nil {
		return "", ClassifyFault(err)
	}
	return resp.TransactionID, nil
}

func (c *Client) BuyRAM(ctx context.Context, signingKey, payer, receiver string, eosAmount float64) (string, error) {
	api, err := c.signingAPI(ctx, signingKey)
	if err != nil {
		return "", err
	}

	action := system.NewBuyRAM(eosgo.AccountName(payer), eosgo.AccountName(receiver), uint64(toAssetUnits(eosAmount)))

	resp, err := api.SignPushActions(ctx, action)
	if err != nil {
		return "", ClassifyFault(err)
	}
	return resp.TransactionID, nil
}

func (c *Client) BuyRAMBytes(ctx context.Context, signingKey, payer, receiver string, bytes uint32) (string, error) {
	api, err := c.signingAPI(ctx, signingKey)
	if err != nil {
		return "", err
	}

	action := system.NewBuyRAMBytes(eosgo.AccountName(payer), eosgo.AccountName(receiver), bytes)

	resp, err := api.SignPushActions(ctx, action)
	if err != nil {
		return "", ClassifyFault(err)
	}
	return resp.TransactionID, nil
}

// toAssetUnits converts a display amount of EOS into the chain's integer
// representation (4 decimal places).
func toAssetUnits(amount float64) int64 {
	return int64(math.Round(amount * 10000))
}

func assetToFloat(a eosgo.Asset) float64 {
	return float64(a.Amount) / math.Pow10(int(a.Symbol.Precision))
}

// parseQuantity extracts the numeric part of a chain quantity string such
// as "12.3456 EOS" or "1024 RAM".
func parseQuantity(s string) (float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, fmt.Errorf("malformed quantity %q", s)
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed quantity %q: %w", s, err)
	}
	return v, nil
}
