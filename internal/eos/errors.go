package eos

import (
	"errors"
	"fmt"
	"strings"

	eosgo "github.com/eoscanada/eos-go"
)

// ErrResourceInsufficient marks a transaction rejected because the payer
// ran out of CPU, NET or RAM. Handlers enrich it with a remediation
// pointer before display.
var ErrResourceInsufficient = errors.New("account resources insufficient")

// resourceErrorNames are the nodeos exception names that indicate
// resource exhaustion.
var resourceErrorNames = []string{
	"tx_cpu_usage_exceeded",
	"tx_net_usage_exceeded",
	"ram_usage_exceeded",
	"greylist_cpu_usage_exceeded",
	"greylist_net_usage_exceeded",
	"leeway_deadline_exception",
}

// ClassifyFault maps an RPC fault to the bot's error taxonomy. Structured
// inspection of the nodeos error comes first; matching on the fault's
// wording is only a fallback for faults the node did not classify.
func ClassifyFault(err error) error {
	if err == nil {
		return nil
	}

	var apiErr eosgo.APIError
	if errors.As(err, &apiErr) {
		name := apiErr.ErrorStruct.Name
		for _, n := range resourceErrorNames {
			if name == n {
				return fmt.Errorf("%w: %s", ErrResourceInsufficient, apiErr.Error())
			}
		}
		return err
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "cpu") || strings.Contains(msg, "net") || strings.Contains(msg, "ram limit") {
		return fmt.Errorf("%w: %s", ErrResourceInsufficient, err.Error())
	}

	return err
}
