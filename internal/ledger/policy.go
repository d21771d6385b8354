package ledger

import "fmt"

// Policy selects which of the two coexisting economic variants is active.
// The currency variant prices machine actions in the in-game balance only;
// the token variant prices them in externally minted fungible tokens.
type Policy string

const (
	PolicyCurrency Policy = "currency"
	PolicyToken    Policy = "token"
)

// ParsePolicy validates a configured policy name.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyCurrency, PolicyToken:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown game policy %q", s)
	}
}
