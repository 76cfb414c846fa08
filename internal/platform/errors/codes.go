// Package errors provides structured error handling with machine-readable codes.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Player errors
	CodePlayerInvalidHp   Code = "PLAYER_INVALID_HP"
	CodePlayerInvalidStat Code = "PLAYER_INVALID_STAT"

	// Purchase errors
	CodeInsufficientCoins Code = "INSUFFICIENT_COINS"
	CodeOutOfStock        Code = "OUT_OF_STOCK"

	// Skill errors
	CodeSkillLimitExceeded Code = "SKILL_LIMIT_EXCEEDED"

	// Log errors
	CodeLogInvalidTarget Code = "LOG_INVALID_TARGET"
	CodeLogInvalidType   Code = "LOG_INVALID_TYPE"

	// Shop errors
	CodeShopItemInvalid Code = "SHOP_ITEM_INVALID"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Transport errors
	CodeUnavailable Code = "UNAVAILABLE"
)

// Precondition reports whether the code names a domain precondition failure,
// as opposed to a missing record or a transport fault. Precondition failures
// are returned as structured command results and never abort the caller's
// reconciled view.
func (c Code) Precondition() bool {
	switch c {
	case CodeInsufficientCoins,
		CodeOutOfStock,
		CodePlayerInvalidHp,
		CodePlayerInvalidStat,
		CodeSkillLimitExceeded,
		CodeLogInvalidTarget,
		CodeLogInvalidType,
		CodeShopItemInvalid:
		return true
	default:
		return false
	}
}
