package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodePlayerInvalidHp    = "PLAYER_INVALID_HP"
	CodePlayerInvalidStat  = "PLAYER_INVALID_STAT"
	CodeInsufficientCoins  = "INSUFFICIENT_COINS"
	CodeOutOfStock         = "OUT_OF_STOCK"
	CodeSkillLimitExceeded = "SKILL_LIMIT_EXCEEDED"
	CodeLogInvalidTarget   = "LOG_INVALID_TARGET"
	CodeLogInvalidType     = "LOG_INVALID_TYPE"
	CodeShopItemInvalid    = "SHOP_ITEM_INVALID"
	CodeNotFound           = "NOT_FOUND"
	CodeUnavailable        = "UNAVAILABLE"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Player errors
		CodePlayerInvalidHp:   "Hit points are outside the allowed range",
		CodePlayerInvalidStat: "Unknown attribute {{.Stat}}",

		// Purchase errors
		CodeInsufficientCoins: "Not enough coins to buy {{.Item}}",
		CodeOutOfStock:        "{{.Item}} is out of stock",

		// Skill errors
		CodeSkillLimitExceeded: "A character may have at most {{.Limit}} custom skills",

		// Log errors
		CodeLogInvalidTarget: "Message target {{.Target}} is not a valid recipient",
		CodeLogInvalidType:   "Unknown log type {{.Type}}",

		// Shop errors
		CodeShopItemInvalid: "Shop item is invalid",

		// Storage errors
		CodeNotFound: "The requested resource was not found",

		// Transport errors
		CodeUnavailable: "The panel service is temporarily unavailable",
	},
}
