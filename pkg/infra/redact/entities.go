package redact

import "regexp"

// Entity is a kind of sensitive value found in transaction descriptions.
type Entity string

const (
	CreditCard    Entity = "credit_card"
	CVV           Entity = "cvv"
	Email         Entity = "email"
	SSN           Entity = "ssn"
	IPAddress     Entity = "ip_address"
	BankAccount   Entity = "bank_account"
	Password      Entity = "password"
	APIKey        Entity = "api_key"
	AccessToken   Entity = "access_token"
	IBAN          Entity = "iban"
	SwiftBIC      Entity = "swift_bic"
	CryptoWallet  Entity = "crypto_wallet"
	RoutingNumber Entity = "routing_number"
	JWTToken      Entity = "jwt_token"
	StripeKey     Entity = "stripe_key"
)

var patterns = map[Entity]*regexp.Regexp{
	CreditCard:    regexp.MustCompile(`\b(?:\d[ -]*?){13,19}\b`),
	CVV:           regexp.MustCompile(`(?i)cvv[\s-]*\d{3}`),
	Email:         regexp.MustCompile(`\b[A-Za-z0-9._%+-]+\s*@\s*[A-Za-z0-9.-]+\s*\.\s*[A-Za-z]{2,}\b`),
	SSN:           regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	IPAddress:     regexp.MustCompile(`\b((25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`),
	BankAccount:   regexp.MustCompile(`\b\d{8,20}\b`),
	Password:      regexp.MustCompile(`(?i)password[\s]*[=:]\s*\S+`),
	APIKey:        regexp.MustCompile(`(?i)(api[_-]?key|access[_-]?key)[\s]*[=:]\s*\S+`),
	AccessToken:   regexp.MustCompile(`(?i)(access[_-]?token|bearer)[\s]*[=:]?\s*[A-Za-z0-9\-_.=]{16,}`),
	IBAN:          regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{4,30}\b`),
	SwiftBIC:      regexp.MustCompile(`\b[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?\b`),
	CryptoWallet:  regexp.MustCompile(`\b(bc1|[13])[a-zA-HJ-NP-Z0-9]{25,39}\b|0x[a-fA-F0-9]{40}\b`),
	RoutingNumber: regexp.MustCompile(`\b\d{9}\b`),
	JWTToken:      regexp.MustCompile(`\beyJ[a-zA-Z0-9-_]+\.eyJ[a-zA-Z0-9-_]+\.[a-zA-Z0-9-_]+\b`),
	StripeKey:     regexp.MustCompile(`(?i)(sk|pk|rk|whsec)_(test|live)_[a-z0-9]{24}`),
}

// detectionOrder runs credential patterns before the numeric ones so a
// token is masked as a whole rather than in digit runs.
var detectionOrder = []Entity{
	JWTToken,
	StripeKey,
	APIKey,
	AccessToken,
	Password,
	IBAN,
	CreditCard,
	CVV,
	Email,
	SSN,
	IPAddress,
	CryptoWallet,
	SwiftBIC,
	RoutingNumber,
	BankAccount,
}

var masks = map[Entity]string{
	CreditCard:    "[MASKED_CC]",
	CVV:           "[MASKED_CVV]",
	Email:         "[MASKED_EMAIL]",
	SSN:           "[MASKED_SSN]",
	IPAddress:     "[MASKED_IP]",
	BankAccount:   "[MASKED_ACCOUNT]",
	Password:      "[MASKED_PASSWORD]",
	APIKey:        "[MASKED_API_KEY]",
	AccessToken:   "[MASKED_TOKEN]",
	IBAN:          "[MASKED_IBAN]",
	SwiftBIC:      "[MASKED_BIC]",
	CryptoWallet:  "[MASKED_WALLET]",
	RoutingNumber: "[MASKED_ROUTING]",
	JWTToken:      "[MASKED_JWT_TOKEN]",
	StripeKey:     "[MASKED_API_KEY]",
}

func IsValid(entity string) bool {
	_, ok := patterns[Entity(entity)]
	return ok
}

// Mask returns the placeholder written in place of entity.
func Mask(entity Entity) string {
	if mask, ok := masks[entity]; ok {
		return mask
	}
	return "*****"
}
