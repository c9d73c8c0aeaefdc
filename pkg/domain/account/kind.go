package account

import "strings"

// Kind discriminates the account variants.
type Kind string

const (
	KindChecking Kind = "checking"
	KindSavings  Kind = "savings"
)

// short codes accepted alongside the long names
const (
	codeChecking = "CC"
	codeSavings  = "CP"
)

// ParseKind maps a caller supplied token to a Kind.
// Accepted tokens, case-insensitive: "checking", "savings", "CC", "CP".
func ParseKind(token string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "CHECKING", codeChecking:
		return KindChecking, nil
	case "SAVINGS", codeSavings:
		return KindSavings, nil
	default:
		return "", ErrInvalidAccountType
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindChecking || k == KindSavings
}

// Code returns the short code for the kind.
func (k Kind) Code() string {
	switch k {
	case KindChecking:
		return codeChecking
	case KindSavings:
		return codeSavings
	default:
		return ""
	}
}

// EarnsInterest reports whether interest simulation applies to the kind.
func (k Kind) EarnsInterest() bool {
	return k == KindSavings
}

func (k Kind) String() string {
	return string(k)
}
