package pmcommon

import "crypto/rand"

type IdType int

const (
	ID_TYPE_GENERIC = iota
	ID_TYPE_ORG
	ID_TYPE_INVOICE
	ID_TYPE_INTAKE
)

const refCodeLen = 6

/**
 * GetUniqueId
 * This may not be unique, since this is randomly generated.
 * Has a practical collision probability of 1.5% in 10 million keys.
 * The invoice and intake tables carry unique constraints on these codes;
 * callers retry on conflict instead of using a key generation service.
 */
func GetUniqueId(t IdType) string {
	c, err := airlineCode(refCodeLen)
	if err != nil {
		return ""
	}
	switch t {
	case ID_TYPE_ORG:
		c = "ORG" + c
	case ID_TYPE_INVOICE:
		c = "INV-" + c
	case ID_TYPE_INTAKE:
		c = "ETR-" + c
	default:
	}
	return c
}

// Function to generate a random alphanumeric string of a given length like Airline PNR Code
func airlineCode(length int) (string, error) {
	charSet := "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	charSetLen := len(charSet)

	randomBytes := make([]byte, length)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}

	for i := 0; i < length; i++ {
		index := int(randomBytes[i]) % charSetLen
		randomBytes[i] = charSet[index]
	}

	// Ensure the first character is a letter (not a number)
	if randomBytes[0] >= '0' && randomBytes[0] <= '9' {
		index := int(randomBytes[0]) % 26
		randomBytes[0] = charSet[index]
	}

	return string(randomBytes), nil
}
