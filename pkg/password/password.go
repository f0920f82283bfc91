// Package password wraps bcrypt for borrower credential storage. The same
// helpers hash partner placeholder passwords and the seeded backoffice
// account.
package password

import "golang.org/x/crypto/bcrypt"

// hashCost trades login latency for resistance to offline cracking of a
// leaked credential table.
const hashCost = 14

func HashPassword(password string) (string, error) {
	hashPassword, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}

	return string(hashPassword), nil
}

func CheckPasswordHash(password, hashPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashPassword), []byte(password))
	return err == nil
}
