package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"perfoverlay/internal/conf"
)

// NewUser creates a mirror viewer with a hashed password and saves it to
// the config file
func NewUser(name string, password string) error {
	if name == "" || password == "" {
		return fmt.Errorf("user name and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	newConf := conf.Read()
	if newConf.Auth.Users == nil {
		newConf.Auth.Users = make(map[string]string)
	}
	newConf.Auth.Users[name] = string(hash)

	if err := conf.Write(newConf); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// VerifyPassword verifies a user's password against the stored hash
func VerifyPassword(name string, password string) bool {
	hashedPassword, exists := conf.GetUsers()[name]
	if !exists {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
