package config

const (
	PasswordHasherPlaintext = "plaintext"
	PasswordHasherBcrypt    = "bcrypt"
)

// PasswordConfig selects how passwords are stored.
// The plaintext default keeps existing accounts working and is insecure.
type PasswordConfig struct {
	Hasher     string `env:"PASSWORD_HASHER" env-default:"plaintext"`
	BcryptCost int    `env:"PASSWORD_BCRYPT_COST" env-default:"10"`
}
