package accounts

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// PromptPassword reads a password from the terminal without echoing
// it. It falls back to an error on non-terminal stdin so scripts must
// pass the password through the environment instead.
func PromptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal, set the keystore password via env var")
	}
	fmt.Print(prompt)
	password, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("couldn't read password: %w", err)
	}
	return string(password), nil
}
