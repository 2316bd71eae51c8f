package cmd

import (
	"fmt"
	"os"

	"github.com/baselabs/baseutils/accounts"
	"github.com/baselabs/baseutils/config"
)

// unlockAccount resolves the signing wallet. A raw private key in the
// env takes precedence; otherwise the keystore given by --keystore is
// opened with the password from the flag, the env var or an
// interactive prompt, in that order.
func unlockAccount() (*accounts.Account, error) {
	if pk := os.Getenv(config.PrivateKeyVar); pk != "" {
		account, err := accounts.NewPrivateKeyAccount(pk)
		if err != nil {
			return nil, fmt.Errorf("invalid private key in %s: %w", config.PrivateKeyVar, err)
		}
		return account, nil
	}
	if config.KeystoreFile == "" {
		return nil, fmt.Errorf("no keystore file given, use --keystore or %s", config.PrivateKeyVar)
	}
	password := config.KeystorePassword
	if password == "" {
		password = os.Getenv(config.KeystorePasswordVar)
	}
	if password == "" {
		var err error
		password, err = accounts.PromptPassword(
			fmt.Sprintf("Password for %s: ", config.KeystoreFile),
		)
		if err != nil {
			return nil, err
		}
	}
	account, err := accounts.NewKeystoreAccount(config.KeystoreFile, password)
	if err != nil {
		return nil, fmt.Errorf("couldn't unlock keystore %s: %w", config.KeystoreFile, err)
	}
	return account, nil
}
