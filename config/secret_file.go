package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const maxSecretFileBytes int64 = 10 * 1024

// ReadSecretFile returns the trimmed contents of a small regular file holding
// the api secret, e.g. a mounted docker or systemd credential.
func ReadSecretFile(path string) (string, error) {
	clean := filepath.Clean(path)

	f, err := os.Open(clean)
	if err != nil {
		return "", fmt.Errorf("failed to open secret file: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat secret file: %w", err)
	}

	if !st.Mode().IsRegular() {
		return "", errors.New("secret file must be a regular file")
	}

	if st.Size() > maxSecretFileBytes {
		return "", fmt.Errorf("secret file too large (max %d bytes)", maxSecretFileBytes)
	}

	r := io.LimitReader(f, maxSecretFileBytes+1)
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file: %w", err)
	}
	if int64(len(b)) > maxSecretFileBytes {
		return "", fmt.Errorf("secret file too large (max %d bytes)", maxSecretFileBytes)
	}

	secret := strings.TrimSpace(string(b))
	if secret == "" {
		return "", errors.New("secret file is empty")
	}
	return secret, nil
}
