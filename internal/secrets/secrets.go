// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials from a directory of plain-text files:
// the filename is the key name and the trimmed file contents are the value.
// The only key the service uses is crossref-mailto, the contact address
// the Crossref usage policy requires on every request.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MailtoKey is the filename holding the Crossref contact address.
const MailtoKey = "crossref-mailto"

// Mailto reads the Crossref contact address from dir. A missing
// directory or file is not an error; Mailto returns "".
func Mailto(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, MailtoKey))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading secret %s: %w", MailtoKey, err)
	}
	return strings.TrimSpace(string(data)), nil
}
