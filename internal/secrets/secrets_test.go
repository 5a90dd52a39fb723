// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailto(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  string
	}{
		{
			name: "reads the key file and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, MailtoKey, "  ops@example.com  \n")
				return dir
			},
			want: "ops@example.com",
		},
		{
			name: "returns empty for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: "",
		},
		{
			name: "returns empty when the key file is missing",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "unrelated-token", "tok_xyz789")
				return dir
			},
			want: "",
		},
		{
			name: "whitespace-only file reads as empty",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, MailtoKey, "   \n\t  ")
				return dir
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Mailto(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMailtoUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	badPath := filepath.Join(dir, MailtoKey)
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	_, err := Mailto(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), MailtoKey)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
