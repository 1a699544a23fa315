package validation_test

import (
	"mime/multipart"
	"testing"

	"github.com/stashbin/stashbin/internal/validation"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	require.NoError(t, validation.ValidateEmail("a@x.com"))
	require.Error(t, validation.ValidateEmail(""))
	require.Error(t, validation.ValidateEmail("not-an-email"))
	require.Error(t, validation.ValidateEmail("a@"))
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, validation.ValidatePassword("correct horse battery"))
	require.Error(t, validation.ValidatePassword("short"))
	require.Error(t, validation.ValidatePassword("password12345678"))
	require.Error(t, validation.ValidatePassword(string(make([]byte, 80))))
}

func TestValidateUpload(t *testing.T) {
	require.Error(t, validation.ValidateUpload(nil))

	header := &multipart.FileHeader{Filename: "report.pdf", Size: 2 << 20}
	require.NoError(t, validation.ValidateUpload(header))

	header = &multipart.FileHeader{Filename: "  ", Size: 100}
	require.Error(t, validation.ValidateUpload(header))

	header = &multipart.FileHeader{Filename: "big.bin", Size: validation.MaxUploadBytes + 1}
	require.Error(t, validation.ValidateUpload(header))

	header = &multipart.FileHeader{Filename: "exact.bin", Size: validation.MaxUploadBytes}
	require.NoError(t, validation.ValidateUpload(header))
}

func TestParseShareDuration(t *testing.T) {
	days, err := validation.ParseShareDuration("7d")
	require.NoError(t, err)
	require.Equal(t, 7, days)

	days, err = validation.ParseShareDuration("1d")
	require.NoError(t, err)
	require.Equal(t, 1, days)

	for _, input := range []string{"", "d", "7", "0d", "-3d", "7.5d", "7dd", "seven-d"} {
		_, err = validation.ParseShareDuration(input)
		require.Error(t, err, "input %q", input)
	}
}
