package qrcode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openipo/admin-backend/pkg/qrcode"
)

func TestPNG(t *testing.T) {
	t.Parallel()

	png, err := qrcode.PNG("otpauth://totp/OpenIPO%20Admin:a@x.com?secret=ABCDEFGH", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	_, err = qrcode.PNG("   ", 256)
	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
}

func TestDataURL(t *testing.T) {
	t.Parallel()

	url, err := qrcode.DataURL("otpauth://totp/X:a@x.com?secret=ABCDEFGH", 128)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	_, err = qrcode.DataURL("", 128)
	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
}
