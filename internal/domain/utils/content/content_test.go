package content_test

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Badsnus/qr-studio/internal/domain/utils/content"
)

func TestDetectDataType(t *testing.T) {
	t.Parallel()

	cases := map[string]content.DataType{
		"https://x.com":          content.DataTypeURL,
		"http://example.com/a?b": content.DataTypeURL,
		"a@b.co":                 content.DataTypeEmail,
		"+11234567890":           content.DataTypePhone,
		"1234567890":             content.DataTypePhone,
		"+7 9991234567":          content.DataTypePhone,
		"aGVsbG8=":               content.DataTypeBase64,
		"hello world":            content.DataTypeText,
		"":                       content.DataTypeText,
	}
	for in, want := range cases {
		in, want := in, want
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, content.DetectDataType(in))
		})
	}
}

func TestDetectDataTypePrecedence(t *testing.T) {
	t.Parallel()

	// digits-only phone numbers are also valid base64; phone wins
	assert.Equal(t, content.DataTypePhone, content.DetectDataType("0123456789"))
	// an https URL containing an @ is still a URL
	assert.Equal(t, content.DataTypeURL, content.DetectDataType("https://user@host.com"))
}

func TestIsValidURL(t *testing.T) {
	t.Parallel()

	assert.True(t, content.IsValidURL("https://example.com"))
	assert.True(t, content.IsValidURL("mailto:someone@example.com"))
	assert.False(t, content.IsValidURL("not a url"))
	assert.False(t, content.IsValidURL("https://"))
	assert.False(t, content.IsValidURL(""))
}

func TestFormatFileSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 Bytes", content.FormatFileSize(0))
	assert.Equal(t, "512 Bytes", content.FormatFileSize(512))
	assert.Equal(t, "1 KB", content.FormatFileSize(1024))
	assert.Equal(t, "1.5 KB", content.FormatFileSize(1536))
	assert.Equal(t, "2 MB", content.FormatFileSize(2*1024*1024))
	assert.Equal(t, "3 GB", content.FormatFileSize(3*1024*1024*1024))
}

func TestGenerateID(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1700000000000)
	a := content.GenerateID(now)
	b := content.GenerateID(now)

	assert.True(t, strings.HasPrefix(a, "loyw3v28"), "id should start with the base36 timestamp, got %s", a)
	assert.NotEqual(t, a, b)
}

func TestDebounce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	fn := content.Debounce(func() { calls.Add(1) }, 20*time.Millisecond)
	for i := 0; i < 5; i++ {
		fn()
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}
