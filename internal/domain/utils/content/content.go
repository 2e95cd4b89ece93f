// Package content holds helpers that inspect and describe QR code content.
package content

import (
	"math"
	"math/rand"
	"net/url"
	"regexp"
	"strconv"
	"sync"
	"time"
)

type DataType string

const (
	DataTypeURL    DataType = "URL"
	DataTypeEmail  DataType = "Email"
	DataTypePhone  DataType = "Phone"
	DataTypeBase64 DataType = "Base64"
	DataTypeText   DataType = "Text"
)

var (
	urlPattern    = regexp.MustCompile(`^https?://`)
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern  = regexp.MustCompile(`^(\+\d{1,3}[- ]?)?\d{10}$`)
	base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)
)

// DetectDataType classifies text. Checks run in order URL, Email, Phone,
// Base64 and the first match wins; everything else is Text.
func DetectDataType(text string) DataType {
	switch {
	case urlPattern.MatchString(text):
		return DataTypeURL
	case emailPattern.MatchString(text):
		return DataTypeEmail
	case phonePattern.MatchString(text):
		return DataTypePhone
	case base64Pattern.MatchString(text):
		return DataTypeBase64
	default:
		return DataTypeText
	}
}

// IsValidURL reports whether s parses as an absolute URL.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with a binary unit, e.g. "1.5 KB".
func FormatFileSize(bytes int) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	value := math.Round(float64(bytes)/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}

// GenerateID returns a short identifier derived from the current time with a
// random suffix.
func GenerateID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 36) + strconv.FormatInt(rand.Int63(), 36)
}

// Debounce returns a function that delays fn until wait has passed without
// another call. Only the last call in a burst runs.
func Debounce(fn func(), wait time.Duration) func() {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, fn)
	}
}
