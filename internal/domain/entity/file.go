package entity

const (
	MIMEPNG = "image/png"
	MIMESVG = "image/svg+xml"
)

// File is an exported artifact handed to a platform adapter.
type File struct {
	Name string
	MIME string
	Data []byte
}

// SharePayload is what gets handed to the platform share sheet.
type SharePayload struct {
	Title string
	Text  string
	Files []File
}
