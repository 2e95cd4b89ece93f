package entity

// ErrorCorrection is the QR error-correction level.
type ErrorCorrection string

const (
	ErrorCorrectionLow      ErrorCorrection = "L"
	ErrorCorrectionMedium   ErrorCorrection = "M"
	ErrorCorrectionQuartile ErrorCorrection = "Q"
	ErrorCorrectionHigh     ErrorCorrection = "H"
)

// Valid reports whether the level is one of L, M, Q or H.
func (e ErrorCorrection) Valid() bool {
	switch e {
	case ErrorCorrectionLow, ErrorCorrectionMedium, ErrorCorrectionQuartile, ErrorCorrectionHigh:
		return true
	}
	return false
}

// ModuleStyle controls how dark modules are drawn on raster output.
type ModuleStyle string

const (
	ModuleStyleSquare ModuleStyle = "square"
	ModuleStyleDots   ModuleStyle = "dots"
)

// ViewMode is the kind of preview currently shown.
type ViewMode string

const (
	ViewModeVector ViewMode = "vector"
	ViewModeRaster ViewMode = "raster"
)

type Border struct {
	Enabled bool
	Color   string
	Width   int
}

// Caption is the optional text drawn below the code. Its styling fields only
// matter when Text is not empty.
type Caption struct {
	Text        string
	Color       string
	Background  string // empty means transparent
	Border      bool
	BorderColor string
	FontSize    int
}

// Configuration holds every user-adjustable parameter of the studio.
type Configuration struct {
	Content         string
	Size            int
	Foreground      string
	Background      string
	ErrorCorrection ErrorCorrection
	Margin          bool
	Border          Border
	Caption         Caption
	Style           ModuleStyle
}

// DefaultConfiguration returns the configuration a fresh studio starts with.
func DefaultConfiguration() Configuration {
	return Configuration{
		Content:         "https://github.com",
		Size:            256,
		Foreground:      "#5d4037",
		Background:      "#fff3e0",
		ErrorCorrection: ErrorCorrectionMedium,
		Margin:          true,
		Border: Border{
			Enabled: false,
			Color:   "#ffab91",
			Width:   10,
		},
		Caption: Caption{
			Color:       "#5d4037",
			BorderColor: "#ffab91",
			FontSize:    16,
		},
		Style: ModuleStyleSquare,
	}
}
