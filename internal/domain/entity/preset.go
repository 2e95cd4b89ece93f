package entity

// Preset is a named bundle of three colors applied together.
type Preset struct {
	ID          string
	Name        string
	Foreground  string
	Background  string
	BorderColor string
}

// DefaultPresetID is the preset selected on a fresh studio.
const DefaultPresetID = "warm"

var presets = []Preset{
	{ID: "warm", Name: "Sunset", Foreground: "#5d4037", Background: "#fff3e0", BorderColor: "#ffab91"},
	{ID: "autumn", Name: "Autumn", Foreground: "#bf360c", Background: "#fbe9e7", BorderColor: "#ff8a65"},
	{ID: "blossom", Name: "Blossom", Foreground: "#880e4f", Background: "#fce4ec", BorderColor: "#f48fb1"},
	{ID: "honey", Name: "Honey", Foreground: "#ff6f00", Background: "#fff8e1", BorderColor: "#ffd54f"},
	{ID: "forest", Name: "Forest", Foreground: "#1b5e20", Background: "#f1f8e9", BorderColor: "#aed581"},
	{ID: "ocean", Name: "Ocean", Foreground: "#01579b", Background: "#e1f5fe", BorderColor: "#4fc3f7"},
	{ID: "midnight", Name: "Midnight", Foreground: "#0d47a1", Background: "#e3f2fd", BorderColor: "#90caf9"},
	{ID: "berry", Name: "Berry", Foreground: "#4a148c", Background: "#f3e5f5", BorderColor: "#ce93d8"},
}

// Presets returns the built-in catalog in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetByID looks a preset up by its identifier.
func PresetByID(id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
