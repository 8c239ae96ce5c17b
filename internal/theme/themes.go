package theme

// Palette is passthrough data for the rendering layer; the store never
// interprets it.
type Palette struct {
	Colors       map[string]string `json:"colors"`
	BorderRadius map[string]string `json:"borderRadius"`
}

type Config struct {
	Light Palette `json:"light"`
	Dark  Palette `json:"dark"`
}

type Theme struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Config Config `json:"config"`
}

const DefaultThemeID = "default"

var themes = []Theme{
	{
		ID:   "default",
		Name: "Classic",
		Config: Config{
			Light: Palette{
				Colors: map[string]string{
					"background": "hsl(0 0% 100%)",
					"foreground": "hsl(240 10% 10%)",
					"accent":     "hsl(240 60% 55%)",
					"muted":      "hsl(240 5% 45%)",
					"border":     "hsl(240 6% 90%)",
				},
				BorderRadius: map[string]string{"DEFAULT": "12px", "panel": "10px"},
			},
			Dark: Palette{
				Colors: map[string]string{
					"background": "hsl(240 10% 8%)",
					"foreground": "hsl(0 0% 95%)",
					"accent":     "hsl(240 55% 65%)",
					"muted":      "hsl(240 5% 60%)",
					"border":     "hsl(240 6% 22%)",
				},
				BorderRadius: map[string]string{"DEFAULT": "12px", "panel": "10px"},
			},
		},
	},
	{
		ID:   "lavender",
		Name: "Lavender Dream",
		Config: Config{
			Light: Palette{
				Colors: map[string]string{
					"background": "hsl(280 25% 98%)",
					"foreground": "hsl(280 30% 15%)",
					"accent":     "hsl(270 50% 75%)",
					"muted":      "hsl(280 15% 45%)",
					"border":     "hsl(270 20% 88%)",
				},
				BorderRadius: map[string]string{"DEFAULT": "18px", "panel": "16px"},
			},
			Dark: Palette{
				Colors: map[string]string{
					"background": "hsl(280 20% 12%)",
					"foreground": "hsl(280 10% 92%)",
					"accent":     "hsl(270 45% 70%)",
					"muted":      "hsl(280 10% 40%)",
					"border":     "hsl(270 15% 28%)",
				},
				BorderRadius: map[string]string{"DEFAULT": "18px", "panel": "16px"},
			},
		},
	},
	{
		ID:   "mint",
		Name: "Fresh Mint",
		Config: Config{
			Light: Palette{
				Colors: map[string]string{
					"background": "hsl(160 30% 98%)",
					"foreground": "hsl(160 35% 12%)",
					"accent":     "hsl(160 40% 65%)",
					"muted":      "hsl(160 12% 45%)",
					"border":     "hsl(160 20% 86%)",
				},
				BorderRadius: map[string]string{"DEFAULT": "18px", "panel": "16px"},
			},
			Dark: Palette{
				Colors: map[string]string{
					"background": "hsl(160 22% 10%)",
					"foreground": "hsl(160 10% 92%)",
					"accent":     "hsl(160 35% 55%)",
					"muted":      "hsl(160 10% 42%)",
					"border":     "hsl(160 15% 25%)",
				},
				BorderRadius: map[string]string{"DEFAULT": "18px", "panel": "16px"},
			},
		},
	},
	{
		ID:   "sky",
		Name: "Clear Sky",
		Config: Config{
			Light: Palette{
				Colors: map[string]string{
					"background": "hsl(205 35% 98%)",
					"foreground": "hsl(210 35% 14%)",
					"accent":     "hsl(205 55% 70%)",
					"muted":      "hsl(205 15% 45%)",
					"border":     "hsl(205 25% 87%)",
				},
				BorderRadius: map[string]string{"DEFAULT": "18px", "panel": "16px"},
			},
			Dark: Palette{
				Colors: map[string]string{
					"background": "hsl(210 25% 10%)",
					"foreground": "hsl(205 12% 92%)",
					"accent":     "hsl(205 50% 60%)",
					"muted":      "hsl(205 12% 42%)",
					"border":     "hsl(205 18% 26%)",
				},
				BorderRadius: map[string]string{"DEFAULT": "18px", "panel": "16px"},
			},
		},
	},
}

// Available returns the fixed theme set. Callers get a copy of the slice
// header set; entries themselves are shared and must be treated as read-only.
func Available() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// Lookup returns the theme for an id, or false when the id is not one of the
// bundled themes.
func Lookup(id string) (Theme, bool) {
	for _, t := range themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}
