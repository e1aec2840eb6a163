package domain

// TasteProfile is a fixed 7-dimension taste-intensity vector.
// Every dimension lies in [1,5].
type TasteProfile struct {
	Salty  int `json:"salty" validate:"min=1,max=5"`
	Acidic int `json:"acidic" validate:"min=1,max=5"`
	Creamy int `json:"creamy" validate:"min=1,max=5"`
	Spicy  int `json:"spicy" validate:"min=1,max=5"`
	Smoky  int `json:"smoky" validate:"min=1,max=5"`
	Herbal int `json:"herbal" validate:"min=1,max=5"`
	Sweet  int `json:"sweet" validate:"min=1,max=5"`
}

// FlavorProfile is a named snack/food archetype used to score wine affinity.
type FlavorProfile struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Description         string       `json:"description,omitempty"`
	Ingredients         string       `json:"ingredients,omitempty"`
	Profile             TasteProfile `json:"profile"`
	PreferredWineColors []WineColor  `json:"preferred_wine_colors,omitempty"`
	WineCharacteristics []string     `json:"wine_characteristics,omitempty"`
}

// PrefersColor reports whether the profile's preferred colors include c.
// A profile with no preferred colors prefers nothing (not everything).
func (f *FlavorProfile) PrefersColor(c WineColor) bool {
	for _, pc := range f.PreferredWineColors {
		if pc == c {
			return true
		}
	}
	return false
}
