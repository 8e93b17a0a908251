package models

// Country is one record of the restcountries dataset, kept as the API returns it.
type Country struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official,omitempty"`
	} `json:"name"`
	Flags struct {
		PNG string `json:"png"`
		SVG string `json:"svg,omitempty"`
		Alt string `json:"alt,omitempty"`
	} `json:"flags"`
	Capital []string `json:"capital"`
	Borders []string `json:"borders"`
}

// NewCountry is a convenience constructor used by tests and fixtures.
func NewCountry(name, flag string, capitals, borders []string) Country {
	var c Country
	c.Name.Common = name
	c.Flags.PNG = flag
	c.Capital = capitals
	c.Borders = borders
	return c
}
