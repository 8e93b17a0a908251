package modal

import (
	"strings"

	"github.com/AbdulWasayUl/go-country-browser/models"
)

const noBorders = "No bordering countries"

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Trigger names what asked the modal to close. All triggers behave the same.
type Trigger string

const (
	CloseButton Trigger = "button"
	Backdrop    Trigger = "backdrop"
	Escape      Trigger = "escape"
)

// ParseTrigger accepts the trigger names sent by the client.
func ParseTrigger(s string) (Trigger, bool) {
	switch t := Trigger(strings.ToLower(s)); t {
	case CloseButton, Backdrop, Escape:
		return t, true
	}
	return "", false
}

// View is what the modal displays for the selected country.
type View struct {
	Name    string `json:"name"`
	FlagURL string `json:"flag_url"`
	FlagAlt string `json:"flag_alt"`
	Borders string `json:"borders"`
}

// ViewOf builds the modal content for c.
func ViewOf(c models.Country) View {
	borders := noBorders
	if len(c.Borders) > 0 {
		borders = strings.Join(c.Borders, ", ")
	}
	return View{
		Name:    c.Name.Common,
		FlagURL: c.Flags.PNG,
		FlagAlt: "Flag of " + c.Name.Common,
		Borders: borders,
	}
}

// Controller is the single detail overlay of a session.
type Controller struct {
	state State
	view  View
}

func New() *Controller {
	return &Controller{}
}

// Open populates the overlay from c and shows it. Opening while open replaces the content.
func (m *Controller) Open(c models.Country) View {
	m.view = ViewOf(c)
	m.state = Open
	return m.view
}

// Close hides the overlay and reports whether anything changed.
func (m *Controller) Close(_ Trigger) bool {
	if m.state == Closed {
		return false
	}
	m.state = Closed
	return true
}

func (m *Controller) State() State { return m.state }
func (m *Controller) IsOpen() bool { return m.state == Open }
func (m *Controller) View() View   { return m.view }
