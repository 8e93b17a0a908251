package session

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	EventSearch          = "search"
	EventPage            = "page"
	EventSelect          = "select"
	EventClose           = "close"
	EventTypewriterText  = "typewriter_submit"
	EventTypewriterSpeed = "typewriter_speed"
)

// Event is one input message from the browser.
type Event struct {
	Type    string `json:"type" validate:"required,oneof=search page select close typewriter_submit typewriter_speed"`
	Query   string `json:"query" validate:"max=200"`
	Page    int    `json:"page"`
	Index   int    `json:"index" validate:"min=0"`
	Trigger string `json:"trigger" validate:"omitempty,oneof=button backdrop escape"`
	Text    string `json:"text" validate:"max=10000"`
	Value   int    `json:"value" validate:"omitempty,min=1,max=100"`
}

// Regions a Message can target.
const (
	RegionGrid       = "grid"
	RegionNav        = "nav"
	RegionModal      = "modal"
	RegionWeather    = "weather"
	RegionTypewriter = "typewriter"
)

// Message is one HTML fragment pushed to the browser.
type Message struct {
	Region string `json:"region"`
	HTML   string `json:"html"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		ev := sl.Current().Interface().(Event)
		switch ev.Type {
		case EventClose:
			if ev.Trigger == "" {
				sl.ReportError(ev.Trigger, "Trigger", "trigger", "required", "")
			}
		case EventTypewriterSpeed:
			if ev.Value == 0 {
				sl.ReportError(ev.Value, "Value", "value", "required", "")
			}
		}
	}, Event{})
	return v
}

// DecodeEvent parses and validates a raw client message.
func DecodeEvent(raw []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return Event{}, fmt.Errorf("malformed event: %w", err)
	}
	if err := validate.Struct(ev); err != nil {
		return Event{}, fmt.Errorf("invalid %q event: %w", ev.Type, err)
	}
	return ev, nil
}
