package execution

import "spotlight/internal/domain"

// Outcome reports what executing the selected item did
type Outcome int

const (
	OutcomeNoop      Outcome = iota // nothing selected, or the item is disabled
	OutcomeSelected                 // recorded and announced, no action or href
	OutcomeInvoked                  // the item's action ran
	OutcomeNavigated                // the href was handed to the navigator
	OutcomeRefused                  // the href pointed at another origin
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSelected:
		return "selected"
	case OutcomeInvoked:
		return "invoked"
	case OutcomeNavigated:
		return "navigated"
	case OutcomeRefused:
		return "refused"
	default:
		return "noop"
	}
}

// Navigator follows an href on behalf of the host
type Navigator interface {
	Navigate(url string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(url string)

func (f NavigatorFunc) Navigate(url string) { f(url) }

// Result is the outcome of one execution
type Result struct {
	Outcome Outcome
	Item    domain.Item
	URL     string // resolved target for navigated or refused hrefs
}
