// Package gate decides which screen group the client shows. It owns no
// transitions of its own: it observes two externally-pushed booleans and
// recomputes its state on every update.
package gate

type State int

const (
	Unauthenticated State = iota
	Onboarding
	Main
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Onboarding:
		return "onboarding"
	case Main:
		return "main"
	default:
		return "unknown"
	}
}

// Resolve maps the observed session flags to the active screen group.
func Resolve(authenticated, onboardingCompleted bool) State {
	if !authenticated {
		return Unauthenticated
	}
	if !onboardingCompleted {
		return Onboarding
	}
	return Main
}

// Gate holds the latest observed flags so a subscription callback can feed it
// updates and read back the current state synchronously.
type Gate struct {
	authenticated       bool
	onboardingCompleted bool
}

func New() *Gate {
	return &Gate{}
}

// Observe records the latest flags and returns the resulting state along with
// whether it changed. No debouncing: a flicker in either flag is reflected
// immediately.
func (g *Gate) Observe(authenticated, onboardingCompleted bool) (State, bool) {
	previous := g.State()
	g.authenticated = authenticated
	g.onboardingCompleted = onboardingCompleted
	current := g.State()
	return current, current != previous
}

func (g *Gate) State() State {
	return Resolve(g.authenticated, g.onboardingCompleted)
}
