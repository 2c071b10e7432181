package state

// AppState holds the onboarding flags.
type AppState struct {
	IsOnboardingCompleted bool `json:"is_onboarding_completed"`
	IsFirstLaunch         bool `json:"is_first_launch"`
}

// AppAction is an action handled by ReduceApp.
type AppAction interface {
	Action
	appAction()
}

// CompleteOnboarding marks onboarding done and clears the first-launch flag.
type CompleteOnboarding struct{}

// ResetApp returns the flags to their first-launch values.
type ResetApp struct{}

func (CompleteOnboarding) Kind() string { return "app/completeOnboarding" }
func (ResetApp) Kind() string           { return "app/resetApp" }

func (CompleteOnboarding) appAction() {}
func (ResetApp) appAction()           {}

func initialApp() AppState {
	return AppState{IsFirstLaunch: true}
}

// ReduceApp applies a to s.
func ReduceApp(s AppState, a AppAction) AppState {
	switch a.(type) {
	case CompleteOnboarding:
		s.IsOnboardingCompleted = true
		s.IsFirstLaunch = false
	case ResetApp:
		s = initialApp()
	}
	return s
}
