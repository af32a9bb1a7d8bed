package loja

// UIState holds the singleton presentation preference.
type UIState struct {
	Theme Theme `json:"theme"`
}

func defaultUIState() UIState {
	return UIState{Theme: ThemeLight}
}

// ToggleTheme flips light<->dark. Always succeeds. The store writes the
// new value under the dedicated theme key in addition to the general
// snapshot so it can be read before the rest of the tree hydrates.
type ToggleTheme struct{}

// Name implements Action.
func (ToggleTheme) Name() string { return "ui/toggleTheme" }

func reduceUI(st UIState, action Action) (UIState, bool, error) {
	switch action.(type) {
	case ToggleTheme:
		if st.Theme == ThemeDark {
			st.Theme = ThemeLight
		} else {
			st.Theme = ThemeDark
		}
		return st, true, nil
	default:
		return st, false, nil
	}
}

// Theme returns the current UI theme.
func (s *Store) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UI.Theme
}
