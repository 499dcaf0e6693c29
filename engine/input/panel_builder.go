package input

// PanelBuilderOption is a functional option applied to a panel during construction via NewPanel.
type PanelBuilderOption func(*panel)

// WithTitle sets the panel heading.
//
// Parameters:
//   - title: the heading text
//
// Returns:
//   - PanelBuilderOption: option function to apply
func WithTitle(title string) PanelBuilderOption {
	return func(p *panel) {
		p.title = title
	}
}

// WithRefreshHook registers a hook called after every refresh, including the initial one.
//
// Parameters:
//   - fn: the hook
//
// Returns:
//   - PanelBuilderOption: option function to apply
func WithRefreshHook(fn func(label string)) PanelBuilderOption {
	return func(p *panel) {
		if fn != nil {
			p.hooks = append(p.hooks, fn)
		}
	}
}
