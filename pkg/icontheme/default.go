package icontheme

import "sync"

// defaultResolver is built from the process environment on first use.
var defaultResolver = sync.OnceValue(func() *Resolver {
	return NewBuilder().
		WithEnvConfig().
		WithDesktopDetection().
		Build()
})

// Default returns the process-wide Resolver configured from the environment.
func Default() *Resolver {
	return defaultResolver()
}

// CurrentTheme returns the process-wide active theme. It is resolved once
// per process.
func CurrentTheme() (*Theme, error) {
	return Default().Current()
}

// ThemeByName locates an installed theme using the process-wide Resolver.
func ThemeByName(name string) (*Theme, bool) {
	return Default().ThemeByName(name)
}

// Get looks up an icon in the current theme at its default size.
// The error is only set when no usable theme is installed.
func Get(icon string) (string, bool, error) {
	theme, err := CurrentTheme()
	if err != nil {
		return "", false, err
	}
	path, ok := theme.Get(icon)
	return path, ok, nil
}

// GetWithSize looks up an icon in the current theme at the given size.
// The error is only set when no usable theme is installed.
func GetWithSize(icon string, size int) (string, bool, error) {
	theme, err := CurrentTheme()
	if err != nil {
		return "", false, err
	}
	path, ok := theme.GetWithSize(icon, size)
	return path, ok, nil
}
