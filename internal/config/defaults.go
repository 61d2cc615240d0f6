package config

// DefaultSearchPath returns the directories searched for dependency
// repositories, most specific first.
func DefaultSearchPath() []string {
	return []string{
		"/usr/local/share/gir-1.0",
		"/usr/share/gir-1.0",
	}
}

// DefaultOptions returns default generation options.
func DefaultOptions() Options {
	return Options{
		SkipDeprecated: false,
		Verbose:        false,
	}
}
