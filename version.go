package nightshift

var (
	// Version of the dashboard, injected during buildtime.
	Version = "<undef>"

	// Build id of the dashboard, injected during buildtime.
	Build = "<undef>"

	// Date of build, injected during buildtime.
	Date = "<undef>"
)
