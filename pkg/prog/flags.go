package prog

import "flag"

// FlagSet wraps a [flag.FlagSet] with flags that can be shared by multiple
// subprograms. The shared flags are registered on the first call of their
// method, and later calls return the same pointer.
type FlagSet struct {
	*flag.FlagSet
	json *bool
	log  *string
}

// JSON returns a pointer to the value of the -json flag.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"show the output from -buildinfo, -version or -c in JSON")
		fs.json = &json
	}
	return fs.json
}

// Log returns a pointer to the value of the -log flag. The flag is always
// registered, and handled by Run before any subprogram is run.
func (fs *FlagSet) Log() *string {
	if fs.log == nil {
		var log string
		fs.StringVar(&log, "log", "", "a file to write debug log to")
		fs.log = &log
	}
	return fs.log
}
