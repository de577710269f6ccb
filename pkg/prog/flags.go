package prog

import "flag"

// FlagSet wraps a [flag.FlagSet] and provides methods to register flags shared
// by multiple subprograms on demand.
type FlagSet struct {
	*flag.FlagSet
	json *bool
	db   *string
}

// JSON returns a pointer to the value of the -json flag, registering it the
// first time it is called.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"show the output from -buildinfo, -version or -compileonly in JSON")
		fs.json = &json
	}
	return fs.json
}

// DB returns a pointer to the value of the -db flag, registering it the first
// time it is called.
func (fs *FlagSet) DB() *string {
	if fs.db == nil {
		var db string
		fs.StringVar(&db, "db", "", "path to the store database")
		fs.db = &db
	}
	return fs.db
}
