package version

// Defaults holds the process-wide default dated version. Clients built
// with the same Defaults and no version of their own follow it, and read
// it on every call. It carries no locking: set it at startup, or serialize
// writers yourself.
type Defaults struct {
	version string
}

// NewDefaults returns a Defaults holding v.
func NewDefaults(v string) (*Defaults, error) {
	if err := Validate(v); err != nil {
		return nil, err
	}
	return &Defaults{version: v}, nil
}

// Set replaces the default version. An invalid v leaves the current value
// untouched.
func (d *Defaults) Set(v string) error {
	if err := Validate(v); err != nil {
		return err
	}
	d.version = v
	return nil
}

// Get returns the default version, or Example when d is nil or unset.
func (d *Defaults) Get() string {
	if d == nil || d.version == "" {
		return Example
	}
	return d.version
}
