package domain

// ScanDiagnostic records a child of the repository root that was skipped.
type ScanDiagnostic struct {
	Name string
	Path string
	Err  error
}

// Error implements error so diagnostics can be logged and joined directly.
func (d ScanDiagnostic) Error() string {
	return d.Name + ": " + d.Err.Error()
}

// Unwrap returns the underlying cause.
func (d ScanDiagnostic) Unwrap() error {
	return d.Err
}

// ScanResult is the outcome of listing one repository root.
type ScanResult struct {
	Root        string
	Entries     []Entry
	Diagnostics []ScanDiagnostic
}

// BuildReport summarizes one snapshot build.
type BuildReport struct {
	Snapshot    *Snapshot
	OutputPath  string
	Diagnostics []ScanDiagnostic
	// Fingerprint identifies the snapshot content, excluding its timestamp.
	Fingerprint string
	// Unchanged is true when the previous snapshot at OutputPath had the same content.
	Unchanged bool
}
