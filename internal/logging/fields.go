package logging

// Structured field keys shared by every log call site.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldStatus     = "status"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	FieldConfig = "config"
	FieldFix    = "fix"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"

	FieldViolationsTotal = "violations_total"
	FieldCorrections     = "corrections"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	FieldRule        = "rule"
	FieldName        = "name"
	FieldSeverity    = "severity"
	FieldFixable     = "fixable"
	FieldDescription = "description"
)
