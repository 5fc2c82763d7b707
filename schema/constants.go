package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for project storage.
	DatabaseBackend string

	// GraphType represents a chart that can be rendered for a project.
	GraphType string

	// ExportKind represents a dataset that can be exported for a project.
	ExportKind string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All storage backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// All graph types supported.
const (
	LineCountGraph       GraphType = "line-count"
	LineAuthorCountGraph GraphType = "line-author-count"
	TestCountGraph       GraphType = "test-count"
	TestAuthorCountGraph GraphType = "test-author-count"
	DayOfWeekGraph       GraphType = "day-of-week"
	TimeOfDayGraph       GraphType = "time-of-day"
)

// All export kinds supported.
const (
	CommitsExport ExportKind = "commits"
	DetailsExport ExportKind = "details"
	SeriesExport  ExportKind = "series"
)

// DefaultConfigFileName is the per-repository classification file looked up
// at the repository root when no explicit path is given.
const DefaultConfigFileName = "git-hammer-config.json"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid storage backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// AllGraphTypes returns every graph type in display order.
var AllGraphTypes = []GraphType{
	LineCountGraph,
	LineAuthorCountGraph,
	TestCountGraph,
	TestAuthorCountGraph,
	DayOfWeekGraph,
	TimeOfDayGraph,
}

// ValidGraphTypes lists all valid graph types.
var ValidGraphTypes = map[GraphType]struct{}{
	LineCountGraph:       {},
	LineAuthorCountGraph: {},
	TestCountGraph:       {},
	TestAuthorCountGraph: {},
	DayOfWeekGraph:       {},
	TimeOfDayGraph:       {},
}

// ValidExportKinds lists all valid export kinds.
var ValidExportKinds = map[ExportKind]struct{}{
	CommitsExport: {},
	DetailsExport: {},
	SeriesExport:  {},
}
