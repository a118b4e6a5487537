package tracing

import (
	"database/sql"
	"fmt"
	"os"

	// Registers the "sqlite3" driver with database/sql.
	_ "github.com/mattn/go-sqlite3"

	"github.com/tebeka/atexit"

	"github.com/archsim/smpl/kernel"
)

// SQLiteTraceWriter is a kernel.Hook that batches Records into a SQLite
// database, for a model that wants the trace queryable afterward rather
// than just replayed as a CSV.
type SQLiteTraceWriter struct {
	*sql.DB
	statement *sql.Stmt

	dbName    string
	ids       kernel.IDGenerator
	buffered  []Record
	batchSize int
}

// NewSQLiteTraceWriter creates a writer for dbName+".sqlite3". dbName may
// be empty, in which case Init assigns one from a fresh xid.
func NewSQLiteTraceWriter(dbName string) *SQLiteTraceWriter {
	w := &SQLiteTraceWriter{
		dbName:    dbName,
		ids:       kernel.NewXIDGenerator(),
		batchSize: 10000,
	}

	atexit.Register(func() { w.Flush() })

	return w
}

// Init opens the database and prepares the trace table and statement.
func (t *SQLiteTraceWriter) Init() {
	if t.dbName == "" {
		t.dbName = "smpl_trace_" + kernel.NewXIDGenerator().Generate()
	}

	filename := t.dbName + ".sqlite3"
	if _, err := os.Stat(filename); err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}
	t.DB = db

	t.mustExecute(`
		CREATE TABLE trace (
			id            VARCHAR(200) NOT NULL,
			time          FLOAT        NOT NULL,
			position      VARCHAR(100) NOT NULL,
			facility_id   INTEGER      NOT NULL DEFAULT -1,
			facility_name VARCHAR(100) NOT NULL DEFAULT '',
			token         VARCHAR(200) NOT NULL DEFAULT '',
			detail        TEXT         NOT NULL DEFAULT ''
		);
	`)
	t.mustExecute(`CREATE INDEX trace_time_index ON trace (time);`)
	t.mustExecute(`CREATE INDEX trace_position_index ON trace (position);`)
	t.mustExecute(`CREATE INDEX trace_facility_index ON trace (facility_id);`)

	stmt, err := t.Prepare(`INSERT INTO trace VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		panic(err)
	}
	t.statement = stmt
}

// Func implements kernel.Hook.
func (t *SQLiteTraceWriter) Func(ctx kernel.HookCtx) {
	t.buffered = append(t.buffered, newRecord(t.ids, ctx))
	if len(t.buffered) >= t.batchSize {
		t.Flush()
	}
}

// Flush writes every buffered Record inside one transaction.
func (t *SQLiteTraceWriter) Flush() {
	if len(t.buffered) == 0 {
		return
	}

	t.mustExecute("BEGIN TRANSACTION")
	for _, r := range t.buffered {
		_, err := t.statement.Exec(r.ID, r.Time, r.Position, r.FacilityID, r.FacilityName, r.Token, r.Detail)
		if err != nil {
			panic(err)
		}
	}
	t.mustExecute("COMMIT TRANSACTION")

	t.buffered = nil
}

func (t *SQLiteTraceWriter) mustExecute(query string) sql.Result {
	res, err := t.Exec(query)
	if err != nil {
		panic(err)
	}
	return res
}

// TraceQuery narrows SQLiteTraceReader.ListRecords. A zero-value query
// matches everything.
type TraceQuery struct {
	Position     string
	FacilityName string

	EnableTimeRange bool
	StartTime       float64
	EndTime         float64
}

// SQLiteTraceReader reads trace records written by SQLiteTraceWriter.
type SQLiteTraceReader struct {
	*sql.DB

	filename string
}

// NewSQLiteTraceReader creates a reader for an existing trace database.
func NewSQLiteTraceReader(filename string) *SQLiteTraceReader {
	return &SQLiteTraceReader{filename: filename}
}

// Init opens the database.
func (r *SQLiteTraceReader) Init() {
	db, err := sql.Open("sqlite3", r.filename)
	if err != nil {
		panic(err)
	}
	r.DB = db
}

// ListRecords returns every record matching query, in insertion order.
func (r *SQLiteTraceReader) ListRecords(query TraceQuery) []Record {
	sqlStr := `
		SELECT id, time, position, facility_id, facility_name, token, detail
		FROM trace
		WHERE 1=1
	`
	var args []interface{}

	if query.Position != "" {
		sqlStr += " AND position = ?"
		args = append(args, query.Position)
	}
	if query.FacilityName != "" {
		sqlStr += " AND facility_name = ?"
		args = append(args, query.FacilityName)
	}
	if query.EnableTimeRange {
		sqlStr += " AND time BETWEEN ? AND ?"
		args = append(args, query.StartTime, query.EndTime)
	}
	sqlStr += " ORDER BY rowid"

	rows, err := r.Query(sqlStr, args...)
	if err != nil {
		panic(err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		err := rows.Scan(&rec.ID, &rec.Time, &rec.Position,
			&rec.FacilityID, &rec.FacilityName, &rec.Token, &rec.Detail)
		if err != nil {
			panic(err)
		}
		records = append(records, rec)
	}

	return records
}
