package history

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Operation names the driver call a Record was written for.
type Operation string

const (
	OpSubmit Operation = "submit"
	OpStatus Operation = "status"
	OpKill   Operation = "kill"
)

// Record is one observed driver call: what was invoked, which job it
// concerned, the resulting status (for OpStatus) or error text (for
// any operation that failed), and when it happened.
type Record struct {
	bun.BaseModel `bun:"table:history_records,alias:hr"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Operation Operation `bun:"operation,notnull"`
	JobID     string    `bun:"job_id,notnull"`
	Status    string    `bun:"status"`
	Error     string    `bun:"error"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
