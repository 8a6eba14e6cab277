package sqlite

import (
	"database/sql"
	"fmt"
)

// schema equivalente al de PostgreSQL; las fechas se guardan como TEXT (ver timeLayout).
const schema = `
CREATE TABLE IF NOT EXISTS stock (
    ledger_number TEXT PRIMARY KEY,
    item_name     TEXT NOT NULL,
    category      TEXT NOT NULL,
    quantity      INTEGER NOT NULL CHECK (quantity >= 0),
    department    TEXT NOT NULL,
    created_at    TEXT NOT NULL,
    updated_at    TEXT NOT NULL,
    UNIQUE (item_name, department)
);

CREATE TABLE IF NOT EXISTS requests (
    id                       TEXT PRIMARY KEY,
    item_name                TEXT NOT NULL,
    category                 TEXT NOT NULL,
    quantity                 INTEGER NOT NULL CHECK (quantity >= 1),
    requested_by             TEXT NOT NULL,
    department               TEXT NOT NULL,
    status                   TEXT NOT NULL CHECK (status IN ('Pending', 'Department Approved', 'MMG Approved',
                                 'Rejected', 'Return Pending', 'Return Approved')),
    department_approved_by   TEXT NOT NULL DEFAULT '',
    approved_by              TEXT NOT NULL DEFAULT '',
    rejected_by              TEXT NOT NULL DEFAULT '',
    rejection_reason         TEXT NOT NULL DEFAULT '',
    ledger_number            TEXT NOT NULL DEFAULT '',
    related_issued_item_id   TEXT NOT NULL DEFAULT '',
    issued_item_id           TEXT NOT NULL DEFAULT '',
    department_approval_date TEXT,
    mmg_approval_date        TEXT,
    rejected_date            TEXT,
    return_date              TEXT,
    created_at               TEXT NOT NULL,
    updated_at               TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_requests_requested_by ON requests (requested_by);
CREATE INDEX IF NOT EXISTS idx_requests_department_status ON requests (department, status);
CREATE UNIQUE INDEX IF NOT EXISTS uq_requests_open_return
    ON requests (related_issued_item_id) WHERE status = 'Return Pending';

CREATE TABLE IF NOT EXISTS issued_items (
    id                     TEXT PRIMARY KEY,
    item_name              TEXT NOT NULL,
    category               TEXT NOT NULL,
    quantity               INTEGER NOT NULL CHECK (quantity >= 1),
    ledger_number          TEXT NOT NULL,
    issued_to              TEXT NOT NULL,
    approved_by            TEXT NOT NULL,
    department_approved_by TEXT NOT NULL DEFAULT '',
    approved_date          TEXT NOT NULL,
    returned               INTEGER NOT NULL DEFAULT 0,
    return_date            TEXT,
    department             TEXT NOT NULL,
    related_request_id     TEXT NOT NULL DEFAULT '',
    created_at             TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_issued_items_issued_to ON issued_items (issued_to);

CREATE TABLE IF NOT EXISTS notifications (
    id                     TEXT PRIMARY KEY,
    type                   TEXT NOT NULL,
    message                TEXT NOT NULL,
    status                 TEXT NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending', 'Completed', 'Archived')),
    recipient              TEXT NOT NULL DEFAULT '',
    recipient_role         TEXT NOT NULL DEFAULT '',
    department             TEXT NOT NULL DEFAULT '',
    related_request_id     TEXT NOT NULL DEFAULT '',
    related_issued_item_id TEXT NOT NULL DEFAULT '',
    created_by             TEXT NOT NULL DEFAULT '',
    created_at             TEXT NOT NULL,
    read_at                TEXT
);

CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications (recipient, status);
CREATE INDEX IF NOT EXISTS idx_notifications_role ON notifications (recipient_role, department, status);
CREATE INDEX IF NOT EXISTS idx_notifications_request ON notifications (related_request_id);
`

// Migrate crea el esquema si no existe.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("crear esquema sqlite: %w", err)
	}
	return nil
}
