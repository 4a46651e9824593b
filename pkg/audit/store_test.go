package audit

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/rolevend/rolevend/pkg/model"
)

func TestStoreSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)

	event := RequestedEvent{
		ProjectID:   "data-pipeline",
		SessionID:   "abc-123",
		RequesterID: "alice",
		Tier:        model.TierDeveloper,
		Success:     true,
	}

	mock.ExpectExec(`INSERT INTO audit_events`).
		WithArgs(
			FacilityAuthPriv,  // facility
			int(SeverityInfo), // severity
			sqlmock.AnyArg(),  // timestamp
			sqlmock.AnyArg(),  // hostname
			"rolevend",        // appname
			sqlmock.AnyArg(),  // procid
			"role-request",    // msgid
			sqlmock.AnyArg(),  // sdata (JSON)
			sqlmock.AnyArg(),  // message
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Save(event); err != nil {
		t.Errorf("Save() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreSaveError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)

	mock.ExpectExec(`INSERT INTO audit_events`).
		WillReturnError(errors.New("connection lost"))

	event := ExpiredEvent{ProjectID: "proj", SessionID: "abc", RequesterID: "alice", Success: true}
	if err := store.Save(event); err == nil {
		t.Error("Save() expected error, got nil")
	}
}

func TestNilStoreSave(t *testing.T) {
	store := NewStoreWithDB(nil)

	event := RevokedEvent{ProjectID: "proj", SessionID: "abc", RequesterID: "alice", Success: true}
	if err := store.Save(event); err != nil {
		t.Errorf("Save() on nil db error = %v", err)
	}
}
