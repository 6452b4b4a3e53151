package filestore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tonotes/model"
	"tonotes/usecase"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testNote(id, userID, status string) *model.Note {
	now := time.Now()
	return &model.Note{
		ID:        id,
		UserID:    userID,
		Title:     "Trip to " + id,
		Content:   "content",
		Images:    []string{},
		Status:    status,
		Comments:  []model.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testUser(id, nickname string) *model.User {
	return &model.User{
		UserID:   id,
		Email:    nickname + "@example.com",
		Nickname: nickname,
		Follow:   []string{},
		Fans:     []string{},
		Role:     model.RoleUser,
	}
}

func TestNoteLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.CreateNote(ctx, testNote("note_1", "user_1", model.StatusPending)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.CreateNote(ctx, testNote("note_1", "user_1", model.StatusPending)); err != usecase.ErrConflict {
		t.Errorf("duplicate create: got %v, want ErrConflict", err)
	}

	if err := store.UpdateStatus(ctx, "note_1", model.StatusRejected, "blurry photos"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	note, err := store.GetNote(ctx, "note_1")
	if err != nil || note == nil {
		t.Fatalf("get: %v", err)
	}
	if note.Status != model.StatusRejected || note.RejectionReason != "blurry photos" {
		t.Errorf("after reject: status=%s reason=%q", note.Status, note.RejectionReason)
	}

	// Re-approving a rejected note must clear the reason.
	if err := store.UpdateStatus(ctx, "note_1", model.StatusApproved, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}
	note, _ = store.GetNote(ctx, "note_1")
	if note.Status != model.StatusApproved || note.RejectionReason != "" {
		t.Errorf("after approve: status=%s reason=%q", note.Status, note.RejectionReason)
	}

	if err := store.MarkDeleted(ctx, "note_1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	notes, err := store.ListNotes(ctx, usecase.NoteFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("deleted note still listed: %d notes", len(notes))
	}

	if err := store.UpdateStatus(ctx, "note_missing", model.StatusApproved, ""); err != usecase.ErrNotFound {
		t.Errorf("unknown id: got %v, want ErrNotFound", err)
	}
}

func TestListNotesFilters(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.CreateNote(ctx, testNote("note_1", "user_a", model.StatusApproved))
	store.CreateNote(ctx, testNote("note_2", "user_b", model.StatusApproved))
	store.CreateNote(ctx, testNote("note_3", "user_a", model.StatusPending))

	approved, _ := store.ListNotes(ctx, usecase.NoteFilter{Status: model.StatusApproved})
	if len(approved) != 2 {
		t.Errorf("approved: got %d, want 2", len(approved))
	}

	byUser, _ := store.ListNotes(ctx, usecase.NoteFilter{UserID: "user_a"})
	if len(byUser) != 2 {
		t.Errorf("user_a: got %d, want 2", len(byUser))
	}

	both, _ := store.ListNotes(ctx, usecase.NoteFilter{Status: model.StatusPending, UserID: "user_a"})
	if len(both) != 1 || both[0].ID != "note_3" {
		t.Errorf("combined filter: got %v", both)
	}
}

func TestAppendCommentOnDeletedNote(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.CreateNote(ctx, testNote("note_1", "user_a", model.StatusApproved))
	store.MarkDeleted(ctx, "note_1")

	err := store.AppendComment(ctx, "note_1", &model.Comment{ID: "comment_1", UserID: "user_b", Content: "nice"})
	if err != usecase.ErrNotFound {
		t.Errorf("comment on deleted note: got %v, want ErrNotFound", err)
	}
}

func TestFollowEdgesAreIdempotentSets(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.CreateUser(ctx, testUser("user_a", "alice"))

	for i := 0; i < 3; i++ {
		if err := store.AddFollow(ctx, "user_a", "user_b"); err != nil {
			t.Fatalf("add follow: %v", err)
		}
	}
	user, _ := store.FindUserByID(ctx, "user_a")
	if len(user.Follow) != 1 {
		t.Errorf("follow list = %v, want single entry", user.Follow)
	}

	store.RemoveFollow(ctx, "user_a", "user_b")
	store.RemoveFollow(ctx, "user_a", "user_b")
	user, _ = store.FindUserByID(ctx, "user_a")
	if len(user.Follow) != 0 {
		t.Errorf("follow list after removal = %v, want empty", user.Follow)
	}

	if err := store.AddFollow(ctx, "user_missing", "user_b"); err != usecase.ErrNotFound {
		t.Errorf("missing user: got %v, want ErrNotFound", err)
	}
}

func TestCreateUserConflicts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, testUser("user_a", "alice")); err != nil {
		t.Fatalf("create: %v", err)
	}

	dupEmail := testUser("user_b", "bob")
	dupEmail.Email = "alice@example.com"
	if err := store.CreateUser(ctx, dupEmail); err != usecase.ErrConflict {
		t.Errorf("duplicate email: got %v, want ErrConflict", err)
	}

	if err := store.CreateUser(ctx, testUser("user_c", "alice")); err != usecase.ErrConflict {
		t.Errorf("duplicate nickname: got %v, want ErrConflict", err)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	store.CreateNote(ctx, testNote("note_1", "user_a", model.StatusApproved))
	store.CreateUser(ctx, testUser("user_a", "alice"))
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	note, err := reopened.GetNote(ctx, "note_1")
	if err != nil || note == nil {
		t.Fatalf("note did not survive reopen: %v", err)
	}
	user, err := reopened.FindUserByNickname(ctx, "alice")
	if err != nil || user == nil {
		t.Fatalf("user did not survive reopen: %v", err)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.CreateNote(ctx, testNote("note_1", "user_a", model.StatusApproved))

	note, _ := store.GetNote(ctx, "note_1")
	note.Title = "mutated"

	again, _ := store.GetNote(ctx, "note_1")
	if again.Title == "mutated" {
		t.Error("mutating a returned note leaked into the store")
	}
}

func TestSessions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	now := time.Now()
	for i, id := range []string{"session_1", "session_2"} {
		store.CreateSession(ctx, &model.Session{
			SessionID: id,
			UserID:    "user_a",
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
			IsActive:  true,
		})
	}
	store.CreateSession(ctx, &model.Session{SessionID: "session_3", UserID: "user_b", IsActive: true})

	active, err := store.GetUserActiveSessions(ctx, "user_a")
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active sessions = %d, want 2", len(active))
	}

	if err := store.EndUserSessions(ctx, "user_a"); err != nil {
		t.Fatalf("end sessions: %v", err)
	}
	active, _ = store.GetUserActiveSessions(ctx, "user_a")
	if len(active) != 0 {
		t.Errorf("sessions still active after logout: %d", len(active))
	}
	other, _ := store.GetUserActiveSessions(ctx, "user_b")
	if len(other) != 1 {
		t.Errorf("other user's sessions were ended")
	}
}
