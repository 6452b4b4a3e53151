package usecase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tonotes/dto"
	"tonotes/filestore"
	"tonotes/model"
	"tonotes/usecase"
)

func openStore(t *testing.T) *filestore.Store {
	t.Helper()
	store, err := filestore.Open(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedNote(t *testing.T, store *filestore.Store, id, userID, status string, deleted bool) {
	t.Helper()
	now := time.Now()
	note := &model.Note{
		ID:        id,
		UserID:    userID,
		Title:     "Trip " + id,
		Content:   "content",
		Images:    []string{},
		Status:    status,
		Comments:  []model.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.CreateNote(context.Background(), note); err != nil {
		t.Fatalf("seed note %s: %v", id, err)
	}
	if deleted {
		if err := store.MarkDeleted(context.Background(), id); err != nil {
			t.Fatalf("seed delete %s: %v", id, err)
		}
	}
}

func seedUser(t *testing.T, store *filestore.Store, id, nickname string) {
	t.Helper()
	err := store.CreateUser(context.Background(), &model.User{
		UserID:   id,
		Email:    nickname + "@example.com",
		Nickname: nickname,
		Avatar:   "https://example.com/" + id + ".png",
		Follow:   []string{},
		Fans:     []string{},
		Role:     model.RoleUser,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}

func TestGetFeedVisibility(t *testing.T) {
	store := openStore(t)
	svc := &usecase.NoteService{NoteRepo: store, UserRepo: store}
	ctx := context.Background()

	seedNote(t, store, "note_1", "user_a", model.StatusApproved, false)
	seedNote(t, store, "note_2", "user_a", model.StatusPending, false)
	seedNote(t, store, "note_3", "user_a", model.StatusRejected, false)
	seedNote(t, store, "note_4", "user_a", model.StatusApproved, true)

	result, err := svc.GetFeed(ctx, usecase.FeedOptions{Mode: usecase.FeedModePage})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	page := result.(*dto.PagedNotes)
	if len(page.Data) != 1 || page.Data[0].ID != "note_1" {
		t.Errorf("feed should contain only the approved, non-deleted note, got %d items", len(page.Data))
	}

	// A status filter can only narrow: asking for pending yields nothing.
	result, err = svc.GetFeed(ctx, usecase.FeedOptions{Mode: usecase.FeedModePage, Status: model.StatusPending})
	if err != nil {
		t.Fatalf("narrowed feed: %v", err)
	}
	page = result.(*dto.PagedNotes)
	if len(page.Data) != 0 {
		t.Errorf("status=pending should be empty, got %d items", len(page.Data))
	}
}

func TestGetFeedCursorMode(t *testing.T) {
	store := openStore(t)
	svc := &usecase.NoteService{NoteRepo: store, UserRepo: store}
	ctx := context.Background()

	for _, id := range []string{"note_1", "note_2", "note_3"} {
		seedNote(t, store, id, "user_a", model.StatusApproved, false)
	}

	result, err := svc.GetFeed(ctx, usecase.FeedOptions{Mode: usecase.FeedModeCursor, Limit: 2})
	if err != nil {
		t.Fatalf("cursor feed: %v", err)
	}
	window := result.(*dto.CursorNotes)
	if len(window.Data) != 2 || !window.HasMore || window.NextCursor == nil {
		t.Fatalf("first window wrong: %+v", window)
	}

	_, err = svc.GetFeed(ctx, usecase.FeedOptions{Mode: usecase.FeedModeCursor, Cursor: "note_bogus"})
	if err != usecase.ErrCursorNotFound {
		t.Errorf("bogus cursor: got %v, want ErrCursorNotFound", err)
	}
}

func TestGetNoteDetailEnrichesComments(t *testing.T) {
	store := openStore(t)
	svc := &usecase.NoteService{NoteRepo: store, UserRepo: store}
	ctx := context.Background()

	seedUser(t, store, "user_b", "bob")
	seedNote(t, store, "note_1", "user_a", model.StatusApproved, false)

	if _, err := svc.AddComment(ctx, "note_1", "user_b", "great trip"); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if _, err := svc.AddComment(ctx, "note_1", "user_gone", "me too"); err != nil {
		t.Fatalf("add comment: %v", err)
	}

	detail, err := svc.GetNoteDetail(ctx, "note_1")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if len(detail.Comments) != 2 {
		t.Fatalf("comments = %d, want 2", len(detail.Comments))
	}
	if detail.Comments[0].UserInfo == nil || detail.Comments[0].UserInfo.Nickname != "bob" {
		t.Errorf("first comment not enriched: %+v", detail.Comments[0].UserInfo)
	}
	if detail.Comments[1].UserInfo != nil {
		t.Errorf("comment by unknown user should have nil user_info")
	}

	if _, err := svc.GetNoteDetail(ctx, "note_missing"); err != usecase.ErrNoteNotFound {
		t.Errorf("missing note: got %v, want ErrNoteNotFound", err)
	}
}

func TestSearchMatchesTitleAndAuthor(t *testing.T) {
	store := openStore(t)
	svc := &usecase.NoteService{NoteRepo: store, UserRepo: store}
	ctx := context.Background()

	seedUser(t, store, "user_a", "wanderer")
	seedNote(t, store, "note_1", "user_a", model.StatusApproved, false)
	seedNote(t, store, "note_2", "user_b", model.StatusApproved, false)

	// Matches note_1 by author nickname and note_1's title too; must not
	// duplicate.
	results, err := svc.Search(ctx, "wander")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "note_1" {
		t.Errorf("author search: got %d results", len(results))
	}

	results, err = svc.Search(ctx, "Trip note_2")
	if err != nil {
		t.Fatalf("title search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "note_2" {
		t.Errorf("title search: got %d results", len(results))
	}

	if _, err := svc.Search(ctx, "   "); err != usecase.ErrEmptyKeyword {
		t.Errorf("blank keyword: got %v, want ErrEmptyKeyword", err)
	}
	if _, err := svc.Search(ctx, "nothing-matches-this"); err != usecase.ErrNoSearchResult {
		t.Errorf("no hits: got %v, want ErrNoSearchResult", err)
	}
}

func TestPublishStartsPending(t *testing.T) {
	store := openStore(t)
	svc := &usecase.NoteService{NoteRepo: store, UserRepo: store}
	ctx := context.Background()

	note, err := svc.Publish(ctx, usecase.PublishInput{
		UserID:  "user_a",
		Title:   "Lakeside weekend",
		Content: "water everywhere",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if note.Status != model.StatusPending {
		t.Errorf("status = %s, want pending", note.Status)
	}
	if note.Images == nil || len(note.Images) != 0 {
		t.Errorf("images should be an empty slice, got %v", note.Images)
	}

	// Pending notes stay out of the public feed until approved.
	feed, err := svc.GetFeed(ctx, usecase.FeedOptions{Mode: usecase.FeedModePage})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed.(*dto.PagedNotes).Data) != 0 {
		t.Error("pending note leaked into the feed")
	}

	if _, err := svc.Publish(ctx, usecase.PublishInput{UserID: "user_a", Title: " ", Content: "x"}); err == nil {
		t.Error("blank title should fail")
	}
}

func TestModerationTransitions(t *testing.T) {
	store := openStore(t)
	svc := &usecase.ModerationService{NoteRepo: store}
	notes := &usecase.NoteService{NoteRepo: store, UserRepo: store}
	ctx := context.Background()

	seedNote(t, store, "note_1", "user_a", model.StatusPending, false)

	if err := svc.Reject(ctx, "note_1", ""); err != usecase.ErrEmptyReason {
		t.Errorf("empty reason: got %v, want ErrEmptyReason", err)
	}
	if err := svc.Reject(ctx, "note_1", "off topic"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if err := svc.Approve(ctx, "note_1"); err != nil {
		t.Fatalf("approve after reject: %v", err)
	}

	detail, err := notes.GetNoteDetail(ctx, "note_1")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Status != model.StatusApproved || detail.RejectionReason != "" {
		t.Errorf("after re-approve: status=%s reason=%q", detail.Status, detail.RejectionReason)
	}

	if err := svc.Approve(ctx, "note_missing"); err != usecase.ErrNoteNotFound {
		t.Errorf("unknown id: got %v, want ErrNoteNotFound", err)
	}

	if err := svc.Delete(ctx, "note_1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	queue, err := svc.Queue(ctx, "")
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	if len(queue) != 0 {
		t.Errorf("deleted note still in queue")
	}
}
