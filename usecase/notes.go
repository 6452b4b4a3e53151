package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"tonotes/dto"
	"tonotes/model"
	"tonotes/utils"
)

var (
	ErrNoteNotFound   = errors.New("note not found")
	ErrEmptyKeyword   = errors.New("keyword is required")
	ErrNoSearchResult = errors.New("no matching notes")
)

type NoteService struct {
	NoteRepo NoteRepository
	UserRepo UserRepository
}

// FeedMode selects the pagination style of the public feed.
const (
	FeedModePage   = "page"
	FeedModeCursor = "cursor"
)

type FeedOptions struct {
	Status string // accepted for compatibility; the feed never widens past approved
	Mode   string
	Page   int
	Limit  int
	Cursor string
}

// GetFeed returns one page of the public feed. Visibility is non-deleted,
// approved notes; a status parameter can only narrow further, so anything
// other than approved yields an empty collection.
func (svc *NoteService) GetFeed(ctx context.Context, opts FeedOptions) (interface{}, error) {
	notes, err := svc.NoteRepo.ListNotes(ctx, NoteFilter{Status: model.StatusApproved})
	if err != nil {
		return nil, err
	}
	if opts.Status != "" && opts.Status != model.StatusApproved {
		notes = nil
	}

	if opts.Mode == FeedModeCursor {
		return PaginateByCursor(notes, opts.Cursor, opts.Limit)
	}
	return PaginateByPage(notes, opts.Page, opts.Limit), nil
}

// GetNoteDetail returns a note with each comment enriched with its
// author's nickname and avatar.
func (svc *NoteService) GetNoteDetail(ctx context.Context, noteID string) (*dto.NoteDetail, error) {
	note, err := svc.NoteRepo.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil || note.IsDeleted {
		return nil, ErrNoteNotFound
	}

	enriched := make([]dto.EnrichedComment, 0, len(note.Comments))
	for _, comment := range note.Comments {
		ec := dto.EnrichedComment{Comment: comment}
		author, err := svc.UserRepo.FindUserByID(ctx, comment.UserID)
		if err != nil {
			return nil, err
		}
		if author != nil {
			ec.UserInfo = &dto.CommentUserInfo{
				Nickname: author.Nickname,
				Avatar:   author.Avatar,
			}
		}
		enriched = append(enriched, ec)
	}

	return &dto.NoteDetail{Note: *note, Comments: enriched}, nil
}

// Search matches notes whose title contains the keyword or whose author's
// nickname contains it, case-insensitively, de-duplicated by note id.
func (svc *NoteService) Search(ctx context.Context, keyword string) ([]*model.Note, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	seen := make(map[string]bool)
	var results []*model.Note

	authors, err := svc.UserRepo.SearchByNickname(ctx, keyword)
	if err != nil {
		return nil, err
	}
	for _, author := range authors {
		notes, err := svc.NoteRepo.ListNotes(ctx, NoteFilter{UserID: author.UserID})
		if err != nil {
			return nil, err
		}
		for _, note := range notes {
			if !seen[note.ID] {
				seen[note.ID] = true
				results = append(results, note)
			}
		}
	}

	byTitle, err := svc.NoteRepo.SearchByTitle(ctx, keyword)
	if err != nil {
		return nil, err
	}
	for _, note := range byTitle {
		if !seen[note.ID] {
			seen[note.ID] = true
			results = append(results, note)
		}
	}

	if len(results) == 0 {
		return nil, ErrNoSearchResult
	}
	return results, nil
}

// AddComment appends an immutable comment to a visible note.
func (svc *NoteService) AddComment(ctx context.Context, noteID, userID, content string) (*model.Comment, error) {
	note, err := svc.NoteRepo.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil || note.IsDeleted {
		return nil, ErrNoteNotFound
	}

	comment := &model.Comment{
		ID:        utils.GenerateID("comment"),
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := svc.NoteRepo.AppendComment(ctx, noteID, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

type PublishInput struct {
	UserID   string
	Title    string
	Content  string
	Location string
	Images   []string
	Video    string
}

// Publish creates a note in pending status awaiting moderation.
func (svc *NoteService) Publish(ctx context.Context, in PublishInput) (*model.Note, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, errors.New("note title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, errors.New("note content is required")
	}

	images := in.Images
	if images == nil {
		images = []string{}
	}

	now := time.Now()
	note := &model.Note{
		ID:        utils.GenerateID("note"),
		UserID:    in.UserID,
		Title:     in.Title,
		Content:   in.Content,
		Location:  in.Location,
		Images:    images,
		Video:     in.Video,
		Status:    model.StatusPending,
		Comments:  []model.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := svc.NoteRepo.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}
