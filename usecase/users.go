package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"tonotes/dto"
	"tonotes/model"
	"tonotes/services"
	"tonotes/utils"

	"github.com/pquerna/otp/totp"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid nickname or password")
	ErrTwoFactorRequired  = errors.New("two-factor code required")
	ErrInvalidTwoFactor   = errors.New("invalid two-factor code")
	ErrWrongPassword      = errors.New("old password does not match")
)

type UserService struct {
	UserRepo UserRepository
	NoteRepo NoteRepository
}

// Register creates a user with a hashed password and a random avatar,
// mirroring the defaults the original client expects. Duplicate email or
// nickname surfaces as ErrConflict.
func (svc *UserService) Register(ctx context.Context, email, nickname, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	nickname = strings.TrimSpace(nickname)
	if email == "" || nickname == "" || password == "" {
		return nil, errors.New("email, nickname and password are required")
	}

	if existing, err := svc.UserRepo.FindUserByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrConflict
	}
	if existing, err := svc.UserRepo.FindUserByNickname(ctx, nickname); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrConflict
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		UserID:    utils.GenerateID("user"),
		Email:     email,
		Password:  hash,
		Nickname:  nickname,
		Avatar:    fmt.Sprintf("https://picsum.photos/360/460?random=%d", rand.Intn(1000)),
		Follow:    []string{},
		Fans:      []string{},
		Role:      model.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := svc.UserRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies nickname/password and, when the account has TOTP
// enabled, the one-time code.
func (svc *UserService) Authenticate(ctx context.Context, nickname, password, twoFactorCode string) (*model.User, error) {
	user, err := svc.UserRepo.FindUserByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := services.VerifyPassword(user.Password, password)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	if user.TwoFactorEnabled {
		if twoFactorCode == "" {
			return nil, ErrTwoFactorRequired
		}
		if !totp.Validate(twoFactorCode, user.TwoFactorSecret) {
			return nil, ErrInvalidTwoFactor
		}
	}

	return user, nil
}

// GetProfile returns a user and their visible notes.
func (svc *UserService) GetProfile(ctx context.Context, userID string) (*dto.UserProfile, error) {
	user, err := svc.UserRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	notes, err := svc.NoteRepo.ListNotes(ctx, NoteFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	return &dto.UserProfile{User: *user, Notes: notes}, nil
}

// UpdateUser applies profile field changes, and changes the password when
// both password fields are supplied (old value verified first).
func (svc *UserService) UpdateUser(ctx context.Context, userID string, req *dto.UpdateUserRequest) error {
	user, err := svc.UserRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if req.OldPassword != "" || req.NewPassword != "" {
		if req.OldPassword == "" || req.NewPassword == "" {
			return errors.New("both oldPassword and newPassword are required")
		}
		match, err := services.VerifyPassword(user.Password, req.OldPassword)
		if err != nil || !match {
			return ErrWrongPassword
		}
		hash, err := services.HashPassword(req.NewPassword)
		if err != nil {
			return err
		}
		if err := svc.UserRepo.UpdatePassword(ctx, userID, hash); err != nil {
			return err
		}
	}

	if req.Nickname != "" && req.Nickname != user.Nickname {
		if existing, err := svc.UserRepo.FindUserByNickname(ctx, req.Nickname); err != nil {
			return err
		} else if existing != nil {
			return ErrConflict
		}
		user.Nickname = req.Nickname
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.Birthday != "" {
		user.Birthday = req.Birthday
	}
	if req.City != "" {
		user.City = req.City
	}
	if req.Signature != "" {
		user.Signature = req.Signature
	}
	user.UpdatedAt = time.Now()

	return svc.UserRepo.UpdateProfile(ctx, user)
}

// Follow inserts the edge on both sides. The two writes are independent
// and best-effort; a failure in between can leave an asymmetric edge.
// Both inserts are idempotent, so retrying converges.
func (svc *UserService) Follow(ctx context.Context, userID, followID string) error {
	if err := svc.requireBoth(ctx, userID, followID); err != nil {
		return err
	}
	if err := svc.UserRepo.AddFollow(ctx, userID, followID); err != nil {
		return err
	}
	return svc.UserRepo.AddFan(ctx, followID, userID)
}

// Unfollow removes the edge on both sides, idempotently.
func (svc *UserService) Unfollow(ctx context.Context, userID, followID string) error {
	if err := svc.requireBoth(ctx, userID, followID); err != nil {
		return err
	}
	if err := svc.UserRepo.RemoveFollow(ctx, userID, followID); err != nil {
		return err
	}
	return svc.UserRepo.RemoveFan(ctx, followID, userID)
}

// IsFollowing reports membership of followID in userID's follow list.
func (svc *UserService) IsFollowing(ctx context.Context, userID, followID string) (bool, error) {
	user, err := svc.UserRepo.FindUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, ErrUserNotFound
	}
	for _, id := range user.Follow {
		if id == followID {
			return true, nil
		}
	}
	return false, nil
}

func (svc *UserService) requireBoth(ctx context.Context, userID, followID string) error {
	for _, id := range []string{userID, followID} {
		user, err := svc.UserRepo.FindUserByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
	}
	return nil
}

// SetupTwoFactor generates and stores a TOTP secret for the account.
// The secret stays dormant until confirmed with a valid code.
func (svc *UserService) SetupTwoFactor(ctx context.Context, userID string) (secret, url string, err error) {
	user, err := svc.UserRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", ErrUserNotFound
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "travelnotes",
		AccountName: user.Email,
	})
	if err != nil {
		return "", "", err
	}

	if err := svc.UserRepo.SetTwoFactor(ctx, userID, key.Secret(), false); err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// ConfirmTwoFactor enables TOTP once the user proves possession of the
// secret with a valid code.
func (svc *UserService) ConfirmTwoFactor(ctx context.Context, userID, code string) error {
	user, err := svc.UserRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.TwoFactorSecret == "" || !totp.Validate(code, user.TwoFactorSecret) {
		return ErrInvalidTwoFactor
	}
	return svc.UserRepo.SetTwoFactor(ctx, userID, user.TwoFactorSecret, true)
}

// DisableTwoFactor turns TOTP off after verifying a current code.
func (svc *UserService) DisableTwoFactor(ctx context.Context, userID, code string) error {
	user, err := svc.UserRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !user.TwoFactorEnabled {
		return nil
	}
	if !totp.Validate(code, user.TwoFactorSecret) {
		return ErrInvalidTwoFactor
	}
	return svc.UserRepo.SetTwoFactor(ctx, userID, "", false)
}
