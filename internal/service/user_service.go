package service

import (
	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/internal/dto"
	"github.com/micbed86/FancyNote-sub000/pkg/code"
	"github.com/micbed86/FancyNote-sub000/pkg/util"

	"github.com/pkg/errors"
)

// Register creates an account and returns a logged-in session.
func (s *Service) Register(req *dto.UserRegisterRequest, ip string) (*dto.UserLoginResponse, *code.Code) {
	if !s.config.RegisterEnabled {
		return nil, code.ErrorUserRegisterDisabled
	}

	existing, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if existing != nil {
		return nil, code.ErrorUserExists
	}

	hashed, err := util.EncodePassword(req.Password)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Email
	}

	user, err := s.userRepo.Create(&domain.User{
		Email:          req.Email,
		Nickname:       nickname,
		Password:       hashed,
		ProjectCredits: s.config.InitialCredits,
		Settings: domain.AiSettings{
			Language: s.config.DefaultLanguage,
		},
	})
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	return s.buildSession(user, ip)
}

// Login checks the credentials and issues a token.
func (s *Service) Login(req *dto.UserLoginRequest, ip string) (*dto.UserLoginResponse, *code.Code) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if user == nil {
		return nil, code.ErrorUserNotExists
	}
	if !util.CheckPassword(user.Password, req.Password) {
		return nil, code.ErrorUserPassword
	}
	return s.buildSession(user, ip)
}

func (s *Service) buildSession(user *domain.User, ip string) (*dto.UserLoginResponse, *code.Code) {
	token, err := s.tokenManager.Generate(user.UID, user.Nickname, ip)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return &dto.UserLoginResponse{
		UID:      user.UID,
		Email:    user.Email,
		Nickname: user.Nickname,
		Token:    token,
	}, nil
}

// Profile returns the account with its AI settings and credit balance.
func (s *Service) Profile(uid int64) (*dto.UserProfileResponse, *code.Code) {
	user, err := s.userRepo.GetByUID(uid)
	if err != nil {
		return nil, code.ErrorProfileFetchFail.WithDetails(err.Error())
	}
	if user == nil {
		return nil, code.ErrorUserNotExists
	}
	return &dto.UserProfileResponse{
		UID:            user.UID,
		Email:          user.Email,
		Nickname:       user.Nickname,
		ProjectCredits: user.ProjectCredits,
		Settings:       user.Settings,
	}, nil
}

// UpdateSettings stores the per-user AI configuration.
func (s *Service) UpdateSettings(uid int64, req *dto.UserSettingsRequest) *code.Code {
	settings := req.ToDomain()
	if settings.Language == "" {
		settings.Language = s.config.DefaultLanguage
	}
	if err := s.userRepo.UpdateSettings(uid, settings); err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}
	return nil
}

// userSettings loads the effective AI settings for a pipeline run.
func (s *Service) userSettings(uid int64) (*domain.User, error) {
	user, err := s.userRepo.GetByUID(uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.Errorf("user %d not found", uid)
	}
	if user.Settings.Language == "" {
		user.Settings.Language = s.config.DefaultLanguage
	}
	if user.Settings.TranscribeLang == "" {
		user.Settings.TranscribeLang = s.config.DefaultTranscribeLang
	}
	return user, nil
}
