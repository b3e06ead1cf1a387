package usecase

import (
	"context"
	"fmt"
	"regexp"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"wastetrade-service/internal/domain"
	"wastetrade-service/internal/repository"
	"wastetrade-service/pkg/utils"
	"wastetrade-service/pkg/xerrors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AgentUsecase is the agent side of the directory: registration, lookup and
// profile updates. Credential validation and password hashing live here,
// never in the ledger.
type AgentUsecase struct {
	repo repository.AgentRepository
	refs *utils.ReferenceGenerator
	log  *zap.Logger
}

func NewAgentUsecase(repo repository.AgentRepository, refs *utils.ReferenceGenerator, log *zap.Logger) *AgentUsecase {
	return &AgentUsecase{repo: repo, refs: refs, log: log}
}

type RegisterAgentRequest struct {
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Phone    *string         `json:"phone,omitempty"`
	Address  *domain.Address `json:"address,omitempty"`
}

func (uc *AgentUsecase) RegisterAgent(ctx context.Context, req RegisterAgentRequest) (*domain.Agent, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	agent := &domain.Agent{
		Reference: uc.refs.GenerateAgentRef(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hash),
		Phone:     req.Phone,
		Address:   req.Address,
	}
	if err := uc.repo.Create(ctx, agent); err != nil {
		return nil, err
	}

	uc.log.Info("agent registered",
		zap.Int64("agent_id", agent.AgentID),
		zap.String("reference", agent.Reference))
	return agent, nil
}

func (uc *AgentUsecase) GetAgentByID(ctx context.Context, agentID int64) (*domain.Agent, error) {
	return uc.repo.GetByID(ctx, agentID)
}

func (uc *AgentUsecase) ListAgents(ctx context.Context, limit, offset int) ([]*domain.Agent, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(ctx, limit, offset)
}

// UpdateAgentProfile replaces the agent's address, looked up by email.
func (uc *AgentUsecase) UpdateAgentProfile(ctx context.Context, email string, addr *domain.Address) error {
	if addr == nil {
		return fmt.Errorf("%w: address is required", xerrors.ErrInvalidRequest)
	}

	agent, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	return uc.repo.UpdateAddress(ctx, agent.AgentID, addr)
}

func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return xerrors.ErrInvalidEmailFormat
	}
	return nil
}

// validatePassword requires at least 8 characters with a letter and a digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return xerrors.ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsLetter(c):
			hasLetter = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return xerrors.ErrWeakPassword
	}
	return nil
}
