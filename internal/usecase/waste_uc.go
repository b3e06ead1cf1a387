package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"wastetrade-service/internal/domain"
	"wastetrade-service/internal/repository"
	"wastetrade-service/pkg/utils"
	"wastetrade-service/pkg/xerrors"
)

// WasteUsecase tracks waste lots, their assignment to collecting agents and
// date-range reporting.
type WasteUsecase struct {
	wasteRepo      repository.WasteRepository
	collectionRepo repository.CollectionRepository
	agentRepo      repository.AgentRepository
	userRepo       repository.UserRepository
	refs           *utils.ReferenceGenerator
	log            *zap.Logger
}

func NewWasteUsecase(
	wasteRepo repository.WasteRepository,
	collectionRepo repository.CollectionRepository,
	agentRepo repository.AgentRepository,
	userRepo repository.UserRepository,
	refs *utils.ReferenceGenerator,
	log *zap.Logger,
) *WasteUsecase {
	return &WasteUsecase{
		wasteRepo:      wasteRepo,
		collectionRepo: collectionRepo,
		agentRepo:      agentRepo,
		userRepo:       userRepo,
		refs:           refs,
		log:            log,
	}
}

// Request/Response types

type RegisterWasteRequest struct {
	AgentID        int64           `json:"agent_id"`
	Type           string          `json:"type"`
	Quantity       string          `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Description    string          `json:"description"`
	CollectionDate time.Time       `json:"collection_date"`
}

type SellWasteRequest struct {
	UserID         int64           `json:"user_id"`
	Type           string          `json:"type"`
	Quantity       string          `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Description    string          `json:"description"`
	CollectionDate time.Time       `json:"collection_date"`
}

type AssignmentResult struct {
	WasteID int64  `json:"waste_id"`
	AgentID int64  `json:"agent_id"`
	Message string `json:"message"`
}

type CollectionResult struct {
	Reference     string          `json:"reference"`
	AgentID       int64           `json:"agent_id"`
	WasteCategory domain.Category `json:"waste_category"`
	WasteWeight   float64         `json:"waste_weight"`
	Username      string          `json:"username"`
	Message       string          `json:"message"`
}

// RegisterWasteForSale registers a waste lot offered by an agent; the lot
// starts assigned to the registering agent.
func (uc *WasteUsecase) RegisterWasteForSale(ctx context.Context, req RegisterWasteRequest) (*domain.Waste, error) {
	category, err := domain.ParseCategory(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrInvalidRequest, err)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", xerrors.ErrInvalidRequest)
	}

	exists, err := uc.agentRepo.Exists(ctx, req.AgentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check agent: %w", err)
	}
	if !exists {
		return nil, xerrors.ErrAgentNotFound
	}

	waste := &domain.Waste{
		Reference:      uc.refs.GenerateWasteRef(),
		Type:           category,
		Quantity:       req.Quantity,
		Price:          req.Price,
		Description:    req.Description,
		AgentID:        &req.AgentID,
		CollectionDate: req.CollectionDate,
	}
	if err := uc.wasteRepo.Create(ctx, waste); err != nil {
		return nil, err
	}

	uc.log.Info("waste registered for sale",
		zap.String("reference", waste.Reference),
		zap.Int64("agent_id", req.AgentID),
		zap.String("category", string(category)))
	return waste, nil
}

// SellWaste lists a user's waste lot with no assigned agent yet.
func (uc *WasteUsecase) SellWaste(ctx context.Context, req SellWasteRequest) (*domain.Waste, error) {
	category, err := domain.ParseCategory(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrInvalidRequest, err)
	}

	exists, err := uc.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, xerrors.ErrUserNotFound
	}

	waste := &domain.Waste{
		Reference:      uc.refs.GenerateWasteRef(),
		Type:           category,
		Quantity:       req.Quantity,
		Price:          req.Price,
		Description:    req.Description,
		UserID:         &req.UserID,
		CollectionDate: req.CollectionDate,
	}
	if err := uc.wasteRepo.Create(ctx, waste); err != nil {
		return nil, err
	}
	return waste, nil
}

// AssignWasteToAgent points a waste lot at an agent. Re-assignment is
// last-write-wins: the prior agent is overwritten and no history is kept.
func (uc *WasteUsecase) AssignWasteToAgent(ctx context.Context, wasteID, agentID int64) (*AssignmentResult, error) {
	exists, err := uc.agentRepo.Exists(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check agent: %w", err)
	}
	if !exists {
		return nil, xerrors.ErrAgentNotFound
	}

	if err := uc.wasteRepo.AssignAgent(ctx, wasteID, agentID); err != nil {
		return nil, err
	}

	return &AssignmentResult{
		WasteID: wasteID,
		AgentID: agentID,
		Message: "Successfully assigned",
	}, nil
}

// GenerateWasteReport produces one report line per waste lot whose
// collection date falls in [start, end] inclusive. Lots without an assigned
// agent report "Unassigned".
func (uc *WasteUsecase) GenerateWasteReport(ctx context.Context, start, end time.Time) ([]*domain.WasteReport, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", xerrors.ErrInvalidRequest)
	}

	rows, err := uc.wasteRepo.ListByCollectionDateBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := make([]*domain.WasteReport, 0, len(rows))
	for _, row := range rows {
		line := &domain.WasteReport{
			WasteID:        row.Waste.WasteID,
			Category:       row.Waste.Type,
			Quantity:       row.Waste.Quantity,
			Price:          row.Waste.Price,
			AssignedAgent:  domain.UnassignedAgent,
			CollectionDate: row.Waste.CollectionDate,
		}
		if row.AgentUsername != nil {
			line.AssignedAgent = *row.AgentUsername
		}
		report = append(report, line)
	}
	return report, nil
}

// CollectWaste records an agent's collection event. It has no balance
// effect.
func (uc *WasteUsecase) CollectWaste(ctx context.Context, agentID int64, category string, weight float64, username string) (*CollectionResult, error) {
	parsed, err := domain.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrInvalidRequest, err)
	}
	if weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", xerrors.ErrInvalidRequest)
	}

	exists, err := uc.agentRepo.Exists(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check agent: %w", err)
	}
	if !exists {
		return nil, xerrors.ErrAgentNotFound
	}

	collection := &domain.WasteCollection{
		Reference: uc.refs.GenerateCollectionRef(),
		AgentID:   agentID,
		Category:  parsed,
		Weight:    weight,
		Username:  username,
	}
	if err := uc.collectionRepo.Create(ctx, collection); err != nil {
		return nil, err
	}

	return &CollectionResult{
		Reference:     collection.Reference,
		AgentID:       agentID,
		WasteCategory: parsed,
		WasteWeight:   weight,
		Username:      username,
		Message:       "Waste collected successfully",
	}, nil
}

func (uc *WasteUsecase) ViewAllWaste(ctx context.Context, limit, offset int) ([]*domain.Waste, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.wasteRepo.ListAll(ctx, limit, offset)
}

func (uc *WasteUsecase) ListCollectionsForAgent(ctx context.Context, agentID int64, limit, offset int) ([]*domain.WasteCollection, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.collectionRepo.ListByAgent(ctx, agentID, limit, offset)
}
