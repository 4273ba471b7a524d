package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/internal/modules/complaint/dto"
	"anoa.com/marketplace/internal/modules/complaint/repository"
	"anoa.com/marketplace/pkg/apperror"
)

type ComplaintService interface {
	Create(ctx context.Context, userID uuid.UUID, text string) (*dto.ComplaintResponse, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]dto.ComplaintResponse, error)
	ListAll(ctx context.Context) ([]dto.ComplaintResponse, error)
	Reply(ctx context.Context, complaintID uuid.UUID, reply string) (*dto.ComplaintResponse, error)
}

type complaintService struct {
	repo repository.ComplaintRepository
}

func NewComplaintService(repo repository.ComplaintRepository) ComplaintService {
	return &complaintService{repo: repo}
}

func (s *complaintService) Create(ctx context.Context, userID uuid.UUID, text string) (*dto.ComplaintResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.Validation("complaint", "is required")
	}

	complaint := &entity.Complaint{
		UserID:    userID,
		Complaint: text,
		Status:    entity.ComplaintPending,
	}
	if err := s.repo.Create(ctx, complaint); err != nil {
		return nil, err
	}

	res := dto.NewComplaintResponse(complaint)
	return &res, nil
}

func (s *complaintService) ListMine(ctx context.Context, userID uuid.UUID) ([]dto.ComplaintResponse, error) {
	complaints, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewComplaintResponses(complaints), nil
}

func (s *complaintService) ListAll(ctx context.Context) ([]dto.ComplaintResponse, error) {
	complaints, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewComplaintResponses(complaints), nil
}

func (s *complaintService) Reply(ctx context.Context, complaintID uuid.UUID, reply string) (*dto.ComplaintResponse, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, apperror.Validation("reply", "is required")
	}

	complaint, err := s.repo.FindByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("complaint not found")
		}
		return nil, err
	}

	complaint.Reply = reply
	complaint.Status = entity.ComplaintReplied
	if err := s.repo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	res := dto.NewComplaintResponse(complaint)
	return &res, nil
}
