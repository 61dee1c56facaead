package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"weddingplanner/internal/domain"
)

const invitationTokenBytes = 20

type invitationService struct {
	invitationRepo  domain.InvitationRepository
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	userRepo        domain.UserRepository
	emailService    domain.EmailService
	frontendURL     string
	contextTimeout  time.Duration
}

func NewInvitationService(
	invitationRepo domain.InvitationRepository,
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	frontendURL string,
	timeout time.Duration,
) domain.InvitationService {
	return &invitationService{
		invitationRepo:  invitationRepo,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		emailService:    emailService,
		frontendURL:     strings.TrimRight(frontendURL, "/"),
		contextTimeout:  timeout,
	}
}

func (s *invitationService) CreateBatch(ctx context.Context, eventID string, invitees []domain.Invitee) ([]*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if len(invitees) == 0 {
		return nil, fmt.Errorf("%w: at least one invitee is required", domain.ErrInvalidInput)
	}
	for _, inv := range invitees {
		if !emailRegexp.MatchString(strings.TrimSpace(strings.ToLower(inv.Email))) {
			return nil, fmt.Errorf("%w: invalid invitee email %q", domain.ErrInvalidInput, inv.Email)
		}
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Invitations created before a failure are kept; the batch has no rollback.
	created := make([]*domain.Invitation, 0, len(invitees))
	for _, invitee := range invitees {
		token, err := generateToken(invitationTokenBytes)
		if err != nil {
			return nil, fmt.Errorf("generate invitation token: %w", err)
		}
		inv := &domain.Invitation{
			EventID:        eventID,
			Email:          strings.TrimSpace(strings.ToLower(invitee.Email)),
			Name:           strings.TrimSpace(invitee.Name),
			Status:         domain.InvitationPending,
			InvitationLink: token,
			CreatedAt:      time.Now(),
		}
		if err := s.invitationRepo.Create(ctx, inv); err != nil {
			return nil, fmt.Errorf("create invitation: %w", err)
		}
		if s.emailService != nil {
			data := &domain.InvitationEmailData{
				Email:      inv.Email,
				Name:       inv.Name,
				EventName:  event.Name,
				ConfirmURL: fmt.Sprintf("%s/invitations/%s", s.frontendURL, inv.InvitationLink),
			}
			if err := s.emailService.SendInvitation(ctx, data); err != nil {
				return nil, fmt.Errorf("send invitation email: %w", err)
			}
		}
		created = append(created, inv)
	}
	return created, nil
}

func (s *invitationService) Confirm(ctx context.Context, token, userID string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.GetByLink(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	if inv.Status == domain.InvitationDeclined {
		return nil, fmt.Errorf("%w: invitation was already declined", domain.ErrInvalidInput)
	}

	if err := s.invitationRepo.UpdateStatus(ctx, inv.ID, domain.InvitationConfirmed, &userID); err != nil {
		return nil, fmt.Errorf("update invitation: %w", err)
	}
	// Idempotent: confirming twice leaves a single membership row.
	if err := s.participantRepo.AddIfAbsent(ctx, inv.EventID, userID); err != nil {
		return nil, fmt.Errorf("add participant: %w", err)
	}

	inv.Status = domain.InvitationConfirmed
	inv.UserID = &userID
	return inv, nil
}

func (s *invitationService) Decline(ctx context.Context, token string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.GetByLink(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	if err := s.invitationRepo.UpdateStatus(ctx, inv.ID, domain.InvitationDeclined, nil); err != nil {
		return nil, fmt.Errorf("update invitation: %w", err)
	}
	inv.Status = domain.InvitationDeclined
	return inv, nil
}

func (s *invitationService) Details(ctx context.Context, token string) (*domain.InvitationDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.GetByLink(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, inv.EventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &domain.InvitationDetails{
		EventName: event.Name,
		Email:     inv.Email,
		Status:    inv.Status,
	}, nil
}

func (s *invitationService) List(ctx context.Context) ([]*domain.ExpandedInvitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invitations, err := s.invitationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	events := make(map[string]*domain.Event)
	expanded := make([]*domain.ExpandedInvitation, 0, len(invitations))
	for _, inv := range invitations {
		e := &domain.ExpandedInvitation{Invitation: inv}
		if event, ok := events[inv.EventID]; ok {
			e.Event = event
		} else {
			event, err := s.eventRepo.GetByID(ctx, inv.EventID)
			if err != nil {
				return nil, fmt.Errorf("get event: %w", err)
			}
			events[inv.EventID] = event
			e.Event = event
		}
		if inv.UserID != nil {
			user, err := s.userRepo.GetByID(ctx, *inv.UserID)
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return nil, fmt.Errorf("get user: %w", err)
			}
			e.User = user
		}
		expanded = append(expanded, e)
	}
	return expanded, nil
}
