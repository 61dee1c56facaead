package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"weddingplanner/internal/domain"
)

const maxNameLength = 100

var (
	nameRegexp    = regexp.MustCompile(`^[A-Za-z0-9\s]+$`)
	addressRegexp = regexp.MustCompile(`^[A-Za-z0-9\s,.\-/]+$`)
)

type eventService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	invitationRepo  domain.InvitationRepository
	scheduleRepo    domain.ScheduleItemRepository
	photoRepo       domain.PhotoRepository
	userRepo        domain.UserRepository
	fileStore       domain.PhotoFileStore
	reportWriter    domain.EventReportWriter
	logger          *slog.Logger
	contextTimeout  time.Duration
}

func NewEventService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	invitationRepo domain.InvitationRepository,
	scheduleRepo domain.ScheduleItemRepository,
	photoRepo domain.PhotoRepository,
	userRepo domain.UserRepository,
	fileStore domain.PhotoFileStore,
	reportWriter domain.EventReportWriter,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		invitationRepo:  invitationRepo,
		scheduleRepo:    scheduleRepo,
		photoRepo:       photoRepo,
		userRepo:        userRepo,
		fileStore:       fileStore,
		reportWriter:    reportWriter,
		logger:          logger,
		contextTimeout:  timeout,
	}
}

func (s *eventService) List(ctx context.Context) ([]*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	details := make([]*domain.EventDetails, 0, len(events))
	for _, e := range events {
		d := &domain.EventDetails{Event: e}
		if d.Organizers, err = s.eventRepo.ListOrganizers(ctx, e.ID); err != nil {
			return nil, fmt.Errorf("list organizers: %w", err)
		}
		if d.Invitations, err = s.invitationRepo.ListByEventID(ctx, e.ID); err != nil {
			return nil, fmt.Errorf("list invitations: %w", err)
		}
		if d.ScheduleItems, err = s.scheduleRepo.ListByEventID(ctx, e.ID); err != nil {
			return nil, fmt.Errorf("list schedule items: %w", err)
		}
		if d.Photos, err = s.photoRepo.ListByEventID(ctx, e.ID); err != nil {
			return nil, fmt.Errorf("list photos: %w", err)
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *eventService) Create(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateEventFields(in.Name, in.Address, in.StartDateTime, in.EndDateTime); err != nil {
		return nil, err
	}

	// The creator is always an organizer, listed first.
	organizerIDs := []string{in.ActorID}
	for _, id := range in.OrganizerIDs {
		if id != in.ActorID {
			organizerIDs = append(organizerIDs, id)
		}
	}

	now := time.Now()
	event := &domain.Event{
		Name:          strings.TrimSpace(in.Name),
		StartDateTime: in.StartDateTime,
		EndDateTime:   in.EndDateTime,
		Address:       strings.TrimSpace(in.Address),
		OrganizerIDs:  organizerIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	if in.Photo != nil {
		if err := s.attachPhoto(ctx, event.ID, in.ActorID, in.Photo); err != nil {
			return nil, err
		}
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, eventID, actorID string, in domain.UpdateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	isOrganizer, err := s.eventRepo.IsOrganizer(ctx, eventID, actorID)
	if err != nil {
		return nil, fmt.Errorf("check organizer: %w", err)
	}
	if !isOrganizer {
		return nil, domain.ErrForbidden
	}

	current, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	name, address := current.Name, current.Address
	start, end := current.StartDateTime, current.EndDateTime
	if in.Patch.Name != nil {
		name = *in.Patch.Name
	}
	if in.Patch.Address != nil {
		address = *in.Patch.Address
	}
	if in.Patch.StartDateTime != nil {
		start = *in.Patch.StartDateTime
	}
	if in.Patch.EndDateTime != nil {
		end = *in.Patch.EndDateTime
	}
	if err := validateEventFields(name, address, start, end); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.Update(ctx, eventID, in.Patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	if in.ReplacePhoto && in.Photo != nil {
		front, err := s.photoRepo.GetFront(ctx, eventID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get front photo: %w", err)
		}
		if err := s.attachPhoto(ctx, eventID, actorID, in.Photo); err != nil {
			return nil, err
		}
		if front != nil {
			if err := s.photoRepo.Delete(ctx, front.ID); err != nil {
				return nil, fmt.Errorf("delete replaced photo: %w", err)
			}
			if err := s.fileStore.Remove(front.FilePath); err != nil {
				s.logger.Warn("failed to remove replaced photo file", "path", front.FilePath, "error", err)
			}
		}
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, eventID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	isOrganizer, err := s.eventRepo.IsOrganizer(ctx, eventID, actorID)
	if err != nil {
		return fmt.Errorf("check organizer: %w", err)
	}
	if !isOrganizer {
		return domain.ErrForbidden
	}

	photos, err := s.photoRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("list photos: %w", err)
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}

	// Row deletes committed; file removal is best-effort.
	for _, p := range photos {
		if err := s.fileStore.Remove(p.FilePath); err != nil {
			s.logger.Warn("failed to remove photo file", "path", p.FilePath, "error", err)
		}
	}
	return nil
}

func (s *eventService) ExportExcel(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	rows := make([]domain.EventReportRow, 0, len(events))
	for _, e := range events {
		organizers, err := s.eventRepo.ListOrganizers(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("list organizers: %w", err)
		}
		emails := make([]string, 0, len(organizers))
		for _, o := range organizers {
			emails = append(emails, o.Email)
		}
		rows = append(rows, domain.EventReportRow{
			Name:            e.Name,
			StartDateTime:   e.StartDateTime,
			EndDateTime:     e.EndDateTime,
			Address:         e.Address,
			OrganizerEmails: emails,
		})
	}

	data, err := s.reportWriter.WriteEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return data, nil
}

func (s *eventService) AddParticipant(ctx context.Context, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	// Organizers are already members of the event.
	isOrganizer, err := s.eventRepo.IsOrganizer(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("check organizer: %w", err)
	}
	if isOrganizer {
		return domain.ErrAlreadyParticipant
	}
	if err := s.participantRepo.Add(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrAlreadyParticipant) {
			return domain.ErrAlreadyParticipant
		}
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}

func (s *eventService) ListParticipants(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	participants, err := s.participantRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return participants, nil
}

func (s *eventService) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.participantRepo.Remove(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotParticipant) {
			return fmt.Errorf("%w: user is not a participant of this event", domain.ErrInvalidInput)
		}
		return fmt.Errorf("remove participant: %w", err)
	}
	return nil
}

func (s *eventService) attachPhoto(ctx context.Context, eventID, userID string, upload *domain.PhotoUpload) error {
	url, path, err := s.fileStore.Save(upload.Filename, upload.Content)
	if err != nil {
		return fmt.Errorf("save photo file: %w", err)
	}
	photo := &domain.Photo{
		EventID:    eventID,
		UserID:     userID,
		PhotoURL:   url,
		FilePath:   path,
		UploadedAt: time.Now(),
	}
	if err := s.photoRepo.InsertFront(ctx, photo); err != nil {
		if removeErr := s.fileStore.Remove(path); removeErr != nil {
			s.logger.Warn("failed to remove orphaned photo file", "path", path, "error", removeErr)
		}
		return fmt.Errorf("insert photo: %w", err)
	}
	return nil
}

func validateEventFields(name, address string, start, end time.Time) error {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" || len(name) > maxNameLength || !nameRegexp.MatchString(name) {
		return fmt.Errorf("%w: name must be alphanumeric and at most %d characters", domain.ErrInvalidInput, maxNameLength)
	}
	if address == "" || len(address) > maxNameLength || !addressRegexp.MatchString(address) {
		return fmt.Errorf("%w: address contains invalid characters or is too long", domain.ErrInvalidInput)
	}
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end date times are required", domain.ErrInvalidInput)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: start date must be before end date", domain.ErrInvalidInput)
	}
	return nil
}
