package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"weddingplanner/internal/domain"
)

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	byEmail   map[string]*domain.User
	nextID    int
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, taken := f.byEmail[u.Email]; taken {
		return domain.ErrDuplicateEmail
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.PasswordResetToken != nil && *u.PasswordResetToken == token {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserRepo) SetResetToken(ctx context.Context, userID string, token *string) error {
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordResetToken = token
	u.UpdatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.PasswordResetToken = nil
	return nil
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	hashErr error
}

func (f *fakePasswordHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hash-" + password, nil
}

func (f *fakePasswordHasher) Compare(hash, password string) error {
	if hash != "hash-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID, nil
}

// fakeEventRepo implements domain.EventRepository for tests.
type fakeEventRepo struct {
	byID       map[string]*domain.Event
	organizers map[string][]*domain.User
	nextID     int
	deleted    []string
	createErr  error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:       make(map[string]*domain.Event),
		organizers: make(map[string][]*domain.User),
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	e.ID = fmt.Sprintf("event-%d", f.nextID)
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	events := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		events = append(events, e)
	}
	return events, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.StartDateTime != nil {
		e.StartDateTime = *patch.StartDateTime
	}
	if patch.EndDateTime != nil {
		e.EndDateTime = *patch.EndDateTime
	}
	if patch.Address != nil {
		e.Address = *patch.Address
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeEventRepo) IsOrganizer(ctx context.Context, eventID, userID string) (bool, error) {
	e, ok := f.byID[eventID]
	if !ok {
		return false, nil
	}
	for _, id := range e.OrganizerIDs {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEventRepo) ListOrganizers(ctx context.Context, eventID string) ([]*domain.User, error) {
	return f.organizers[eventID], nil
}

// fakeParticipantRepo implements domain.ParticipantRepository for tests.
type fakeParticipantRepo struct {
	pairs map[string]bool
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{pairs: make(map[string]bool)}
}

func participantKey(eventID, userID string) string { return eventID + "/" + userID }

func (f *fakeParticipantRepo) Add(ctx context.Context, eventID, userID string) error {
	key := participantKey(eventID, userID)
	if f.pairs[key] {
		return domain.ErrAlreadyParticipant
	}
	f.pairs[key] = true
	return nil
}

func (f *fakeParticipantRepo) AddIfAbsent(ctx context.Context, eventID, userID string) error {
	f.pairs[participantKey(eventID, userID)] = true
	return nil
}

func (f *fakeParticipantRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	participants := make([]*domain.Participant, 0)
	for key := range f.pairs {
		e, u, _ := strings.Cut(key, "/")
		if e == eventID {
			participants = append(participants, &domain.Participant{EventID: e, UserID: u})
		}
	}
	return participants, nil
}

func (f *fakeParticipantRepo) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	return f.pairs[participantKey(eventID, userID)], nil
}

func (f *fakeParticipantRepo) Remove(ctx context.Context, eventID, userID string) error {
	key := participantKey(eventID, userID)
	if !f.pairs[key] {
		return domain.ErrNotParticipant
	}
	delete(f.pairs, key)
	return nil
}

// fakeInvitationRepo implements domain.InvitationRepository for tests.
type fakeInvitationRepo struct {
	byLink    map[string]*domain.Invitation
	nextID    int
	createErr error
	created   int
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{byLink: make(map[string]*domain.Invitation)}
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	if f.createErr != nil && f.created > 0 {
		return f.createErr
	}
	f.nextID++
	inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	f.byLink[inv.InvitationLink] = inv
	f.created++
	return nil
}

func (f *fakeInvitationRepo) GetByLink(ctx context.Context, link string) (*domain.Invitation, error) {
	if inv, ok := f.byLink[link]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvitationRepo) List(ctx context.Context) ([]*domain.Invitation, error) {
	invitations := make([]*domain.Invitation, 0, len(f.byLink))
	for _, inv := range f.byLink {
		invitations = append(invitations, inv)
	}
	return invitations, nil
}

func (f *fakeInvitationRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	invitations := make([]*domain.Invitation, 0)
	for _, inv := range f.byLink {
		if inv.EventID == eventID {
			invitations = append(invitations, inv)
		}
	}
	return invitations, nil
}

func (f *fakeInvitationRepo) UpdateStatus(ctx context.Context, id, status string, userID *string) error {
	for _, inv := range f.byLink {
		if inv.ID == id {
			inv.Status = status
			if userID != nil {
				inv.UserID = userID
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeScheduleRepo implements domain.ScheduleItemRepository for tests.
type fakeScheduleRepo struct {
	byID   map[string]*domain.ScheduleItem
	nextID int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{byID: make(map[string]*domain.ScheduleItem)}
}

func (f *fakeScheduleRepo) Create(ctx context.Context, item *domain.ScheduleItem) error {
	f.nextID++
	item.ID = fmt.Sprintf("item-%d", f.nextID)
	f.byID[item.ID] = item
	return nil
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleItem, error) {
	if item, ok := f.byID[id]; ok {
		return item, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeScheduleRepo) List(ctx context.Context) ([]*domain.ScheduleItem, error) {
	items := make([]*domain.ScheduleItem, 0, len(f.byID))
	for _, item := range f.byID {
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeScheduleRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.ScheduleItem, error) {
	items := make([]*domain.ScheduleItem, 0)
	for _, item := range f.byID {
		if item.EventID == eventID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeScheduleRepo) Update(ctx context.Context, id string, patch domain.ScheduleItemPatch) (*domain.ScheduleItem, error) {
	item, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.StartTime != nil {
		item.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		item.EndTime = *patch.EndTime
	}
	return item, nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakePhotoRepo implements domain.PhotoRepository for tests.
type fakePhotoRepo struct {
	byEvent   map[string][]*domain.Photo
	nextID    int
	insertErr error
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{byEvent: make(map[string][]*domain.Photo)}
}

func (f *fakePhotoRepo) InsertFront(ctx context.Context, photo *domain.Photo) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.nextID++
	photo.ID = fmt.Sprintf("photo-%d", f.nextID)
	photo.Position = 0
	existing := f.byEvent[photo.EventID]
	for _, p := range existing {
		p.Position++
	}
	f.byEvent[photo.EventID] = append([]*domain.Photo{photo}, existing...)
	return nil
}

func (f *fakePhotoRepo) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	for _, photos := range f.byEvent {
		for _, p := range photos {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePhotoRepo) GetFront(ctx context.Context, eventID string) (*domain.Photo, error) {
	photos := f.byEvent[eventID]
	for _, p := range photos {
		if p.Position == 0 {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePhotoRepo) List(ctx context.Context) ([]*domain.Photo, error) {
	all := make([]*domain.Photo, 0)
	for _, photos := range f.byEvent {
		all = append(all, photos...)
	}
	return all, nil
}

func (f *fakePhotoRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Photo, error) {
	return f.byEvent[eventID], nil
}

func (f *fakePhotoRepo) Delete(ctx context.Context, id string) error {
	for eventID, photos := range f.byEvent {
		for i, p := range photos {
			if p.ID == id {
				f.byEvent[eventID] = append(photos[:i], photos[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

// fakeFileStore implements domain.PhotoFileStore for tests.
type fakeFileStore struct {
	saved     int
	removed   []string
	removeErr map[string]error
	saveErr   error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{removeErr: make(map[string]error)}
}

func (f *fakeFileStore) Save(filename string, content io.Reader) (string, string, error) {
	if f.saveErr != nil {
		return "", "", f.saveErr
	}
	f.saved++
	path := fmt.Sprintf("/uploads/eventPhotos/%d-%s", f.saved, filename)
	return "http://localhost:8080" + path, path, nil
}

func (f *fakeFileStore) Remove(path string) error {
	f.removed = append(f.removed, path)
	if err, ok := f.removeErr[path]; ok {
		return err
	}
	return nil
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	invitations []*domain.InvitationEmailData
	resets      []*domain.PasswordResetEmailData
	sendErr     error
}

func (f *fakeEmailService) SendInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.invitations = append(f.invitations, data)
	return nil
}

func (f *fakeEmailService) SendPasswordReset(ctx context.Context, data *domain.PasswordResetEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.resets = append(f.resets, data)
	return nil
}

// fakeReportWriter implements domain.EventReportWriter for tests.
type fakeReportWriter struct {
	rows []domain.EventReportRow
}

func (f *fakeReportWriter) WriteEvents(rows []domain.EventReportRow) ([]byte, error) {
	f.rows = rows
	return []byte("xlsx"), nil
}
