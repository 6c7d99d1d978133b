package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"conferencehub/internal/domain"
)

const testTimeout = 5 * time.Second

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	generated []*domain.Activity
	nextID    int
	err       error // returned by every method when set
	deleteErr error
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
	for _, e := range events {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEventRepo) CreateWithActivities(ctx context.Context, e *domain.Event, activities []*domain.Activity) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	for i, a := range activities {
		a.ID = fmt.Sprintf("%s-a%d", e.ID, i+1)
		a.EventID = e.ID
	}
	f.generated = activities
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetView(ctx context.Context, id string) (*domain.EventView, error) {
	e, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.EventView{Event: *e, CityName: "Berlin", DirectionName: "Software"}, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.EventView, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	out := make([]*domain.EventView, 0)
	for _, e := range f.byID {
		if filter.OrganizerID != "" && e.OrganizerID != filter.OrganizerID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, &domain.EventView{Event: *e})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, len(out), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeActivityRepo is an in-memory ActivityRepository for tests.
type fakeActivityRepo struct {
	byID       map[string]*domain.Activity
	views      []*domain.ActivityView
	lastFilter domain.ActivityFilter
	nextID     int
}

func newFakeActivityRepo(activities ...*domain.Activity) *fakeActivityRepo {
	f := &fakeActivityRepo{byID: make(map[string]*domain.Activity), nextID: 1}
	for _, a := range activities {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeActivityRepo) sorted(keep func(a *domain.Activity) bool) []*domain.Activity {
	out := make([]*domain.Activity, 0)
	for _, a := range f.byID {
		if keep(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

func (f *fakeActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	for _, b := range f.byID {
		if b.EventID == a.EventID && b.Day == a.Day && b.StartTime == a.StartTime {
			return domain.ErrSlotUnavailable
		}
	}
	a.ID = fmt.Sprintf("act-%d", f.nextID)
	f.nextID++
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	if a, ok := f.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeActivityRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.Activity, error) {
	return f.sorted(func(a *domain.Activity) bool { return a.EventID == eventID }), nil
}

func (f *fakeActivityRepo) ListByEventDay(ctx context.Context, eventID string, day int) ([]*domain.Activity, error) {
	return f.sorted(func(a *domain.Activity) bool { return a.EventID == eventID && a.Day == day }), nil
}

func (f *fakeActivityRepo) ListForOrganizer(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityView, error) {
	f.lastFilter = filter
	return f.views, nil
}

func (f *fakeActivityRepo) MaxDay(ctx context.Context, eventID string) (int, error) {
	max := 0
	for _, a := range f.byID {
		if a.EventID == eventID && a.Day > max {
			max = a.Day
		}
	}
	return max, nil
}

func (f *fakeActivityRepo) Update(ctx context.Context, a *domain.Activity) error {
	if _, ok := f.byID[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeActivityRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeStaffRepo keeps moderator and jury assignments in maps.
type fakeStaffRepo struct {
	activities *fakeActivityRepo
	moderators map[string]string          // activity -> moderator
	jury       map[string]map[string]bool // activity -> jurors
}

func newFakeStaffRepo(activities *fakeActivityRepo) *fakeStaffRepo {
	return &fakeStaffRepo{
		activities: activities,
		moderators: make(map[string]string),
		jury:       make(map[string]map[string]bool),
	}
}

func (f *fakeStaffRepo) AssignModerator(ctx context.Context, m *domain.ModeratorAssignment) error {
	if _, ok := f.moderators[m.ActivityID]; ok {
		return domain.ErrHasModerator
	}
	f.moderators[m.ActivityID] = m.ModeratorID
	return nil
}

func (f *fakeStaffRepo) ListNotModeratedBy(ctx context.Context, eventID, moderatorID string) ([]*domain.Activity, error) {
	return f.activities.sorted(func(a *domain.Activity) bool {
		return a.EventID == eventID && f.moderators[a.ID] != moderatorID
	}), nil
}

func (f *fakeStaffRepo) AddJury(ctx context.Context, j *domain.JuryAssignment) error {
	if f.jury[j.ActivityID][j.JuryID] {
		return domain.ErrAlreadyAssigned
	}
	if f.jury[j.ActivityID] == nil {
		f.jury[j.ActivityID] = make(map[string]bool)
	}
	f.jury[j.ActivityID][j.JuryID] = true
	return nil
}

func (f *fakeStaffRepo) RemoveJury(ctx context.Context, activityID, juryID string) error {
	if !f.jury[activityID][juryID] {
		return domain.ErrNotFound
	}
	delete(f.jury[activityID], juryID)
	return nil
}

func (f *fakeStaffRepo) ListNotJudgedBy(ctx context.Context, eventID, juryID string) ([]*domain.Activity, error) {
	return f.activities.sorted(func(a *domain.Activity) bool {
		return a.EventID == eventID && !f.jury[a.ID][juryID]
	}), nil
}

func (f *fakeStaffRepo) ListJudgedBy(ctx context.Context, eventID, juryID string) ([]*domain.Activity, error) {
	return f.activities.sorted(func(a *domain.Activity) bool {
		return a.EventID == eventID && f.jury[a.ID][juryID]
	}), nil
}

func (f *fakeStaffRepo) CountJury(ctx context.Context, activityID string) (int, error) {
	return len(f.jury[activityID]), nil
}

func (f *fakeStaffRepo) ActivitiesWithJury(ctx context.Context, ids []string) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, id := range ids {
		if len(f.jury[id]) > 0 {
			out[id] = true
		}
	}
	return out, nil
}

// fakeRegistrationRepo is an in-memory EventRegistrationRepository keyed by event and user.
type fakeRegistrationRepo struct {
	regs         map[string]*domain.EventRegistration
	participants []*domain.Participant
	createErr    error
	nextID       int
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{regs: make(map[string]*domain.EventRegistration), nextID: 1}
}

func regKey(eventID, userID string) string { return eventID + ":" + userID }

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.EventRegistration) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.regs[regKey(reg.EventID, reg.UserID)]; ok {
		return domain.ErrConflict
	}
	reg.ID = fmt.Sprintf("reg-%d", f.nextID)
	f.nextID++
	f.regs[regKey(reg.EventID, reg.UserID)] = reg
	return nil
}

func (f *fakeRegistrationRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	if reg, ok := f.regs[regKey(eventID, userID)]; ok {
		return reg, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) Delete(ctx context.Context, eventID, userID string) error {
	if _, ok := f.regs[regKey(eventID, userID)]; !ok {
		return domain.ErrNotFound
	}
	delete(f.regs, regKey(eventID, userID))
	return nil
}

func (f *fakeRegistrationRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.EventRegistrationWithEvent, error) {
	var out []*domain.EventRegistrationWithEvent
	for _, reg := range f.regs {
		if reg.UserID == userID {
			out = append(out, &domain.EventRegistrationWithEvent{Registration: reg, Event: &domain.EventView{Event: domain.Event{ID: reg.EventID}}})
		}
	}
	return out, nil
}

func (f *fakeRegistrationRepo) ListParticipants(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	return f.participants, nil
}

// fakeUserRepo is an in-memory UserRepository enforcing unique id numbers and emails.
type fakeUserRepo struct {
	byID    map[string]*domain.User
	roleIDs map[string]string
	nextID  int
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: make(map[string]*domain.User), roleIDs: make(map[string]string), nextID: 1}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User, roleID string) error {
	for _, existing := range f.byID {
		if existing.IDNumber == u.IDNumber {
			return domain.ErrDuplicateIDNumber
		}
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	cp := *u
	f.byID[u.ID] = &cp
	f.roleIDs[u.ID] = roleID
	return nil
}

func (f *fakeUserRepo) GetByIDNumber(ctx context.Context, idNumber string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.IDNumber == idNumber {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	for _, existing := range f.byID {
		if existing.ID != u.ID && existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	if _, ok := f.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

type fakeRoleRepo struct{}

func (fakeRoleRepo) GetByCode(ctx context.Context, code domain.Role) (*domain.RoleRecord, error) {
	return &domain.RoleRecord{ID: "role-" + string(code), Code: code}, nil
}

// fakeHasher stores "salt|password" so tests can check which password was hashed.
type fakeHasher struct {
	salts int
}

func (h *fakeHasher) GenerateSalt() (string, error) {
	h.salts++
	return fmt.Sprintf("salt%d", h.salts), nil
}

func (h *fakeHasher) Hash(salt, password string) (string, error) {
	return salt + "|" + password, nil
}

func (h *fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+"|"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type fakeIssuer struct {
	expiry time.Duration
}

func (f *fakeIssuer) Issue(u *domain.User, expiry time.Duration) (string, error) {
	f.expiry = expiry
	return "token-for-" + u.ID, nil
}

// fakeEmailService records what it was asked to send.
type fakeEmailService struct {
	welcome       []*domain.WelcomeMessageEmailData
	confirmations []*domain.RegistrationConfirmationEmailData
	err           error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	f.welcome = append(f.welcome, data)
	return f.err
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationEmailData) error {
	f.confirmations = append(f.confirmations, data)
	return f.err
}
