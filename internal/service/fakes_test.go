package service

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-ledger/internal/models"
	"github.com/yourusername/race-ledger/internal/repository"
)

var errStorage = errors.New("connection reset by peer")

type fakeStore struct {
	mu sync.Mutex

	events       map[uuid.UUID]models.Event
	drivers      []models.Participant
	teams        []models.Team
	results      map[uuid.UUID][]models.RaceResult
	driverSnap   []models.DriverStanding
	teamSnap     []models.TeamStanding
	saved        map[uuid.UUID][]models.ResultRecord
	failEvents   bool
	failResults  bool
	failSave     bool
	resultsCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:  make(map[uuid.UUID]models.Event),
		results: make(map[uuid.UUID][]models.RaceResult),
		saved:   make(map[uuid.UUID][]models.ResultRecord),
	}
}

func (f *fakeStore) repositories() *repository.Repositories {
	return &repository.Repositories{
		Participant: fakeParticipants{f},
		Team:        fakeTeams{f},
		Event:       fakeEvents{f},
		RaceResult:  fakeResults{f},
		Standings:   fakeStandings{f},
	}
}

type fakeParticipants struct{ *fakeStore }

func (f fakeParticipants) GetDriversByLeague(_ context.Context, _ uuid.UUID) ([]models.Participant, error) {
	return f.drivers, nil
}

type fakeTeams struct{ *fakeStore }

func (f fakeTeams) GetByLeague(_ context.Context, _ uuid.UUID) ([]models.Team, error) {
	return f.teams, nil
}

type fakeEvents struct{ *fakeStore }

func (f fakeEvents) GetByID(_ context.Context, id uuid.UUID) (*models.Event, error) {
	if f.failEvents {
		return nil, errStorage
	}
	e, ok := f.events[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &e, nil
}

func (f fakeEvents) GetByLeague(_ context.Context, leagueID uuid.UUID) ([]models.Event, error) {
	if f.failEvents {
		return nil, errStorage
	}
	var out []models.Event
	for _, e := range f.events {
		if e.LeagueID == leagueID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeResults struct{ *fakeStore }

func (f fakeResults) GetByEventID(_ context.Context, eventID uuid.UUID) ([]models.RaceResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resultsCalls++
	if f.failResults {
		return nil, errStorage
	}
	return f.results[eventID], nil
}

func (f fakeResults) ReplaceForEvent(_ context.Context, eventID uuid.UUID, records []models.ResultRecord) error {
	if f.failSave {
		return errStorage
	}
	f.saved[eventID] = records
	return nil
}

func (f *fakeStore) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resultsCalls
}

type fakeStandings struct{ *fakeStore }

func (f fakeStandings) GetDriverStandings(_ context.Context, _ uuid.UUID) ([]models.DriverStanding, error) {
	return f.driverSnap, nil
}

func (f fakeStandings) GetTeamStandings(_ context.Context, _ uuid.UUID) ([]models.TeamStanding, error) {
	return f.teamSnap, nil
}

type recordingInvalidator struct {
	leagues []uuid.UUID
}

func (r *recordingInvalidator) Invalidate(leagueID uuid.UUID) {
	r.leagues = append(r.leagues, leagueID)
}

func newTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }
