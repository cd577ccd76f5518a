package profile

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

var (
	car      = &entity.ActivityType{ID: "1", Name: "Car Travel", Unit: "miles", EmissionFactor: 0.25, Category: entity.CategoryTransport}
	fixedNow = time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC)
)

type fakeUsers struct{ user *entity.User }

func (f fakeUsers) Create(context.Context, *entity.User) error                { return nil }
func (f fakeUsers) FindByID(context.Context, uuid.UUID) (*entity.User, error) { return f.user, nil }
func (f fakeUsers) FindByEmail(context.Context, string) (*entity.User, error) { return f.user, nil }
func (f fakeUsers) ExistsByEmail(context.Context, string) (bool, error)       { return true, nil }
func (f fakeUsers) UpdatePasswordHash(context.Context, uuid.UUID, string) error {
	return nil
}

type fakeProfiles struct{ profile *entity.Profile }

func (f *fakeProfiles) FindByUserID(context.Context, uuid.UUID) (*entity.Profile, error) {
	return f.profile, nil
}

func (f *fakeProfiles) Upsert(_ context.Context, p *entity.Profile) error {
	f.profile = p
	return nil
}

type fakeEntries struct{ entries []*entity.Entry }

func (f fakeEntries) FindByUserID(context.Context, uuid.UUID) ([]*entity.Entry, error) {
	return f.entries, nil
}
func (f fakeEntries) Create(_ context.Context, e *entity.Entry) (*entity.Entry, error) { return e, nil }
func (f fakeEntries) Delete(context.Context, string, uuid.UUID) error                  { return nil }

type fakeCatalog struct{}

func (fakeCatalog) FindAll(context.Context) ([]*entity.ActivityType, error) {
	return []*entity.ActivityType{car}, nil
}
func (fakeCatalog) FindByID(context.Context, string) (*entity.ActivityType, error) { return car, nil }
func (fakeCatalog) Upsert(context.Context, []*entity.ActivityType) error           { return nil }

func TestGetProfile(t *testing.T) {
	user := entity.NewUser("ada@example.com", "Ada", "hash")
	entries := fakeEntries{entries: []*entity.Entry{
		entity.NewEntry("a", "u", car, 10, entity.MustParseDate("2024-05-20"), fixedNow),
		entity.NewEntry("b", "u", car, 30, entity.MustParseDate("2024-05-19"), fixedNow.Add(-time.Hour)),
		entity.NewEntry("c", "u", car, 20, entity.MustParseDate("2024-05-17"), fixedNow.Add(-2*time.Hour)),
	}}

	uc := NewGetProfileUseCase(fakeUsers{user: user}, &fakeProfiles{}, entries, fakeCatalog{}, func() time.Time { return fixedNow })
	out, err := uc.Execute(context.Background(), GetProfileInput{UserID: user.ID})
	require.NoError(t, err)

	assert.Equal(t, "Ada", out.Profile.DisplayName)
	assert.InDelta(t, 15.0, out.Stats.TotalCO2e, 1e-9)
	assert.Equal(t, 3, out.Stats.RecentEntries)
	assert.InDelta(t, 5.0, out.Stats.AveragePerEntry, 1e-9)
	assert.Equal(t, 2, out.Stats.Streak)
}

func TestUpdateProfile(t *testing.T) {
	userID := uuid.New()
	profiles := &fakeProfiles{}
	uc := NewUpdateProfileUseCase(profiles)

	p, err := uc.Execute(context.Background(), UpdateProfileInput{UserID: userID, DisplayName: " Ada ", Location: "London"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.DisplayName)
	assert.Same(t, p, profiles.profile)

	created := p.CreatedAt
	p, err = uc.Execute(context.Background(), UpdateProfileInput{UserID: userID, DisplayName: "Ada L."})
	require.NoError(t, err)
	assert.Equal(t, created, p.CreatedAt)

	_, err = uc.Execute(context.Background(), UpdateProfileInput{UserID: userID, Bio: strings.Repeat("x", 501)})
	var profileErr *domainerror.ProfileError
	require.ErrorAs(t, err, &profileErr)
	assert.Equal(t, domainerror.ErrCodeProfileFieldTooLong, profileErr.Code)
}
