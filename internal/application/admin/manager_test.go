package admin

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/portfolio"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/config"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/testutil"
)

func newTestManagers(t *testing.T) (*Managers, *testutil.FakeBackend) {
	t.Helper()
	backend := testutil.NewFakeBackend(t)
	client, err := api.NewClient(
		config.APIConfig{Timeout: 5 * time.Second, RetryWaitTime: time.Millisecond, RetryMaxWaitTime: time.Millisecond},
		config.SiteConfig{APIBaseURL: backend.APIBaseURL(), BackendURL: backend.Server.URL},
	)
	require.NoError(t, err)
	return NewManagers(api.NewServices(client)), backend
}

func TestManager_LoadWithoutIDReturnsDefaults(t *testing.T) {
	m, backend := newTestManagers(t)

	edu, editing, err := m.Educations.Load(context.Background(), "")
	require.Nil(t, err)
	assert.False(t, editing)
	assert.Equal(t, "4.00", edu.MaxGPA.Decimal.StringFixed(2))
	assert.Zero(t, backend.TotalCalls())
}

func TestManager_SaveCreatesThenUpdates(t *testing.T) {
	m, backend := newTestManagers(t)
	ctx := api.WithToken(context.Background(), backend.ValidToken())

	p := portfolio.DefaultProject()
	p.Title = "Portfolio"
	p.Description = "Personal site"

	created, flash, err := m.Projects.Save(ctx, "", p)
	require.Nil(t, err)
	assert.True(t, flash.IsSuccess())
	assert.Equal(t, "Project created successfully!", flash.Message)
	require.NotZero(t, created.ID)

	created.Title = "Portfolio v2"
	id := strconv.FormatInt(created.ID, 10)
	updated, flash, err := m.Projects.Save(ctx, id, created)
	require.Nil(t, err)
	assert.Equal(t, "Project updated successfully!", flash.Message)
	assert.Equal(t, "Portfolio v2", updated.Title)

	loaded, editing, err := m.Projects.Load(ctx, id)
	require.Nil(t, err)
	assert.True(t, editing)
	assert.Equal(t, "Portfolio v2", loaded.Title)
	assert.Equal(t, 1, backend.Calls("POST /projects"))
	assert.Equal(t, 1, backend.Calls("PUT /projects/:id"))
}

func TestManager_SaveNormalizesCurrentExperience(t *testing.T) {
	m, backend := newTestManagers(t)
	ctx := api.WithToken(context.Background(), backend.ValidToken())

	e := portfolio.DefaultExperience()
	e.JobTitle = "Engineer"
	e.CompanyName = "Acme"
	e.StartDate = portfolio.NewDate(2022, 1, 1)
	e.EndDate = portfolio.NewDate(2023, 1, 1)
	e.IsCurrent = true

	saved, _, err := m.Experiences.Save(ctx, "", e)
	require.Nil(t, err)
	assert.True(t, saved.EndDate.IsZero())
}

func TestManager_ListIsOrdered(t *testing.T) {
	m, backend := newTestManagers(t)
	backend.Seed("skills",
		testutil.Record{"skillName": "C", "displayOrder": 3},
		testutil.Record{"skillName": "A", "displayOrder": 1},
		testutil.Record{"skillName": "B", "displayOrder": 2},
	)

	res := m.Skills.List(context.Background())
	require.True(t, res.OK(), res.Message())
	names := make([]string, 0, len(res.Data))
	for _, s := range res.Data {
		names = append(names, s.SkillName)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestManager_Delete(t *testing.T) {
	m, backend := newTestManagers(t)
	ctx := api.WithToken(context.Background(), backend.ValidToken())
	ids := backend.Seed("achievements", testutil.Record{"title": "CKA"})

	flash, err := m.Achievements.Delete(ctx, strconv.FormatInt(ids[0], 10))
	require.Nil(t, err)
	assert.Equal(t, "Achievement deleted successfully!", flash.Message)
	assert.Empty(t, backend.Records("achievements"))
}

func TestManager_WithoutTokenIsUnauthorized(t *testing.T) {
	m, _ := newTestManagers(t)

	_, flash, err := m.Skills.Save(context.Background(), "", portfolio.DefaultSkill())
	require.NotNil(t, err)
	assert.Equal(t, api.KindUnauthorized, err.Kind)
	assert.False(t, flash.IsSuccess())
	assert.Equal(t, api.AccessDeniedMessage, flash.Message)
}

func TestManager_InvalidID(t *testing.T) {
	m, backend := newTestManagers(t)

	_, err := m.Projects.Delete(context.Background(), "abc")
	require.NotNil(t, err)
	assert.Equal(t, api.KindValidation, err.Kind)
	assert.Zero(t, backend.TotalCalls())

	_, perr := ParseID("-4")
	assert.NotNil(t, perr)
	n, perr := ParseID(" 12 ")
	assert.Nil(t, perr)
	assert.Equal(t, int64(12), n)
}
