package provider

import (
	"testing"

	"caresched/config"
	providerRepo "caresched/database/repository/provider"
	"caresched/models"
	"caresched/utils"
)

type mockProviderRepo struct {
	providers map[string]*models.Provider
}

func newMockProviderRepo() *mockProviderRepo {
	return &mockProviderRepo{providers: map[string]*models.Provider{}}
}

func (m *mockProviderRepo) GetByID(id string) (*models.Provider, error) {
	p, ok := m.providers[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProviderRepo) GetByEmail(email string) (*models.Provider, error) {
	for _, p := range m.providers {
		if p.Profile.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, providerRepo.ErrNotFound
}

func (m *mockProviderRepo) GetByTokenHash(hash string) (*models.Provider, error) {
	for _, p := range m.providers {
		if p.Security.TokenHash == hash {
			cp := *p
			return &cp, nil
		}
	}
	return nil, providerRepo.ErrNotFound
}

func (m *mockProviderRepo) Create(p *models.Provider) error {
	cp := *p
	m.providers[p.ID] = &cp
	return nil
}

func (m *mockProviderRepo) Update(p *models.Provider) error {
	if _, ok := m.providers[p.ID]; !ok {
		return providerRepo.ErrNotFound
	}
	cp := *p
	m.providers[p.ID] = &cp
	return nil
}

func (m *mockProviderRepo) Delete(id string) error {
	if _, ok := m.providers[id]; !ok {
		return providerRepo.ErrNotFound
	}
	delete(m.providers, id)
	return nil
}

func (m *mockProviderRepo) UpdateScheduleConfig(id string, cfg models.ScheduleConfig) error {
	p, ok := m.providers[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.ScheduleConfig = cfg
	return nil
}

func (m *mockProviderRepo) UpdateTokenHash(id, hash string) error {
	p, ok := m.providers[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.Security.TokenHash = hash
	return nil
}

func TestMain(m *testing.M) {
	config.AppConfig.JWTSecret = "test-secret"
	m.Run()
}

func registration() *models.Provider {
	return &models.Provider{
		Profile: models.ProviderProfile{
			Name:      "Dr. Amara Okafor",
			Email:     "amara@clinic.example",
			Specialty: "Dermatology",
		},
		Security: models.Security{Password: "long enough password"},
	}
}

func TestRegister(t *testing.T) {
	svc := &DefaultProviderService{Repo: newMockProviderRepo()}

	p, err := svc.Register(registration())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Error("provider should be assigned an ID")
	}
	if p.Security.Password != "" {
		t.Error("plaintext password must be cleared")
	}
	if p.Security.PasswordHash == "" {
		t.Error("password hash must be set")
	}
	if p.Security.Token == "" || p.Security.TokenHash != utils.HashToken(p.Security.Token) {
		t.Error("auth token and its hash must be issued together")
	}
	if p.ScheduleConfig.Timezone != "UTC" {
		t.Errorf("timezone defaulted to %q, want UTC", p.ScheduleConfig.Timezone)
	}
	if p.ScheduleConfig.MaxDaysAhead != 30 {
		t.Errorf("maxDaysAhead defaulted to %d, want 30", p.ScheduleConfig.MaxDaysAhead)
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	svc := &DefaultProviderService{Repo: newMockProviderRepo()}

	cases := []struct {
		name   string
		mutate func(*models.Provider)
	}{
		{"missing name", func(p *models.Provider) { p.Profile.Name = " " }},
		{"bad email", func(p *models.Provider) { p.Profile.Email = "not-an-email" }},
		{"short password", func(p *models.Provider) { p.Security.Password = "short" }},
		{"bad schedule", func(p *models.Provider) {
			p.ScheduleConfig.RecurringRules = []models.RecurringRule{{DaysOfWeek: []int{9}, StartTime: "09:00", EndTime: "10:00", SlotDuration: 30}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := registration()
			tc.mutate(p)
			if _, err := svc.Register(p); !utils.IsKind(err, utils.ErrKindValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := &DefaultProviderService{Repo: newMockProviderRepo()}

	if _, err := svc.Register(registration()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.Register(registration()); !utils.IsKind(err, utils.ErrKindConflict) {
		t.Errorf("got %v, want conflict on duplicate email", err)
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newMockProviderRepo()
	svc := &DefaultProviderService{Repo: repo}

	created, err := svc.Register(registration())
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	firstTokenHash := created.Security.TokenHash

	p, err := svc.Authenticate("amara@clinic.example", "long enough password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Security.Token == "" {
		t.Error("a fresh token must be issued on login")
	}
	stored := repo.providers[created.ID]
	if stored.Security.TokenHash == firstTokenHash {
		t.Error("token must rotate on login")
	}
	if stored.Security.TokenHash != utils.HashToken(p.Security.Token) {
		t.Error("stored token hash must match the issued token")
	}

	if _, err := svc.Authenticate("amara@clinic.example", "wrong password"); !utils.IsKind(err, utils.ErrKindUnauthorized) {
		t.Errorf("wrong password: got %v, want unauthorized", err)
	}
	if _, err := svc.Authenticate("nobody@clinic.example", "long enough password"); !utils.IsKind(err, utils.ErrKindUnauthorized) {
		t.Errorf("unknown email: got %v, want unauthorized", err)
	}
}

func TestGetByIDStripsCredentials(t *testing.T) {
	svc := &DefaultProviderService{Repo: newMockProviderRepo()}

	created, err := svc.Register(registration())
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	p, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Security.PasswordHash != "" || p.Security.Token != "" || p.Security.TokenHash != "" {
		t.Error("credentials must be stripped from reads")
	}

	if _, err := svc.GetByID("no-such"); !utils.IsKind(err, utils.ErrKindNotFound) {
		t.Errorf("got %v, want not-found", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newMockProviderRepo()
	svc := &DefaultProviderService{Repo: repo}

	created, err := svc.Register(registration())
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.providers[created.ID]; ok {
		t.Error("provider record should be gone")
	}
	if err := svc.Delete(created.ID); !utils.IsKind(err, utils.ErrKindNotFound) {
		t.Errorf("second delete: got %v, want not-found", err)
	}
}

func TestUpdateSchedule(t *testing.T) {
	repo := newMockProviderRepo()
	svc := &DefaultProviderService{Repo: repo}

	created, err := svc.Register(registration())
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	cfg := models.ScheduleConfig{
		Timezone: "America/New_York",
		RecurringRules: []models.RecurringRule{
			{DaysOfWeek: []int{2, 4}, StartTime: "10:00", EndTime: "14:00", SlotDuration: 60},
		},
		MinNoticeMinutes: 60,
		MaxDaysAhead:     14,
	}
	if err := svc.UpdateSchedule(created.ID, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.providers[created.ID].ScheduleConfig.Timezone != "America/New_York" {
		t.Error("schedule config was not persisted")
	}

	cfg.Timezone = "Nowhere/Nothing"
	if err := svc.UpdateSchedule(created.ID, cfg); !utils.IsKind(err, utils.ErrKindValidation) {
		t.Errorf("invalid timezone: got %v, want validation error", err)
	}
	cfg.Timezone = "UTC"
	if err := svc.UpdateSchedule("no-such", cfg); !utils.IsKind(err, utils.ErrKindNotFound) {
		t.Errorf("unknown provider: got %v, want not-found", err)
	}
}
