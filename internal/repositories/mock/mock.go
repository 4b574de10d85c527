package mock

import (
	"context"
	"sort"
	"strings"

	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
)

// Repository is an in-memory implementation of repositories.Repository
// for service tests.
type Repository struct {
	UserRepo        *UserRepo
	ProjectRepo     *ProjectRepo
	ApplicationRepo *ApplicationRepo
	ConfigRepo      *ConfigRepo
	DashboardRepo   *DashboardRepo
}

func NewRepository() *Repository {
	return &Repository{
		UserRepo: &UserRepo{
			Users:                 make(map[string]*models.User),
			StudentProfiles:       make(map[string]*models.StudentProfile),
			CoordinatorProfiles:   make(map[string]*models.CoordinatorProfile),
			OrganizationProfiles:  make(map[string]*models.OrganizationProfile),
			AdministratorProfiles: make(map[string]*models.AdministratorProfile),
		},
		ProjectRepo:     &ProjectRepo{Projects: make(map[uint]*models.Project)},
		ApplicationRepo: &ApplicationRepo{Applications: make(map[uint]*models.Application)},
		ConfigRepo:      &ConfigRepo{},
		DashboardRepo:   &DashboardRepo{},
	}
}

func (r *Repository) User() repositories.UserRepository               { return r.UserRepo }
func (r *Repository) Project() repositories.ProjectRepository         { return r.ProjectRepo }
func (r *Repository) Application() repositories.ApplicationRepository { return r.ApplicationRepo }
func (r *Repository) Config() repositories.ConfigRepository           { return r.ConfigRepo }
func (r *Repository) Dashboard() repositories.DashboardRepository     { return r.DashboardRepo }

func (r *Repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *Repository) Ping(ctx context.Context) error { return nil }
func (r *Repository) Close() error                   { return nil }

// ===== USERS =====

type UserRepo struct {
	Users                 map[string]*models.User
	StudentProfiles       map[string]*models.StudentProfile
	CoordinatorProfiles   map[string]*models.CoordinatorProfile
	OrganizationProfiles  map[string]*models.OrganizationProfile
	AdministratorProfiles map[string]*models.AdministratorProfile

	// ForcedErr is returned by every method when set.
	ForcedErr error
}

func (m *UserRepo) Create(ctx context.Context, user *models.User) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	for _, existing := range m.Users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	m.Users[user.ID] = user
	return nil
}

func (m *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	user, ok := m.Users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	for _, user := range m.Users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepo) Update(ctx context.Context, user *models.User) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	if _, ok := m.Users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.Users[user.ID] = user
	return nil
}

func (m *UserRepo) Delete(ctx context.Context, id string) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	if _, ok := m.Users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.Users, id)
	delete(m.StudentProfiles, id)
	delete(m.CoordinatorProfiles, id)
	delete(m.OrganizationProfiles, id)
	delete(m.AdministratorProfiles, id)
	return nil
}

func (m *UserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	if m.ForcedErr != nil {
		return nil, 0, m.ForcedErr
	}

	var matched []*models.User
	for _, user := range m.Users {
		if filters.Search != "" {
			needle := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(user.FullName), needle) &&
				!strings.Contains(strings.ToLower(user.Email), needle) {
				continue
			}
		}
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		if filters.Suspended != nil && user.Suspended != *filters.Suspended {
			continue
		}
		matched = append(matched, user)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	page, pageSize := repositories.NormalizePage(filters.Page, filters.PageSize)
	offset := repositories.PageOffset(page, pageSize)
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ForcedErr != nil {
		return false, m.ForcedErr
	}
	for _, user := range m.Users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *UserRepo) HasRole(ctx context.Context, id string, role models.UserRole) (bool, error) {
	if m.ForcedErr != nil {
		return false, m.ForcedErr
	}
	user, ok := m.Users[id]
	if !ok {
		return false, nil
	}
	return user.Role == role, nil
}

func (m *UserRepo) GetByIDWithProfile(ctx context.Context, id string) (*models.UserWithProfile, error) {
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	user, ok := m.Users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}

	result := &models.UserWithProfile{User: *user}
	switch user.Role {
	case models.RoleStudent:
		if p, ok := m.StudentProfiles[id]; ok {
			result.Profile = models.Profile{Kind: models.RoleStudent, Student: p}
		}
	case models.RoleCoordinator:
		if p, ok := m.CoordinatorProfiles[id]; ok {
			result.Profile = models.Profile{Kind: models.RoleCoordinator, Coordinator: p}
		}
	case models.RoleOrganization:
		if p, ok := m.OrganizationProfiles[id]; ok {
			result.Profile = models.Profile{Kind: models.RoleOrganization, Organization: p}
		}
	case models.RoleAdministrator:
		if p, ok := m.AdministratorProfiles[id]; ok {
			result.Profile = models.Profile{Kind: models.RoleAdministrator, Administrator: p}
		}
	}
	return result, nil
}

func (m *UserRepo) CreateStudentProfile(ctx context.Context, profile *models.StudentProfile) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	m.StudentProfiles[profile.UserID] = profile
	return nil
}

func (m *UserRepo) CreateCoordinatorProfile(ctx context.Context, profile *models.CoordinatorProfile) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	m.CoordinatorProfiles[profile.UserID] = profile
	return nil
}

func (m *UserRepo) CreateOrganizationProfile(ctx context.Context, profile *models.OrganizationProfile) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	m.OrganizationProfiles[profile.UserID] = profile
	return nil
}

func (m *UserRepo) CreateAdministratorProfile(ctx context.Context, profile *models.AdministratorProfile) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	m.AdministratorProfiles[profile.UserID] = profile
	return nil
}

func (m *UserRepo) UpdateStudentProfile(ctx context.Context, profile *models.StudentProfile) error {
	m.StudentProfiles[profile.UserID] = profile
	return nil
}

func (m *UserRepo) UpdateCoordinatorProfile(ctx context.Context, profile *models.CoordinatorProfile) error {
	m.CoordinatorProfiles[profile.UserID] = profile
	return nil
}

func (m *UserRepo) UpdateOrganizationProfile(ctx context.Context, profile *models.OrganizationProfile) error {
	m.OrganizationProfiles[profile.UserID] = profile
	return nil
}

func (m *UserRepo) UpdateAdministratorProfile(ctx context.Context, profile *models.AdministratorProfile) error {
	m.AdministratorProfiles[profile.UserID] = profile
	return nil
}

// ===== PROJECTS =====

type ProjectRepo struct {
	Projects map[uint]*models.Project
	NextID   uint

	ForcedErr error
}

func (m *ProjectRepo) Create(ctx context.Context, project *models.Project) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	m.NextID++
	project.ID = m.NextID
	m.Projects[project.ID] = project
	return nil
}

func (m *ProjectRepo) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	project, ok := m.Projects[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return project, nil
}

func (m *ProjectRepo) GetByIDWithRelations(ctx context.Context, id uint) (*models.Project, error) {
	return m.GetByID(ctx, id)
}

func (m *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	if _, ok := m.Projects[project.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.Projects[project.ID] = project
	return nil
}

func (m *ProjectRepo) UpdateStatus(ctx context.Context, id uint, status models.ProjectStatus) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	project, ok := m.Projects[id]
	if !ok {
		return repositories.ErrNotFound
	}
	project.Status = status
	return nil
}

func (m *ProjectRepo) AssignCoordinator(ctx context.Context, id uint, coordinatorID string) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	project, ok := m.Projects[id]
	if !ok {
		return repositories.ErrNotFound
	}
	project.CoordinatorID = &coordinatorID
	return nil
}

func (m *ProjectRepo) Delete(ctx context.Context, id uint) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	if _, ok := m.Projects[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.Projects, id)
	return nil
}

func (m *ProjectRepo) List(ctx context.Context, filters repositories.ProjectFilters) ([]*models.Project, int64, error) {
	if m.ForcedErr != nil {
		return nil, 0, m.ForcedErr
	}

	var matched []*models.Project
	for _, project := range m.Projects {
		if filters.Search != "" {
			needle := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(project.Title), needle) &&
				!strings.Contains(strings.ToLower(project.Description), needle) {
				continue
			}
		}
		if filters.Status != nil && project.Status != *filters.Status {
			continue
		}
		if filters.OrganizationID != nil && project.OrganizationID != *filters.OrganizationID {
			continue
		}
		if filters.CoordinatorID != nil {
			if project.CoordinatorID == nil || *project.CoordinatorID != *filters.CoordinatorID {
				continue
			}
		}
		matched = append(matched, project)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	page, pageSize := repositories.NormalizePage(filters.Page, filters.PageSize)
	offset := repositories.PageOffset(page, pageSize)
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *ProjectRepo) CountActiveByCoordinator(ctx context.Context, coordinatorID string) (int64, error) {
	if m.ForcedErr != nil {
		return 0, m.ForcedErr
	}
	var count int64
	for _, project := range m.Projects {
		if project.CoordinatorID == nil || *project.CoordinatorID != coordinatorID {
			continue
		}
		if project.Status == models.ProjectCompleted || project.Status == models.ProjectArchived {
			continue
		}
		count++
	}
	return count, nil
}

// ===== APPLICATIONS =====

type ApplicationRepo struct {
	Applications map[uint]*models.Application
	NextID       uint

	ForcedErr error
}

func (m *ApplicationRepo) Create(ctx context.Context, application *models.Application) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	for _, existing := range m.Applications {
		if existing.StudentID == application.StudentID && existing.ProjectID == application.ProjectID {
			return repositories.ErrDuplicate
		}
	}
	m.NextID++
	application.ID = m.NextID
	m.Applications[application.ID] = application
	return nil
}

func (m *ApplicationRepo) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	application, ok := m.Applications[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return application, nil
}

func (m *ApplicationRepo) GetByStudentAndProject(ctx context.Context, studentID string, projectID uint) (*models.Application, error) {
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	for _, application := range m.Applications {
		if application.StudentID == studentID && application.ProjectID == projectID {
			return application, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *ApplicationRepo) Update(ctx context.Context, application *models.Application) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	if _, ok := m.Applications[application.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.Applications[application.ID] = application
	return nil
}

func (m *ApplicationRepo) Delete(ctx context.Context, id uint) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	if _, ok := m.Applications[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.Applications, id)
	return nil
}

func (m *ApplicationRepo) List(ctx context.Context, filters repositories.ApplicationFilters) ([]*models.Application, int64, error) {
	if m.ForcedErr != nil {
		return nil, 0, m.ForcedErr
	}

	var matched []*models.Application
	for _, application := range m.Applications {
		if filters.StudentID != nil && application.StudentID != *filters.StudentID {
			continue
		}
		if filters.ProjectID != nil && application.ProjectID != *filters.ProjectID {
			continue
		}
		if filters.Status != nil && application.Status != *filters.Status {
			continue
		}
		matched = append(matched, application)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	page, pageSize := repositories.NormalizePage(filters.Page, filters.PageSize)
	offset := repositories.PageOffset(page, pageSize)
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *ApplicationRepo) CountAcceptedByProject(ctx context.Context, projectID uint) (int64, error) {
	if m.ForcedErr != nil {
		return 0, m.ForcedErr
	}
	var count int64
	for _, application := range m.Applications {
		if application.ProjectID == projectID && application.Status == models.ApplicationAccepted {
			count++
		}
	}
	return count, nil
}

// ===== PLATFORM CONFIG =====

type ConfigRepo struct {
	Stored *models.PlatformConfig

	ForcedErr error
}

func (m *ConfigRepo) Get(ctx context.Context) (*models.PlatformConfig, error) {
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	if m.Stored == nil {
		return nil, repositories.ErrSetupMissing
	}
	return m.Stored, nil
}

func (m *ConfigRepo) Save(ctx context.Context, config *models.PlatformConfig) error {
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	config.ID = models.PlatformConfigID
	m.Stored = config
	return nil
}

// ===== DASHBOARD =====

// DashboardRepo returns the fixture values set on its fields. The grouped
// count maps stay sparse, as the real queries leave absent categories out.
type DashboardRepo struct {
	TotalUsers          int64
	TotalProjects       int64
	TotalApplications   int64
	RecentRegistrations int64

	UsersByRole          map[models.UserRole]int64
	ProjectsByStatus     map[models.ProjectStatus]int64
	ApplicationsByStatus map[models.ApplicationStatus]int64

	ForcedErr error
}

func (m *DashboardRepo) GetTotalUsers(ctx context.Context) (int64, error) {
	if m.ForcedErr != nil {
		return 0, m.ForcedErr
	}
	return m.TotalUsers, nil
}

func (m *DashboardRepo) GetTotalProjects(ctx context.Context) (int64, error) {
	if m.ForcedErr != nil {
		return 0, m.ForcedErr
	}
	return m.TotalProjects, nil
}

func (m *DashboardRepo) GetTotalApplications(ctx context.Context) (int64, error) {
	if m.ForcedErr != nil {
		return 0, m.ForcedErr
	}
	return m.TotalApplications, nil
}

func (m *DashboardRepo) CountUsersByRole(ctx context.Context) (map[models.UserRole]int64, error) {
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	if m.UsersByRole == nil {
		return map[models.UserRole]int64{}, nil
	}
	return m.UsersByRole, nil
}

func (m *DashboardRepo) CountProjectsByStatus(ctx context.Context, organizationID *string) (map[models.ProjectStatus]int64, error) {
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	if m.ProjectsByStatus == nil {
		return map[models.ProjectStatus]int64{}, nil
	}
	return m.ProjectsByStatus, nil
}

func (m *DashboardRepo) CountApplicationsByStatus(ctx context.Context, projectID *uint) (map[models.ApplicationStatus]int64, error) {
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	if m.ApplicationsByStatus == nil {
		return map[models.ApplicationStatus]int64{}, nil
	}
	return m.ApplicationsByStatus, nil
}

func (m *DashboardRepo) CountRecentRegistrations(ctx context.Context, days int) (int64, error) {
	if m.ForcedErr != nil {
		return 0, m.ForcedErr
	}
	return m.RecentRegistrations, nil
}
