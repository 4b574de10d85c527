package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/InternLink-2025/placement-service/internal/cache"
	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories/mock"
)

func newDashboardService(repo *mock.Repository) DashboardService {
	return NewDashboardService(repo, cache.NewCacheHelper(nil, ""), testLogger())
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewRepository()
	repo.DashboardRepo.TotalUsers = 42
	repo.DashboardRepo.TotalProjects = 7
	repo.DashboardRepo.TotalApplications = 19
	repo.DashboardRepo.RecentRegistrations = 5
	svc := newDashboardService(repo)

	overview, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.TotalUsers != 42 || overview.TotalProjects != 7 || overview.TotalApplications != 19 {
		t.Errorf("unexpected totals: %+v", overview)
	}
	if overview.RecentRegistrations != 5 {
		t.Errorf("RecentRegistrations = %d, want 5", overview.RecentRegistrations)
	}
}

func TestUsersByRoleZeroFill(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewRepository()
	repo.DashboardRepo.UsersByRole = map[models.UserRole]int64{
		models.RoleStudent:      12,
		models.RoleOrganization: 3,
	}
	svc := newDashboardService(repo)

	counts, err := svc.UsersByRole(ctx)
	if err != nil {
		t.Fatalf("UsersByRole: %v", err)
	}
	if len(counts) != len(models.AllUserRoles) {
		t.Fatalf("got %d keys, want %d", len(counts), len(models.AllUserRoles))
	}
	for _, role := range models.AllUserRoles {
		if _, ok := counts[role]; !ok {
			t.Errorf("missing key for role %s", role)
		}
	}
	if counts[models.RoleStudent] != 12 {
		t.Errorf("STUDENT = %d, want 12", counts[models.RoleStudent])
	}
	if counts[models.RoleCoordinator] != 0 {
		t.Errorf("COORDINATOR = %d, want 0", counts[models.RoleCoordinator])
	}
}

func TestProjectsByStatusZeroFill(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewRepository()
	repo.DashboardRepo.ProjectsByStatus = map[models.ProjectStatus]int64{
		models.ProjectDraft:     2,
		models.ProjectPublished: 1,
	}
	svc := newDashboardService(repo)

	counts, err := svc.ProjectsByStatus(ctx, nil)
	if err != nil {
		t.Fatalf("ProjectsByStatus: %v", err)
	}
	if len(counts) != len(models.AllProjectStatuses) {
		t.Fatalf("got %d keys, want %d", len(counts), len(models.AllProjectStatuses))
	}
	if counts[models.ProjectDraft] != 2 || counts[models.ProjectPublished] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
	for _, status := range []models.ProjectStatus{models.ProjectPendingReview, models.ProjectArchived} {
		if counts[status] != 0 {
			t.Errorf("%s = %d, want 0", status, counts[status])
		}
	}
}

func TestApplicationsByStatusEmptyData(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewRepository()
	svc := newDashboardService(repo)

	counts, err := svc.ApplicationsByStatus(ctx, nil)
	if err != nil {
		t.Fatalf("ApplicationsByStatus: %v", err)
	}
	if len(counts) != len(models.AllApplicationStatuses) {
		t.Fatalf("got %d keys, want %d", len(counts), len(models.AllApplicationStatuses))
	}
	for status, count := range counts {
		if count != 0 {
			t.Errorf("%s = %d, want 0", status, count)
		}
	}
}

func TestDashboardCaching(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := mock.NewRepository()
	repo.DashboardRepo.UsersByRole = map[models.UserRole]int64{models.RoleStudent: 1}
	svc := NewDashboardService(repo, cache.NewCacheHelper(client, cache.StatsCacheConfig.Prefix), testLogger())

	first, err := svc.UsersByRole(ctx)
	if err != nil {
		t.Fatalf("UsersByRole: %v", err)
	}
	if first[models.RoleStudent] != 1 {
		t.Fatalf("STUDENT = %d, want 1", first[models.RoleStudent])
	}

	// Until the TTL expires the cached result wins over fresh data
	repo.DashboardRepo.UsersByRole = map[models.UserRole]int64{models.RoleStudent: 99}
	second, err := svc.UsersByRole(ctx)
	if err != nil {
		t.Fatalf("UsersByRole: %v", err)
	}
	if second[models.RoleStudent] != 1 {
		t.Errorf("STUDENT = %d, want cached 1", second[models.RoleStudent])
	}

	mr.FastForward(cache.StatsCacheConfig.TTL + 1)
	third, err := svc.UsersByRole(ctx)
	if err != nil {
		t.Fatalf("UsersByRole: %v", err)
	}
	if third[models.RoleStudent] != 99 {
		t.Errorf("STUDENT = %d, want refreshed 99", third[models.RoleStudent])
	}
}

func TestScopedQueriesBypassCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := mock.NewRepository()
	repo.DashboardRepo.ProjectsByStatus = map[models.ProjectStatus]int64{models.ProjectPublished: 4}
	svc := NewDashboardService(repo, cache.NewCacheHelper(client, cache.StatsCacheConfig.Prefix), testLogger())

	// Warm the unscoped cache
	if _, err := svc.ProjectsByStatus(ctx, nil); err != nil {
		t.Fatalf("ProjectsByStatus: %v", err)
	}

	repo.DashboardRepo.ProjectsByStatus = map[models.ProjectStatus]int64{models.ProjectPublished: 1}
	org := "org-1"
	scoped, err := svc.ProjectsByStatus(ctx, &org)
	if err != nil {
		t.Fatalf("ProjectsByStatus scoped: %v", err)
	}
	if scoped[models.ProjectPublished] != 1 {
		t.Errorf("scoped PUBLISHED = %d, want fresh 1", scoped[models.ProjectPublished])
	}

	unscoped, err := svc.ProjectsByStatus(ctx, nil)
	if err != nil {
		t.Fatalf("ProjectsByStatus unscoped: %v", err)
	}
	if unscoped[models.ProjectPublished] != 4 {
		t.Errorf("unscoped PUBLISHED = %d, want cached 4", unscoped[models.ProjectPublished])
	}
}
