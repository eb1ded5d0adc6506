package application

import (
	"context"

	"warisin/internal/domain"
	"warisin/internal/ports"
)

type DashboardService struct {
	programs ports.ProgramRepository
	apps     ports.ApplicationRepository
}

func NewDashboardService(programs ports.ProgramRepository, apps ports.ApplicationRepository) *DashboardService {
	return &DashboardService{programs: programs, apps: apps}
}

func (s *DashboardService) Artisan(ctx context.Context, actor Actor) (domain.ArtisanDashboard, error) {
	if err := requireRole(actor, domain.RoleArtisan); err != nil {
		return domain.ArtisanDashboard{}, err
	}
	programs, err := s.programs.ListByArtisan(ctx, actor.UserID)
	if err != nil {
		return domain.ArtisanDashboard{}, err
	}
	ts := now()
	out := domain.ArtisanDashboard{
		TotalPrograms: len(programs),
		Programs:      make([]domain.ProgramStats, 0, len(programs)),
	}
	var all []domain.Application
	for _, p := range programs {
		if p.IsOpen {
			out.ActivePrograms++
		}
		if p.Ended(ts) {
			out.CompletedPrograms++
		}
		apps, err := s.apps.ListByProgram(ctx, p.ID)
		if err != nil {
			return domain.ArtisanDashboard{}, err
		}
		all = append(all, apps...)
		out.Programs = append(out.Programs, domain.ProgramStats{
			ProgramID:    p.ID,
			Title:        p.Title,
			IsOpen:       p.IsOpen,
			Applications: domain.CountApplications(apps),
		})
	}
	out.Applications = domain.CountApplications(all)
	out.ApprovalRate = out.Applications.ApprovalRate()
	out.AverageResponseHours = domain.AverageResponseHours(all)
	return out, nil
}

func (s *DashboardService) Applicant(ctx context.Context, actor Actor) (domain.ApplicantDashboard, error) {
	if err := requireRole(actor, domain.RoleApplicant); err != nil {
		return domain.ApplicantDashboard{}, err
	}
	apps, err := s.apps.ListByApplicant(ctx, actor.UserID)
	if err != nil {
		return domain.ApplicantDashboard{}, err
	}
	counts := domain.CountApplications(apps)
	return domain.ApplicantDashboard{Applications: counts, ApprovalRate: counts.ApprovalRate()}, nil
}
