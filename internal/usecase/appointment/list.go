package appointment

import (
	"context"

	domain "github.com/motorvia/autocare-scheduler/internal/domain/scheduling"
	"github.com/motorvia/autocare-scheduler/internal/dto"
	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute applies the visibility rule: customers see their own
// appointments, employees their center's, admins everything.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	caller domain.Caller,
) ([]dto.AppointmentListDTO, error) {

	var (
		aps []models.Appointment
		err error
	)

	switch caller.Role {
	case models.RoleAdmin:
		aps, err = uc.repo.ListAppointments(ctx)
	case models.RoleEmployee:
		ec, ecErr := uc.repo.GetEmployeeCenter(ctx, caller.ID)
		if ecErr != nil {
			return nil, httperr.ErrBusiness("employee_center_not_set")
		}
		aps, err = uc.repo.ListAppointmentsForCenter(ctx, ec.ServiceCenterID)
	default:
		aps, err = uc.repo.ListAppointmentsForCustomer(ctx, caller.ID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for i := range aps {
		ap := &aps[i]
		out = append(out, dto.AppointmentListDTO{
			ID:           ap.ID,
			Code:         ap.Code,
			Date:         ap.AppointmentDate,
			Status:       ap.Status,
			LicensePlate: ap.Vehicle.LicensePlate,
			OfferingName: ap.ServiceOffering.Name,
			CenterName:   ap.ServiceCenter.Name,
			Description:  ap.Description,
			CanStartWork: domain.CanStartWork(ap),
		})
	}

	return out, nil
}
