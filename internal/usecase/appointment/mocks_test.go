package appointment

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "github.com/motorvia/autocare-scheduler/internal/domain/scheduling"
	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/models"
	"github.com/motorvia/autocare-scheduler/internal/notify"
)

var errNotFound = errors.New("not found")

// ======================================================
// IN-MEMORY REPOSITORY
// ======================================================

type memRepo struct {
	mu sync.Mutex

	centers         map[uint]*models.ServiceCenter
	offerings       map[uint]*models.ServiceOffering
	vehicles        map[uint]*models.Vehicle
	appointments    map[uint]*models.Appointment
	employees       map[uint]*models.User
	employeeCenters map[uint]*models.EmployeeCenter
	shifts          []models.ShiftSchedule
	timeLogs        map[uint]*models.TimeLog

	nextAppointmentID uint
	nextTimeLogID     uint
}

func newMemRepo() *memRepo {
	return &memRepo{
		centers:         make(map[uint]*models.ServiceCenter),
		offerings:       make(map[uint]*models.ServiceOffering),
		vehicles:        make(map[uint]*models.Vehicle),
		appointments:    make(map[uint]*models.Appointment),
		employees:       make(map[uint]*models.User),
		employeeCenters: make(map[uint]*models.EmployeeCenter),
		timeLogs:        make(map[uint]*models.TimeLog),
	}
}

// -------- Service center / offering --------

func (r *memRepo) GetServiceCenter(_ context.Context, id uint) (*models.ServiceCenter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.centers[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) GetOffering(_ context.Context, id uint) (*models.ServiceOffering, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offerings[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *o
	return &cp, nil
}

// -------- Vehicle --------

func (r *memRepo) GetVehicleForCustomer(_ context.Context, vehicleID, customerID uint) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[vehicleID]
	if !ok || v.CustomerID != customerID {
		return nil, errNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *memRepo) ListVehicleAppointmentsAt(_ context.Context, vehicleID uint, at time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.VehicleID == vehicleID && ap.AppointmentDate.Equal(at) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

// -------- Appointment --------

func (r *memRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextAppointmentID++
	ap.ID = r.nextAppointmentID
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *memRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, errNotFound
	}

	cp := *ap
	cp.Employees = append([]models.User(nil), ap.Employees...)
	if v, ok := r.vehicles[ap.VehicleID]; ok {
		cp.Vehicle = *v
	}
	if o, ok := r.offerings[ap.ServiceOfferingID]; ok {
		cp.ServiceOffering = *o
	}
	if c, ok := r.centers[ap.ServiceCenterID]; ok {
		cp.ServiceCenter = *c
	}
	return &cp, nil
}

func (r *memRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[ap.ID]
	if !ok {
		return errNotFound
	}
	cp := *ap
	cp.Employees = append([]models.User(nil), ap.Employees...)
	if cp.Employees == nil {
		cp.Employees = stored.Employees
	}
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *memRepo) DeleteAppointment(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.appointments, id)
	return nil
}

// hydration mirrors the preload list of the matching gorm query, so a
// query that stops loading an association fails the same tests the
// real repository would.
type hydrate struct {
	vehicle   bool
	offering  bool
	center    bool
	employees bool
}

func (r *memRepo) ListAppointmentsForCustomer(_ context.Context, customerID uint) ([]models.Appointment, error) {
	return r.list(
		func(ap *models.Appointment) bool { return ap.CustomerID == customerID },
		hydrate{vehicle: true, offering: true, center: true, employees: true},
	)
}

func (r *memRepo) ListAppointmentsForCenter(_ context.Context, centerID uint) ([]models.Appointment, error) {
	return r.list(
		func(ap *models.Appointment) bool { return ap.ServiceCenterID == centerID },
		hydrate{vehicle: true, offering: true, center: true, employees: true},
	)
}

func (r *memRepo) ListAppointments(_ context.Context) ([]models.Appointment, error) {
	return r.list(
		func(*models.Appointment) bool { return true },
		hydrate{vehicle: true, offering: true, center: true, employees: true},
	)
}

func (r *memRepo) ListAppointmentsBetween(_ context.Context, start, end time.Time) ([]models.Appointment, error) {
	return r.list(
		func(ap *models.Appointment) bool {
			return !ap.AppointmentDate.Before(start) && ap.AppointmentDate.Before(end)
		},
		hydrate{center: true},
	)
}

func (r *memRepo) list(keep func(*models.Appointment) bool, h hydrate) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if !keep(ap) {
			continue
		}
		cp := *ap
		cp.Vehicle = models.Vehicle{}
		cp.ServiceOffering = models.ServiceOffering{}
		cp.ServiceCenter = models.ServiceCenter{}
		cp.Employees = nil
		if h.vehicle {
			if v, ok := r.vehicles[ap.VehicleID]; ok {
				cp.Vehicle = *v
			}
		}
		if h.offering {
			if o, ok := r.offerings[ap.ServiceOfferingID]; ok {
				cp.ServiceOffering = *o
			}
		}
		if h.center {
			if c, ok := r.centers[ap.ServiceCenterID]; ok {
				cp.ServiceCenter = *c
			}
		}
		if h.employees {
			cp.Employees = append([]models.User(nil), ap.Employees...)
		}
		out = append(out, cp)
	}
	return out, nil
}

// -------- Employees / shifts --------

func (r *memRepo) GetEmployee(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memRepo) GetEmployeeCenter(_ context.Context, employeeID uint) (*models.EmployeeCenter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ec, ok := r.employeeCenters[employeeID]
	if !ok {
		return nil, errNotFound
	}
	cp := *ec
	return &cp, nil
}

func (r *memRepo) ListCenterEmployeeIDs(_ context.Context, centerID uint) ([]uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []uint
	for id, ec := range r.employeeCenters {
		if ec.ServiceCenterID == centerID {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *memRepo) ListShiftsInWindow(_ context.Context, employeeID uint, start, end time.Time) ([]models.ShiftSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ShiftSchedule
	for _, s := range r.shifts {
		if s.EmployeeID == employeeID && domain.Overlaps(s.StartTime, s.EndTime, start, end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memRepo) AssignEmployees(
	_ context.Context,
	ap *models.Appointment,
	employees []models.User,
	shifts []models.ShiftSchedule,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[ap.ID]
	if !ok {
		return errNotFound
	}
	r.shifts = append(r.shifts, shifts...)
	stored.Employees = append(stored.Employees, employees...)
	return nil
}

func (r *memRepo) DeleteShiftsForAppointment(_ context.Context, appointmentID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.shifts[:0]
	for _, s := range r.shifts {
		if s.AppointmentID != appointmentID {
			kept = append(kept, s)
		}
	}
	r.shifts = kept
	return nil
}

// -------- Time logs --------

func (r *memRepo) IsEmployeeAssigned(_ context.Context, appointmentID, employeeID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[appointmentID]
	if !ok {
		return false, errNotFound
	}
	for _, emp := range ap.Employees {
		if emp.ID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) GetOpenTimeLog(_ context.Context, appointmentID, employeeID uint) (*models.TimeLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tl := range r.timeLogs {
		if tl.AppointmentID == appointmentID && tl.EmployeeID == employeeID && tl.EndTime == nil {
			cp := *tl
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) CreateTimeLog(_ context.Context, tl *models.TimeLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextTimeLogID++
	tl.ID = r.nextTimeLogID
	cp := *tl
	r.timeLogs[tl.ID] = &cp
	return nil
}

func (r *memRepo) UpdateTimeLog(_ context.Context, tl *models.TimeLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.timeLogs[tl.ID]; !ok {
		return errNotFound
	}
	cp := *tl
	r.timeLogs[tl.ID] = &cp
	return nil
}

var _ domain.Repository = (*memRepo)(nil)

// ======================================================
// IN-MEMORY SLOT LEDGER
// ======================================================

type memLedger struct {
	mu       sync.Mutex
	capacity int
	rows     map[uint]memReservation
}

type memReservation struct {
	centerID uint
	bucket   time.Time
	slot     int
}

func newMemLedger(capacity int) *memLedger {
	return &memLedger{capacity: capacity, rows: make(map[uint]memReservation)}
}

func (l *memLedger) Reserve(_ context.Context, centerID uint, at time.Time, appointmentID uint) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket := domain.HourBucket(at)
	booked := 0
	for _, row := range l.rows {
		if row.centerID == centerID && row.bucket.Equal(bucket) {
			booked++
		}
	}
	if booked >= l.capacity {
		return 0, httperr.ErrBusiness("capacity_exceeded")
	}

	slot := booked + 1
	l.rows[appointmentID] = memReservation{centerID: centerID, bucket: bucket, slot: slot}
	return slot, nil
}

func (l *memLedger) Release(_ context.Context, appointmentID uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.rows, appointmentID)
	return nil
}

func (l *memLedger) AvailableByHour(_ context.Context, centerID uint, day time.Time, capacity int) (map[int]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	out := make(map[int]int, 24)
	for h := 0; h < 24; h++ {
		out[h] = capacity
	}
	for _, row := range l.rows {
		if row.centerID != centerID {
			continue
		}
		if row.bucket.Before(dayStart) || !row.bucket.Before(dayEnd) {
			continue
		}
		out[row.bucket.In(day.Location()).Hour()]--
	}
	return out, nil
}

var _ domain.SlotLedger = (*memLedger)(nil)

// ======================================================
// FAKE SIDE-EFFECT COLLABORATORS
// ======================================================

type fakeNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *fakeNotifier) Notify(ev notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *fakeNotifier) byType(typ string) []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notify.Event
	for _, ev := range n.events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

type fakeChat struct {
	mu      sync.Mutex
	created []uint
	closed  []uint
}

func (c *fakeChat) CreateRoomForAppointment(_ context.Context, appointmentID, _ uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.created = append(c.created, appointmentID)
	return nil
}

func (c *fakeChat) CloseRoomForAppointment(_ context.Context, appointmentID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = append(c.closed, appointmentID)
	return nil
}

// ======================================================
// FIXTURE
// ======================================================

type fixture struct {
	repo     *memRepo
	ledger   *memLedger
	notifier *fakeNotifier
	chat     *fakeChat
}

// newFixture seeds one active UTC center with the given lane count,
// a 90-minute offering and one customer vehicle.
func newFixture(capacity int) *fixture {
	f := &fixture{
		repo:     newMemRepo(),
		ledger:   newMemLedger(capacity),
		notifier: &fakeNotifier{},
		chat:     &fakeChat{},
	}

	f.repo.centers[1] = &models.ServiceCenter{
		ID:         1,
		Name:       "Downtown Motors",
		Timezone:   "UTC",
		CenterSlot: capacity,
		IsActive:   true,
	}

	minutes := 90
	f.repo.offerings[1] = &models.ServiceOffering{
		ID:                       1,
		Name:                     "Oil Change",
		Type:                     models.OfferingTypeService,
		Price:                    120,
		EstimatedDurationMinutes: &minutes,
	}

	f.repo.vehicles[1] = &models.Vehicle{
		ID:           1,
		CustomerID:   10,
		LicensePlate: "ABC1234",
	}

	return f
}

func (f *fixture) addVehicle(id, customerID uint) {
	f.repo.mu.Lock()
	defer f.repo.mu.Unlock()
	f.repo.vehicles[id] = &models.Vehicle{ID: id, CustomerID: customerID}
}

func (f *fixture) addEmployee(id, centerID uint) {
	f.repo.mu.Lock()
	defer f.repo.mu.Unlock()
	f.repo.employees[id] = &models.User{ID: id, Role: models.RoleEmployee}
	f.repo.employeeCenters[id] = &models.EmployeeCenter{EmployeeID: id, ServiceCenterID: centerID}
}

func assertBusinessCode(t interface {
	Helper()
	Fatalf(string, ...any)
}, err error, code string) {
	t.Helper()
	be, ok := httperr.AsBusiness(err)
	if !ok {
		t.Fatalf("error = %v, want business error %q", err, code)
	}
	if be.Code != code {
		t.Fatalf("business code = %q, want %q", be.Code, code)
	}
}
