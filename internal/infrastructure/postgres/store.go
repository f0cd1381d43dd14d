package postgres

// Store agrupa los repositorios PostgreSQL sobre un mismo pool.
type Store struct {
	Users      *UserRepo
	Companies  *CompanyRepo
	Sites      *SiteRepo
	Tickets    *TicketRepo
	Settings   *SettingsRepo
	CheckIns   *CheckInRepo
	Attendance *AttendanceRepo
	Schedules  *ScheduleRepo
	Vacations  *VacationRepo
}

// NewStore construye todos los repositorios. Pasar pool o tx (Querier).
func NewStore(q Querier) *Store {
	return &Store{
		Users:      NewUserRepository(q),
		Companies:  NewCompanyRepository(q),
		Sites:      NewSiteRepository(q),
		Tickets:    NewTicketRepository(q),
		Settings:   NewSettingsRepository(q),
		CheckIns:   NewCheckInRepository(q),
		Attendance: NewAttendanceRepository(q),
		Schedules:  NewScheduleRepository(q),
		Vacations:  NewVacationRepository(q),
	}
}
